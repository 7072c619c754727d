package models

// Pairing is an immutable record of two matched users. It is stored three
// times: once under the composite key "<uidA>_<uidB>" and once under each
// participant's own userId, so every client can watch its own document.
type Pairing struct {
	PairingID string   `dynamodbav:"pairingId" json:"pairingId"`
	Users     []string `dynamodbav:"users" json:"users"`
	Names     []string `dynamodbav:"names" json:"names"`
	Avatars   []string `dynamodbav:"avatars" json:"avatars"`
	FormedAt  string   `dynamodbav:"formedAt" json:"formedAt"`
}

// PairingsTable is the DynamoDB table name for pairing records
const PairingsTable = "Pairings"

// CompositeID builds the canonical composite document id for two users.
func CompositeID(userA, userB string) string {
	return userA + "_" + userB
}

// PartnerOf returns the other participant's index, or -1 when userID is not
// part of this pairing.
func (p *Pairing) PartnerOf(userID string) int {
	for i, u := range p.Users {
		if u != userID {
			continue
		}
		return 1 - i
	}
	return -1
}
