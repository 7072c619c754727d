package models

// WaitingEntry represents one user's open intent to be matched with a study
// partner. The table is keyed by userId, so re-enqueueing overwrites the
// previous entry instead of duplicating it.
type WaitingEntry struct {
	UserID     string `dynamodbav:"userId" json:"userId"`
	Name       string `dynamodbav:"name" json:"name"`
	AvatarURL  string `dynamodbav:"avatarURL,omitempty" json:"avatarURL,omitempty"`
	EnqueuedAt int64  `dynamodbav:"enqueuedAt" json:"enqueuedAt"`
	// Seq breaks ties between entries enqueued within the same millisecond.
	Seq int64 `dynamodbav:"seq" json:"seq"`
}

// MatchQueueTable is the DynamoDB table name for the waiting pool
const MatchQueueTable = "MatchQueue"
