package models

type Message struct {
	PairingID string `dynamodbav:"pairingId" json:"pairingId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Sender    string `dynamodbav:"sender" json:"sender"`
	Text      string `dynamodbav:"text" json:"text"`
	IsUnread  bool   `dynamodbav:"isUnread" json:"isUnread"`
}

// MessagesTable is the DynamoDB table name for buddy chat messages
const MessagesTable = "Messages"
