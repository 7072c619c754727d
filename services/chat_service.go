package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"studybuddy_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService handles the message log each matched pair shares.
type ChatService struct {
	Dynamo *DynamoService
	Notify Notifier
}

// SendMessage stores a new message in the Messages table and fans it out to
// the pairing's room.
func (s *ChatService) SendMessage(ctx context.Context, pairingID, senderID, sender, text string) (*models.Message, error) {
	if pairingID == "" || senderID == "" {
		return nil, errors.New("pairingId and senderId are required")
	}
	if text == "" {
		return nil, errors.New("message text cannot be empty")
	}

	message := models.Message{
		PairingID: pairingID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Sender:    sender,
		Text:      text,
		IsUnread:  true,
	}

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if s.Notify != nil {
		s.Notify.NewMessage(pairingID, message)
	}
	return &message, nil
}

// GetMessages fetches messages for a pairing, oldest first.
func (s *ChatService) GetMessages(ctx context.Context, pairingID string, limit int) ([]models.Message, error) {
	log.Printf("🔍 Fetching messages for pairingId: %s, limit: %d", pairingID, limit)

	keyCondition := "#pairingId = :pairingId"
	expressionValues := map[string]types.AttributeValue{
		":pairingId": &types.AttributeValueMemberS{Value: pairingID},
	}
	expressionNames := map[string]string{
		"#pairingId": "pairingId",
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt < messages[j].CreatedAt
	})
	return messages, nil
}

// MarkMessagesAsRead flips isUnread on every message the user received.
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, pairingID, userID string) error {
	messages, err := s.GetMessages(ctx, pairingID, 100)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if msg.SenderID == userID || !msg.IsUnread {
			continue
		}

		key := map[string]types.AttributeValue{
			"pairingId": &types.AttributeValueMemberS{Value: pairingID},
			"createdAt": &types.AttributeValueMemberS{Value: msg.CreatedAt},
		}
		expressionValues := map[string]types.AttributeValue{
			":read": &types.AttributeValueMemberBOOL{Value: false},
		}
		if _, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable, "SET isUnread = :read", key, expressionValues, nil); err != nil {
			log.Printf("❌ Failed to mark message %s as read: %v", msg.MessageID, err)
		}
	}
	return nil
}
