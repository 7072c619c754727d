package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"studybuddy_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoMatchStore implements MatchStore on top of DynamoDB. The claim step
// leans on TransactWriteItems: DynamoDB is the only coordination medium the
// matcher has, so the transaction is what makes the claim linearizable.
type DynamoMatchStore struct {
	Dynamo *DynamoService
}

func NewDynamoMatchStore(dynamo *DynamoService) *DynamoMatchStore {
	return &DynamoMatchStore{Dynamo: dynamo}
}

func (s *DynamoMatchStore) PutEntry(ctx context.Context, entry models.WaitingEntry) error {
	return s.Dynamo.PutItem(ctx, models.MatchQueueTable, entry)
}

func (s *DynamoMatchStore) DeleteEntry(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	return s.Dynamo.DeleteItem(ctx, models.MatchQueueTable, key)
}

func (s *DynamoMatchStore) ListEntries(ctx context.Context) ([]models.WaitingEntry, error) {
	var entries []models.WaitingEntry
	if err := s.Dynamo.ScanAll(ctx, models.MatchQueueTable, &entries); err != nil {
		return nil, fmt.Errorf("failed to list waiting pool: %w", err)
	}

	// The scan comes back in partition order; the pool is ordered by
	// enqueue time with seq as tie-break within the same millisecond.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].EnqueuedAt != entries[j].EnqueuedAt {
			return entries[i].EnqueuedAt < entries[j].EnqueuedAt
		}
		return entries[i].Seq < entries[j].Seq
	})
	return entries, nil
}

func (s *DynamoMatchStore) ClaimPair(ctx context.Context, self, candidate models.WaitingEntry, pairing models.Pairing) error {
	pairingItem, err := attributevalue.MarshalMap(pairing)
	if err != nil {
		return fmt.Errorf("failed to marshal pairing: %w", err)
	}

	// The transaction consumes both waiting entries and publishes the pairing
	// under all three lookup keys as one unit. Each delete is guarded on the
	// entry still being exactly the one FindCandidate observed; if either
	// guard fails the whole transaction aborts and the pool is untouched.
	// Item order matters below: cancellation reasons come back per item.
	items := []types.TransactWriteItem{
		{Delete: s.guardedDelete(self)},
		{Delete: s.guardedDelete(candidate)},
		{Put: &types.Put{
			TableName: aws.String(models.PairingsTable),
			Item:      s.keyedPairing(pairingItem, pairing.PairingID),
		}},
		{Put: &types.Put{
			TableName: aws.String(models.PairingsTable),
			Item:      s.keyedPairing(pairingItem, self.UserID),
		}},
		{Put: &types.Put{
			TableName: aws.String(models.PairingsTable),
			Item:      s.keyedPairing(pairingItem, candidate.UserID),
		}},
	}

	err = s.Dynamo.TransactWriteItems(ctx, items)
	if err == nil {
		return nil
	}

	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for i, reason := range canceled.CancellationReasons {
			if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
				continue
			}
			if i == 0 {
				return ErrNotSearching
			}
			return ErrCandidateClaimed
		}
	}
	return fmt.Errorf("failed to claim pair: %w", err)
}

func (s *DynamoMatchStore) GetPairing(ctx context.Context, key string) (*models.Pairing, error) {
	item, err := s.Dynamo.GetItem(ctx, models.PairingsTable, map[string]types.AttributeValue{
		"docId": &types.AttributeValueMemberS{Value: key},
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrPairingNotFound
		}
		return nil, err
	}

	var pairing models.Pairing
	if err := attributevalue.UnmarshalMap(item, &pairing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pairing: %w", err)
	}
	return &pairing, nil
}

// guardedDelete deletes a waiting entry only if it is still the observed one.
func (s *DynamoMatchStore) guardedDelete(entry models.WaitingEntry) *types.Delete {
	return &types.Delete{
		TableName: aws.String(models.MatchQueueTable),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: entry.UserID},
		},
		ConditionExpression: aws.String("attribute_exists(userId) AND enqueuedAt = :ts AND seq = :seq"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ts":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", entry.EnqueuedAt)},
			":seq": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", entry.Seq)},
		},
	}
}

// keyedPairing attaches the document key so the same record lands under the
// composite key and both per-user keys, with the pairingId intact in the body.
func (s *DynamoMatchStore) keyedPairing(item map[string]types.AttributeValue, docID string) map[string]types.AttributeValue {
	copied := make(map[string]types.AttributeValue, len(item)+1)
	for k, v := range item {
		copied[k] = v
	}
	copied["docId"] = &types.AttributeValueMemberS{Value: docID}
	return copied
}
