package services

import (
	"context"
	"errors"

	"studybuddy_server/models"
)

var (
	// ErrNoCandidate means the waiting pool holds nobody besides the caller.
	ErrNoCandidate = errors.New("no candidate available")

	// ErrCandidateClaimed means another searcher claimed the candidate between
	// our read of the pool and our claim. Retryable: re-query the pool.
	ErrCandidateClaimed = errors.New("candidate already claimed")

	// ErrNotSearching means the caller's own waiting entry disappeared before
	// the claim landed (the user cancelled mid-flight).
	ErrNotSearching = errors.New("caller is no longer searching")

	// ErrPairingNotFound means no pairing record exists under the given key.
	ErrPairingNotFound = errors.New("pairing not found")
)

// MatchStore is the slice of the document store the matcher needs. The
// production implementation is DynamoMatchStore; MemoryMatchStore serves
// tests and credential-less local runs.
type MatchStore interface {
	// PutEntry upserts the waiting entry keyed by its UserID.
	PutEntry(ctx context.Context, entry models.WaitingEntry) error

	// DeleteEntry removes a waiting entry. Removing a missing entry is not
	// an error.
	DeleteEntry(ctx context.Context, userID string) error

	// ListEntries returns the whole waiting pool ordered by (enqueuedAt, seq)
	// ascending.
	ListEntries(ctx context.Context) ([]models.WaitingEntry, error)

	// ClaimPair atomically consumes both waiting entries and writes the
	// pairing under its composite key and both per-user keys. The claim
	// commits only if both entries still exist exactly as observed:
	// a vanished or re-enqueued self entry yields ErrNotSearching, a
	// vanished or re-enqueued candidate yields ErrCandidateClaimed, and in
	// either case nothing is written or deleted.
	ClaimPair(ctx context.Context, self, candidate models.WaitingEntry, pairing models.Pairing) error

	// GetPairing reads the pairing record stored under key (a userId or a
	// composite id). Returns ErrPairingNotFound when absent.
	GetPairing(ctx context.Context, key string) (*models.Pairing, error)
}
