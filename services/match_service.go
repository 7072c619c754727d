package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"studybuddy_server/models"
)

// maxMatchAttempts bounds the find/claim retry loop so two losers of a claim
// race do not spin against each other on a hot pool.
const maxMatchAttempts = 3

// defaultDisplayName mirrors the client fallback when a profile has no name.
const defaultDisplayName = "User"

// MatchService pairs users waiting for a study partner, first come first
// served. All shared state lives in the MatchStore; the service itself keeps
// nothing between calls except the tie-break counter.
type MatchService struct {
	Store    MatchStore
	Profiles *UserProfileService
	Notify   Notifier

	seq atomic.Int64
}

func NewMatchService(store MatchStore, profiles *UserProfileService, notify Notifier) *MatchService {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &MatchService{Store: store, Profiles: profiles, Notify: notify}
}

// Enqueue places the user in the waiting pool. Calling it again while already
// queued refreshes the entry rather than duplicating it (the pool is keyed by
// userId). Display fields missing from the request are filled from the user's
// profile when one exists.
func (s *MatchService) Enqueue(ctx context.Context, userID, name, avatarURL string) (models.WaitingEntry, error) {
	if userID == "" {
		return models.WaitingEntry{}, errors.New("userId is required")
	}

	if name == "" || avatarURL == "" {
		if profile := s.lookupProfile(ctx, userID); profile != nil {
			if name == "" {
				name = profile.Name
			}
			if avatarURL == "" {
				avatarURL = profile.AvatarURL
			}
		}
	}
	if name == "" {
		name = defaultDisplayName
	}

	entry := models.WaitingEntry{
		UserID:     userID,
		Name:       name,
		AvatarURL:  avatarURL,
		EnqueuedAt: time.Now().UnixMilli(),
		Seq:        s.seq.Add(1),
	}

	if err := s.Store.PutEntry(ctx, entry); err != nil {
		return models.WaitingEntry{}, fmt.Errorf("failed to enqueue %s: %w", userID, err)
	}

	log.Printf("🔍 %s joined the waiting pool", userID)
	return entry, nil
}

// Dequeue removes the user from the waiting pool. Idempotent: cancelling a
// search that is no longer pending succeeds quietly.
func (s *MatchService) Dequeue(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("userId is required")
	}
	if err := s.Store.DeleteEntry(ctx, userID); err != nil {
		return fmt.Errorf("failed to dequeue %s: %w", userID, err)
	}
	return nil
}

// FindCandidate returns the earliest-queued user other than the caller, or
// ErrNoCandidate when nobody else is waiting.
func (s *MatchService) FindCandidate(ctx context.Context, selfID string) (*models.WaitingEntry, error) {
	_, candidate, err := s.snapshot(ctx, selfID)
	if err != nil && !errors.Is(err, ErrNotSearching) {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrNoCandidate
	}
	return candidate, nil
}

// CommitMatch claims the candidate and publishes the pairing. Both waiting
// entries must still be exactly as observed; a lost race surfaces as
// ErrCandidateClaimed and leaves the caller's own entry in the pool.
func (s *MatchService) CommitMatch(ctx context.Context, self, candidate models.WaitingEntry) (*models.Pairing, error) {
	if self.UserID == candidate.UserID {
		return nil, errors.New("cannot match a user with themselves")
	}

	pairing := models.Pairing{
		PairingID: models.CompositeID(self.UserID, candidate.UserID),
		Users:     []string{self.UserID, candidate.UserID},
		Names:     []string{self.Name, candidate.Name},
		Avatars:   []string{self.AvatarURL, candidate.AvatarURL},
		FormedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.Store.ClaimPair(ctx, self, candidate, pairing); err != nil {
		return nil, err
	}

	log.Printf("🎉 Matched %s with %s", self.UserID, candidate.UserID)
	s.Notify.MatchFound(pairing)
	return &pairing, nil
}

// Search runs the find/claim loop for a user already in the pool. It returns
// the pairing on success, nil when no partner is available (the caller stays
// queued and will be claimed by a later searcher), and ErrNotSearching when
// the caller's own entry vanished mid-flight.
func (s *MatchService) Search(ctx context.Context, userID string) (*models.Pairing, error) {
	for attempt := 0; attempt < maxMatchAttempts; attempt++ {
		self, candidate, err := s.snapshot(ctx, userID)
		if err != nil {
			return nil, err
		}
		if candidate == nil {
			return nil, nil
		}

		pairing, err := s.CommitMatch(ctx, *self, *candidate)
		if err == nil {
			return pairing, nil
		}
		if errors.Is(err, ErrCandidateClaimed) {
			log.Printf("⚠️ %s lost the claim on %s, re-querying pool", userID, candidate.UserID)
			continue
		}
		return nil, err
	}
	return nil, nil
}

// PairingFor reads the pairing record stored under the user's own key. Serves
// as the polling fallback for clients that missed the push notification.
func (s *MatchService) PairingFor(ctx context.Context, userID string) (*models.Pairing, error) {
	return s.Store.GetPairing(ctx, userID)
}

// snapshot reads the pool once and picks out the caller's entry and the
// earliest-queued candidate. ErrNotSearching when the caller has no entry.
func (s *MatchService) snapshot(ctx context.Context, selfID string) (*models.WaitingEntry, *models.WaitingEntry, error) {
	entries, err := s.Store.ListEntries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read waiting pool: %w", err)
	}

	var self, candidate *models.WaitingEntry
	for i := range entries {
		switch {
		case entries[i].UserID == selfID:
			self = &entries[i]
		case candidate == nil:
			candidate = &entries[i]
		}
	}

	if self == nil {
		return nil, candidate, ErrNotSearching
	}
	return self, candidate, nil
}

func (s *MatchService) lookupProfile(ctx context.Context, userID string) *models.UserProfile {
	if s.Profiles == nil {
		return nil
	}
	profile, err := s.Profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return nil
	}
	return profile
}
