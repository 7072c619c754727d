package services

import "studybuddy_server/models"

// Notifier pushes store changes out to connected clients. The socket package
// provides the real implementation; NopNotifier keeps services usable in
// tests and one-off tools.
type Notifier interface {
	// MatchFound tells both participants of a fresh pairing about each other.
	MatchFound(pairing models.Pairing)
	// NewMessage fans a chat message out to the pairing's room.
	NewMessage(pairingID string, message models.Message)
}

type NopNotifier struct{}

func (NopNotifier) MatchFound(models.Pairing)         {}
func (NopNotifier) NewMessage(string, models.Message) {}
