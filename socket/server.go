package socket

import (
	"log"

	"studybuddy_server/models"

	gosocketio "github.com/erock530/gosf-socketio"
)

// NewSocketServer initializes and returns a new Socket.IO server. Clients
// join a room named after their own userId to hear about pairings, and a room
// named after the pairingId to receive chat messages.
func NewSocketServer() *gosocketio.Server {
	server := gosocketio.NewServer(nil)

	server.On(gosocketio.OnConnection, func(c *gosocketio.Channel) {
		log.Println("✅ Socket connected:", c.Id())
	})

	server.On("join", func(c *gosocketio.Channel, data map[string]string) {
		room := data["room"]
		if room == "" {
			log.Println("❌ Invalid room in join request")
			return
		}
		log.Printf("👥 Client %s joined room %s\n", c.Id(), room)
		c.Join(room)
	})

	server.On("leave", func(c *gosocketio.Channel, data map[string]string) {
		if room := data["room"]; room != "" {
			c.Leave(room)
		}
	})

	server.On(gosocketio.OnDisconnection, func(c *gosocketio.Channel) {
		log.Println("❌ Socket disconnected:", c.Id())
	})

	return server
}

// Notifier pushes matcher and chat events into the socket rooms. It
// implements services.Notifier.
type Notifier struct {
	Server *gosocketio.Server
}

func NewNotifier(server *gosocketio.Server) *Notifier {
	return &Notifier{Server: server}
}

// MatchFound tells each participant about their new study partner. Every
// participant gets the event in their own room, so a client that triggered
// the match and one that was claimed while waiting see the same payload.
func (n *Notifier) MatchFound(pairing models.Pairing) {
	for _, userID := range pairing.Users {
		n.Server.BroadcastTo(userID, "matchFound", pairing)
	}
}

// NewMessage fans a chat message out to the pairing's room.
func (n *Notifier) NewMessage(pairingID string, message models.Message) {
	n.Server.BroadcastTo(pairingID, "newMessage", message)
}
