package socket

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"anonrelay_server/models"
	"anonrelay_server/services"

	"github.com/google/uuid"
	socketio "github.com/googollee/go-socket.io"
)

// Router is the piece of the relay core the socket layer dispatches into.
type Router interface {
	HandleInbound(ctx context.Context, ev models.InboundEvent) error
}

// Transport is the live socket.io delivery layer. Every participant joins a
// private room keyed by their handle after a "hello" event; Send broadcasts
// into the target's room and assigns the outbound message id.
//
// Events are handled synchronously inside the per-connection read loop, so
// two messages from the same sender are never reordered; events from
// different connections run concurrently.
type Transport struct {
	server     *socketio.Server
	publicName string
}

// inboundPayload mirrors models.InboundEvent on the wire.
type inboundPayload struct {
	Sender  int64  `json:"sender"`
	Text    string `json:"text"`
	Start   string `json:"start,omitempty"`
	IsStart bool   `json:"isStart,omitempty"`
	ReplyTo string `json:"replyTo,omitempty"`
}

// outboundPayload is one message delivered into a participant's room.
type outboundPayload struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func roomFor(h models.Handle) string {
	return fmt.Sprintf("user:%d", h)
}

// NewTransport initializes the Socket.IO server behind the transport
func NewTransport(publicName string) *Transport {
	return &Transport{
		server:     socketio.NewServer(nil),
		publicName: publicName,
	}
}

// Attach registers the inbound event handlers against router and returns the
// underlying socket.io server for mounting and lifecycle calls.
func (t *Transport) Attach(router Router) *socketio.Server {
	server := t.server

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// Handle hello events: the client claims its handle and joins its room
	server.OnEvent("/", "hello", func(c socketio.Conn, data map[string]string) {
		handle, err := strconv.ParseInt(data["handle"], 10, 64)
		if err != nil {
			log.Println("❌ Invalid handle in hello event:", data["handle"])
			return
		}
		c.Join(roomFor(models.Handle(handle)))
		log.Printf("👥 User %d joined their room\n", handle)
	})

	// Handle message events: decode and hand to the relay router
	server.OnEvent("/", "message", func(c socketio.Conn, payload inboundPayload) {
		ev := models.InboundEvent{
			Sender:        models.Handle(payload.Sender),
			Text:          payload.Text,
			StartParam:    payload.Start,
			HasStartParam: payload.IsStart,
		}
		if payload.ReplyTo != "" {
			// Everything a client can reply to over this transport was
			// delivered by the relay itself.
			ev.ReplyTo = &models.ReplyRef{
				AuthorIsSelf: true,
				MessageID:    models.MessageID(payload.ReplyTo),
			}
		}
		if err := router.HandleInbound(context.Background(), ev); err != nil {
			log.Printf("❌ Inbound event from %d failed: %v\n", ev.Sender, err)
		}
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return server
}

// SelfIdentifier reports the public name links are built from.
func (t *Transport) SelfIdentifier(ctx context.Context) (string, error) {
	return t.publicName, nil
}

// Send delivers body into the target's room and returns the id assigned to
// the outbound message. An empty room means nobody is listening, which is a
// delivery failure.
func (t *Transport) Send(ctx context.Context, to models.Handle, body string) (models.MessageID, error) {
	room := roomFor(to)
	if t.server.RoomLen("/", room) == 0 {
		return "", &services.DeliveryError{Target: to, Err: services.ErrRecipientUnreachable}
	}

	id := models.MessageID(uuid.New().String())
	t.server.BroadcastToRoom("/", room, "message", outboundPayload{
		ID:   string(id),
		Body: body,
	})
	return id, nil
}
