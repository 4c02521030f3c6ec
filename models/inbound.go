package models

// ReplyRef is the structural reply metadata on an inbound event: the message
// it responds to, and whether that message was authored by this service.
type ReplyRef struct {
	AuthorIsSelf bool      `json:"authorIsSelf"`
	MessageID    MessageID `json:"messageId"`
}

// InboundEvent is one message arriving from the transport.
type InboundEvent struct {
	Sender        Handle    `json:"sender"`
	Text          string    `json:"text"`
	StartParam    string    `json:"startParam"`
	HasStartParam bool      `json:"hasStartParam"`
	ReplyTo       *ReplyRef `json:"replyTo,omitempty"`
}
