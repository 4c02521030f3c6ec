package models

// Handle is the opaque participant identity assigned by the transport.
// Handles are unique and never reused across participants.
type Handle int64

// MessageID identifies an outbound message within the transport's id space.
// Unique, but not assumed monotonic.
type MessageID string

// ReplyRecord maps an outbound relay message back to the participant whose
// text it carried. It is the durable source of truth for reply routing.
type ReplyRecord struct {
	MessageID      MessageID `dynamodbav:"messageId" json:"messageId"`
	OriginalSender Handle    `dynamodbav:"originalSender" json:"originalSender"`
}

// ReplyMapTable is the DynamoDB table name for the reply index
const ReplyMapTable = "ReplyMap"

// RegisteredUser is one entry in the durable set of every handle that has
// ever interacted with the relay. Used only for broadcast fan-out.
type RegisteredUser struct {
	Handle Handle `dynamodbav:"handle" json:"handle"`
}

// RelayUsersTable is the DynamoDB table name for the user registry
const RelayUsersTable = "RelayUsers"

// BroadcastReport summarizes a broadcast fan-out run.
type BroadcastReport struct {
	Sent  int `json:"sent"`
	Total int `json:"total"`
}
