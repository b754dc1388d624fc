package bus

import "github.com/3afrios/friosdesk/pkg/api"

// InboundEvent is a backend push delivered over the websocket. The console
// merges the message into its state; Raw keeps the envelope for debugging.
type InboundEvent struct {
	Message api.Message
	Raw     []byte
}

// OutboundEvent is an agent reply queued for the websocket writer.
type OutboundEvent struct {
	ConversationID int
	Content        string
}
