package console

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/3afrios/friosdesk/pkg/api"
	"github.com/3afrios/friosdesk/pkg/bus"
)

// Draft is what the agent typed before hitting send.
type Draft struct {
	Content  string
	FilePath string
}

// Empty reports whether there is nothing to send.
func (d Draft) Empty() bool {
	return d.Content == "" && d.FilePath == ""
}

// Sender delivers one agent message to a conversation.
type Sender interface {
	Send(ctx context.Context, conversationID int, draft Draft) error
}

// PushSender sends plain text over the websocket via the event bus. The
// backend persists the message and echoes it back on the push channel, so
// nothing is appended locally here.
type PushSender struct {
	Events *bus.EventBus
}

func (p *PushSender) Send(ctx context.Context, conversationID int, draft Draft) error {
	return p.Events.PublishOutbound(ctx, bus.OutboundEvent{
		ConversationID: conversationID,
		Content:        draft.Content,
	})
}

// RestSender posts the draft as multipart form data, the only path that can
// carry a file. The returned message is discarded on purpose; the echo
// arrives over the push channel like any other message.
type RestSender struct {
	Client *api.Client
}

func (r *RestSender) Send(ctx context.Context, conversationID int, draft Draft) error {
	_, err := r.Client.SendAttachment(ctx, conversationID, draft.Content, draft.FilePath)
	return err
}

// Composer picks the delivery path per draft: attachments must go over
// REST, plain text goes over the websocket. Empty drafts are a no-op.
type Composer struct {
	Push Sender
	Rest Sender
}

func NewComposer(events *bus.EventBus, client *api.Client) *Composer {
	return &Composer{
		Push: &PushSender{Events: events},
		Rest: &RestSender{Client: client},
	}
}

// Send dispatches the draft. Failures are logged and returned; the caller
// decides whether to surface them.
func (c *Composer) Send(ctx context.Context, conversationID int, draft Draft) error {
	if draft.Empty() {
		return nil
	}

	var err error
	if draft.FilePath != "" {
		err = c.Rest.Send(ctx, conversationID, draft)
	} else {
		err = c.Push.Send(ctx, conversationID, draft)
	}

	if err != nil {
		log.Error().Err(err).Int("conversation_id", conversationID).Msg("Failed to send message")
	}
	return err
}
