// Package push maintains the websocket link to the backend. The backend
// pushes every new message (customer, bot and agent echoes) through it, and
// plain-text agent replies go out over the same socket.
//
// The link is deliberately single-shot: when the socket drops, the read loop
// exits and the console keeps running on REST alone. No reconnect, no backoff.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/3afrios/friosdesk/pkg/api"
	"github.com/3afrios/friosdesk/pkg/bus"
)

const writeWait = 10 * time.Second

// ErrChannelClosed is returned when sending on a closed Channel.
var ErrChannelClosed = errors.New("push channel closed")

// Envelope is the wire format of a pushed event. Message fields sit flat
// next to Type, so the embedded struct decodes the whole payload.
type Envelope struct {
	Type string `json:"type"`
	api.Message
}

// Channel is one websocket session against the backend.
type Channel struct {
	conn     *websocket.Conn
	events   *bus.EventBus
	clientID int64

	once sync.Once
	done chan struct{}
}

// Dial opens the websocket for a fresh client ID and returns the connected
// channel. The caller still has to Start it.
func Dial(ctx context.Context, client *api.Client, events *bus.EventBus) (*Channel, error) {
	clientID := time.Now().UnixMilli()
	url := client.WebSocketURL(clientID)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("client_id", clientID).Str("url", url).Msg("Push channel connected")
	return &Channel{
		conn:     conn,
		events:   events,
		clientID: clientID,
		done:     make(chan struct{}),
	}, nil
}

// ClientID returns the session identifier used in the websocket path.
func (c *Channel) ClientID() int64 {
	return c.clientID
}

// Start launches the read and write loops.
func (c *Channel) Start(ctx context.Context) {
	go c.readLoop(ctx)
	go c.writeLoop(ctx)
}

// Done is closed once the read loop has exited, i.e. the socket is dead.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Closed reports whether the socket is no longer usable.
func (c *Channel) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Close tears the socket down. Safe to call more than once.
func (c *Channel) Close() {
	c.once.Do(func() {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		_ = c.conn.Close()
	})
}

// readLoop decodes pushed envelopes and publishes them on the bus. Frames
// that fail to decode or carry an unknown type are logged and dropped, never
// fatal. A read error ends the session.
func (c *Channel) readLoop(ctx context.Context) {
	defer close(c.done)
	defer c.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Warn().Err(err).Msg("Push channel closed by peer")
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Warn().Err(err).Str("payload", string(data)).Msg("Discarding malformed push frame")
			continue
		}
		if env.Type != "message" {
			log.Debug().Str("type", env.Type).Msg("Ignoring push frame of unknown type")
			continue
		}

		if err := c.events.PublishInbound(ctx, bus.InboundEvent{Message: env.Message, Raw: data}); err != nil {
			log.Warn().Err(err).Msg("Dropping pushed message, bus unavailable")
			return
		}
	}
}

// writeLoop drains agent replies from the bus and sends them as raw message
// JSON, the format the backend expects from the console. Send failures are
// logged and the loop exits; the console keeps the REST path.
func (c *Channel) writeLoop(ctx context.Context) {
	for {
		evt, ok := c.events.SubscribeOutbound(ctx)
		if !ok {
			return
		}
		if err := c.write(evt); err != nil {
			log.Warn().Err(err).Int("conversation_id", evt.ConversationID).Msg("Push send failed")
			return
		}
	}
}

func (c *Channel) write(evt bus.OutboundEvent) error {
	if c.Closed() {
		return ErrChannelClosed
	}

	msg := api.Message{
		ConversationID: evt.ConversationID,
		Content:        evt.Content,
		SenderType:     api.SenderAgent,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
