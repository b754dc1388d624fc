package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/3afrios/friosdesk/pkg/api"
	"github.com/3afrios/friosdesk/pkg/bus"
)

var upgrader = websocket.Upgrader{}

// fakeBackend upgrades the websocket, pushes the given frames, then echoes
// every client frame into received.
func fakeBackend(t *testing.T, frames []string, received chan []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if received != nil {
				received <- data
			}
		}
	}))
}

func dialTest(t *testing.T, srv *httptest.Server, events *bus.EventBus) *Channel {
	t.Helper()
	c := api.NewClient(srv.URL, 5*time.Second)
	ch, err := Dial(context.Background(), c, events)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return ch
}

func TestReadLoopPublishesMessages(t *testing.T) {
	frames := []string{
		`{"type": "message", "id": 42, "conversation_id": 3, "content": "Quero 2kg de mussarela", "sender_type": "customer", "timestamp": "2026-08-21T10:00:00Z"}`,
	}
	srv := fakeBackend(t, frames, nil)
	defer srv.Close()

	events := bus.NewEventBus()
	defer events.Close()

	ch := dialTest(t, srv, events)
	defer ch.Close()
	ch.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	evt, ok := events.ConsumeInbound(ctx)
	if !ok {
		t.Fatal("no inbound event received")
	}
	if evt.Message.ID != 42 || evt.Message.ConversationID != 3 {
		t.Errorf("unexpected message: %+v", evt.Message)
	}
	if evt.Message.SenderType != api.SenderCustomer {
		t.Errorf("sender_type: got %q", evt.Message.SenderType)
	}
}

func TestReadLoopSkipsMalformedAndUnknownFrames(t *testing.T) {
	frames := []string{
		`{not json at all`,
		`{"type": "presence", "id": 1}`,
		`{"type": "message", "id": 9, "conversation_id": 1, "content": "ok", "sender_type": "bot", "timestamp": "2026-08-21T10:00:00Z"}`,
	}
	srv := fakeBackend(t, frames, nil)
	defer srv.Close()

	events := bus.NewEventBus()
	defer events.Close()

	ch := dialTest(t, srv, events)
	defer ch.Close()
	ch.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	evt, ok := events.ConsumeInbound(ctx)
	if !ok {
		t.Fatal("no inbound event received")
	}
	if evt.Message.ID != 9 {
		t.Errorf("expected only the valid message frame, got %+v", evt.Message)
	}
}

func TestWriteLoopSendsAgentReplies(t *testing.T) {
	received := make(chan []byte, 1)
	srv := fakeBackend(t, nil, received)
	defer srv.Close()

	events := bus.NewEventBus()
	defer events.Close()

	ch := dialTest(t, srv, events)
	defer ch.Close()
	ch.Start(context.Background())

	err := events.PublishOutbound(context.Background(), bus.OutboundEvent{ConversationID: 5, Content: "Bom dia! Já separo seu pedido."})
	if err != nil {
		t.Fatalf("PublishOutbound: %v", err)
	}

	select {
	case data := <-received:
		var msg api.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("client frame is not message JSON: %v", err)
		}
		if msg.ConversationID != 5 || msg.SenderType != api.SenderAgent {
			t.Errorf("unexpected outbound message: %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("backend never received the agent reply")
	}
}

func TestNoReconnectAfterServerClose(t *testing.T) {
	srv := fakeBackend(t, nil, nil)

	events := bus.NewEventBus()
	defer events.Close()

	ch := dialTest(t, srv, events)
	ch.Start(context.Background())

	srv.Close()

	select {
	case <-ch.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("read loop did not exit after server close")
	}
	if !ch.Closed() {
		t.Error("channel should report closed")
	}
}
