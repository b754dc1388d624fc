package bus

import (
	"context"
	"testing"
	"time"

	"github.com/3afrios/friosdesk/pkg/api"
)

func TestPublishConsumeInbound(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	ctx := context.Background()
	evt := InboundEvent{Message: api.Message{ID: 7, ConversationID: 2, Content: "oi", SenderType: api.SenderCustomer}}
	if err := eb.PublishInbound(ctx, evt); err != nil {
		t.Fatalf("PublishInbound: %v", err)
	}

	got, ok := eb.ConsumeInbound(ctx)
	if !ok {
		t.Fatal("ConsumeInbound returned not ok")
	}
	if got.Message.ID != 7 || got.Message.Content != "oi" {
		t.Errorf("unexpected event: %+v", got)
	}
}

func TestPublishOutboundAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()

	err := eb.PublishOutbound(context.Background(), OutboundEvent{ConversationID: 1, Content: "olá"})
	if err != ErrBusClosed {
		t.Errorf("expected ErrBusClosed, got %v", err)
	}
}

func TestConsumeRespectsContext(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, ok := eb.ConsumeInbound(ctx)
	if ok {
		t.Error("expected not ok on context timeout")
	}
	if time.Since(start) > time.Second {
		t.Error("consume did not return promptly on context cancellation")
	}
}

func TestCloseUnblocksSubscribers(t *testing.T) {
	eb := NewEventBus()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, ok := eb.SubscribeOutbound(context.Background())
		if ok {
			t.Error("expected not ok after close")
		}
	}()

	eb.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscriber still blocked after Close")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()
}
