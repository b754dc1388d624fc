// Package bus decouples the push channel from the chat console. The
// websocket reader publishes inbound events, the console consumes them;
// agent replies travel the other way to the websocket writer.
package bus

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrBusClosed is returned when publishing to a closed EventBus.
var ErrBusClosed = errors.New("event bus closed")

type EventBus struct {
	inbound  chan InboundEvent
	outbound chan OutboundEvent
	done     chan struct{}
	closed   atomic.Bool
}

func NewEventBus() *EventBus {
	return &EventBus{
		inbound:  make(chan InboundEvent, 100),
		outbound: make(chan OutboundEvent, 100),
		done:     make(chan struct{}),
	}
}

func (eb *EventBus) PublishInbound(ctx context.Context, evt InboundEvent) error {
	if eb.closed.Load() {
		return ErrBusClosed
	}
	select {
	case eb.inbound <- evt:
		return nil
	case <-eb.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (eb *EventBus) ConsumeInbound(ctx context.Context) (InboundEvent, bool) {
	select {
	case evt, ok := <-eb.inbound:
		return evt, ok
	case <-eb.done:
		return InboundEvent{}, false
	case <-ctx.Done():
		return InboundEvent{}, false
	}
}

func (eb *EventBus) PublishOutbound(ctx context.Context, evt OutboundEvent) error {
	if eb.closed.Load() {
		return ErrBusClosed
	}
	select {
	case eb.outbound <- evt:
		return nil
	case <-eb.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (eb *EventBus) SubscribeOutbound(ctx context.Context) (OutboundEvent, bool) {
	select {
	case evt, ok := <-eb.outbound:
		return evt, ok
	case <-eb.done:
		return OutboundEvent{}, false
	case <-ctx.Done():
		return OutboundEvent{}, false
	}
}

func (eb *EventBus) Close() {
	if eb.closed.CompareAndSwap(false, true) {
		close(eb.done)
	}
}
