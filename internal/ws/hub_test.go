package ws

import (
	"errors"
	"testing"
	"time"
)

type subscriberStub struct {
	received chan []byte
	fail     bool
	closed   bool
}

func (s *subscriberStub) Send(payload []byte) error {
	if s.fail {
		return errors.New("send failed")
	}
	s.received <- payload
	return nil
}

func (s *subscriberStub) Close() {
	s.closed = true
}

func TestHubBroadcastsToSubscribers(t *testing.T) {
	hub := NewHub()
	sub := &subscriberStub{received: make(chan []byte, 1)}
	hub.Register(sub)

	hub.Broadcast([]byte(`{"type":"post_created"}`))

	select {
	case payload := <-sub.received:
		if string(payload) != `{"type":"post_created"}` {
			t.Fatalf("unexpected payload: %s", payload)
		}
	case <-time.After(time.Second):
		t.Fatalf("subscriber never received broadcast")
	}
}

func TestHubDropsFailingSubscriber(t *testing.T) {
	hub := NewHub()
	failing := &subscriberStub{fail: true}
	healthy := &subscriberStub{received: make(chan []byte, 2)}
	hub.Register(failing)
	hub.Register(healthy)

	hub.Broadcast([]byte("one"))
	hub.Broadcast([]byte("two"))

	for i := 0; i < 2; i++ {
		select {
		case <-healthy.received:
		case <-time.After(time.Second):
			t.Fatalf("healthy subscriber missed broadcast %d", i+1)
		}
	}
	if !failing.closed {
		t.Fatalf("failing subscriber should be closed")
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := &subscriberStub{received: make(chan []byte, 1)}
	hub.Register(sub)
	hub.Unregister(sub)

	hub.Broadcast([]byte("late"))

	select {
	case <-sub.received:
		t.Fatalf("unregistered subscriber received broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}
