package events

import (
	"testing"
	"time"
)

func TestPublishDelivers(t *testing.T) {
	bus := NewBus()
	ch, unsub := bus.Subscribe(EventTradeAdded, 1)
	defer unsub()

	bus.Publish(EventTradeAdded, JournalUpdate{Topic: EventTradeAdded, JournalID: "j1"})

	select {
	case msg := <-ch:
		upd, ok := msg.(JournalUpdate)
		if !ok || upd.JournalID != "j1" {
			t.Fatalf("unexpected payload: %#v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	bus := NewBus()
	ch, unsub := bus.Subscribe(EventTradeAdded, 1)
	defer unsub()

	// Fill the buffer, then keep publishing; the extras are dropped, not queued.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(EventTradeAdded, JournalUpdate{Topic: EventTradeAdded})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	if got := len(ch); got != 1 {
		t.Fatalf("expected exactly the buffered message, got %d", got)
	}
}

func TestSubscribeAllMultiplexes(t *testing.T) {
	bus := NewBus()
	stream, unsub := bus.SubscribeAll([]Event{EventTradeAdded, EventExpenseAdded}, 10)
	defer unsub()

	bus.Publish(EventTradeAdded, JournalUpdate{Topic: EventTradeAdded})
	bus.Publish(EventExpenseAdded, LedgerUpdate{Topic: EventExpenseAdded})
	bus.Publish(EventSummaryUpdated, LedgerUpdate{Topic: EventSummaryUpdated}) // not subscribed

	received := 0
	timeout := time.After(time.Second)
	for received < 2 {
		select {
		case <-stream:
			received++
		case <-timeout:
			t.Fatalf("expected 2 multiplexed messages, got %d", received)
		}
	}

	select {
	case msg := <-stream:
		t.Fatalf("unsubscribed topic leaked through: %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}
