package events

import (
	"log"
	"sync"

	"ledger-core/pkg/i18n"
)

// Bus is a lightweight pub/sub broker using channels.
type Bus struct {
	mu   sync.RWMutex
	subs map[Event][]chan any
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Event][]chan any)}
}

// Subscribe registers a listener for an event and returns the channel and an
// unsubscribe function.
func (b *Bus) Subscribe(e Event, buffer int) (<-chan any, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan any, buffer)
	b.subs[e] = append(b.subs[e], ch)

	unsub := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[e]
		for i, c := range subs {
			if c == ch {
				close(c)
				b.subs[e] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}

	return ch, unsub
}

// SubscribeAll registers one listener across several topics, multiplexed onto
// a single channel. Used by the websocket stream.
func (b *Bus) SubscribeAll(topics []Event, buffer int) (<-chan any, func()) {
	out := make(chan any, buffer)
	var unsubs []func()
	var wg sync.WaitGroup

	for _, topic := range topics {
		ch, unsub := b.Subscribe(topic, buffer)
		unsubs = append(unsubs, unsub)
		wg.Add(1)
		go func(ch <-chan any) {
			defer wg.Done()
			for msg := range ch {
				select {
				case out <- msg:
				default:
					// drop if the consumer is slow
					log.Println(i18n.M().JournalEventDropped)
				}
			}
		}(ch)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Publish fan-outs the payload to subscribers asynchronously to avoid blocking.
func (b *Bus) Publish(e Event, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[e] {
		select {
		case ch <- payload:
		default:
			// drop if subscriber is slow; keep broker non-blocking
			log.Println(i18n.M().JournalEventDropped)
		}
	}
}
