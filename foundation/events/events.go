// Package events defines the notifications raised by the ledger and allows
// for the registering and receiving of those notifications.
package events

import (
	"fmt"
	"sync"
)

// Kind identifies the type of notification being raised.
type Kind string

// Set of notifications the ledger can raise.
const (
	KindTrace            Kind = "trace"
	KindTransferAccepted Kind = "transfer_accepted"
	KindTransferRejected Kind = "transfer_rejected"
	KindBlockMined       Kind = "block_mined"
	KindNoTransactions   Kind = "no_transactions"
	KindMiningAborted    Kind = "mining_aborted"
)

// Event is a single notification raised by the ledger.
type Event struct {
	Kind    Kind
	Message string
}

// New constructs an event with a formatted message.
func New(kind Kind, format string, args ...any) Event {
	return Event{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// String implements the fmt.Stringer interface for logging.
func (e Event) String() string {
	return e.Message
}

// =============================================================================

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	m  map[string]chan Event
	mu sync.RWMutex
}

// NewEvents constructs an events value for registering and receiving events.
func NewEvents() *Events {
	return &Events{
		m: make(map[string]chan Event),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events.
func (evt *Events) Acquire(id string) <-chan Event {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if exists {
		return ch
	}

	// A message is dropped if the receiver is not ready, this buffer gives
	// a slow receiver room to keep up with a burst of notifications.
	const messageBuffer = 100

	evt.m[id] = make(chan Event, messageBuffer)
	return evt.m[id]
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)
	return nil
}

// Send signals an event to every registered channel. Send will not block
// waiting for a receiver on any given channel.
func (evt *Events) Send(e Event) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- e:
		default:
		}
	}
}
