// Package hook implements the per-player publish/subscribe channel that lets
// cards in play intercept and modify core resolution steps.
//
// Veto-capable events let a listener cancel the surrounding action or shift
// the distance the action is resolved at. Notification events always run every
// listener and ignore results. Listener errors abort the emit and propagate to
// the call site; a broken card handler is a logic bug, not something to
// swallow.
package hook

// Name identifies a resolution event.
type Name string

// Veto-capable events. A listener result can cancel the surrounding action
// or contribute a distance delta.
const (
	BeforeDamage         Name = "before_damage"
	BeforeAttackerAction Name = "before_attacker_action"
	BeforePlayerMove     Name = "before_player_move"
	BeforeDrawCards      Name = "before_draw_cards"
)

// Notification events. Listener results are ignored.
const (
	CardDrawn     Name = "card_drawn"
	LifeAdded     Name = "life_added"
	LifeRemoved   Name = "life_removed"
	LivesDepleted Name = "lives_depleted"
	ShowCards     Name = "show_cards"
)

// VetoCapable reports whether listeners may cancel or modify this event.
func (n Name) VetoCapable() bool {
	switch n {
	case BeforeDamage, BeforeAttackerAction, BeforePlayerMove, BeforeDrawCards:
		return true
	}
	return false
}

// Event is the payload handed to listeners.
type Event struct {
	Name Name
	// SourceName is the acting player.
	SourceName string
	// TargetName is the player the action is aimed at, when there is one.
	TargetName string
	// CardName is the card driving the action, when there is one.
	CardName string
	// Amount carries damage points, life deltas, or draw counts.
	Amount int
	// Distance is the stored seating distance the action is gated on.
	Distance int
}

// Result is a single listener's verdict on a veto-capable event.
type Result struct {
	// Veto cancels the surrounding action.
	Veto bool
	// DistanceDelta shifts the effective distance for this action only.
	DistanceDelta int
}

// Listener reacts to one event.
type Listener func(Event) (Result, error)

// Outcome aggregates listener results for one emit.
type Outcome struct {
	// Vetoed is true when any listener vetoed the action.
	Vetoed bool
	// DistanceDelta is the sum of all listener deltas. Deltas are additive
	// because several pieces of equipment may shift range at once.
	DistanceDelta int
	// Heard is the number of listeners that ran.
	Heard int
}

type entry struct {
	seq uint64
	fn  Listener
}

// Bus is one player's hook channel. Listeners for the same event fire in
// registration order. Bus is not safe for concurrent use; the engine resolves
// one action at a time per session.
type Bus struct {
	listeners map[Name][]entry
	nextSeq   uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[Name][]entry)}
}

// Subscription is the opaque handle returned by Subscribe. Cancel releases
// the listener and is safe to call more than once.
type Subscription struct {
	bus  *Bus
	name Name
	seq  uint64
	done bool
}

// Cancel removes the subscribed listener. Idempotent.
func (s *Subscription) Cancel() {
	if s == nil || s.done {
		return
	}
	s.done = true
	entries := s.bus.listeners[s.name]
	for i, e := range entries {
		if e.seq == s.seq {
			s.bus.listeners[s.name] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Subscribe registers a listener for an event and returns its handle.
func (b *Bus) Subscribe(name Name, fn Listener) *Subscription {
	b.nextSeq++
	b.listeners[name] = append(b.listeners[name], entry{seq: b.nextSeq, fn: fn})
	return &Subscription{bus: b, name: name, seq: b.nextSeq}
}

// Emit runs every listener for the event in registration order.
//
// For veto-capable events the outcome ORs vetoes and sums distance deltas;
// all listeners still run so stacked equipment is heard. For notification
// events results are discarded. The first listener error aborts the emit.
//
// Listeners may cancel their own subscription while running (a card that
// discards itself after its check); the emit walks a snapshot of the
// registration list, so mid-emit changes take effect on the next emit.
func (b *Bus) Emit(evt Event) (Outcome, error) {
	var outcome Outcome
	entries := make([]entry, len(b.listeners[evt.Name]))
	copy(entries, b.listeners[evt.Name])
	for _, e := range entries {
		result, err := e.fn(evt)
		if err != nil {
			return Outcome{}, err
		}
		outcome.Heard++
		if !evt.Name.VetoCapable() {
			continue
		}
		if result.Veto {
			outcome.Vetoed = true
		}
		outcome.DistanceDelta += result.DistanceDelta
	}
	return outcome, nil
}

// Len returns the number of listeners registered for an event. Tests use it
// to prove equipment releases its hooks on destroy.
func (b *Bus) Len(name Name) int {
	return len(b.listeners[name])
}
