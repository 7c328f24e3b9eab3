package hook

import (
	"errors"
	"testing"
)

func TestEmitRunsListenersInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		bus.Subscribe(CardDrawn, func(Event) (Result, error) {
			order = append(order, i)
			return Result{}, nil
		})
	}

	outcome, err := bus.Emit(Event{Name: CardDrawn})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if outcome.Heard != 3 {
		t.Fatalf("heard = %d, want 3", outcome.Heard)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("listeners ran out of order: %v", order)
	}
}

func TestEmitVetoAndDeltaAggregation(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(BeforeAttackerAction, func(Event) (Result, error) {
		return Result{DistanceDelta: 1}, nil
	})
	bus.Subscribe(BeforeAttackerAction, func(Event) (Result, error) {
		return Result{DistanceDelta: -1}, nil
	})
	bus.Subscribe(BeforeAttackerAction, func(Event) (Result, error) {
		return Result{Veto: true, DistanceDelta: 2}, nil
	})

	outcome, err := bus.Emit(Event{Name: BeforeAttackerAction, Distance: 3})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !outcome.Vetoed {
		t.Fatal("expected veto")
	}
	if outcome.DistanceDelta != 2 {
		t.Fatalf("delta = %d, want 2", outcome.DistanceDelta)
	}
	if outcome.Heard != 3 {
		t.Fatalf("heard = %d, want 3 (veto must not stop later listeners)", outcome.Heard)
	}
}

func TestEmitIgnoresResultsForNotifications(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(LifeRemoved, func(Event) (Result, error) {
		return Result{Veto: true, DistanceDelta: 5}, nil
	})

	outcome, err := bus.Emit(Event{Name: LifeRemoved, Amount: 1})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if outcome.Vetoed || outcome.DistanceDelta != 0 {
		t.Fatalf("notification outcome leaked listener result: %+v", outcome)
	}
}

func TestEmitPropagatesListenerError(t *testing.T) {
	bus := NewBus()
	boom := errors.New("broken handler")
	bus.Subscribe(BeforeDamage, func(Event) (Result, error) {
		return Result{}, boom
	})

	if _, err := bus.Emit(Event{Name: BeforeDamage}); !errors.Is(err, boom) {
		t.Fatalf("expected listener error to propagate, got %v", err)
	}
}

func TestSubscriptionCancel(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(BeforeDamage, func(Event) (Result, error) {
		return Result{Veto: true}, nil
	})
	if bus.Len(BeforeDamage) != 1 {
		t.Fatalf("len = %d, want 1", bus.Len(BeforeDamage))
	}

	sub.Cancel()
	if bus.Len(BeforeDamage) != 0 {
		t.Fatalf("len after cancel = %d, want 0", bus.Len(BeforeDamage))
	}

	outcome, err := bus.Emit(Event{Name: BeforeDamage})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if outcome.Vetoed {
		t.Fatal("cancelled listener still vetoed")
	}

	// Cancel is idempotent and must not disturb other subscriptions.
	other := bus.Subscribe(BeforeDamage, func(Event) (Result, error) {
		return Result{}, nil
	})
	sub.Cancel()
	if bus.Len(BeforeDamage) != 1 {
		t.Fatalf("double cancel removed another listener, len = %d", bus.Len(BeforeDamage))
	}
	other.Cancel()
}

func TestVetoCapable(t *testing.T) {
	vetoable := []Name{BeforeDamage, BeforeAttackerAction, BeforePlayerMove, BeforeDrawCards}
	for _, name := range vetoable {
		if !name.VetoCapable() {
			t.Errorf("%s should be veto-capable", name)
		}
	}
	notifications := []Name{CardDrawn, LifeAdded, LifeRemoved, LivesDepleted, ShowCards}
	for _, name := range notifications {
		if name.VetoCapable() {
			t.Errorf("%s should not be veto-capable", name)
		}
	}
}
