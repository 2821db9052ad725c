package scheduler

import (
	"fmt"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(ReminderEvent{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(ReminderEvent{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(ReminderEvent{
			ID:        fmt.Sprintf("evt-%d", i),
			TriggerAt: now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(ReminderEvent{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
	if err := engine.Schedule(ReminderEvent{TriggerAt: time.Now()}); err != ErrMissingID {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestScheduleReplacesPendingEventWithSameID(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(ReminderEvent{ID: "daily", Kind: KindDailyReminder, Message: "old", TriggerAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule first: %v", err)
	}
	if err := engine.Schedule(ReminderEvent{ID: "daily", Kind: KindDailyReminder, Message: "new", TriggerAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule second: %v", err)
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Message != "new" {
		t.Fatalf("expected replacement event, got %q", ev.Message)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("expected a single event, got extra %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelRemovesPendingEvent(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	at := time.Now().UTC().Add(40 * time.Millisecond)
	if err := engine.Schedule(ReminderEvent{ID: "daily", TriggerAt: at}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if got, ok := engine.Pending("daily"); !ok || !got.Equal(at) {
		t.Fatalf("expected pending event at %v, got %v ok=%v", at, got, ok)
	}
	if !engine.Cancel("daily") {
		t.Fatalf("expected cancel to report a pending event")
	}
	if engine.Cancel("daily") {
		t.Fatalf("second cancel should report nothing pending")
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("cancelled event fired: %+v", ev)
	case <-time.After(120 * time.Millisecond):
	}
}

func TestScheduleAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(ReminderEvent{ID: "x", TriggerAt: time.Now()}); err != ErrEngineStopped {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan ReminderEvent, timeout time.Duration) ReminderEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return ReminderEvent{}
	}
}
