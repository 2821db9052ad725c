package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestEngineStressConcurrentScheduleAndCancel(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200

	now := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := fmt.Sprintf("w%d-%d", w, i)
				ev := ReminderEvent{
					ID:        id,
					Kind:      KindDailyReminder,
					TriggerAt: now.Add(time.Duration(500+(w+i)%50) * time.Millisecond),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule %s: %v", id, err)
					return
				}
				// reschedule every event once so replacement races with the loop
				ev.TriggerAt = ev.TriggerAt.Add(10 * time.Millisecond)
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("reschedule %s: %v", id, err)
					return
				}
				if i%2 == 1 && !engine.Cancel(id) {
					t.Errorf("cancel %s: not pending", id)
					return
				}
			}
		}()
	}
	wg.Wait()

	want := workers * perWorker / 2
	seen := make(map[string]bool, want)
	deadline := time.After(5 * time.Second)
	for len(seen) < want {
		select {
		case <-deadline:
			t.Fatalf("timeout: received=%d want=%d dropped=%d", len(seen), want, engine.Dropped())
		case ev := <-engine.C():
			if seen[ev.ID] {
				t.Fatalf("event %s delivered twice", ev.ID)
			}
			seen[ev.ID] = true
		}
	}

	select {
	case ev := <-engine.C():
		t.Fatalf("cancelled or duplicate event delivered: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
	if engine.Len() != 0 {
		t.Fatalf("expected empty engine, got %d pending", engine.Len())
	}
}
