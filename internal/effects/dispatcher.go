package effects

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/platform"
	"github.com/sandeepkv93/goaltrack/internal/scheduler"
)

const (
	DailyReminderID            = "daily-reminder"
	DefaultCelebrationDuration = 7 * time.Second
)

// ReminderScheduler is the subset of scheduler.Engine the dispatcher drives.
type ReminderScheduler interface {
	Schedule(ev scheduler.ReminderEvent) error
	Cancel(id string) bool
}

// Event is the outcome of one derivation pass.
type Event struct {
	Unlocked   []model.Achievement
	LeveledUp  bool
	NewLevel   int
	PerfectDay bool
	Settings   model.NotificationSettings
	Incomplete int
}

type Options struct {
	Scheduler           ReminderScheduler
	Permissions         platform.Permissions
	Toasts              *ToastQueue
	// ReminderAt is the local time of the daily reminder; nil means 20:00.
	ReminderAt          *model.DailyTime
	CelebrationDuration time.Duration
	Now                 func() time.Time
	NewID               func() string
	Logger              *log.Logger
}

type Dispatcher struct {
	scheduler   ReminderScheduler
	permissions platform.Permissions
	toasts      *ToastQueue
	reminderAt  model.DailyTime
	celebrate   time.Duration
	now         func() time.Time
	newID       func() string
	logger      *log.Logger

	mu               sync.Mutex
	celebrating      bool
	celebrationTimer *time.Timer
	celebrationSeq   uint64
}

func NewDispatcher(opts Options) *Dispatcher {
	d := &Dispatcher{
		scheduler:   opts.Scheduler,
		permissions: opts.Permissions,
		toasts:      opts.Toasts,
		reminderAt:  model.DailyTime{Hour: 20},
		celebrate:   opts.CelebrationDuration,
		now:         opts.Now,
		newID:       opts.NewID,
		logger:      opts.Logger,
	}
	if d.permissions == nil {
		d.permissions = platform.StaticPermissions{Value: model.PermissionDenied}
	}
	if d.toasts == nil {
		d.toasts = NewToastQueue()
	}
	if opts.ReminderAt != nil {
		d.reminderAt = *opts.ReminderAt
	}
	if d.celebrate <= 0 {
		d.celebrate = DefaultCelebrationDuration
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.newID == nil {
		d.newID = uuid.NewString
	}
	if d.logger == nil {
		d.logger = log.Default()
	}
	return d
}

func (d *Dispatcher) Toasts() *ToastQueue { return d.toasts }

// Dispatch performs the side effects of ev in a fixed order and returns the
// notifications to record, oldest first.
func (d *Dispatcher) Dispatch(ev Event) []model.AppNotification {
	now := d.now()
	var out []model.AppNotification

	for _, a := range ev.Unlocked {
		out = append(out, d.notification(fmt.Sprintf("Achievement unlocked: %s", a.Name), model.NotificationAchievement, now))
		d.toasts.Push(Toast{Title: "Achievement Unlocked!", Description: a.Name + ": " + a.Description})
	}

	if ev.LeveledUp {
		out = append(out, d.notification(fmt.Sprintf("Level up! You reached level %d.", ev.NewLevel), model.NotificationLevelUp, now))
	}

	if ev.PerfectDay {
		d.startCelebration()
	}

	d.Reschedule(ev.Settings, ev.Incomplete)
	return out
}

// Reschedule cancels any pending daily reminder and, when reminders are on,
// push is granted and work remains, schedules exactly one at the reminder time.
func (d *Dispatcher) Reschedule(settings model.NotificationSettings, incomplete int) bool {
	if d.scheduler == nil {
		return false
	}
	d.scheduler.Cancel(DailyReminderID)
	if !settings.DailyReminders || incomplete < 1 {
		return false
	}
	if d.permissions.State() != model.PermissionGranted {
		return false
	}
	err := d.scheduler.Schedule(scheduler.ReminderEvent{
		ID:        DailyReminderID,
		Kind:      scheduler.KindDailyReminder,
		Message:   reminderMessage(incomplete),
		TriggerAt: d.reminderAt.NextAfter(d.now()),
	})
	if err != nil {
		d.logger.Printf("effects: schedule reminder: %v", err)
		return false
	}
	return true
}

func (d *Dispatcher) CancelReminder() {
	if d.scheduler != nil {
		d.scheduler.Cancel(DailyReminderID)
	}
}

func (d *Dispatcher) Celebrating() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.celebrating
}

func (d *Dispatcher) CelebrationDuration() time.Duration { return d.celebrate }

func (d *Dispatcher) startCelebration() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.celebrationTimer != nil {
		d.celebrationTimer.Stop()
	}
	d.celebrating = true
	d.celebrationSeq++
	seq := d.celebrationSeq
	d.celebrationTimer = time.AfterFunc(d.celebrate, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.celebrationSeq == seq {
			d.celebrating = false
			d.celebrationTimer = nil
		}
	})
}

// Stop clears a running celebration.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.celebrationTimer != nil {
		d.celebrationTimer.Stop()
		d.celebrationTimer = nil
	}
	d.celebrating = false
}

func (d *Dispatcher) notification(msg string, typ model.NotificationType, at time.Time) model.AppNotification {
	return model.AppNotification{
		ID:        d.newID(),
		Message:   msg,
		Type:      typ,
		CreatedAt: at,
	}
}

func reminderMessage(incomplete int) string {
	if incomplete == 1 {
		return "You still have 1 task to finish today."
	}
	return fmt.Sprintf("You still have %d tasks to finish today.", incomplete)
}
