package effects

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sandeepkv93/goaltrack/internal/scheduler"
)

const (
	WeeklyReviewID          = "weekly-review"
	DefaultWeeklyReviewSpec = "0 0 18 * * 0"
)

// WeeklyReviewJob wraps a cron entry that enqueues the weekly review reminder
// into the timer engine. Entries come and go with the setting.
type WeeklyReviewJob struct {
	mu      sync.Mutex
	cron    *cron.Cron
	spec    string
	target  ReminderScheduler
	now     func() time.Time
	logger  *log.Logger
	entry   cron.EntryID
	enabled bool
}

func NewWeeklyReviewJob(spec string, target ReminderScheduler, loc *time.Location, logger *log.Logger) (*WeeklyReviewJob, error) {
	if spec == "" {
		spec = DefaultWeeklyReviewSpec
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(spec); err != nil {
		return nil, fmt.Errorf("effects: invalid weekly review spec %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = log.Default()
	}
	return &WeeklyReviewJob{
		cron:   cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		spec:   spec,
		target: target,
		now:    time.Now,
		logger: logger,
	}, nil
}

func (j *WeeklyReviewJob) Start() {
	j.cron.Start()
}

func (j *WeeklyReviewJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *WeeklyReviewJob) SetEnabled(enabled bool) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if enabled == j.enabled {
		return nil
	}
	if !enabled {
		j.cron.Remove(j.entry)
		j.entry = 0
		j.enabled = false
		return nil
	}
	id, err := j.cron.AddFunc(j.spec, j.fire)
	if err != nil {
		return err
	}
	j.entry = id
	j.enabled = true
	return nil
}

func (j *WeeklyReviewJob) Enabled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enabled
}

// Next returns the next activation, or zero when disabled or not started.
func (j *WeeklyReviewJob) Next() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.enabled {
		return time.Time{}
	}
	return j.cron.Entry(j.entry).Next
}

func (j *WeeklyReviewJob) fire() {
	err := j.target.Schedule(scheduler.ReminderEvent{
		ID:        WeeklyReviewID,
		Kind:      scheduler.KindWeeklyReview,
		Message:   "Time for your weekly review. Reflect on your week and plan the next one.",
		TriggerAt: j.now(),
	})
	if err != nil {
		j.logger.Printf("effects: enqueue weekly review: %v", err)
	}
}
