package state

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/goaltrack/internal/ai"
	"github.com/sandeepkv93/goaltrack/internal/derive"
	"github.com/sandeepkv93/goaltrack/internal/effects"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/platform"
	"github.com/sandeepkv93/goaltrack/internal/storage"
)

const (
	KeyTasks                = "tasks"
	KeyGoals                = "goals"
	KeyProgressHistory      = "progress-history"
	KeyAchievements         = "achievements"
	KeyUserStats            = "user-stats"
	KeyNotificationSettings = "notification-settings"
	KeyNotifications        = "notifications"
	KeyMomentum             = "momentum"
	KeyOnboarded            = "onboarded"
	KeyLastCelebration      = "last-celebration"
)

const (
	DefaultXPPerTask = 10
	DefaultRetention = 50
)

var (
	ErrEmptyTask        = errors.New("state: task text is required")
	ErrEmptyGoalTitle   = errors.New("state: goal title is required")
	ErrTaskNotFound     = errors.New("state: task not found")
	ErrGoalNotFound     = errors.New("state: goal not found")
	ErrGoalPending      = errors.New("state: a goal is already being created")
	ErrPermissionDenied = errors.New("state: notification permission denied")
)

// ExternalError marks a failure of an outside collaborator. State is left as
// it was before the action.
type ExternalError struct {
	Op  string
	Err error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("state: %s: %v", e.Op, e.Err)
}

func (e *ExternalError) Unwrap() error { return e.Err }

// WeeklyReviewToggler turns the recurring weekly review reminder on or off.
type WeeklyReviewToggler interface {
	SetEnabled(enabled bool) error
}

type Options struct {
	Store        *storage.Store
	Dispatcher   *effects.Dispatcher
	Images       ai.ImageGenerator
	Suggester    ai.Suggester
	Permissions  platform.Permissions
	Notifier     platform.Notifier
	WeeklyReview WeeklyReviewToggler
	Policy       derive.ProgressPolicy
	XPPerTask    int
	Retention    int
	Now          func() time.Time
	NewID        func() string
	Logger       *log.Logger
}

// Store owns the authoritative snapshot. Mutators are serialized and replace
// slices wholesale; readers get copies.
type Store struct {
	kv          *storage.Store
	dispatcher  *effects.Dispatcher
	images      ai.ImageGenerator
	suggester   ai.Suggester
	permissions platform.Permissions
	notifier    platform.Notifier
	weekly      WeeklyReviewToggler
	policy      derive.ProgressPolicy
	xpPerTask   int
	retention   int
	now         func() time.Time
	newID       func() string
	logger      *log.Logger

	goalPending atomic.Bool

	mu              sync.Mutex
	tasks           []model.Task
	goals           []model.Goal
	history         []model.ProgressRecord
	achievements    []model.Achievement
	stats           model.UserStats
	settings        model.NotificationSettings
	notifications   []model.AppNotification
	momentum        int
	onboarded       bool
	lastCelebration string
}

func New(opts Options) *Store {
	s := &Store{
		kv:          opts.Store,
		dispatcher:  opts.Dispatcher,
		images:      opts.Images,
		suggester:   opts.Suggester,
		permissions: opts.Permissions,
		notifier:    opts.Notifier,
		weekly:      opts.WeeklyReview,
		policy:      opts.Policy,
		xpPerTask:   opts.XPPerTask,
		retention:   opts.Retention,
		now:         opts.Now,
		newID:       opts.NewID,
		logger:      opts.Logger,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.kv == nil {
		s.kv = storage.NewStore(nil, storage.DefaultPrefix, s.logger)
	}
	if s.permissions == nil {
		s.permissions = platform.StaticPermissions{Value: model.PermissionDenied}
	}
	if s.dispatcher == nil {
		s.dispatcher = effects.NewDispatcher(effects.Options{Permissions: s.permissions, Logger: s.logger})
	}
	if s.notifier == nil {
		s.notifier = platform.NoopNotifier{}
	}
	if s.policy == nil {
		s.policy = derive.UniformPolicy{}
	}
	if s.xpPerTask <= 0 {
		s.xpPerTask = DefaultXPPerTask
	}
	if s.retention <= 0 {
		s.retention = DefaultRetention
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	s.load()
	return s
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = storage.Get(s.kv, KeyTasks, model.SeedTasks())
	s.goals = storage.Get(s.kv, KeyGoals, model.SeedGoals())
	s.history = storage.Get(s.kv, KeyProgressHistory, []model.ProgressRecord{})
	s.achievements = model.MergeAchievements(storage.Get(s.kv, KeyAchievements, model.SeedAchievements()))
	s.stats = storage.Get(s.kv, KeyUserStats, model.SeedUserStats())
	if s.stats.Validate() != nil {
		s.stats = model.SeedUserStats()
	}
	s.settings = storage.Get(s.kv, KeyNotificationSettings, model.SeedNotificationSettings())
	s.notifications = storage.Get(s.kv, KeyNotifications, []model.AppNotification{})
	s.momentum = storage.Get(s.kv, KeyMomentum, model.SeedStreak)
	s.onboarded = storage.Get(s.kv, KeyOnboarded, false)
	s.lastCelebration = storage.Get(s.kv, KeyLastCelebration, "")

	// goals may lag tasks after a torn write
	s.goals = derive.ApplyGoalProgress(s.goals, s.tasks, s.policy)
	s.dispatcher.Reschedule(s.settings, s.incompleteLocked())
	s.syncWeeklyLocked()
}

// Snapshot is a read-only copy of the current state plus derived values.
type Snapshot struct {
	Tasks           []model.Task               `json:"tasks"`
	Goals           []model.Goal               `json:"goals"`
	ProgressHistory []model.ProgressRecord     `json:"progressHistory"`
	Achievements    []model.Achievement        `json:"achievements"`
	UserStats       model.UserStats            `json:"userStats"`
	Settings        model.NotificationSettings `json:"notificationSettings"`
	Notifications   []model.AppNotification    `json:"notifications"`
	Momentum        int                        `json:"momentum"`
	Onboarded       bool                       `json:"onboarded"`
	DailyProgress   int                        `json:"dailyProgress"`
	LevelProgress   int                        `json:"levelProgress"`
	UnreadCount     int                        `json:"unreadCount"`
	Permission      model.PermissionState      `json:"permission"`
	Celebrating     bool                       `json:"celebrating"`
	GoalPending     bool                       `json:"goalPending"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		Tasks:           slices.Clone(s.tasks),
		Goals:           slices.Clone(s.goals),
		ProgressHistory: slices.Clone(s.history),
		Achievements:    slices.Clone(s.achievements),
		UserStats:       s.stats,
		Settings:        s.settings,
		Notifications:   slices.Clone(s.notifications),
		Momentum:        s.momentum,
		Onboarded:       s.onboarded,
		DailyProgress:   derive.DailyProgress(s.tasks),
		LevelProgress:   derive.LevelProgress(s.stats),
	}
	s.mu.Unlock()
	for _, n := range snap.Notifications {
		if !n.Read {
			snap.UnreadCount++
		}
	}
	snap.Permission = s.permissions.State()
	snap.Celebrating = s.dispatcher.Celebrating()
	snap.GoalPending = s.goalPending.Load()
	return snap
}

// Weekly returns the last seven days of progress ending today.
func (s *Store) Weekly() []derive.DayProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return derive.WeeklySnapshot(s.history, s.now())
}

func (s *Store) Toasts() *effects.ToastQueue { return s.dispatcher.Toasts() }

func (s *Store) Celebrating() bool { return s.dispatcher.Celebrating() }

func (s *Store) CelebrationDuration() time.Duration { return s.dispatcher.CelebrationDuration() }

func (s *Store) incompleteLocked() int {
	return len(s.tasks) - derive.CountCompleted(s.tasks)
}

func (s *Store) syncWeeklyLocked() {
	if s.weekly == nil {
		return
	}
	if err := s.weekly.SetEnabled(s.settings.WeeklyReviewReminders); err != nil {
		s.logger.Printf("state: weekly review reminder: %v", err)
	}
}
