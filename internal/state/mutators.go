package state

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/goaltrack/internal/ai"
	"github.com/sandeepkv93/goaltrack/internal/derive"
	"github.com/sandeepkv93/goaltrack/internal/effects"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/platform"
	"github.com/sandeepkv93/goaltrack/internal/scheduler"
	"github.com/sandeepkv93/goaltrack/internal/storage"
)

const permissionDeniedText = "You have blocked notifications. Enable them for this terminal to receive reminders."
const goalImageFailedText = "There was an error generating an image for your goal. Please try again."

func (s *Store) ToggleTask(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOfTask(s.tasks, id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	next := append([]model.Task(nil), s.tasks...)
	next[idx].Completed = !next[idx].Completed
	xp := 0
	if next[idx].Completed {
		xp = s.xpPerTask
	}
	s.commitTasksLocked(next, xp)
	return next[idx], nil
}

func (s *Store) AddTask(text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyTask
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	task := model.Task{ID: s.newID(), Text: text}
	next := make([]model.Task, 0, len(s.tasks)+1)
	next = append(next, s.tasks...)
	next = append(next, task)
	s.commitTasksLocked(next, 0)
	return task, nil
}

func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOfTask(s.tasks, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	s.commitTasksLocked(next, 0)
	return nil
}

// AddGoal asks the image generator for an illustration and only then adds the
// goal. Only one goal creation may be in flight; other mutators are not held
// up while it waits.
func (s *Store) AddGoal(ctx context.Context, title string, typ model.GoalType) (model.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Goal{}, ErrEmptyGoalTitle
	}
	if !typ.IsValid() {
		return model.Goal{}, fmt.Errorf("%w: %q", model.ErrInvalidGoalType, typ)
	}
	if !s.goalPending.CompareAndSwap(false, true) {
		return model.Goal{}, ErrGoalPending
	}
	defer s.goalPending.Store(false)

	if s.images == nil {
		s.Toasts().Error("Goal Creation Failed", goalImageFailedText)
		return model.Goal{}, &ExternalError{Op: "generate goal image", Err: ai.ErrNotConfigured}
	}
	img, err := s.images.GenerateGoalImage(ctx, ai.GoalImageRequest{GoalTitle: title})
	if err != nil {
		s.Toasts().Error("Goal Creation Failed", goalImageFailedText)
		return model.Goal{}, &ExternalError{Op: "generate goal image", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	goal := model.Goal{ID: s.newID(), Title: title, Type: typ, ImageURL: img.ImageURL}
	goal.Progress = s.policy.GoalProgress(goal, derive.GoalProgress(s.tasks))
	next := make([]model.Goal, 0, len(s.goals)+1)
	next = append(next, s.goals...)
	next = append(next, goal)
	s.commitGoalsLocked(next)
	return goal, nil
}

func (s *Store) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, g := range s.goals {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	next := make([]model.Goal, 0, len(s.goals)-1)
	next = append(next, s.goals[:idx]...)
	next = append(next, s.goals[idx+1:]...)
	s.goals = next
	storage.Set(s.kv, KeyGoals, s.goals)
	return nil
}

type SettingsPatch struct {
	DailyReminders        *bool `json:"dailyReminders,omitempty"`
	WeeklyReviewReminders *bool `json:"weeklyReviewReminders,omitempty"`
}

// UpdateNotificationSettings applies patch. Turning daily reminders on asks
// for push permission first; when it is refused the setting stays off and
// ErrPermissionDenied is returned alongside the stored settings.
func (s *Store) UpdateNotificationSettings(ctx context.Context, patch SettingsPatch) (model.NotificationSettings, error) {
	var denied bool
	if patch.DailyReminders != nil && *patch.DailyReminders {
		state, err := s.permissions.Request(ctx)
		if err != nil {
			return s.Settings(), &ExternalError{Op: "request notification permission", Err: err}
		}
		denied = state != model.PermissionGranted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	if patch.DailyReminders != nil {
		next.DailyReminders = *patch.DailyReminders && !denied
	}
	if patch.WeeklyReviewReminders != nil {
		next.WeeklyReviewReminders = *patch.WeeklyReviewReminders
	}
	s.settings = next
	storage.Set(s.kv, KeyNotificationSettings, s.settings)
	s.dispatcher.Reschedule(s.settings, s.incompleteLocked())
	s.syncWeeklyLocked()

	if denied {
		s.Toasts().Error("Permission Denied", permissionDeniedText)
		return s.settings, ErrPermissionDenied
	}
	return s.settings, nil
}

func (s *Store) Settings() model.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// ResetAll restores the seed snapshot. It is the only path that locks
// achievements again. Platform permission is not app data and survives.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = model.SeedTasks()
	s.goals = model.SeedGoals()
	s.history = []model.ProgressRecord{}
	s.achievements = model.SeedAchievements()
	s.stats = model.SeedUserStats()
	s.settings = model.SeedNotificationSettings()
	s.notifications = []model.AppNotification{}
	s.momentum = model.SeedStreak
	s.onboarded = false
	s.lastCelebration = ""

	storage.Set(s.kv, KeyTasks, s.tasks)
	storage.Set(s.kv, KeyGoals, s.goals)
	storage.Set(s.kv, KeyProgressHistory, s.history)
	storage.Set(s.kv, KeyAchievements, s.achievements)
	storage.Set(s.kv, KeyUserStats, s.stats)
	storage.Set(s.kv, KeyNotificationSettings, s.settings)
	storage.Set(s.kv, KeyNotifications, s.notifications)
	storage.Set(s.kv, KeyMomentum, s.momentum)
	storage.Set(s.kv, KeyOnboarded, s.onboarded)
	storage.Set(s.kv, KeyLastCelebration, s.lastCelebration)

	s.dispatcher.CancelReminder()
	s.dispatcher.Stop()
	s.syncWeeklyLocked()
}

// MarkNotificationsRead flags every notification read and reports how many
// changed.
func (s *Store) MarkNotificationsRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	next := make([]model.AppNotification, len(s.notifications))
	for i, n := range s.notifications {
		if !n.Read {
			n.Read = true
			changed++
		}
		next[i] = n
	}
	if changed == 0 {
		return 0
	}
	s.notifications = next
	storage.Set(s.kv, KeyNotifications, s.notifications)
	return changed
}

func (s *Store) CompleteOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onboarded = true
	storage.Set(s.kv, KeyOnboarded, true)
}

// WeeklyReview sends the reflection and the current goals to the suggester.
// It does not change state.
func (s *Store) WeeklyReview(ctx context.Context, reflection string) (ai.Suggestion, error) {
	s.mu.Lock()
	lines := make([]string, 0, len(s.goals))
	for _, g := range s.goals {
		lines = append(lines, fmt.Sprintf("%s (Progress: %d%%)", g.Title, g.Progress))
	}
	s.mu.Unlock()

	req := ai.SuggestionRequest{WeeklyReflection: reflection, CurrentGoals: strings.Join(lines, "\n")}
	if err := ai.ValidateSuggestionRequest(req); err != nil {
		return ai.Suggestion{}, err
	}
	if s.suggester == nil {
		return ai.Suggestion{}, &ExternalError{Op: "suggest goal adjustments", Err: ai.ErrNotConfigured}
	}
	out, err := s.suggester.SuggestGoalAdjustments(ctx, req)
	if err != nil {
		var vErr *ai.ValidationError
		if errors.As(err, &vErr) {
			return ai.Suggestion{}, err
		}
		s.Toasts().Error("Error", "There was an error getting suggestions from the AI. Please try again later.")
		return ai.Suggestion{}, &ExternalError{Op: "suggest goal adjustments", Err: err}
	}
	s.Toasts().Push(effects.Toast{Title: "Suggestions ready", Description: "Here are your AI-powered suggestions!"})
	return out, nil
}

// HandleReminder records a fired reminder and pushes it to the platform. A
// daily reminder is dropped when nothing is left to do or reminders were
// switched off after it was scheduled.
func (s *Store) HandleReminder(ctx context.Context, ev scheduler.ReminderEvent) (model.AppNotification, bool) {
	s.mu.Lock()
	switch ev.Kind {
	case scheduler.KindDailyReminder:
		if !s.settings.DailyReminders || s.incompleteLocked() == 0 {
			s.mu.Unlock()
			return model.AppNotification{}, false
		}
	case scheduler.KindWeeklyReview:
		if !s.settings.WeeklyReviewReminders {
			s.mu.Unlock()
			return model.AppNotification{}, false
		}
	}
	msg := ev.Message
	if msg == "" {
		msg = "Reminder"
	}
	n := model.AppNotification{
		ID:        s.newID(),
		Message:   msg,
		Type:      model.NotificationReminder,
		CreatedAt: s.now(),
	}
	s.recordLocked(n)
	if ev.Kind == scheduler.KindDailyReminder {
		s.dispatcher.Reschedule(s.settings, s.incompleteLocked())
	}
	s.mu.Unlock()

	if s.permissions.State() == model.PermissionGranted {
		if err := s.notifier.Notify(ctx, platform.Push{Title: "GoalTrack AI", Body: msg}); err != nil {
			s.logger.Printf("state: push reminder: %v", err)
		}
	}
	return n, true
}

func indexOfTask(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
