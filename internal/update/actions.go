package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/state"
)

var (
	errGoalInFlight   = errors.New("a goal is already being created")
	errReviewInFlight = errors.New("suggestions are already being generated")
)

func (m Model) handleDashboardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.Pane == PaneTasks {
			m.Pane = PaneGoals
		} else {
			m.Pane = PaneTasks
		}
	case "j", "down":
		if m.Pane == PaneTasks && m.TaskCursor < len(m.Snapshot.Tasks)-1 {
			m.TaskCursor++
		}
		if m.Pane == PaneGoals && m.GoalCursor < len(m.Snapshot.Goals)-1 {
			m.GoalCursor++
		}
	case "k", "up":
		if m.Pane == PaneTasks && m.TaskCursor > 0 {
			m.TaskCursor--
		}
		if m.Pane == PaneGoals && m.GoalCursor > 0 {
			m.GoalCursor--
		}
	case " ", "enter":
		if m.Pane != PaneTasks {
			return m, nil
		}
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if _, err := m.Store.ToggleTask(task.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		return m.afterMutation()
	case "x":
		return m.deleteSelected()
	case "a":
		m.Capture = CaptureState{Active: true, Target: PaneTasks, GoalType: m.Capture.GoalType}
		m.captureInput.SetValue("")
		m.captureInput.Placeholder = "New task"
	case "g":
		if m.GoalPending {
			m.Status = StatusBar{Text: errGoalInFlight.Error(), IsError: true}
			return m, nil
		}
		m.Capture = CaptureState{Active: true, Target: PaneGoals, GoalType: m.Capture.GoalType}
		m.captureInput.SetValue("")
		m.captureInput.Placeholder = fmt.Sprintf("New %s goal (tab switches type)", m.Capture.GoalType)
	case "o":
		if !m.Snapshot.Onboarded {
			m.Store.CompleteOnboarding()
			m.refresh()
			m.Status = StatusBar{Text: "welcome aboard"}
		}
	}
	return m, nil
}

func (m Model) deleteSelected() (Model, tea.Cmd) {
	if m.Pane == PaneGoals {
		goal, ok := m.selectedGoal()
		if !ok {
			return m, nil
		}
		if err := m.Store.DeleteGoal(goal.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.refresh()
		m.Status = StatusBar{Text: fmt.Sprintf("goal deleted: %s", goal.Title)}
		return m, nil
	}
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if err := m.Store.DeleteTask(task.ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m, cmd := m.afterMutation()
	m.Status = StatusBar{Text: fmt.Sprintf("task deleted: %s", task.Text)}
	return m, cmd
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "esc":
		m.Capture.Active = false
		m.captureInput.SetValue("")
		return m, nil
	case "tab":
		if m.Capture.Target == PaneGoals {
			if m.Capture.GoalType == model.GoalTypeWeekly {
				m.Capture.GoalType = model.GoalTypeMonthly
			} else {
				m.Capture.GoalType = model.GoalTypeWeekly
			}
			m.captureInput.Placeholder = fmt.Sprintf("New %s goal (tab switches type)", m.Capture.GoalType)
		}
		return m, nil
	case "enter":
		text := m.captureInput.Value()
		if m.Capture.Target == PaneGoals {
			next, cmd, started := m.startGoal(text, m.Capture.GoalType)
			if started {
				next.Capture.Active = false
				next.captureInput.SetValue("")
			}
			return next, cmd
		}
		task, err := m.Store.AddTask(text)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Capture.Active = false
		m.captureInput.SetValue("")
		next, cmd := m.afterMutation()
		next.TaskCursor = len(next.Snapshot.Tasks) - 1
		next.Status = StatusBar{Text: fmt.Sprintf("added task: %s", task.Text)}
		return next, cmd
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.captureInput.SetValue(m.captureInput.Value() + string(msg.Runes))
		return m, nil
	}
	m.captureInput, _ = m.captureInput.Update(msg)
	return m, nil
}

// startGoal validates locally and hands the slow image request to a command.
// The goal shortcut stays disabled until GoalCreatedMsg arrives.
func (m Model) startGoal(title string, typ model.GoalType) (Model, tea.Cmd, bool) {
	title = strings.TrimSpace(title)
	var err error
	switch {
	case m.GoalPending:
		err = errGoalInFlight
	case title == "":
		err = state.ErrEmptyGoalTitle
	case !typ.IsValid():
		err = fmt.Errorf("%w: %q", model.ErrInvalidGoalType, typ)
	}
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil, false
	}
	m.GoalPending = true
	m.Status = StatusBar{Text: fmt.Sprintf("generating image for %q", title)}
	return m, tea.Batch(m.busySpinner.Tick, addGoalCmd(m.ctx, m.Store, title, typ)), true
}

func addGoalCmd(ctx context.Context, store *state.Store, title string, typ model.GoalType) tea.Cmd {
	return func() tea.Msg {
		goal, err := store.AddGoal(ctx, title, typ)
		return GoalCreatedMsg{Goal: goal, Err: err}
	}
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.ReviewEditing {
		switch msg.String() {
		case "e", "i":
			if m.ReviewPending {
				m.Status = StatusBar{Text: errReviewInFlight.Error(), IsError: true}
				return m, nil
			}
			m.ReviewEditing = true
			return m, nil
		case "enter":
			next, cmd, _ := m.startReview(m.reflectionArea.Value())
			return next, cmd
		}
		m.suggestionView, _ = m.suggestionView.Update(msg)
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "esc":
		m.ReviewEditing = false
		return m, nil
	case "ctrl+s":
		m.ReviewEditing = false
		next, cmd, _ := m.startReview(m.reflectionArea.Value())
		return next, cmd
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.reflectionArea.InsertString(string(msg.Runes))
		return m, nil
	}
	m.reflectionArea, _ = m.reflectionArea.Update(msg)
	return m, nil
}

func (m Model) startReview(reflection string) (Model, tea.Cmd, bool) {
	if m.ReviewPending {
		m.LastError = errReviewInFlight
		m.Status = StatusBar{Text: errReviewInFlight.Error(), IsError: true}
		return m, nil, false
	}
	m.ReviewPending = true
	m.Suggestion = ""
	m.Status = StatusBar{Text: "asking for suggestions"}
	return m, tea.Batch(m.busySpinner.Tick, reviewCmd(m.ctx, m.Store, reflection)), true
}

func reviewCmd(ctx context.Context, store *state.Store, reflection string) tea.Cmd {
	return func() tea.Msg {
		out, err := store.WeeklyReview(ctx, reflection)
		return SuggestionsMsg{Suggestion: out, Err: err}
	}
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key != "R" {
		m.ConfirmReset = false
	}
	switch key {
	case "d":
		v := !m.Snapshot.Settings.DailyReminders
		return m, settingsCmd(m.ctx, m.Store, state.SettingsPatch{DailyReminders: &v})
	case "w":
		v := !m.Snapshot.Settings.WeeklyReviewReminders
		return m, settingsCmd(m.ctx, m.Store, state.SettingsPatch{WeeklyReviewReminders: &v})
	case "R":
		if !m.ConfirmReset {
			m.ConfirmReset = true
			m.Status = StatusBar{Text: "press R again to erase all data", IsError: true}
			return m, nil
		}
		m = m.resetAll()
		m.Status = StatusBar{Text: "all data reset"}
	}
	return m, nil
}

func settingsCmd(ctx context.Context, store *state.Store, patch state.SettingsPatch) tea.Cmd {
	return func() tea.Msg {
		settings, err := store.UpdateNotificationSettings(ctx, patch)
		return SettingsUpdatedMsg{Settings: settings, Err: err}
	}
}

func (m Model) resetAll() Model {
	m.Store.ResetAll()
	m.ConfirmReset = false
	m.TaskCursor = 0
	m.GoalCursor = 0
	m.Suggestion = ""
	m.Toasts = nil
	m.reflectionArea.SetValue("")
	m.suggestionView.SetContent("")
	m.refresh()
	return m
}
