package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/goaltrack/internal/derive"
	"github.com/sandeepkv93/goaltrack/internal/effects"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/views"
)

const heatmapDays = 28

func (m Model) renderDashboardView() string {
	tasks := make([]views.TaskItemData, 0, len(m.Snapshot.Tasks))
	for i, t := range m.Snapshot.Tasks {
		tasks = append(tasks, views.TaskItemData{
			Index:     i + 1,
			Text:      t.Text,
			Completed: t.Completed,
			Selected:  m.Pane == PaneTasks && i == m.TaskCursor,
		})
	}
	capture := ""
	if m.Capture.Active {
		capture = "new: " + m.captureInput.View()
	}
	return views.RenderDashboardPanel(views.DashboardPanelData{
		Tasks:         tasks,
		DailyProgress: m.Snapshot.DailyProgress,
		Momentum:      m.Snapshot.Momentum,
		Focused:       m.Pane == PaneTasks,
		CaptureView:   capture,
	})
}

func (m Model) renderGoalsView() string {
	goals := make([]views.GoalItemData, 0, len(m.Snapshot.Goals))
	for i, g := range m.Snapshot.Goals {
		goals = append(goals, views.GoalItemData{
			Index:    i + 1,
			Title:    g.Title,
			Type:     string(g.Type),
			Progress: g.Progress,
			HasImage: g.ImageURL != "",
			Selected: m.Pane == PaneGoals && i == m.GoalCursor,
		})
	}
	return views.RenderGoalsPanel(views.GoalsPanelData{
		Goals:       goals,
		Focused:     m.Pane == PaneGoals,
		Pending:     m.GoalPending,
		SpinnerView: m.busySpinner.View(),
	})
}

func (m Model) renderProgressView() string {
	stats := m.Snapshot.UserStats
	return views.RenderProgressPanel(views.ProgressPanelData{
		Level:     stats.Level,
		XP:        stats.XP,
		Threshold: stats.Threshold(),
		BarView:   m.levelProgress.ViewAs(float64(m.Snapshot.LevelProgress) / 100),
		TableView: m.weekTable.View(),
	})
}

func (m Model) renderHeatmapView() string {
	return views.RenderHeatmap(heatCells(m.Snapshot.ProgressHistory, m.now(), heatmapDays))
}

func (m Model) renderAchievementsView() string {
	items := make([]views.AchievementData, 0, len(m.Snapshot.Achievements))
	for _, a := range m.Snapshot.Achievements {
		items = append(items, views.AchievementData{Name: a.Name, Description: a.Description, Unlocked: a.Unlocked})
	}
	return views.RenderAchievementsPanel(items)
}

func (m Model) renderNotificationsView() string {
	items := make([]views.NotificationData, 0, len(m.Snapshot.Notifications))
	for _, n := range m.Snapshot.Notifications {
		items = append(items, views.NotificationData{
			Message: n.Message,
			Type:    string(n.Type),
			At:      n.CreatedAt.Local().Format("Jan 2 15:04"),
			Read:    n.Read,
		})
	}
	return views.RenderNotificationsPanel(items)
}

func (m Model) renderReviewView() string {
	return views.RenderReviewPanel(views.ReviewPanelData{
		EditorView:  m.reflectionArea.View(),
		Editing:     m.ReviewEditing,
		Pending:     m.ReviewPending,
		SpinnerView: m.busySpinner.View(),
	})
}

func (m Model) renderSuggestionView() string {
	return views.RenderSuggestionPanel(m.suggestionView.View(), strings.TrimSpace(m.Suggestion) == "")
}

func (m Model) renderSettingsView() string {
	return views.RenderSettingsPanel(views.SettingsPanelData{
		DailyReminders:        m.Snapshot.Settings.DailyReminders,
		WeeklyReviewReminders: m.Snapshot.Settings.WeeklyReviewReminders,
		Permission:            string(m.Snapshot.Permission),
		ConfirmReset:          m.ConfirmReset,
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.Value())
}

func (m Model) renderOnboardingView() string {
	return views.RenderOnboarding(m.Store != nil && !m.Snapshot.Onboarded)
}

func (m Model) renderCelebrationView() string {
	return views.RenderCelebration(m.Snapshot.Celebrating)
}

func (m Model) renderToastsView() string {
	if len(m.Toasts) == 0 {
		return ""
	}
	t := m.Toasts[len(m.Toasts)-1]
	level := "info"
	if t.Variant == effects.ToastDestructive {
		level = "error"
	}
	body := t.Title
	if t.Description != "" {
		body += ": " + t.Description
	}
	return views.RenderNotification(level, body)
}

// heatCells buckets the completed-task count of each of the last days into
// heatmap levels. Days without a record are level 0.
func heatCells(history []model.ProgressRecord, now time.Time, days int) []views.HeatCellData {
	cells := make([]views.HeatCellData, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := model.DayKey(now.AddDate(0, 0, -i))
		completed := 0
		if rec, ok := derive.FindRecord(history, day); ok {
			completed = rec.CompletedTasks
		}
		cells = append(cells, views.HeatCellData{Date: day, Level: derive.ProductivityLevel(completed)})
	}
	return cells
}

func progressCell(p int) string {
	return fmt.Sprintf("%3d%%", p)
}
