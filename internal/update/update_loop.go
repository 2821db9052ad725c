package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goaltrack/internal/scheduler"
	"github.com/sandeepkv93/goaltrack/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForReminderCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help && m.commandInput.Value() == "" {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.Capture.Active {
			return m.handleCaptureKey(typed)
		}
		if m.ReviewEditing {
			return m.handleReviewKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Dashboard:
			return m.switchView(ViewDashboard), nil
		case m.Keys.Progress:
			return m.switchView(ViewProgress), nil
		case m.Keys.Achievements:
			return m.switchView(ViewAchievements), nil
		case m.Keys.Notifications:
			return m.switchView(ViewNotifications), nil
		case m.Keys.Review:
			return m.switchView(ViewReview), nil
		case m.Keys.Settings:
			return m.switchView(ViewSettings), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewDashboard:
			return m.handleDashboardKey(typed)
		case ViewReview:
			return m.handleReviewKey(typed)
		case ViewSettings:
			return m.handleSettingsKey(typed)
		case ViewNotifications:
			if typed.String() == "r" {
				m = m.markRead()
			}
			return m, nil
		}
	case spinner.TickMsg:
		if m.GoalPending || m.ReviewPending {
			var cmd tea.Cmd
			m.busySpinner, cmd = m.busySpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m = m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case GoalCreatedMsg:
		m.GoalPending = false
		m.refresh()
		if typed.Err != nil {
			m.LastError = typed.Err
			if !strings.Contains(m.Status.Text, "Goal Creation Failed") {
				m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("goal created: %s", typed.Goal.Title)}
		return m, nil
	case SuggestionsMsg:
		m.ReviewPending = false
		m.refresh()
		if typed.Err != nil {
			m.LastError = typed.Err
			if !m.Status.IsError {
				m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			}
			return m, nil
		}
		m.Suggestion = typed.Suggestion.SuggestedAdjustments
		m.suggestionView.SetContent(views.RenderMarkdown(m.Suggestion))
		m.suggestionView.GotoTop()
		return m, nil
	case SettingsUpdatedMsg:
		m.refresh()
		if typed.Err != nil {
			m.LastError = typed.Err
			if !m.Status.IsError {
				m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("settings saved: daily=%t weekly=%t", typed.Settings.DailyReminders, typed.Settings.WeeklyReviewReminders)}
		return m, nil
	case CelebrationEndMsg:
		m.refresh()
		return m, nil
	case ReminderDueMsg:
		return m, tea.Batch(m.handleReminderCmd(typed.Event), waitForReminderCmd(m.schedulerC()))
	case ReminderHandledMsg:
		m.refresh()
		if typed.Recorded {
			m.Status = StatusBar{Text: "reminder: " + typed.Notification.Message}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewDashboard:
		leftPane = m.renderDashboardView()
		rightPane = m.renderGoalsView()
	case ViewProgress:
		leftPane = m.renderProgressView()
		rightPane = m.renderHeatmapView()
	case ViewAchievements:
		leftPane = m.renderAchievementsView()
	case ViewNotifications:
		leftPane = m.renderNotificationsView()
	case ViewReview:
		leftPane = m.renderReviewView()
		rightPane = m.renderSuggestionView()
	case ViewSettings:
		leftPane = m.renderSettingsView()
	}
	rightPane = strings.TrimSpace(strings.Join([]string{rightPane, m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n"))

	banner := strings.TrimSpace(strings.Join([]string{
		m.renderOnboardingView(),
		m.renderCelebrationView(),
		m.renderToastsView(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header: fmt.Sprintf("goaltrack | view: %s | level %d | %d%% today | unread: %d",
			m.CurrentView, m.Snapshot.UserStats.Level, m.Snapshot.DailyProgress, m.Snapshot.UnreadCount),
		Banner:        banner,
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer: fmt.Sprintf("keys: %s home | %s progress | %s badges | %s inbox | %s review | %s settings | / cmd | %s help | %s quit",
			m.Keys.Dashboard, m.Keys.Progress, m.Keys.Achievements, m.Keys.Notifications, m.Keys.Review, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) switchView(v View) Model {
	m.CurrentView = v
	m.ConfirmReset = false
	if v == ViewNotifications {
		m = m.markRead()
	}
	m.refresh()
	return m
}

func (m Model) markRead() Model {
	if n := m.Store.MarkNotificationsRead(); n > 0 {
		m.Status = StatusBar{Text: fmt.Sprintf("marked %d notification(s) read", n)}
	}
	m.refresh()
	return m
}

// afterMutation refreshes the snapshot and starts the celebration timer when
// the last action turned it on.
func (m Model) afterMutation() (Model, tea.Cmd) {
	wasCelebrating := m.Snapshot.Celebrating
	m.refresh()
	if m.Snapshot.Celebrating && !wasCelebrating {
		return m, tea.Tick(m.Store.CelebrationDuration(), func(time.Time) tea.Msg { return CelebrationEndMsg{} })
	}
	return m, nil
}

func (m Model) schedulerC() <-chan scheduler.ReminderEvent {
	if m.Scheduler == nil {
		return nil
	}
	return m.Scheduler.C()
}

func (m Model) handleReminderCmd(ev scheduler.ReminderEvent) tea.Cmd {
	store, ctx := m.Store, m.ctx
	return func() tea.Msg {
		n, ok := store.HandleReminder(ctx, ev)
		return ReminderHandledMsg{Notification: n, Recorded: ok}
	}
}

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewDashboard, ViewProgress, ViewAchievements, ViewNotifications, ViewReview, ViewSettings:
		return true
	default:
		return false
	}
}
