package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/goaltrack/internal/ai"
	"github.com/sandeepkv93/goaltrack/internal/derive"
	"github.com/sandeepkv93/goaltrack/internal/effects"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/scheduler"
	"github.com/sandeepkv93/goaltrack/internal/state"
)

type View string

const (
	ViewDashboard     View = "Dashboard"
	ViewProgress      View = "Progress"
	ViewAchievements  View = "Achievements"
	ViewNotifications View = "Notifications"
	ViewReview        View = "Review"
	ViewSettings      View = "Settings"
)

type Pane string

const (
	PaneTasks Pane = "tasks"
	PaneGoals Pane = "goals"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard     string
	Progress      string
	Achievements  string
	Notifications string
	Review        string
	Settings      string
	Help          string
	Quit          string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// CaptureState is the dashboard quick-add line. Target says whether enter
// creates a task or a goal.
type CaptureState struct {
	Active   bool
	Target   Pane
	GoalType model.GoalType
}

type Model struct {
	CurrentView   View
	Store         *state.Store
	Scheduler     *scheduler.Engine
	Snapshot      state.Snapshot
	Weekly        []derive.DayProgress
	Pane          Pane
	TaskCursor    int
	GoalCursor    int
	Capture       CaptureState
	Palette       CommandPaletteState
	HelpVisible   bool
	Status        StatusBar
	Toasts        []effects.Toast
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error
	GoalPending   bool
	ReviewPending bool
	ReviewEditing bool
	Suggestion    string
	ConfirmReset  bool

	ctx context.Context
	now func() time.Time

	captureInput   textinput.Model
	commandInput   textinput.Model
	reflectionArea textarea.Model
	levelProgress  progress.Model
	busySpinner    spinner.Model
	weekTable      table.Model
	helpModel      help.Model
	suggestionView viewport.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

type ReminderHandledMsg struct {
	Notification model.AppNotification
	Recorded     bool
}

type GoalCreatedMsg struct {
	Goal model.Goal
	Err  error
}

type SuggestionsMsg struct {
	Suggestion ai.Suggestion
	Err        error
}

type SettingsUpdatedMsg struct {
	Settings model.NotificationSettings
	Err      error
}

type CelebrationEndMsg struct{}

func NewModel(store *state.Store, engine *scheduler.Engine) Model {
	m := Model{
		CurrentView: ViewDashboard,
		Store:       store,
		Scheduler:   engine,
		Pane:        PaneTasks,
		Capture:     CaptureState{Target: PaneTasks, GoalType: model.GoalTypeWeekly},
		Keys: GlobalKeyMap{
			Dashboard:     "1",
			Progress:      "2",
			Achievements:  "3",
			Notifications: "4",
			Review:        "5",
			Settings:      "6",
			Help:          "?",
			Quit:          "q",
		},
		ctx: context.Background(),
		now: time.Now,
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.captureInput = textinput.New()
	m.captureInput.Placeholder = "New task"
	m.captureInput.CharLimit = 200
	m.captureInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add <text> | goal <weekly|monthly> <title> | toggle <n>"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.reflectionArea = textarea.New()
	m.reflectionArea.SetWidth(54)
	m.reflectionArea.SetHeight(6)
	m.reflectionArea.ShowLineNumbers = false
	m.reflectionArea.Placeholder = "How did your week go?"

	m.levelProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	m.busySpinner = spinner.New()
	m.busySpinner.Spinner = spinner.Dot

	m.weekTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Day", Width: 5},
			{Title: "Date", Width: 12},
			{Title: "Progress", Width: 10},
		}),
		table.WithHeight(8),
	)

	m.helpModel = help.New()
	m.suggestionView = viewport.New(54, 12)
}

// refresh pulls a fresh snapshot from the store and folds pending toasts into
// the status line.
func (m *Model) refresh() {
	if m.Store == nil {
		return
	}
	m.Snapshot = m.Store.Snapshot()
	m.Weekly = m.Store.Weekly()
	m.GoalPending = m.GoalPending || m.Snapshot.GoalPending
	if m.TaskCursor >= len(m.Snapshot.Tasks) {
		m.TaskCursor = max(len(m.Snapshot.Tasks)-1, 0)
	}
	if m.GoalCursor >= len(m.Snapshot.Goals) {
		m.GoalCursor = max(len(m.Snapshot.Goals)-1, 0)
	}
	m.drainToasts()
}

func (m *Model) drainToasts() {
	toasts := m.Store.Toasts().Drain()
	if len(toasts) == 0 {
		return
	}
	m.Toasts = append(m.Toasts, toasts...)
	if len(m.Toasts) > 5 {
		m.Toasts = m.Toasts[len(m.Toasts)-5:]
	}
	last := toasts[len(toasts)-1]
	text := last.Title
	if last.Description != "" {
		text += ": " + last.Description
	}
	m.Status = StatusBar{Text: text, IsError: last.Variant == effects.ToastDestructive}
}

func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0, len(m.Weekly))
	for _, d := range m.Weekly {
		rows = append(rows, table.Row{d.Weekday, d.Date, progressCell(d.Progress)})
	}
	m.weekTable.SetRows(rows)

	if m.Capture.Active {
		m.captureInput.Focus()
	} else {
		m.captureInput.Blur()
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}
	if m.ReviewEditing && !m.ReviewPending {
		m.reflectionArea.Focus()
	} else {
		m.reflectionArea.Blur()
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.TaskCursor < 0 || m.TaskCursor >= len(m.Snapshot.Tasks) {
		return model.Task{}, false
	}
	return m.Snapshot.Tasks[m.TaskCursor], true
}

func (m Model) selectedGoal() (model.Goal, bool) {
	if m.GoalCursor < 0 || m.GoalCursor >= len(m.Snapshot.Goals) {
		return model.Goal{}, false
	}
	return m.Snapshot.Goals[m.GoalCursor], true
}

func (m Model) taskIDs() []string {
	ids := make([]string, 0, len(m.Snapshot.Tasks))
	for _, t := range m.Snapshot.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func (m Model) goalIDs() []string {
	ids := make([]string, 0, len(m.Snapshot.Goals))
	for _, g := range m.Snapshot.Goals {
		ids = append(ids, g.ID)
	}
	return ids
}
