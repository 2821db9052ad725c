package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	Index     int
	Text      string
	Completed bool
	Selected  bool
}

type GoalItemData struct {
	Index    int
	Title    string
	Type     string
	Progress int
	HasImage bool
	Selected bool
}

type DashboardPanelData struct {
	Tasks         []TaskItemData
	DailyProgress int
	Momentum      int
	Focused       bool
	CaptureView   string
}

type GoalsPanelData struct {
	Goals       []GoalItemData
	Focused     bool
	Pending     bool
	SpinnerView string
}

type ProgressPanelData struct {
	Level     int
	XP        int
	Threshold int
	BarView   string
	TableView string
}

type HeatCellData struct {
	Date  string
	Level int
}

type AchievementData struct {
	Name        string
	Description string
	Unlocked    bool
}

type NotificationData struct {
	Message string
	Type    string
	At      string
	Read    bool
}

type ReviewPanelData struct {
	EditorView  string
	Editing     bool
	Pending     bool
	SpinnerView string
}

type SettingsPanelData struct {
	DailyReminders        bool
	WeeklyReviewReminders bool
	Permission            string
	ConfirmReset          bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString(paneTitle("today", data.Focused) + "\n")
	b.WriteString(fmt.Sprintf("daily progress: %d%% | momentum: %d day streak\n", data.DailyProgress, data.Momentum))
	b.WriteString("actions: [j/k]move [space]toggle [a]add [x]delete [tab]goals\n")
	if data.CaptureView != "" {
		b.WriteString(data.CaptureView + "\n")
	}
	if len(data.Tasks) == 0 {
		b.WriteString("\n(no tasks yet)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString("\n")
	for _, t := range data.Tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s\n", cursor(t.Selected), t.Index, check, t.Text))
	}
	return strings.TrimSpace(b.String())
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString(paneTitle("goals", data.Focused) + "\n")
	b.WriteString("actions: [g]new goal [x]delete\n")
	if data.Pending {
		b.WriteString(fmt.Sprintf("%s generating goal image...\n", data.SpinnerView))
	}
	if len(data.Goals) == 0 {
		b.WriteString("\n(no goals yet)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString("\n")
	for _, g := range data.Goals {
		image := ""
		if g.HasImage {
			image = " [img]"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s (%s) %s %d%%%s\n", cursor(g.Selected), g.Index, g.Title, g.Type, bar(g.Progress, 10), g.Progress, image))
	}
	return strings.TrimSpace(b.String())
}

func RenderProgressPanel(data ProgressPanelData) string {
	var b strings.Builder
	b.WriteString("progress:\n")
	b.WriteString(fmt.Sprintf("level %d | %d/%d xp\n", data.Level, data.XP, data.Threshold))
	b.WriteString(data.BarView + "\n\n")
	b.WriteString("last 7 days:\n")
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

// RenderHeatmap lays cells out in rows of seven, oldest first.
func RenderHeatmap(cells []HeatCellData) string {
	var b strings.Builder
	b.WriteString("activity:\n")
	for i, c := range cells {
		b.WriteString(heatCell(c.Level))
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\nless ")
	for lvl := 0; lvl <= 4; lvl++ {
		b.WriteString(heatCell(lvl) + " ")
	}
	b.WriteString("more")
	return strings.TrimSpace(b.String())
}

func RenderAchievementsPanel(items []AchievementData) string {
	var b strings.Builder
	unlocked := 0
	for _, a := range items {
		if a.Unlocked {
			unlocked++
		}
	}
	b.WriteString(fmt.Sprintf("achievements: %d/%d unlocked\n\n", unlocked, len(items)))
	for _, a := range items {
		mark := "[locked]"
		if a.Unlocked {
			mark = "[*]"
		}
		b.WriteString(fmt.Sprintf("%-8s %s\n         %s\n", mark, a.Name, a.Description))
	}
	return strings.TrimSpace(b.String())
}

func RenderNotificationsPanel(items []NotificationData) string {
	var b strings.Builder
	b.WriteString("notifications:\n")
	b.WriteString("actions: [r]mark all read\n")
	if len(items) == 0 {
		b.WriteString("\n(nothing yet)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString("\n")
	for _, n := range items {
		dot := " "
		if !n.Read {
			dot = "*"
		}
		b.WriteString(fmt.Sprintf("%s %s [%s] %s\n", dot, n.At, strings.ToUpper(n.Type), n.Message))
	}
	return strings.TrimSpace(b.String())
}

func RenderReviewPanel(data ReviewPanelData) string {
	var b strings.Builder
	b.WriteString("weekly review:\n")
	if data.Editing {
		b.WriteString("keys: [ctrl+s]submit [esc]stop editing\n")
	} else {
		b.WriteString("keys: [e]edit reflection [enter]get suggestions [j/k]scroll\n")
	}
	b.WriteString(data.EditorView + "\n")
	if data.Pending {
		b.WriteString(fmt.Sprintf("%s getting suggestions...", data.SpinnerView))
	}
	return strings.TrimSpace(b.String())
}

func RenderSuggestionPanel(viewportView string, empty bool) string {
	if empty {
		return "suggestions:\n(submit a reflection to get AI suggestions)"
	}
	return "suggestions:\n" + viewportView
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString(fmt.Sprintf("[d] daily reminders (20:00):   %s\n", onOff(data.DailyReminders)))
	b.WriteString(fmt.Sprintf("[w] weekly review reminders:   %s\n", onOff(data.WeeklyReviewReminders)))
	b.WriteString(fmt.Sprintf("notification permission:       %s\n\n", data.Permission))
	if data.ConfirmReset {
		b.WriteString(errorStyle.Render("[R] press again to reset ALL data"))
	} else {
		b.WriteString("[R] reset all data")
	}
	return strings.TrimSpace(b.String())
}

func RenderOnboarding(show bool) string {
	if !show {
		return ""
	}
	return "welcome to goaltrack: add tasks with [a], goals with [g], reflect weekly in [5]. press [o] to dismiss"
}

func RenderCelebration(active bool) string {
	if !active {
		return ""
	}
	return celebrationStyle.Render("*** PERFECT DAY! every task is done ***")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n\nglobal:\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func paneTitle(name string, focused bool) string {
	if focused {
		return "> " + name + ":"
	}
	return name + ":"
}

func cursor(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func bar(progress, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
