package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/goaltrack/internal/views"
)

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}

var contextBindings = map[View][]key.Binding{
	ViewDashboard: {
		binding("j/k", "move cursor"),
		binding("tab", "switch tasks/goals"),
		binding("space", "toggle task"),
		binding("a", "add task"),
		binding("g", "add goal"),
		binding("x", "delete selected"),
		binding("o", "dismiss welcome"),
	},
	ViewNotifications: {
		binding("r", "mark all read"),
	},
	ViewReview: {
		binding("e", "edit reflection"),
		binding("ctrl+s", "submit reflection"),
		binding("enter", "get suggestions"),
		binding("j/k", "scroll suggestions"),
	},
	ViewSettings: {
		binding("d", "toggle daily reminders"),
		binding("w", "toggle weekly review reminders"),
		binding("R", "reset all data"),
	},
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	local := contextBindings[m.CurrentView]
	lines := make([]string, 0, len(local))
	for _, b := range local {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("- %s: %s", h.Key, h.Desc))
	}
	if len(lines) == 0 {
		lines = append(lines, "- no view-specific keys")
	}
	global := m.globalBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    lines,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  [][]key.Binding{global, local},
		}),
	})
}

func (m Model) globalBindings() []key.Binding {
	return []key.Binding{
		binding(m.Keys.Dashboard, "dashboard"),
		binding(m.Keys.Progress, "progress"),
		binding(m.Keys.Achievements, "achievements"),
		binding(m.Keys.Notifications, "notifications"),
		binding(m.Keys.Review, "review"),
		binding(m.Keys.Settings, "settings"),
		binding("/", "command palette"),
		binding(m.Keys.Help, "help"),
		binding(m.Keys.Quit, "quit"),
	}
}
