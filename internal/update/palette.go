package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goaltrack/internal/commands"
	"github.com/sandeepkv93/goaltrack/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.Store.AddTask(a.Text)
			if err != nil {
				return commands.Result{}, err
			}
			m, next = m.afterMutation()
			return commands.Result{Message: fmt.Sprintf("added task: %s", task.Text)}, nil
		},
		Goal: func(g commands.GoalArgs) (commands.Result, error) {
			var started bool
			m, next, started = m.startGoal(g.Title, model.GoalType(strings.ToLower(g.Type)))
			if !started {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: fmt.Sprintf("creating %s goal: %s", g.Type, g.Title)}, nil
		},
		Toggle: func(r commands.RefArgs) (commands.Result, error) {
			id, err := commands.Resolve(r, m.taskIDs())
			if err != nil {
				return commands.Result{}, err
			}
			task, err := m.Store.ToggleTask(id)
			if err != nil {
				return commands.Result{}, err
			}
			m, next = m.afterMutation()
			state := "open"
			if task.Completed {
				state = "done"
			}
			return commands.Result{Message: fmt.Sprintf("%s: %s", state, task.Text)}, nil
		},
		Delete: func(r commands.RefArgs) (commands.Result, error) {
			id, err := commands.Resolve(r, m.taskIDs())
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Store.DeleteTask(id); err != nil {
				return commands.Result{}, err
			}
			m, next = m.afterMutation()
			return commands.Result{Message: "task deleted"}, nil
		},
		Drop: func(r commands.RefArgs) (commands.Result, error) {
			id, err := commands.Resolve(r, m.goalIDs())
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Store.DeleteGoal(id); err != nil {
				return commands.Result{}, err
			}
			m.refresh()
			return commands.Result{Message: "goal deleted"}, nil
		},
		Review: func(r commands.ReviewArgs) (commands.Result, error) {
			m.CurrentView = ViewReview
			m.reflectionArea.SetValue(r.Reflection)
			var started bool
			m, next, started = m.startReview(r.Reflection)
			if !started {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: "asking for suggestions"}, nil
		},
		Read: func() (commands.Result, error) {
			n := m.Store.MarkNotificationsRead()
			m.refresh()
			return commands.Result{Message: fmt.Sprintf("marked %d notification(s) read", n)}, nil
		},
		Reset: func() (commands.Result, error) {
			m = m.resetAll()
			return commands.Result{Message: "all data reset"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, next
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}
