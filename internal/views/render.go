package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is one full frame. An empty RightPane gives LeftPane the whole
// width.
type AppData struct {
	Header        string
	Banner        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Footer        string
}

const (
	paneWidth = 58
	fullWidth = 2*paneWidth + 4
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	celebrationStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	// GitHub-style contribution greens, level 0 to 4.
	heatStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
)

func RenderApp(data AppData) string {
	lines := []string{headerStyle.Render(data.Header)}
	if data.Banner != "" {
		lines = append(lines, panelStyle.Render(data.Banner))
	}

	if data.RightPane == "" {
		lines = append(lines, panelStyle.Width(fullWidth).Render(data.LeftPane))
	} else {
		left := panelStyle.Width(paneWidth).Render(data.LeftPane)
		right := panelStyle.Width(paneWidth).Render(data.RightPane)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	}

	if data.StatusLine != "" {
		style := statusStyle
		if data.StatusIsError {
			style = errorStyle
		}
		lines = append(lines, style.Render(data.StatusLine))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func heatCell(level int) string {
	if level < 0 {
		level = 0
	}
	if level >= len(heatStyles) {
		level = len(heatStyles) - 1
	}
	return heatStyles[level].Render("■")
}
