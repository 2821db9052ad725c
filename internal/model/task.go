package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidGoalType = errors.New("model: invalid goal type")
	ErrInvalidProgress = errors.New("model: progress out of range")
)

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	return nil
}

type GoalType string

const (
	GoalTypeWeekly  GoalType = "weekly"
	GoalTypeMonthly GoalType = "monthly"
)

func (g GoalType) IsValid() bool {
	switch g {
	case GoalTypeWeekly, GoalTypeMonthly:
		return true
	default:
		return false
	}
}

type Goal struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     GoalType `json:"type"`
	Progress int      `json:"progress"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("model: goal title is required")
	}
	if !g.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidGoalType, g.Type)
	}
	if g.Progress < 0 || g.Progress > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, g.Progress)
	}
	return nil
}

// ProgressRecord is one calendar day's completion snapshot. Date uses DayLayout.
type ProgressRecord struct {
	Date           string `json:"date"`
	Progress       int    `json:"progress"`
	CompletedTasks int    `json:"completedTasks"`
	TotalTasks     int    `json:"totalTasks"`
}

func (r ProgressRecord) Validate() error {
	if _, err := ParseDay(r.Date); err != nil {
		return fmt.Errorf("model: invalid record date %q: %w", r.Date, err)
	}
	if r.Progress < 0 || r.Progress > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, r.Progress)
	}
	if r.CompletedTasks < 0 || r.TotalTasks < 0 || r.CompletedTasks > r.TotalTasks {
		return errors.New("model: record task counts are inconsistent")
	}
	return nil
}
