package model

import (
	"errors"
	"testing"
)

func TestTaskValidate(t *testing.T) {
	if err := (Task{ID: "1", Text: "Write tests"}).Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
	err := Task{ID: "1", Text: "   "}.Validate()
	if err == nil || err.Error() != "model: task text is required" {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Task{Text: "no id"}).Validate(); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestGoalValidateInvalidFields(t *testing.T) {
	goal := Goal{ID: "g1", Title: "Run a 10k", Type: GoalTypeWeekly, Progress: 40}
	if err := goal.Validate(); err != nil {
		t.Fatalf("expected valid goal, got error: %v", err)
	}

	goal.Type = GoalType("daily")
	if err := goal.Validate(); !errors.Is(err, ErrInvalidGoalType) {
		t.Fatalf("expected ErrInvalidGoalType, got: %v", err)
	}

	goal.Type = GoalTypeMonthly
	goal.Progress = 101
	if err := goal.Validate(); !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got: %v", err)
	}
}

func TestProgressRecordValidate(t *testing.T) {
	rec := ProgressRecord{Date: "2026-02-09", Progress: 50, CompletedTasks: 2, TotalTasks: 4}
	if err := rec.Validate(); err != nil {
		t.Fatalf("expected valid record, got error: %v", err)
	}
	rec.Date = "09/02/2026"
	if err := rec.Validate(); err == nil {
		t.Fatal("expected date error")
	}
	rec.Date = "2026-02-09"
	rec.CompletedTasks = 5
	if err := rec.Validate(); err == nil {
		t.Fatal("expected inconsistent counts error")
	}
}
