package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"goal weekly Run 3 times", TypeGoal},
		{"toggle 2", TypeToggle},
		{"delete 1", TypeDelete},
		{"drop g1", TypeDrop},
		{"review I slept badly but shipped the release", TypeReview},
		{"/read", TypeRead},
		{"RESET", TypeReset},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseGoalArguments(t *testing.T) {
	cmd, err := Parse("goal Monthly Learn   Go generics")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Goal.Type != "monthly" || cmd.Goal.Title != "Learn Go generics" {
		t.Fatalf("unexpected goal args %+v", cmd.Goal)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{"add", "goal weekly", "goal daily Walk", "toggle", "toggle 1 2", "review", "read now", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) {
			t.Fatalf("parse %q: expected CommandError, got %v", in, err)
		}
		if ce.Code != ErrCodeInvalidArgument && ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: unexpected code %s", in, ce.Code)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("reset")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	ids := []string{"1", "abc", "g2"}
	cases := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{ref: "1", want: "1"},
		{ref: "2", want: "abc"},
		{ref: "g2", want: "g2"},
		{ref: "0", wantErr: true},
		{ref: "4", wantErr: true},
		{ref: "zzz", wantErr: true},
	}
	for _, tc := range cases {
		got, err := Resolve(RefArgs{Ref: tc.ref}, ids)
		if (err != nil) != tc.wantErr {
			t.Fatalf("resolve %q: wantErr=%v got %v", tc.ref, tc.wantErr, err)
		}
		if got != tc.want {
			t.Fatalf("resolve %q = %q, want %q", tc.ref, got, tc.want)
		}
	}
}

func TestResolvePrefersExactIDOverPosition(t *testing.T) {
	// seed task "1" deleted: ids no longer line up with positions
	ids := []string{"2", "3", "4"}
	cases := map[string]string{
		"2": "2",
		"4": "4",
		"1": "2",
	}
	for ref, want := range cases {
		got, err := Resolve(RefArgs{Ref: ref}, ids)
		if err != nil {
			t.Fatalf("resolve %q: %v", ref, err)
		}
		if got != want {
			t.Fatalf("resolve %q = %q, want %q", ref, got, want)
		}
	}
}
