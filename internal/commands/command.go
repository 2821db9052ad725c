package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeGoal   Type = "goal"
	TypeToggle Type = "toggle"
	TypeDelete Type = "delete"
	TypeDrop   Type = "drop"
	TypeReview Type = "review"
	TypeRead   Type = "read"
	TypeReset  Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type GoalArgs struct {
	Type  string
	Title string
}

// RefArgs points at a task or goal by 1-based list position or by id.
type RefArgs struct {
	Ref string
}

type ReviewArgs struct {
	Reflection string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Goal   *GoalArgs
	Ref    *RefArgs
	Review *ReviewArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeToggle, TypeDelete, TypeDrop:
		return parseRef(input, Type(head), args)
	case TypeReview:
		return parseReview(input, args)
	case TypeRead, TypeReset:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a type (weekly|monthly) and a title"}
	}
	typ := strings.ToLower(args[0])
	if typ != "weekly" && typ != "monthly" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("goal type must be weekly or monthly, got %q", args[0])}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Type: typ, Title: strings.Join(args[1:], " ")}}, nil
}

func parseRef(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one list number or id", typ)}
	}
	return Command{Type: typ, Raw: raw, Ref: &RefArgs{Ref: args[0]}}, nil
}

func parseReview(raw string, args []string) (Command, error) {
	reflection := strings.TrimSpace(strings.Join(args, " "))
	if reflection == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "review requires a reflection"}
	}
	return Command{Type: TypeReview, Raw: raw, Review: &ReviewArgs{Reflection: reflection}}, nil
}
