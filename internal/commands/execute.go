package commands

import (
	"fmt"
	"strconv"
)

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Goal   func(GoalArgs) (Result, error)
	Toggle func(RefArgs) (Result, error)
	Delete func(RefArgs) (Result, error)
	Drop   func(RefArgs) (Result, error)
	Review func(ReviewArgs) (Result, error)
	Read   func() (Result, error)
	Reset  func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goal(*cmd.Goal)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Toggle(*cmd.Ref)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Ref)
	case TypeDrop:
		if handlers.Drop == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Drop(*cmd.Ref)
	case TypeReview:
		if handlers.Review == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Review(*cmd.Review)
	case TypeRead:
		if handlers.Read == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Read()
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reset()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

// Resolve maps a ref onto ids: an exact id match wins, otherwise a number in
// 1..len(ids) selects by list position.
func Resolve(ref RefArgs, ids []string) (string, error) {
	for _, id := range ids {
		if id == ref.Ref {
			return id, nil
		}
	}
	n, err := strconv.Atoi(ref.Ref)
	if err != nil {
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("no item with id %q", ref.Ref)}
	}
	if n < 1 || n > len(ids) {
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("no item #%d", n)}
	}
	return ids[n-1], nil
}
