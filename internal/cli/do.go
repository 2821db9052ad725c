package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/goaltrack/internal/commands"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/state"
	"github.com/sandeepkv93/goaltrack/internal/views"
)

func newDoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "do <command>",
		Short: "Run one palette command without the dashboard",
		Long: `Do runs the same commands as the dashboard palette, for example:

  goaltrack do /add Buy milk
  goaltrack do /toggle 2
  goaltrack do /goal weekly Run 20km
  goaltrack do /review This week went well

A task or goal reference matches an id first, then a 1-based list position.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(opts.commandLogger())
			if err != nil {
				return err
			}
			defer a.Close()
			return runCommand(cmd.Context(), cmd.OutOrStdout(), a.Store, strings.Join(args, " "))
		},
	}
}

func runCommand(ctx context.Context, w io.Writer, store *state.Store, input string) error {
	parsed, err := commands.Parse(input)
	if err != nil {
		return err
	}
	res, err := commands.Execute(parsed, headlessHandlers(ctx, w, store))
	for _, t := range store.Toasts().Drain() {
		fmt.Fprintf(w, "%s: %s\n", t.Title, t.Description)
	}
	if err != nil {
		return err
	}
	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}
	return nil
}

func headlessHandlers(ctx context.Context, w io.Writer, store *state.Store) commands.Handlers {
	taskIDs := func() []string {
		tasks := store.Snapshot().Tasks
		ids := make([]string, len(tasks))
		for i, t := range tasks {
			ids[i] = t.ID
		}
		return ids
	}
	goalIDs := func() []string {
		goals := store.Snapshot().Goals
		ids := make([]string, len(goals))
		for i, g := range goals {
			ids[i] = g.ID
		}
		return ids
	}

	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := store.AddTask(a.Text)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added task: %s", task.Text)}, nil
		},
		Goal: func(g commands.GoalArgs) (commands.Result, error) {
			goal, err := store.AddGoal(ctx, g.Title, model.GoalType(strings.ToLower(g.Type)))
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %s goal: %s", goal.Type, goal.Title)}, nil
		},
		Toggle: func(r commands.RefArgs) (commands.Result, error) {
			id, err := commands.Resolve(r, taskIDs())
			if err != nil {
				return commands.Result{}, err
			}
			task, err := store.ToggleTask(id)
			if err != nil {
				return commands.Result{}, err
			}
			status := "open"
			if task.Completed {
				status = "done"
			}
			return commands.Result{Message: fmt.Sprintf("%s: %s", status, task.Text)}, nil
		},
		Delete: func(r commands.RefArgs) (commands.Result, error) {
			id, err := commands.Resolve(r, taskIDs())
			if err != nil {
				return commands.Result{}, err
			}
			if err := store.DeleteTask(id); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "task deleted"}, nil
		},
		Drop: func(r commands.RefArgs) (commands.Result, error) {
			id, err := commands.Resolve(r, goalIDs())
			if err != nil {
				return commands.Result{}, err
			}
			if err := store.DeleteGoal(id); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "goal deleted"}, nil
		},
		Review: func(r commands.ReviewArgs) (commands.Result, error) {
			out, err := store.WeeklyReview(ctx, r.Reflection)
			if err != nil {
				return commands.Result{}, err
			}
			fmt.Fprintln(w, views.RenderMarkdown(out.SuggestedAdjustments))
			return commands.Result{}, nil
		},
		Read: func() (commands.Result, error) {
			n := store.MarkNotificationsRead()
			return commands.Result{Message: fmt.Sprintf("marked %d notification(s) read", n)}, nil
		},
		Reset: func() (commands.Result, error) {
			store.ResetAll()
			return commands.Result{Message: "all data reset"}, nil
		},
	}
}
