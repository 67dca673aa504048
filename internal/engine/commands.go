package engine

import (
	"context"
	"fmt"
	"strings"

	"questboss/internal/storage"
)

type Action string

const (
	ActionComplete Action = "complete"
	ActionRemove   Action = "remove"
)

func ParseAction(input string) (Action, error) {
	a := Action(strings.TrimSpace(strings.ToLower(input)))
	switch a {
	case ActionComplete, ActionRemove:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, input)
	}
}

// Command is a user intent against one quest or task. Presentation layers
// build commands from rows and send them through Dispatch.
type Command struct {
	Action Action `json:"action"`
	TaskID string `json:"task_id"`
}

type CommandResult struct {
	Command   Command         `json:"command"`
	Completed *CompleteResult `json:"completed,omitempty"`
	Removed   *storage.Task   `json:"removed,omitempty"`
	Snapshot  Snapshot        `json:"snapshot"`
}

// Dispatch is the single entry point for row actions.
func (s *Service) Dispatch(ctx context.Context, cmd Command) (*CommandResult, error) {
	out := &CommandResult{Command: cmd}
	switch cmd.Action {
	case ActionComplete:
		res, err := s.CompleteTask(ctx, cmd.TaskID)
		if err != nil {
			return nil, err
		}
		out.Completed = res
	case ActionRemove:
		t, err := s.RemoveTask(ctx, cmd.TaskID)
		if err != nil {
			return nil, err
		}
		out.Removed = t
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	out.Snapshot = s.Snapshot()
	return out, nil
}
