package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questboss/internal/engine"
	"questboss/internal/ui"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a custom task without completing it",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.svc.Dispatch(ctx, engine.Command{Action: engine.ActionRemove, TaskID: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render(ui.IconTrash+" Removed"), ui.Muted.Render(ui.ShortID(res.Removed.ID)), res.Removed.Name)
			return nil
		},
	}

	return cmd
}
