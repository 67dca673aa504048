package root

import (
	"context"

	"github.com/spf13/cobra"

	"questboss/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			return tui.RunBoard(ctx, s.svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
