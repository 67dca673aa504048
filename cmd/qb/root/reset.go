package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questboss/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset level, XP and custom tasks to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			ctx := context.Background()
			s, err := openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if s.file != nil {
				bak, err := s.file.Backup()
				if err != nil {
					return err
				}
				if bak != "" {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Previous progress saved to "+bak))
				}
			}
			if err := s.svc.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconLoop+" Progress reset"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")

	return cmd
}
