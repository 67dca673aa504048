package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"questboss/internal/engine"
	"questboss/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <task-id|daily-code>",
		Short: "Complete a custom task or a daily quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id or daily quest code is required")
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

			res, err := s.svc.Dispatch(ctx, engine.Command{Action: engine.ActionComplete, TaskID: args[0]})
			if err != nil {
				return err
			}
			printCompletion(cmd.OutOrStdout(), res.Completed, s.svc.Boss())
			return nil
		},
	}

	return cmd
}

func printCompletion(out io.Writer, res *engine.CompleteResult, boss engine.Boss) {
	fmt.Fprintf(out, "%s %s %s\n",
		ui.Good.Render(ui.IconDone+" Completed"),
		res.Quest.Name,
		ui.Muted.Render(fmt.Sprintf("(+%d XP)", res.XPAwarded)))
	fmt.Fprintf(out, "%s %s %s %d/%d %s\n",
		ui.IconSword,
		ui.Key.Render(boss.Name+":"),
		ui.HPBar(res.BossHP, boss.MaxHP, 20),
		res.BossHP, boss.MaxHP,
		ui.Muted.Render(fmt.Sprintf("(-%d)", res.Damage)))
	if res.LevelUp {
		fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	}
	if res.BossDefeated {
		fmt.Fprintln(out, ui.BadgeDefeated)
	}
}
