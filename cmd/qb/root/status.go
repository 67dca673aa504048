package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"questboss/internal/engine"
	"questboss/internal/storage"
	"questboss/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, this week's boss and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			snap := s.svc.Snapshot()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", snap.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%s %d/%d (%d to go)", ui.Bar(snap.XP, snap.XPNeeded, 20), snap.XP, snap.XPNeeded, snap.XPNeeded-snap.XP)))
			fmt.Fprintln(out, ui.LabelValue("Total XP", engine.TotalXP(s.svc.Progress())))
			fmt.Fprintln(out, "")

			boss := snap.Boss
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Weekly Boss (week %d)", ui.IconBoss, boss.Week)))
			fmt.Fprintf(out, "%s %s %d/%d\n", ui.Key.Render(boss.Name+":"), ui.HPBar(boss.HP, boss.MaxHP, 20), boss.HP, boss.MaxHP)
			if boss.Image != "" {
				fmt.Fprintln(out, ui.Muted.Render("art: "+boss.Image))
			}

			stats := storage.JournalStats{}
			if s.journal != nil {
				dealt, err := s.journal.DamageSince(ctx, startOfISOWeek(time.Now()))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Damage dealt this week: %d", dealt)))
				stats, err = s.journal.Stats(ctx)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📋 Quests"))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Custom tasks:"), len(snap.Tasks))
			fmt.Fprintf(out, "- %s %d/%d\n", ui.Key.Render("Daily quests open today:"), openDailies(snap), len(snap.Dailies))
			fmt.Fprintln(out, "")

			if s.journal == nil {
				return nil
			}
			checker := engine.NewAchievementChecker(s.svc.Progress(), stats)
			all := checker.GetAchievements()
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, checker.CountEarned(), len(all))))
			for _, a := range all {
				if a.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", a.Icon, ui.Gold.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(out, "- %s %s\n", ui.Muted.Render("·"), ui.Muted.Render(a.Name+": "+a.Description))
				}
			}
			return nil
		},
	}

	return cmd
}

func openDailies(snap engine.Snapshot) int {
	n := 0
	for _, d := range snap.Dailies {
		if !d.Done {
			n++
		}
	}
	return n
}

// startOfISOWeek returns local midnight of the Monday starting t's ISO week.
func startOfISOWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}
