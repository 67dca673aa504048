package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"questboss/internal/ui"
)

const Version = "0.3.0"

var (
	flagDataDir string
	flagBackend string
	flagCatalog string
)

var rootCmd = &cobra.Command{
	Use:           "qb",
	Short:         "Turn your tasks into a weekly boss fight",
	Long:          "questboss is a local-first task tracker: completing quests grants XP, levels you up and damages this week's boss.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (default $QB_DATA_DIR or ~/.questboss)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Progress backend: file|sqlite (default $QB_BACKEND or file)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "YAML/TOML catalog overriding bosses and daily quests")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newRemoveCmd(),
		newListCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newBoardCmd(),
		newServeCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
