package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/phoneinput/internal/policy"
	"github.com/ppiankov/phoneinput/internal/tui"
)

func init() {
	rootCmd.AddCommand(tryCmd)
	addSessionFlags(tryCmd)
}

var tryCmd = &cobra.Command{
	Use:   "try",
	Short: "Interactive phone input in the terminal",
	Long: "Opens a terminal widget under the resolved policy. Type to enter a number,\n" +
		"Enter commits it, Tab opens the country popover, arrows choose a country.",
	RunE: runTry,
}

func runTry(cmd *cobra.Command, args []string) error {
	src, err := loadWidget()
	if err != nil {
		return err
	}

	app := tui.New(policy.Resolve(src.Input()), tui.Options{
		Model:         nullable(sessionModel),
		Country:       nullable(initialCountry()),
		DetectCountry: sessionDetect,
	})

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tui.Run(ctx, app)
}
