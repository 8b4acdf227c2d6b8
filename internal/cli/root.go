package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/phoneinput/internal/config"
	"github.com/ppiankov/phoneinput/internal/logger"
	"github.com/ppiankov/phoneinput/internal/policy"
)

var (
	settings    config.Config
	appLog      = logger.Discard()
	widgetFlag  string
	logLevelArg string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&widgetFlag, "widget", "", "Path to widget YAML (default from settings, then ~/.phoneinput/widget.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelArg, "log-level", "", "Log level override (debug|info|warn|error)")
}

var rootCmd = &cobra.Command{
	Use:   "phoneinput",
	Short: "Phone input normalization and widget policy resolution",
	Long: "Resolves phone-input widget policy from legacy flags, element attributes,\n" +
		"an explicit policy object and built-in defaults, and drives the input\n" +
		"normalization state machine from the command line.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		if logLevelArg != "" {
			s.Log.Level = logLevelArg
		}
		settings = s
		appLog = logger.NewWithLevel(s.Log.Format, s.Log.Level)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// widgetPath returns the widget file in effect: --widget, then settings.
func widgetPath() string {
	if widgetFlag != "" {
		return widgetFlag
	}
	return settings.Widget.Path
}

// loadWidget loads and resolves the widget file in effect.
func loadWidget() (policy.Sources, error) {
	path := widgetPath()
	src, err := policy.LoadSources(path)
	if err != nil {
		return policy.Sources{}, fmt.Errorf("load widget %s: %w", path, err)
	}
	return src, nil
}
