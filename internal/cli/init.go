package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/phoneinput/internal/config"
	"github.com/ppiankov/phoneinput/internal/policy"
)

var (
	initForce    bool
	initSettings bool
)

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	initCmd.Flags().BoolVar(&initSettings, "settings", false, "Also write the application settings file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a commented default widget file",
	Long: `Writes a widget definition that resolves to the built-in defaults.

Default location: ~/.phoneinput/widget.yaml (or --widget).
With --settings: also writes ~/.config/phoneinput/config.yaml
(or $PHONEINPUT_CONFIG).`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	widget := widgetPath()
	if widget == "" {
		widget = policy.DefaultSourcesPath()
	}
	if widget == "" {
		return fmt.Errorf("cannot determine widget path: use --widget")
	}

	var created []string

	if wrote, err := writeIfMissing(widget, policy.DefaultSourcesYAML()); err != nil {
		return err
	} else if wrote {
		created = append(created, widget)
	}

	if initSettings {
		path := config.Path()
		if wrote, err := writeIfMissing(path, defaultSettingsYAML(widget)); err != nil {
			return err
		} else if wrote {
			created = append(created, path)
		}
	}

	if len(created) > 0 {
		fmt.Println("Created:")
		for _, p := range created {
			fmt.Printf("  %s\n", p)
		}
		fmt.Println()
	} else {
		fmt.Println("All files already exist (use --force to overwrite).")
		fmt.Println()
	}

	fmt.Println("Inspect the resolved policy:")
	fmt.Println("  phoneinput resolve --explain")
	return nil
}

// writeIfMissing writes content to path if it doesn't exist or --force is set.
// Returns true if the file was written.
func writeIfMissing(path, content string) (bool, error) {
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

func defaultSettingsYAML(widget string) string {
	return "# phoneinput settings\n" +
		"# Env overrides: PHONEINPUT_LOG_LEVEL, PHONEINPUT_LOG_FORMAT,\n" +
		"# PHONEINPUT_WIDGET_PATH, PHONEINPUT_WIDGET_COUNTRY.\n\n" +
		"log:\n" +
		"  level: info      # debug | info | warn | error\n" +
		"  format: text     # text | json\n" +
		"widget:\n" +
		fmt.Sprintf("  path: %q\n", widget) +
		"  country: \"\"      # initial country for watch/try, e.g. RU\n"
}
