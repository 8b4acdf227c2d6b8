package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/phoneinput/internal/apperr"
	"github.com/ppiankov/phoneinput/internal/coerce"
	"github.com/ppiankov/phoneinput/internal/policy"
)

var (
	resolveAttrs   []string
	resolveExplain bool
	resolveFormat  string
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringArrayVar(&resolveAttrs, "attr", nil, "Element attribute key[=value], repeatable; overrides the widget file's attrs")
	resolveCmd.Flags().BoolVar(&resolveExplain, "explain", false, "Show which source won each field")
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "yaml", "Output format (yaml|json)")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the effective widget policy",
	Long: "Loads the widget file, applies --attr overrides, and prints the resolved\n" +
		"policy. Per field the first defined source wins: legacy flags, then\n" +
		"attributes, then the policy object, then the built-in default.",
	RunE: runResolve,
}

type explained struct {
	Policy  policy.Policy  `yaml:"policy" json:"policy"`
	Origins policy.Origins `yaml:"origins" json:"origins"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	in, err := resolveInput()
	if err != nil {
		return err
	}

	p, origins := policy.Explain(in)
	var v any = p
	if resolveExplain {
		v = explained{Policy: p, Origins: origins}
	}

	out, err := render(v, resolveFormat)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// resolveInput loads the widget file and layers --attr values over its attrs.
func resolveInput() (policy.Input, error) {
	src, err := loadWidget()
	if err != nil {
		return policy.Input{}, err
	}

	attrs, err := parseAttrs(resolveAttrs)
	if err != nil {
		return policy.Input{}, err
	}
	if len(attrs) > 0 {
		merged := make(map[string]any, len(src.Attrs)+len(attrs))
		for k, v := range src.Attrs {
			merged[k] = v
		}
		for k, v := range attrs {
			merged[k] = v
		}
		src.Attrs = merged
	}
	return src.Input(), nil
}

// parseAttrs turns key[=value] pairs into an attribute bag. A key without a
// value is a bare attribute (""). A value that looks like a JSON list is
// decoded; if it does not decode, the raw string is kept and a warning logged.
func parseAttrs(pairs []string) (map[string]any, error) {
	attrs := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, _ := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, fmt.Errorf("invalid --attr %q: empty key", pair)
		}

		if strings.HasPrefix(strings.TrimSpace(v), "[") {
			list, err := coerce.EnsureArray(v, true)
			if err != nil {
				appLog.Warn("attribute kept as string",
					"attr", k,
					"kind", apperr.GetKind(err).String(),
					"error", err.Error())
				attrs[k] = v
				continue
			}
			attrs[k] = list
			continue
		}
		attrs[k] = v
	}
	return attrs, nil
}

func render(v any, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json: %w", err)
		}
		return string(data) + "\n", nil
	case "yaml", "":
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown format %q: use yaml or json", format)
	}
}
