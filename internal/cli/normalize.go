package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ppiankov/phoneinput/internal/adapter"
	"github.com/ppiankov/phoneinput/internal/country"
	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
)

var (
	normalizeFormat string
	normalizeDetect bool
)

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringArrayVar(&resolveAttrs, "attr", nil, "Element attribute key[=value], repeatable")
	normalizeCmd.Flags().StringVarP(&normalizeFormat, "format", "f", "text", "Output format (text|json)")
	normalizeCmd.Flags().BoolVar(&normalizeDetect, "detect", false, "Also report the detected country")
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [input...]",
	Short: "Normalize phone input under the resolved policy",
	Long: "Derives the digit-filtered and normalized form of each argument, or of each\n" +
		"stdin line when no arguments are given, under the widget's resolved policy.",
	RunE: runNormalize,
}

type normalized struct {
	machine.Snapshot
	Base    adapter.BasePayload `json:"base"`
	Country *country.Result     `json:"country,omitempty"`
}

func runNormalize(cmd *cobra.Command, args []string) error {
	in, err := resolveInput()
	if err != nil {
		return err
	}
	p := policy.Resolve(in)
	cfg := machine.ConfigFromPolicy(p)

	emit := func(raw string) error {
		return writeNormalized(cmd.OutOrStdout(), normalizeOne(raw, p, cfg), normalizeFormat)
	}

	if len(args) > 0 {
		for _, a := range args {
			if err := emit(a); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		if err := emit(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func normalizeOne(raw string, p policy.Policy, cfg machine.Config) normalized {
	snap := machine.Derive(raw, cfg)
	n := normalized{
		Snapshot: snap,
		Base:     adapter.NewBasePayload(snap.NormalizedInput, cfg),
	}
	if normalizeDetect {
		if res, ok := country.Detect(snap, p.Country); ok {
			n.Country = &res
		}
	}
	return n
}

func writeNormalized(w io.Writer, n normalized, format string) error {
	if format == "json" {
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	line := fmt.Sprintf("%-24q → %-18s digits=%s", n.RawInput, n.NormalizedInput, n.Digits)
	if n.Country != nil {
		line += fmt.Sprintf("  country=%s (%s)", n.Country.Region, n.Country.Source)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
