package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/phoneinput/internal/adapter"
	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
	"github.com/ppiankov/phoneinput/internal/reload"
	"github.com/ppiankov/phoneinput/internal/session"
)

var (
	sessionModel   string
	sessionCountry string
	sessionDetect  bool
)

// commitLine on stdin commits the current input instead of typing it.
const commitLine = ":commit"

func init() {
	rootCmd.AddCommand(watchCmd)
	addSessionFlags(watchCmd)
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sessionModel, "model", "", "Initial model value (empty means null)")
	cmd.Flags().StringVar(&sessionCountry, "country", "", "Initial country code (default from settings)")
	cmd.Flags().BoolVar(&sessionDetect, "detect", false, "Auto-detect the country from typed prefixes")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run a widget session fed from stdin, reloading the widget file on change",
	Long: "Each stdin line is dispatched as typed input; a line reading \":commit\"\n" +
		"commits the normalized value as the model. Base-widget updates are\n" +
		"printed to stdout as JSON lines. Saving the widget file re-resolves\n" +
		"the policy and re-derives the current input.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := widgetPath()
	if path == "" {
		path = policy.DefaultSourcesPath()
	}
	src, err := policy.LoadSources(path)
	if err != nil {
		return fmt.Errorf("load widget %s: %w", path, err)
	}
	lg := appLog.WithWidget(path)

	emit := jsonLines(cmd.OutOrStdout())
	sess := session.New(policy.Resolve(src.Input()),
		nullable(sessionModel),
		nullable(initialCountry()),
		session.WithPhoneUpdate(func(p adapter.BasePayload) { emit("phone", p) }),
		session.WithCountryUpdate(func(c string) { emit("country", c) }),
		session.WithCountryDetection(sessionDetect),
		session.WithLogger(lg),
	)

	w, err := reload.New(path, sess, reload.WithLogger(lg))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	lg.Info("watching", "widget", w.Path())
	feed(ctx, sess, lines)
	stop()
	return <-errCh
}

// feed dispatches stdin lines until they run out or ctx is done.
func feed(ctx context.Context, sess *session.Session, lines <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == commitLine {
				sess.Commit()
				continue
			}
			sess.Dispatch(machine.UserTyped{RawInput: line})
		}
	}
}

// jsonLines returns a goroutine-safe emitter of {"type": kind, kind: v} lines.
func jsonLines(w io.Writer) func(kind string, v any) {
	var mu sync.Mutex
	enc := json.NewEncoder(w)
	return func(kind string, v any) {
		mu.Lock()
		defer mu.Unlock()
		_ = enc.Encode(map[string]any{"type": kind, kind: v})
	}
}

func initialCountry() string {
	if sessionCountry != "" {
		return sessionCountry
	}
	return settings.Widget.Country
}

func nullable(s string) machine.NullString {
	if s == "" {
		return machine.NullString{}
	}
	return machine.Some(s)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
