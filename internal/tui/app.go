// Package tui is an interactive terminal host for one phone-input widget.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/phoneinput/internal/adapter"
	"github.com/ppiankov/phoneinput/internal/country"
	"github.com/ppiankov/phoneinput/internal/logger"
	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
	"github.com/ppiankov/phoneinput/internal/session"
)

// Regions offered in the country popover.
var Regions = []string{"RU", "UA", "KZ", "BY", "US", "GB", "DE", "FR", "IT", "ES", "TR", "IN", "CN", "JP", "BR"}

// Options configures the initial widget.
type Options struct {
	Model         machine.NullString
	Country       machine.NullString
	DetectCountry bool
	Logger        *logger.Logger
}

// App drives a session from keystrokes.
type App struct {
	sess      *session.Session
	input     string
	cursor    int
	status    string
	payload   adapter.BasePayload
	baseValue string
	quitting  bool
}

// New creates the app and its session.
func New(p policy.Policy, opts Options) *App {
	a := &App{baseValue: adapter.CountryValueForBase(opts.Country)}
	a.sess = session.New(p, opts.Model, opts.Country,
		session.WithPhoneUpdate(func(bp adapter.BasePayload) { a.payload = bp }),
		session.WithCountryUpdate(func(c string) { a.baseValue = c }),
		session.WithCountryDetection(opts.DetectCountry),
		session.WithLogger(opts.Logger),
	)
	st := a.sess.State()
	a.input = st.RawInput
	a.payload = adapter.NewBasePayload(st.NormalizedInput, st.Config)
	return a
}

// Session exposes the underlying session, e.g. for a reload watcher.
func (a *App) Session() *session.Session {
	return a.sess
}

// Run starts the terminal program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, a *App) error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	if a.sess.State().UI.IsPopoverShown {
		if handled, cmd := a.handlePopoverKey(m); handled {
			return a, cmd
		}
	}

	switch m.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		a.quitting = true
		return a, tea.Quit
	case tea.KeyEnter:
		st := a.sess.Commit()
		a.status = "committed " + show(st.ModelValue)
	case tea.KeyTab:
		a.setPopover(!a.sess.State().UI.IsPopoverShown)
	case tea.KeyBackspace:
		if r := []rune(a.input); len(r) > 0 {
			a.typed(string(r[:len(r)-1]))
		}
	case tea.KeyCtrlU:
		a.typed("")
	case tea.KeySpace:
		a.typed(a.input + " ")
	case tea.KeyRunes:
		a.typed(a.input + string(m.Runes))
	}
	return a, nil
}

func (a *App) handlePopoverKey(m tea.KeyMsg) (bool, tea.Cmd) {
	switch m.Type {
	case tea.KeyUp:
		if a.cursor > 0 {
			a.cursor--
		}
	case tea.KeyDown:
		if a.cursor < len(Regions)-1 {
			a.cursor++
		}
	case tea.KeyEnter:
		region := Regions[a.cursor]
		a.sess.Dispatch(machine.CountrySelected{Value: machine.Some(region)})
		a.setPopover(false)
		a.status = "selected " + region
	case tea.KeyEsc:
		a.setPopover(false)
	default:
		return false, nil
	}
	return true, nil
}

func (a *App) typed(raw string) {
	a.input = raw
	a.sess.Dispatch(machine.UserTyped{RawInput: raw})
	a.status = ""
}

func (a *App) setPopover(shown bool) {
	a.sess.Dispatch(machine.PopoverVisibilityChanged{Value: shown})
}

// styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Faint(true).Width(12)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	popoverStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	st := a.sess.State()
	p := a.sess.Policy()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Phone input"))
	b.WriteString("\n\n")
	row(&b, "input", a.input+"▏")
	row(&b, "normalized", st.NormalizedInput)
	row(&b, "digits", fmt.Sprintf("%s (%d/%d)", st.Digits, len(st.Digits), st.Config.MaxDigits))
	row(&b, "model", show(st.ModelValue))
	row(&b, "country", countryLabel(a.baseValue, p.UI.ShowFlagsInPopover))
	row(&b, "base", fmt.Sprintf("%q auto_format=%t no_fmt_as_you_type=%t",
		a.payload.NewPhoneNumber, a.payload.AutoFormat, a.payload.NoFormattingAsYouType))

	if st.UI.IsPopoverShown {
		var list strings.Builder
		for i, r := range Regions {
			line := countryLabel(r, p.UI.ShowFlagsInPopover)
			if i == a.cursor {
				line = cursorStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			list.WriteString(line)
			if i < len(Regions)-1 {
				list.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(popoverStyle.Render(list.String()))
		b.WriteString("\n")
	}

	if a.status != "" {
		b.WriteString("\n" + a.status + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[type] input  [enter] commit  [tab] countries  [↑/↓] choose  [ctrl+u] clear  [esc] quit"))
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

func countryLabel(region string, flags bool) string {
	if region == adapter.DefaultCountryCode {
		return region
	}
	label := region
	if code := country.CallingCodeForRegion(region); code != "" {
		label += " +" + code
	}
	if flags {
		label = flag(region) + " " + label
	}
	return label
}

// flag renders a two-letter region as regional indicator symbols.
func flag(region string) string {
	if len(region) != 2 {
		return ""
	}
	var r []rune
	for _, c := range strings.ToUpper(region) {
		if c < 'A' || c > 'Z' {
			return ""
		}
		r = append(r, 0x1F1E6+(c-'A'))
	}
	return string(r)
}

func show(n machine.NullString) string {
	if !n.Valid {
		return "null"
	}
	return fmt.Sprintf("%q", n.String)
}
