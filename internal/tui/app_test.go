package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
)

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(a *App, msgs ...tea.Msg) {
	for _, m := range msgs {
		a.Update(m)
	}
}

func TestTypingNormalizes(t *testing.T) {
	a := New(policy.DefaultPolicy(), Options{})
	send(a, runes("8"), key(tea.KeySpace), runes("("), runes("900"), runes(")"))

	st := a.Session().State()
	if st.RawInput != "8 (900)" {
		t.Errorf("expected raw '8 (900)', got %q", st.RawInput)
	}
	if st.NormalizedInput != "+8900" {
		t.Errorf("expected +8900, got %q", st.NormalizedInput)
	}
	if a.payload.NewPhoneNumber != "+8900" {
		t.Errorf("expected base payload updated, got %+v", a.payload)
	}

	send(a, key(tea.KeyBackspace))
	if got := a.Session().State().RawInput; got != "8 (900" {
		t.Errorf("expected backspace to drop one rune, got %q", got)
	}

	send(a, key(tea.KeyCtrlU))
	if got := a.Session().State().NormalizedInput; got != "+" {
		t.Errorf("expected cleared input, got %q", got)
	}
}

func TestEnterCommits(t *testing.T) {
	a := New(policy.DefaultPolicy(), Options{})
	send(a, runes("+44 20"), key(tea.KeyEnter))

	if got := a.Session().State().ModelValue; got != machine.Some("+4420") {
		t.Errorf("expected committed +4420, got %+v", got)
	}
	if !strings.Contains(a.status, "committed") {
		t.Errorf("expected status, got %q", a.status)
	}
}

func TestPopoverSelectsCountry(t *testing.T) {
	a := New(policy.DefaultPolicy(), Options{})
	if a.baseValue != "--" {
		t.Errorf("expected placeholder country, got %q", a.baseValue)
	}

	send(a, key(tea.KeyTab))
	if !a.Session().State().UI.IsPopoverShown {
		t.Fatal("expected popover shown")
	}

	send(a, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyUp), key(tea.KeyEnter))

	st := a.Session().State()
	if st.Country != machine.Some(Regions[1]) {
		t.Errorf("expected %s, got %+v", Regions[1], st.Country)
	}
	if st.UI.IsPopoverShown {
		t.Error("expected popover closed after selection")
	}
	if a.baseValue != Regions[1] {
		t.Errorf("expected base country %s, got %q", Regions[1], a.baseValue)
	}
}

func TestEscClosesPopoverBeforeQuit(t *testing.T) {
	a := New(policy.DefaultPolicy(), Options{})
	send(a, key(tea.KeyTab))

	_, cmd := a.Update(key(tea.KeyEsc))
	if cmd != nil || a.quitting {
		t.Error("expected esc to close the popover, not quit")
	}
	if a.Session().State().UI.IsPopoverShown {
		t.Error("expected popover closed")
	}

	_, cmd = a.Update(key(tea.KeyEsc))
	if cmd == nil || !a.quitting {
		t.Error("expected quit")
	}
}

func TestDetectCountry(t *testing.T) {
	a := New(policy.DefaultPolicy(), Options{DetectCountry: true})
	send(a, runes("8900"))

	if a.baseValue != "RU" {
		t.Errorf("expected detected RU, got %q", a.baseValue)
	}
}

func TestViewShowsState(t *testing.T) {
	a := New(policy.DefaultPolicy(), Options{Model: machine.Some("+7900"), Country: machine.Some("RU")})
	send(a, key(tea.KeyTab))

	out := a.View()
	for _, want := range []string{"+7900", "RU +7", "🇷🇺", "GB +44"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestViewWithoutFlags(t *testing.T) {
	p := policy.DefaultPolicy()
	p.UI.ShowFlagsInPopover = false
	a := New(p, Options{Country: machine.Some("RU")})

	if out := a.View(); strings.Contains(out, "🇷🇺") {
		t.Errorf("expected no flags:\n%s", out)
	}
}

func TestFlag(t *testing.T) {
	if got := flag("gb"); got != "🇬🇧" {
		t.Errorf("expected GB flag, got %q", got)
	}
	for _, bad := range []string{"", "G", "G1", "GBR"} {
		if got := flag(bad); got != "" {
			t.Errorf("flag(%q) = %q, want empty", bad, got)
		}
	}
}
