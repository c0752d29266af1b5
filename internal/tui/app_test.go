package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/banktally/internal/book"
	"github.com/theirongolddev/banktally/internal/catalog"
	"github.com/theirongolddev/banktally/internal/persist"
	"github.com/theirongolddev/banktally/internal/persist/memory"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func newTestApp(t *testing.T, gw *memory.Store) App {
	t.Helper()
	b := book.Open(context.Background(), gw, catalog.Default, nil)
	a := NewApp(b, Options{Locale: "en-US", StoreName: "memory"})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var m tea.Model
		m, cmd = a.Update(msg)
		a = m.(App)
	}
	return a, cmd
}

// runCmd executes cmd, expanding batches, and returns the first SavedMsg.
func runCmd(t *testing.T, cmd tea.Cmd) (SavedMsg, bool) {
	t.Helper()
	if cmd == nil {
		return SavedMsg{}, false
	}
	switch msg := cmd().(type) {
	case SavedMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if saved, ok := runCmd(t, c); ok {
				return saved, true
			}
		}
	}
	return SavedMsg{}, false
}

func TestCursorAndPick(t *testing.T) {
	a := newTestApp(t, memory.New())

	a, _ = press(t, a, "j", "j", "k")
	if a.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.cursor)
	}
	if a.book.Ledger().Selected() != 0 {
		t.Fatal("moving the cursor changed the selection")
	}

	a, _ = press(t, a, "enter")
	if got := a.book.View().Account.Label; got != "(013)國泰世華(2882)" {
		t.Fatalf("selected = %q", got)
	}

	a, _ = press(t, a, "G", "j")
	if a.cursor != 9 {
		t.Fatalf("cursor = %d, want 9", a.cursor)
	}
	a, _ = press(t, a, "g", "k")
	if a.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", a.cursor)
	}
}

func TestModifyShowsReceipt(t *testing.T) {
	a := newTestApp(t, memory.New())

	a, _ = press(t, a, "G", "k", "k", "m")
	if a.focus != focusInput {
		t.Fatal("m did not focus the amount input")
	}
	a, _ = press(t, a, "ctrl+u", "250.5", "enter")

	if a.alert == nil || a.alert.kind != alertSuccess {
		t.Fatalf("alert = %+v, want success", a.alert)
	}
	if !strings.Contains(a.alert.body, "(808)玉山銀行(2884)") || !strings.Contains(a.alert.body, "250.5") {
		t.Fatalf("receipt body = %q", a.alert.body)
	}
	if got := a.book.View().Total.String(); got != "250.5" {
		t.Fatalf("total = %s, want 250.5", got)
	}
	if !a.book.View().Dirty {
		t.Fatal("ledger not dirty after modify")
	}
}

func TestModifyRejectsInvalid(t *testing.T) {
	a := newTestApp(t, memory.New())

	a, _ = press(t, a, "m", "ctrl+u", "-5", "enter")
	if a.alert == nil || a.alert.kind != alertError {
		t.Fatalf("alert = %+v, want error", a.alert)
	}
	if !a.book.View().Total.IsZero() || a.book.View().Dirty {
		t.Fatal("invalid amount changed the ledger")
	}

	a, _ = press(t, a, "esc")
	if a.alert != nil {
		t.Fatal("esc did not dismiss the alert")
	}
	if a.focus != focusInput {
		t.Fatal("dismissing the alert left the input")
	}
}

func TestEscDiscardsEdit(t *testing.T) {
	a := newTestApp(t, memory.New())

	a, _ = press(t, a, "m", "ctrl+u", "99", "esc")
	if a.focus != focusList {
		t.Fatal("esc did not return to the list")
	}
	if got := a.amount.Value(); got != "0" {
		t.Fatalf("amount = %q, want reset to 0", got)
	}
}

func TestSaveWritesGateway(t *testing.T) {
	gw := memory.New()
	a := newTestApp(t, gw)

	a, _ = press(t, a, "m", "ctrl+u", "1000", "enter", "tab")
	a, cmd := press(t, a, "s")
	if !a.saving {
		t.Fatal("s did not start a save")
	}

	saved, ok := runCmd(t, cmd)
	if !ok {
		t.Fatal("save command produced no SavedMsg")
	}
	m, _ := a.Update(saved)
	a = m.(App)

	if a.saving || a.book.View().Dirty {
		t.Fatalf("saving=%v dirty=%v after save", a.saving, a.book.View().Dirty)
	}
	if a.alert == nil || a.alert.title != "存檔成功" {
		t.Fatalf("alert = %+v, want save success", a.alert)
	}
	if v, _ := gw.Value(persist.KeySavings); v != "[1000,0,0,0,0,0,0,0,0,0]" {
		t.Fatalf("stored savings = %s", v)
	}
}

func TestSaveFailureKeepsLedger(t *testing.T) {
	gw := memory.New()
	gw.SetErr = errors.New("disk full")
	a := newTestApp(t, gw)

	a, _ = press(t, a, "m", "ctrl+u", "5", "enter", "tab")
	a, cmd := press(t, a, "s")
	saved, _ := runCmd(t, cmd)
	m, _ := a.Update(saved)
	a = m.(App)

	if a.alert == nil || a.alert.title != "存檔失敗" {
		t.Fatalf("alert = %+v, want save failure", a.alert)
	}
	if got := a.book.View().Total.String(); got != "5" || !a.book.View().Dirty {
		t.Fatalf("total=%s dirty=%v, want 5 and dirty", got, a.book.View().Dirty)
	}
}

func TestEditDuringSaveStaysDirty(t *testing.T) {
	a := newTestApp(t, memory.New())

	a, _ = press(t, a, "m", "ctrl+u", "5", "enter", "tab")
	a, cmd := press(t, a, "s")
	saved, _ := runCmd(t, cmd)

	a, _ = press(t, a, "m", "ctrl+u", "7", "enter", "tab")
	m, _ := a.Update(saved)
	a = m.(App)

	if !a.book.View().Dirty {
		t.Fatal("edit made while saving was marked persisted")
	}
}

func TestQuitWarnsWhenDirty(t *testing.T) {
	a := newTestApp(t, memory.New())

	a, _ = press(t, a, "m", "ctrl+u", "5", "enter", "tab")
	a, cmd := press(t, a, "q")
	if cmd != nil {
		t.Fatal("q quit with unsaved changes")
	}
	if a.alert == nil || a.alert.kind != alertWarn {
		t.Fatalf("alert = %+v, want warning", a.alert)
	}

	_, cmd = press(t, a, "q")
	if cmd == nil {
		t.Fatal("second q did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("second q did not return tea.Quit")
	}
}

func TestQuitCleanExitsImmediately(t *testing.T) {
	a := newTestApp(t, memory.New())
	_, cmd := press(t, a, "q")
	if cmd == nil {
		t.Fatal("q did not quit a clean ledger")
	}
}

func TestAboutAndHelp(t *testing.T) {
	a := newTestApp(t, memory.New())

	a, _ = press(t, a, "e")
	if a.alert == nil || !strings.Contains(a.alert.body, "中央銀行鋒兄分行") {
		t.Fatalf("about alert = %+v", a.alert)
	}
	a, _ = press(t, a, "esc", "?")
	if !a.showHelp {
		t.Fatal("? did not open help")
	}
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("help view missing title")
	}
	a, _ = press(t, a, "x")
	if a.showHelp {
		t.Fatal("help not dismissed")
	}
}

func TestViewShowsTotalAndAccounts(t *testing.T) {
	gw := memory.NewWith(map[string]string{
		persist.KeySavings:       "[1000,0,0,0,0,0,0,250.5,0,0]",
		persist.KeySelectedIndex: "7",
	})
	a := newTestApp(t, gw)

	if a.cursor != 7 {
		t.Fatalf("cursor = %d, want selected index 7", a.cursor)
	}
	if got := a.amount.Value(); got != "250.5" {
		t.Fatalf("amount prefill = %q, want 250.5", got)
	}

	view := a.View()
	for _, want := range []string{"1,250.5", "(822)中國信託(2891)", "累積存款"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if h := lipgloss.Height(view); h != 40 {
		t.Fatalf("view height = %d, want 40", h)
	}
}

func TestNarrowTerminal(t *testing.T) {
	a := newTestApp(t, memory.New())
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(m.(App).View(), "too narrow") {
		t.Fatal("narrow view not shown")
	}
}

func TestModifyRejectsHugeExponent(t *testing.T) {
	a := newTestApp(t, memory.New())

	a, _ = press(t, a, "m", "ctrl+u", "1e2000000000", "enter")
	if a.alert == nil || a.alert.kind != alertError {
		t.Fatalf("alert = %+v, want error", a.alert)
	}
	if got := a.amount.Value(); got != "1e2000000000" {
		t.Fatalf("amount = %q, want the rejected input kept for editing", got)
	}
	if !a.book.View().Total.IsZero() {
		t.Fatal("oversized amount reached the ledger")
	}
}
