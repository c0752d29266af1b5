// Package tui provides the interactive Bubble Tea screen for banktally.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/banktally/internal/book"
	"github.com/theirongolddev/banktally/internal/cli"
	"github.com/theirongolddev/banktally/internal/ledger"
	"github.com/theirongolddev/banktally/internal/logging"
	"github.com/theirongolddev/banktally/internal/tui/components"
	"github.com/theirongolddev/banktally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// SavedMsg is sent when a background save finishes.
type SavedMsg struct {
	Snap ledger.Snapshot
	Err  error
}

type focusArea int

const (
	focusList focusArea = iota
	focusInput
)

type alertKind int

const (
	alertSuccess alertKind = iota
	alertError
	alertWarn
)

// alert is a modal message dismissed by the next key press.
type alert struct {
	title string
	body  string
	kind  alertKind
}

// Options configures a new App.
type Options struct {
	Locale    string
	StoreName string // shown in the status bar
	NeedSetup bool
	Logger    *log.Logger
}

// App is the root Bubble Tea model.
type App struct {
	book      *book.Book
	locale    string
	storeName string
	log       *log.Logger

	// UI state
	width    int
	height   int
	cursor   int
	focus    focusArea
	amount   textinput.Model
	alert    *alert
	showHelp bool

	// Save in flight
	saving      bool
	spinner     spinner.Model
	confirmQuit bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 120
	minContentHeight = 5
	saveTimeout      = 5 * time.Second
)

// NewApp creates the TUI model around a hydrated book.
func NewApp(b *book.Book, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = "0"
	ti.CharLimit = 32
	ti.Width = 24
	ti.Prompt = "$ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		book:      b,
		locale:    opts.Locale,
		storeName: opts.StoreName,
		log:       logger,
		amount:    ti,
		spinner:   sp,
		needSetup: opts.NeedSetup,
		cursor:    b.Ledger().Selected(),
	}
	a.resetAmount()
	if a.needSetup {
		a.setupVals = newSetupValues(opts.Locale)
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return a.setupForm.Init()
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to setup form if active
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case SavedMsg:
		return a.handleSaved(msg), nil

	case spinner.TickMsg:
		if !a.saving {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// An alert swallows esc and enter; other keys dismiss it and go through.
		if a.alert != nil {
			a.alert = nil
			if key == "esc" || key == "enter" {
				return a, nil
			}
		}

		if a.focus == focusInput {
			return a.updateInput(msg)
		}
		return a.updateList(key)
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.focus == focusInput {
		var cmd tea.Cmd
		a.amount, cmd = a.amount.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateList(key string) (tea.Model, tea.Cmd) {
	if key != "q" {
		a.confirmQuit = false
	}

	n := a.book.Catalog().Len()
	switch key {
	case "j", "down":
		if a.cursor < n-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = n - 1
	case "enter", " ":
		a.pick()
	case "m", "tab", "i":
		a.pick()
		return a, a.focusAmount()
	case "s":
		return a.startSave()
	case "e":
		a.alert = aboutAlert()
	case "?":
		a.showHelp = true
	case "q":
		if a.book.View().Dirty && !a.confirmQuit {
			a.confirmQuit = true
			a.alert = &alert{
				title: "尚未存檔",
				body:  "Unsaved changes. Press q again to quit, or s to save.",
				kind:  alertWarn,
			}
			return a, nil
		}
		return a, tea.Quit
	}
	return a, nil
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.modify()
		return a, nil
	case "esc":
		a.resetAmount()
		a.blurAmount()
		return a, nil
	case "tab", "shift+tab":
		a.blurAmount()
		return a, nil
	case "ctrl+s":
		return a.startSave()
	}

	var cmd tea.Cmd
	a.amount, cmd = a.amount.Update(msg)
	return a, cmd
}

// pick selects the account under the cursor through the selector.
func (a *App) pick() {
	label, ok := a.book.Catalog().Label(a.cursor)
	if !ok {
		return
	}
	if a.book.Pick(label) {
		a.resetAmount()
	}
}

func (a *App) modify() {
	receipt, err := a.book.Modify(a.amount.Value())
	if err != nil {
		if book.IsInvalidAmount(err) {
			a.alert = &alert{title: "錯誤", body: "請輸入有效的存款金額", kind: alertError}
		} else {
			a.alert = &alert{title: "錯誤", body: err.Error(), kind: alertError}
		}
		return
	}
	a.alert = &alert{
		title: "修改成功",
		body: fmt.Sprintf("銀行: %s\n存款金額: %s",
			receipt.Account.Label, cli.FormatAmount(receipt.Amount, a.locale)),
		kind: alertSuccess,
	}
	a.resetAmount()
}

func (a App) startSave() (tea.Model, tea.Cmd) {
	if a.saving {
		return a, nil
	}
	a.saving = true
	snap := a.book.Checkpoint()
	return a, tea.Batch(saveCmd(a.book, snap), a.spinner.Tick)
}

func (a App) handleSaved(msg SavedMsg) App {
	a.saving = false
	if msg.Err != nil {
		a.alert = &alert{title: "存檔失敗", body: "無法儲存資料", kind: alertError}
		return a
	}
	a.book.Persisted(msg.Snap)
	a.confirmQuit = false
	a.alert = &alert{title: "存檔成功", body: "已將存款資料儲存至設備", kind: alertSuccess}
	return a
}

// saveCmd writes snap on a background goroutine. It only touches the gateway,
// so edits made while it runs stay in the ledger and keep it dirty.
func saveCmd(b *book.Book, snap ledger.Snapshot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return SavedMsg{Snap: snap, Err: b.Commit(ctx, snap)}
	}
}

func (a *App) resetAmount() {
	a.amount.SetValue(cli.FormatPlain(a.book.View().Balance))
	a.amount.CursorEnd()
}

func (a *App) focusAmount() tea.Cmd {
	a.focus = focusInput
	return a.amount.Focus()
}

func (a *App) blurAmount() {
	a.focus = focusList
	a.amount.Blur()
}

func aboutAlert() *alert {
	return &alert{
		title: "鋒兄三七銀行",
		body:  "委任第五職等\n簡任第十二職等\n第12屆臺北市長\n第23任總統\n中央銀行鋒兄分行",
		kind:  alertSuccess,
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	if a.alert != nil {
		return a.viewAlert()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  banktally needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewAlert() string {
	t := theme.Active

	accent := t.Green
	switch a.alert.kind {
	case alertError:
		accent = t.Red
	case alertWarn:
		accent = t.Orange
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(accent).Background(t.Surface).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.alert.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.alert.body))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Accounts", []struct{ key, desc string }{
			{"j k ↑ ↓", "Move cursor"},
			{"g G", "First / Last account"},
			{"Enter", "Select account"},
		}},
		{"Amount", []struct{ key, desc string }{
			{"m Tab", "Select and edit balance"},
			{"Enter", "Apply amount"},
			{"Esc", "Discard edit"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"s ^s", "Save"},
			{"e", "About"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := a.renderHeader(w)
	store := a.storeName
	if a.saving {
		store = a.spinner.View() + " " + store
	}
	statusBar := components.RenderStatusBar(w, a.book.View().Dirty, a.saving, store)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	content := a.renderContent(cw)
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderHeader(w int) string {
	t := theme.Active
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true).Render(" ◈ banktally")
	sub := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" · 存款記帳")
	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(logo + sub)
}

func (a App) renderContent(cw int) string {
	sum := a.book.View()

	widths := components.LayoutRow(cw, 2)
	amountCard := components.ContentCard("存款金額 · "+sum.Account.Label, a.amount.View(), widths[0], a.focus == focusInput)
	totalCard := components.MetricCard("累積存款", cli.FormatAmount(sum.Total, a.locale), widths[1])
	top := components.CardRow([]string{amountCard, totalCard})

	list := components.ContentCard("金融機構", a.renderAccounts(sum, components.CardInnerWidth(cw)), cw, a.focus == focusList)

	return lipgloss.JoinVertical(lipgloss.Left, top, list)
}

func (a App) renderAccounts(sum book.Summary, innerW int) string {
	t := theme.Active
	accounts := a.book.Catalog().List()
	selected := sum.Account.ID

	amounts := make([]string, len(accounts))
	labelW, amountW := 0, 0
	for i, acct := range accounts {
		amounts[i] = cli.FormatAmount(sum.Balances[i], a.locale)
		labelW = max(labelW, lipgloss.Width(acct.Label))
		amountW = max(amountW, lipgloss.Width(amounts[i]))
	}

	// marker(2) + label + gap(2) + amount + gap(2) + bar + " " + pct(6)
	barW := innerW - 2 - labelW - 2 - amountW - 2 - 7
	showBars := barW >= 8

	var b strings.Builder
	for i, acct := range accounts {
		bg := t.Surface
		if i == a.cursor && a.focus == focusList {
			bg = t.SurfaceBright
		}
		fg := t.TextPrimary
		marker := "  "
		if i == selected {
			fg = t.Accent
			marker = "● "
		}

		style := lipgloss.NewStyle().Foreground(fg).Background(bg)
		gap := lipgloss.NewStyle().Background(bg).Render("  ")

		line := style.Render(marker) +
			style.Render(padRight(acct.Label, labelW)) +
			gap +
			style.Render(padLeft(amounts[i], amountW))
		if showBars {
			line += gap + components.ShareBar(cli.Share(sum.Balances[i], sum.Total), barW, i == selected)
		}
		b.WriteString(line)
		if i < len(accounts)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ─── Helpers ────────────────────────────────────────────────────

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
