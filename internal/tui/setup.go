package tui

import (
	"github.com/theirongolddev/banktally/internal/config"
	"github.com/theirongolddev/banktally/internal/logging"
	"github.com/theirongolddev/banktally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run form results. The form writes through
// pointers, so it lives outside the App value.
type setupValues struct {
	theme  string
	locale string
}

// Locales offered for number formatting.
var Locales = []struct {
	Tag   string
	Label string
}{
	{"zh-TW", "繁體中文 (1,234.5)"},
	{"en-US", "English (1,234.5)"},
	{"de-DE", "Deutsch (1.234,5)"},
	{"fr-FR", "Français (1 234,5)"},
}

func newSetupValues(locale string) *setupValues {
	if locale == "" {
		locale = config.DefaultConfig().Appearance.Locale
	}
	return &setupValues{theme: theme.Active.Name, locale: locale}
}

// ThemeOptions lists the selectable themes for huh selects.
func ThemeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		opts = append(opts, huh.NewOption(t.Name, t.Name))
	}
	return opts
}

// LocaleOptions lists the selectable number locales for huh selects.
func LocaleOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(Locales))
	for _, l := range Locales {
		opts = append(opts, huh.NewOption(l.Label, l.Tag))
	}
	return opts
}

// NewSetupFields builds the setup form groups bound to themeVal and localeVal.
func NewSetupFields(themeVal, localeVal *string) *huh.Group {
	return huh.NewGroup(
		huh.NewNote().
			Title("Welcome to banktally").
			Description("Track the balances of your bank accounts in one place.\nRun `banktally setup` anytime to reconfigure."),
		huh.NewSelect[string]().
			Title("Color theme").
			Options(ThemeOptions()...).
			Value(themeVal),
		huh.NewSelect[string]().
			Title("Number format").
			Options(LocaleOptions()...).
			Value(localeVal),
	)
}

func newSetupForm(vals *setupValues) *huh.Form {
	return huh.NewForm(NewSetupFields(&vals.theme, &vals.locale)).
		WithShowHelp(true)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink
	}

	return a, cmd
}

func (a *App) saveSetupConfig() {
	cfg, err := config.Load()
	if err != nil {
		a.log.Warn("config unreadable, writing defaults", logging.FieldError, err)
		cfg = config.DefaultConfig()
	}

	cfg.Appearance.Theme = a.setupVals.theme
	cfg.Appearance.Locale = a.setupVals.locale
	theme.SetActive(cfg.Appearance.Theme)
	a.locale = cfg.Appearance.Locale
	a.resetAmount()

	if err := config.Save(cfg); err != nil {
		a.log.Error("saving config failed", logging.FieldError, err)
		a.alert = &alert{
			title: "Could not save config",
			body:  err.Error() + "\nSettings apply for this session only.",
			kind:  alertWarn,
		}
	}
}
