package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tarediiran-industries.com/bus-eta-services/internal/session"
)

type focus int

const (
	focusKeyword focus = iota
	focusRoutes
	focusBuses
	focusCount
)

// viewMsg carries the screen returned by a finished controller call.
type viewMsg struct {
	view session.View
}

// Model renders one session.Controller. Remote calls run as commands, so the
// screen stays responsive while they are in flight.
type Model struct {
	ctx        context.Context
	controller *session.Controller
	logger     *slog.Logger

	keys    KeyMap
	styles  styles
	spinner spinner.Model

	view     session.View
	focus    focus
	keyword  []rune
	cursors  [focusCount]int
	inFlight int
	width    int
}

func NewModel(ctx context.Context, controller *session.Controller, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	view := controller.View()
	model := Model{
		ctx:        ctx,
		controller: controller,
		logger:     logger,
		keys:       DefaultKeyMap(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		view:       view,
		keyword:    []rune(view.Keyword),
	}
	return model.WithTheme(DefaultTheme)
}

// WithTheme returns a copy of model drawn with theme.
func (model Model) WithTheme(theme Theme) Model {
	model.styles = newStyles(theme)
	model.spinner.Style = lipgloss.NewStyle().Foreground(theme.HeaderForeground)
	return model
}

func (model Model) Init() tea.Cmd {
	return model.spinner.Tick
}

func (model Model) loading() bool {
	return model.inFlight > 0 || model.view.Loading
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		return model, nil

	case viewMsg:
		if model.inFlight > 0 {
			model.inFlight--
		}
		model.logger.Debug("session view updated", "stage", message.view.Stage.String(), "in_flight", model.inFlight)
		model.apply(message.view)
		return model, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		model.controller.Close()
		return model, tea.Quit
	case key.Matches(message, model.keys.NextFocus):
		model.focus = (model.focus + 1) % focusCount
		return model, nil
	case key.Matches(message, model.keys.PreviousFocus):
		model.focus = (model.focus + focusCount - 1) % focusCount
		return model, nil
	case key.Matches(message, model.keys.Eta):
		return model.requestETA()
	case key.Matches(message, model.keys.Activate):
		return model.activate()
	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
		return model, nil
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
		return model, nil
	}

	if model.focus != focusKeyword {
		return model, nil
	}
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		model.keyword = append(model.keyword, message.Runes...)
		if message.Type == tea.KeySpace && len(message.Runes) == 0 {
			model.keyword = append(model.keyword, ' ')
		}
	case tea.KeyBackspace:
		if len(model.keyword) > 0 {
			model.keyword = model.keyword[:len(model.keyword)-1]
		}
	default:
		return model, nil
	}
	model.view = model.controller.SetKeyword(string(model.keyword))
	return model, nil
}

func (model Model) activate() (tea.Model, tea.Cmd) {
	switch model.focus {
	case focusKeyword:
		if !model.view.SearchEnabled() {
			return model, nil
		}
		return model.dispatch(func(ctx context.Context, controller *session.Controller) session.View {
			return controller.Search(ctx, string(model.keyword))
		})

	case focusRoutes:
		if model.view.Routes.Disabled {
			return model, nil
		}
		optionID := optionAt(model.view.Routes, model.cursors[focusRoutes])
		model.focus = focusBuses
		return model.dispatch(func(ctx context.Context, controller *session.Controller) session.View {
			return controller.SelectRoute(ctx, optionID)
		})

	case focusBuses:
		if model.view.Buses.Disabled {
			return model, nil
		}
		model.apply(model.controller.SelectBus(optionAt(model.view.Buses, model.cursors[focusBuses])))
	}
	return model, nil
}

func (model Model) requestETA() (tea.Model, tea.Cmd) {
	return model.dispatch(func(ctx context.Context, controller *session.Controller) session.View {
		return controller.RequestETA(ctx)
	})
}

func (model Model) dispatch(call func(context.Context, *session.Controller) session.View) (tea.Model, tea.Cmd) {
	ctx, controller := model.ctx, model.controller
	model.inFlight++
	return model, func() tea.Msg {
		return viewMsg{view: call(ctx, controller)}
	}
}

// apply replaces the shown screen and moves each list cursor onto its
// control's current selection.
func (model *Model) apply(view session.View) {
	model.view = view
	model.keyword = []rune(view.Keyword)
	model.cursors[focusRoutes] = indexOf(view.Routes)
	model.cursors[focusBuses] = indexOf(view.Buses)
}

func (model *Model) moveCursor(delta int) {
	var sel session.Select
	switch model.focus {
	case focusRoutes:
		sel = model.view.Routes
	case focusBuses:
		sel = model.view.Buses
	default:
		return
	}
	if sel.Disabled {
		return
	}
	cursor := model.cursors[model.focus] + delta
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(sel.Options) {
		cursor = len(sel.Options)
	}
	model.cursors[model.focus] = cursor
}

// Row 0 of a list is the placeholder.
func optionAt(sel session.Select, cursor int) string {
	if cursor <= 0 || cursor > len(sel.Options) {
		return ""
	}
	return sel.Options[cursor-1].Value
}

func indexOf(sel session.Select) int {
	for i, option := range sel.Options {
		if option.Value == sel.Selected {
			return i + 1
		}
	}
	return 0
}

func (model Model) View() string {
	var sections []string
	sections = append(sections, model.styles.header.Render("公車到站查詢"))
	sections = append(sections, model.renderKeyword())
	sections = append(sections, model.renderSelect("路線", focusRoutes, model.view.Routes))
	sections = append(sections, model.renderSelect("公車", focusBuses, model.view.Buses))
	sections = append(sections, model.renderEtaButton())

	if model.loading() {
		sections = append(sections, model.spinner.View()+" "+model.styles.faint.Render("載入中..."))
	}
	if message := model.view.Message; message != nil {
		if message.Kind == session.MessageError {
			sections = append(sections, model.styles.errorMsg.Render(message.Text))
		} else {
			sections = append(sections, model.styles.info.Render(message.Text))
		}
	}
	if results := model.view.Results; results != nil {
		sections = append(sections, model.renderResults(results))
	}

	sections = append(sections, model.renderHelp())
	return strings.Join(sections, "\n") + "\n"
}

func (model Model) box(target focus) func(...string) string {
	if model.focus == target {
		return model.styles.focused.Render
	}
	return model.styles.box.Render
}

func (model Model) renderKeyword() string {
	text := string(model.keyword)
	if model.focus == focusKeyword {
		text += "█"
	}
	if text == "" {
		text = model.styles.faint.Render(session.TextEnterKeyword)
	}
	return model.box(focusKeyword)("關鍵字: " + text)
}

func (model Model) renderSelect(title string, target focus, sel session.Select) string {
	lines := []string{model.styles.header.Render(title)}
	rows := append([]session.Option{{Label: sel.Placeholder}}, sel.Options...)
	for i, row := range rows {
		marker := "  "
		if i > 0 && row.Value == sel.Selected {
			marker = "● "
		}
		line := marker + row.Label
		switch {
		case sel.Disabled:
			line = model.styles.faint.Render(line)
		case model.focus == target && model.cursors[target] == i:
			line = model.styles.cursor.Render(line)
		default:
			line = model.styles.normal.Render(line)
		}
		lines = append(lines, line)
	}
	return model.box(target)(strings.Join(lines, "\n"))
}

func (model Model) renderEtaButton() string {
	label := "[ctrl+e] 查詢到站時間"
	if !model.view.EtaEnabled {
		return model.styles.faint.Render(label)
	}
	return model.styles.header.Render(label)
}

func (model Model) renderResults(results *session.Results) string {
	var lines []string
	if details := results.Details; details != nil {
		lines = append(lines,
			model.styles.header.Render(details.Title),
			details.Position,
			details.GPSTime,
		)
	}
	for _, line := range results.Lines {
		lines = append(lines, "• "+line)
	}
	return model.styles.box.Render(strings.Join(lines, "\n"))
}

func (model Model) renderHelp() string {
	var parts []string
	for _, binding := range model.keys.bindings() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return model.styles.help.Render(strings.Join(parts, " · "))
}
