package tui

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tarediiran-industries.com/bus-eta-services/internal/api"
	"tarediiran-industries.com/bus-eta-services/internal/mockapi"
	"tarediiran-industries.com/bus-eta-services/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T) Model {
	t.Helper()

	server := httptest.NewServer(mockapi.NewHandler(mockapi.DefaultFixtures(), discardLogger()))
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL, api.WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	controller := session.NewController(client, discardLogger())
	t.Cleanup(controller.Close)
	return NewModel(context.Background(), controller, discardLogger())
}

// send feeds message to model and runs any resulting controller call to
// completion, feeding its view back in.
func send(t *testing.T, model Model, message tea.Msg) Model {
	t.Helper()

	updated, cmd := model.Update(message)
	model = updated.(Model)
	if cmd == nil {
		return model
	}
	if result, ok := cmd().(viewMsg); ok {
		updated, _ = model.Update(result)
		model = updated.(Model)
	}
	return model
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, r := range text {
		model = send(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return model
}

func keyPress(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func TestFullLookupFlow(t *testing.T) {
	model := newTestModel(t)

	model = typeText(t, model, "307")
	if got := string(model.keyword); got != "307" {
		t.Fatalf("keyword = %q", got)
	}

	model = send(t, model, keyPress(tea.KeyEnter))
	if model.view.Stage != session.StageRouteReady {
		t.Fatalf("stage after search = %v", model.view.Stage)
	}
	if len(model.view.Routes.Options) != 2 || model.view.Routes.Disabled {
		t.Fatalf("routes = %+v", model.view.Routes)
	}

	model = send(t, model, keyPress(tea.KeyTab))
	model = send(t, model, keyPress(tea.KeyDown))
	model = send(t, model, keyPress(tea.KeyEnter))
	if model.focus != focusBuses {
		t.Errorf("focus = %v, want buses", model.focus)
	}
	if model.view.Stage != session.StageBusReady {
		t.Fatalf("stage after route = %v", model.view.Stage)
	}
	if model.cursors[focusRoutes] != 1 {
		t.Errorf("route cursor = %d, want 1", model.cursors[focusRoutes])
	}

	model = send(t, model, keyPress(tea.KeyDown))
	model = send(t, model, keyPress(tea.KeyEnter))
	if !model.view.EtaEnabled || model.view.Buses.Selected != "ABC-123" {
		t.Fatalf("bus selection = %+v eta=%v", model.view.Buses, model.view.EtaEnabled)
	}

	model = send(t, model, keyPress(tea.KeyCtrlE))
	if model.view.Stage != session.StageEtaReady {
		t.Fatalf("stage after eta = %v", model.view.Stage)
	}
	if model.loading() {
		t.Error("still loading after eta")
	}

	screen := model.View()
	for _, want := range []string{"公車 ABC-123 (307 - 去程)", "停靠站 3: 仁愛路口 - 進站中", "GPS時間: 2024-05-01T08:00:00+08:00"} {
		if !strings.Contains(screen, want) {
			t.Errorf("screen missing %q:\n%s", want, screen)
		}
	}
}

func TestEnterOnBlankKeywordDoesNothing(t *testing.T) {
	model := newTestModel(t)

	model = typeText(t, model, "  ")
	updated, cmd := model.Update(keyPress(tea.KeyEnter))
	model = updated.(Model)

	if cmd != nil {
		t.Error("enter with a blank keyword should not start a search")
	}
	if model.view.Message != nil {
		t.Errorf("message = %+v, want none", model.view.Message)
	}
	if model.view.Stage != session.StageIdle {
		t.Errorf("stage = %v, want idle", model.view.Stage)
	}
}

func TestBackspaceEditsKeyword(t *testing.T) {
	model := newTestModel(t)

	model = typeText(t, model, "3077")
	model = send(t, model, keyPress(tea.KeyBackspace))
	if got := string(model.keyword); got != "307" {
		t.Errorf("keyword = %q, want 307", got)
	}
	if model.view.Keyword != "307" {
		t.Errorf("controller keyword = %q, want 307", model.view.Keyword)
	}
}

func TestLettersDoNotMoveListsWhileTyping(t *testing.T) {
	model := newTestModel(t)
	model = typeText(t, model, "307")
	model = send(t, model, keyPress(tea.KeyEnter))

	model = send(t, model, keyPress(tea.KeyTab))
	model = typeText(t, model, "jk")
	if model.cursors[focusRoutes] != 0 {
		t.Errorf("route cursor moved to %d", model.cursors[focusRoutes])
	}
	if got := string(model.keyword); got != "307" {
		t.Errorf("keyword changed to %q while routes focused", got)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	model := newTestModel(t)
	model = typeText(t, model, "307")
	model = send(t, model, keyPress(tea.KeyEnter))
	model = send(t, model, keyPress(tea.KeyTab))

	for i := 0; i < 5; i++ {
		model = send(t, model, keyPress(tea.KeyDown))
	}
	if model.cursors[focusRoutes] != 2 {
		t.Errorf("cursor = %d, want 2", model.cursors[focusRoutes])
	}
	for i := 0; i < 5; i++ {
		model = send(t, model, keyPress(tea.KeyUp))
	}
	if model.cursors[focusRoutes] != 0 {
		t.Errorf("cursor = %d, want 0", model.cursors[focusRoutes])
	}
}

func TestDisabledListIgnoresInput(t *testing.T) {
	model := newTestModel(t)

	model = send(t, model, keyPress(tea.KeyTab))
	model = send(t, model, keyPress(tea.KeyDown))
	updated, cmd := model.Update(keyPress(tea.KeyEnter))
	model = updated.(Model)
	if cmd != nil {
		t.Error("enter on a disabled route list should not start a call")
	}
	if model.cursors[focusRoutes] != 0 {
		t.Errorf("cursor = %d on disabled list", model.cursors[focusRoutes])
	}
}

func TestEtaWithoutRouteShowsError(t *testing.T) {
	model := newTestModel(t)

	model = send(t, model, keyPress(tea.KeyCtrlE))
	if model.view.Message == nil || model.view.Message.Text != session.TextEtaNoRoute {
		t.Fatalf("message = %+v", model.view.Message)
	}
	if !strings.Contains(model.View(), session.TextEtaNoRoute) {
		t.Error("error not rendered")
	}
}

func TestFocusCyclesBothWays(t *testing.T) {
	model := newTestModel(t)

	model = send(t, model, keyPress(tea.KeyShiftTab))
	if model.focus != focusBuses {
		t.Errorf("focus = %v, want buses", model.focus)
	}
	model = send(t, model, keyPress(tea.KeyTab))
	if model.focus != focusKeyword {
		t.Errorf("focus = %v, want keyword", model.focus)
	}
}

func TestQuitClosesController(t *testing.T) {
	model := newTestModel(t)

	_, cmd := model.Update(keyPress(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestSpinnerTracksCallsInFlight(t *testing.T) {
	model := newTestModel(t)
	model = typeText(t, model, "307")

	updated, first := model.Update(keyPress(tea.KeyEnter))
	model = updated.(Model)
	updated, second := model.Update(keyPress(tea.KeyEnter))
	model = updated.(Model)
	if model.inFlight != 2 || !model.loading() {
		t.Fatalf("inFlight = %d", model.inFlight)
	}

	updated, _ = model.Update(first())
	model = updated.(Model)
	if !model.loading() {
		t.Error("spinner hidden while a call is still in flight")
	}
	updated, _ = model.Update(second())
	model = updated.(Model)
	if model.loading() {
		t.Error("spinner still shown after all calls returned")
	}
}
