package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"tarediiran-industries.com/bus-eta-services/internal/api"
)

// Backend is the remote bus API as the controller needs it. *api.Client
// satisfies it.
type Backend interface {
	SearchRoutes(ctx context.Context, keyword string) (*api.RoutesResponse, error)
	BusesForRoute(ctx context.Context, route api.Route) (*api.BusesResponse, error)
	BusInfo(ctx context.Context, plate, routeName string, direction int) (*api.BusInfoResponse, error)
}

// Controller owns the view state of one user session.
//
// View state is only touched under mu; remote calls run unlocked. Every call
// gets a generation and a cancellable context. Starting a new call cancels
// the previous one, and a result whose generation is no longer current is
// dropped.
type Controller struct {
	backend Backend
	logger  *slog.Logger

	mu         sync.Mutex
	view       View
	routes     map[string]api.Route
	generation uint64
	cancel     context.CancelFunc
	lastErr    error
}

func NewController(backend Backend, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		backend: backend,
		logger:  logger,
		view:    initialView(),
		routes:  map[string]api.Route{},
	}
}

// View returns a copy of the current screen.
func (controller *Controller) View() View {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.view.clone()
}

// LastError is the failure of the most recent completed operation, nil when
// it succeeded.
func (controller *Controller) LastError() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.lastErr
}

// SelectedRoute returns the route behind the chosen route option.
func (controller *Controller) SelectedRoute() (api.Route, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.selectedRouteLocked()
}

// RouteFor resolves a route option of the current search.
func (controller *Controller) RouteFor(optionID string) (api.Route, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	route, ok := controller.routes[optionID]
	return route, ok
}

// SetKeyword updates the keyword box without searching.
func (controller *Controller) SetKeyword(keyword string) View {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.view.Keyword = keyword
	return controller.view.clone()
}

// Close cancels whatever is in flight. Its result will be discarded.
func (controller *Controller) Close() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.abortLocked()
	controller.view.Loading = false
}

// Search runs the route search for keyword.
func (controller *Controller) Search(ctx context.Context, keyword string) View {
	controller.mu.Lock()
	controller.view.Keyword = keyword
	controller.view.Message = nil

	trimmed := normalizeKeyword(keyword)
	if trimmed == "" {
		controller.view.Message = &Message{Kind: MessageInfo, Text: TextEnterKeyword}
		controller.lastErr = &ValidationError{Message: TextEnterKeyword}
		defer controller.mu.Unlock()
		return controller.view.clone()
	}

	opCtx, generation := controller.beginLocked(ctx)
	controller.enterRouteSearching()
	controller.mu.Unlock()

	response, err := controller.backend.SearchRoutes(opCtx, trimmed)

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.finishLocked(generation) {
		controller.logger.Debug("dropping superseded route search", "keyword", trimmed, "generation", generation)
		return controller.view.clone()
	}
	controller.lastErr = err

	if err != nil {
		controller.logger.Info("route search failed", "keyword", trimmed, "kind", api.Kind(err), "error", err)
		controller.view.Message = &Message{Kind: MessageError, Text: TextRoutesErrorPrefix + Describe(err, TextRoutesHTTP)}
		controller.view.Routes = Select{Placeholder: PlaceholderRoutesFailed, Disabled: true}
		controller.fail(StageRouteSearching)
		return controller.view.clone()
	}

	if len(response.Routes) == 0 {
		text := response.Message
		if text == "" {
			text = fmt.Sprintf(TextNoRoutesFormat, trimmed)
		}
		controller.view.Message = &Message{Kind: MessageInfo, Text: text}
		controller.view.Routes = Select{Placeholder: PlaceholderNoRoutes, Disabled: true}
		controller.view.Stage = StageRouteReady
		return controller.view.clone()
	}

	options := make([]Option, 0, len(response.Routes))
	for index, route := range response.Routes {
		id := fmt.Sprintf("%d.%d", generation, index)
		controller.routes[id] = route
		options = append(options, Option{Value: id, Label: route.DisplayName})
	}
	controller.view.Routes = Select{Placeholder: PlaceholderChooseRoute, Options: options}
	controller.view.Stage = StageRouteReady
	controller.logger.Debug("routes loaded", "keyword", trimmed, "count", len(options))
	return controller.view.clone()
}

// SelectRoute reacts to a change of the route control. The empty id means
// the placeholder was chosen. A disabled route control ignores changes.
func (controller *Controller) SelectRoute(ctx context.Context, optionID string) View {
	controller.mu.Lock()
	if controller.view.Routes.Disabled {
		defer controller.mu.Unlock()
		return controller.view.clone()
	}
	controller.leaveRoute()

	if optionID == "" {
		controller.abortLocked()
		controller.view.Loading = false
		controller.view.Routes.Selected = ""
		controller.resetBuses()
		controller.view.Stage = StageRouteReady
		controller.lastErr = nil
		defer controller.mu.Unlock()
		return controller.view.clone()
	}

	route, ok := controller.routes[optionID]
	if !ok {
		controller.abortLocked()
		controller.view.Loading = false
		controller.view.Routes.Selected = ""
		controller.view.Message = &Message{Kind: MessageError, Text: TextRouteFormatError}
		controller.resetBuses()
		controller.lastErr = &ValidationError{Message: TextRouteFormatError}
		controller.fail(StageBusLoading)
		defer controller.mu.Unlock()
		return controller.view.clone()
	}

	controller.view.Routes.Selected = optionID
	opCtx, generation := controller.beginLocked(ctx)
	controller.enterBusLoading()
	controller.mu.Unlock()

	response, err := controller.backend.BusesForRoute(opCtx, route)

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.finishLocked(generation) {
		controller.logger.Debug("dropping superseded bus list", "route", route.DisplayName, "generation", generation)
		return controller.view.clone()
	}
	controller.lastErr = err

	if err != nil {
		controller.logger.Info("bus list failed", "route", route.DisplayName, "kind", api.Kind(err), "error", err)
		controller.view.Message = &Message{Kind: MessageError, Text: TextBusesErrorPrefix + Describe(err, TextBusesHTTP)}
		controller.view.Buses = Select{Placeholder: PlaceholderBusesFailed, Disabled: true}
		controller.fail(StageBusLoading)
		return controller.view.clone()
	}

	if response.NoBusesAvailable || len(response.Buses) == 0 {
		text := response.Message
		if text == "" {
			text = TextNoBuses
		}
		controller.view.Message = &Message{Kind: MessageInfo, Text: text}
		controller.view.Buses = Select{Placeholder: PlaceholderNoBuses, Disabled: true}
		controller.view.Stage = StageBusReady
		return controller.view.clone()
	}

	options := make([]Option, 0, len(response.Buses))
	for _, bus := range response.Buses {
		options = append(options, Option{Value: bus.PlateNumb, Label: BusLabel(bus)})
	}
	controller.view.Buses = Select{Placeholder: PlaceholderChooseBus, Options: options}
	controller.view.Stage = StageBusReady
	controller.logger.Debug("buses loaded", "route", route.DisplayName, "count", len(options))
	return controller.view.clone()
}

// SelectBus reacts to a change of the bus control. Plates that are not on
// offer are ignored.
func (controller *Controller) SelectBus(plate string) View {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	buses := controller.view.Buses
	if buses.Disabled || (plate != "" && !buses.HasOption(plate)) {
		return controller.view.clone()
	}

	if controller.view.Stage == StageEtaLoading {
		controller.abortLocked()
		controller.view.Loading = false
	}

	controller.view.Buses.Selected = plate
	controller.view.Results = nil
	controller.view.EtaEnabled = controller.view.Routes.Selected != "" && plate != ""
	if plate == "" {
		controller.view.Stage = StageBusReady
	} else {
		controller.view.Stage = StageEtaPending
	}
	return controller.view.clone()
}

// RequestETA fetches arrival times for the chosen bus on the chosen route.
func (controller *Controller) RequestETA(ctx context.Context) View {
	controller.mu.Lock()
	controller.view.Message = nil
	controller.view.Results = nil

	route, ok := controller.selectedRouteLocked()
	var invalid string
	switch {
	case !ok:
		invalid = TextEtaNoRoute
	case route.TdxRouteNameKeyword == "" || !route.HasDirection():
		invalid = TextEtaIncompleteRoute
	case controller.view.Buses.Selected == "":
		invalid = TextEtaNoBus
	}
	if invalid != "" {
		controller.view.Message = &Message{Kind: MessageError, Text: invalid}
		controller.lastErr = &ValidationError{Message: invalid}
		defer controller.mu.Unlock()
		return controller.view.clone()
	}

	plate := controller.view.Buses.Selected
	opCtx, generation := controller.beginLocked(ctx)
	controller.view.Stage = StageEtaLoading
	controller.view.Loading = true
	controller.mu.Unlock()

	response, err := controller.backend.BusInfo(opCtx, plate, route.TdxRouteNameKeyword, *route.Direction)

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.finishLocked(generation) {
		controller.logger.Debug("dropping superseded eta", "plate", plate, "generation", generation)
		return controller.view.clone()
	}
	controller.lastErr = err

	if err != nil {
		controller.logger.Info("eta failed", "plate", plate, "kind", api.Kind(err), "error", err)
		controller.view.Message, controller.view.Results = PresentEtaFailure(err, response)
		controller.fail(StageEtaLoading)
		return controller.view.clone()
	}

	controller.view.Results = PresentBusInfo(response)
	controller.view.Stage = StageEtaReady
	return controller.view.clone()
}

func (controller *Controller) selectedRouteLocked() (api.Route, bool) {
	id := controller.view.Routes.Selected
	if id == "" {
		return api.Route{}, false
	}
	route, ok := controller.routes[id]
	return route, ok
}

func (controller *Controller) beginLocked(parent context.Context) (context.Context, uint64) {
	controller.abortLocked()
	ctx, cancel := context.WithCancel(parent)
	controller.cancel = cancel
	return ctx, controller.generation
}

// finishLocked reports whether generation is still the current operation and
// releases its context. The loading flag belongs to the current operation.
func (controller *Controller) finishLocked(generation uint64) bool {
	if generation != controller.generation {
		return false
	}
	if controller.cancel != nil {
		controller.cancel()
		controller.cancel = nil
	}
	controller.view.Loading = false
	return true
}

func (controller *Controller) abortLocked() {
	if controller.cancel != nil {
		controller.cancel()
		controller.cancel = nil
	}
	controller.generation++
}

func (controller *Controller) fail(stage Stage) {
	controller.view.Stage = StageFailed
	controller.view.FailedStage = stage
}

// Transition handlers. Each one resets everything downstream of its stage.

func (controller *Controller) enterRouteSearching() {
	controller.routes = map[string]api.Route{}
	controller.view.Stage = StageRouteSearching
	controller.view.Loading = true
	controller.view.Routes = Select{Placeholder: PlaceholderLoading, Disabled: true}
	controller.resetBuses()
}

func (controller *Controller) enterBusLoading() {
	controller.view.Stage = StageBusLoading
	controller.view.Loading = true
	controller.view.Message = nil
	controller.view.Buses = Select{Placeholder: PlaceholderLoading, Disabled: true}
}

// leaveRoute runs on any change of the route control.
func (controller *Controller) leaveRoute() {
	controller.view.Results = nil
	controller.view.EtaEnabled = false
}

func (controller *Controller) resetBuses() {
	controller.view.Buses = Select{Placeholder: PlaceholderRouteFirst, Disabled: true}
	controller.view.EtaEnabled = false
	controller.view.Results = nil
}
