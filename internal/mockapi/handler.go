package mockapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tarediiran-industries.com/bus-eta-services/internal/api"
)

// Handler serves the remote bus API over fixtures, with the same parameter
// validation and the same JSON envelopes as the real service.
type Handler struct {
	fixtures Fixtures
	logger   *slog.Logger
	router   chi.Router
}

func NewHandler(fixtures Fixtures, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	handler := &Handler{
		fixtures: fixtures,
		logger:   logger,
		router:   chi.NewRouter(),
	}

	handler.router.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, map[string]string{"status": "mock"})
	})
	handler.router.Get("/api/routes", handler.handleRoutes)
	handler.router.Get("/api/buses_for_route", handler.handleBusesForRoute)
	handler.router.Get("/api/bus_info/{plate}", handler.handleBusInfo)
	handler.router.Get("/plates.json", handler.handlePlates)

	return handler
}

func (handler *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	handler.router.ServeHTTP(writer, request)
}

func writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}

func writeError(writer http.ResponseWriter, status int, message string) {
	writeJSON(writer, status, map[string]string{"error": message})
}

func (handler *Handler) handleRoutes(writer http.ResponseWriter, request *http.Request) {
	keyword := request.URL.Query().Get("keyword")
	if keyword == "" {
		writeError(writer, http.StatusBadRequest, "缺少 'keyword' (路線關鍵字) 參數")
		return
	}

	routes, ok := handler.fixtures.Routes[keyword]
	if !ok || len(routes) == 0 {
		writeJSON(writer, http.StatusOK, api.RoutesResponse{
			Routes:  []api.Route{},
			Message: fmt.Sprintf("TDX 資料中找不到路線 '%s' 的班次資訊。", keyword),
		})
		return
	}

	handler.logger.Debug("mock routes", "keyword", keyword, "count", len(routes))
	writeJSON(writer, http.StatusOK, api.RoutesResponse{Routes: routes})
}

func (handler *Handler) handleBusesForRoute(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	if !query.Has("direction") {
		writeError(writer, http.StatusBadRequest, "缺少 'direction' 參數")
		return
	}
	direction, err := strconv.Atoi(query.Get("direction"))
	if err != nil {
		writeError(writer, http.StatusBadRequest, "'direction' 參數必須是整數。")
		return
	}
	if query.Get("tdx_route_name_keyword") == "" {
		writeError(writer, http.StatusBadRequest, "缺少 'tdx_route_name_keyword' 參數")
		return
	}

	buses := handler.fixtures.busesFor(direction, query.Get("route_uid"), query.Get("sub_route_uid"))
	if len(buses) == 0 {
		name := query.Get("display_name")
		if name == "" {
			name = query.Get("tdx_route_name_keyword")
		}
		writeJSON(writer, http.StatusOK, api.BusesResponse{
			Buses:            []api.Bus{},
			NoBusesAvailable: true,
			Message:          fmt.Sprintf("路線 '%s' 目前沒有符合條件的公車在線上 (TDX)。", name),
		})
		return
	}

	writeJSON(writer, http.StatusOK, api.BusesResponse{Buses: buses})
}

func (handler *Handler) handleBusInfo(writer http.ResponseWriter, request *http.Request) {
	plate := chi.URLParam(request, "plate")
	query := request.URL.Query()

	if plate == "" {
		writeError(writer, http.StatusBadRequest, "車牌號碼不可為空。")
		return
	}
	if query.Get("route_name") == "" {
		writeError(writer, http.StatusBadRequest, "缺少 'route_name' 參數以查詢公車資訊。")
		return
	}
	if !query.Has("direction") {
		writeError(writer, http.StatusBadRequest, "缺少 'direction' 參數以查詢公車資訊。")
		return
	}
	if _, err := strconv.Atoi(query.Get("direction")); err != nil {
		writeError(writer, http.StatusBadRequest, "'direction' 參數必須是整數。")
		return
	}

	info, ok := handler.fixtures.BusInfo[plate]
	if !ok {
		writeJSON(writer, http.StatusOK, api.BusInfoResponse{
			UpcomingStops: []api.UpcomingStop{},
			Error:         fmt.Sprintf("TDX 資料中找不到車牌為 %s 的公車即時資訊。", plate),
		})
		return
	}

	writeJSON(writer, http.StatusOK, info)
}

func (handler *Handler) handlePlates(writer http.ResponseWriter, request *http.Request) {
	writeJSON(writer, http.StatusOK, handler.fixtures.Plates)
}
