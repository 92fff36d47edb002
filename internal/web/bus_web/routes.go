package bus_web

import (
	"bytes"
	"encoding/json"
	"net/http"

	"tarediiran-industries.com/bus-eta-services/internal/plates"
)

func (server *BusWebServer) render(writer http.ResponseWriter, name string, viewmodel any) {
	var buffer bytes.Buffer
	if err := server.renderer.Render(&buffer, name, viewmodel); err != nil {
		server.logger.Error("render failed", "template", name, "error", err)
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.Header().Set("Cache-Control", "no-store")
	buffer.WriteTo(writer)
}

func (server *BusWebServer) handleEtaPage(writer http.ResponseWriter, request *http.Request) {
	controller := server.sessions.Controller(writer, request)
	server.render(writer, "eta.html", BuildEtaPageVM(controller.View()))
}

func (server *BusWebServer) handleEtaPartial(writer http.ResponseWriter, request *http.Request) {
	controller := server.sessions.Controller(writer, request)
	server.render(writer, "eta_results.html", BuildEtaPageVM(controller.View()))
}

func (server *BusWebServer) backToEta(writer http.ResponseWriter, request *http.Request) {
	http.Redirect(writer, request, "/eta", http.StatusSeeOther)
}

func (server *BusWebServer) handleSearch(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	form := ParseSearchForm(request.PostForm)

	controller := server.sessions.Controller(writer, request)
	controller.Search(request.Context(), form.Keyword)
	server.backToEta(writer, request)
}

func (server *BusWebServer) handleSelectRoute(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	form := ParseRouteForm(request.PostForm)

	controller := server.sessions.Controller(writer, request)
	controller.SelectRoute(request.Context(), form.OptionID)
	server.backToEta(writer, request)
}

func (server *BusWebServer) handleSelectBus(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	form := ParseBusForm(request.PostForm)

	controller := server.sessions.Controller(writer, request)
	controller.SelectBus(form.Plate)
	server.backToEta(writer, request)
}

func (server *BusWebServer) handleFetchEta(writer http.ResponseWriter, request *http.Request) {
	controller := server.sessions.Controller(writer, request)
	controller.RequestETA(request.Context())
	server.backToEta(writer, request)
}

func (server *BusWebServer) handlePlatesPage(writer http.ResponseWriter, request *http.Request) {
	var list plates.ListView
	if server.plates == nil {
		list = plates.Present(nil, errNoPlateSource)
	} else {
		list = plates.Present(server.plates.Load(request.Context()))
	}
	server.render(writer, "plates.html", BuildPlatesPageVM(list))
}

func (server *BusWebServer) handleHealth(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Content-Type", "application/json")
	json.NewEncoder(writer).Encode(map[string]string{"status": "ok"})
}
