package bus_web

import (
	"net/url"
	"strings"
)

type SearchForm struct {
	Keyword string
}

// ParseSearchForm keeps the keyword as typed; the controller trims it.
func ParseSearchForm(values url.Values) SearchForm {
	return SearchForm{Keyword: values.Get("keyword")}
}

type RouteForm struct {
	OptionID string // "" is the placeholder
}

func ParseRouteForm(values url.Values) RouteForm {
	return RouteForm{OptionID: strings.TrimSpace(values.Get("route"))}
}

type BusForm struct {
	Plate string // "" is the placeholder
}

func ParseBusForm(values url.Values) BusForm {
	return BusForm{Plate: strings.TrimSpace(values.Get("bus"))}
}
