package api

import "strconv"

// Route is one route/direction variant returned by a keyword search. It is
// everything the later stages need to ask for buses and arrival times.
type Route struct {
	TdxRouteNameKeyword string `json:"tdx_route_name_keyword"`
	SubRouteUID         string `json:"sub_route_uid"`
	RouteUID            string `json:"route_uid"`
	Direction           *int   `json:"direction"`
	DisplayName         string `json:"display_name"`
}

// HasDirection reports whether the route carries a direction. Zero is a
// valid direction (outbound), so this is a presence check.
func (route Route) HasDirection() bool {
	return route.Direction != nil
}

// DirectionParam renders the direction as a query value; absent is "".
func (route Route) DirectionParam() string {
	if route.Direction == nil {
		return ""
	}
	return strconv.Itoa(*route.Direction)
}

type RoutesResponse struct {
	Routes  []Route `json:"routes"`
	Message string  `json:"message,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type Bus struct {
	PlateNumb          string `json:"plate_numb"`
	CurrentStopDisplay string `json:"current_stop_display"`
	SubRouteUID        string `json:"sub_route_uid,omitempty"`
	RouteUID           string `json:"route_uid,omitempty"`
	Direction          *int   `json:"direction,omitempty"`
}

type BusesResponse struct {
	Buses            []Bus  `json:"buses"`
	NoBusesAvailable bool   `json:"no_buses_available,omitempty"`
	Message          string `json:"message,omitempty"`
	Error            string `json:"error,omitempty"`
}

// BusDetails is the live position of one bus as reported by bus_info.
type BusDetails struct {
	PlateNumb           string     `json:"plate_numb"`
	RouteName           string     `json:"route_name"`
	Direction           FlexString `json:"direction"`
	CurrentStopName     string     `json:"current_stop_name"`
	CurrentStopSequence FlexString `json:"current_stop_sequence"`
	GPSTime             string     `json:"gps_time"`
}

type UpcomingStop struct {
	StopSequence  FlexString `json:"stop_sequence"`
	StopName      string     `json:"stop_name"`
	ArrivalStatus string     `json:"arrival_status"`
}

type BusInfoResponse struct {
	BusDetails    *BusDetails    `json:"bus_details"`
	UpcomingStops []UpcomingStop `json:"upcoming_stops"`
	Message       string         `json:"message,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// errorCarrier is implemented by every response envelope; the remote API
// may put an "error" field on any of them.
type errorCarrier interface {
	errorMessage() string
}

func (response *RoutesResponse) errorMessage() string  { return response.Error }
func (response *BusesResponse) errorMessage() string   { return response.Error }
func (response *BusInfoResponse) errorMessage() string { return response.Error }
