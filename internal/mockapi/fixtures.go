package mockapi

import (
	"tarediiran-industries.com/bus-eta-services/internal/api"
)

// Fixtures is the canned data behind the mock API.
type Fixtures struct {
	// Routes by search keyword.
	Routes map[string][]api.Route
	// Buses currently running, matched against route and direction.
	Buses []api.Bus
	// BusInfo by plate.
	BusInfo map[string]api.BusInfoResponse
	// Plates is the static plate list served as /plates.json.
	Plates []map[string]any
}

func intPtr(v int) *int { return &v }

// DefaultFixtures is route 307 in both directions with a single bus
// running outbound.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Routes: map[string][]api.Route{
			"307": {
				{TdxRouteNameKeyword: "307", RouteUID: "TPE16111", SubRouteUID: "TPE157462", Direction: intPtr(0), DisplayName: "307 (去程)"},
				{TdxRouteNameKeyword: "307", RouteUID: "TPE16111", SubRouteUID: "TPE157462", Direction: intPtr(1), DisplayName: "307 (返程)"},
			},
		},
		Buses: []api.Bus{
			{PlateNumb: "ABC-123", CurrentStopDisplay: "捷運西門站", RouteUID: "TPE16111", SubRouteUID: "TPE157462", Direction: intPtr(0)},
		},
		BusInfo: map[string]api.BusInfoResponse{
			"ABC-123": {
				BusDetails: &api.BusDetails{
					PlateNumb:           "ABC-123",
					RouteName:           "307",
					Direction:           "去程",
					CurrentStopName:     "捷運西門站",
					CurrentStopSequence: "2",
					GPSTime:             "2024-05-01T08:00:00+08:00",
				},
				UpcomingStops: []api.UpcomingStop{
					{StopSequence: "3", StopName: "仁愛路口", ArrivalStatus: "進站中"},
				},
			},
		},
		Plates: []map[string]any{
			{"PlateNumb": "ABC-123", "RouteName": map[string]string{"Zh_tw": "307"}},
			{"PlateNumb": "-1"},
			{"RouteName": map[string]string{"Zh_tw": "307"}},
			{"PlateNumb": "EAL-0031"},
		},
	}
}

func (fixtures Fixtures) busesFor(direction int, routeUID, subRouteUID string) []api.Bus {
	out := make([]api.Bus, 0, len(fixtures.Buses))
	for _, bus := range fixtures.Buses {
		if bus.Direction == nil || *bus.Direction != direction {
			continue
		}

		matches := true
		switch {
		case subRouteUID != "" && subRouteUID != routeUID:
			matches = bus.SubRouteUID == subRouteUID
		case routeUID != "":
			matches = bus.RouteUID == routeUID &&
				(bus.SubRouteUID == "" || bus.SubRouteUID == routeUID || bus.SubRouteUID == subRouteUID)
		}
		if matches {
			out = append(out, bus)
		}
	}
	return out
}
