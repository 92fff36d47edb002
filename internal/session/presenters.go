package session

import (
	"errors"
	"fmt"
	"strings"

	"tarediiran-industries.com/bus-eta-services/internal/api"
)

func normalizeKeyword(keyword string) string {
	return strings.TrimSpace(keyword)
}

// BusLabel is the text of one bus option.
func BusLabel(bus api.Bus) string {
	stop := bus.CurrentStopDisplay
	if stop == "" {
		stop = TextUnknownStop
	}
	return fmt.Sprintf("%s (目前位置: %s)", bus.PlateNumb, stop)
}

func PresentDetails(details *api.BusDetails) *DetailsView {
	if details == nil {
		return nil
	}

	// Stop sequence 0 is shown as N/A like a missing one.
	sequence := details.CurrentStopSequence.String()
	if sequence == "" || sequence == "0" {
		sequence = TextNotAvailable
	}
	gpsTime := details.GPSTime
	if gpsTime == "" {
		gpsTime = TextNotAvailable
	}

	return &DetailsView{
		Title:    fmt.Sprintf("公車 %s (%s - %s)", details.PlateNumb, details.RouteName, details.Direction),
		Position: fmt.Sprintf("目前位置: %s (站序 %s)", details.CurrentStopName, sequence),
		GPSTime:  fmt.Sprintf("GPS時間: %s", gpsTime),
	}
}

// StopLines renders upcoming stops in the order given. With no stops the
// server message wins over the generic placeholder; either way exactly one
// line comes back.
func StopLines(response *api.BusInfoResponse) []string {
	if len(response.UpcomingStops) == 0 {
		if response.Message != "" {
			return []string{response.Message}
		}
		return []string{TextNoUpcomingStops}
	}

	lines := make([]string, 0, len(response.UpcomingStops))
	for _, stop := range response.UpcomingStops {
		lines = append(lines, fmt.Sprintf("停靠站 %s: %s - %s", stop.StopSequence, stop.StopName, stop.ArrivalStatus))
	}
	return lines
}

// PresentBusInfo builds the ETA panel for a successful bus_info call.
func PresentBusInfo(response *api.BusInfoResponse) *Results {
	return &Results{
		Details: PresentDetails(response.BusDetails),
		Lines:   StopLines(response),
	}
}

// PresentEtaFailure is the message and results shown for a failed bus info
// call. An application error keeps the partial details when the body had
// any; other failures show no results.
func PresentEtaFailure(err error, response *api.BusInfoResponse) (*Message, *Results) {
	if api.IsApplication(err) {
		var results *Results
		if response != nil && response.BusDetails != nil {
			results = &Results{Details: PresentDetails(response.BusDetails)}
		}
		return &Message{Kind: MessageError, Text: err.Error()}, results
	}
	return &Message{Kind: MessageError, Text: TextEtaErrorPrefix + Describe(err, TextEtaHTTP)}, nil
}

// Describe turns a failed call into panel text. A status error whose body
// had no "error" falls back to generic plus the status code.
func Describe(err error, generic string) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return fmt.Sprintf("%s (HTTP %d)", generic, statusErr.StatusCode)
	}
	return err.Error()
}
