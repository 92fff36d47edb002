package session

import (
	"errors"
	"reflect"
	"testing"

	"tarediiran-industries.com/bus-eta-services/internal/api"
)

func TestPresentDetailsSequenceFallback(t *testing.T) {
	cases := []struct {
		sequence api.FlexString
		want     string
	}{
		{"", "目前位置: 西門 (站序 N/A)"},
		{"0", "目前位置: 西門 (站序 N/A)"},
		{"N/A", "目前位置: 西門 (站序 N/A)"},
		{"7", "目前位置: 西門 (站序 7)"},
	}

	for _, tc := range cases {
		details := PresentDetails(&api.BusDetails{CurrentStopName: "西門", CurrentStopSequence: tc.sequence})
		if details.Position != tc.want {
			t.Errorf("sequence %q: Position = %q, want %q", tc.sequence, details.Position, tc.want)
		}
	}
}

func TestPresentEtaFailure(t *testing.T) {
	partial := &api.BusInfoResponse{BusDetails: &api.BusDetails{PlateNumb: "ABC-123", RouteName: "307", Direction: "去程"}}

	cases := []struct {
		name        string
		err         error
		response    *api.BusInfoResponse
		wantText    string
		wantResults *Results
	}{
		{
			name:        "application error keeps details",
			err:         &api.ApplicationError{Endpoint: api.EndpointBusInfo, Message: "無法取得站序"},
			response:    partial,
			wantText:    "無法取得站序",
			wantResults: &Results{Details: &DetailsView{Title: "公車 ABC-123 (307 - 去程)", Position: "目前位置:  (站序 N/A)", GPSTime: "GPS時間: N/A"}},
		},
		{
			name:     "application error without details",
			err:      &api.ApplicationError{Endpoint: api.EndpointBusInfo, Message: "查無此車"},
			response: &api.BusInfoResponse{},
			wantText: "查無此車",
		},
		{
			name:     "status error without body",
			err:      &api.StatusError{Endpoint: api.EndpointBusInfo, StatusCode: 502},
			wantText: TextEtaErrorPrefix + TextEtaHTTP + " (HTTP 502)",
		},
		{
			name:     "transport error",
			err:      &api.TransportError{Endpoint: api.EndpointBusInfo, Err: errors.New("dial tcp: refused")},
			response: partial,
			wantText: TextEtaErrorPrefix + (&api.TransportError{Endpoint: api.EndpointBusInfo, Err: errors.New("dial tcp: refused")}).Error(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			message, results := PresentEtaFailure(tc.err, tc.response)
			if message == nil || message.Kind != MessageError || message.Text != tc.wantText {
				t.Errorf("message = %+v, want error %q", message, tc.wantText)
			}
			if !reflect.DeepEqual(results, tc.wantResults) {
				t.Errorf("results = %+v, want %+v", results, tc.wantResults)
			}
		})
	}
}
