package plates

import (
	"reflect"
	"testing"
)

func TestFilterKeepsOnlyDefinedNonSentinelPlates(t *testing.T) {
	data := []byte(`[
		{"PlateNumb": "KKA-1234"},
		{"PlateNumb": "-1"},
		{"RouteName": "307"},
		{"PlateNumb": null},
		null,
		42,
		"KKA-0000",
		{"PlateNumb": "EAL-0031", "Speed": 12},
		{"PlateNumb": 5566},
		{"PlateNumb": -1},
		{"PlateNumb": "KKA-1234"}
	]`)

	records, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(records) != 11 {
		t.Fatalf("records = %d, want 11", len(records))
	}

	got := Filter(records)
	want := []string{"KKA-1234", "EAL-0031", "5566", "-1", "KKA-1234"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %q, want %q", got, want)
	}
}

func TestDecodeJSONRejectsNonArray(t *testing.T) {
	for _, input := range []string{`{"PlateNumb":"A"}`, `not json`, ``} {
		if _, err := DecodeJSON([]byte(input)); err == nil {
			t.Errorf("DecodeJSON(%q) succeeded", input)
		}
	}
}

func TestPresent(t *testing.T) {
	if view := Present([]string{}, nil); view.HasPlates() || view.Message != TextNoPlates || view.IsError {
		t.Errorf("empty = %+v", view)
	}
	if view := Present([]string{"A"}, nil); !view.HasPlates() || view.Message != "" {
		t.Errorf("populated = %+v", view)
	}
	view := Present(nil, errTest("boom"))
	if !view.IsError || view.Message != "無法讀取車牌資料: boom" {
		t.Errorf("error = %+v", view)
	}
	if loading := LoadingView(); !loading.Loading || loading.Message != TextLoading {
		t.Errorf("loading = %+v", loading)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
