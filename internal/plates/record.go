package plates

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SentinelPlate marks a record with no real plate.
const SentinelPlate = "-1"

// Record is one entry of the static bus list. Only the plate is consulted.
// A nil PlateNumb means the field was absent or null. Numeric marks a plate
// that was a JSON number; only the string "-1" is the sentinel.
type Record struct {
	PlateNumb *string
	Numeric   bool
}

func (record *Record) Valid() bool {
	if record == nil || record.PlateNumb == nil {
		return false
	}
	return record.Numeric || *record.PlateNumb != SentinelPlate
}

// DecodeJSON reads a JSON array of bus records. Elements that are not
// objects come back as nil records so that Filter drops them.
func DecodeJSON(data []byte) ([]*Record, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("decode plate list: %w", err)
	}

	records := make([]*Record, 0, len(elements))
	for _, element := range elements {
		records = append(records, decodeRecord(element))
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage) *Record {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}

	value, ok := fields["PlateNumb"]
	if !ok {
		return &Record{}
	}

	var plate interface{}
	if err := json.Unmarshal(value, &plate); err != nil {
		return &Record{}
	}

	var text string
	numeric := false
	switch v := plate.(type) {
	case nil:
		return &Record{}
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
		numeric = true
	default:
		text = strings.TrimSpace(string(value))
	}
	return &Record{PlateNumb: &text, Numeric: numeric}
}

// Filter returns the displayable plates in source order. Duplicates stay.
func Filter(records []*Record) []string {
	plates := make([]string, 0, len(records))
	for _, record := range records {
		if record.Valid() {
			plates = append(plates, *record.PlateNumb)
		}
	}
	return plates
}
