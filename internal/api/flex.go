package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexString holds a field the remote API sends either as a number or as a
// string ("N/A"). Null decodes to the empty string.
type FlexString string

func (value *FlexString) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*value = ""
	case string:
		*value = FlexString(v)
	case float64:
		*value = FlexString(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*value = FlexString(strconv.FormatBool(v))
	default:
		return fmt.Errorf("unsupported value for string field: %s", data)
	}
	return nil
}

func (value FlexString) String() string {
	return string(value)
}
