package models

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cast"
)

// Number is a numeric field the backend may serialize either as a JSON
// number or as a numeric string (values that went through multipart forms
// come back as strings).
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = 0
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if s, ok := raw.(string); ok && s == "" {
		*n = 0
		return nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(n), 'f', -1, 64)), nil
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
