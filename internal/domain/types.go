package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Timestamp is t as storage keeps it: UTC with microsecond precision.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// DateTime is a request date: an RFC 3339 date-time or a bare ISO date
// ("2030-01-01"), which means midnight UTC.
type DateTime time.Time

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DateTime(t)
			return nil
		}
	}
	return fmt.Errorf("%q is not an ISO 8601 date", s)
}

// stored is d in storage precision, nil when d is.
func (d *DateTime) stored() *time.Time {
	if d == nil {
		return nil
	}
	ts := Timestamp(time.Time(*d))
	return &ts
}

// Score rounds to the two decimals the overall_score column holds.
func Score(f float64) float64 {
	return math.Round(f*100) / 100
}

// JSONObject is a free-form JSON object stored in a JSON column.
type JSONObject map[string]any

func (o JSONObject) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *JSONObject) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONObject", src)
	}
	m := JSONObject{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	*o = m
	return nil
}

// FlexInt decodes from a JSON number or a numeric string ("4").
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%q is not an integer", s)
	}
	*n = FlexInt(v)
	return nil
}
