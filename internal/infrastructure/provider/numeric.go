package provider

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// number decodes JSON numbers and numeric strings. Null, empty and unparsable
// values decode to "absent" rather than failing the whole payload.
type number struct {
	decimal.NullDecimal
}

func (n *number) UnmarshalJSON(b []byte) error {
	n.Valid = false
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if s == "" {
			return nil
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	n.Decimal, n.Valid = d, true
	return nil
}

func (n *number) float() *float64 {
	if n == nil || !n.Valid {
		return nil
	}
	f := n.Decimal.InexactFloat64()
	return &f
}

func (n *number) int() *int64 {
	if n == nil || !n.Valid {
		return nil
	}
	v := n.Decimal.IntPart()
	return &v
}

// unixTime reads values above 1e12 as milliseconds and smaller ones as seconds.
func unixTime(v *int64) *time.Time {
	if v == nil || *v <= 0 {
		return nil
	}
	var t time.Time
	if *v > 1e12 {
		t = time.UnixMilli(*v).UTC()
	} else {
		t = time.Unix(*v, 0).UTC()
	}
	return &t
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
