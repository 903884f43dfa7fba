package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pvpk06/quiz-analysis-service/internal/format"
)

// WireTime is a timestamp as the legacy store and wire emit it: usually
// RFC3339, sometimes "YYYY-MM-DD HH:MM:SS", occasionally malformed. Decoding
// never fails the enclosing payload; consumers check Valid (parsed) and Raw
// (recorded at all) instead of assuming shape.
type WireTime struct {
	Time  time.Time
	Valid bool
	Raw   string
}

// NewWireTime wraps an already-typed time.
func NewWireTime(t time.Time) WireTime {
	return WireTime{Time: t, Valid: true, Raw: t.UTC().Format(time.RFC3339)}
}

// Present reports whether any value was recorded, parsable or not.
func (wt WireTime) Present() bool {
	return wt.Valid || wt.Raw != ""
}

func (wt *WireTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*wt = WireTime{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not a string at all; keep the raw bytes so the field still shows
		// as recorded-but-unusable.
		*wt = WireTime{Raw: string(data)}
		return nil
	}

	*wt = WireTime{Raw: raw}
	if t, err := format.ParseTimestamp(raw); err == nil {
		wt.Time = t
		wt.Valid = true
	}
	return nil
}

func (wt WireTime) MarshalJSON() ([]byte, error) {
	if wt.Valid {
		return json.Marshal(wt.Time.UTC().Format(time.RFC3339))
	}
	if wt.Raw != "" {
		return json.Marshal(wt.Raw)
	}
	return []byte("null"), nil
}

// Scan implements sql.Scanner so WireTime maps onto a nullable timestamp
// column.
func (wt *WireTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*wt = WireTime{}
		return nil
	case time.Time:
		*wt = NewWireTime(v)
		return nil
	case string:
		*wt = WireTime{Raw: v}
		if t, err := format.ParseTimestamp(v); err == nil {
			wt.Time = t
			wt.Valid = true
		}
		return nil
	case []byte:
		return wt.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into WireTime", value)
	}
}

// Value implements driver.Valuer; unparsable values persist as NULL.
func (wt WireTime) Value() (driver.Value, error) {
	if !wt.Valid {
		return nil, nil
	}
	return wt.Time, nil
}
