// Package timezone converts between a user's local wall-clock time and the
// UTC instants stored for tasks.
package timezone

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	apperrors "task-manager-api.com/task-manager-api/internal/errors"
)

// Layouts accepted for local date/time input, tried in order.
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

var locations sync.Map

// Load resolves an IANA zone name. The empty name is rejected rather than
// silently falling back to UTC.
func Load(zoneID string) (*time.Location, error) {
	zoneID = strings.TrimSpace(zoneID)
	if zoneID == "" {
		return nil, fmt.Errorf("%w: empty zone", apperrors.ErrInvalidTimezone)
	}
	if loc, ok := locations.Load(zoneID); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(zoneID)
	if err != nil || strings.EqualFold(zoneID, "local") {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimezone, zoneID)
	}

	locations.Store(zoneID, loc)
	return loc, nil
}

func Validate(zoneID string) error {
	_, err := Load(zoneID)
	return err
}

// ToUTC interprets local as wall-clock time in zoneID and returns the
// matching UTC instant. Input carrying an explicit offset (RFC 3339) keeps
// that offset.
func ToUTC(local, zoneID string) (time.Time, error) {
	loc, err := Load(zoneID)
	if err != nil {
		return time.Time{}, err
	}

	local = strings.TrimSpace(local)
	if local == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", apperrors.ErrInvalidDateTime)
	}

	if t, err := time.Parse(time.RFC3339Nano, local); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, local, loc); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDateTime, local)
}

func ToLocal(utc time.Time, zoneID string) (time.Time, error) {
	loc, err := Load(zoneID)
	if err != nil {
		return time.Time{}, err
	}
	return utc.In(loc), nil
}

// ToLocalPtr is ToLocal for optional timestamps.
func ToLocalPtr(utc *time.Time, zoneID string) (*time.Time, error) {
	if utc == nil {
		return nil, nil
	}
	t, err := ToLocal(*utc, zoneID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
