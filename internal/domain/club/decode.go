package club

import (
	"tennis-space/backend/internal/domain/apperr"
)

// decodeClub finishes decoding a stored club. raw is the untyped document as
// read from the store and c is the same document already decoded into the
// typed struct. Absent sections get the documented defaults, which the typed
// decoder cannot tell apart from zero values; an unknown court surface fails
// the decode instead of being passed through.
func decodeClub(id string, raw map[string]any, c TennisClub) (TennisClub, error) {
	c.ID = id
	if _, ok := raw["bookingSettings"]; !ok {
		c.BookingSettings = DefaultBookingSettings()
	}
	if _, ok := raw["operatingHours"]; !ok {
		c.OperatingHours = DefaultOperatingHours()
	}
	if c.Courts == nil {
		c.Courts = []Court{}
	}
	if c.AdminIDs == nil {
		c.AdminIDs = []string{}
	}

	rawCourts, _ := raw["courts"].([]any)
	for i := range c.Courts {
		if i < len(rawCourts) {
			if m, ok := rawCourts[i].(map[string]any); ok {
				if _, has := m["isActive"]; !has {
					c.Courts[i].IsActive = true
				}
			}
		}
		if !c.Courts[i].Surface.Valid() {
			return TennisClub{}, apperr.Newf(apperr.ErrDecode, "clubs/%s: court %q has unknown surface %q",
				id, c.Courts[i].ID, c.Courts[i].Surface)
		}
	}
	return c, nil
}
