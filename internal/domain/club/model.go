package club

import (
	"fmt"
	"slices"

	"tennis-space/backend/internal/domain/apperr"
	"tennis-space/backend/internal/utils"
)

type Surface string

const (
	SurfaceClay       Surface = "CLAY"
	SurfaceHard       Surface = "HARD"
	SurfaceGrass      Surface = "GRASS"
	SurfaceArtificial Surface = "ARTIFICIAL"
)

func (s Surface) Valid() bool {
	switch s {
	case SurfaceClay, SurfaceHard, SurfaceGrass, SurfaceArtificial:
		return true
	}
	return false
}

type TennisClub struct {
	ID              string          `firestore:"-" json:"id"`
	Name            string          `firestore:"name" json:"name"`
	Address         string          `firestore:"address" json:"address"`
	Description     string          `firestore:"description" json:"description"`
	ImageURL        *string         `firestore:"imageUrl" json:"imageUrl,omitempty"`
	BookingSettings BookingSettings `firestore:"bookingSettings" json:"bookingSettings"`
	OperatingHours  OperatingHours  `firestore:"operatingHours" json:"operatingHours"`
	Courts          []Court         `firestore:"courts" json:"courts"`
	AdminIDs        []string        `firestore:"adminIds" json:"adminIds"`
}

type BookingSettings struct {
	MaxAdvanceBookingDays     int  `firestore:"maxAdvanceBookingDays" json:"maxAdvanceBookingDays"`
	MaxHoursPerUserPerDay     int  `firestore:"maxHoursPerUserPerDay" json:"maxHoursPerUserPerDay"`
	AllowCancellation         bool `firestore:"allowCancellation" json:"allowCancellation"`
	CancellationDeadlineHours int  `firestore:"cancellationDeadlineHours" json:"cancellationDeadlineHours"`
}

// OperatingHours uses "HH:mm" clock times; DaysOfWeek is 1=Monday .. 7=Sunday.
type OperatingHours struct {
	OpenTime   string `firestore:"openTime" json:"openTime"`
	CloseTime  string `firestore:"closeTime" json:"closeTime"`
	DaysOfWeek []int  `firestore:"daysOfWeek" json:"daysOfWeek"`
}

type Court struct {
	ID             string   `firestore:"id" json:"id"`
	Name           string   `firestore:"name" json:"name"`
	Surface        Surface  `firestore:"surface" json:"surface"`
	HasFloodlights bool     `firestore:"hasFloodlights" json:"hasFloodlights"`
	IsIndoor       bool     `firestore:"isIndoor" json:"isIndoor"`
	PricePerHour   *float64 `firestore:"pricePerHour" json:"pricePerHour,omitempty"` // nil = free for members
	IsActive       bool     `firestore:"isActive" json:"isActive"`
}

func DefaultBookingSettings() BookingSettings {
	return BookingSettings{
		MaxAdvanceBookingDays:     7,
		MaxHoursPerUserPerDay:     2,
		AllowCancellation:         true,
		CancellationDeadlineHours: 2,
	}
}

func DefaultOperatingHours() OperatingHours {
	return OperatingHours{
		OpenTime:   "08:00",
		CloseTime:  "22:00",
		DaysOfWeek: []int{1, 2, 3, 4, 5, 6, 7},
	}
}

// New returns a club with the default booking settings and opening hours.
func New(name, address, description string, courts ...Court) TennisClub {
	return TennisClub{
		Name:            name,
		Address:         address,
		Description:     description,
		BookingSettings: DefaultBookingSettings(),
		OperatingHours:  DefaultOperatingHours(),
		Courts:          courts,
		AdminIDs:        []string{},
	}
}

func (c TennisClub) Court(courtID string) (Court, bool) {
	for _, ct := range c.Courts {
		if ct.ID == courtID {
			return ct, true
		}
	}
	return Court{}, false
}

// ActiveCourts lists the courts that can be booked.
func (c TennisClub) ActiveCourts() []Court {
	out := []Court{}
	for _, ct := range c.Courts {
		if ct.IsActive {
			out = append(out, ct)
		}
	}
	return out
}

func (c TennisClub) IsAdmin(uid string) bool {
	return uid != "" && slices.Contains(c.AdminIDs, uid)
}

// OpenOn reports whether the club opens on the ISO weekday (1=Monday).
func (h OperatingHours) OpenOn(isoWeekday int) bool {
	return slices.Contains(h.DaysOfWeek, isoWeekday)
}

// Validate checks the structural invariants of a club: court ids are unique,
// surfaces are known and opening hours are well formed.
func (c TennisClub) Validate() error {
	seen := make(map[string]bool, len(c.Courts))
	for i, ct := range c.Courts {
		if ct.ID == "" {
			return apperr.Newf(apperr.ErrValidation, "court #%d has no id", i+1)
		}
		if seen[ct.ID] {
			return apperr.Newf(apperr.ErrValidation, "court id %q is used more than once", ct.ID)
		}
		seen[ct.ID] = true
		if !ct.Surface.Valid() {
			return apperr.Newf(apperr.ErrValidation, "court %q has unknown surface %q", ct.ID, ct.Surface)
		}
		if ct.PricePerHour != nil && *ct.PricePerHour < 0 {
			return apperr.Newf(apperr.ErrValidation, "court %q has a negative price", ct.ID)
		}
	}
	if err := c.OperatingHours.validate(); err != nil {
		return apperr.Wrap(apperr.ErrValidation, err)
	}
	return nil
}

func (h OperatingHours) validate() error {
	open, err := utils.ParseHHMM(h.OpenTime)
	if err != nil {
		return fmt.Errorf("openTime %q: %w", h.OpenTime, err)
	}
	closing, err := utils.ParseHHMM(h.CloseTime)
	if err != nil {
		return fmt.Errorf("closeTime %q: %w", h.CloseTime, err)
	}
	if open >= closing {
		return fmt.Errorf("openTime %s must be before closeTime %s", h.OpenTime, h.CloseTime)
	}
	for _, d := range h.DaysOfWeek {
		if d < 1 || d > 7 {
			return fmt.Errorf("day of week %d out of range 1-7", d)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (c TennisClub) Clone() TennisClub {
	out := c
	if c.ImageURL != nil {
		v := *c.ImageURL
		out.ImageURL = &v
	}
	out.OperatingHours.DaysOfWeek = slices.Clone(c.OperatingHours.DaysOfWeek)
	out.AdminIDs = slices.Clone(c.AdminIDs)
	out.Courts = slices.Clone(c.Courts)
	for i, ct := range out.Courts {
		if ct.PricePerHour != nil {
			p := *ct.PricePerHour
			ct.PricePerHour = &p
		}
		out.Courts[i] = ct
	}
	return out
}
