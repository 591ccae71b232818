package club

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennis-space/backend/internal/domain/apperr"
)

func TestCatalog_IsValid(t *testing.T) {
	for _, c := range Catalog() {
		assert.NoError(t, c.Validate(), c.Name)
		assert.NotEmpty(t, c.Courts, c.Name)
	}
}

func TestActiveCourts(t *testing.T) {
	c := sampleClub()
	c.Courts[0].IsActive = false

	active := c.ActiveCourts()
	require.Len(t, active, 1)
	assert.Equal(t, "court2", active[0].ID)

	empty := TennisClub{}
	assert.NotNil(t, empty.ActiveCourts())
}

func TestIsAdmin(t *testing.T) {
	c := sampleClub()
	assert.True(t, c.IsAdmin("admin-1"))
	assert.False(t, c.IsAdmin("someone"))
	assert.False(t, c.IsAdmin(""))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TennisClub)
	}{
		{"unknown surface", func(c *TennisClub) { c.Courts[0].Surface = "CARPET" }},
		{"empty court id", func(c *TennisClub) { c.Courts[0].ID = "" }},
		{"negative price", func(c *TennisClub) { c.Courts[1].PricePerHour = price(-1) }},
		{"bad open time", func(c *TennisClub) { c.OperatingHours.OpenTime = "8 Uhr" }},
		{"closes before opening", func(c *TennisClub) { c.OperatingHours.CloseTime = "07:00" }},
		{"day out of range", func(c *TennisClub) { c.OperatingHours.DaysOfWeek = []int{0, 1} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := sampleClub()
			tc.mutate(&c)
			assert.True(t, apperr.IsErrValidation(c.Validate()))
		})
	}
}

func TestDecodeClub_FillsDefaults(t *testing.T) {
	raw := map[string]any{
		"name": "TC Minimal",
		"courts": []any{
			map[string]any{"id": "court1", "name": "Platz 1", "surface": "CLAY"},
			map[string]any{"id": "court2", "name": "Platz 2", "surface": "HARD", "isActive": false},
		},
	}
	typed := TennisClub{
		Name: "TC Minimal",
		Courts: []Court{
			{ID: "court1", Name: "Platz 1", Surface: SurfaceClay},
			{ID: "court2", Name: "Platz 2", Surface: SurfaceHard},
		},
	}

	c, err := decodeClub("abc", raw, typed)
	require.NoError(t, err)
	assert.Equal(t, "abc", c.ID)
	assert.Equal(t, DefaultBookingSettings(), c.BookingSettings)
	assert.Equal(t, DefaultOperatingHours(), c.OperatingHours)
	assert.True(t, c.Courts[0].IsActive)
	assert.False(t, c.Courts[1].IsActive)
	assert.NotNil(t, c.AdminIDs)
}

func TestDecodeClub_KeepsStoredSettings(t *testing.T) {
	raw := map[string]any{"bookingSettings": map[string]any{"allowCancellation": false}}
	typed := TennisClub{BookingSettings: BookingSettings{AllowCancellation: false}}

	c, err := decodeClub("abc", raw, typed)
	require.NoError(t, err)
	assert.False(t, c.BookingSettings.AllowCancellation)
	assert.Zero(t, c.BookingSettings.MaxAdvanceBookingDays)
}

func TestDecodeClub_UnknownSurfaceFails(t *testing.T) {
	typed := TennisClub{Courts: []Court{{ID: "court1", Surface: "CARPET"}}}
	_, err := decodeClub("abc", map[string]any{}, typed)
	assert.True(t, apperr.IsErrDecode(err))
}
