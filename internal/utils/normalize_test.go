package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "wurselen", Fold("  Würselen "))
	assert.Equal(t, "tc rot-weiss aachen", Fold("TC  Rot-Weiß Aachen"))
	assert.Equal(t, "", Fold("   "))
}

func TestContainsFolded(t *testing.T) {
	cases := []struct {
		query  string
		fields []string
		want   bool
	}{
		{"", []string{"anything"}, true},
		{"wurselen", []string{"TC Würselen"}, true},
		{"DUREN", []string{"Grün-Weiß Düren Tennis"}, true},
		{"krefelder", []string{"TC Rot-Weiß Aachen", "Krefelder Straße 223, 52070 Aachen"}, true},
		{"strasse", []string{"Krefelder Straße 223"}, true},
		{"halle", []string{"TC Blau-Weiß", "Monschauer Straße 45"}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ContainsFolded(c.query, c.fields...), "query %q", c.query)
	}
}

func TestParseHHMM(t *testing.T) {
	m, err := ParseHHMM("08:00")
	assert.NoError(t, err)
	assert.Equal(t, 480, m)

	m, err = ParseHHMM("22:30")
	assert.NoError(t, err)
	assert.Equal(t, 1350, m)

	m, err = ParseHHMM("24:00")
	assert.NoError(t, err)
	assert.Equal(t, 1440, m)

	for _, bad := range []string{"8:00", "24:01", "25:00", "12:60", "noon", ""} {
		_, err := ParseHHMM(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, bad)
	}
}
