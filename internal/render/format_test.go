package render

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjambon/martinj/internal/domain/works"
)

func TestDisplayTitle(t *testing.T) {
	cases := []struct {
		name string
		a    works.Artwork
		want string
	}{
		{"english tag", works.Artwork{TitleEN: "red square", TitleFR: "carré rouge", TitleLang: "en"}, "Red square"},
		{"french tag", works.Artwork{TitleEN: "red square", TitleFR: "carré rouge", TitleLang: "fr"}, "Carré rouge"},
		{"no tag prefers english", works.Artwork{TitleEN: "dawn", TitleFR: "aube"}, "Dawn"},
		{"no tag falls back to french", works.Artwork{TitleFR: "aube"}, "Aube"},
		{"no titles at all", works.Artwork{}, "Untitled"},
		// Only the first character changes; this is not title case.
		{"multi-word stays lowercase", works.Artwork{TitleEN: "the long road home", TitleLang: "en"}, "The long road home"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DisplayTitle(&tc.a))
		})
	}
}

func TestFormatDimensionsAbsent(t *testing.T) {
	a := works.Artwork{}
	_, ok := FormatDimensions(&a, 1)
	assert.False(t, ok)
}

func TestFormatDimensionsFromInches(t *testing.T) {
	a := works.Artwork{Size: &works.Dimensions{Width: 12, Height: 9, Unit: works.UnitIn}}
	s, ok := FormatDimensions(&a, 1)
	require.True(t, ok)
	assert.Equal(t, "12 × 9 in (30.5 × 22.9 cm)", s)
}

func TestFormatDimensionsFromCentimeters(t *testing.T) {
	a := works.Artwork{Size: &works.Dimensions{Width: 30.5, Height: 22.9, Unit: works.UnitCm}}
	s, ok := FormatDimensions(&a, 1)
	require.True(t, ok)
	assert.Contains(t, s, "in (30.5 × 22.9 cm)")
}

// Whatever unit the row carries, the emitted pair must satisfy
// cm = 2.54 * in within rounding tolerance.
func TestFormatDimensionsConversionFactor(t *testing.T) {
	for _, size := range []works.Dimensions{
		{Width: 12, Height: 9, Unit: works.UnitIn},
		{Width: 100, Height: 70, Unit: works.UnitCm},
		{Width: 8.25, Height: 11.75, Unit: works.UnitIn},
	} {
		a := works.Artwork{Size: &size}
		s, ok := FormatDimensions(&a, 2)
		require.True(t, ok)

		in, cm := parseDimsOutput(t, s)
		for i := 0; i < 2; i++ {
			assert.InDelta(t, in[i]*2.54, cm[i], 0.02, "output %q", s)
		}
	}
}

func parseDimsOutput(t *testing.T, s string) (in, cm [2]float64) {
	t.Helper()
	parts := strings.SplitN(s, " in (", 2)
	require.Len(t, parts, 2)
	inPart := strings.Split(parts[0], " × ")
	cmPart := strings.Split(strings.TrimSuffix(parts[1], " cm)"), " × ")
	for i := 0; i < 2; i++ {
		v, err := strconv.ParseFloat(inPart[i], 64)
		require.NoError(t, err)
		in[i] = v
		v, err = strconv.ParseFloat(cmPart[i], 64)
		require.NoError(t, err)
		cm[i] = v
	}
	return in, cm
}

func TestLocation(t *testing.T) {
	for guard, want := range map[works.Guardianship]string{
		works.GuardPrivate:   "Private collection",
		works.GuardEphemeral: "Ephemeral",
	} {
		a := works.Artwork{Guardianship: guard}
		s, ok := Location(&a)
		require.True(t, ok)
		assert.Equal(t, want, s)
	}

	for _, guard := range []works.Guardianship{
		works.GuardFamily, works.GuardRecycled, works.GuardOther, "attic",
	} {
		a := works.Artwork{Guardianship: guard}
		_, ok := Location(&a)
		assert.False(t, ok, "guardianship %q must have no location", guard)
	}
}

func TestFormatDate(t *testing.T) {
	a := works.Artwork{
		Date:    time.Date(2019, time.May, 1, 0, 0, 0, 0, time.UTC),
		HasDate: true,
	}
	s, ok := FormatDate(&a)
	require.True(t, ok)
	assert.Equal(t, "May 2019", s)

	_, ok = FormatDate(&works.Artwork{})
	assert.False(t, ok)
}

func TestCreditBlockNeedsAllThreeFields(t *testing.T) {
	full := works.Artwork{
		Credit:      "Photo by J. Doe",
		LicenseName: "CC BY-SA 4.0",
		LicenseURL:  "https://creativecommons.org/licenses/by-sa/4.0/",
	}
	c, ok := CreditBlock(&full)
	require.True(t, ok)
	assert.Equal(t, "Photo by J. Doe", c.Text)

	partials := []works.Artwork{
		{Credit: "Photo by J. Doe"},
		{Credit: "Photo by J. Doe", LicenseName: "CC BY-SA 4.0"},
		{LicenseName: "CC BY-SA 4.0", LicenseURL: "https://example.org"},
		{},
	}
	for _, a := range partials {
		_, ok := CreditBlock(&a)
		assert.False(t, ok)
	}
}

func TestFmtNumTrimsTrailingZeros(t *testing.T) {
	assert.Equal(t, "12", fmtNum(12.0, 2))
	assert.Equal(t, "30.48", fmtNum(30.48, 2))
	assert.Equal(t, "30.5", fmtNum(30.50, 2))
}
