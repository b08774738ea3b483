package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

func TestParseHours(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Hours
	}{
		{"5", 500},
		{"5.5", 550},
		{".5", 50},
		{"0.5", 50},
		{"9.99", 999},
		{"1.05", 105},
		{"0", 0},
		{"40", 4000}, // above the single-check-in cap, valid as a total
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := domain.ParseHours(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseHours_TooManyDecimals(t *testing.T) {
	_, err := domain.ParseHours("1.234")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseHours_Garbage(t *testing.T) {
	for _, in := range []string{"", "-1", "1.2.3", "abc", "1,5"} {
		_, err := domain.ParseHours(in)
		assert.ErrorIs(t, err, domain.ErrValidation, "input %q", in)
	}
}

func TestParseHours_HugeNumeralRejected(t *testing.T) {
	// 184467440737095517 * 100 wraps int64 to 84; a wrapped value would
	// sneak under the per-check-in cap looking like 0.84 hours.
	for _, in := range []string{
		"184467440737095517",   // fits int64, *100 wraps positive
		"92233720368547758080", // does not fit int64 at all
		"99999999999999999999999999",
	} {
		got, err := domain.ParseHours(in)
		assert.ErrorIs(t, err, domain.ErrValidation, "input %q", in)
		assert.Zero(t, got, "input %q", in)
	}
}

func TestHours_String_TrimsTrailingZeros(t *testing.T) {
	cases := []struct {
		in   domain.Hours
		want string
	}{
		{550, "5.5"},
		{100, "1"},
		{50, "0.5"},
		{999, "9.99"},
		{105, "1.05"},
		{0, "0"},
		{4000, "40"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.String())
	}
}

func TestHours_Unit_SingularForExactlyOne(t *testing.T) {
	assert.Equal(t, "hr", domain.OneHour.Unit())
	assert.Equal(t, "hrs", domain.Hours(550).Unit())
	assert.Equal(t, "hrs", domain.Hours(50).Unit())
	assert.Equal(t, "hrs", domain.Hours(0).Unit())
	// 1.00 is the only singular value — 1.01 is already plural.
	assert.Equal(t, "hrs", domain.Hours(101).Unit())
}

func TestHours_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(domain.Hours(550))
	require.NoError(t, err)
	assert.Equal(t, "5.5", string(b))

	var h domain.Hours
	require.NoError(t, json.Unmarshal([]byte("5.5"), &h))
	assert.Equal(t, domain.Hours(550), h)

	require.NoError(t, json.Unmarshal([]byte(`"1.25"`), &h))
	assert.Equal(t, domain.Hours(125), h)
}
