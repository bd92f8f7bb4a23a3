package league

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"OH", PosOutsideHitter},
		{"MB", PosMiddleBlocker},
		{"S", PosSetter},
		{"RS", PosRightSide},
		{"mb", PosMiddleBlocker},
		{" rs ", PosRightSide},
		{"", PosOutsideHitter},
		{"libero", PosOutsideHitter},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePosition(tt.in), "input %q", tt.in)
	}
}

func TestCountUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"integer", `7`, 7},
		{"float truncates", `3.9`, 3},
		{"numeric string", `"5"`, 5},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"garbage string", `"abc"`, 0},
		{"negative clamps", `-3`, 0},
		{"negative string clamps", `"-3"`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Count
			require.NoError(t, json.Unmarshal([]byte(tt.in), &c))
			assert.Equal(t, tt.want, int(c))
		})
	}
}

func TestCountUnmarshalInStruct(t *testing.T) {
	var row struct {
		Wins   Count `json:"wins"`
		Losses Count `json:"losses"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"wins": "4", "losses": null}`), &row))
	assert.Equal(t, 4, int(row.Wins))
	assert.Equal(t, 0, int(row.Losses))
}

func TestCoerceCount(t *testing.T) {
	assert.Equal(t, 5, CoerceCount("5"))
	assert.Equal(t, 5, CoerceCount(" 5 "))
	assert.Equal(t, 2, CoerceCount("2.7"))
	assert.Equal(t, 0, CoerceCount(""))
	assert.Equal(t, 0, CoerceCount("x"))
	assert.Equal(t, 0, CoerceCount("-1"))
}

func TestParseFlag(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "1", "on", "yes", " t "} {
		assert.True(t, ParseFlag(s), "input %q", s)
	}
	for _, s := range []string{"false", "0", "", "no", "maybe"} {
		assert.False(t, ParseFlag(s), "input %q", s)
	}
}

func TestPlayerKeyCaseFolds(t *testing.T) {
	a := NewPlayerKey("D1", "Sam Jones")
	b := NewPlayerKey("D1", "SAM JONES")
	c := NewPlayerKey("D2", "Sam Jones")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestTeamKeyIsStructural(t *testing.T) {
	// Names containing any separator characters cannot collide across
	// divisions or with other names.
	a := Team{DivisionID: "D1", Name: "A::B"}.Key()
	b := Team{DivisionID: "D1::A", Name: "B"}.Key()
	assert.NotEqual(t, a, b)
}
