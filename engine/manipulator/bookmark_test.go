package manipulator

import (
	"encoding/json"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "orbit", want: ModeOrbit},
		{in: "MAP", want: ModeMap},
		{in: " Map ", want: ModeMap},
		{in: "fly", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFov(t *testing.T) {
	got, err := ParseFov("Horizontal")
	require.NoError(t, err)
	assert.Equal(t, FovHorizontal, got)

	got, err = ParseFov("")
	require.NoError(t, err)
	assert.Equal(t, FovVertical, got)

	_, err = ParseFov("diagonal")
	assert.Error(t, err)
}

func TestMode_MarshalText(t *testing.T) {
	text, err := ModeMap.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "map", string(text))

	_, err = Mode(7).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownMode)

	var m Mode
	assert.ErrorIs(t, m.UnmarshalText([]byte("walk")), ErrUnknownMode)
}

func TestBookmark_JSONUsesModeName(t *testing.T) {
	b := NewOrbitBookmark(0.5, -1, 3, mgl32.Vec3{1, 2, 3})

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode":"orbit"`)

	var decoded Bookmark
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b, decoded)
}
