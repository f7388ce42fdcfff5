package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVoiceQuery(t *testing.T) {
	cases := []struct {
		in       string
		src, dst string
		ok       bool
	}{
		{in: "from Thob to Basni", src: "thob", dst: "basni", ok: true},
		{in: "I want to go from Paota to Jalori Gate please", src: "paota", dst: "jalori gate", ok: true},
		{in: "show buses from Bus Stand to Ratanada.", src: "bus stand", dst: "ratanada", ok: true},
		{in: "Sardarpura to Ratanada", src: "sardarpura", dst: "ratanada", ok: true},
		{in: "mujhe Thob se Basni jana hai", src: "thob", dst: "basni", ok: true},
		{in: "Paota se Ratanada tak", src: "paota", dst: "ratanada", ok: true},
		{in: "थोब से बासनी जाना है", src: "थोब", dst: "बासनी", ok: true},
		{in: "मुझे पावटा से रातानाडा तक", src: "पावटा", dst: "रातानाडा", ok: true},
		{in: "hello there", ok: false},
		{in: "", ok: false},
		{in: "to Basni", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			src, dst, ok := ParseVoiceQuery(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.src, src)
			assert.Equal(t, tc.dst, dst)
		})
	}
}
