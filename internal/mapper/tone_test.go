package mapper

import (
	"testing"

	"github.com/xvgu/xvguctl/internal/protocol"
)

func TestCanonTone(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		input *string
		want  protocol.BuzzerTone
	}{
		{"absent", nil, protocol.ToneHigh},
		{"empty", str(""), protocol.ToneHigh},
		{"low with space", str("Low "), protocol.ToneLow},
		{"lowest", str("LOWEST"), protocol.ToneLow},
		{"high", str("high"), protocol.ToneHigh},
		{"leading space", str("  low"), protocol.ToneLow},
		{"other", str("bass"), protocol.ToneHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonTone(tt.input); got != tt.want {
				t.Errorf("CanonTone() = %v, want %v", got, tt.want)
			}
		})
	}
}
