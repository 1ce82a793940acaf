package mapper

import (
	"strings"

	"github.com/xvgu/xvguctl/internal/protocol"
)

// CanonTone maps free-form tone input onto a BuzzerTone. A nil or empty
// input means HI; anything starting with "low" (after trimming, any case)
// means LOW; everything else is HI.
func CanonTone(input *string) protocol.BuzzerTone {
	if input == nil {
		return protocol.ToneHigh
	}
	return CanonToneString(*input)
}

// CanonToneString is CanonTone for a plain string.
func CanonToneString(input string) protocol.BuzzerTone {
	v := strings.ToLower(strings.TrimSpace(input))
	if strings.HasPrefix(v, "low") {
		return protocol.ToneLow
	}
	return protocol.ToneHigh
}
