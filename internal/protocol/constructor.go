package protocol

import (
	"github.com/xvgu/xvguctl/internal/towererr"
)

// BuildLEDSet constructs an LED single-set frame (command 0x01).
//
// Payload Structure:
//
//	[0]  layer    Layer (ONE=0, TWO=1, THREE=2)
//	[1]  red      LEDState for the red channel
//	[2]  green    LEDState for the green channel
//	[3]  blue     LEDState for the blue channel
//	[4]  pattern  Pattern (OFF, ON, BLINK_1, BLINK_2)
//
// Example:
//
//	frame, err := BuildLEDSet(LayerTwo, LEDOn, LEDOff, LEDOn, PatternOn)
//	// 1B 01 00 05 01 01 00 01 01 0A 0D
func BuildLEDSet(layer Layer, r, g, b LEDState, pattern Pattern) ([]byte, error) {
	if !layer.Valid() {
		return nil, towererr.New(towererr.UnknownEnumValue, "invalid layer code %d", layer)
	}
	for _, s := range []LEDState{r, g, b} {
		if !s.Valid() {
			return nil, towererr.New(towererr.UnknownEnumValue, "invalid LED state code %d", s)
		}
	}
	if !pattern.Valid() {
		return nil, towererr.New(towererr.UnknownEnumValue, "invalid pattern code %d", pattern)
	}
	return Encode(CmdLEDSet, []byte{byte(layer), byte(r), byte(g), byte(b), byte(pattern)})
}

// BuildBuzzerSet constructs a buzzer single-set frame (command 0x02).
//
// Payload Structure:
//
//	[0]  tone     BuzzerTone (HI=0, LOW=1)
//	[1]  volume   BuzzerVolume (BIG=0, MID=1, SML=2)
//	[2]  pattern  BuzzerPattern (OFF=0, PTN_1..PTN_4)
func BuildBuzzerSet(tone BuzzerTone, volume BuzzerVolume, pattern BuzzerPattern) ([]byte, error) {
	if !tone.Valid() || !volume.Valid() || !pattern.Valid() {
		return nil, towererr.New(towererr.UnknownEnumValue,
			"invalid buzzer codes tone=%d volume=%d pattern=%d", tone, volume, pattern)
	}
	return Encode(CmdBuzzerSet, []byte{byte(tone), byte(volume), byte(pattern)})
}

// BuildBuzzerOff constructs the frame that silences the buzzer.
// The device ignores tone and volume when the pattern is OFF; LOW/SML is
// what the tower's own tooling sends.
func BuildBuzzerOff() []byte {
	frame, _ := BuildBuzzerSet(ToneLow, VolumeSmall, BuzzerOff)
	return frame
}

// BuildStatusRead constructs a status read frame (command 0x03).
func BuildStatusRead(kind StatusKind) ([]byte, error) {
	if !kind.Valid() {
		return nil, towererr.New(towererr.UnknownEnumValue, "invalid status kind code %d", kind)
	}
	return Encode(CmdStatusRead, []byte{byte(kind)})
}

// BuildConfigSet constructs a config set frame (command 0x07).
//
// kind1 and kind2 form a two-level address (category, sub-item) and are
// passed as raw bytes: sub-item numbering depends on the category, and only
// the LED category has named sub-items (see ConfigKind2).
func BuildConfigSet(kind1, kind2, param byte) ([]byte, error) {
	return Encode(CmdConfigSet, []byte{kind1, kind2, param})
}

// BuildConfigRead constructs a config read frame (command 0x08).
func BuildConfigRead(kind1, kind2 byte) ([]byte, error) {
	return Encode(CmdConfigRead, []byte{kind1, kind2})
}

// BuildPatternExecute constructs a pattern execute frame (command 0x06).
func BuildPatternExecute(patternNo, runFlag byte) ([]byte, error) {
	return Encode(CmdPatternDo, []byte{patternNo, runFlag})
}

// BuildPatternSet wraps a caller-supplied pattern program (command 0x04).
// The bytes are passed through unchanged; their layout is device-defined.
func BuildPatternSet(raw []byte) ([]byte, error) {
	return Encode(CmdPatternSet, raw)
}

// BuildPatternRead wraps a caller-supplied pattern readback request (command 0x05).
func BuildPatternRead(raw []byte) ([]byte, error) {
	return Encode(CmdPatternRead, raw)
}
