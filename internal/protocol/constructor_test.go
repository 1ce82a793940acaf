package protocol

import (
	"bytes"
	"testing"

	"github.com/xvgu/xvguctl/internal/towererr"
)

func TestBuildLEDSet(t *testing.T) {
	frame, err := BuildLEDSet(LayerTwo, LEDOn, LEDOff, LEDOn, PatternOn)
	if err != nil {
		t.Fatalf("BuildLEDSet() error = %v", err)
	}

	sum := byte((0x01 + 0x00 + 0x05 + 0x01 + 0x01 + 0x00 + 0x01 + 0x01) & 0xFF)
	want := []byte{0x1B, 0x01, 0x00, 0x05, 0x01, 0x01, 0x00, 0x01, 0x01, sum, 0x0D}
	if !bytes.Equal(frame, want) {
		t.Errorf("BuildLEDSet() = % X, want % X", frame, want)
	}
}

func TestBuildLEDSetRejectsInvalidCodes(t *testing.T) {
	tests := []struct {
		name    string
		layer   Layer
		r       LEDState
		pattern Pattern
	}{
		{"layer", Layer(3), LEDOn, PatternOn},
		{"state", LayerOne, LEDState(7), PatternOn},
		{"pattern", LayerOne, LEDOn, Pattern(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLEDSet(tt.layer, tt.r, LEDOff, LEDOff, tt.pattern)
			if !towererr.Is(err, towererr.UnknownEnumValue) {
				t.Errorf("error = %v, want UnknownEnumValue", err)
			}
		})
	}
}

func TestBuildBuzzer(t *testing.T) {
	off := BuildBuzzerOff()
	sum := byte((0x02 + 0x00 + 0x03 + 0x01 + 0x02 + 0x00) & 0xFF)
	want := []byte{0x1B, 0x02, 0x00, 0x03, 0x01, 0x02, 0x00, sum, 0x0D}
	if !bytes.Equal(off, want) {
		t.Errorf("BuildBuzzerOff() = % X, want % X", off, want)
	}

	on, err := BuildBuzzerSet(ToneHigh, VolumeMid, BuzzerPattern2)
	if err != nil {
		t.Fatalf("BuildBuzzerSet() error = %v", err)
	}
	if on[4] != 0x00 || on[5] != 0x01 || on[6] != 0x02 {
		t.Errorf("payload = % X, want 00 01 02", on[4:7])
	}

	if _, err := BuildBuzzerSet(ToneHigh, VolumeMid, BuzzerPattern(5)); !towererr.Is(err, towererr.UnknownEnumValue) {
		t.Errorf("error = %v, want UnknownEnumValue", err)
	}
}

func TestBuildersPayloadShapes(t *testing.T) {
	tests := []struct {
		name    string
		build   func() ([]byte, error)
		cmd     Command
		payload []byte
	}{
		{"status read", func() ([]byte, error) { return BuildStatusRead(StatusBuzzer) }, CmdStatusRead, []byte{0x03}},
		{"config set", func() ([]byte, error) { return BuildConfigSet(0x00, 0x01, 0x10) }, CmdConfigSet, []byte{0x00, 0x01, 0x10}},
		{"config read", func() ([]byte, error) { return BuildConfigRead(0x01, 0x00) }, CmdConfigRead, []byte{0x01, 0x00}},
		{"pattern execute", func() ([]byte, error) { return BuildPatternExecute(0x02, 0x01) }, CmdPatternDo, []byte{0x02, 0x01}},
		{"pattern set", func() ([]byte, error) { return BuildPatternSet([]byte{0xAA, 0xBB}) }, CmdPatternSet, []byte{0xAA, 0xBB}},
		{"pattern read", func() ([]byte, error) { return BuildPatternRead([]byte{0x01}) }, CmdPatternRead, []byte{0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := tt.build()
			if err != nil {
				t.Fatalf("build error = %v", err)
			}
			decoded, err := DecodeFrame(frame)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if decoded.Command != tt.cmd {
				t.Errorf("command = %s, want %s", decoded.Command, tt.cmd)
			}
			if !bytes.Equal(decoded.Payload, tt.payload) {
				t.Errorf("payload = % X, want % X", decoded.Payload, tt.payload)
			}
		})
	}

	if _, err := BuildStatusRead(StatusKind(4)); !towererr.Is(err, towererr.UnknownEnumValue) {
		t.Errorf("BuildStatusRead(4) error = %v, want UnknownEnumValue", err)
	}
}
