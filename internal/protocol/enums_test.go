package protocol

import (
	"reflect"
	"testing"

	"github.com/xvgu/xvguctl/internal/towererr"
)

func TestParseLayer(t *testing.T) {
	tests := []struct {
		input   string
		want    Layer
		wantErr bool
	}{
		{"ONE", LayerOne, false},
		{"two", LayerTwo, false},
		{"  Three ", LayerThree, false},
		{"FOUR", 0, true},
		{"", 0, true},
		{"1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLayer(tt.input)
			if tt.wantErr {
				if !towererr.Is(err, towererr.UnknownEnumValue) {
					t.Errorf("ParseLayer(%q) error = %v, want UnknownEnumValue", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLayer(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLayer(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnumCodes(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) (uint8, error)
		input string
		want  uint8
	}{
		{"led state duty", func(s string) (uint8, error) { v, err := ParseLEDState(s); return uint8(v), err }, "duty", 2},
		{"pattern blink_2", func(s string) (uint8, error) { v, err := ParsePattern(s); return uint8(v), err }, "blink_2", 3},
		{"tone low", func(s string) (uint8, error) { v, err := ParseBuzzerTone(s); return uint8(v), err }, "LOW", 1},
		{"volume sml", func(s string) (uint8, error) { v, err := ParseBuzzerVolume(s); return uint8(v), err }, "sml", 2},
		{"buzzer ptn_4", func(s string) (uint8, error) { v, err := ParseBuzzerPattern(s); return uint8(v), err }, "ptn_4", 4},
		{"status buzzer", func(s string) (uint8, error) { v, err := ParseStatusKind(s); return uint8(v), err }, "buzzer", 3},
		{"config alldef", func(s string) (uint8, error) { v, err := ParseConfigKind1(s); return uint8(v), err }, "ALLDEF", 2},
		{"config gled", func(s string) (uint8, error) { v, err := ParseConfigKind2(s); return uint8(v), err }, "gled", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.input)
			if err != nil {
				t.Fatalf("parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnumCanonicalNames(t *testing.T) {
	if got := LayerThree.String(); got != "THREE" {
		t.Errorf("LayerThree.String() = %q", got)
	}
	if got := Layer(9).String(); got != "layer(9)" {
		t.Errorf("Layer(9).String() = %q", got)
	}
	if got := VolumeSmall.String(); got != "SML" {
		t.Errorf("VolumeSmall.String() = %q", got)
	}
	if got := StatusKindNames(); !reflect.DeepEqual(got, []string{"LED_01", "LED_02", "LED_03", "BUZZER"}) {
		t.Errorf("StatusKindNames() = %v", got)
	}

	// Callers get a copy; the table itself stays closed.
	names := LayerNames()
	names[0] = "ZERO"
	if _, err := ParseLayer("ONE"); err != nil {
		t.Errorf("mutating LayerNames() result changed the table: %v", err)
	}
}
