package protocol

import (
	"fmt"
	"strings"

	"github.com/xvgu/xvguctl/internal/towererr"
)

// enumTable is a closed name→code lookup for one enumeration family.
// Tables are built once at init and never mutated.
type enumTable[T ~uint8] struct {
	family string
	names  []string // canonical names in code order
	byName map[string]T
}

func newEnumTable[T ~uint8](family string, names ...string) enumTable[T] {
	t := enumTable[T]{
		family: family,
		names:  names,
		byName: make(map[string]T, len(names)),
	}
	for i, name := range names {
		t.byName[name] = T(i)
	}
	return t
}

// parse normalises input at the call boundary, then matches strictly.
func (t enumTable[T]) parse(input string) (T, error) {
	key := strings.ToUpper(strings.TrimSpace(input))
	if v, ok := t.byName[key]; ok {
		return v, nil
	}
	return 0, towererr.New(towererr.UnknownEnumValue,
		"unknown %s %q (valid: %s)", t.family, input, strings.Join(t.names, ", "))
}

func (t enumTable[T]) name(v T) string {
	if int(v) < len(t.names) {
		return t.names[v]
	}
	return fmt.Sprintf("%s(%d)", t.family, int(v))
}

func (t enumTable[T]) valid(v T) bool {
	return int(v) < len(t.names)
}

func (t enumTable[T]) list() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Layer selects one LED tier of the tower.
type Layer uint8

const (
	LayerOne Layer = iota
	LayerTwo
	LayerThree
)

// LEDState is the per-channel intensity class of an LED.
type LEDState uint8

const (
	LEDOff LEDState = iota
	LEDOn
	LEDDuty
)

// Pattern is the LED lighting pattern.
type Pattern uint8

const (
	PatternOff Pattern = iota
	PatternOn
	PatternBlink1
	PatternBlink2
)

// BuzzerTone selects the buzzer pitch.
type BuzzerTone uint8

const (
	ToneHigh BuzzerTone = iota
	ToneLow
)

// BuzzerVolume selects the buzzer loudness.
type BuzzerVolume uint8

const (
	VolumeBig BuzzerVolume = iota
	VolumeMid
	VolumeSmall
)

// BuzzerPattern selects the buzzer sound pattern.
type BuzzerPattern uint8

const (
	BuzzerOff BuzzerPattern = iota
	BuzzerPattern1
	BuzzerPattern2
	BuzzerPattern3
	BuzzerPattern4
)

// StatusKind selects which sub-status a status read returns.
type StatusKind uint8

const (
	StatusLED1 StatusKind = iota
	StatusLED2
	StatusLED3
	StatusBuzzer
)

// ConfigKind1 is the category of a configuration address.
type ConfigKind1 uint8

const (
	ConfigLED ConfigKind1 = iota
	ConfigBuzzer
	ConfigAllDefault
)

// ConfigKind2 is the LED sub-item of a configuration address.
type ConfigKind2 uint8

const (
	ConfigRedLED ConfigKind2 = iota
	ConfigGreenLED
	ConfigBlueLED
)

var (
	layers         = newEnumTable[Layer]("layer", "ONE", "TWO", "THREE")
	ledStates      = newEnumTable[LEDState]("LED state", "OFF", "ON", "DUTY")
	patterns       = newEnumTable[Pattern]("pattern", "OFF", "ON", "BLINK_1", "BLINK_2")
	buzzerTones    = newEnumTable[BuzzerTone]("buzzer tone", "HI", "LOW")
	buzzerVolumes  = newEnumTable[BuzzerVolume]("buzzer volume", "BIG", "MID", "SML")
	buzzerPatterns = newEnumTable[BuzzerPattern]("buzzer pattern", "OFF", "PTN_1", "PTN_2", "PTN_3", "PTN_4")
	statusKinds    = newEnumTable[StatusKind]("status kind", "LED_01", "LED_02", "LED_03", "BUZZER")
	configKinds1   = newEnumTable[ConfigKind1]("config kind1", "LED", "BUZ", "ALLDEF")
	configKinds2   = newEnumTable[ConfigKind2]("config kind2", "RLED", "GLED", "BLED")
)

// ParseLayer looks up a layer by name (ONE, TWO, THREE).
func ParseLayer(name string) (Layer, error) { return layers.parse(name) }

// ParseLEDState looks up an LED state by name (OFF, ON, DUTY).
func ParseLEDState(name string) (LEDState, error) { return ledStates.parse(name) }

// ParsePattern looks up an LED pattern by name (OFF, ON, BLINK_1, BLINK_2).
func ParsePattern(name string) (Pattern, error) { return patterns.parse(name) }

// ParseBuzzerTone looks up a tone by canonical name (HI, LOW).
// Free-form user input should go through mapper.CanonTone instead.
func ParseBuzzerTone(name string) (BuzzerTone, error) { return buzzerTones.parse(name) }

// ParseBuzzerVolume looks up a volume by name (BIG, MID, SML).
func ParseBuzzerVolume(name string) (BuzzerVolume, error) { return buzzerVolumes.parse(name) }

// ParseBuzzerPattern looks up a buzzer pattern by name (OFF, PTN_1 .. PTN_4).
func ParseBuzzerPattern(name string) (BuzzerPattern, error) { return buzzerPatterns.parse(name) }

// ParseStatusKind looks up a status read kind by name.
func ParseStatusKind(name string) (StatusKind, error) { return statusKinds.parse(name) }

// ParseConfigKind1 looks up a configuration category by name (LED, BUZ, ALLDEF).
func ParseConfigKind1(name string) (ConfigKind1, error) { return configKinds1.parse(name) }

// ParseConfigKind2 looks up an LED configuration sub-item by name (RLED, GLED, BLED).
func ParseConfigKind2(name string) (ConfigKind2, error) { return configKinds2.parse(name) }

func (v Layer) String() string         { return layers.name(v) }
func (v LEDState) String() string      { return ledStates.name(v) }
func (v Pattern) String() string       { return patterns.name(v) }
func (v BuzzerTone) String() string    { return buzzerTones.name(v) }
func (v BuzzerVolume) String() string  { return buzzerVolumes.name(v) }
func (v BuzzerPattern) String() string { return buzzerPatterns.name(v) }
func (v StatusKind) String() string    { return statusKinds.name(v) }
func (v ConfigKind1) String() string   { return configKinds1.name(v) }
func (v ConfigKind2) String() string   { return configKinds2.name(v) }

// Valid reports whether v is a member of its enumeration.
func (v Layer) Valid() bool         { return layers.valid(v) }
func (v LEDState) Valid() bool      { return ledStates.valid(v) }
func (v Pattern) Valid() bool       { return patterns.valid(v) }
func (v BuzzerTone) Valid() bool    { return buzzerTones.valid(v) }
func (v BuzzerVolume) Valid() bool  { return buzzerVolumes.valid(v) }
func (v BuzzerPattern) Valid() bool { return buzzerPatterns.valid(v) }
func (v StatusKind) Valid() bool    { return statusKinds.valid(v) }

// Name lists, used for CLI help and shell completion.
func LayerNames() []string         { return layers.list() }
func PatternNames() []string       { return patterns.list() }
func BuzzerVolumeNames() []string  { return buzzerVolumes.list() }
func BuzzerPatternNames() []string { return buzzerPatterns.list() }
func StatusKindNames() []string    { return statusKinds.list() }
func ConfigKind1Names() []string   { return configKinds1.list() }
func ConfigKind2Names() []string   { return configKinds2.list() }
