// Package mapper turns user-facing values into protocol enumerations.
//
// Colours arrive either as a name from a fixed table or as an explicit RGB
// triple. Both are reduced to an RGB triple, which is then quantised per
// channel into the tower's three LED states. The quantisation is lossy: the
// tower cannot render arbitrary colours, so an RGB value does not round-trip.
package mapper

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xvgu/xvguctl/internal/protocol"
	"github.com/xvgu/xvguctl/internal/towererr"
)

// OnThreshold is the lowest channel value rendered fully on.
const OnThreshold = 170

// RGB is an 8-bit colour triple.
type RGB struct {
	R, G, B uint8
}

// ColorSpec is either a named colour or an explicit triple.
// Construct one with Named or Triple.
type ColorSpec struct {
	name    string
	triple  [3]int
	isTuple bool
}

// Named returns a ColorSpec resolved through the colour table.
func Named(name string) ColorSpec {
	return ColorSpec{name: name}
}

// Triple returns a ColorSpec holding explicit channel values.
// Values are validated by ResolveColor, not here.
func Triple(r, g, b int) ColorSpec {
	return ColorSpec{triple: [3]int{r, g, b}, isTuple: true}
}

// IsNamed reports whether the spec refers to the colour table.
func (c ColorSpec) IsNamed() bool { return !c.isTuple }

func (c ColorSpec) String() string {
	if c.isTuple {
		return strconv.Itoa(c.triple[0]) + "," + strconv.Itoa(c.triple[1]) + "," + strconv.Itoa(c.triple[2])
	}
	return c.name
}

var colorTable = map[string]RGB{
	"off":         {0, 0, 0},
	"white":       {255, 255, 255},
	"red":         {255, 0, 0},
	"yellow":      {255, 255, 0},
	"blue":        {0, 0, 255},
	"pink":        {255, 192, 203},
	"light_pink":  {255, 182, 193},
	"deep_pink":   {255, 20, 147},
	"hot_pink":    {255, 105, 180},
	"rose":        {255, 0, 127},
	"salmon":      {250, 128, 114},
	"plum":        {221, 160, 221},
	"orchid":      {218, 112, 214},
	"pale_violet": {219, 112, 147},
	"misty_rose":  {255, 228, 225},
}

// ColorNames returns the colour table names in sorted order.
func ColorNames() []string {
	names := make([]string, 0, len(colorTable))
	for name := range colorTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupColor returns the table entry for name (case-insensitive).
func LookupColor(name string) (RGB, bool) {
	rgb, ok := colorTable[strings.ToLower(strings.TrimSpace(name))]
	return rgb, ok
}

// ResolveColor reduces a ColorSpec to an RGB triple.
func ResolveColor(spec ColorSpec) (RGB, error) {
	if spec.IsNamed() {
		rgb, ok := LookupColor(spec.name)
		if !ok {
			return RGB{}, towererr.New(towererr.UnknownColorName,
				"unknown color name %q (run 'xvgu colors' for the list)", spec.name)
		}
		return rgb, nil
	}

	var out [3]uint8
	for i, v := range spec.triple {
		if v < 0 || v > 255 {
			return RGB{}, towererr.New(towererr.ValueOutOfRange,
				"rgb component %d out of range 0-255: %d", i+1, v)
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

// ParseRGB parses "r,g,b" into a Triple spec. Range checks happen in
// ResolveColor.
func ParseRGB(s string) (ColorSpec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return ColorSpec{}, towererr.New(towererr.InvalidArgument,
			"rgb must be three comma-separated integers, got %q", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return ColorSpec{}, towererr.Wrap(towererr.InvalidArgument, err,
				"rgb component %d is not an integer", i+1)
		}
		v[i] = n
	}
	return Triple(v[0], v[1], v[2]), nil
}

// ChannelToLEDState quantises one channel: 0 is off, OnThreshold and above
// is on, anything between is duty.
func ChannelToLEDState(v uint8) protocol.LEDState {
	switch {
	case v == 0:
		return protocol.LEDOff
	case v >= OnThreshold:
		return protocol.LEDOn
	default:
		return protocol.LEDDuty
	}
}

// ColorToLEDStates quantises each channel of rgb.
func ColorToLEDStates(rgb RGB) (r, g, b protocol.LEDState) {
	return ChannelToLEDState(rgb.R), ChannelToLEDState(rgb.G), ChannelToLEDState(rgb.B)
}
