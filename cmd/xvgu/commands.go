package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvgu/xvguctl/internal/dispatch"
	"github.com/xvgu/xvguctl/internal/mapper"
	"github.com/xvgu/xvguctl/internal/protocol"
	"github.com/xvgu/xvguctl/internal/towererr"
	"github.com/xvgu/xvguctl/internal/ui"
	"github.com/xvgu/xvguctl/internal/version"
)

func newLEDSetCmd(a *app) *cobra.Command {
	var layer, name, rgb, pattern string

	cmd := &cobra.Command{
		Use:   "ledset",
		Short: "Set one LED layer to a colour",
		Long: `Set one LED layer to a named colour or an r,g,b triple.

Each channel is quantised: 0 is OFF, 170 and above is ON, anything in
between is DUTY. Distinct colours can therefore look the same.

Layers: ` + strings.Join(protocol.LayerNames(), ", ") + `
Patterns: ` + strings.Join(protocol.PatternNames(), ", "),
		Example: `  # Top layer red
  xvgu ledset --layer ONE --name red

  # Middle layer blinking at half brightness
  xvgu ledset --layer TWO --rgb 100,100,0 --pattern BLINK_1`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if layer == "" {
				return towererr.New(towererr.InvalidArgument, "--layer is required")
			}
			var color mapper.ColorSpec
			switch {
			case name != "" && rgb != "":
				return towererr.New(towererr.InvalidArgument, "--name and --rgb are mutually exclusive")
			case name != "":
				color = mapper.Named(name)
			case rgb != "":
				spec, err := mapper.ParseRGB(rgb)
				if err != nil {
					return err
				}
				color = spec
			default:
				return towererr.New(towererr.InvalidArgument, "one of --name or --rgb is required")
			}

			err := a.dispatcher().SetLED(dispatch.LEDRequest{Layer: layer, Color: color, Pattern: pattern})
			if err != nil {
				return err
			}
			a.printer.OK("OK",
				ui.Detail{Key: "Layer", Value: strings.ToUpper(layer)},
				ui.Detail{Key: "Color", Value: color.String()},
				ui.Detail{Key: "Pattern", Value: strings.ToUpper(pattern)},
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&layer, "layer", "", "LED layer (ONE, TWO, THREE)")
	cmd.Flags().StringVar(&name, "name", "", "Colour name (see 'xvgu colors')")
	cmd.Flags().StringVar(&rgb, "rgb", "", "Colour as r,g,b with components 0-255")
	cmd.Flags().StringVar(&pattern, "pattern", "ON", "Light pattern")
	return cmd
}

func newBuzzerCmd(a *app) *cobra.Command {
	var seconds float64
	var tone, volume, pattern string
	var off bool

	cmd := &cobra.Command{
		Use:   "buzzer",
		Short: "Switch the buzzer on or off",
		Long: `Switch the buzzer on, off, or on for a number of seconds.

With --seconds the device is released while the buzzer sounds and reopened
to switch it off. If it cannot be reopened the buzzer keeps sounding and the
command fails with BuzzerStuckOn; run 'xvgu buzzer --off' to silence it.

Tone: anything starting with "low" selects LOW, otherwise HI.
Volumes: ` + strings.Join(protocol.BuzzerVolumeNames(), ", ") + `
Patterns: ` + strings.Join(protocol.BuzzerPatternNames(), ", "),
		Example: `  # Buzz for three seconds
  xvgu buzzer --seconds 3

  # Quiet low tone until switched off
  xvgu buzzer --tone low --volume sml
  xvgu buzzer --off`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if seconds > maxBuzzSeconds {
				return towererr.New(towererr.ValueOutOfRange, "--seconds %g exceeds %g", seconds, maxBuzzSeconds)
			}

			req := dispatch.BuzzerRequest{
				Volume:  volume,
				Pattern: pattern,
				Off:     off,
			}
			if cmd.Flags().Changed("tone") {
				req.Tone = &tone
			}
			if seconds > 0 {
				req.Duration = time.Duration(seconds * float64(time.Second))
			}

			d := a.dispatcher()
			d.BuzzerOpts.OnTransition = func(tr dispatch.Transition) {
				if tr.To == dispatch.StateWaiting {
					a.printer.OK(buzzerOnMessage(tr.Settings), buzzerDetails(tr.Settings, req.Duration)...)
				}
			}

			res, err := d.Buzzer(req)
			if err != nil {
				return err
			}
			if res.Off || res.Timed {
				a.printer.OK("OK buzzer OFF")
			} else {
				a.printer.OK(buzzerOnMessage(res.Settings), buzzerDetails(res.Settings, 0)...)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&seconds, "seconds", 0, "Switch off again after this many seconds")
	cmd.Flags().StringVar(&tone, "tone", "", "Tone: low or high (default high)")
	cmd.Flags().StringVar(&volume, "volume", "mid", "Volume: big, mid, sml")
	cmd.Flags().StringVar(&pattern, "pattern", "PTN_2", "Buzzer pattern")
	cmd.Flags().BoolVar(&off, "off", false, "Stop the buzzer")
	return cmd
}

func buzzerOnMessage(s dispatch.BuzzerSettings) string {
	return fmt.Sprintf("OK buzzer ON (tone=%s, volume=%s)", s.Tone, s.Volume)
}

func buzzerDetails(s dispatch.BuzzerSettings, d time.Duration) []ui.Detail {
	details := []ui.Detail{{Key: "Pattern", Value: s.Pattern.String()}}
	if d > 0 {
		details = append(details, ui.Detail{Key: "Duration", Value: d.String()})
	}
	return details
}

// printResponse prints a read-type response.
func (a *app) printResponse(command string, resp *dispatch.Response) {
	details := []ui.Detail{{Key: "Command", Value: command}}
	if resp.Frame != nil {
		details = append(details, ui.Detail{Key: "Frame", Value: resp.Frame.String()})
	}
	a.printer.Raw(resp.Hex(), details...)
}

func newReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read KIND",
		Short: "Read the status of an LED layer or the buzzer",
		Long: `Read a status block and print the raw response as hex.

Kinds: ` + strings.Join(protocol.StatusKindNames(), ", "),
		Example: `  xvgu read LED_01
  xvgu read BUZZER --passthrough`,
		Args:      exactArgs(1, "KIND"),
		ValidArgs: protocol.StatusKindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.dispatcher().ReadStatus(args[0])
			if err != nil {
				return err
			}
			a.printResponse("status read", resp)
			return nil
		},
	}
}

func newConfSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "confset K1 K2 PARAM",
		Short: "Write a device configuration item",
		Long: `Write one configuration item.

K1: ` + strings.Join(protocol.ConfigKind1Names(), ", ") + ` or 0-255
K2: ` + strings.Join(protocol.ConfigKind2Names(), ", ") + ` or 0-255
PARAM: 0-255`,
		Example: `  xvgu confset LED GLED 2
  xvgu confset 1 0 3`,
		Args: exactArgs(3, "K1", "K2", "PARAM"),
		RunE: func(cmd *cobra.Command, args []string) error {
			k1, err := parseKind("K1", args[0], protocol.ParseConfigKind1)
			if err != nil {
				return err
			}
			k2, err := parseKind("K2", args[1], protocol.ParseConfigKind2)
			if err != nil {
				return err
			}
			param, err := parseByte("PARAM", args[2])
			if err != nil {
				return err
			}
			if err := a.dispatcher().ConfigSet(k1, k2, param); err != nil {
				return err
			}
			a.printer.OK("OK confset")
			return nil
		},
	}
}

func newConfReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "confread K1 K2",
		Short: "Read a device configuration item",
		Args:  exactArgs(2, "K1", "K2"),
		RunE: func(cmd *cobra.Command, args []string) error {
			k1, err := parseKind("K1", args[0], protocol.ParseConfigKind1)
			if err != nil {
				return err
			}
			k2, err := parseKind("K2", args[1], protocol.ParseConfigKind2)
			if err != nil {
				return err
			}
			resp, err := a.dispatcher().ConfigRead(k1, k2)
			if err != nil {
				return err
			}
			a.printResponse("config read", resp)
			return nil
		},
	}
}

func newPtnDoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ptndo PTN_NO RUN_FLAG",
		Short: "Run or stop a stored pattern",
		Args:  exactArgs(2, "PTN_NO", "RUN_FLAG"),
		RunE: func(cmd *cobra.Command, args []string) error {
			no, err := parseByte("PTN_NO", args[0])
			if err != nil {
				return err
			}
			flag, err := parseByte("RUN_FLAG", args[1])
			if err != nil {
				return err
			}
			if err := a.dispatcher().PatternExecute(no, flag); err != nil {
				return err
			}
			a.printer.OK("OK ptndo")
			return nil
		},
	}
}

func newPtnSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ptnset HEX",
		Short: "Upload a raw pattern program",
		Long: `Upload a pattern program given as hex bytes. The bytes are sent as the
frame payload unchanged; their layout is defined by the device.`,
		Example: `  xvgu ptnset "01 00 02 01"`,
		Args:    exactArgs(1, "HEX"),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseHex("HEX", args[0])
			if err != nil {
				return err
			}
			if err := a.dispatcher().PatternSet(payload); err != nil {
				return err
			}
			a.printer.OK("OK ptnset", ui.Detail{Key: "Bytes", Value: fmt.Sprint(len(payload))})
			return nil
		},
	}
}

func newPtnReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ptnread HEX",
		Short: "Read back a pattern program",
		Args:  exactArgs(1, "HEX"),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseHex("HEX", args[0])
			if err != nil {
				return err
			}
			resp, err := a.dispatcher().PatternRead(payload)
			if err != nil {
				return err
			}
			a.printResponse("pattern read", resp)
			return nil
		},
	}
}

func newColorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List colour names and their LED states",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var details []ui.Detail
			for _, name := range mapper.ColorNames() {
				rgb, _ := mapper.LookupColor(name)
				r, g, b := mapper.ColorToLEDStates(rgb)
				value := fmt.Sprintf("%-11s %s/%s/%s", formatRGB(rgb.R, rgb.G, rgb.B), r, g, b)
				details = append(details, ui.Detail{Key: name, Value: value})
			}

			if a.printer.Format() != ui.FormatText {
				a.printer.OK("Colours", details...)
				return nil
			}
			for _, d := range details {
				fmt.Fprintf(a.stdout, "%-12s %s\n", d.Key, d.Value)
			}
			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "xvgu %s\n", version.Full())
		},
	}
}
