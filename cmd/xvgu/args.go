package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvgu/xvguctl/internal/towererr"
)

// exactArgs is cobra.ExactArgs with a categorised error.
func exactArgs(n int, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return towererr.New(towererr.InvalidArgument,
				"%s expects %d argument(s) (%s), got %d",
				cmd.Name(), n, strings.Join(names, " "), len(args))
		}
		return nil
	}
}

// parseByte parses a decimal or 0x-prefixed value in 0..255.
func parseByte(field, s string) (byte, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, towererr.New(towererr.InvalidArgument, "%s: %q is not an integer", field, s)
	}
	if v < 0 || v > 0xFF {
		return 0, towererr.New(towererr.ValueOutOfRange, "%s: %d is outside 0-255", field, v)
	}
	return byte(v), nil
}

// parseKind accepts either an enumeration name or a raw byte value. Raw
// values are passed through so kinds the tables do not list stay reachable.
func parseKind[T ~uint8](field, s string, parseName func(string) (T, error)) (byte, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed != "" && (trimmed[0] >= '0' && trimmed[0] <= '9' || trimmed[0] == '-') {
		return parseByte(field, trimmed)
	}
	v, err := parseName(trimmed)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

// parseHex decodes a hex byte string; spaces and colons are ignored.
func parseHex(field, s string) ([]byte, error) {
	clean := strings.NewReplacer(" ", "", ":", "", "0x", "", "0X", "").Replace(s)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, towererr.Wrap(towererr.InvalidArgument, err, "%s: %q is not a hex byte string", field, s)
	}
	return data, nil
}

func formatRGB(r, g, b uint8) string {
	return fmt.Sprintf("%d,%d,%d", r, g, b)
}
