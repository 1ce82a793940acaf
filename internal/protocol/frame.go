package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/xvgu/xvguctl/internal/towererr"
)

// Frame envelope constants
const (
	StartByte      = 0x1B
	TerminatorByte = 0x0D
	HeaderSize     = 4 // start + command + 2-byte length
	TrailerSize    = 2 // checksum + terminator
	FrameOverhead  = HeaderSize + TrailerSize

	// MaxPayloadSize is the largest payload the 16-bit length field can carry
	MaxPayloadSize = 0xFFFF

	// ResponseSize bounds every inbound response read
	ResponseSize = 64
)

// Command identifies the operation carried by a frame.
type Command byte

const (
	CmdLEDSet      Command = 0x01
	CmdBuzzerSet   Command = 0x02
	CmdStatusRead  Command = 0x03
	CmdPatternSet  Command = 0x04
	CmdPatternRead Command = 0x05
	CmdPatternDo   Command = 0x06
	CmdConfigSet   Command = 0x07
	CmdConfigRead  Command = 0x08
)

// variablePayload marks commands whose payload is raw pass-through
const variablePayload = -1

// payloadLengths holds the send-side payload length of each command.
var payloadLengths = map[Command]int{
	CmdLEDSet:      5,
	CmdBuzzerSet:   3,
	CmdStatusRead:  1,
	CmdPatternSet:  variablePayload,
	CmdPatternRead: variablePayload,
	CmdPatternDo:   2,
	CmdConfigSet:   3,
	CmdConfigRead:  2,
}

// String returns a human-readable command name
func (c Command) String() string {
	switch c {
	case CmdLEDSet:
		return "LEDSet"
	case CmdBuzzerSet:
		return "BuzzerSet"
	case CmdStatusRead:
		return "StatusRead"
	case CmdPatternSet:
		return "PatternSet"
	case CmdPatternRead:
		return "PatternRead"
	case CmdPatternDo:
		return "PatternDo"
	case CmdConfigSet:
		return "ConfigSet"
	case CmdConfigRead:
		return "ConfigRead"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", byte(c))
	}
}

// PayloadLength returns the fixed send-side payload length of c.
// ok is false for variable-length commands and unknown commands.
func (c Command) PayloadLength() (n int, ok bool) {
	n, known := payloadLengths[c]
	if !known || n == variablePayload {
		return 0, false
	}
	return n, true
}

// Checksum returns the 8-bit sum of data.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Encode wraps payload in a complete frame for cmd.
//
// Frame Structure:
//
//	[0]       0x1B        Start byte
//	[1]       cmd         Command
//	[2-3]     length      Payload length (big-endian uint16)
//	[4..N+3]  payload     Payload bytes
//	[N+4]     checksum    Sum of bytes [1..N+3] mod 256
//	[N+5]     0x0D        Terminator
//
// The payload length must match the command's fixed length; variable-length
// commands accept 1..MaxPayloadSize bytes.
func Encode(cmd Command, payload []byte) ([]byte, error) {
	want, known := payloadLengths[cmd]
	if !known {
		return nil, towererr.New(towererr.PayloadLengthMismatch, "unknown command 0x%02x", byte(cmd))
	}
	switch {
	case want == variablePayload && (len(payload) == 0 || len(payload) > MaxPayloadSize):
		return nil, towererr.New(towererr.PayloadLengthMismatch,
			"%s payload must be 1..%d bytes, got %d", cmd, MaxPayloadSize, len(payload))
	case want != variablePayload && len(payload) != want:
		return nil, towererr.New(towererr.PayloadLengthMismatch,
			"%s payload must be %d bytes, got %d", cmd, want, len(payload))
	}

	n := len(payload)
	frame := make([]byte, n+FrameOverhead)
	frame[0] = StartByte
	frame[1] = byte(cmd)
	binary.BigEndian.PutUint16(frame[2:4], uint16(n))
	copy(frame[HeaderSize:], payload)
	frame[HeaderSize+n] = Checksum(frame[1 : HeaderSize+n])
	frame[HeaderSize+n+1] = TerminatorByte

	return frame, nil
}
