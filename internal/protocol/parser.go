package protocol

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/xvgu/xvguctl/internal/towererr"
)

// Frame represents a parsed protocol frame
type Frame struct {
	Command  Command // Command byte
	Length   uint16  // Declared payload length
	Payload  []byte  // Payload bytes (aliases Raw)
	Checksum byte    // Checksum byte as received
	Raw      []byte  // Frame bytes, start through terminator
}

// DecodeFrame parses and validates the frame at the start of data.
//
// Bytes after the terminator are ignored; bulk reads are often padded to
// the endpoint packet size. Validation checks:
//   - Start byte (0x1B)
//   - Declared length fits in data
//   - Checksum over command, length and payload
//   - Terminator (0x0D)
//
// Failures are reported as towererr.MalformedResponse.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameOverhead {
		return nil, towererr.New(towererr.MalformedResponse,
			"frame too short: %d bytes (minimum %d)", len(data), FrameOverhead)
	}
	if data[0] != StartByte {
		return nil, towererr.New(towererr.MalformedResponse,
			"invalid start byte: 0x%02x (expected 0x%02x)", data[0], StartByte)
	}

	length := binary.BigEndian.Uint16(data[2:4])
	total := int(length) + FrameOverhead
	if len(data) < total {
		return nil, towererr.New(towererr.MalformedResponse,
			"frame truncated: declared payload %d bytes needs %d, have %d", length, total, len(data))
	}

	end := HeaderSize + int(length)
	frame := &Frame{
		Command:  Command(data[1]),
		Length:   length,
		Payload:  data[HeaderSize:end],
		Checksum: data[end],
		Raw:      data[:total],
	}

	if want := Checksum(data[1:end]); frame.Checksum != want {
		return nil, towererr.New(towererr.MalformedResponse,
			"checksum mismatch: got 0x%02x, computed 0x%02x", frame.Checksum, want)
	}
	if data[end+1] != TerminatorByte {
		return nil, towererr.New(towererr.MalformedResponse,
			"invalid terminator: 0x%02x (expected 0x%02x)", data[end+1], TerminatorByte)
	}

	return frame, nil
}

// Bytes returns the frame bytes, start through terminator.
func (f *Frame) Bytes() []byte {
	return f.Raw
}

func (f *Frame) String() string {
	return fmt.Sprintf("Frame{cmd=%s, len=%d, payload=%s, checksum=0x%02x}",
		f.Command, f.Length, hex.EncodeToString(f.Payload), f.Checksum)
}
