// Package protocol implements the XVGU signal tower binary command protocol.
//
// This package handles construction and validation of the fixed-framing
// messages exchanged with the tower over its USB bulk endpoints, and the
// closed enumerations that populate their payloads.
//
// # Frame Format
//
// Every command and response uses the same envelope:
//   - Start byte: 0x1B
//   - Command: 1 byte (see Command)
//   - Payload length: 2 bytes (big-endian)
//   - Payload: exactly length bytes
//   - Checksum: 1 byte, sum of command, length and payload bytes mod 256
//   - Terminator: 0x0D
//
// The checksum excludes the start byte and the terminator. A frame is
// always 6 bytes longer than its payload.
//
// # Commands
//
// Payload shapes on the send side:
//   - LED single set (0x01): layer, red, green, blue, pattern
//   - Buzzer single set (0x02): tone, volume, pattern
//   - Status read (0x03): kind
//   - Pattern set / read (0x04 / 0x05): raw pass-through bytes
//   - Pattern execute (0x06): pattern number, run flag
//   - Config set (0x07): kind1, kind2, parameter
//   - Config read (0x08): kind1, kind2
//
// # Usage Example - Construction
//
//	layer, err := protocol.ParseLayer("two")
//	if err != nil {
//	    return err
//	}
//	frame, err := protocol.BuildLEDSet(layer, protocol.LEDOn, protocol.LEDOff, protocol.LEDOn, protocol.PatternOn)
//
// # Usage Example - Responses
//
//	frame, err := protocol.DecodeFrame(raw)
//	if err != nil {
//	    // towererr.MalformedResponse
//	}
//	fmt.Println(frame)
//
// # Thread Safety
//
// All functions are stateless and the enumeration tables are immutable, so
// everything here is safe for concurrent use.
package protocol
