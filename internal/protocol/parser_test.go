package protocol

import (
	"bytes"
	"testing"

	"github.com/xvgu/xvguctl/internal/towererr"
)

func TestDecodeFrame(t *testing.T) {
	valid, _ := BuildStatusRead(StatusLED2)

	padded := make([]byte, ResponseSize)
	copy(padded, valid)

	badChecksum := append([]byte(nil), valid...)
	badChecksum[len(badChecksum)-2] ^= 0xFF

	badTerminator := append([]byte(nil), valid...)
	badTerminator[len(badTerminator)-1] = 0x0A

	badStart := append([]byte(nil), valid...)
	badStart[0] = 0x1C

	truncated := []byte{0x1B, 0x03, 0x00, 0x10, 0x00, 0x00}

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"valid", valid, false},
		{"valid with padding", padded, false},
		{"too short", []byte{0x1B, 0x03}, true},
		{"bad start", badStart, true},
		{"bad checksum", badChecksum, true},
		{"bad terminator", badTerminator, true},
		{"truncated payload", truncated, true},
		{"all zero buffer", make([]byte, ResponseSize), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := DecodeFrame(tt.data)
			if tt.wantErr {
				if !towererr.Is(err, towererr.MalformedResponse) {
					t.Errorf("DecodeFrame() error = %v, want MalformedResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if !bytes.Equal(frame.Bytes(), valid) {
				t.Errorf("Bytes() = % X, want % X", frame.Bytes(), valid)
			}
			if frame.Length != 1 || frame.Payload[0] != byte(StatusLED2) {
				t.Errorf("decoded = %s", frame)
			}
		})
	}
}

func TestFrameString(t *testing.T) {
	frame, err := DecodeFrame(BuildBuzzerOff())
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	want := "Frame{cmd=BuzzerSet, len=3, payload=010200, checksum=0x08}"
	if got := frame.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
