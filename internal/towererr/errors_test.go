package towererr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{DeviceNotFound, "DeviceNotFound"},
		{TransportTimeout, "TransportTimeout"},
		{BuzzerStuckOn, "BuzzerStuckOn"},
		{Kind(99), "Kind(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(UnknownColorName, "unknown color name %q", "teal")
	if got, want := err.Error(), `UnknownColorName: unknown color name "teal"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("libusb: timeout")
	wrapped := Wrap(TransportTimeout, cause, "write to endpoint 0x02")
	if got, want := wrapped.Error(), "TransportTimeout: write to endpoint 0x02: libusb: timeout"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestKindOfAndIs(t *testing.T) {
	inner := New(DeviceNotFound, "no device")
	outer := Wrap(BuzzerStuckOn, inner, "re-open failed")
	wrapped := fmt.Errorf("buzzer: %w", outer)

	if got := KindOf(wrapped); got != BuzzerStuckOn {
		t.Errorf("KindOf() = %v, want BuzzerStuckOn", got)
	}
	if !Is(wrapped, BuzzerStuckOn) {
		t.Error("Is(BuzzerStuckOn) = false, want true")
	}
	if !Is(wrapped, DeviceNotFound) {
		t.Error("Is(DeviceNotFound) = false, want true for nested kind")
	}
	if Is(wrapped, TransportTimeout) {
		t.Error("Is(TransportTimeout) = true, want false")
	}
	if got := KindOf(errors.New("plain")); got != Unknown {
		t.Errorf("KindOf(plain) = %v, want Unknown", got)
	}
	if Is(nil, DeviceNotFound) {
		t.Error("Is(nil) should be false")
	}
}

func TestTroubleshooting(t *testing.T) {
	if tips := Troubleshooting(New(DeviceNotFound, "x")); len(tips) == 0 {
		t.Error("expected tips for DeviceNotFound")
	}
	if tips := Troubleshooting(errors.New("plain")); tips != nil {
		t.Errorf("expected no tips for plain error, got %v", tips)
	}
}
