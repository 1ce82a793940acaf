// Package device owns the USB session with the signal tower.
//
// A Session is opened against a fixed vendor/product ID, claims the control
// interface (number 1, alternate setting 0) and resolves its bulk OUT and
// bulk IN endpoints. Frames are written to the OUT endpoint; responses are
// read from the IN endpoint as opaque buffers of at most 64 bytes.
//
// # Lifecycle
//
//	s, err := device.Open(device.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	defer s.Release()
//
//	if err := s.Send(frame); err != nil {
//	    return err
//	}
//
// Release never fails. It closes whatever Open managed to acquire, in
// reverse order, and may be called any number of times, including on a nil
// Session. Open calls it itself when it fails part way through.
//
// # Thread Safety
//
// A Session is used by one command sequence at a time and is not safe for
// concurrent use.
package device
