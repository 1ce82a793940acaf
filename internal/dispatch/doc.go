// Package dispatch turns command requests into frames and runs them against
// a device session.
//
// Every operation normalises and validates its input first, so a bad layer
// name or colour never touches the USB bus. Only then is a session opened,
// used and released, on every exit path.
//
// The timed buzzer is the one multi-step operation. It switches the buzzer
// on, gives the device back while it waits, then reacquires it to switch the
// buzzer off:
//
//	Idle -> ArmedOn -> Waiting -> ArmedOff -> Done
//	                              \-> StuckOn
//
// If the device cannot be reacquired, or the OFF frame cannot be sent, the
// run ends in StuckOn and the error kind is towererr.BuzzerStuckOn. A plain
// on or off whose frame cannot be sent ends in Failed instead.
package dispatch
