package dispatch

import "time"

// Session is an exclusive, open connection to the tower.
type Session interface {
	Send(frame []byte) error
	Receive(maxLength int) ([]byte, error)
	Release()
}

// Opener acquires a new Session.
type Opener interface {
	Open() (Session, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func() (Session, error)

// Open calls f.
func (f OpenerFunc) Open() (Session, error) { return f() }

// Waiter blocks for the timed-buzzer interval. Waits are not cancellable.
type Waiter interface {
	Wait(d time.Duration)
}

// WaiterFunc adapts a function to Waiter.
type WaiterFunc func(time.Duration)

// Wait calls f.
func (f WaiterFunc) Wait(d time.Duration) { f(d) }

// SleepWaiter waits with time.Sleep.
var SleepWaiter Waiter = WaiterFunc(time.Sleep)
