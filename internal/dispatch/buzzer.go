package dispatch

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xvgu/xvguctl/internal/mapper"
	"github.com/xvgu/xvguctl/internal/protocol"
	"github.com/xvgu/xvguctl/internal/towererr"
)

const (
	// DefaultReopenAttempts is how many times the device is reopened after
	// a timed wait before giving up
	DefaultReopenAttempts = 1

	// DefaultReopenDelay is the pause between reopen attempts
	DefaultReopenDelay = 500 * time.Millisecond
)

// BuzzerOptions tune the timed-buzzer sequence.
type BuzzerOptions struct {
	// Waiter blocks for the buzz duration (default SleepWaiter)
	Waiter Waiter

	// ReopenAttempts is the number of tries to reacquire the device for OFF
	ReopenAttempts int

	// ReopenDelay is the pause between failed reopen attempts
	ReopenDelay time.Duration

	// OnTransition, if set, is called after every state change
	OnTransition func(Transition)
}

// DefaultBuzzerOptions returns the options used by New.
func DefaultBuzzerOptions() BuzzerOptions {
	return BuzzerOptions{
		Waiter:         SleepWaiter,
		ReopenAttempts: DefaultReopenAttempts,
		ReopenDelay:    DefaultReopenDelay,
	}
}

// BuzzerState is a step of a buzzer run.
type BuzzerState int

const (
	// StateIdle: no session held, nothing sent.
	StateIdle BuzzerState = iota
	// StateArmedOn: first session held, ON frame being sent.
	StateArmedOn
	// StateWaiting: ON sent, no session held.
	StateWaiting
	// StateArmedOff: second session held, OFF frame being sent.
	StateArmedOff
	// StateDone: terminal, all sessions released.
	StateDone
	// StateStuckOn: terminal, the buzzer may still be sounding.
	StateStuckOn
	// StateFailed: terminal, a single-step run could not send its frame.
	StateFailed
)

var stateNames = [...]string{"Idle", "ArmedOn", "Waiting", "ArmedOff", "Done", "StuckOn", "Failed"}

func (s BuzzerState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("BuzzerState(%d)", int(s))
}

// Terminal reports whether no further transitions follow.
func (s BuzzerState) Terminal() bool {
	return s == StateDone || s == StateStuckOn || s == StateFailed
}

// BuzzerSettings are the resolved ON parameters.
type BuzzerSettings struct {
	Tone    protocol.BuzzerTone
	Volume  protocol.BuzzerVolume
	Pattern protocol.BuzzerPattern
}

// Transition is reported to BuzzerOptions.OnTransition.
type Transition struct {
	From     BuzzerState
	To       BuzzerState
	Settings BuzzerSettings
}

// BuzzerRequest switches the buzzer on, off, or on for a duration.
type BuzzerRequest struct {
	Tone     *string       // free-form; nil or empty means HI
	Volume   string        // empty means MID
	Pattern  string        // empty means PTN_2
	Duration time.Duration // > 0 switches the buzzer off afterwards
	Off      bool          // ignore everything else and switch off
}

// BuzzerResult describes a finished buzzer run.
type BuzzerResult struct {
	Settings BuzzerSettings
	Off      bool
	Timed    bool
	Final    BuzzerState
}

func resolveBuzzer(req BuzzerRequest) (BuzzerSettings, error) {
	settings := BuzzerSettings{Tone: mapper.CanonTone(req.Tone)}

	volume := req.Volume
	if volume == "" {
		volume = protocol.VolumeMid.String()
	}
	v, err := protocol.ParseBuzzerVolume(volume)
	if err != nil {
		return settings, err
	}
	settings.Volume = v

	pattern := req.Pattern
	if pattern == "" {
		pattern = protocol.BuzzerPattern2.String()
	}
	p, err := protocol.ParseBuzzerPattern(pattern)
	if err != nil {
		return settings, err
	}
	settings.Pattern = p
	return settings, nil
}

// Buzzer runs a buzzer request. A timed request releases the device for the
// duration of the wait and reopens it to send OFF.
func (d *Dispatcher) Buzzer(req BuzzerRequest) (*BuzzerResult, error) {
	run := &buzzerRun{d: d, state: StateIdle}

	if req.Off {
		run.settings = BuzzerSettings{Tone: protocol.ToneLow, Volume: protocol.VolumeSmall, Pattern: protocol.BuzzerOff}
		err := run.off()
		return run.result(true, false), err
	}

	settings, err := resolveBuzzer(req)
	if err != nil {
		return nil, err
	}
	run.settings = settings
	onFrame, err := protocol.BuildBuzzerSet(settings.Tone, settings.Volume, settings.Pattern)
	if err != nil {
		return nil, err
	}

	timed := req.Duration > 0
	if err := run.on(onFrame, timed); err != nil {
		return run.result(false, timed), err
	}
	if timed {
		err = run.waitAndOff(req.Duration)
	}
	return run.result(false, timed), err
}

// buzzerRun holds the state of one Buzzer call.
type buzzerRun struct {
	d        *Dispatcher
	state    BuzzerState
	settings BuzzerSettings
}

func (r *buzzerRun) transition(to BuzzerState) {
	from := r.state
	r.state = to
	r.d.logger.Debug("Buzzer transition", zap.Stringer("from", from), zap.Stringer("to", to))
	if hook := r.d.BuzzerOpts.OnTransition; hook != nil {
		hook(Transition{From: from, To: to, Settings: r.settings})
	}
}

func (r *buzzerRun) result(off, timed bool) *BuzzerResult {
	return &BuzzerResult{Settings: r.settings, Off: off, Timed: timed, Final: r.state}
}

// on sends the ON frame on a fresh session. For a timed run the session is
// released before entering Waiting.
func (r *buzzerRun) on(frame []byte, timed bool) error {
	s, err := r.d.opener.Open()
	if err != nil {
		return err
	}
	if s == nil {
		return errNotOpen
	}
	r.transition(StateArmedOn)

	err = s.Send(frame)
	s.Release()
	if err != nil {
		r.transition(StateFailed)
		return err
	}

	if timed {
		r.transition(StateWaiting)
	} else {
		r.transition(StateDone)
	}
	return nil
}

func (r *buzzerRun) off() error {
	s, err := r.d.opener.Open()
	if err != nil {
		return err
	}
	if s == nil {
		return errNotOpen
	}
	r.transition(StateArmedOff)

	err = s.Send(protocol.BuildBuzzerOff())
	s.Release()
	if err != nil {
		r.transition(StateFailed)
		return err
	}
	r.transition(StateDone)
	return nil
}

func (r *buzzerRun) waitAndOff(duration time.Duration) error {
	waiter := r.d.BuzzerOpts.Waiter
	if waiter == nil {
		waiter = SleepWaiter
	}
	waiter.Wait(duration)

	s, err := r.d.reopen()
	if err != nil {
		r.transition(StateStuckOn)
		return towererr.Wrap(towererr.BuzzerStuckOn, err, "cannot reopen device to switch buzzer off")
	}
	r.transition(StateArmedOff)

	err = s.Send(protocol.BuildBuzzerOff())
	s.Release()
	if err != nil {
		r.transition(StateStuckOn)
		return towererr.Wrap(towererr.BuzzerStuckOn, err, "cannot send buzzer OFF")
	}
	r.transition(StateDone)
	return nil
}

// reopen acquires a session, retrying per BuzzerOptions.
func (d *Dispatcher) reopen() (Session, error) {
	attempts := d.BuzzerOpts.ReopenAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && d.BuzzerOpts.ReopenDelay > 0 {
			time.Sleep(d.BuzzerOpts.ReopenDelay)
		}

		s, err := d.opener.Open()
		if err == nil && s != nil {
			return s, nil
		}
		if err == nil {
			err = errNotOpen
		}
		lastErr = err
		d.logger.Warn("Reopen failed",
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
	}
	return nil, lastErr
}
