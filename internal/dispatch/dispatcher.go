package dispatch

import (
	"encoding/hex"

	"go.uber.org/zap"

	"github.com/xvgu/xvguctl/internal/logging"
	"github.com/xvgu/xvguctl/internal/mapper"
	"github.com/xvgu/xvguctl/internal/protocol"
	"github.com/xvgu/xvguctl/internal/towererr"
)

// ValidationMode controls how read responses are checked.
type ValidationMode string

const (
	// ValidationStrict decodes the response frame and rejects malformed ones.
	ValidationStrict ValidationMode = "strict"
	// ValidationPassthrough returns the raw bytes unchecked.
	ValidationPassthrough ValidationMode = "passthrough"
)

// Response is the result of a read-type command.
type Response struct {
	// Raw is exactly what the device returned, padding included.
	Raw []byte

	// Frame is the decoded frame; nil in passthrough mode.
	Frame *protocol.Frame
}

// Hex returns Raw as lowercase hex.
func (r *Response) Hex() string {
	return hex.EncodeToString(r.Raw)
}

// Dispatcher runs commands against sessions from an Opener.
type Dispatcher struct {
	opener Opener
	logger *zap.Logger

	// Validation selects how read responses are checked (default strict)
	Validation ValidationMode

	// BuzzerOpts controls the timed-buzzer sequence
	BuzzerOpts BuzzerOptions
}

// New creates a dispatcher with default options.
func New(opener Opener, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Dispatcher{
		opener:     opener,
		logger:     logger,
		Validation: ValidationStrict,
		BuzzerOpts: DefaultBuzzerOptions(),
	}
}

// withSession opens a session, runs fn and releases the session on every
// exit path.
func (d *Dispatcher) withSession(fn func(Session) error) error {
	s, err := d.opener.Open()
	if err != nil {
		return err
	}
	if s == nil {
		return errNotOpen
	}
	defer s.Release()
	return fn(s)
}

func (d *Dispatcher) send(frame []byte) error {
	return d.withSession(func(s Session) error {
		return s.Send(frame)
	})
}

// exchange sends frame and reads one response.
func (d *Dispatcher) exchange(frame []byte) (*Response, error) {
	var resp *Response
	err := d.withSession(func(s Session) error {
		if err := s.Send(frame); err != nil {
			return err
		}
		raw, err := s.Receive(protocol.ResponseSize)
		if err != nil {
			return err
		}
		resp = &Response{Raw: raw}
		if d.Validation == ValidationPassthrough {
			return nil
		}
		resp.Frame, err = protocol.DecodeFrame(raw)
		if err != nil {
			d.logger.Debug("Rejected response", zap.String("raw", hex.EncodeToString(raw)), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// LEDRequest sets one layer to a colour and pattern.
type LEDRequest struct {
	Layer   string
	Color   mapper.ColorSpec
	Pattern string // empty means ON
}

// SetLED sets one layer. Colours are quantised per channel, so distinct
// colours may produce identical frames.
func (d *Dispatcher) SetLED(req LEDRequest) error {
	layer, err := protocol.ParseLayer(req.Layer)
	if err != nil {
		return err
	}
	patternName := req.Pattern
	if patternName == "" {
		patternName = protocol.PatternOn.String()
	}
	pattern, err := protocol.ParsePattern(patternName)
	if err != nil {
		return err
	}
	rgb, err := mapper.ResolveColor(req.Color)
	if err != nil {
		return err
	}
	r, g, b := mapper.ColorToLEDStates(rgb)
	frame, err := protocol.BuildLEDSet(layer, r, g, b, pattern)
	if err != nil {
		return err
	}

	d.logger.Debug("LED set",
		zap.Stringer("layer", layer),
		zap.Stringer("color", req.Color),
		zap.String("states", r.String()+"/"+g.String()+"/"+b.String()),
		zap.Stringer("pattern", pattern),
	)
	return d.send(frame)
}

// ReadStatus requests the status of an LED layer or the buzzer.
func (d *Dispatcher) ReadStatus(kind string) (*Response, error) {
	k, err := protocol.ParseStatusKind(kind)
	if err != nil {
		return nil, err
	}
	frame, err := protocol.BuildStatusRead(k)
	if err != nil {
		return nil, err
	}
	return d.exchange(frame)
}

// ConfigSet writes one configuration item. The kinds are passed through
// unchecked.
func (d *Dispatcher) ConfigSet(kind1, kind2, param byte) error {
	frame, err := protocol.BuildConfigSet(kind1, kind2, param)
	if err != nil {
		return err
	}
	return d.send(frame)
}

// ConfigRead reads one configuration item.
func (d *Dispatcher) ConfigRead(kind1, kind2 byte) (*Response, error) {
	frame, err := protocol.BuildConfigRead(kind1, kind2)
	if err != nil {
		return nil, err
	}
	return d.exchange(frame)
}

// PatternExecute starts or stops a stored pattern.
func (d *Dispatcher) PatternExecute(patternNo, runFlag byte) error {
	frame, err := protocol.BuildPatternExecute(patternNo, runFlag)
	if err != nil {
		return err
	}
	return d.send(frame)
}

// PatternSet uploads a raw pattern definition.
func (d *Dispatcher) PatternSet(raw []byte) error {
	frame, err := protocol.BuildPatternSet(raw)
	if err != nil {
		return err
	}
	return d.send(frame)
}

// PatternRead reads back a pattern definition. The request payload is raw.
func (d *Dispatcher) PatternRead(raw []byte) (*Response, error) {
	frame, err := protocol.BuildPatternRead(raw)
	if err != nil {
		return nil, err
	}
	return d.exchange(frame)
}

// errNotOpen guards against an Opener that returns neither session nor error.
var errNotOpen = towererr.New(towererr.DeviceNotFound, "opener returned no session")
