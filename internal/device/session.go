package device

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/gousb"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/xvgu/xvguctl/internal/logging"
	"github.com/xvgu/xvguctl/internal/towererr"
)

// Config selects the device and its transfer timeouts.
type Config struct {
	VendorID     gousb.ID
	ProductID    gousb.ID
	Interface    int
	AltSetting   int
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
}

// DefaultConfig returns the identifiers and timeouts of the stock tower.
func DefaultConfig() Config {
	return Config{
		VendorID:     0x16DE,
		ProductID:    0x000C,
		Interface:    1,
		AltSetting:   0,
		WriteTimeout: time.Second,
		ReadTimeout:  time.Second,
	}
}

type endpointWriter interface {
	WriteContext(ctx context.Context, buf []byte) (int, error)
}

type endpointReader interface {
	ReadContext(ctx context.Context, buf []byte) (int, error)
}

// releaser undoes one acquisition step.
type releaser struct {
	name  string
	close func() error
}

// Session is an open, claimed control interface with its bulk endpoints.
type Session struct {
	cfg       Config
	logger    *zap.Logger
	out       endpointWriter
	in        endpointReader
	outAddr   gousb.EndpointAddress
	inAddr    gousb.EndpointAddress
	releasers []releaser // acquisition order; released in reverse
}

// Open locates the tower, claims its control interface and resolves the
// bulk endpoints. On failure everything acquired so far is released.
func Open(cfg Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	s := &Session{
		cfg: cfg,
		logger: logger.With(
			zap.String("vendor_id", cfg.VendorID.String()),
			zap.String("product_id", cfg.ProductID.String()),
			zap.Int("interface", cfg.Interface),
		),
	}

	if err := s.open(); err != nil {
		s.Release()
		return nil, err
	}

	s.logger.Debug("Session opened",
		zap.String("out_endpoint", s.outAddr.String()),
		zap.String("in_endpoint", s.inAddr.String()),
	)
	return s, nil
}

func (s *Session) open() error {
	usbCtx := gousb.NewContext()
	s.push("context", usbCtx.Close)

	dev, err := usbCtx.OpenDeviceWithVIDPID(s.cfg.VendorID, s.cfg.ProductID)
	if dev == nil {
		if err != nil {
			return towererr.Wrap(towererr.DeviceNotFound, err,
				"cannot open tower %s:%s", s.cfg.VendorID, s.cfg.ProductID)
		}
		return towererr.New(towererr.DeviceNotFound,
			"no USB device %s:%s", s.cfg.VendorID, s.cfg.ProductID)
	}
	s.push("device", dev.Close)

	if err := dev.SetAutoDetach(true); err != nil {
		s.logger.Debug("Kernel driver auto-detach unavailable", zap.Error(err))
	}

	cfgNum, err := dev.ActiveConfigNum()
	if err != nil {
		return towererr.Wrap(towererr.InterfaceNotFound, err, "cannot read active configuration")
	}
	cfgDesc, ok := dev.Desc.Configs[cfgNum]
	if !ok {
		return towererr.New(towererr.InterfaceNotFound, "active configuration %d has no descriptor", cfgNum)
	}
	if _, ok := findInterfaceSetting(cfgDesc, s.cfg.Interface, s.cfg.AltSetting); !ok {
		return towererr.New(towererr.InterfaceNotFound,
			"control interface %d alt %d not found in configuration %d",
			s.cfg.Interface, s.cfg.AltSetting, cfgNum)
	}

	usbCfg, err := dev.Config(cfgNum)
	if err != nil {
		return towererr.Wrap(towererr.InterfaceNotFound, err, "cannot set configuration %d", cfgNum)
	}
	s.push("config", usbCfg.Close)

	intf, err := usbCfg.Interface(s.cfg.Interface, s.cfg.AltSetting)
	if err != nil {
		return towererr.Wrap(towererr.InterfaceNotFound, err,
			"cannot claim interface %d alt %d", s.cfg.Interface, s.cfg.AltSetting)
	}
	s.push("interface", func() error { intf.Close(); return nil })

	outDesc, inDesc, err := selectBulkEndpoints(intf.Setting)
	if err != nil {
		return err
	}

	out, err := intf.OutEndpoint(outDesc.Number)
	if err != nil {
		return towererr.Wrap(towererr.EndpointNotFound, err, "cannot open bulk OUT endpoint %s", outDesc.Address)
	}
	in, err := intf.InEndpoint(inDesc.Number)
	if err != nil {
		return towererr.Wrap(towererr.EndpointNotFound, err, "cannot open bulk IN endpoint %s", inDesc.Address)
	}

	s.out, s.outAddr = out, outDesc.Address
	s.in, s.inAddr = in, inDesc.Address
	return nil
}

func (s *Session) log() *zap.Logger {
	if s.logger == nil {
		return logging.GetLogger()
	}
	return s.logger
}

func (s *Session) push(name string, close func() error) {
	s.releasers = append(s.releasers, releaser{name: name, close: close})
}

// findInterfaceSetting locates interface num, alternate setting alt.
func findInterfaceSetting(desc gousb.ConfigDesc, num, alt int) (gousb.InterfaceSetting, bool) {
	for _, intf := range desc.Interfaces {
		if intf.Number != num {
			continue
		}
		for _, setting := range intf.AltSettings {
			if setting.Alternate == alt {
				return setting, true
			}
		}
	}
	return gousb.InterfaceSetting{}, false
}

// selectBulkEndpoints picks the lowest-addressed bulk OUT and bulk IN
// endpoints of setting.
func selectBulkEndpoints(setting gousb.InterfaceSetting) (out, in gousb.EndpointDesc, err error) {
	addrs := make([]int, 0, len(setting.Endpoints))
	for addr := range setting.Endpoints {
		addrs = append(addrs, int(addr))
	}
	sort.Ints(addrs)

	var haveOut, haveIn bool
	for _, addr := range addrs {
		ep := setting.Endpoints[gousb.EndpointAddress(addr)]
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		switch {
		case ep.Direction == gousb.EndpointDirectionOut && !haveOut:
			out, haveOut = ep, true
		case ep.Direction == gousb.EndpointDirectionIn && !haveIn:
			in, haveIn = ep, true
		}
	}

	switch {
	case !haveOut:
		return out, in, towererr.New(towererr.EndpointNotFound,
			"interface %d has no bulk OUT endpoint", setting.Number)
	case !haveIn:
		return out, in, towererr.New(towererr.EndpointNotFound,
			"interface %d has no bulk IN endpoint", setting.Number)
	}
	return out, in, nil
}

// Send writes frame to the bulk OUT endpoint within the write timeout.
func (s *Session) Send(frame []byte) error {
	if s == nil || s.out == nil {
		return towererr.New(towererr.TransportError, "session is not open")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()

	logging.LogFrame(s.log(), "out", frame)
	n, err := s.out.WriteContext(ctx, frame)
	if err != nil {
		return classifyTransferError(ctx, err, "write %d bytes to %s", len(frame), s.outAddr)
	}
	if n != len(frame) {
		return towererr.New(towererr.TransportError,
			"incomplete write to %s: wrote %d of %d bytes", s.outAddr, n, len(frame))
	}
	return nil
}

// Receive reads up to maxLength bytes from the bulk IN endpoint within the
// read timeout. The bytes are returned unmodified.
func (s *Session) Receive(maxLength int) ([]byte, error) {
	if s == nil || s.in == nil {
		return nil, towererr.New(towererr.TransportError, "session is not open")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ReadTimeout)
	defer cancel()

	buf := make([]byte, maxLength)
	n, err := s.in.ReadContext(ctx, buf)
	if err != nil {
		return nil, classifyTransferError(ctx, err, "read from %s", s.inAddr)
	}
	logging.LogFrame(s.log(), "in", buf[:n])
	return buf[:n], nil
}

func classifyTransferError(ctx context.Context, err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, gousb.TransferTimedOut) ||
		errors.Is(err, gousb.ErrorTimeout) {
		return towererr.Wrap(towererr.TransportTimeout, err, "%s", msg)
	}
	return towererr.Wrap(towererr.TransportError, err, "%s", msg)
}

// Release closes the interface, configuration, device and USB context, in
// that order. Failures are logged and swallowed.
func (s *Session) Release() {
	if s == nil {
		return
	}

	var errs error
	for i := len(s.releasers) - 1; i >= 0; i-- {
		r := s.releasers[i]
		if err := safeClose(r); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.name, err))
		}
	}
	s.releasers = nil
	s.out, s.in = nil, nil

	if errs != nil {
		s.log().Debug("Release finished with errors", zap.Errors("errors", multierr.Errors(errs)))
	}
}

func safeClose(r releaser) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.close()
}
