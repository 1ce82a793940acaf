package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/gousb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xvgu/xvguctl/internal/towererr"
)

type fakeOut struct {
	written [][]byte
	n       int // bytes reported written; -1 means len(buf)
	err     error
}

func (f *fakeOut) WriteContext(ctx context.Context, buf []byte) (int, error) {
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("write without deadline")
	}
	f.written = append(f.written, append([]byte(nil), buf...))
	if f.err != nil {
		return 0, f.err
	}
	if f.n >= 0 {
		return f.n, nil
	}
	return len(buf), nil
}

type fakeIn struct {
	data []byte
	err  error
	asks []int
}

func (f *fakeIn) ReadContext(_ context.Context, buf []byte) (int, error) {
	f.asks = append(f.asks, len(buf))
	if f.err != nil {
		return 0, f.err
	}
	return copy(buf, f.data), nil
}

func testSession(out *fakeOut, in *fakeIn) *Session {
	cfg := DefaultConfig()
	cfg.WriteTimeout = 50 * time.Millisecond
	cfg.ReadTimeout = 50 * time.Millisecond
	return &Session{cfg: cfg, logger: zap.NewNop(), out: out, in: in, outAddr: 0x02, inAddr: 0x81}
}

func bulk(addr gousb.EndpointAddress) gousb.EndpointDesc {
	dir := gousb.EndpointDirectionOut
	if addr&0x80 != 0 {
		dir = gousb.EndpointDirectionIn
	}
	return gousb.EndpointDesc{
		Address:      addr,
		Number:       int(addr & 0x0F),
		Direction:    dir,
		TransferType: gousb.TransferTypeBulk,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, gousb.ID(0x16DE), cfg.VendorID)
	assert.Equal(t, gousb.ID(0x000C), cfg.ProductID)
	assert.Equal(t, 1, cfg.Interface)
	assert.Equal(t, 0, cfg.AltSetting)
	assert.Equal(t, time.Second, cfg.WriteTimeout)
	assert.Equal(t, time.Second, cfg.ReadTimeout)
}

func TestFindInterfaceSetting(t *testing.T) {
	desc := gousb.ConfigDesc{
		Number: 1,
		Interfaces: []gousb.InterfaceDesc{
			{Number: 0, AltSettings: []gousb.InterfaceSetting{{Number: 0, Alternate: 0}}},
			{Number: 1, AltSettings: []gousb.InterfaceSetting{
				{Number: 1, Alternate: 0, Class: gousb.ClassVendorSpec},
				{Number: 1, Alternate: 1},
			}},
		},
	}

	setting, ok := findInterfaceSetting(desc, 1, 0)
	require.True(t, ok)
	assert.Equal(t, gousb.ClassVendorSpec, setting.Class)

	_, ok = findInterfaceSetting(desc, 1, 2)
	assert.False(t, ok)
	_, ok = findInterfaceSetting(desc, 3, 0)
	assert.False(t, ok)
}

func TestSelectBulkEndpoints(t *testing.T) {
	t.Run("picks lowest bulk pair", func(t *testing.T) {
		interrupt := bulk(0x83)
		interrupt.TransferType = gousb.TransferTypeInterrupt
		setting := gousb.InterfaceSetting{
			Number: 1,
			Endpoints: map[gousb.EndpointAddress]gousb.EndpointDesc{
				0x04: bulk(0x04),
				0x02: bulk(0x02),
				0x83: interrupt,
				0x81: bulk(0x81),
			},
		}

		out, in, err := selectBulkEndpoints(setting)
		require.NoError(t, err)
		assert.Equal(t, gousb.EndpointAddress(0x02), out.Address)
		assert.Equal(t, gousb.EndpointAddress(0x81), in.Address)
	})

	t.Run("missing IN", func(t *testing.T) {
		setting := gousb.InterfaceSetting{
			Number:    1,
			Endpoints: map[gousb.EndpointAddress]gousb.EndpointDesc{0x02: bulk(0x02)},
		}
		_, _, err := selectBulkEndpoints(setting)
		require.Error(t, err)
		assert.True(t, towererr.Is(err, towererr.EndpointNotFound))
	})

	t.Run("missing OUT", func(t *testing.T) {
		setting := gousb.InterfaceSetting{
			Number:    1,
			Endpoints: map[gousb.EndpointAddress]gousb.EndpointDesc{0x81: bulk(0x81)},
		}
		_, _, err := selectBulkEndpoints(setting)
		assert.True(t, towererr.Is(err, towererr.EndpointNotFound))
	})
}

func TestSend(t *testing.T) {
	frame := []byte{0x1B, 0x03, 0x00, 0x01, 0x00, 0x04, 0x0D}

	t.Run("full write", func(t *testing.T) {
		out := &fakeOut{n: -1}
		s := testSession(out, &fakeIn{})
		require.NoError(t, s.Send(frame))
		require.Len(t, out.written, 1)
		assert.Equal(t, frame, out.written[0])
	})

	t.Run("short write", func(t *testing.T) {
		s := testSession(&fakeOut{n: 3}, &fakeIn{})
		err := s.Send(frame)
		assert.Equal(t, towererr.TransportError, towererr.KindOf(err))
	})

	t.Run("timeout", func(t *testing.T) {
		s := testSession(&fakeOut{err: gousb.ErrorTimeout}, &fakeIn{})
		err := s.Send(frame)
		assert.Equal(t, towererr.TransportTimeout, towererr.KindOf(err))
		assert.ErrorIs(t, err, gousb.ErrorTimeout)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		s := testSession(&fakeOut{err: context.DeadlineExceeded}, &fakeIn{})
		assert.Equal(t, towererr.TransportTimeout, towererr.KindOf(s.Send(frame)))
	})

	t.Run("pipe error", func(t *testing.T) {
		s := testSession(&fakeOut{err: gousb.ErrorPipe}, &fakeIn{})
		assert.Equal(t, towererr.TransportError, towererr.KindOf(s.Send(frame)))
	})

	t.Run("released session", func(t *testing.T) {
		s := testSession(&fakeOut{n: -1}, &fakeIn{})
		s.Release()
		assert.Equal(t, towererr.TransportError, towererr.KindOf(s.Send(frame)))
	})
}

func TestReceive(t *testing.T) {
	reply := []byte{0x1B, 0x03, 0x00, 0x01, 0x01, 0x05, 0x0D, 0x00, 0x00}

	in := &fakeIn{data: reply}
	s := testSession(&fakeOut{n: -1}, in)

	got, err := s.Receive(64)
	require.NoError(t, err)
	assert.Equal(t, reply, got, "bytes must come back unmodified, padding included")
	assert.Equal(t, []int{64}, in.asks)

	s = testSession(&fakeOut{n: -1}, &fakeIn{err: gousb.TransferTimedOut})
	_, err = s.Receive(64)
	assert.Equal(t, towererr.TransportTimeout, towererr.KindOf(err))

	s = testSession(&fakeOut{n: -1}, &fakeIn{err: gousb.ErrorNoDevice})
	_, err = s.Receive(64)
	assert.Equal(t, towererr.TransportError, towererr.KindOf(err))
}

func TestReleaseOrderAndIdempotence(t *testing.T) {
	var order []string
	s := testSession(&fakeOut{n: -1}, &fakeIn{})
	for _, name := range []string{"context", "device", "config", "interface"} {
		name := name
		s.push(name, func() error {
			order = append(order, name)
			if name == "device" {
				return errors.New("busy")
			}
			return nil
		})
	}

	s.Release()
	assert.Equal(t, []string{"interface", "config", "device", "context"}, order)

	s.Release()
	assert.Len(t, order, 4, "second release must not close anything again")
}

func TestReleasePartialAndNil(t *testing.T) {
	var nilSession *Session
	assert.NotPanics(t, nilSession.Release)

	zero := &Session{}
	assert.NotPanics(t, zero.Release)
	assert.NotPanics(t, zero.Release)

	closed := false
	partial := &Session{}
	partial.push("context", func() error { closed = true; return nil })
	partial.push("device", func() error { panic("handle already gone") })
	assert.NotPanics(t, partial.Release)
	assert.True(t, closed, "earlier resources are still closed after a failing one")
}
