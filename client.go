// Package concord4 is a client for the Concord 4 series alarm panel's
// RS-232 automation module link. It drives the wire framing and link-layer
// state machine, decodes panel messages into the proto package's typed
// records, and keeps a running store.Store projection subscribers can
// read or watch.
package concord4

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/concord4/concord4/link"
	"github.com/concord4/concord4/proto"
	"github.com/concord4/concord4/serialport"
	"github.com/concord4/concord4/store"
)

// SerialPortClosed signals that the underlying serial connection closed,
// deliberately or otherwise, while an operation was pending.
var SerialPortClosed = errors.New("concord4: serial port closed")

// Armed signals that a command was refused because a partition is armed
// and the requested operation requires it to be disarmed first.
type Armed struct {
	Partition uint8
}

// Error implements the builtin.error interface.
func (a Armed) Error() string {
	return fmt.Sprintf("concord4: partition %d is armed", a.Partition)
}

// Unknown signals a response the client has no further context for, such
// as a record referencing a partition or zone the store hasn't learned
// about yet through the normal equipment-list walk.
type Unknown struct {
	What string
}

// Error implements the builtin.error interface.
func (u Unknown) Error() string {
	return fmt.Sprintf("concord4: unknown %s", u.What)
}

// Client is a connection to one panel's automation module.
type Client struct {
	conn   io.ReadWriteCloser
	link   *link.Link
	store  store.Store
	cancel context.CancelFunc
	log    *log.Logger

	done chan struct{}
}

// Options configures Open.
type Options struct {
	// Logger receives link-layer trace/debug/warn/error output. A
	// discarding logger is used when nil.
	Logger *log.Logger
}

// Open opens the serial connection at path and starts the link-layer
// state machine and state store in the background. Call Close to release
// the serial port and stop all background work.
func Open(path string, opts Options) (*Client, error) {
	conn, err := serialport.Open(path)
	if err != nil {
		return nil, fmt.Errorf("concord4: open %s: %w", path, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := link.Run(ctx, conn, logger)

	c := &Client{
		conn:   conn,
		link:   l,
		cancel: cancel,
		log:    logger,
		done:   make(chan struct{}),
	}
	go c.pump()
	return c, nil
}

func (c *Client) pump() {
	defer close(c.done)
	for rec := range c.link.In {
		c.store.Apply(rec)
	}
}

// Close stops the link layer and closes the serial port.
func (c *Client) Close() error {
	c.cancel()
	<-c.done
	return c.conn.Close()
}

// WaitReady blocks until the equipment list walk has completed at least
// once, or ctx is cancelled.
func (c *Client) WaitReady(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if c.store.Initialized() {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Snapshot returns a point-in-time copy of the projected panel state.
func (c *Client) Snapshot() store.Snapshot {
	return c.store.Snapshot()
}

// Subscribe returns a channel of state updates and a function to cancel
// the subscription.
func (c *Client) Subscribe() (<-chan store.Update, func()) {
	return c.store.Subscribe()
}

// send submits cmd and waits for the panel to answer it with an ACK or NAK
// (or for its retries to run out) before returning.
func (c *Client) send(ctx context.Context, cmd proto.Command) error {
	out := link.NewOutbound(cmd)
	select {
	case c.link.Send <- out:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err, ok := <-out.Done:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// requireDisarmed refuses to proceed if the named partition is currently
// armed, since arming or disarming keypresses behave differently (and can
// trip an alarm) when issued against the wrong state.
func (c *Client) requireDisarmed(partition uint8) error {
	if partition == 0 {
		partition = 1
	}
	p, ok := c.store.Partition(partition)
	if ok && p.ArmingLevel != proto.ArmingOff {
		return Armed{Partition: partition}
	}
	return nil
}

// Arm sends the keypress sequence that arms a partition per opts.
func (c *Client) Arm(ctx context.Context, opts proto.ArmOptions) error {
	if err := c.requireDisarmed(opts.Partition); err != nil {
		return err
	}
	return c.send(ctx, proto.Arm(opts))
}

// Disarm sends the keypress sequence that disarms a partition.
func (c *Client) Disarm(ctx context.Context, opts proto.DisarmOptions) error {
	return c.send(ctx, proto.Disarm(opts))
}

// ToggleChime sends the keypress sequence that toggles entry/exit chime.
func (c *Client) ToggleChime(ctx context.Context, partition uint8) error {
	if err := c.requireDisarmed(partition); err != nil {
		return err
	}
	return c.send(ctx, proto.ToggleChime(partition))
}

// Refresh requests a resend of one data class, or everything when req is
// proto.ListAllData.
func (c *Client) Refresh(ctx context.Context, req proto.ListRequest) error {
	return c.send(ctx, proto.List(req))
}
