// Package link implements the automation module's one-outstanding-message
// link-layer discipline on top of the wire framing: retries, the
// initialisation handshake and the steady-state refresh cycle.
package link

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/concord4/concord4/proto"
	"github.com/concord4/concord4/wire"
)

// State names where the link sits in its bootstrap/steady-state lifecycle.
type State uint8

const (
	// Idle: nothing outstanding, no refresh cycle started yet.
	Idle State = iota
	// Awaiting: a command was sent and its ACK/NAK has not arrived.
	Awaiting
	// Preparing: a full equipment list walk is in progress.
	Preparing
	// Ready: an equipment list walk has completed (EqptListDone seen).
	Ready
)

// String names the State.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Awaiting:
		return "awaiting"
	case Preparing:
		return "preparing"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

const (
	retryInterval   = 2 * time.Second
	maxRetries      = 5
	bootstrapWindow = 10 * time.Second

	// sendQueueCapacity bounds how many submitted commands may wait
	// behind the one currently outstanding.
	sendQueueCapacity = 64
)

// ErrRetriesExhausted signals that an outbound command was never
// acknowledged after the maximum number of retransmissions.
var ErrRetriesExhausted = errors.New("link: retries exhausted, giving up on outstanding command")

// ErrClosed signals use of a Link after its transport has been closed.
var ErrClosed = errors.New("link: closed")

// Outbound is a single-use command submission handle.
type Outbound struct {
	Command proto.Command
	Done    <-chan error
	err     chan<- error
}

// NewOutbound wraps cmd for submission on a Link's Send channel.
func NewOutbound(cmd proto.Command) *Outbound {
	ch := make(chan error, 1)
	return &Outbound{Command: cmd, Done: ch, err: ch}
}

// Link drives the one-outstanding-message state machine over a framed
// transport. Callers submit commands on Send and receive decoded records
// on In; Err carries record-level decode failures that aren't tied to a
// particular Outbound.
type Link struct {
	// In delivers every successfully decoded, ACKed inbound record.
	In <-chan proto.Record

	// Send queues commands for submission, one outstanding at a time.
	// A command waits behind any already queued ahead of it until the
	// prior one resolves (ACK, NAK, or no answer after the last
	// retry); once the queue is at capacity, submitting blocks.
	Send chan<- *Outbound

	// Err carries record decode failures, delivered only when a
	// receiver is waiting, and the read error that stops the link.
	// Checksum failures are answered with a NAK and not reported here.
	Err <-chan error

	// StateChanges reports transitions through Idle/Awaiting/
	// Preparing/Ready.
	StateChanges <-chan State
}

// Run drives the link-layer state machine until ctx is cancelled or rw
// returns a fatal I/O error. It owns rw for the duration of the call.
func Run(ctx context.Context, rw io.ReadWriter, logger *log.Logger) *Link {
	in := make(chan proto.Record)
	send := make(chan *Outbound, sendQueueCapacity)
	errc := make(chan error)
	states := make(chan State, 1)

	l := &Link{In: in, Send: send, Err: errc, StateChanges: states}

	go runLoop(ctx, rw, logger, in, send, errc, states)

	return l
}

type pendingSend struct {
	out       *Outbound
	sentAt    time.Time
	retries   int
	lastBytes []byte
}

func runLoop(ctx context.Context, rw io.ReadWriter, logger *log.Logger, in chan<- proto.Record, send <-chan *Outbound, errc chan<- error, states chan<- State) {
	defer close(in)
	defer close(errc)
	defer close(states)

	if logger == nil {
		logger = log.New(io.Discard)
	}

	state := Idle
	setState := func(s State) {
		if s == state {
			return
		}
		state = s
		select {
		case states <- s:
		default:
			// Drop the intermediate state rather than block; a
			// lagging observer only needs the latest value.
			select {
			case <-states:
			default:
			}
			states <- s
		}
	}

	var pending *pendingSend
	readBuf := make([]byte, 256)
	var dec wire.Decoder

	readResult := make(chan readOutcome, 1)
	go readPump(ctx, rw, readBuf, readResult)

	retry := time.NewTimer(0)
	if !retry.Stop() {
		<-retry.C
	}
	bootstrap := time.NewTimer(bootstrapWindow)
	lastActivity := time.Now()

	writeFrame := func(frame []byte) error {
		_, err := rw.Write(frame)
		return err
	}

	startSend := func(cmd proto.Command, out *Outbound) {
		frame := wire.EncodeData(cmd.Bytes())
		if err := writeFrame(frame); err != nil {
			if out != nil {
				out.err <- err
				close(out.err)
			}
			return
		}
		pending = &pendingSend{out: out, sentAt: time.Now(), lastBytes: frame}
		lastActivity = pending.sentAt
		// Only a send out of Idle represents a link-level state
		// change; sends issued while Preparing or Ready (the list
		// walk and its dynamic-data nudge) keep that state visible.
		if state == Idle {
			setState(Awaiting)
		}
		retry.Reset(retryInterval)
	}

	for {
		// The queue only drains into the link while nothing is
		// outstanding; disabling this case otherwise leaves submitted
		// commands waiting in send's buffer in FIFO order. Neither the
		// queue nor the retry timer is serviced while a read outcome is
		// buffered, so inbound handling wins ties.
		var sendCh <-chan *Outbound
		if pending == nil && len(readResult) == 0 {
			sendCh = send
		}
		var retryCh <-chan time.Time
		if len(readResult) == 0 {
			retryCh = retry.C
		}

		select {
		case <-ctx.Done():
			return

		case outcome, ok := <-readResult:
			if !ok {
				return
			}
			if outcome.err != nil {
				select {
				case errc <- outcome.err:
				case <-ctx.Done():
				}
				return
			}
			dec.Feed(outcome.data)
			go readPump(ctx, rw, readBuf, readResult)

			for {
				frame, err := dec.Next()
				switch {
				case err == wire.ErrNeedMore:
					goto drained
				case errors.Is(err, wire.ErrChecksum):
					logger.Warn("checksum mismatch, sending nak")
					_ = writeFrame(wire.EncodeNak())
					continue
				}

				switch frame.Kind {
				case wire.Ack, wire.Nak:
					// A NAK resolves the exchange just as an ACK does;
					// the rejection is logged, not retransmitted.
					if frame.Kind == wire.Nak && pending != nil {
						logger.Warn("command rejected by panel (nak)")
					}
					if pending != nil {
						if !retry.Stop() {
							select {
							case <-retry.C:
							default:
							}
						}
						if pending.out != nil {
							close(pending.out.err)
						}
						pending = nil
						if state == Awaiting {
							setState(Idle)
						}
					}

				case wire.Data:
					_ = writeFrame(wire.EncodeAck())
					lastActivity = time.Now()
					rec, err := proto.DecodeRecord(frame.Body)
					if err != nil {
						// Undecodable bodies are logged and discarded;
						// an undrained Err never stalls the link.
						logger.Warn("discarding undecodable record", "err", err)
						select {
						case errc <- err:
						default:
						}
						continue
					}

					switch rec.Kind {
					case proto.KindEqptListDone:
						if state != Ready {
							setState(Ready)
							if pending == nil {
								startSend(proto.DynamicDataRefresh(), nil)
							}
						}
					case proto.KindClearImage:
						setState(Preparing)
						if pending == nil {
							startSend(proto.List(proto.ListAllData), nil)
						}
					}

					select {
					case in <- rec:
					case <-ctx.Done():
						return
					}
				}
			}
		drained:
			continue

		case out := <-sendCh:
			startSend(out.Command, out)

		case <-retryCh:
			if pending == nil {
				continue
			}
			if pending.retries >= maxRetries {
				logger.Error("giving up after retries", "retries", pending.retries)
				if pending.out != nil {
					pending.out.err <- ErrRetriesExhausted
					close(pending.out.err)
				}
				pending = nil
				setState(Idle)
				continue
			}
			pending.retries++
			_ = writeFrame(pending.lastBytes)
			retry.Reset(retryInterval)

		case <-bootstrap.C:
			if state == Idle && pending == nil && time.Since(lastActivity) >= bootstrapWindow {
				logger.Debug("bootstrap fallback: requesting full equipment list")
				setState(Preparing)
				startSend(proto.List(proto.ListAllData), nil)
			}
			bootstrap.Reset(bootstrapWindow)
		}
	}
}

type readOutcome struct {
	data []byte
	err  error
}

func readPump(ctx context.Context, r io.Reader, buf []byte, out chan<- readOutcome) {
	n, err := r.Read(buf)
	if n > 0 {
		cp := make([]byte, n)
		copy(cp, buf[:n])
		select {
		case out <- readOutcome{data: cp}:
		case <-ctx.Done():
			return
		}
		if err == nil {
			return
		}
	}
	if err != nil {
		select {
		case out <- readOutcome{err: err}:
		case <-ctx.Done():
		}
	}
}
