// Package serialport opens the RS-232 connection to a Concord 4
// automation module at the fixed line settings the panel requires.
package serialport

import (
	"io"
	"time"

	"github.com/tarm/serial"
)

const (
	baudRate = 9600
	dataBits = 8
	// The panel's automation module link is one of the few common RS-232
	// peripherals that actually uses odd parity rather than none.
	parity = serial.ParityOdd
)

// Open opens path at the panel's fixed line settings and clears any bytes
// already buffered by the OS driver, so a prior session's unread frames
// don't get parsed as the start of a new one.
func Open(path string) (io.ReadWriteCloser, error) {
	cfg := &serial.Config{
		Name:        path,
		Baud:        baudRate,
		Size:        dataBits,
		Parity:      parity,
		StopBits:    serial.Stop1,
		ReadTimeout: 100 * time.Millisecond,
	}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, err
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}
