package display

import (
	"fmt"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/robertof/go-beacon-radar/grid"
)

const DefaultBaudRate = 115200

// Serial drives an LED matrix board attached over a serial line. Each frame is sent as
// one line: 'F' followed by the five row bytes in hex, e.g. "F000e0a0e00\n". "C\n"
// clears the matrix.
type Serial struct {
	port serial.Port
}

func OpenSerial(portName string, baudRate int) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "display: failed to open serial port %q", portName)
	}

	return NewSerial(port), nil
}

func NewSerial(port serial.Port) *Serial {
	return &Serial{port: port}
}

func EncodeFrame(f grid.Frame) []byte {
	return fmt.Appendf(nil, "F%02x%02x%02x%02x%02x\n", f[0], f[1], f[2], f[3], f[4])
}

func (s *Serial) Show(f grid.Frame) error {
	return s.write(EncodeFrame(f))
}

func (s *Serial) Clear() error {
	return s.write([]byte("C\n"))
}

func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) write(b []byte) error {
	if _, err := s.port.Write(b); err != nil {
		return errors.Wrap(err, "display: serial write failed")
	}

	return nil
}
