package midi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrScanTimeout is returned when the driver does not answer a port scan.
// CoreMIDI is known to hang; the usual fix is restarting midiserver.
var ErrScanTimeout = errors.New("midi: port scan timed out")

// ErrNoPorts is returned when no output port is available
var ErrNoPorts = errors.New("midi: no output ports")

// ScanTimeout bounds how long a port scan may block
var ScanTimeout = 3 * time.Second

// Sender writes one message to an opened output port
type Sender func(msg gomidi.Message) error

func scanOut() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(ScanTimeout):
		return nil, ErrScanTimeout
	}
}

// OutPorts returns the names of all MIDI output ports
func OutPorts() ([]string, error) {
	outs, err := scanOut()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names, nil
}

// OpenOut opens the output port whose name contains name (case-insensitive).
// An empty name opens the first port.
func OpenOut(name string) (Sender, string, error) {
	outs, err := scanOut()
	if err != nil {
		return nil, "", err
	}
	if len(outs) == 0 {
		return nil, "", ErrNoPorts
	}

	port := outs[0]
	if name != "" {
		port = nil
		want := strings.ToLower(name)
		for _, out := range outs {
			if strings.Contains(strings.ToLower(out.String()), want) {
				port = out
				break
			}
		}
		if port == nil {
			return nil, "", fmt.Errorf("midi: output port %q not found", name)
		}
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, "", fmt.Errorf("open output %s: %w", port.String(), err)
	}
	return send, port.String(), nil
}

// Close shuts down the registered MIDI driver
func Close() {
	gomidi.CloseDriver()
}
