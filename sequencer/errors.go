package sequencer

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// DeviceUnavailable tags errors raised when the sound device cannot be opened.
// A Playback is never returned alongside such an error.
const DeviceUnavailable ftag.Kind = "DEVICE_UNAVAILABLE"

func invalidArgument(msg string) error {
	return fault.New(msg, ftag.With(ftag.InvalidArgument))
}

func deviceUnavailable(err error, msg string) error {
	if err == nil {
		return fault.New(msg, ftag.With(DeviceUnavailable))
	}
	return fault.Wrap(err, fmsg.With(msg), ftag.With(DeviceUnavailable))
}

// deviceFailure wraps a transient error reported by the device during a command
func deviceFailure(err error, msg string) error {
	return fault.Wrap(err, fmsg.With(msg), ftag.With(ftag.Internal))
}

// IsInvalidArgument reports whether err was caused by a rejected argument
func IsInvalidArgument(err error) bool {
	return err != nil && ftag.Get(err) == ftag.InvalidArgument
}

// IsDeviceUnavailable reports whether err means the device could not be opened
func IsDeviceUnavailable(err error) bool {
	return err != nil && ftag.Get(err) == DeviceUnavailable
}
