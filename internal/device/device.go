// Package device describes the output devices a window can be attached to.
package device

// Device identifies one output the renderer can present to.
type Device struct {
	ID   int
	Name string
}

// Query enumerates available devices.
type Query interface {
	// Devices returns every available device in a stable order.
	Devices() []Device
	// Default returns the device the system would pick on its own.
	Default() Device
}

// Next returns the device following the one with ID after, wrapping around.
// An unknown ID yields the first device. ok is false when devs is empty.
func Next(devs []Device, after int) (d Device, ok bool) {
	if len(devs) == 0 {
		return Device{}, false
	}
	for i, dev := range devs {
		if dev.ID == after {
			return devs[(i+1)%len(devs)], true
		}
	}
	return devs[0], true
}
