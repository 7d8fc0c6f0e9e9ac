package graphics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"primitive-viewer/internal/device"
)

// Monitors enumerates connected displays as devices. Valid only while the window is open.
type Monitors struct{}

var _ device.Query = Monitors{}

func (Monitors) Devices() []device.Device {
	n := rl.GetMonitorCount()
	devs := make([]device.Device, 0, n)
	for i := range n {
		devs = append(devs, monitor(i))
	}
	return devs
}

// Default is the monitor currently showing the window.
func (Monitors) Default() device.Device {
	return monitor(rl.GetCurrentMonitor())
}

func monitor(i int) device.Device {
	name := rl.GetMonitorName(i)
	if name == "" {
		name = fmt.Sprintf("Display %d", i)
	}
	return device.Device{ID: i, Name: name}
}
