// Package circuit implements circuit aggregation and regulatory capacity
// validation: exact electrical totals over member devices, hard and
// spare-adjusted limit checks, utilization and limiting-factor assessment,
// and voltage-drop calculation.
package circuit

import (
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
)

// Branch is an ordered set of devices assigned to one circuit run,
// together with its cable characteristics.  Totals are never cached on the
// struct; they are recomputed as exact sums over the members on every call
// so a branch can never report a total inconsistent with its devices.
type Branch struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// Devices are the circuit members in wiring order.
	Devices []device.Snapshot `json:"devices"`

	// CableLengthFt is the one-way cable length in feet.
	CableLengthFt float64 `json:"cable_length_ft"`

	// Gauge is the wire gauge of the circuit run.
	Gauge WireGauge `json:"gauge"`
}

// TotalAmps returns the exact sum of member alarm currents.
func (b Branch) TotalAmps() float64 {
	total := 0.0
	for _, d := range b.Devices {
		total += d.Amps
	}
	return total
}

// TotalWatts returns the exact sum of member wattages.
func (b Branch) TotalWatts() float64 {
	total := 0.0
	for _, d := range b.Devices {
		total += d.Watts
	}
	return total
}

// TotalUnitLoads returns the exact sum of member unit loads.
func (b Branch) TotalUnitLoads() int {
	total := 0
	for _, d := range b.Devices {
		total += d.UnitLoads
	}
	return total
}

// TotalStandbyAmps returns the exact sum of member supervisory currents.
func (b Branch) TotalStandbyAmps() float64 {
	total := 0.0
	for _, d := range b.Devices {
		total += d.StandbyAmps
	}
	return total
}

// WithDevice derives a new Branch with the device appended.  The receiver's
// device slice is not shared with the result.
func (b Branch) WithDevice(d device.Snapshot) Branch {
	devices := make([]device.Snapshot, 0, len(b.Devices)+1)
	devices = append(devices, b.Devices...)
	devices = append(devices, d)
	out := b
	out.Devices = devices
	return out
}
