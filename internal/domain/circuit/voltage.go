package circuit

import (
	"github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

// WireGauge identifies the conductor size of a circuit run.
type WireGauge string

const (
	Gauge12AWG WireGauge = "12AWG"
	Gauge14AWG WireGauge = "14AWG"
	Gauge16AWG WireGauge = "16AWG"
	Gauge18AWG WireGauge = "18AWG"
)

// gaugeResistance is the conductor resistance in ohms per 1000 feet of
// single wire at 25 C (stranded copper).
var gaugeResistance = map[WireGauge]float64{
	Gauge12AWG: 1.588,
	Gauge14AWG: 2.525,
	Gauge16AWG: 4.016,
	Gauge18AWG: 6.385,
}

// Resistance returns the per-1000-ft resistance of the gauge.
func (g WireGauge) Resistance() (float64, error) {
	r, ok := gaugeResistance[g]
	if !ok {
		return 0, errors.New(errors.ErrCodeCircuitEmptyGauge,
			"unknown wire gauge "+string(g))
	}
	return r, nil
}

// VoltageDrop computes the round-trip voltage drop for a load current over
// a one-way cable length: drop = I * R * 2 * length / 1000.  A zero or
// negative length or current yields zero drop.
func VoltageDrop(amps float64, gauge WireGauge, oneWayLengthFt float64) (float64, error) {
	if amps <= 0 || oneWayLengthFt <= 0 {
		return 0, nil
	}
	r, err := gauge.Resistance()
	if err != nil {
		return 0, err
	}
	return amps * r * 2 * oneWayLengthFt / 1000, nil
}

// VoltageDropPercent converts an absolute drop to a percentage of the
// system voltage.
func VoltageDropPercent(drop, systemVoltage float64) float64 {
	if systemVoltage <= 0 {
		return 0
	}
	return drop / systemVoltage * 100
}
