package device_classifier

import (
	"strings"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
)

// smokeSubtype resolves the sensing technology for a smoke detector.
// Photoelectric is the fleet-wide default when the text names neither.
// "ION" is only accepted as a standalone token so words like "STATION"
// never flip the subtype.
func smokeSubtype(m matchContext) device.Subtype {
	if strings.Contains(m.text, "IONIZATION") || hasToken(m.text, "ION") {
		return device.SubtypeIonization
	}
	return device.SubtypePhotoelectric
}

// heatSubtype resolves fixed-temperature versus rate-of-rise activation.
func heatSubtype(m matchContext) device.Subtype {
	if kwRateOfRise.matches(m.text) {
		return device.SubtypeRateOfRise
	}
	return device.SubtypeFixedTemp
}

// initiatingTable is the ordered rule table for initiating devices and
// loop modules.  Specific technologies (beam, duct, multi-sensor) sit
// above the generic smoke/heat rules.
var initiatingTable = []rule{
	{
		name:  "isolator",
		match: func(m matchContext) bool { return kwIsolator.matches(m.text) },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindIsolator, device.SubtypeNone)
		},
	},
	{
		name:  "repeater",
		match: func(m matchContext) bool { return kwRepeater.matches(m.text) },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindRepeater, device.SubtypeNone)
		},
	},
	{
		name:  "beam_detector",
		match: func(m matchContext) bool { return kwBeam.matches(m.text) },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindBeamDetector, device.SubtypeNone)
		},
	},
	{
		name:  "duct_smoke_detector",
		match: func(m matchContext) bool { return kwDuct.matches(m.text) && smokeEvidence(m.text) },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindDuctSmokeDetector, device.SubtypeNone)
		},
	},
	{
		name: "multi_sensor_detector",
		match: func(m matchContext) bool {
			if kwMultiSensor.matches(m.text) {
				return true
			}
			return smokeEvidence(m.text) && kwHeat.matches(m.text)
		},
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindMultiSensorDetector, device.SubtypeNone)
		},
	},
	{
		name:  "smoke_detector",
		match: func(m matchContext) bool { return smokeEvidence(m.text) },
		identify: func(m matchContext) device.Identity {
			return device.NewIdentity(device.KindSmokeDetector, smokeSubtype(m))
		},
	},
	{
		name:  "heat_detector",
		match: func(m matchContext) bool { return kwHeat.matches(m.text) },
		identify: func(m matchContext) device.Identity {
			return device.NewIdentity(device.KindHeatDetector, heatSubtype(m))
		},
	},
	{
		name:  "pull_station",
		match: func(m matchContext) bool { return kwPull.matches(m.text) },
		identify: func(m matchContext) device.Identity {
			if kwBreakGlass.matches(m.text) {
				return device.NewIdentity(device.KindPullStation, device.SubtypeBreakGlass)
			}
			return device.NewIdentity(device.KindPullStation, device.SubtypeManual)
		},
	},
	{
		name:  "generic_detector",
		match: func(m matchContext) bool { return kwDetector.matches(m.text) },
		identify: func(matchContext) device.Identity {
			// Bare "detector"/"sensor" text: photoelectric smoke is the
			// overwhelmingly common installed base.
			return device.NewIdentity(device.KindSmokeDetector, device.SubtypePhotoelectric)
		},
	},
}
