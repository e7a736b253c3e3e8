package catalog

import (
	"time"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
)

// DefaultSensitivityToken keys initiating-device records that carry no
// meaningful sensitivity rating.
const DefaultSensitivityToken = "STD"

// builtinVersion identifies the compiled-in catalog data.
const builtinVersion = "builtin-2026.1"

// rec builds a standard wall-mount record; variants override fields on the
// returned value.
func rec(sku, partCode, desc string, amps float64, unitLoads int, ttap bool,
	mounting device.Mounting, env device.EnvironmentalRating) Record {
	return Record{
		SKU:                 sku,
		PartCode:            partCode,
		Description:         desc,
		Amps:                amps,
		UnitLoads:           unitLoads,
		TTapCompatible:      ttap,
		Mounting:            mounting,
		EnvironmentalRating: env,
		ULListed:            true,
	}
}

func ratings(records map[string]Record) RatingSet {
	return RatingSet{Ratings: records}
}

// strobeLine builds the wall/ceiling standard-environment candela ladder
// shared by every strobe-bearing notification appliance type.
func strobeLine(skuPrefix, desc string, wall, ceiling map[string]float64, unitLoads int) TypeGroup {
	wallRatings := make(map[string]Record, len(wall))
	for token, amps := range wall {
		wallRatings[token] = rec(skuPrefix+"-W"+token, "", desc, amps, unitLoads, true,
			device.MountWall, device.RatingStandard)
	}
	ceilingRatings := make(map[string]Record, len(ceiling))
	for token, amps := range ceiling {
		ceilingRatings[token] = rec(skuPrefix+"-C"+token, "", "Ceiling "+desc, amps, unitLoads, true,
			device.MountCeiling, device.RatingStandard)
	}
	return TypeGroup{Mountings: map[string]EnvironmentGroup{
		string(device.MountWall): {Environments: map[string]RatingSet{
			string(device.RatingStandard): ratings(wallRatings),
		}},
		string(device.MountCeiling): {Environments: map[string]RatingSet{
			string(device.RatingStandard): ratings(ceilingRatings),
		}},
	}}
}

// audibleType builds a single-record type with no candela ladder.
func audibleType(r Record) TypeGroup {
	return TypeGroup{Mountings: map[string]EnvironmentGroup{
		string(r.Mounting): {Environments: map[string]RatingSet{
			string(r.EnvironmentalRating): ratings(map[string]Record{
				DefaultSensitivityToken: r,
			}),
		}},
	}}
}

// BuiltinNotification returns the compiled-in notification appliance
// catalog.  Current values are nominal 24 VDC alarm draws.
func BuiltinNotification() *Catalog {
	av := Family{DeviceTypes: map[string]TypeGroup{
		string(device.KindHornStrobe): strobeLine("HS", "Wall Horn Strobe",
			map[string]float64{"15": 0.143, "30": 0.164, "75": 0.221, "110": 0.251},
			map[string]float64{"15": 0.150, "30": 0.172, "75": 0.233, "110": 0.264}, 1),
		string(device.KindStrobe): strobeLine("ST", "Wall Strobe",
			map[string]float64{"15": 0.088, "30": 0.110, "75": 0.158, "110": 0.184},
			map[string]float64{"15": 0.093, "30": 0.115, "75": 0.165, "110": 0.192}, 1),
		string(device.KindSpeakerStrobe): strobeLine("SPS", "Wall Speaker Strobe",
			map[string]float64{"15": 0.091, "30": 0.113, "75": 0.161, "110": 0.187},
			map[string]float64{"15": 0.096, "30": 0.119, "75": 0.168, "110": 0.195}, 1),
		string(device.KindMultitoneHornStrobe): strobeLine("MTHS", "Multitone Horn Strobe",
			map[string]float64{"15": 0.158, "30": 0.179, "75": 0.236, "110": 0.266},
			map[string]float64{"15": 0.165, "30": 0.187, "75": 0.248, "110": 0.279}, 2),
		string(device.KindHorn): audibleType(
			rec("HN-W", "", "Wall Horn", 0.044, 1, true, device.MountWall, device.RatingStandard)),
		string(device.KindMultitoneHorn): audibleType(
			rec("MTHN-W", "", "Multitone Horn", 0.059, 2, true, device.MountWall, device.RatingStandard)),
		string(device.KindChime): audibleType(
			rec("CH-W", "", "Wall Chime", 0.022, 1, true, device.MountWall, device.RatingStandard)),
		string(device.KindSpeaker): TypeGroup{Mountings: map[string]EnvironmentGroup{
			string(device.MountWall): {Environments: map[string]RatingSet{
				string(device.RatingStandard): ratings(map[string]Record{
					DefaultSensitivityToken: func() Record {
						r := rec("SP-W", "", "Wall Speaker", 0, 1, true,
							device.MountWall, device.RatingStandard)
						r.Watts = 2.0
						return r
					}(),
				}),
			}},
			string(device.MountCeiling): {Environments: map[string]RatingSet{
				string(device.RatingStandard): ratings(map[string]Record{
					DefaultSensitivityToken: func() Record {
						r := rec("SP-C", "", "Ceiling Speaker", 0, 1, true,
							device.MountCeiling, device.RatingStandard)
						r.Watts = 2.0
						return r
					}(),
				}),
			}},
		}},
	}}

	// Weatherproof variants carry their own listings; only the common wall
	// horn strobe ladder is stocked.
	wpRatings := make(map[string]Record)
	for token, amps := range map[string]float64{"15": 0.176, "75": 0.268, "110": 0.301} {
		wpRatings[token] = rec("HS-WP"+token, "", "Weatherproof Horn Strobe", amps, 1, true,
			device.MountWall, device.RatingWeatherproof)
	}
	av.DeviceTypes[string(device.KindHornStrobe)].
		Mountings[string(device.MountWall)].
		Environments[string(device.RatingWeatherproof)] = ratings(wpRatings)

	return &Catalog{
		Version:     builtinVersion,
		LastUpdated: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		DeviceFamilies: map[string]Family{
			"av_appliances": av,
		},
		FamilyMapping: FamilyMapping{Mappings: map[string]FamilyRef{
			"AV DEVICES":   {Family: "av_appliances"},
			"NOTIFICATION": {Family: "av_appliances"},
			"HORN STROBES": {Family: "av_appliances"},
			"STROBES":      {Family: "av_appliances"},
		}},
	}
}

// detectorType builds a ceiling standard-environment detector record.
func detectorType(sku, desc string, amps float64, unitLoads int) TypeGroup {
	return audibleType(Record{
		SKU:                 sku,
		Description:         desc,
		Amps:                amps,
		StandbyAmps:         0.0003,
		UnitLoads:           unitLoads,
		TTapCompatible:      false,
		Mounting:            device.MountCeiling,
		EnvironmentalRating: device.RatingStandard,
		ULListed:            true,
	})
}

// BuiltinInitiating returns the compiled-in initiating device catalog,
// including the circuit module family served by the generic repository.
func BuiltinInitiating() *Catalog {
	detectors := Family{DeviceTypes: map[string]TypeGroup{
		"SMOKE_DETECTOR_PHOTOELECTRIC":         detectorType("SD-P", "Photoelectric Smoke Detector", 0.001, 1),
		"SMOKE_DETECTOR_IONIZATION":            detectorType("SD-I", "Ionization Smoke Detector", 0.001, 1),
		"HEAT_DETECTOR_FIXED":                  detectorType("HD-F", "Fixed Temperature Heat Detector", 0.001, 1),
		"HEAT_DETECTOR_RATE_OF_RISE":           detectorType("HD-R", "Rate of Rise Heat Detector", 0.001, 1),
		string(device.KindMultiSensorDetector): detectorType("MSD", "Multi-Sensor Detector", 0.002, 1),
		string(device.KindBeamDetector): audibleType(Record{
			SKU: "BD-1", Description: "Reflected Beam Smoke Detector",
			Amps: 0.002, StandbyAmps: 0.002, UnitLoads: 1,
			Mounting: device.MountWall, EnvironmentalRating: device.RatingStandard,
			ULListed: true,
		}),
		string(device.KindDuctSmokeDetector): audibleType(Record{
			SKU: "DSD-1", Description: "Duct Smoke Detector",
			Amps: 0.002, StandbyAmps: 0.001, UnitLoads: 2,
			Mounting: device.MountDuct, EnvironmentalRating: device.RatingStandard,
			ULListed: true,
		}),
	}}

	stations := Family{DeviceTypes: map[string]TypeGroup{
		"PULL_STATION_MANUAL": audibleType(Record{
			SKU: "PS-M", Description: "Manual Pull Station",
			Amps: 0.001, UnitLoads: 1,
			Mounting: device.MountWall, EnvironmentalRating: device.RatingStandard,
			ULListed: true,
		}),
		"PULL_STATION_BREAK_GLASS": audibleType(Record{
			SKU: "PS-BG", Description: "Break Glass Pull Station",
			Amps: 0.001, UnitLoads: 1,
			Mounting: device.MountWall, EnvironmentalRating: device.RatingStandard,
			ULListed: true,
		}),
	}}

	modules := Family{DeviceTypes: map[string]TypeGroup{
		string(device.KindIsolator): audibleType(Record{
			SKU: "ISO-1", Description: "Circuit Isolator Module",
			Amps: 0.004, StandbyAmps: 0.004, UnitLoads: 4,
			Mounting: device.MountWall, EnvironmentalRating: device.RatingStandard,
			ULListed: true,
		}),
		string(device.KindRepeater): audibleType(Record{
			SKU: "RPT-1", Description: "Circuit Repeater Module",
			Amps: 0.012, StandbyAmps: 0.010, UnitLoads: 4,
			Mounting: device.MountWall, EnvironmentalRating: device.RatingStandard,
			ULListed: true,
		}),
	}}

	return &Catalog{
		Version:     builtinVersion,
		LastUpdated: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		DeviceFamilies: map[string]Family{
			"detectors":       detectors,
			"manual_stations": stations,
			"modules":         modules,
		},
		FamilyMapping: FamilyMapping{Mappings: map[string]FamilyRef{
			"DETECTORS":     {Family: "detectors"},
			"SMOKE":         {Family: "detectors"},
			"PULL STATIONS": {Family: "manual_stations"},
			"MODULES":       {Family: "modules"},
		}},
	}
}

// BuiltinBundle returns both compiled-in catalogs.
func BuiltinBundle() Bundle {
	return Bundle{
		Notification: BuiltinNotification(),
		Initiating:   BuiltinInitiating(),
	}
}
