package device

import "fmt"

// Class separates the two circuit catalogs a device can resolve against.
type Class string

const (
	// ClassNotification covers audible/visual alarm appliances carried on
	// notification appliance circuits.
	ClassNotification Class = "NOTIFICATION"

	// ClassInitiating covers detection and manual devices carried on
	// initiating device circuits.
	ClassInitiating Class = "INITIATING"

	// ClassModule covers circuit infrastructure devices (isolators,
	// repeaters) that belong to neither catalog and resolve through the
	// generic repository.
	ClassModule Class = "MODULE"

	// ClassUnknown marks devices that could not be classified.
	ClassUnknown Class = "UNKNOWN"
)

// IdentityKind enumerates the definite functional identities a device can
// carry.  The string values double as canonical catalog type tokens.
type IdentityKind string

const (
	KindUnknown IdentityKind = "UNKNOWN"

	// Notification appliances.
	KindHorn                IdentityKind = "HORN"
	KindStrobe              IdentityKind = "STROBE"
	KindSpeaker             IdentityKind = "SPEAKER"
	KindHornStrobe          IdentityKind = "HORN_STROBE"
	KindSpeakerStrobe       IdentityKind = "SPEAKER_STROBE"
	KindMultitoneHorn       IdentityKind = "MULTITONE_HORN"
	KindMultitoneHornStrobe IdentityKind = "MULTITONE_HORN_STROBE"
	KindChime               IdentityKind = "CHIME"

	// Initiating devices.
	KindSmokeDetector       IdentityKind = "SMOKE_DETECTOR"
	KindHeatDetector        IdentityKind = "HEAT_DETECTOR"
	KindMultiSensorDetector IdentityKind = "MULTI_SENSOR_DETECTOR"
	KindBeamDetector        IdentityKind = "BEAM_DETECTOR"
	KindDuctSmokeDetector   IdentityKind = "DUCT_SMOKE_DETECTOR"
	KindPullStation         IdentityKind = "PULL_STATION"

	// Circuit modules.
	KindIsolator IdentityKind = "ISOLATOR"
	KindRepeater IdentityKind = "REPEATER"
)

// Subtype refines an IdentityKind where the catalog distinguishes variants.
type Subtype string

const (
	SubtypeNone Subtype = ""

	// Smoke detector subtypes.
	SubtypePhotoelectric Subtype = "PHOTOELECTRIC"
	SubtypeIonization    Subtype = "IONIZATION"

	// Heat detector subtypes.
	SubtypeFixedTemp  Subtype = "FIXED"
	SubtypeRateOfRise Subtype = "RATE_OF_RISE"

	// Pull station subtypes.
	SubtypeManual     Subtype = "MANUAL"
	SubtypeBreakGlass Subtype = "BREAK_GLASS"
)

// Identity is the tagged classification result: one definite kind plus an
// optional subtype.  The zero value is Unknown.
type Identity struct {
	Kind    IdentityKind `json:"kind"`
	Subtype Subtype      `json:"subtype,omitempty"`
}

// Unknown is the canonical unclassified identity.
var Unknown = Identity{Kind: KindUnknown}

// NewIdentity constructs an Identity; an empty kind maps to Unknown.
func NewIdentity(kind IdentityKind, subtype Subtype) Identity {
	if kind == "" {
		kind = KindUnknown
	}
	return Identity{Kind: kind, Subtype: subtype}
}

// String renders "KIND" or "KIND/SUBTYPE".
func (i Identity) String() string {
	if i.Subtype == SubtypeNone {
		return string(i.Kind)
	}
	return fmt.Sprintf("%s/%s", i.Kind, i.Subtype)
}

// IsUnknown reports whether the identity carries no classification.
func (i Identity) IsUnknown() bool {
	return i.Kind == KindUnknown || i.Kind == ""
}

// classByKind drives Class(); module kinds deliberately route to the
// generic repository rather than either catalog resolver.
var classByKind = map[IdentityKind]Class{
	KindHorn:                ClassNotification,
	KindStrobe:              ClassNotification,
	KindSpeaker:             ClassNotification,
	KindHornStrobe:          ClassNotification,
	KindSpeakerStrobe:       ClassNotification,
	KindMultitoneHorn:       ClassNotification,
	KindMultitoneHornStrobe: ClassNotification,
	KindChime:               ClassNotification,
	KindSmokeDetector:       ClassInitiating,
	KindHeatDetector:        ClassInitiating,
	KindMultiSensorDetector: ClassInitiating,
	KindBeamDetector:        ClassInitiating,
	KindDuctSmokeDetector:   ClassInitiating,
	KindPullStation:         ClassInitiating,
	KindIsolator:            ClassModule,
	KindRepeater:            ClassModule,
}

// Class returns the device class of the identity.
func (i Identity) Class() Class {
	if c, ok := classByKind[i.Kind]; ok {
		return c
	}
	return ClassUnknown
}

// HasStrobe reports whether the identity includes a visual component.
func (i Identity) HasStrobe() bool {
	switch i.Kind {
	case KindStrobe, KindHornStrobe, KindSpeakerStrobe, KindMultitoneHornStrobe:
		return true
	}
	return false
}

// HasAudible reports whether the identity includes an audible component.
func (i Identity) HasAudible() bool {
	switch i.Kind {
	case KindHorn, KindSpeaker, KindHornStrobe, KindSpeakerStrobe,
		KindMultitoneHorn, KindMultitoneHornStrobe, KindChime:
		return true
	}
	return false
}

// DefaultUnitLoads returns the regulatory unit loads consumed by a device
// of this identity when the catalog does not say otherwise: 1 standard, 2
// for multitone and duct devices, 4 for isolators and repeaters.
func (i Identity) DefaultUnitLoads() int {
	switch i.Kind {
	case KindMultitoneHorn, KindMultitoneHornStrobe, KindDuctSmokeDetector:
		return 2
	case KindIsolator, KindRepeater:
		return 4
	default:
		return 1
	}
}
