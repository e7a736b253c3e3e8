package device

// Mounting is where the device is installed.
type Mounting string

const (
	MountWall    Mounting = "WALL"
	MountCeiling Mounting = "CEILING"
	MountDuct    Mounting = "DUCT"
)

// EnvironmentalRating captures the environmental variant of a device.
type EnvironmentalRating string

const (
	RatingStandard     EnvironmentalRating = "STANDARD"
	RatingWeatherproof EnvironmentalRating = "WEATHERPROOF"
	RatingHighCandela  EnvironmentalRating = "HIGH_CANDELA"
	RatingHighTemp     EnvironmentalRating = "HIGH_TEMP"
)

// Characteristics are the secondary classification outputs that narrow
// catalog resolution alongside the identity.
type Characteristics struct {
	Mounting            Mounting            `json:"mounting"`
	EnvironmentalRating EnvironmentalRating `json:"environmental_rating"`
}

// DefaultCharacteristics returns the class-specific defaults applied when
// the device text names neither a mounting nor an environmental keyword:
// notification appliances default to wall mount, initiating devices to
// ceiling mount.
func DefaultCharacteristics(class Class) Characteristics {
	mounting := MountWall
	if class == ClassInitiating {
		mounting = MountCeiling
	}
	return Characteristics{
		Mounting:            mounting,
		EnvironmentalRating: RatingStandard,
	}
}
