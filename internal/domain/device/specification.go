package device

import (
	"math"

	"github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

// MatchSource records which step of the resolution chain produced a
// specification.  It is surfaced to report layers so a reviewer can tell a
// direct catalog hit from a conservative fallback.
type MatchSource string

const (
	SourceDirect        MatchSource = "DIRECT"
	SourcePattern       MatchSource = "PATTERN"
	SourceFamilyMapping MatchSource = "FAMILY_MAPPING"
	SourceFallback      MatchSource = "FALLBACK"
	SourceSynthesized   MatchSource = "SYNTHESIZED"
)

// Specification is the catalog-resolved electrical specification of a
// device.  It is immutable after creation; resolvers hand out copies and
// the specification cache stores values, never shared pointers into the
// catalog.
type Specification struct {
	SKU          string `json:"sku"`
	PartCode     string `json:"part_code,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	ProductName  string `json:"product_name"`

	// Amps is the alarm current draw in amperes, stored to three decimals.
	Amps float64 `json:"amps"`

	// StandbyAmps is the supervisory current draw in amperes.
	StandbyAmps float64 `json:"standby_amps,omitempty"`

	// Watts is the power consumption (speaker tap wattage for audio
	// appliances), stored to two decimals.
	Watts float64 `json:"watts,omitempty"`

	// UnitLoads is the regulatory capacity consumed on the circuit.
	UnitLoads int `json:"unit_loads"`

	// RatingToken is the candela rating for visual appliances or the
	// sensitivity token for detectors ("75", "110", "2.5PCT", ...).
	RatingToken string `json:"rating_token,omitempty"`

	TTapCompatible      bool                `json:"ttap_compatible"`
	Mounting            Mounting            `json:"mounting"`
	EnvironmentalRating EnvironmentalRating `json:"environmental_rating"`
	ULListed            bool                `json:"ul_listed"`

	// Source records the resolution step that produced this specification.
	Source MatchSource `json:"source"`
}

// Validate checks specification invariants before the value enters the
// cache or an enhanced snapshot.
func (s Specification) Validate() error {
	if s.Amps < 0 || s.Watts < 0 || s.StandbyAmps < 0 {
		return errors.New(errors.ErrCodeSpecificationInvalid,
			"specification carries a negative electrical quantity")
	}
	if s.UnitLoads < 0 {
		return errors.New(errors.ErrCodeSpecificationInvalid,
			"specification carries negative unit loads")
	}
	return nil
}

// RoundAmps rounds a current to the three-decimal storage precision.
func RoundAmps(a float64) float64 {
	return math.Round(a*1000) / 1000
}

// RoundWatts rounds a power to the two-decimal storage precision.
func RoundWatts(w float64) float64 {
	return math.Round(w*100) / 100
}

// SystemVoltage is the nominal circuit voltage used for electrical
// inference (I = P / 24V) and voltage-drop percentages.
const SystemVoltage = 24.0

// AmpsFromWatts derives current from power at the nominal system voltage,
// rounded to storage precision.
func AmpsFromWatts(watts float64) float64 {
	if watts <= 0 {
		return 0
	}
	return RoundAmps(watts / SystemVoltage)
}

// WattsFromAmps derives power from current at the nominal system voltage,
// rounded to storage precision.
func WattsFromAmps(amps float64) float64 {
	if amps <= 0 {
		return 0
	}
	return RoundWatts(amps * SystemVoltage)
}
