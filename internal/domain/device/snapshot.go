// Package device implements the device bounded context of the
// FireCircuit-Intelligence engine: the immutable DeviceSnapshot value taken
// from the host building model, the classified DeviceIdentity, secondary
// DeviceCharacteristics, and the catalog-resolved DeviceSpecification.
// All invariants that concern a single device live here; text
// interpretation and catalog lookup are handled by the intelligence layer.
package device

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

// CapabilityFlags records what the host model already knows about a device,
// before any text interpretation has run.
type CapabilityFlags struct {
	HasStrobe  bool `json:"has_strobe"`
	HasSpeaker bool `json:"has_speaker"`
	IsIsolator bool `json:"is_isolator"`
	IsRepeater bool `json:"is_repeater"`
}

// Any reports whether at least one capability flag is set.
func (f CapabilityFlags) Any() bool {
	return f.HasStrobe || f.HasSpeaker || f.IsIsolator || f.IsRepeater
}

// Count returns the number of set capability flags.
func (f CapabilityFlags) Count() int {
	n := 0
	for _, b := range []bool{f.HasStrobe, f.HasSpeaker, f.IsIsolator, f.IsRepeater} {
		if b {
			n++
		}
	}
	return n
}

// Position is the device location in host-model coordinates (feet).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Snapshot is an immutable value describing one physical device as supplied
// by the host application.  It is created once per device and never mutated
// in place; "enhancement" always derives a new value through the With*
// methods so concurrent analyses can share snapshots freely.
//
// Invariant: all electrical quantities (Watts, Amps, StandbyAmps, UnitLoads)
// are >= 0.  NewSnapshot enforces this at construction.
type Snapshot struct {
	// ElementID is the host-model element identifier.
	ElementID string `json:"element_id"`

	// Level is the building level (floor) name the device is placed on.
	Level string `json:"level,omitempty"`

	// FamilyName and TypeName are the loosely-named host-model family and
	// type texts, e.g. "Wall Horn Strobe" / "75cd".  They are the primary
	// input to classification.
	FamilyName string `json:"family_name"`
	TypeName   string `json:"type_name"`

	// Electrical attributes as known to the host model.  Zero means unset.
	Watts       float64 `json:"watts"`
	Amps        float64 `json:"amps"`
	StandbyAmps float64 `json:"standby_amps"`
	UnitLoads   int     `json:"unit_loads"`

	// Capabilities are host-model flags that short-circuit text detection.
	Capabilities CapabilityFlags `json:"capabilities"`

	// Zone is the optional alarm zone assignment.
	Zone string `json:"zone,omitempty"`

	// Position is the optional placement of the device.
	Position *Position `json:"position,omitempty"`

	// Properties is the narrowly-typed escape hatch for vendor-specific
	// fields the engine does not reason about.  Known optional fields the
	// engine does read travel as typed extraction parameters instead
	// (see ExtractedParameters).
	Properties common.Metadata `json:"properties,omitempty"`
}

// NewSnapshot constructs a Snapshot, enforcing the non-negative electrical
// invariant.  Family and type names may be empty; classification then falls
// through to the generic repository.
func NewSnapshot(elementID, familyName, typeName string) (Snapshot, error) {
	if elementID == "" {
		return Snapshot{}, errors.InvalidParam("device element ID must not be empty")
	}
	return Snapshot{
		ElementID:  elementID,
		FamilyName: familyName,
		TypeName:   typeName,
	}, nil
}

// Validate checks the snapshot invariants.  It is called by consumers that
// receive snapshots from untrusted sources (the HTTP interface, JSON files).
func (s Snapshot) Validate() error {
	if s.ElementID == "" {
		return errors.InvalidParam("device element ID must not be empty")
	}
	if s.Watts < 0 || s.Amps < 0 || s.StandbyAmps < 0 {
		return errors.New(errors.ErrCodeNegativeElectrical,
			fmt.Sprintf("device %s carries a negative electrical quantity", s.ElementID))
	}
	if s.UnitLoads < 0 {
		return errors.New(errors.ErrCodeNegativeElectrical,
			fmt.Sprintf("device %s carries negative unit loads", s.ElementID))
	}
	return nil
}

// CombinedText returns the uppercased family+type text that classification
// operates on.
func (s Snapshot) CombinedText() string {
	return strings.ToUpper(strings.TrimSpace(s.FamilyName + " " + s.TypeName))
}

// Signature returns a deterministic key identifying devices that are
// interchangeable for analysis purposes: same family and type names, same
// wattage, same capability flags.  The mapping cache and batch grouping key
// on this value.
func (s Snapshot) Signature() string {
	return fmt.Sprintf("%s|%s|%.2f|%t%t%t%t",
		strings.ToUpper(s.FamilyName), strings.ToUpper(s.TypeName), s.Watts,
		s.Capabilities.HasStrobe, s.Capabilities.HasSpeaker,
		s.Capabilities.IsIsolator, s.Capabilities.IsRepeater)
}

// WithElectrical derives a new Snapshot with the given electrical values.
// Negative arguments are clamped to the receiver's current values, keeping
// the non-negative invariant intact.
func (s Snapshot) WithElectrical(watts, amps float64, unitLoads int) Snapshot {
	out := s
	if watts >= 0 {
		out.Watts = watts
	}
	if amps >= 0 {
		out.Amps = amps
	}
	if unitLoads >= 0 {
		out.UnitLoads = unitLoads
	}
	return out
}

// WithProperties derives a new Snapshot whose Properties map is the
// receiver's with overlay entries merged in.  Existing keys are preserved
// under a "superseded." prefix when the overlay replaces them, so original
// explicit values are never silently discarded.  Neither the receiver's nor
// the overlay map is mutated.
func (s Snapshot) WithProperties(overlay common.Metadata) Snapshot {
	if len(overlay) == 0 {
		return s
	}
	merged := make(common.Metadata, len(s.Properties)+len(overlay))
	for k, v := range s.Properties {
		merged[k] = v
	}
	// Deterministic merge order keeps superseded bookkeeping stable.
	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if prev, ok := merged[k]; ok && prev != overlay[k] {
			merged["superseded."+k] = prev
		}
		merged[k] = overlay[k]
	}
	out := s
	out.Properties = merged
	return out
}
