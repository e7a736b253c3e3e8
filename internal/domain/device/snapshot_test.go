package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

func TestNewSnapshot_RequiresElementID(t *testing.T) {
	_, err := NewSnapshot("", "Wall Horn Strobe", "75cd")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))

	s, err := NewSnapshot("e-1", "Wall Horn Strobe", "75cd")
	require.NoError(t, err)
	assert.Equal(t, "e-1", s.ElementID)
}

func TestSnapshot_Validate_NegativeElectrical(t *testing.T) {
	s := Snapshot{ElementID: "e-1", Amps: -0.1}
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNegativeElectrical))

	s = Snapshot{ElementID: "e-1", UnitLoads: -1}
	assert.Error(t, s.Validate())

	s = Snapshot{ElementID: "e-1", Watts: 2.0, Amps: 0.083, UnitLoads: 1}
	assert.NoError(t, s.Validate())
}

func TestSnapshot_CombinedText(t *testing.T) {
	s := Snapshot{ElementID: "e-1", FamilyName: "Wall Horn Strobe", TypeName: "75cd"}
	assert.Equal(t, "WALL HORN STROBE 75CD", s.CombinedText())
}

func TestSnapshot_Signature_CaseInsensitiveAndFlagSensitive(t *testing.T) {
	a := Snapshot{ElementID: "e-1", FamilyName: "Speaker", TypeName: "Wall", Watts: 2}
	b := Snapshot{ElementID: "e-2", FamilyName: "SPEAKER", TypeName: "wall", Watts: 2}
	assert.Equal(t, a.Signature(), b.Signature())

	c := b
	c.Capabilities.HasStrobe = true
	assert.NotEqual(t, b.Signature(), c.Signature())
}

func TestSnapshot_WithElectrical_DoesNotMutateReceiver(t *testing.T) {
	orig := Snapshot{ElementID: "e-1", Watts: 2.0}
	derived := orig.WithElectrical(-1, 0.083, 1)

	assert.Equal(t, 2.0, orig.Watts)
	assert.Equal(t, 0.0, orig.Amps)
	assert.Equal(t, 2.0, derived.Watts, "negative watts argument keeps original")
	assert.Equal(t, 0.083, derived.Amps)
	assert.Equal(t, 1, derived.UnitLoads)
}

func TestSnapshot_WithProperties_PreservesSuperseded(t *testing.T) {
	orig := Snapshot{
		ElementID:  "e-1",
		Properties: common.Metadata{"CANDELA": "30"},
	}
	derived := orig.WithProperties(common.Metadata{"CANDELA": "75", "SKU": "P2R"})

	// Original untouched.
	assert.Equal(t, "30", orig.Properties["CANDELA"])
	_, hasSuperseded := orig.Properties["superseded.CANDELA"]
	assert.False(t, hasSuperseded)

	// Derived carries the overlay plus the superseded original.
	assert.Equal(t, "75", derived.Properties["CANDELA"])
	assert.Equal(t, "30", derived.Properties["superseded.CANDELA"])
	assert.Equal(t, "P2R", derived.Properties["SKU"])
}

func TestSnapshot_WithProperties_EmptyOverlayIsIdentity(t *testing.T) {
	orig := Snapshot{ElementID: "e-1"}
	assert.Equal(t, orig, orig.WithProperties(nil))
}

func TestCapabilityFlags(t *testing.T) {
	assert.False(t, CapabilityFlags{}.Any())
	assert.Equal(t, 0, CapabilityFlags{}.Count())
	f := CapabilityFlags{HasStrobe: true, IsIsolator: true}
	assert.True(t, f.Any())
	assert.Equal(t, 2, f.Count())
}
