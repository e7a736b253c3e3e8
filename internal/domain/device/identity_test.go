package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_Class(t *testing.T) {
	tests := []struct {
		kind IdentityKind
		want Class
	}{
		{KindHorn, ClassNotification},
		{KindSpeakerStrobe, ClassNotification},
		{KindChime, ClassNotification},
		{KindSmokeDetector, ClassInitiating},
		{KindPullStation, ClassInitiating},
		{KindBeamDetector, ClassInitiating},
		{KindIsolator, ClassModule},
		{KindRepeater, ClassModule},
		{KindUnknown, ClassUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Identity{Kind: tt.kind}.Class(), "kind: %s", tt.kind)
	}
}

func TestIdentity_DefaultUnitLoads(t *testing.T) {
	assert.Equal(t, 1, Identity{Kind: KindHornStrobe}.DefaultUnitLoads())
	assert.Equal(t, 1, Identity{Kind: KindSmokeDetector}.DefaultUnitLoads())
	assert.Equal(t, 2, Identity{Kind: KindMultitoneHorn}.DefaultUnitLoads())
	assert.Equal(t, 2, Identity{Kind: KindMultitoneHornStrobe}.DefaultUnitLoads())
	assert.Equal(t, 2, Identity{Kind: KindDuctSmokeDetector}.DefaultUnitLoads())
	assert.Equal(t, 4, Identity{Kind: KindIsolator}.DefaultUnitLoads())
	assert.Equal(t, 4, Identity{Kind: KindRepeater}.DefaultUnitLoads())
}

func TestIdentity_Components(t *testing.T) {
	assert.True(t, Identity{Kind: KindHornStrobe}.HasStrobe())
	assert.True(t, Identity{Kind: KindHornStrobe}.HasAudible())
	assert.True(t, Identity{Kind: KindStrobe}.HasStrobe())
	assert.False(t, Identity{Kind: KindStrobe}.HasAudible())
	assert.False(t, Identity{Kind: KindHorn}.HasStrobe())
	assert.True(t, Identity{Kind: KindChime}.HasAudible())
	assert.False(t, Identity{Kind: KindSmokeDetector}.HasAudible())
}

func TestIdentity_String(t *testing.T) {
	assert.Equal(t, "HORN_STROBE", Identity{Kind: KindHornStrobe}.String())
	assert.Equal(t, "SMOKE_DETECTOR/PHOTOELECTRIC",
		Identity{Kind: KindSmokeDetector, Subtype: SubtypePhotoelectric}.String())
}

func TestIdentity_ZeroValueIsUnknown(t *testing.T) {
	var i Identity
	assert.True(t, i.IsUnknown())
	assert.True(t, Unknown.IsUnknown())
	assert.Equal(t, Unknown, NewIdentity("", SubtypeNone))
}

func TestDefaultCharacteristics(t *testing.T) {
	n := DefaultCharacteristics(ClassNotification)
	assert.Equal(t, MountWall, n.Mounting)
	assert.Equal(t, RatingStandard, n.EnvironmentalRating)

	i := DefaultCharacteristics(ClassInitiating)
	assert.Equal(t, MountCeiling, i.Mounting)
}

func TestElectricalInference(t *testing.T) {
	assert.InDelta(t, 0.083, AmpsFromWatts(2.0), 1e-9)
	assert.InDelta(t, 2.0, WattsFromAmps(0.0833333), 1e-2)
	assert.Equal(t, 0.0, AmpsFromWatts(0))
	assert.Equal(t, 0.0, WattsFromAmps(-1))
	assert.Equal(t, 0.221, RoundAmps(0.2214))
	assert.Equal(t, 1.99, RoundWatts(1.994))
}
