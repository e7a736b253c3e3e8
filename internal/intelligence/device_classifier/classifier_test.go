package device_classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

func newSnap(t *testing.T, family, typeName string) device.Snapshot {
	t.Helper()
	snap, err := device.NewSnapshot("n1", family, typeName)
	require.NoError(t, err)
	return snap
}

func classify(t *testing.T, family, typeName string) (Classification, error) {
	t.Helper()
	snap := newSnap(t, family, typeName)
	e := param_extractor.New(nil)
	return New(nil).Classify(snap, e.Extract(snap))
}

func mustClassify(t *testing.T, family, typeName string) Classification {
	t.Helper()
	cls, err := classify(t, family, typeName)
	require.NoError(t, err)
	return cls
}

func TestClassify_NotificationHierarchy(t *testing.T) {
	tests := []struct {
		name   string
		family string
		want   device.IdentityKind
	}{
		{"horn strobe", "Wall Horn Strobe 75cd", device.KindHornStrobe},
		{"speaker strobe", "Speaker Strobe 2W", device.KindSpeakerStrobe},
		{"speaker strobe beats horn", "Horn Speaker Strobe", device.KindSpeakerStrobe},
		{"multitone horn strobe", "Multitone Horn Strobe", device.KindMultitoneHornStrobe},
		{"multitone horn", "Multitone Horn", device.KindMultitoneHorn},
		{"plain horn", "Horn", device.KindHorn},
		{"audible synonym", "Audible Appliance", device.KindHorn},
		{"plain strobe", "Visual Strobe", device.KindStrobe},
		{"beacon synonym", "Beacon", device.KindStrobe},
		{"voice synonym", "Voice Evacuation Speaker", device.KindSpeaker},
		{"chime", "Chime", device.KindChime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := mustClassify(t, tt.family, "Standard")
			assert.Equal(t, tt.want, cls.Identity.Kind)
		})
	}
}

func TestClassify_GenericNotificationFallback(t *testing.T) {
	wall := mustClassify(t, "Notification Appliance", "Wall")
	assert.Equal(t, device.KindHornStrobe, wall.Identity.Kind)

	ceiling := mustClassify(t, "Notification Appliance", "Ceiling")
	assert.Equal(t, device.KindStrobe, ceiling.Identity.Kind)
	assert.Equal(t, device.MountCeiling, ceiling.Characteristics.Mounting)
}

func TestClassify_InitiatingTable(t *testing.T) {
	tests := []struct {
		name        string
		family      string
		wantKind    device.IdentityKind
		wantSubtype device.Subtype
	}{
		{"photo smoke", "Photoelectric Smoke Detector", device.KindSmokeDetector, device.SubtypePhotoelectric},
		{"ion smoke", "Ionization Smoke Detector", device.KindSmokeDetector, device.SubtypeIonization},
		{"fixed heat", "Fixed Temperature Heat Detector", device.KindHeatDetector, device.SubtypeFixedTemp},
		{"rate of rise heat", "Rate-of-Rise Heat Detector", device.KindHeatDetector, device.SubtypeRateOfRise},
		{"beam", "Projected Beam Detector", device.KindBeamDetector, device.SubtypeNone},
		{"duct smoke", "Duct Smoke Detector", device.KindDuctSmokeDetector, device.SubtypeNone},
		{"multi sensor", "Multi-Sensor Detector", device.KindMultiSensorDetector, device.SubtypeNone},
		{"smoke plus heat", "Combination Smoke Heat Detector", device.KindMultiSensorDetector, device.SubtypeNone},
		{"manual pull", "Manual Pull Station", device.KindPullStation, device.SubtypeManual},
		{"bare pull station", "Pull Station", device.KindPullStation, device.SubtypeManual},
		{"break glass", "Break Glass Station", device.KindPullStation, device.SubtypeBreakGlass},
		{"standalone ion token", "ION Detector", device.KindSmokeDetector, device.SubtypeIonization},
		{"generic detector", "Addressable Sensor", device.KindSmokeDetector, device.SubtypePhotoelectric},
		{"isolator", "Loop Isolator Module", device.KindIsolator, device.SubtypeNone},
		{"repeater", "Signal Repeater", device.KindRepeater, device.SubtypeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := mustClassify(t, tt.family, "Standard")
			assert.Equal(t, tt.wantKind, cls.Identity.Kind)
			assert.Equal(t, tt.wantSubtype, cls.Identity.Subtype)
		})
	}
}

func TestClassify_StationDoesNotFlipIonSubtype(t *testing.T) {
	cls := mustClassify(t, "Smoke Detector Near Station", "Standard")
	assert.Equal(t, device.SubtypePhotoelectric, cls.Identity.Subtype)
}

func TestClassify_CapabilityFlagsActAsEvidence(t *testing.T) {
	snap := newSnap(t, "Horn", "Wall")
	snap.Capabilities = device.CapabilityFlags{HasStrobe: true}
	e := param_extractor.New(nil)

	cls, err := New(nil).Classify(snap, e.Extract(snap))
	require.NoError(t, err)
	assert.Equal(t, device.KindHornStrobe, cls.Identity.Kind)
}

func TestClassify_Contradictions(t *testing.T) {
	tests := []struct {
		name   string
		family string
	}{
		{"speaker with horn evidence", "Horn Speaker"},
		{"pull station with detector evidence", "Pull Station Smoke Detector"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := classify(t, tt.family, "Standard")
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeIdentityContradiction))
			assert.True(t, cls.Identity.IsUnknown())
		})
	}
}

func TestClassify_NoMatchIsUnknownWithoutError(t *testing.T) {
	// "Junction" contains "ION"; that is not smoke evidence.
	for _, family := range []string{"Junction Box", "Terminal Cabinet"} {
		cls, err := classify(t, family, "Accessory")
		require.NoError(t, err, family)
		assert.True(t, cls.Identity.IsUnknown(), family)
	}
}

func TestClassify_Characteristics(t *testing.T) {
	weatherproof := mustClassify(t, "Weatherproof Horn Strobe", "Wall")
	assert.Equal(t, device.RatingWeatherproof, weatherproof.Characteristics.EnvironmentalRating)
	assert.Equal(t, device.MountWall, weatherproof.Characteristics.Mounting)

	highCandela := mustClassify(t, "Wall Strobe 110cd", "Standard")
	assert.Equal(t, device.RatingHighCandela, highCandela.Characteristics.EnvironmentalRating)

	duct := mustClassify(t, "Duct Smoke Detector", "Standard")
	assert.Equal(t, device.MountDuct, duct.Characteristics.Mounting)

	// Defaults when the text says nothing about placement.
	horn := mustClassify(t, "Horn", "Standard")
	assert.Equal(t, device.MountWall, horn.Characteristics.Mounting)
	smoke := mustClassify(t, "Smoke Detector", "Standard")
	assert.Equal(t, device.MountCeiling, smoke.Characteristics.Mounting)
}
