package param_extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
)

func newSnap(t *testing.T, family, typeName string) device.Snapshot {
	t.Helper()
	snap, err := device.NewSnapshot("n1", family, typeName)
	require.NoError(t, err)
	return snap
}

func TestExtract_TextScan(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "Wall Horn Strobe 75cd", "Standard")
	params := e.Extract(snap)

	cd, ok := params.Num(Candela)
	require.True(t, ok)
	assert.Equal(t, 75.0, cd)
	assert.Equal(t, StrategyFamilyText, params[Candela].Source)
}

func TestExtract_StructuredBeatsText(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "Horn Strobe 75cd", "Standard")
	snap.Properties = map[string]interface{}{"candela": 110.0}
	params := e.Extract(snap)

	cd, ok := params.Num(Candela)
	require.True(t, ok)
	assert.Equal(t, 110.0, cd)
	assert.Equal(t, StrategyProperty, params[Candela].Source)
}

func TestExtract_TypeTextFillsGaps(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "Speaker Strobe", "Ceiling 2W 75cd")
	params := e.Extract(snap)

	w, ok := params.Num(Wattage)
	require.True(t, ok)
	assert.Equal(t, 2.0, w)
	assert.Equal(t, StrategyTypeText, params[Wattage].Source)

	cd, ok := params.Num(Candela)
	require.True(t, ok)
	assert.Equal(t, 75.0, cd)
}

func TestExtract_ModelNumber(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "SD-751 Photoelectric Smoke Detector", "Ceiling")
	params := e.Extract(snap)

	model, ok := params.Str(ModelNumber)
	require.True(t, ok)
	assert.Equal(t, "SD-751", model)
}

func TestExtract_ModelNumberSkipsRatingTokens(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "Horn Strobe 110cd 24VDC", "Wall")
	params := e.Extract(snap)

	_, ok := params.Str(ModelNumber)
	assert.False(t, ok, "rating tokens must not be mistaken for model numbers")

	v, ok := params.Num(Voltage)
	require.True(t, ok)
	assert.Equal(t, 24.0, v)
}

func TestExtract_CapabilityFlags(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "Notification Appliance", "Wall")
	snap.Capabilities = device.CapabilityFlags{HasStrobe: true, HasSpeaker: true}
	params := e.Extract(snap)

	assert.True(t, params.Flag(HasStrobe))
	assert.True(t, params.Flag(HasSpeaker))
	assert.False(t, params.Flag(IsIsolator))
}

func TestExtract_CurrentInferredFromWattage(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "Speaker", "Wall")
	snap.Watts = 2.0
	params := e.Extract(snap)

	amps, ok := params.Num(Current)
	require.True(t, ok)
	assert.Equal(t, 0.083, amps)
	assert.Equal(t, StrategyInference, params[Current].Source)
}

func TestExtract_WattageInferredFromCurrent(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "Horn", "Wall")
	snap.Amps = 0.5
	params := e.Extract(snap)

	w, ok := params.Num(Wattage)
	require.True(t, ok)
	assert.Equal(t, 12.0, w)
}

func TestExtract_NeverOverwritesExplicitElectrical(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "Speaker 2W", "Wall")
	snap.Amps = 0.1
	snap.Watts = 2.0
	params := e.Extract(snap)

	amps, _ := params.Num(Current)
	assert.Equal(t, 0.1, amps)
	assert.Equal(t, StrategyProperty, params[Current].Source)
}

func TestExtract_PropertyStringCoercion(t *testing.T) {
	e := New(nil)

	snap := newSnap(t, "Strobe", "Wall")
	snap.Properties = map[string]interface{}{"CANDELA": "75cd"}
	params := e.Extract(snap)

	cd, ok := params.Num(Candela)
	require.True(t, ok)
	assert.Equal(t, 75.0, cd)
}

func TestExtract_EmptySnapshot(t *testing.T) {
	e := New(nil)

	params := e.Extract(newSnap(t, "", ""))
	assert.Empty(t, params)
}
