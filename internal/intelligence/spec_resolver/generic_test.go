package spec_resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/catalog"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
)

func genericRepo(t *testing.T) *GenericRepository {
	t.Helper()
	notif := catalog.BuildIndex(device.ClassNotification, catalog.BuiltinNotification())
	init := catalog.BuildIndex(device.ClassInitiating, catalog.BuiltinInitiating())
	return NewGenericRepository(nil, notif, init)
}

func extract(snap device.Snapshot) param_extractor.Parameters {
	return param_extractor.New(nil).Extract(snap)
}

func TestGenericFind_NameSubstringMatch(t *testing.T) {
	repo := genericRepo(t)

	snap := newSnap(t, "Manual Pull Station", "Red")
	spec := repo.Find(snap, extract(snap))

	assert.Equal(t, "PS-M", spec.SKU)
	assert.Equal(t, device.SourceFallback, spec.Source)
}

func TestGenericFind_CapabilityAndPowerLiftCandidate(t *testing.T) {
	repo := genericRepo(t)

	// Name matches several strobe records; the strobe capability plus the
	// current proximity pick the plain wall strobe over the ladder
	// neighbours.
	snap := newSnap(t, "Wall Strobe", "Standard")
	snap.Capabilities = device.CapabilityFlags{HasStrobe: true}
	snap.Amps = 0.158
	spec := repo.Find(snap, extract(snap))

	assert.Equal(t, device.SourceFallback, spec.Source)
	assert.Equal(t, 0.158, spec.Amps)
}

func TestGenericFind_SynthesizesFromOwnAmps(t *testing.T) {
	repo := genericRepo(t)

	snap := newSnap(t, "Vendor Special Annunciator", "X9")
	snap.Amps = 0.037
	spec := repo.Find(snap, extract(snap))

	assert.Equal(t, device.SourceSynthesized, spec.Source)
	assert.Equal(t, 0.037, spec.Amps)
	assert.Equal(t, 1, spec.UnitLoads)
	assert.Equal(t, "Vendor Special Annunciator X9", spec.ProductName)
}

func TestGenericFind_SynthesizesCurrentFromWattage(t *testing.T) {
	repo := genericRepo(t)

	snap := newSnap(t, "Vendor Paging Unit", "X9")
	snap.Watts = 6.0
	spec := repo.Find(snap, extract(snap))

	assert.Equal(t, device.SourceSynthesized, spec.Source)
	assert.Equal(t, 0.25, spec.Amps)
	assert.Equal(t, 6.0, spec.Watts)
}

func TestGenericFind_NeverFails(t *testing.T) {
	repo := genericRepo(t)

	snap := newSnap(t, "", "")
	spec := repo.Find(snap, extract(snap))

	assert.Equal(t, device.SourceSynthesized, spec.Source)
	assert.Equal(t, "Unclassified Device", spec.ProductName)
	assert.Equal(t, 0.0, spec.Amps)
}

func TestGenericFind_Deterministic(t *testing.T) {
	snap := newSnap(t, "Wall Strobe", "Standard")
	first := genericRepo(t).Find(snap, extract(snap))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, genericRepo(t).Find(snap, extract(snap)))
	}
}
