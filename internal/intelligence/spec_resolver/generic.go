package spec_resolver

import (
	"math"
	"strings"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/catalog"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
)

// Scoring weights for the similarity search.  A bare name hit clears the
// acceptance threshold on its own; capability and power agreement can lift
// a weaker candidate but never carry one alone.
const (
	scoreNameMatch      = 0.5
	scoreCapabilityEach = 0.15
	scorePowerProximity = 0.2
	acceptThreshold     = 0.5

	// powerProximityBand is the relative window for the power signal.
	powerProximityBand = 0.20
)

// GenericRepository serves devices the classifier could not identify or
// the class resolvers could not place: it searches every catalog entry by
// name and similarity, and when even that fails it synthesizes a minimal
// specification from the device's own electrical values.  It never
// returns an error; every device leaves with some specification.
type GenericRepository struct {
	indexes func() []*catalog.Index
	log     logging.Logger
}

// NewGenericRepository searches the entries of the given indexes in
// catalog order.  Ties between equally-scored candidates resolve to the
// earlier entry, so the index order is part of the contract.
func NewGenericRepository(log logging.Logger, indexes ...*catalog.Index) *GenericRepository {
	return NewDynamicGenericRepository(log, func() []*catalog.Index { return indexes })
}

// NewDynamicGenericRepository searches indexes read from a provider on
// every Find, so a catalog reload takes effect without rebuilding the
// repository.
func NewDynamicGenericRepository(log logging.Logger, indexes func() []*catalog.Index) *GenericRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &GenericRepository{indexes: indexes, log: log.Named("generic_repository")}
}

// Find returns the best-scoring catalog entry for the snapshot, or a
// synthesized specification when nothing clears the threshold.  The same
// snapshot always yields the same specification for a given catalog
// generation.
func (r *GenericRepository) Find(snap device.Snapshot, params param_extractor.Parameters) device.Specification {
	text := catalog.NormalizeKey(snap.CombinedText())

	best := catalog.Indexed{}
	bestScore := 0.0
	found := false
	for _, idx := range r.indexes() {
		if idx == nil {
			continue
		}
		for _, entry := range idx.Entries() {
			score := r.score(text, snap, params, entry)
			if score > bestScore {
				best, bestScore, found = entry, score, true
			}
		}
	}

	if found && bestScore >= acceptThreshold {
		r.log.Debug("similarity match",
			logging.String("element", snap.ElementID),
			logging.String("sku", best.SKU),
			logging.Float64("score", bestScore))
		return specFrom(best, device.SourceFallback)
	}
	return r.synthesize(snap, params)
}

// score rates one candidate against the snapshot evidence.
func (r *GenericRepository) score(text string, snap device.Snapshot,
	params param_extractor.Parameters, entry catalog.Indexed) float64 {

	score := 0.0
	desc := catalog.NormalizeKey(entry.Description)
	if text != "" && desc != "" &&
		(strings.Contains(text, desc) || strings.Contains(desc, text)) {
		score += scoreNameMatch
	}

	wantStrobe := snap.Capabilities.HasStrobe || params.Flag(param_extractor.HasStrobe)
	wantSpeaker := snap.Capabilities.HasSpeaker || params.Flag(param_extractor.HasSpeaker)
	if wantStrobe && strings.Contains(entry.Type, "STROBE") {
		score += scoreCapabilityEach
	}
	if wantSpeaker && strings.Contains(entry.Type, "SPEAKER") {
		score += scoreCapabilityEach
	}

	if watts, ok := params.Num(param_extractor.Wattage); ok && watts > 0 && entry.Watts > 0 {
		score += proximityScore(watts, entry.Watts)
	} else if amps, ok := params.Num(param_extractor.Current); ok && amps > 0 && entry.Amps > 0 {
		score += proximityScore(amps, entry.Amps)
	}
	return score
}

// proximityScore grades how close the candidate's electrical value sits to
// the device's own, linearly from full weight at an exact match to zero at
// the edge of the band.  Grading keeps an exact-current record ahead of
// its ladder neighbours, which a flat in-band bonus would tie.
func proximityScore(want, got float64) float64 {
	diff := math.Abs(want-got) / want
	if diff > powerProximityBand {
		return 0
	}
	return scorePowerProximity * (1 - diff/powerProximityBand)
}

// synthesize builds a minimal specification from the device's own
// electricals: its declared current, or current derived from wattage at
// the nominal voltage.  Unit loads default to one.
func (r *GenericRepository) synthesize(snap device.Snapshot, params param_extractor.Parameters) device.Specification {
	amps := snap.Amps
	watts := snap.Watts
	if amps <= 0 {
		if v, ok := params.Num(param_extractor.Current); ok {
			amps = v
		}
	}
	if watts <= 0 {
		if v, ok := params.Num(param_extractor.Wattage); ok {
			watts = v
		}
	}
	if amps <= 0 && watts > 0 {
		amps = device.AmpsFromWatts(watts)
	}

	name := strings.TrimSpace(snap.FamilyName + " " + snap.TypeName)
	if name == "" {
		name = "Unclassified Device"
	}
	r.log.Debug("synthesized specification",
		logging.String("element", snap.ElementID),
		logging.Float64("amps", amps))
	return device.Specification{
		ProductName: name,
		Amps:        device.RoundAmps(amps),
		Watts:       device.RoundWatts(watts),
		UnitLoads:   1,
		Mounting:    device.MountWall,
		Source:      device.SourceSynthesized,
	}
}
