package mapping

import (
	"strings"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
)

// Confidence scores how much evidence backed a mapping, as the mean of
// four signals in [0,1]: text richness, extracted parameter completeness,
// identity specificity, and electrical grounding.  The score is
// informational; it never gates a result.
func Confidence(snap device.Snapshot, params param_extractor.Parameters,
	identity device.Identity, spec device.Specification) float64 {

	signals := []float64{
		textRichness(snap),
		parameterCompleteness(params),
		identitySpecificity(identity, snap),
		electricalGrounding(spec),
	}

	sum := 0.0
	for _, s := range signals {
		sum += s
	}
	return clamp01(sum / float64(len(signals)))
}

// textRichness rewards descriptive family/type texts: more words give the
// classifier more to work with.
func textRichness(snap device.Snapshot) float64 {
	words := len(strings.Fields(snap.CombinedText()))
	switch {
	case words >= 4:
		return 1.0
	case words == 3:
		return 0.8
	case words == 2:
		return 0.6
	case words == 1:
		return 0.3
	default:
		return 0.0
	}
}

// parameterCompleteness measures how many of the key parameters the
// extractor recovered.
func parameterCompleteness(params param_extractor.Parameters) float64 {
	keys := []param_extractor.Name{
		param_extractor.Candela,
		param_extractor.Wattage,
		param_extractor.Current,
		param_extractor.ModelNumber,
	}
	found := 0
	for _, k := range keys {
		if _, ok := params[k]; ok {
			found++
		}
	}
	return float64(found) / float64(len(keys))
}

// identitySpecificity rewards a definite identity, with a bonus when
// host-model capability flags corroborate it.
func identitySpecificity(identity device.Identity, snap device.Snapshot) float64 {
	if identity.IsUnknown() {
		return 0.0
	}
	score := 0.6
	if identity.Subtype != device.SubtypeNone {
		score += 0.2
	}
	if snap.Capabilities.Any() {
		score += 0.2
	}
	return score
}

// electricalGrounding scores the specification's provenance: catalog-backed
// values are trustworthy, synthesized ones are a guess.
func electricalGrounding(spec device.Specification) float64 {
	switch spec.Source {
	case device.SourceDirect:
		return 1.0
	case device.SourcePattern:
		return 0.9
	case device.SourceFamilyMapping:
		return 0.7
	case device.SourceFallback:
		return 0.5
	default:
		if spec.Amps > 0 || spec.Watts > 0 {
			return 0.3
		}
		return 0.0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
