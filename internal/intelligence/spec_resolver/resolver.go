// Package spec_resolver turns a classified device into a concrete catalog
// specification.  One generic resolution engine serves both device
// classes, parameterized only by the catalog index it probes; the chain
// runs direct text match, composite pattern match, family-alias default,
// then structured fallbacks, and reports which step produced the result.
package spec_resolver

import (
	"strconv"
	"strings"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/catalog"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/cache"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

// weatherproofUplift is the conservative current multiplier applied when a
// weatherproof device is served from a standard-environment record.
const weatherproofUplift = 1.15

// Input carries everything a resolution pass may consult.
type Input struct {
	Snapshot        device.Snapshot
	Identity        device.Identity
	Characteristics device.Characteristics
	Params          param_extractor.Parameters
}

// Resolver resolves specifications against one class catalog index.  The
// index is read through a provider on every resolution so a catalog
// reload takes effect without rebuilding the resolver.
type Resolver struct {
	index func() *catalog.Index
	cache *cache.Store[device.Specification]
	log   logging.Logger
}

// New constructs a Resolver over a fixed index.  A nil logger falls back
// to the no-op logger.
func New(index *catalog.Index, log logging.Logger) *Resolver {
	return NewDynamic(func() *catalog.Index { return index }, log)
}

// NewDynamic constructs a Resolver over an index provider.  Each Resolve
// call reads the provider exactly once, so a single resolution never
// mixes two catalog generations.
func NewDynamic(index func() *catalog.Index, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Resolver{index: index, log: log.Named("spec_resolver")}
}

// WithCache attaches a specification cache.  Keys carry the catalog
// version, so entries from a superseded generation simply stop being
// probed after a reload and age out under the TTL.
func (r *Resolver) WithCache(store *cache.Store[device.Specification]) *Resolver {
	r.cache = store
	return r
}

// Resolve runs the resolution chain.  A miss at every step returns a
// RES_001 error so the caller can fall through to the generic repository;
// misses are never cached.
func (r *Resolver) Resolve(in Input) (device.Specification, error) {
	idx := r.index()
	key := r.cacheKey(idx, in)
	if r.cache != nil {
		if spec, ok := r.cache.Get(key); ok {
			return spec, nil
		}
	}
	spec, err := r.resolve(idx, in)
	if err != nil {
		return device.Specification{}, err
	}
	if r.cache != nil {
		r.cache.Set(key, spec)
	}
	return spec, nil
}

func (r *Resolver) resolve(idx *catalog.Index, in Input) (device.Specification, error) {
	if spec, ok := r.direct(idx, in); ok {
		return spec, nil
	}
	if spec, ok := r.pattern(idx, in); ok {
		return spec, nil
	}
	if spec, ok := r.familyMapping(idx, in); ok {
		return spec, nil
	}
	if spec, ok := r.typeScan(idx, in); ok {
		return spec, nil
	}
	return device.Specification{}, apperrors.Newf(apperrors.ErrCodeResolutionMiss,
		"no catalog record for %q (identity %s)",
		in.Snapshot.CombinedText(), in.Identity.String())
}

// cacheKey folds every input the chain consults into a deterministic key:
// the catalog version, the combined snapshot text, the identity, the
// characteristic axes, and the rating token.
func (r *Resolver) cacheKey(idx *catalog.Index, in Input) string {
	return strings.Join([]string{
		idx.Version(),
		in.Snapshot.CombinedText(),
		string(in.Identity.Kind),
		string(in.Identity.Subtype),
		string(in.Characteristics.Mounting),
		string(in.Characteristics.EnvironmentalRating),
		r.ratingToken(in),
	}, "|")
}

// direct probes the description/SKU/part-code lookup with each text the
// snapshot offers, most specific first.  Rating-laddered records share one
// description, so the token-qualified key is probed before the bare text
// can hit whichever rung happened to be indexed first.
func (r *Resolver) direct(idx *catalog.Index, in Input) (device.Specification, bool) {
	texts := []string{
		in.Snapshot.CombinedText(),
		in.Snapshot.FamilyName,
		in.Snapshot.TypeName,
	}
	if model, ok := in.Params.Str(param_extractor.ModelNumber); ok {
		texts = append(texts, model)
	}
	token := r.ratingToken(in)
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		entry, ok := idx.DirectMatch(text + " " + token)
		if !ok {
			entry, ok = idx.DirectMatch(text)
		}
		if ok {
			r.log.Debug("direct match",
				logging.String("element", in.Snapshot.ElementID),
				logging.String("sku", entry.SKU))
			return specFrom(entry, device.SourceDirect), true
		}
	}
	return device.Specification{}, false
}

// pattern probes the composite (type, mounting, environment, token)
// lookup, then relaxes one axis at a time: rating token to the preferred
// candela, weatherproof to an uplifted standard record, ceiling to a
// relabeled wall record.
func (r *Resolver) pattern(idx *catalog.Index, in Input) (device.Specification, bool) {
	token := r.ratingToken(in)

	for _, typeToken := range typeCandidates(in.Identity) {
		exact := catalog.PatternKey{
			Type:     typeToken,
			Mounting: in.Characteristics.Mounting,
			Env:      in.Characteristics.EnvironmentalRating,
			Token:    token,
		}
		if entry, ok := idx.Pattern(exact); ok {
			return specFrom(entry, device.SourcePattern), true
		}

		// Unstocked rating token: fall back to the preferred candela at
		// the same position.
		if token != catalog.PreferredCandelaToken {
			relaxed := exact
			relaxed.Token = catalog.PreferredCandelaToken
			if entry, ok := idx.Pattern(relaxed); ok {
				return specFrom(entry, device.SourceFallback), true
			}
		}

		if in.Characteristics.EnvironmentalRating == device.RatingWeatherproof {
			if spec, ok := r.weatherproofFallback(idx, exact); ok {
				return spec, true
			}
		}
		if in.Characteristics.Mounting == device.MountCeiling {
			if spec, ok := r.ceilingFallback(idx, exact); ok {
				return spec, true
			}
		}
	}
	return device.Specification{}, false
}

// weatherproofFallback serves a weatherproof request from the standard
// environment record with a conservative current uplift.
func (r *Resolver) weatherproofFallback(idx *catalog.Index, key catalog.PatternKey) (device.Specification, bool) {
	key.Env = device.RatingStandard
	entry, ok := idx.Pattern(key)
	if !ok && key.Token != catalog.PreferredCandelaToken {
		key.Token = catalog.PreferredCandelaToken
		entry, ok = idx.Pattern(key)
	}
	if !ok {
		return device.Specification{}, false
	}
	spec := specFrom(entry, device.SourceFallback)
	spec.Amps = device.RoundAmps(spec.Amps * weatherproofUplift)
	spec.EnvironmentalRating = device.RatingWeatherproof
	spec.ProductName = "Weatherproof " + entry.Description
	return spec, true
}

// ceilingFallback serves a ceiling request from the wall record under a
// relabeled product name; wall draws are the published baseline.
func (r *Resolver) ceilingFallback(idx *catalog.Index, key catalog.PatternKey) (device.Specification, bool) {
	key.Mounting = device.MountWall
	entry, ok := idx.Pattern(key)
	if !ok && key.Token != catalog.PreferredCandelaToken {
		key.Token = catalog.PreferredCandelaToken
		entry, ok = idx.Pattern(key)
	}
	if !ok {
		return device.Specification{}, false
	}
	spec := specFrom(entry, device.SourceFallback)
	spec.Mounting = device.MountCeiling
	spec.ProductName = "Ceiling " + entry.Description
	return spec, true
}

// familyMapping resolves the snapshot's family text through the alias
// table to a canonical family and takes that family's default record.
func (r *Resolver) familyMapping(idx *catalog.Index, in Input) (device.Specification, bool) {
	family, ok := idx.ResolveFamilyAlias(in.Snapshot.FamilyName)
	if !ok {
		return device.Specification{}, false
	}
	entry, ok := idx.FamilyDefault(family, r.ratingToken(in))
	if !ok {
		return device.Specification{}, false
	}
	return specFrom(entry, device.SourceFamilyMapping), true
}

// typeScan is the last resolver-owned fallback: the first catalog entry of
// a matching type token, in deterministic catalog order.
func (r *Resolver) typeScan(idx *catalog.Index, in Input) (device.Specification, bool) {
	candidates := typeCandidates(in.Identity)
	for _, entry := range idx.Entries() {
		for _, typeToken := range candidates {
			if entry.Type == typeToken {
				return specFrom(entry, device.SourceFallback), true
			}
		}
	}
	return device.Specification{}, false
}

// ratingToken picks the rating token to probe with: an extracted candela
// value, then the preferred candela for strobe-bearing appliances, then
// the default sensitivity token.
func (r *Resolver) ratingToken(in Input) string {
	if cd, ok := in.Params.Num(param_extractor.Candela); ok && cd > 0 {
		return strconv.FormatFloat(cd, 'f', -1, 64)
	}
	if in.Identity.HasStrobe() {
		return catalog.PreferredCandelaToken
	}
	return catalog.DefaultSensitivityToken
}

// typeCandidates lists the catalog type tokens to probe for an identity,
// most specific first.
func typeCandidates(identity device.Identity) []string {
	if identity.Subtype == device.SubtypeNone {
		return []string{string(identity.Kind)}
	}
	return []string{
		string(identity.Kind) + "_" + string(identity.Subtype),
		string(identity.Kind),
	}
}

// specFrom copies an indexed catalog record into an immutable
// specification value.
func specFrom(entry catalog.Indexed, source device.MatchSource) device.Specification {
	return device.Specification{
		SKU:                 entry.SKU,
		PartCode:            entry.PartCode,
		ProductName:         entry.Description,
		Amps:                device.RoundAmps(entry.Amps),
		StandbyAmps:         entry.StandbyAmps,
		Watts:               device.RoundWatts(entry.Watts),
		UnitLoads:           entry.UnitLoads,
		RatingToken:         entry.Token,
		TTapCompatible:      entry.TTapCompatible,
		Mounting:            entry.Mounting,
		EnvironmentalRating: entry.EnvironmentalRating,
		ULListed:            entry.ULListed,
		Source:              source,
	}
}
