// Package mapping orchestrates the full analysis pipeline for one device:
// parameter extraction, identity classification, specification resolution,
// and snapshot enhancement.  Results for interchangeable devices are
// served from the signature-keyed mapping cache.
package mapping

import (
	"context"
	"time"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/cache"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/device_classifier"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/spec_resolver"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

// Result is the outcome of analyzing one device.
type Result struct {
	ElementID       string                     `json:"element_id"`
	Parameters      param_extractor.Parameters `json:"parameters,omitempty"`
	Identity        device.Identity            `json:"identity"`
	Characteristics device.Characteristics     `json:"characteristics"`
	Specification   device.Specification       `json:"specification"`
	Enhanced        device.Snapshot            `json:"enhanced_snapshot"`
	Confidence      float64                    `json:"confidence"`
	Success         bool                       `json:"success"`
	Err             error                      `json:"-"`
	ErrorDetail     string                     `json:"error,omitempty"`
	Duration        time.Duration              `json:"duration_ns"`
	CacheHit        bool                       `json:"cache_hit"`
}

// Engine wires the intelligence components together.  It is safe for
// concurrent use; every collaborator is either stateless or internally
// synchronized.
type Engine struct {
	extractor    *param_extractor.Extractor
	classifier   *device_classifier.Classifier
	notification *spec_resolver.Resolver
	initiating   *spec_resolver.Resolver
	generic      *spec_resolver.GenericRepository

	cache   *cache.Store[Result]
	metrics *prometheus.EngineMetrics
	log     logging.Logger
}

// Deps carries the engine's collaborators.  Cache and Metrics may be nil;
// the engine then runs uncached and unmetered.
type Deps struct {
	Extractor    *param_extractor.Extractor
	Classifier   *device_classifier.Classifier
	Notification *spec_resolver.Resolver
	Initiating   *spec_resolver.Resolver
	Generic      *spec_resolver.GenericRepository
	Cache        *cache.Store[Result]
	Metrics      *prometheus.EngineMetrics
	Logger       logging.Logger
}

// NewEngine constructs the mapping engine.
func NewEngine(deps Deps) *Engine {
	log := deps.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Engine{
		extractor:    deps.Extractor,
		classifier:   deps.Classifier,
		notification: deps.Notification,
		initiating:   deps.Initiating,
		generic:      deps.Generic,
		cache:        deps.Cache,
		metrics:      deps.Metrics,
		log:          log.Named("mapping"),
	}
}

// Analyze runs the full pipeline for one snapshot.  It never panics: a
// panic anywhere in the pipeline is recovered into a non-success result
// carrying a MAP_002 error.  A device that cannot be identified still
// leaves with a specification from the generic repository, so circuit
// calculations downstream always have electrical values to work with.
func (e *Engine) Analyze(ctx context.Context, snap device.Snapshot) Result {
	start := time.Now()

	if e.cache != nil {
		if cached, ok := e.cache.Get(snap.Signature()); ok {
			return e.instantiate(cached, snap, start)
		}
	}

	result := e.analyzeUncached(ctx, snap)
	result.Duration = time.Since(start)

	if e.cache != nil && result.Err == nil {
		e.cache.Set(snap.Signature(), result)
	}
	e.observe(result)
	return result
}

// instantiate re-targets a cached template result at a concrete device:
// identity and specification carry over, per-device fields are recomputed.
func (e *Engine) instantiate(template Result, snap device.Snapshot, start time.Time) Result {
	out := template
	out.ElementID = snap.ElementID
	out.Enhanced = enhance(snap, template.Specification)
	out.CacheHit = true
	out.Duration = time.Since(start)
	if e.metrics != nil {
		e.metrics.CacheHitsTotal.WithLabelValues("mapping").Inc()
	}
	return out
}

func (e *Engine) analyzeUncached(ctx context.Context, snap device.Snapshot) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.Newf(apperrors.ErrCodeMappingPanic,
				"mapping pipeline panicked for device %s: %v", snap.ElementID, r)
			e.log.Error("pipeline panic recovered",
				logging.String("element", snap.ElementID), logging.Any("panic", r))
			result = Result{
				ElementID:   snap.ElementID,
				Identity:    device.Unknown,
				Enhanced:    snap,
				Success:     false,
				Err:         err,
				ErrorDetail: err.Error(),
			}
		}
	}()

	result = Result{ElementID: snap.ElementID, Success: true}
	if e.metrics != nil && e.cache != nil {
		e.metrics.CacheMissesTotal.WithLabelValues("mapping").Inc()
	}

	params := e.extractor.Extract(snap)
	result.Parameters = params

	cls, clsErr := e.classifier.Classify(snap, params)
	result.Identity = cls.Identity
	result.Characteristics = cls.Characteristics
	if clsErr != nil {
		// Contradictory evidence: the device still gets a conservative
		// generic specification, but the result is flagged so reviewers
		// see the conflict.
		result.Success = false
		result.Err = clsErr
		result.ErrorDetail = clsErr.Error()
	}
	if e.metrics != nil {
		outcome := "ok"
		if clsErr != nil {
			outcome = "contradiction"
		}
		e.metrics.ClassificationsTotal.WithLabelValues(string(cls.Identity.Kind), outcome).Inc()
	}

	spec := e.resolve(cls, snap, params)
	result.Specification = spec
	result.Enhanced = enhance(snap, spec)
	result.Confidence = Confidence(snap, params, cls.Identity, spec)
	if e.metrics != nil {
		e.metrics.ResolutionsTotal.WithLabelValues(string(spec.Source)).Inc()
	}
	return result
}

// resolve routes by device class and falls through to the generic
// repository on a catalog miss.
func (e *Engine) resolve(cls device_classifier.Classification,
	snap device.Snapshot, params param_extractor.Parameters) device.Specification {

	resolver := e.resolverFor(cls.Identity.Class())
	if resolver != nil {
		in := spec_resolver.Input{
			Snapshot:        snap,
			Identity:        cls.Identity,
			Characteristics: cls.Characteristics,
			Params:          params,
		}
		spec, err := resolver.Resolve(in)
		if err == nil {
			return spec
		}
		if !apperrors.IsCode(err, apperrors.ErrCodeResolutionMiss) {
			e.log.Warn("resolution failed",
				logging.String("element", snap.ElementID), logging.Err(err))
		}
		if e.metrics != nil {
			e.metrics.ResolutionMisses.WithLabelValues(string(cls.Identity.Class())).Inc()
		}
	}
	return e.generic.Find(snap, params)
}

// resolverFor picks the class resolver; modules resolve against the
// initiating catalog, which stocks the module family.
func (e *Engine) resolverFor(class device.Class) *spec_resolver.Resolver {
	switch class {
	case device.ClassNotification:
		return e.notification
	case device.ClassInitiating, device.ClassModule:
		return e.initiating
	default:
		return nil
	}
}

// observe records per-device metrics.
func (e *Engine) observe(result Result) {
	if e.metrics == nil {
		return
	}
	class := string(result.Identity.Class())
	e.metrics.MappingDuration.WithLabelValues(class).Observe(result.Duration.Seconds())
	e.metrics.MappingConfidence.WithLabelValues(class).Observe(result.Confidence)
}

// enhance overlays resolved specification values onto the snapshot.  Only
// non-zero specification values apply, and explicit snapshot values the
// overlay displaces are preserved in the property bag.
func enhance(snap device.Snapshot, spec device.Specification) device.Snapshot {
	watts, amps := -1.0, -1.0
	unitLoads := -1
	overlay := common.Metadata{}

	if spec.Amps > 0 {
		amps = spec.Amps
		if snap.Amps > 0 && snap.Amps != spec.Amps {
			overlay["superseded.amps"] = snap.Amps
		}
	} else if spec.Watts > 0 && snap.Amps <= 0 {
		// Audio appliances publish tap wattage only; the alarm current
		// follows from the nominal circuit voltage.
		amps = device.AmpsFromWatts(spec.Watts)
	}
	if spec.Watts > 0 {
		watts = spec.Watts
		if snap.Watts > 0 && snap.Watts != spec.Watts {
			overlay["superseded.watts"] = snap.Watts
		}
	}
	if spec.UnitLoads > 0 {
		unitLoads = spec.UnitLoads
	}

	out := snap.WithElectrical(watts, amps, unitLoads)
	if spec.SKU != "" {
		overlay["resolved_sku"] = spec.SKU
	}
	if spec.ProductName != "" {
		overlay["resolved_product"] = spec.ProductName
	}
	overlay["resolution_source"] = string(spec.Source)
	return out.WithProperties(overlay)
}
