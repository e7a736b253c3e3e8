package circuit

import (
	"fmt"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/validation"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

// Regulatory hard limits for a notification appliance circuit branch.
// These can never be exceeded in a compliant design regardless of the
// configured spare fraction.
const (
	HardMaxAmps      = 3.0
	HardMaxUnitLoads = 139
)

// Limiting-factor assessment thresholds.
const (
	utilizationCurrentThreshold = 90.0 // percent
	voltageDropFactorThreshold  = 10.0 // percent
	unitLoadFactorThreshold     = 40   // unit loads, independent secondary check
)

// LimitingFactor names the constraint closest to exhaustion on a branch.
type LimitingFactor string

const (
	FactorCurrent     LimitingFactor = "CURRENT"
	FactorVoltageDrop LimitingFactor = "VOLTAGE_DROP"
	FactorUnitLoads   LimitingFactor = "UNIT_LOADS"
	FactorNone        LimitingFactor = "NONE"
)

// Limits carries the tunable validation parameters.  The zero value is not
// usable; construct through DefaultLimits and override fields as needed.
type Limits struct {
	// SpareFraction is the safety margin subtracted from rated capacity
	// before comparison, e.g. 0.20 reserves 20%.
	SpareFraction float64

	// SystemVoltage is the nominal circuit voltage for drop percentages.
	SystemVoltage float64

	// MaxDropPercent is the maximum acceptable voltage drop percentage.
	MaxDropPercent float64
}

// DefaultLimits returns the regulatory defaults: 20% spare, 24 V system,
// 10% maximum voltage drop.
func DefaultLimits() Limits {
	return Limits{
		SpareFraction:  0.20,
		SystemVoltage:  device.SystemVoltage,
		MaxDropPercent: 10.0,
	}
}

// Validate checks the limits themselves.
func (l Limits) Validate() error {
	if l.SpareFraction < 0 || l.SpareFraction >= 1 {
		return errors.InvalidParam("spare fraction must be in [0, 1)")
	}
	if l.SystemVoltage <= 0 {
		return errors.InvalidParam("system voltage must be positive")
	}
	if l.MaxDropPercent <= 0 {
		return errors.InvalidParam("max drop percent must be positive")
	}
	return nil
}

// EffectiveMaxAmps is the spare-adjusted branch current capacity.
func (l Limits) EffectiveMaxAmps() float64 {
	return HardMaxAmps * (1 - l.SpareFraction)
}

// EffectiveMaxUnitLoads is the spare-adjusted branch unit-load capacity.
func (l Limits) EffectiveMaxUnitLoads() float64 {
	return HardMaxUnitLoads * (1 - l.SpareFraction)
}

// Assessment is the computed capacity picture of one branch.
type Assessment struct {
	TotalAmps      float64 `json:"total_amps"`
	TotalWatts     float64 `json:"total_watts"`
	TotalUnitLoads int     `json:"total_unit_loads"`

	EffectiveMaxAmps      float64 `json:"effective_max_amps"`
	EffectiveMaxUnitLoads float64 `json:"effective_max_unit_loads"`

	// UtilizationPercent is the worst of the current and unit-load
	// utilizations against the spare-adjusted capacities, in percent.
	UtilizationPercent float64 `json:"utilization_percent"`

	LimitingFactor LimitingFactor `json:"limiting_factor"`

	VoltageDrop        float64 `json:"voltage_drop"`
	VoltageDropPercent float64 `json:"voltage_drop_percent"`
}

// Validator evaluates branches and power supplies against the configured
// limits.  It is stateless and safe for concurrent use.
type Validator struct {
	limits Limits
}

// NewValidator constructs a Validator, rejecting invalid limits.
func NewValidator(limits Limits) (*Validator, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	return &Validator{limits: limits}, nil
}

// Limits returns the configured limits.
func (v *Validator) Limits() Limits { return v.limits }

// ValidateBranch computes exact totals for the branch and evaluates, in
// fixed order: hard limits (error severity), spare-adjusted limits
// (warning severity), utilization and limiting factor, then voltage drop
// when the branch has a cable run.
func (v *Validator) ValidateBranch(b Branch) (Assessment, validation.Result) {
	var result validation.Result

	a := Assessment{
		TotalAmps:             b.TotalAmps(),
		TotalWatts:            b.TotalWatts(),
		TotalUnitLoads:        b.TotalUnitLoads(),
		EffectiveMaxAmps:      v.limits.EffectiveMaxAmps(),
		EffectiveMaxUnitLoads: v.limits.EffectiveMaxUnitLoads(),
		LimitingFactor:        FactorNone,
	}

	// Hard limits: breaching these blocks the design outright.
	if a.TotalAmps > HardMaxAmps {
		result.Add(validation.NewIssue(common.SeverityError,
			string(errors.ErrCodeCircuitHardLimit),
			fmt.Sprintf("branch current %.3f A exceeds the %.1f A hard limit", a.TotalAmps, HardMaxAmps)).
			WithContext("measured_amps", fmt.Sprintf("%.3f", a.TotalAmps)).
			WithContext("limit_amps", fmt.Sprintf("%.1f", HardMaxAmps)))
	}
	if a.TotalUnitLoads > HardMaxUnitLoads {
		result.Add(validation.NewIssue(common.SeverityError,
			string(errors.ErrCodeCircuitHardLimit),
			fmt.Sprintf("branch unit loads %d exceed the %d UL hard limit", a.TotalUnitLoads, HardMaxUnitLoads)).
			WithContext("measured_ul", fmt.Sprintf("%d", a.TotalUnitLoads)).
			WithContext("limit_ul", fmt.Sprintf("%d", HardMaxUnitLoads)))
	}

	// Spare-adjusted limits: warnings only, and only when the hard limit
	// itself is intact.
	if a.TotalAmps <= HardMaxAmps && a.TotalAmps > a.EffectiveMaxAmps {
		result.Add(validation.NewIssue(common.SeverityWarning,
			string(errors.ErrCodeCircuitSpareLimit),
			fmt.Sprintf("branch current %.3f A exceeds the spare-adjusted capacity %.3f A",
				a.TotalAmps, a.EffectiveMaxAmps)).
			WithContext("measured_amps", fmt.Sprintf("%.3f", a.TotalAmps)).
			WithContext("effective_max_amps", fmt.Sprintf("%.3f", a.EffectiveMaxAmps)))
	}
	if a.TotalUnitLoads <= HardMaxUnitLoads && float64(a.TotalUnitLoads) > a.EffectiveMaxUnitLoads {
		result.Add(validation.NewIssue(common.SeverityWarning,
			string(errors.ErrCodeCircuitSpareLimit),
			fmt.Sprintf("branch unit loads %d exceed the spare-adjusted capacity %.1f UL",
				a.TotalUnitLoads, a.EffectiveMaxUnitLoads)).
			WithContext("measured_ul", fmt.Sprintf("%d", a.TotalUnitLoads)).
			WithContext("effective_max_ul", fmt.Sprintf("%.1f", a.EffectiveMaxUnitLoads)))
	}

	// Utilization against spare-adjusted capacities.
	currentUtil := 0.0
	if a.EffectiveMaxAmps > 0 {
		currentUtil = a.TotalAmps / a.EffectiveMaxAmps * 100
	}
	ulUtil := 0.0
	if a.EffectiveMaxUnitLoads > 0 {
		ulUtil = float64(a.TotalUnitLoads) / a.EffectiveMaxUnitLoads * 100
	}
	a.UtilizationPercent = currentUtil
	if ulUtil > a.UtilizationPercent {
		a.UtilizationPercent = ulUtil
	}

	// Voltage drop, when the branch declares a cable run.
	if b.Gauge != "" && b.CableLengthFt > 0 {
		drop, err := VoltageDrop(a.TotalAmps, b.Gauge, b.CableLengthFt)
		if err != nil {
			result.Add(validation.NewIssue(common.SeverityError,
				string(errors.ErrCodeCircuitEmptyGauge), err.Error()))
		} else {
			a.VoltageDrop = drop
			a.VoltageDropPercent = VoltageDropPercent(drop, v.limits.SystemVoltage)
			if a.VoltageDropPercent > v.limits.MaxDropPercent {
				result.Add(validation.NewIssue(common.SeverityError,
					string(errors.ErrCodeVoltageDropExceeded),
					fmt.Sprintf("voltage drop %.2f%% exceeds the %.1f%% maximum",
						a.VoltageDropPercent, v.limits.MaxDropPercent)).
					WithContext("drop_percent", fmt.Sprintf("%.2f", a.VoltageDropPercent)).
					WithContext("max_percent", fmt.Sprintf("%.1f", v.limits.MaxDropPercent)))
			}
		}
	}

	a.LimitingFactor = v.limitingFactor(a)
	return a, result
}

// limitingFactor applies the fixed-threshold assessment: current
// utilization first, then voltage drop, then the independent unit-load
// secondary check.
func (v *Validator) limitingFactor(a Assessment) LimitingFactor {
	if a.UtilizationPercent >= utilizationCurrentThreshold {
		return FactorCurrent
	}
	if a.VoltageDropPercent >= voltageDropFactorThreshold {
		return FactorVoltageDrop
	}
	if a.TotalUnitLoads >= unitLoadFactorThreshold {
		return FactorUnitLoads
	}
	return FactorNone
}
