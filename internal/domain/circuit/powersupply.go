package circuit

import (
	"fmt"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/validation"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

// PowerSupply is a collection of circuit branches fed from one rated
// source.
type PowerSupply struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	Branches []Branch `json:"branches"`

	// MaxAmps is the rated output current of the supply.
	MaxAmps float64 `json:"max_amps"`

	// SpareFraction overrides the validator's spare fraction for this
	// supply when positive.
	SpareFraction float64 `json:"spare_fraction,omitempty"`
}

// TotalAmps returns the exact sum of branch currents.
func (p PowerSupply) TotalAmps() float64 {
	total := 0.0
	for _, b := range p.Branches {
		total += b.TotalAmps()
	}
	return total
}

// EffectiveMaxAmps returns the spare-adjusted capacity of the supply.
func (p PowerSupply) EffectiveMaxAmps(defaultSpare float64) float64 {
	spare := defaultSpare
	if p.SpareFraction > 0 {
		spare = p.SpareFraction
	}
	return p.MaxAmps * (1 - spare)
}

// SupplyAssessment is the computed capacity picture of one power supply.
type SupplyAssessment struct {
	TotalAmps        float64      `json:"total_amps"`
	EffectiveMaxAmps float64      `json:"effective_max_amps"`
	Branches         []Assessment `json:"branches"`
}

// ValidatePowerSupply validates every branch, then checks the summed
// branch current against the supply's rated and spare-adjusted capacities
// with the same two-tier severity pattern as branch validation.  A rated
// overload is critical: the supply physically cannot serve the load.
func (v *Validator) ValidatePowerSupply(p PowerSupply) (SupplyAssessment, validation.Result) {
	var result validation.Result
	sa := SupplyAssessment{
		EffectiveMaxAmps: p.EffectiveMaxAmps(v.limits.SpareFraction),
	}

	for _, b := range p.Branches {
		assessment, branchResult := v.ValidateBranch(b)
		sa.Branches = append(sa.Branches, assessment)
		result.Merge(branchResult)
	}
	sa.TotalAmps = p.TotalAmps()

	if p.MaxAmps > 0 && sa.TotalAmps > p.MaxAmps {
		result.Add(validation.NewIssue(common.SeverityCritical,
			string(errors.ErrCodePowerSupplyOverloaded),
			fmt.Sprintf("supply load %.3f A exceeds the %.1f A rated output", sa.TotalAmps, p.MaxAmps)).
			WithContext("measured_amps", fmt.Sprintf("%.3f", sa.TotalAmps)).
			WithContext("rated_amps", fmt.Sprintf("%.1f", p.MaxAmps)))
	} else if sa.EffectiveMaxAmps > 0 && sa.TotalAmps > sa.EffectiveMaxAmps {
		result.Add(validation.NewIssue(common.SeverityWarning,
			string(errors.ErrCodeCircuitSpareLimit),
			fmt.Sprintf("supply load %.3f A exceeds the spare-adjusted capacity %.3f A",
				sa.TotalAmps, sa.EffectiveMaxAmps)).
			WithContext("measured_amps", fmt.Sprintf("%.3f", sa.TotalAmps)).
			WithContext("effective_max_amps", fmt.Sprintf("%.3f", sa.EffectiveMaxAmps)))
	}

	return sa, result
}
