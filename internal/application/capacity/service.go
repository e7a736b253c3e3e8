// Package capacity is the application-layer orchestrator for circuit
// validation: it runs the domain validator over whole requests of branches
// and power supplies, records metrics, and publishes findings to the
// messaging layer.
package capacity

import (
	"context"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/circuit"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/validation"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

// Request is one validation submission: standalone branches plus complete
// power supplies.  Either list may be empty, but not both.
type Request struct {
	Branches []circuit.Branch      `json:"branches"`
	Supplies []circuit.PowerSupply `json:"supplies"`
}

// BranchReport pairs a branch with its assessment and findings.
type BranchReport struct {
	BranchID   string             `json:"branch_id"`
	Assessment circuit.Assessment `json:"assessment"`
	Issues     []validation.Issue `json:"issues"`
	Valid      bool               `json:"valid"`
}

// SupplyReport pairs a power supply with its assessment and findings,
// branch findings included.
type SupplyReport struct {
	SupplyID   string                   `json:"supply_id"`
	Assessment circuit.SupplyAssessment `json:"assessment"`
	Issues     []validation.Issue       `json:"issues"`
	Valid      bool                     `json:"valid"`
}

// Report is the full validation outcome for a Request.
type Report struct {
	Branches []BranchReport `json:"branches,omitempty"`
	Supplies []SupplyReport `json:"supplies,omitempty"`

	TotalIssues int             `json:"total_issues"`
	Worst       common.Severity `json:"worst_severity"`
	Valid       bool            `json:"valid"`
}

// Service validates circuit requests.  Safe for concurrent use.
type Service struct {
	validator *circuit.Validator
	publisher kafka.IssuePublisher
	metrics   *prometheus.EngineMetrics
	log       logging.Logger
}

// New constructs a Service.  Publisher and metrics may be nil-equivalent
// (NopPublisher, nil) in tests and CLI runs.
func New(limits circuit.Limits, publisher kafka.IssuePublisher, metrics *prometheus.EngineMetrics, log logging.Logger) (*Service, error) {
	validator, err := circuit.NewValidator(limits)
	if err != nil {
		return nil, err
	}
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &Service{
		validator: validator,
		publisher: publisher,
		metrics:   metrics,
		log:       log.Named("capacity"),
	}, nil
}

// Limits returns the limits the service validates against.
func (s *Service) Limits() circuit.Limits { return s.validator.Limits() }

// Validate runs every branch and supply in the request through the domain
// validator.  Findings never abort the run; the error return covers only a
// malformed request.  Publishing findings is best effort and failures are
// logged, never surfaced.
func (s *Service) Validate(ctx context.Context, req Request) (Report, error) {
	if len(req.Branches) == 0 && len(req.Supplies) == 0 {
		return Report{}, apperrors.InvalidParam("request carries no branches or supplies")
	}

	report := Report{Worst: common.SeverityInfo, Valid: true}

	for _, b := range req.Branches {
		assessment, result := s.validator.ValidateBranch(b)
		report.Branches = append(report.Branches, BranchReport{
			BranchID:   b.ID,
			Assessment: assessment,
			Issues:     result.Issues,
			Valid:      result.Valid(),
		})
		s.account(ctx, &report, b.ID, "branch", result)
		s.observeBranch(assessment)
	}

	for _, p := range req.Supplies {
		assessment, result := s.validator.ValidatePowerSupply(p)
		report.Supplies = append(report.Supplies, SupplyReport{
			SupplyID:   p.ID,
			Assessment: assessment,
			Issues:     result.Issues,
			Valid:      result.Valid(),
		})
		s.account(ctx, &report, p.ID, "power_supply", result)
		for _, branchAssessment := range assessment.Branches {
			s.observeBranch(branchAssessment)
		}
	}

	s.log.Info("circuit validation finished",
		logging.Int("branches", len(req.Branches)),
		logging.Int("supplies", len(req.Supplies)),
		logging.Int("issues", report.TotalIssues),
		logging.String("worst", report.Worst.String()))
	return report, nil
}

func (s *Service) account(ctx context.Context, report *Report, subjectID, kind string, result validation.Result) {
	report.TotalIssues += len(result.Issues)
	if worst := result.Worst(); worst > report.Worst {
		report.Worst = worst
	}
	if !result.Valid() {
		report.Valid = false
	}

	if s.metrics != nil {
		for _, issue := range result.Issues {
			s.metrics.ValidationIssuesTotal.
				WithLabelValues(issue.Severity.String(), issue.Code).Inc()
		}
	}

	if len(result.Issues) == 0 {
		return
	}
	event := kafka.IssueEvent{
		CircuitID: subjectID,
		Kind:      kind,
		Worst:     result.Worst(),
		Issues:    result.Issues,
	}
	if err := s.publisher.PublishIssues(ctx, event); err != nil {
		s.log.Warn("issue publication failed",
			logging.String("circuit_id", subjectID), logging.Err(err))
	}
}

func (s *Service) observeBranch(a circuit.Assessment) {
	if s.metrics == nil {
		return
	}
	s.metrics.BranchUtilization.
		WithLabelValues(string(a.LimitingFactor)).Observe(a.UtilizationPercent)
}
