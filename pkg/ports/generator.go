package ports

import "github.com/provisio/provisio/pkg/domain"

// CodeGenerator renders a confirmed configuration as infrastructure code
// (HCL, ARM templates, Bicep). Implementations must be deterministic for a
// given snapshot so generated code can be asserted and diffed.
type CodeGenerator interface {
	Generate(snap domain.Snapshot) (string, error)
}

// CostEstimator produces a monthly cost estimate for a resource configuration.
// Estimates are advisory; implementations fill the breakdown so that the
// component costs sum to the reported total.
type CostEstimator interface {
	Estimate(resource domain.ResourceType, cfg domain.Config) (*domain.CostEstimate, error)
}
