package domain

// DefaultDisclaimer is attached to estimates that carry no specific one.
const DefaultDisclaimer = "Estimates are approximate and may vary based on actual usage."

// CostComponent is one line of a cost breakdown.
type CostComponent struct {
	Component   string  `json:"component"`
	Details     string  `json:"details,omitempty"`
	MonthlyCost float64 `json:"monthly_cost"`
}

// CostEstimate is a purely derived monthly cost projection. The breakdown
// always sums to MonthlyTotal to the cent: components are rounded once when
// appended and the total is their exact sum.
type CostEstimate struct {
	ResourceType string          `json:"resource_type"`
	MonthlyTotal float64         `json:"estimated_monthly_cost"`
	Currency     string          `json:"currency"`
	Breakdown    []CostComponent `json:"breakdown"`
	Disclaimer   string          `json:"disclaimer"`
}
