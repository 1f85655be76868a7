package domain

// TurnRequest is one inbound conversation message.
type TurnRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// CreatedResource is the outcome of a provisioner dispatch. Failure is a
// regular outcome (Success false, Error set), not a process error: the
// session still lands in the completed state.
type CreatedResource struct {
	Success      bool              `json:"success"`
	ResourceID   string            `json:"resource_id,omitempty"`
	ResourceName string            `json:"resource_name,omitempty"`
	ResourceType string            `json:"resource_type,omitempty"`
	Region       string            `json:"region,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// TurnResult is the structured outcome of one conversation turn.
type TurnResult struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	State     State  `json:"state"`

	// Options is the current menu; empty when free text is expected.
	Options []string `json:"options,omitempty"`

	ResourceSummary map[string]any   `json:"resource_summary,omitempty"`
	CostEstimate    *CostEstimate    `json:"cost_estimate,omitempty"`
	TerraformCode   string           `json:"terraform_code,omitempty"`
	CreatedResource *CreatedResource `json:"created_resource,omitempty"`

	// PendingExecution is set when the session entered the creating state.
	// The caller must replay the turn with ExecuteMessage to dispatch the
	// provisioner; the engine never waits on a timer for it.
	PendingExecution bool `json:"pending_execution,omitempty"`
}
