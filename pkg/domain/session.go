package domain

import "time"

// Session represents one user's in-progress provisioning conversation.
// Exactly one session exists per ID; all mutation happens inside a single
// turn while the session manager holds the per-key lock.
type Session struct {
	ID    string `json:"id"`
	State State  `json:"state"`

	// Resource is the selected resource type. Zero value means not yet chosen.
	Resource ResourceType `json:"resource,omitempty"`

	// Config accumulates validated flow answers. It only grows within a
	// flow, and is wiped wholesale on restart or edit.
	Config Config `json:"config,omitempty"`

	// StepIndex is the position within the active flow's step sequence.
	StepIndex int `json:"step_index,omitempty"`

	SubscriptionID   string `json:"subscription_id,omitempty"`
	ResourceGroup    string `json:"resource_group,omitempty"`
	NewResourceGroup bool   `json:"new_resource_group,omitempty"`
	Region           string `json:"region,omitempty"`

	// LastEstimate and LastCreated keep the most recent dispatch artifacts
	// for session inspection; they are recomputed, never authoritative.
	LastEstimate *CostEstimate    `json:"last_estimate,omitempty"`
	LastCreated  *CreatedResource `json:"last_created,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a fresh session in the initial state.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     StateInitial,
		Config:    make(Config),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset wipes everything except identity, returning the session to the
// initial state in place (same ID, configuration cleared).
func (s *Session) Reset() {
	s.State = StateInitial
	s.Resource = ""
	s.Config = make(Config)
	s.StepIndex = 0
	s.SubscriptionID = ""
	s.ResourceGroup = ""
	s.NewResourceGroup = false
	s.Region = ""
	s.LastEstimate = nil
	s.LastCreated = nil
}

// Clone returns a deep copy. Stores hand out clones so no caller ever
// aliases persisted state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Config = s.Config.Clone()
	if s.LastEstimate != nil {
		est := *s.LastEstimate
		est.Breakdown = append([]CostComponent(nil), s.LastEstimate.Breakdown...)
		out.LastEstimate = &est
	}
	if s.LastCreated != nil {
		cr := *s.LastCreated
		if s.LastCreated.Details != nil {
			cr.Details = make(map[string]string, len(s.LastCreated.Details))
			for k, v := range s.LastCreated.Details {
				cr.Details[k] = v
			}
		}
		out.LastCreated = &cr
	}
	return &out
}

// Snapshot projects the session into the read-only form handed to the cost
// estimator, code generator and provisioner. Call only once the engine has
// validated the full flow; partially-validated values never reach it.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SessionID:        s.ID,
		Resource:         s.Resource,
		SubscriptionID:   s.SubscriptionID,
		ResourceGroup:    s.ResourceGroup,
		NewResourceGroup: s.NewResourceGroup,
		Region:           s.Region,
		Config:           s.Config.Clone(),
	}
}

// Summary returns the resource summary map surfaced on confirmation turns.
func (s *Session) Summary() map[string]any {
	var rt any
	if s.Resource != "" {
		rt = string(s.Resource)
	}
	return map[string]any{
		"resource_type":   rt,
		"subscription_id": s.SubscriptionID,
		"resource_group":  s.ResourceGroup,
		"create_new_rg":   s.NewResourceGroup,
		"region":          s.Region,
		"configuration":   map[string]any(s.Config.Clone()),
	}
}

// Snapshot is the validated, complete projection of a session's accumulated
// configuration, ready for estimation, generation or creation.
type Snapshot struct {
	SessionID        string       `json:"session_id"`
	Resource         ResourceType `json:"resource"`
	SubscriptionID   string       `json:"subscription_id"`
	ResourceGroup    string       `json:"resource_group"`
	NewResourceGroup bool         `json:"new_resource_group"`
	Region           string       `json:"region"`
	Config           Config       `json:"config"`
}
