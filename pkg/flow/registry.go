package flow

import (
	"fmt"

	"github.com/provisio/provisio/pkg/domain"
)

// Flow is the complete configuration dialogue for one resource type.
type Flow struct {
	Resource domain.ResourceType

	// Steps are asked in order; the answer to Steps[i] is stored under
	// Steps[i].Field.
	Steps []Step

	// Assemble turns the collected answers into the final configuration,
	// filling defaults for unanswered fields and adding derived entries.
	Assemble func(answers domain.Config) domain.Config
}

// Registry holds the flow for every resource type. It is built once at
// startup and read-only afterwards.
type Registry struct {
	flows map[domain.ResourceType]Flow
}

// NewRegistry builds the registry with all compiled-in flows.
func NewRegistry() *Registry {
	r := &Registry{flows: make(map[domain.ResourceType]Flow)}
	for _, f := range []Flow{
		virtualMachineFlow(),
		virtualNetworkFlow(),
		storageAccountFlow(),
		aksClusterFlow(),
		postgresFlow(),
		mysqlFlow(),
		sqlDatabaseFlow(),
		cosmosFlow(),
	} {
		r.flows[f.Resource] = f
	}
	return r
}

// Flow returns the flow for the resource type.
func (r *Registry) Flow(resource domain.ResourceType) (Flow, bool) {
	f, ok := r.flows[resource]
	return f, ok
}

// Steps returns the ordered steps for the resource type, or nil if unknown.
func (r *Registry) Steps(resource domain.ResourceType) []Step {
	return r.flows[resource].Steps
}

// BuildConfig assembles the final configuration from collected answers.
// Unknown resource types get the answers back unchanged.
func (r *Registry) BuildConfig(resource domain.ResourceType, answers domain.Config) domain.Config {
	f, ok := r.flows[resource]
	if !ok || f.Assemble == nil {
		return answers.Clone()
	}
	return f.Assemble(answers)
}

// Validate checks every flow definition for mistakes that would otherwise
// only surface mid-conversation: missing flows, duplicate or empty fields,
// empty prompts, and defaults that fail their own step. Run at startup.
func (r *Registry) Validate() error {
	for _, rt := range domain.ResourceTypes() {
		f, ok := r.flows[rt]
		if !ok {
			return fmt.Errorf("resource type %q has no flow", rt)
		}
		if len(f.Steps) == 0 {
			return fmt.Errorf("flow %q has no steps", rt)
		}
		seen := make(map[string]bool, len(f.Steps))
		for i, step := range f.Steps {
			if step.Field == "" {
				return fmt.Errorf("flow %q step %d has no field", rt, i)
			}
			if seen[step.Field] {
				return fmt.Errorf("flow %q has duplicate field %q", rt, step.Field)
			}
			seen[step.Field] = true
			if step.Prompt == "" {
				return fmt.Errorf("flow %q field %q has no prompt", rt, step.Field)
			}
			if step.Default != "" {
				if _, err := step.Answer(step.Default); err != nil {
					return fmt.Errorf("flow %q field %q default %q rejected: %w", rt, step.Field, step.Default, err)
				}
			}
		}
	}
	if extra := len(r.flows) - len(domain.ResourceTypes()); extra > 0 {
		return fmt.Errorf("registry has %d flows for unknown resource types", extra)
	}
	return nil
}
