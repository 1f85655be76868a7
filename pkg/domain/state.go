package domain

// State identifies the position of a session in the conversation state machine.
type State string

const (
	// StateInitial is the state a freshly created session starts in. The
	// first (conventionally empty) message produces the welcome turn.
	StateInitial State = "initial"

	// StateResourceSelection waits for a resource type choice.
	StateResourceSelection State = "resource_selection"

	// StateSubscription waits for an Azure subscription ID (or "default").
	StateSubscription State = "subscription"

	// StateResourceGroup waits for a resource group name; the "new:" prefix
	// requests creation of a new group.
	StateResourceGroup State = "resource_group"

	// StateRegion waits for an Azure region code or menu index.
	StateRegion State = "region"

	// StateResourceConfig repeats once per step of the active flow.
	StateResourceConfig State = "resource_config"

	// StateConfirmation waits for yes/terraform/no/edit on the summary.
	StateConfirmation State = "confirmation"

	// StateCreating is entered via "yes"; the next turn dispatches the
	// provisioner. Callers observe PendingExecution on the turn result and
	// replay with the execute sentinel.
	StateCreating State = "creating"

	// StateCompleted is the terminal state: a resource was created (or its
	// creation failed) or code was generated. Only restart leaves it.
	StateCompleted State = "completed"
)

// Valid reports whether st is one of the conversation states.
func (st State) Valid() bool {
	switch st {
	case StateInitial, StateResourceSelection, StateSubscription,
		StateResourceGroup, StateRegion, StateResourceConfig,
		StateConfirmation, StateCreating, StateCompleted:
		return true
	}
	return false
}

// Terminal reports whether the session has reached its sink state.
func (st State) Terminal() bool {
	return st == StateCompleted
}

// ExecuteMessage is the sentinel a caller sends to drive the creating →
// completed transition after observing PendingExecution on a turn result.
const ExecuteMessage = "execute"
