package engine_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provisio/provisio/internal/engine"
	"github.com/provisio/provisio/pkg/adapters/memory"
	"github.com/provisio/provisio/pkg/adapters/simulator"
	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/flow"
	"github.com/provisio/provisio/pkg/pricing"
	"github.com/provisio/provisio/pkg/session"
	"github.com/provisio/provisio/pkg/terraform"
)

const testSubscription = "12345678-1234-1234-1234-123456789012"

func newTestEngine(t *testing.T, opts ...simulator.Option) *engine.Engine {
	t.Helper()

	e, err := engine.New(engine.Config{
		Manager:             session.NewManager(memory.NewStore()),
		Registry:            flow.NewRegistry(),
		Estimator:           pricing.NewEstimator(),
		Generator:           terraform.NewGenerator(),
		Provisioner:         simulator.New(opts...),
		DefaultSubscription: testSubscription,
	})
	require.NoError(t, err)
	return e
}

// drive sends the messages in order and returns the last result.
func drive(t *testing.T, e *engine.Engine, id string, messages ...string) domain.TurnResult {
	t.Helper()

	var res domain.TurnResult
	var err error
	for _, msg := range messages {
		res, err = e.Turn(context.Background(), id, msg)
		require.NoError(t, err, "turn %q", msg)
	}
	return res
}

// vmAnswers walks a session from resource selection to the VM confirmation
// summary. The flow answers are: name vm1, size Standard_B2s, then defaults.
func vmAnswers() []string {
	return []string{
		"Virtual Machine",
		testSubscription,
		"new:mygroup",
		"eastus",
		"vm1",
		"Standard_B2s",
		"", // os_image default Ubuntu2204
		"", // os_disk_type default Standard_LRS
		"", // admin_username default azureuser
		"", // create_public_ip default yes
	}
}

func TestStartSession_Welcome(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.StartSession(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.SessionID)
	assert.Equal(t, domain.StateResourceSelection, res.State)
	assert.Contains(t, res.Message, "Welcome to the Azure Provisioning Assistant")
	assert.Contains(t, res.Options, "Virtual Machine")
	assert.Len(t, res.Options, 8)
}

func TestTurn_SessionNotFound(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Turn(context.Background(), "no-such-session", "hello")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = e.DeleteSession(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestResourceSelection(t *testing.T) {
	e := newTestEngine(t)
	start, err := e.StartSession(context.Background())
	require.NoError(t, err)

	res := drive(t, e, start.SessionID, "Storage Account")
	assert.Equal(t, domain.StateSubscription, res.State)
	assert.Contains(t, res.Message, "Let's create a Storage Account")
}

func TestResourceSelection_Unknown(t *testing.T) {
	e := newTestEngine(t)
	start, err := e.StartSession(context.Background())
	require.NoError(t, err)

	res := drive(t, e, start.SessionID, "a mainframe please")
	assert.Equal(t, domain.StateResourceSelection, res.State)
	assert.Contains(t, res.Message, "I didn't understand that")
	assert.Len(t, res.Options, 8)
}

func TestSubscription(t *testing.T) {
	t.Run("too short is rejected", func(t *testing.T) {
		e := newTestEngine(t)
		start, _ := e.StartSession(context.Background())

		res := drive(t, e, start.SessionID, "vm", "short-id")
		assert.Equal(t, domain.StateSubscription, res.State)
		assert.Contains(t, res.Message, "doesn't look like a valid Subscription ID")
	})

	t.Run("default resolves configured subscription", func(t *testing.T) {
		e := newTestEngine(t)
		start, _ := e.StartSession(context.Background())

		res := drive(t, e, start.SessionID, "vm", "default")
		assert.Equal(t, domain.StateResourceGroup, res.State)

		sess, err := e.Session(context.Background(), start.SessionID)
		require.NoError(t, err)
		assert.Equal(t, testSubscription, sess.SubscriptionID)
	})

	t.Run("default without configuration re-prompts", func(t *testing.T) {
		bare, err := engine.New(engine.Config{
			Manager:     session.NewManager(memory.NewStore()),
			Registry:    flow.NewRegistry(),
			Estimator:   pricing.NewEstimator(),
			Generator:   terraform.NewGenerator(),
			Provisioner: simulator.New(),
		})
		require.NoError(t, err)
		start, _ := bare.StartSession(context.Background())

		res := drive(t, bare, start.SessionID, "vm", "default")
		assert.Equal(t, domain.StateSubscription, res.State)
		assert.Contains(t, res.Message, "No default subscription configured")
	})
}

func TestResourceGroup_NewPrefix(t *testing.T) {
	e := newTestEngine(t)
	start, _ := e.StartSession(context.Background())

	res := drive(t, e, start.SessionID, "vm", testSubscription, "new:mygroup")
	assert.Equal(t, domain.StateRegion, res.State)
	assert.Contains(t, res.Message, "Will create new Resource Group: **mygroup**")
	assert.Equal(t, flow.PopularRegions, res.Options)

	sess, err := e.Session(context.Background(), start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "mygroup", sess.ResourceGroup)
	assert.True(t, sess.NewResourceGroup)
}

func TestRegion(t *testing.T) {
	t.Run("menu index", func(t *testing.T) {
		e := newTestEngine(t)
		start, _ := e.StartSession(context.Background())

		res := drive(t, e, start.SessionID, "vm", testSubscription, "my-rg", "3")
		assert.Equal(t, domain.StateResourceConfig, res.State)

		sess, _ := e.Session(context.Background(), start.SessionID)
		assert.Equal(t, "westeurope", sess.Region)
	})

	t.Run("unknown region is rejected", func(t *testing.T) {
		e := newTestEngine(t)
		start, _ := e.StartSession(context.Background())

		res := drive(t, e, start.SessionID, "vm", testSubscription, "my-rg", "atlantis")
		assert.Equal(t, domain.StateRegion, res.State)
		assert.Contains(t, res.Message, "'atlantis' is not a recognized Azure region")
	})
}

func TestResourceConfig_RejectionKeepsStep(t *testing.T) {
	e := newTestEngine(t)
	start, _ := e.StartSession(context.Background())

	// Storage account names must be 3-24 lowercase alphanumerics.
	res := drive(t, e, start.SessionID,
		"Storage Account", testSubscription, "my-rg", "eastus", "Not-Valid!")
	assert.Equal(t, domain.StateResourceConfig, res.State)
	assert.Contains(t, res.Message, "❌")
	assert.Contains(t, res.Message, "lowercase letters and numbers only")

	sess, _ := e.Session(context.Background(), start.SessionID)
	assert.Equal(t, 0, sess.StepIndex)
	assert.Empty(t, sess.Config)

	res = drive(t, e, start.SessionID, "mystorage01")
	assert.Equal(t, domain.StateResourceConfig, res.State)
	sess, _ = e.Session(context.Background(), start.SessionID)
	assert.Equal(t, 1, sess.StepIndex)
	assert.Equal(t, "mystorage01", sess.Config["name"])
}

func TestConfirmation_Summary(t *testing.T) {
	e := newTestEngine(t)
	start, _ := e.StartSession(context.Background())

	res := drive(t, e, start.SessionID, vmAnswers()...)
	assert.Equal(t, domain.StateConfirmation, res.State)
	assert.Equal(t, []string{"yes", "terraform", "no", "edit"}, res.Options)

	assert.Contains(t, res.Message, "Virtual Machine Configuration Summary")
	assert.Contains(t, res.Message, "12345678...9012")
	assert.Contains(t, res.Message, "**Resource Group:** mygroup (new)")
	assert.NotContains(t, res.Message, "Generate Ssh Key")

	require.NotNil(t, res.ResourceSummary)
	assert.Equal(t, "mygroup", res.ResourceSummary["resource_group"])
	assert.Equal(t, true, res.ResourceSummary["create_new_rg"])

	require.NotNil(t, res.CostEstimate)
	var sum float64
	for _, c := range res.CostEstimate.Breakdown {
		sum += c.MonthlyCost
	}
	assert.InDelta(t, res.CostEstimate.MonthlyTotal, sum, 0.001)
}

func TestConfirmation_Terraform(t *testing.T) {
	e := newTestEngine(t)
	start, _ := e.StartSession(context.Background())
	drive(t, e, start.SessionID, vmAnswers()...)

	res := drive(t, e, start.SessionID, "terraform")
	assert.Equal(t, domain.StateCompleted, res.State)
	assert.NotEmpty(t, res.TerraformCode)
	assert.Contains(t, res.TerraformCode, `resource "azurerm_linux_virtual_machine" "vm_vm1"`)
	assert.Contains(t, res.Message, "```hcl")
	assert.Nil(t, res.CreatedResource)
}

func TestConfirmation_Yes_AutoExecute(t *testing.T) {
	e := newTestEngine(t)
	start, _ := e.StartSession(context.Background())
	drive(t, e, start.SessionID, vmAnswers()...)

	res := drive(t, e, start.SessionID, "yes")
	assert.Equal(t, domain.StateCreating, res.State)
	assert.True(t, res.PendingExecution)
	assert.Contains(t, res.Message, "Creating resource via Azure SDK")

	// The caller observes PendingExecution and replays with the sentinel.
	final := drive(t, e, start.SessionID, domain.ExecuteMessage)
	assert.Equal(t, domain.StateCompleted, final.State)
	require.NotNil(t, final.CreatedResource)
	assert.True(t, final.CreatedResource.Success)
	assert.Equal(t, "vm1", final.CreatedResource.ResourceName)
	assert.Contains(t, final.Message, "Resource Created Successfully")
	assert.Contains(t, final.Message, "SSH Private Key generated")
	assert.NotContains(t, final.Message, final.CreatedResource.Details["private_key"])
}

func TestConfirmation_No_ResetsSession(t *testing.T) {
	e := newTestEngine(t)
	start, _ := e.StartSession(context.Background())
	drive(t, e, start.SessionID, vmAnswers()...)

	res := drive(t, e, start.SessionID, "no")
	assert.Equal(t, domain.StateResourceSelection, res.State)
	assert.Contains(t, res.Message, "Resource creation cancelled.")

	sess, _ := e.Session(context.Background(), start.SessionID)
	assert.Empty(t, sess.Config)
	assert.Empty(t, sess.SubscriptionID)
}

func TestConfirmation_UnknownVerb(t *testing.T) {
	e := newTestEngine(t)
	start, _ := e.StartSession(context.Background())
	drive(t, e, start.SessionID, vmAnswers()...)

	res := drive(t, e, start.SessionID, "maybe later")
	assert.Equal(t, domain.StateConfirmation, res.State)
	assert.Contains(t, res.Message, "Please respond with:")
}

func TestProvisionerFailure_CompletesWithError(t *testing.T) {
	e := newTestEngine(t, simulator.WithFailure(domain.ResourceVM, errors.New("quota exceeded")))
	start, _ := e.StartSession(context.Background())
	drive(t, e, start.SessionID, vmAnswers()...)
	drive(t, e, start.SessionID, "yes")

	final := drive(t, e, start.SessionID, domain.ExecuteMessage)
	assert.Equal(t, domain.StateCompleted, final.State)
	require.NotNil(t, final.CreatedResource)
	assert.False(t, final.CreatedResource.Success)
	assert.Equal(t, "quota exceeded", final.CreatedResource.Error)
	assert.Contains(t, final.Message, "Resource Creation Failed")
}

func TestCompleted_PromptsRestart(t *testing.T) {
	e := newTestEngine(t)
	start, _ := e.StartSession(context.Background())
	drive(t, e, start.SessionID, vmAnswers()...)
	drive(t, e, start.SessionID, "terraform")

	res := drive(t, e, start.SessionID, "and now?")
	assert.Equal(t, domain.StateCompleted, res.State)
	assert.Contains(t, res.Message, "Type 'restart' to create another resource.")

	res = drive(t, e, start.SessionID, "another")
	assert.Equal(t, domain.StateResourceSelection, res.State)
	assert.Contains(t, res.Message, "Let's create another resource!")
}

// TestRestart_FromEveryState drives a session into each state in turn and
// checks that restart lands back at resource selection with everything wiped.
func TestRestart_FromEveryState(t *testing.T) {
	paths := map[domain.State][]string{
		domain.StateResourceSelection: {},
		domain.StateSubscription:      {"vm"},
		domain.StateResourceGroup:     {"vm", testSubscription},
		domain.StateRegion:            {"vm", testSubscription, "new:mygroup"},
		domain.StateResourceConfig:    {"vm", testSubscription, "new:mygroup", "eastus"},
		domain.StateConfirmation:      vmAnswers(),
		domain.StateCreating:          append(vmAnswers(), "yes"),
		domain.StateCompleted:         append(vmAnswers(), "terraform"),
	}

	for state, path := range paths {
		t.Run(string(state), func(t *testing.T) {
			e := newTestEngine(t)
			start, err := e.StartSession(context.Background())
			require.NoError(t, err)

			if len(path) > 0 {
				drive(t, e, start.SessionID, path...)
			}
			sess, err := e.Session(context.Background(), start.SessionID)
			require.NoError(t, err)
			require.Equal(t, state, sess.State, "setup did not reach %s", state)

			res := drive(t, e, start.SessionID, "restart")
			assert.Equal(t, domain.StateResourceSelection, res.State)
			assert.Equal(t, start.SessionID, res.SessionID)

			sess, err = e.Session(context.Background(), start.SessionID)
			require.NoError(t, err)
			assert.Empty(t, sess.Config)
			assert.Empty(t, sess.SubscriptionID)
			assert.Empty(t, sess.Region)
			assert.Zero(t, sess.Resource)
		})
	}
}

// TestEdit_ThenRedoMatchesSinglePass re-collects the flow after 'edit' and
// checks the final output is identical to a single clean pass.
func TestEdit_ThenRedoMatchesSinglePass(t *testing.T) {
	reference := newTestEngine(t)
	refStart, _ := reference.StartSession(context.Background())
	refConfirm := drive(t, reference, refStart.SessionID, vmAnswers()...)
	refCode := drive(t, reference, refStart.SessionID, "terraform").TerraformCode

	e := newTestEngine(t)
	start, _ := e.StartSession(context.Background())
	drive(t, e, start.SessionID,
		"vm", testSubscription, "new:mygroup", "eastus",
		"scratch-name", "Standard_D8s_v3", "Debian11", "Premium_LRS", "ops", "no")

	res := drive(t, e, start.SessionID, "edit")
	assert.Equal(t, domain.StateResourceConfig, res.State)
	assert.Contains(t, res.Message, "What would you like to name your Virtual Machine?")

	sess, _ := e.Session(context.Background(), start.SessionID)
	assert.Empty(t, sess.Config)
	assert.Equal(t, 0, sess.StepIndex)

	confirm := drive(t, e, start.SessionID, "vm1", "Standard_B2s", "", "", "", "")
	assert.Equal(t, domain.StateConfirmation, confirm.State)
	assert.Equal(t, refConfirm.Message, confirm.Message)

	code := drive(t, e, start.SessionID, "terraform").TerraformCode
	assert.Equal(t, refCode, code)
}

// TestSessionIsolation runs two interleaved conversations concurrently and
// checks neither observes the other's configuration.
func TestSessionIsolation(t *testing.T) {
	e := newTestEngine(t)

	type script struct {
		answers []string
		name    string
	}
	scripts := []script{
		{answers: []string{"vm", testSubscription, "new:rg-a", "eastus", "vm-a"}, name: "vm-a"},
		{answers: []string{"vm", testSubscription, "new:rg-b", "westus2", "vm-b"}, name: "vm-b"},
	}

	ids := make([]string, len(scripts))
	for i := range scripts {
		start, err := e.StartSession(context.Background())
		require.NoError(t, err)
		ids[i] = start.SessionID
	}

	var wg sync.WaitGroup
	for i, sc := range scripts {
		wg.Add(1)
		go func(id string, answers []string) {
			defer wg.Done()
			for _, msg := range answers {
				if _, err := e.Turn(context.Background(), id, msg); err != nil {
					t.Errorf("turn %q on %s: %v", msg, id, err)
					return
				}
			}
		}(ids[i], sc.answers)
	}
	wg.Wait()

	for i, sc := range scripts {
		sess, err := e.Session(context.Background(), ids[i])
		require.NoError(t, err)
		assert.Equal(t, sc.name, sess.Config["name"], "session %d", i)
		assert.Equal(t, fmt.Sprintf("rg-%c", 'a'+i), sess.ResourceGroup)
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := engine.New(engine.Config{})
	assert.ErrorContains(t, err, "session manager is required")
}
