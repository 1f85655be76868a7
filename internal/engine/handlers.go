package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/flow"
	"github.com/provisio/provisio/pkg/interpret"
)

func (e *Engine) restart(sess *domain.Session) domain.TurnResult {
	completed := sess.State == domain.StateCompleted
	sess.Reset()
	sess.State = domain.StateResourceSelection

	lead := "Session reset. \n\n"
	if completed {
		lead = "Let's create another resource!\n\n"
	}
	return domain.TurnResult{
		Message: lead + resourcePrompt(),
		Options: resourceLabels(),
	}
}

func (e *Engine) welcome(sess *domain.Session) domain.TurnResult {
	sess.State = domain.StateResourceSelection
	return domain.TurnResult{
		Message: "👋 Welcome to the Azure Provisioning Assistant!\n\n" +
			"I can help you create Azure resources through a simple conversation.\n\n" +
			resourcePrompt(),
		Options: resourceLabels(),
	}
}

func (e *Engine) selectResource(sess *domain.Session, in interpret.ParsedInput) domain.TurnResult {
	if in.Kind != interpret.KindResource {
		return domain.TurnResult{
			Message: "I didn't understand that. Please select a resource type:\n\n" + resourcePrompt(),
			Options: resourceLabels(),
		}
	}

	sess.Resource = in.Resource
	sess.State = domain.StateSubscription
	return domain.TurnResult{
		Message: fmt.Sprintf("Great! Let's create a %s.\n\n"+
			"Please enter your Azure Subscription ID:\n"+
			"(You can find this in the Azure Portal under Subscriptions)", in.Resource.Label()),
	}
}

func (e *Engine) collectSubscription(sess *domain.Session, in interpret.ParsedInput) domain.TurnResult {
	subID := in.Value

	if strings.EqualFold(subID, "default") {
		subID = e.defaultSubscription
		if subID == "" {
			return domain.TurnResult{
				Message: "No default subscription configured. Please enter your Subscription ID:",
			}
		}
	}

	if len(subID) < 32 {
		return domain.TurnResult{
			Message: "That doesn't look like a valid Subscription ID. " +
				"Please enter a valid Azure Subscription ID (GUID format) or type 'default' to use the configured subscription:",
		}
	}

	sess.SubscriptionID = subID
	sess.State = domain.StateResourceGroup
	return domain.TurnResult{
		Message: "Enter a Resource Group name.\n\n" +
			"• To use an existing Resource Group, enter its name\n" +
			"• To create a new one, enter: new:<resource-group-name>\n\n" +
			"Example: new:my-chatbot-rg",
	}
}

func (e *Engine) collectResourceGroup(sess *domain.Session, in interpret.ParsedInput) domain.TurnResult {
	name := in.Value
	createNew := in.Kind == interpret.KindNewResourceGroup

	if name == "" {
		return domain.TurnResult{
			Message: "Please enter a valid Resource Group name:",
		}
	}

	sess.ResourceGroup = name
	sess.NewResourceGroup = createNew
	sess.State = domain.StateRegion

	verb := "Using"
	if createNew {
		verb = "Will create new"
	}
	return domain.TurnResult{
		Message: fmt.Sprintf("%s Resource Group: **%s**\n\n", verb, name) +
			"Select an Azure region:\n\n" +
			flow.FormatOptions(flow.PopularRegions) +
			"\n\nOr enter any valid Azure region name:",
		Options: popularRegions(),
	}
}

func (e *Engine) collectRegion(sess *domain.Session, in interpret.ParsedInput) domain.TurnResult {
	region := strings.ToLower(in.Value)

	// A numeric answer indexes the popular-region menu.
	if n, err := strconv.Atoi(region); err == nil && n >= 1 && n <= len(flow.PopularRegions) {
		region = flow.PopularRegions[n-1]
	}

	if !flow.ValidRegion(region) {
		return domain.TurnResult{
			Message: fmt.Sprintf("'%s' is not a recognized Azure region. "+
				"Please select from the list or enter a valid region name:", region),
			Options: popularRegions(),
		}
	}

	sess.Region = region
	sess.State = domain.StateResourceConfig
	sess.StepIndex = 0
	return e.nextQuestion(sess)
}

// nextQuestion emits the current step's prompt, or moves to confirmation
// once the flow is exhausted.
func (e *Engine) nextQuestion(sess *domain.Session) domain.TurnResult {
	steps := e.flows.Steps(sess.Resource)
	if sess.StepIndex >= len(steps) {
		return e.moveToConfirmation(sess)
	}

	step := steps[sess.StepIndex]
	return domain.TurnResult{
		Message: step.QuestionFor(sess),
		Options: step.Menu(sess),
	}
}

func (e *Engine) collectConfig(sess *domain.Session, in interpret.ParsedInput) domain.TurnResult {
	steps := e.flows.Steps(sess.Resource)
	if sess.StepIndex >= len(steps) {
		return e.moveToConfirmation(sess)
	}

	step := steps[sess.StepIndex]
	value, err := step.AnswerFor(sess, in.Value)
	if err != nil {
		return domain.TurnResult{
			Message: fmt.Sprintf("❌ %s\n\nPlease try again:\n\n%s", err.Error(), step.Prompt),
			Options: step.Menu(sess),
		}
	}

	sess.Config[step.Field] = value
	sess.StepIndex++
	return e.nextQuestion(sess)
}

func (e *Engine) moveToConfirmation(sess *domain.Session) domain.TurnResult {
	sess.Config = e.flows.BuildConfig(sess.Resource, sess.Config)
	sess.State = domain.StateConfirmation

	estimate, err := e.estimator.Estimate(sess.Resource, sess.Config)
	if err != nil {
		// The estimator is total over valid resource types; reaching here
		// means a registry/estimator mismatch, still not worth killing the
		// conversation over.
		e.logger.Warn("cost estimate failed", "session_id", sess.ID, "resource", sess.Resource, "err", err)
		estimate = &domain.CostEstimate{
			ResourceType: sess.Resource.Label(),
			Currency:     "USD",
			Disclaimer:   domain.DefaultDisclaimer,
		}
	}
	sess.LastEstimate = estimate

	return domain.TurnResult{
		Message:         confirmationSummary(sess, estimate),
		Options:         confirmOptions(),
		ResourceSummary: sess.Summary(),
		CostEstimate:    estimate,
	}
}

func (e *Engine) confirm(sess *domain.Session, in interpret.ParsedInput) (domain.TurnResult, error) {
	switch in.Kind {
	case interpret.KindYes:
		sess.State = domain.StateCreating
		return domain.TurnResult{
			Message:          "Creating resource via Azure SDK...\n\nThis may take a few minutes. Please wait.",
			PendingExecution: true,
		}, nil

	case interpret.KindTerraform:
		code, err := e.generator.Generate(sess.Snapshot())
		if err != nil {
			return domain.TurnResult{}, fmt.Errorf("terraform generation failed: %w", err)
		}
		sess.State = domain.StateCompleted
		return domain.TurnResult{
			Message: "Here's your Terraform configuration:\n\n" +
				"```hcl\n" + code + "\n```\n\n" +
				"**To use this Terraform code:**\n" +
				"1. Save it to a file named `main.tf`\n" +
				"2. Set environment variables: ARM_CLIENT_ID, ARM_CLIENT_SECRET, ARM_TENANT_ID, ARM_SUBSCRIPTION_ID\n" +
				"3. Run `terraform init`\n" +
				"4. Run `terraform plan`\n" +
				"5. Run `terraform apply`\n\n" +
				"Type 'restart' to create another resource.",
			TerraformCode: code,
		}, nil

	case interpret.KindNo:
		sess.Reset()
		sess.State = domain.StateResourceSelection
		return domain.TurnResult{
			Message: "Resource creation cancelled.\n\n" + resourcePrompt(),
			Options: resourceLabels(),
		}, nil

	case interpret.KindEdit:
		// Deliberate start-over semantics: the flow's answers are wiped and
		// every step is asked again from the top.
		sess.Config = make(domain.Config)
		sess.StepIndex = 0
		sess.State = domain.StateResourceConfig
		return e.nextQuestion(sess), nil
	}

	return domain.TurnResult{
		Message: "Please respond with:\n" +
			"• 'yes' to create via Azure SDK\n" +
			"• 'terraform' to generate Terraform code\n" +
			"• 'no' to cancel\n" +
			"• 'edit' to modify configuration",
		Options: confirmOptions(),
	}, nil
}

// dispatch runs the single provisioner call of a confirmed session. Any
// message reaching the creating state triggers it; adapters send the
// documented execute sentinel. Provider-side failure is a regular outcome:
// the session completes with CreatedResource.Success false.
func (e *Engine) dispatch(ctx context.Context, sess *domain.Session) (domain.TurnResult, error) {
	start := e.now()
	result, err := e.provisioner.Create(ctx, sess.Snapshot())
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("provisioner dispatch failed: %w", err)
	}

	if e.hooks.OnProvision != nil {
		e.hooks.OnProvision(ctx, &domain.ProvisionEvent{
			SessionID: sess.ID,
			Resource:  sess.Resource,
			Success:   result.Success,
			Duration:  e.now().Sub(start),
		})
	}

	sess.State = domain.StateCompleted
	sess.LastCreated = result

	if !result.Success {
		e.logger.Info("resource creation failed",
			"session_id", sess.ID, "resource", sess.Resource, "err", result.Error)
		return domain.TurnResult{
			Message: fmt.Sprintf("❌ **Resource Creation Failed**\n\nError: %s\n\n"+
				"Type 'restart' to try again or 'terraform' to get Terraform code instead.", result.Error),
			CreatedResource: result,
		}, nil
	}

	e.logger.Info("resource created",
		"session_id", sess.ID, "resource", sess.Resource, "resource_id", result.ResourceID,
		"duration", e.now().Sub(start))
	return domain.TurnResult{
		Message:         creationSummary(result),
		CreatedResource: result,
	}, nil
}
