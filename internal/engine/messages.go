package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/flow"
)

// resourcePrompt is the grouped selection menu shown whenever the engine
// asks for a resource type.
func resourcePrompt() string {
	return "What type of Azure resource would you like to create?\n\n" +
		"**Compute & Networking:**\n" +
		"  1. Virtual Machine (VM)\n" +
		"  2. Virtual Network (VNet)\n" +
		"  3. AKS Cluster (Kubernetes)\n" +
		"\n" +
		"**Storage:**\n" +
		"  4. Storage Account\n" +
		"\n" +
		"**Databases:**\n" +
		"  5. PostgreSQL Database\n" +
		"  6. MySQL Database\n" +
		"  7. Azure SQL Database\n" +
		"  8. Cosmos DB (NoSQL)"
}

func resourceLabels() []string {
	types := domain.ResourceTypes()
	labels := make([]string, len(types))
	for i, rt := range types {
		labels[i] = rt.Label()
	}
	return labels
}

func popularRegions() []string {
	return append([]string(nil), flow.PopularRegions...)
}

func confirmOptions() []string {
	return []string{"yes", "terraform", "no", "edit"}
}

// hiddenConfigKeys are configuration entries the summary never shows:
// bookkeeping keys and flags that mean nothing to the user.
var hiddenConfigKeys = map[string]bool{
	"generate_ssh_key": true,
}

// confirmationSummary renders the pre-dispatch summary: masked subscription,
// resource group with its new-group marker, the full configuration and the
// cost estimate breakdown.
func confirmationSummary(sess *domain.Session, estimate *domain.CostEstimate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📋 **%s Configuration Summary**\n\n", sess.Resource.Label())
	fmt.Fprintf(&b, "**Subscription:** %s\n", maskSubscription(sess.SubscriptionID))
	fmt.Fprintf(&b, "**Resource Group:** %s", sess.ResourceGroup)
	if sess.NewResourceGroup {
		b.WriteString(" (new)")
	}
	fmt.Fprintf(&b, "\n**Region:** %s\n\n", sess.Region)

	b.WriteString("**Configuration:**\n")
	for _, key := range orderedConfigKeys(sess.Config) {
		writeConfigEntry(&b, key, sess.Config[key])
	}

	fmt.Fprintf(&b, "\n💰 **Estimated Monthly Cost:** $%.2f\n", estimate.MonthlyTotal)
	if len(estimate.Breakdown) > 0 {
		b.WriteString("\nCost Breakdown:\n")
		for _, item := range estimate.Breakdown {
			fmt.Fprintf(&b, "  • %s: $%.2f\n", item.Component, item.MonthlyCost)
		}
	}
	fmt.Fprintf(&b, "\n⚠️ %s\n\n", estimate.Disclaimer)

	b.WriteString("**Proceed with resource creation?**\n")
	b.WriteString("• Type 'yes' to create via Azure SDK\n")
	b.WriteString("• Type 'terraform' to generate Terraform code\n")
	b.WriteString("• Type 'no' to cancel\n")
	b.WriteString("• Type 'edit' to modify configuration")

	return b.String()
}

// sensitiveDetailKeys never appear verbatim in the creation summary; the
// caller gets a warning line instead and must read them from the turn's
// created_resource payload.
var sensitiveDetailKeys = map[string]bool{
	"private_key":       true,
	"connection_string": true,
}

// creationSummary renders the success message after a provisioner dispatch.
func creationSummary(result *domain.CreatedResource) string {
	var b strings.Builder

	b.WriteString("✅ **Resource Created Successfully!**\n\n")
	fmt.Fprintf(&b, "**Resource ID:** %s\n", result.ResourceID)
	fmt.Fprintf(&b, "**Name:** %s\n", result.ResourceName)
	fmt.Fprintf(&b, "**Type:** %s\n", result.ResourceType)
	fmt.Fprintf(&b, "**Region:** %s\n\n", result.Region)

	if len(result.Details) > 0 {
		b.WriteString("**Details:**\n")
		keys := make([]string, 0, len(result.Details))
		for k := range result.Details {
			if !sensitiveDetailKeys[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "• %s: %s\n", titleKey(k), result.Details[k])
		}

		if _, ok := result.Details["private_key"]; ok {
			b.WriteString("\n⚠️ **SSH Private Key generated.** Save it securely - it won't be shown again.\n")
		}
		if _, ok := result.Details["connection_string"]; ok {
			b.WriteString("\n⚠️ **Connection string generated.** Store it securely.\n")
		}
	}

	b.WriteString("\nType 'restart' to create another resource.")
	return b.String()
}

// maskSubscription shows the first eight and last four characters of the
// subscription ID, enough to recognize it without quoting the whole GUID.
func maskSubscription(id string) string {
	if len(id) < 12 {
		return id
	}
	return id[:8] + "..." + id[len(id)-4:]
}

// orderedConfigKeys returns the visible configuration keys in a stable
// order so summaries are deterministic.
func orderedConfigKeys(cfg domain.Config) []string {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		if strings.HasPrefix(k, "_") || hiddenConfigKeys[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeConfigEntry(b *strings.Builder, key string, value any) {
	display := titleKey(key)
	switch v := value.(type) {
	case []any:
		fmt.Fprintf(b, "• %s:\n", display)
		for _, item := range v {
			switch entry := item.(type) {
			case map[string]any:
				for _, k := range sortedKeys(entry) {
					fmt.Fprintf(b, "  - %s: %v\n", k, entry[k])
				}
			default:
				fmt.Fprintf(b, "  - %v\n", item)
			}
		}
	default:
		fmt.Fprintf(b, "• %s: %v\n", display, v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// titleKey turns a snake_case config key into a display label
// ("os_disk_type" -> "Os Disk Type").
func titleKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
