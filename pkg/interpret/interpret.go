/*
Package interpret normalizes raw user utterances into structured intents.

Parse is a pure function of the message and the session state: it trims and
case-folds the input, recognizes control verbs (restart family, confirmation
verbs, the execute sentinel), the new:<name> resource-group prefix, and the
resource-type aliases during selection. It never mutates state and never
errors; unrecognized input comes back as KindText and the engine decides how
the active state treats it.
*/
package interpret

import (
	"strings"

	"github.com/provisio/provisio/pkg/domain"
)

// Kind classifies a parsed utterance.
type Kind string

const (
	// KindText is free text for the active step.
	KindText Kind = "text"
	// KindEmpty is a blank message. The engine treats it per state: the
	// welcome trigger at initial, the default answer during resource_config.
	KindEmpty Kind = "empty"
	// KindRestart is the restart family: restart, reset, start over, new
	// (plus another once completed).
	KindRestart Kind = "restart"
	// KindExecute is the pending-execution sentinel.
	KindExecute Kind = "execute"
	// KindYes, KindNo, KindTerraform and KindEdit are the confirmation
	// verbs. They are recognized in every state; only the confirmation
	// handler acts on them, elsewhere the raw value flows to the step.
	KindYes       Kind = "yes"
	KindNo        Kind = "no"
	KindTerraform Kind = "terraform"
	KindEdit      Kind = "edit"
	// KindNewResourceGroup is the new:<name> prefix idiom.
	KindNewResourceGroup Kind = "new_resource_group"
	// KindResource is a matched resource-type alias (selection state only).
	KindResource Kind = "resource"
)

// ParsedInput is the structured form of one utterance.
type ParsedInput struct {
	Kind Kind

	// Value is the trimmed message. For KindNewResourceGroup it is the
	// resource-group name after the prefix.
	Value string

	// Resource is set for KindResource.
	Resource domain.ResourceType
}

var restartVerbs = []string{"restart", "reset", "start over", "new"}

var confirmVerbs = map[string]Kind{
	"yes":       KindYes,
	"y":         KindYes,
	"create":    KindYes,
	"proceed":   KindYes,
	"terraform": KindTerraform,
	"tf":        KindTerraform,
	"no":        KindNo,
	"n":         KindNo,
	"cancel":    KindNo,
	"edit":      KindEdit,
	"modify":    KindEdit,
	"change":    KindEdit,
}

// Parse interprets one raw message in the context of the session state.
func Parse(raw string, state domain.State) ParsedInput {
	value := strings.TrimSpace(raw)
	lower := strings.ToLower(value)

	if value == "" {
		return ParsedInput{Kind: KindEmpty}
	}

	for _, verb := range restartVerbs {
		if lower == verb {
			return ParsedInput{Kind: KindRestart, Value: value}
		}
	}
	if state == domain.StateCompleted && lower == "another" {
		return ParsedInput{Kind: KindRestart, Value: value}
	}

	if lower == domain.ExecuteMessage {
		return ParsedInput{Kind: KindExecute, Value: value}
	}

	if kind, ok := confirmVerbs[lower]; ok {
		return ParsedInput{Kind: kind, Value: value}
	}

	if strings.HasPrefix(lower, "new:") {
		return ParsedInput{Kind: KindNewResourceGroup, Value: strings.TrimSpace(value[4:])}
	}

	if state == domain.StateResourceSelection {
		if rt, ok := MatchResource(value); ok {
			return ParsedInput{Kind: KindResource, Value: value, Resource: rt}
		}
	}

	return ParsedInput{Kind: KindText, Value: value}
}

// aliasLadder is checked in order after the direct identifier/label pass.
var aliasLadder = []struct {
	resource domain.ResourceType
	match    func(string) bool
}{
	{domain.ResourceVM, anyOf("virtual machine", "vm")},
	{domain.ResourceVNet, func(s string) bool {
		return strings.Contains(s, "virtual network") || strings.Contains(s, "vnet") ||
			(strings.Contains(s, "network") && strings.Contains(s, "vn"))
	}},
	{domain.ResourceStorage, anyOf("storage", "blob")},
	{domain.ResourceAKS, anyOf("aks", "kubernetes", "k8s")},
	{domain.ResourcePostgreSQL, anyOf("postgresql", "postgres", "pgsql")},
	{domain.ResourceMySQL, anyOf("mysql")},
	{domain.ResourceSQLDB, func(s string) bool {
		return strings.Contains(s, "sql") && !strings.Contains(s, "cosmos")
	}},
	{domain.ResourceCosmosDB, anyOf("cosmos", "documentdb", "nosql")},
	// Generic database mentions default to PostgreSQL.
	{domain.ResourcePostgreSQL, anyOf("database", "db")},
}

func anyOf(needles ...string) func(string) bool {
	return func(s string) bool {
		for _, n := range needles {
			if strings.Contains(s, n) {
				return true
			}
		}
		return false
	}
}

// MatchResource resolves a free-text utterance to a resource type. The input
// matches if it contains a type identifier, a display label, or one of the
// looser aliases (checked in ladder order so the more specific types win).
func MatchResource(input string) (domain.ResourceType, bool) {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return "", false
	}

	for _, rt := range domain.ResourceTypes() {
		if strings.Contains(lower, string(rt)) || strings.Contains(lower, strings.ToLower(rt.Label())) {
			return rt, true
		}
	}

	for _, entry := range aliasLadder {
		if entry.match(lower) {
			return entry.resource, true
		}
	}

	return "", false
}
