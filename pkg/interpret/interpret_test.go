package interpret

import (
	"testing"

	"github.com/provisio/provisio/pkg/domain"
)

func TestParseControlVerbs(t *testing.T) {
	tests := []struct {
		raw   string
		state domain.State
		want  Kind
	}{
		{"restart", domain.StateResourceConfig, KindRestart},
		{"  RESET ", domain.StateConfirmation, KindRestart},
		{"start over", domain.StateRegion, KindRestart},
		{"new", domain.StateResourceGroup, KindRestart},
		{"another", domain.StateCompleted, KindRestart},
		{"another", domain.StateResourceSelection, KindText},
		{"execute", domain.StateCreating, KindExecute},
		{"yes", domain.StateConfirmation, KindYes},
		{"Y", domain.StateConfirmation, KindYes},
		{"proceed", domain.StateConfirmation, KindYes},
		{"create", domain.StateConfirmation, KindYes},
		{"terraform", domain.StateConfirmation, KindTerraform},
		{"tf", domain.StateConfirmation, KindTerraform},
		{"no", domain.StateConfirmation, KindNo},
		{"n", domain.StateConfirmation, KindNo},
		{"cancel", domain.StateConfirmation, KindNo},
		{"edit", domain.StateConfirmation, KindEdit},
		{"modify", domain.StateConfirmation, KindEdit},
		{"change", domain.StateConfirmation, KindEdit},
		{"", domain.StateInitial, KindEmpty},
		{"   ", domain.StateResourceConfig, KindEmpty},
		{"some free text", domain.StateSubscription, KindText},
		// Verbs are recognized regardless of state; handlers decide.
		{"yes", domain.StateResourceConfig, KindYes},
	}
	for _, tt := range tests {
		got := Parse(tt.raw, tt.state)
		if got.Kind != tt.want {
			t.Errorf("Parse(%q, %s).Kind = %s, want %s", tt.raw, tt.state, got.Kind, tt.want)
		}
	}
}

func TestParseNewResourceGroupPrefix(t *testing.T) {
	got := Parse("new:my-chatbot-rg", domain.StateResourceGroup)
	if got.Kind != KindNewResourceGroup || got.Value != "my-chatbot-rg" {
		t.Fatalf("got %+v", got)
	}

	got = Parse("NEW:  spaced-rg  ", domain.StateResourceGroup)
	if got.Kind != KindNewResourceGroup || got.Value != "spaced-rg" {
		t.Fatalf("prefix should be case-insensitive and trim the name, got %+v", got)
	}

	got = Parse("new:", domain.StateResourceGroup)
	if got.Kind != KindNewResourceGroup || got.Value != "" {
		t.Fatalf("empty name should surface for the handler to reject, got %+v", got)
	}
}

func TestParseResourceSelection(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.ResourceType
	}{
		{"vm", domain.ResourceVM},
		{"I want a Virtual Machine", domain.ResourceVM},
		{"Storage Account", domain.ResourceStorage},
		{"blob please", domain.ResourceStorage},
		{"kubernetes", domain.ResourceAKS},
		{"k8s cluster", domain.ResourceAKS},
		{"postgres", domain.ResourcePostgreSQL},
		{"pgsql", domain.ResourcePostgreSQL},
		{"mysql", domain.ResourceMySQL},
		{"sql database", domain.ResourceSQLDB},
		{"azure sql database", domain.ResourceSQLDB},
		{"cosmos db", domain.ResourceCosmosDB},
		{"documentdb", domain.ResourceCosmosDB},
		// "nosql" contains "sql", so the ladder resolves it before the
		// cosmos aliases get a look.
		{"nosql", domain.ResourceSQLDB},
		{"a database", domain.ResourcePostgreSQL},
		{"vnet", domain.ResourceVNet},
		{"virtual network", domain.ResourceVNet},
	}
	for _, tt := range tests {
		got := Parse(tt.raw, domain.StateResourceSelection)
		if got.Kind != KindResource || got.Resource != tt.want {
			t.Errorf("Parse(%q) = %+v, want resource %s", tt.raw, got, tt.want)
		}
	}

	for _, raw := range []string{"mainframe", "quantum computer", "help"} {
		got := Parse(raw, domain.StateResourceSelection)
		if got.Kind == KindResource {
			t.Errorf("Parse(%q) matched %s, want no match", raw, got.Resource)
		}
	}
}

func TestMatchResourceLadderOrder(t *testing.T) {
	// "sql" alone is Azure SQL, unless cosmos is mentioned.
	if rt, ok := MatchResource("sql"); !ok || rt != domain.ResourceSQLDB {
		t.Errorf("sql -> %v", rt)
	}
	if rt, ok := MatchResource("cosmos sql api"); !ok || rt != domain.ResourceCosmosDB {
		t.Errorf("cosmos sql api -> %v", rt)
	}
	// The more specific database engines win over the generic fallback.
	if rt, ok := MatchResource("mysql db"); !ok || rt != domain.ResourceMySQL {
		t.Errorf("mysql db -> %v", rt)
	}
}

func TestMatchResourceOutsideSelectionStateIsText(t *testing.T) {
	got := Parse("vm", domain.StateSubscription)
	if got.Kind != KindText || got.Value != "vm" {
		t.Fatalf("alias matching must be scoped to selection, got %+v", got)
	}
}
