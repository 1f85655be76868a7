package flow

import (
	"errors"
	"strings"
	"testing"

	"github.com/provisio/provisio/pkg/domain"
)

func TestStepAnswerPipeline(t *testing.T) {
	menu := Step{
		Field:   "size",
		Prompt:  "Select a VM size:",
		Options: []string{"Standard_B1s", "Standard_B2s", "Standard_D2s_v3"},
		Default: "Standard_B2s",
	}

	tests := []struct {
		name    string
		step    Step
		input   string
		want    any
		wantRej string
	}{
		{"trims whitespace", menu, "  Standard_B1s  ", "Standard_B1s", ""},
		{"empty takes default", menu, "", "Standard_B2s", ""},
		{"index resolves option", menu, "3", "Standard_D2s_v3", ""},
		{"case-insensitive label", menu, "standard_b1s", "Standard_B1s", ""},
		{"out of range index rejected", menu, "9", nil, "Please select from: Standard_B1s, Standard_B2s, Standard_D2s_v3"},
		{"unknown label rejected", menu, "Standard_Z9", nil, "Please select from: Standard_B1s, Standard_B2s, Standard_D2s_v3"},
		{
			"validator message surfaces",
			Step{Field: "name", Prompt: "Name?", Validate: lengthBetween(2, 4, "Name must be between 2 and 4 characters.")},
			"x",
			nil,
			"Name must be between 2 and 4 characters.",
		},
		{
			"empty with no default hits validator",
			Step{Field: "name", Prompt: "Name?", Validate: lengthBetween(1, 64, "required")},
			"   ",
			nil,
			"required",
		},
		{
			"yes transforms to bool",
			Step{Field: "flag", Prompt: "?", Options: []string{"yes", "no"}, Default: "no", Transform: yesNo},
			"YES",
			true,
			"",
		},
		{
			"default runs through transform",
			Step{Field: "count", Prompt: "?", Default: "3", Validate: intBetween(1, 100, "bad"), Transform: toInt},
			"",
			3,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.step.Answer(tt.input)
			if tt.wantRej != "" {
				var rej *RejectionError
				if !errors.As(err, &rej) {
					t.Fatalf("expected rejection, got value %v err %v", got, err)
				}
				if rej.Reason != tt.wantRej {
					t.Errorf("reason = %q, want %q", rej.Reason, tt.wantRej)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected rejection: %v", err)
			}
			if got != tt.want {
				t.Errorf("value = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestStepQuestionFormat(t *testing.T) {
	s := Step{
		Prompt:  "Select access tier:",
		Options: []string{"Hot", "Cool"},
		Default: "Hot",
	}
	got := s.Question()
	want := "Select access tier:\n(Default: Hot)\n\n  1. Hot\n  2. Cool"
	if got != want {
		t.Errorf("Question() = %q, want %q", got, want)
	}

	bare := Step{Prompt: "Enter admin username:"}
	if bare.Question() != "Enter admin username:" {
		t.Errorf("bare question altered: %q", bare.Question())
	}
}

func TestStepOptionsFunc(t *testing.T) {
	sizes := []string{"Standard_D2s_v3", "Standard_D4s_v3"}
	s := Step{
		Field:       "node_vm_size",
		Prompt:      "Select VM size for nodes:",
		OptionsFunc: func(sess *domain.Session) []string { return sizes },
		Default:     "Standard_D2s_v3",
	}

	if got := s.Menu(nil); len(got) != 2 {
		t.Fatalf("Menu(nil) = %v, want the computed list", got)
	}
	if got, err := s.AnswerFor(nil, "2"); err != nil || got != "Standard_D4s_v3" {
		t.Errorf("AnswerFor index = %v, %v", got, err)
	}
	if _, err := s.AnswerFor(nil, "Standard_B1s"); err == nil {
		t.Error("off-menu answer accepted")
	}
	if !strings.Contains(s.Question(), "2. Standard_D4s_v3") {
		t.Errorf("Question() missing computed menu: %q", s.Question())
	}
}

func TestNameValidators(t *testing.T) {
	storage := storageAccountFlow().Steps[0]
	for _, ok := range []string{"abc", "storage001", strings.Repeat("a", 24)} {
		if _, err := storage.Answer(ok); err != nil {
			t.Errorf("storage name %q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"ab", "UPPER", "has-dash", "1234", strings.Repeat("a", 25)} {
		if _, err := storage.Answer(bad); err == nil {
			t.Errorf("storage name %q accepted", bad)
		}
	}

	aksName := aksClusterFlow().Steps[0]
	if _, err := aksName.Answer("my_cluster-01"); err != nil {
		t.Errorf("aks name rejected: %v", err)
	}
	if _, err := aksName.Answer("bad cluster"); err == nil {
		t.Error("aks name with space accepted")
	}

	cosmos := cosmosFlow().Steps[0]
	if _, err := cosmos.Answer("cosmos-account-1"); err != nil {
		t.Errorf("cosmos name rejected: %v", err)
	}
	if _, err := cosmos.Answer("Cosmos"); err == nil {
		t.Error("uppercase cosmos name accepted")
	}

	vmUser := virtualMachineFlow().Steps[4]
	if _, err := vmUser.Answer("Root"); err == nil {
		t.Error("reserved vm username accepted")
	}
	if got, err := vmUser.Answer(""); err != nil || got != "azureuser" {
		t.Errorf("vm username default = %v, %v", got, err)
	}
}

func TestRegionCatalog(t *testing.T) {
	if len(Regions) != 31 {
		t.Fatalf("expected 31 regions, got %d", len(Regions))
	}
	for _, p := range PopularRegions {
		if !ValidRegion(p) {
			t.Errorf("popular region %q missing from full list", p)
		}
	}
	if ValidRegion("middleearth") {
		t.Error("fictional region accepted")
	}
}
