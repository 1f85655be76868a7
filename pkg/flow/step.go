package flow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
)

// RejectionError reports an answer that failed a step's rules. The Reason is
// user-facing and is rendered back verbatim so the user can correct the input.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

// Step is one question of a resource configuration flow.
type Step struct {
	// Field is the configuration key the answer is stored under.
	Field string

	// Prompt is the question text shown to the user.
	Prompt string

	// Options restricts the answer to a fixed menu. Users may answer with
	// the 1-based menu index or the option text (case-insensitive).
	Options []string

	// OptionsFunc computes the menu from the session, for steps whose
	// choices depend on earlier answers. Takes precedence over Options and
	// must tolerate a nil session.
	OptionsFunc func(*domain.Session) []string

	// Default is substituted for an empty answer. Defaults are canonical
	// values and skip no validation.
	Default string

	// Validate rejects an answer with a user-facing message. Nil accepts all.
	Validate func(string) error

	// Transform converts the accepted answer into its stored value
	// (e.g. "yes" -> true, "3" -> 3). Nil stores the string as-is.
	Transform func(string) any
}

// Menu returns the step's options, consulting OptionsFunc when set.
func (s Step) Menu(sess *domain.Session) []string {
	if s.OptionsFunc != nil {
		return s.OptionsFunc(sess)
	}
	return s.Options
}

// Answer runs the shared answer pipeline: trim, substitute the default for an
// empty answer, resolve menu index or label, validate, transform. A failed
// menu match or validation returns a *RejectionError.
func (s Step) Answer(raw string) (any, error) {
	return s.AnswerFor(nil, raw)
}

// AnswerFor is Answer with the session available for OptionsFunc menus.
func (s Step) AnswerFor(sess *domain.Session, raw string) (any, error) {
	answer := strings.TrimSpace(raw)

	if answer == "" && s.Default != "" {
		answer = s.Default
	}

	if options := s.Menu(sess); len(options) > 0 {
		if isDigits(answer) {
			if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(options) {
				answer = options[idx-1]
			}
		}
		matched := false
		for _, opt := range options {
			if strings.EqualFold(opt, answer) {
				answer = opt
				matched = true
				break
			}
		}
		if !matched {
			return nil, &RejectionError{Reason: "Please select from: " + strings.Join(options, ", ")}
		}
	}

	if s.Validate != nil {
		if err := s.Validate(answer); err != nil {
			return nil, &RejectionError{Reason: err.Error()}
		}
	}

	if s.Transform != nil {
		return s.Transform(answer), nil
	}
	return answer, nil
}

// Question renders the step as a chat message: the prompt, the default if
// any, and the numbered option menu if any.
func (s Step) Question() string {
	return s.QuestionFor(nil)
}

// QuestionFor is Question with the session available for OptionsFunc menus.
func (s Step) QuestionFor(sess *domain.Session) string {
	var b strings.Builder
	b.WriteString(s.Prompt)
	if s.Default != "" {
		fmt.Fprintf(&b, "\n(Default: %s)", s.Default)
	}
	if options := s.Menu(sess); len(options) > 0 {
		b.WriteString("\n\n")
		b.WriteString(FormatOptions(options))
	}
	return b.String()
}

// FormatOptions renders options as a numbered menu, one per line.
func FormatOptions(options []string) string {
	lines := make([]string, len(options))
	for i, opt := range options {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, opt)
	}
	return strings.Join(lines, "\n")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validator helpers shared by the flow definitions.

func lengthBetween(min, max int, msg string) func(string) error {
	return func(s string) error {
		if len(s) < min || len(s) > max {
			return errors.New(msg)
		}
		return nil
	}
}

func intBetween(min, max int, msg string) func(string) error {
	return func(s string) error {
		if !isDigits(s) {
			return errors.New(msg)
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < min || n > max {
			return errors.New(msg)
		}
		return nil
	}
}

func cidrNotation(msg string) func(string) error {
	return func(s string) error {
		if !strings.Contains(s, "/") || len(strings.Split(s, "/")) != 2 {
			return errors.New(msg)
		}
		return nil
	}
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isAlnumRune(r) {
			return false
		}
	}
	return true
}

func isAlnumRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isLower(s string) bool {
	return s == strings.ToLower(s) && strings.ContainsFunc(s, func(r rune) bool {
		return r >= 'a' && r <= 'z'
	})
}

func stripRunes(s string, drop ...rune) string {
	return strings.Map(func(r rune) rune {
		for _, d := range drop {
			if r == d {
				return -1
			}
		}
		return r
	}, s)
}

func notReserved(reserved []string, msg string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(msg)
		}
		lower := strings.ToLower(s)
		for _, r := range reserved {
			if lower == r {
				return errors.New(msg)
			}
		}
		return nil
	}
}

func yesNo(s string) any {
	return strings.EqualFold(s, "yes")
}

func toInt(s string) any {
	n, _ := strconv.Atoi(s)
	return n
}
