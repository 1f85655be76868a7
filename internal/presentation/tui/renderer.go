// Package tui holds the terminal presentation helpers for the chat command.
package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders the assistant's replies as
// markdown. Replies use emoji headers, bullet menus and fenced Terraform
// blocks, which glamour handles well on both light and dark terminals.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
