package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the provisio ASCII art banner with the build version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Azure-ish blue gradient, dark to light.
	lines := []struct {
		text  string
		color string
	}{
		{`  ____                 _     _       `, "#1e40af"},
		{` |  _ \ _ __ _____   _(_)___(_) ___  `, "#1d4ed8"},
		{` | |_) | '__/ _ \ \ / / / __| |/ _ \ `, "#2563eb"},
		{` |  __/| | | (_) \ V /| \__ \ | (_) |`, "#3b82f6"},
		{` |_|   |_|  \___/ \_/ |_|___/_|\___/ `, "#60a5fa"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	sub := fmt.Sprintf("  Azure Provisioning Assistant %s", strings.TrimSpace(version))
	fmt.Println(termenv.String(sub).Foreground(p.Color("#94a3b8")).Italic())
	fmt.Println()
}
