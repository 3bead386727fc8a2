package tui

import (
	"fmt"
	"strings"
)

const dividerWidth = 48

// renderPage frames body between two dividers under title and lists the
// hot keys of the current view followed by the global quit key.
func renderPage(title, body string, hotKeys ...string) string {
	divider := "  " + strings.Repeat("─", dividerWidth) + "\n"

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(divider + "\n")

	body = strings.TrimRight(body, "\n")
	if strings.TrimSpace(body) == "" {
		body = "-"
	}
	for line := range strings.SplitSeq(body, "\n") {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n" + divider)
	keys := append(hotKeys, "q: quit")
	b.WriteString(helpStyle.Render("  " + strings.Join(keys, "  ")))

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// formatFlags shows the opaque bucket flags as hex and bits.
func formatFlags(flags uint8) string {
	return fmt.Sprintf("0x%02x %08b", flags, flags)
}
