package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

// fitCell truncates s to width terminal cells, marking the cut with an
// ellipsis, and pads it so columns line up for wide characters too.
func fitCell(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// examSizeFlag reads --size, falling back to the configured default when
// the flag was not given.
func examSizeFlag(cmd *cobra.Command, fallback int) (int, error) {
	size, _ := cmd.Flags().GetInt("size")
	if !cmd.Flags().Changed("size") {
		size = fallback
	}
	if size < 1 {
		return 0, fmt.Errorf("--size must be at least 1, got %d", size)
	}
	return size, nil
}
