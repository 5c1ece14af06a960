package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs an ASCII art banner for the research bot.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Teal-to-blue gradient.
	lines := []struct {
		text  string
		color string
	}{
		{"                                 _     ", "#2dd4bf"},
		{"  _ __ ___  ___  ___  __ _ _ __| |__  ", "#22d3ee"},
		{" | '__/ _ \\/ __|/ _ \\/ _` | '__| '_ \\ ", "#38bdf8"},
		{" | | |  __/\\__ \\  __/ (_| | |  | | | |", "#60a5fa"},
		{" |_|  \\___||___/\\___|\\__,_|_|  |_| |_|", "#818cf8"},
		{"          b o t                        ", "#a78bfa"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
