package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  _            _     __ _",
	" | |_ __ _ ___| | __/ _| | _____      __",
	" | __/ _` / __| |/ / |_| |/ _ \\ \\ /\\ / /",
	" | || (_| \\__ \\   <|  _| | (_) \\ V  V /",
	"  \\__\\__,_|___/_|\\_\\_| |_|\\___/ \\_/\\_/",
}

var bannerColors = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa"}

// PrintBanner writes the startup banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, termenv.String("  Smart To-Do Assistant").Faint())
	fmt.Fprintln(w)
}
