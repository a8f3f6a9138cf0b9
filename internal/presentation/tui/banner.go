package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`   ___        _     ___ _`, "#818cf8"},
	{`  / _ \ _   _(_)___| __| |_____ __ __`, "#a78bfa"},
	{` | (_) | | | | |_ / _|| / _ \ V  V /`, "#c084fc"},
	{`  \__\_\\_,_|_|/__|_| |_\___/\_/\_/`, "#f472b6"},
}

// Banner returns the QuizFlow logo colored for the terminal profile.
func Banner() string {
	p := termenv.ColorProfile()
	var b strings.Builder
	for _, l := range bannerLines {
		b.WriteString(termenv.String(l.text).Foreground(p.Color(l.color)).String())
		b.WriteString("\n")
	}
	return b.String()
}

// PrintBanner writes the banner surrounded by blank lines.
func PrintBanner(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", Banner())
}
