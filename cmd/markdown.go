package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
)

// wordWrap is the width of the terminal rendering; tables are wider than 80 columns.
const wordWrap = 160

// printMarkdown renders md for the terminal on stdout.
func printMarkdown(md string) { fprintMarkdown(os.Stdout, md, *plain) }

// fprintMarkdown writes md to w, rendered by glamour unless raw is set.
// A rendering failure falls back to the raw markdown.
func fprintMarkdown(w io.Writer, md string, raw bool) {
	if raw {
		fmt.Fprint(w, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}
