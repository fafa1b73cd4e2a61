package editor

import (
	"strings"

	"github.com/justyntemme/handysynth/pkg/synth"
)

// TreeIndent is the indentation of preset rows under their bank.
const TreeIndent = "    "

// RenderTree draws the preset tree as text, one node per line, with
// presets indented under their bank. The root is not shown; an empty tree
// renders as "".
func RenderTree(tree synth.Tree) string {
	var b strings.Builder
	for _, bank := range tree.Banks {
		b.WriteString(bank.Text)
		b.WriteByte('\n')
		for _, p := range bank.Presets {
			b.WriteString(TreeIndent)
			b.WriteString(p.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
