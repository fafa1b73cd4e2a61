package synth

import (
	"fmt"
	"iter"

	"github.com/samber/lo"

	"github.com/justyntemme/handysynth/pkg/engine"
)

// PresetNode is a leaf of the preset tree.
type PresetNode struct {
	Bank    int
	Program int
	Name    string
	Text    string
}

// BankNode groups the presets of one bank.
type BankNode struct {
	Bank    int
	Text    string
	Presets []PresetNode
}

// Tree is the read-only bank/preset view of a soundfont. The root is
// implicit; a Tree with no banks means no soundfont is loaded.
type Tree struct {
	Banks []BankNode
}

// IsEmpty reports whether the tree has no banks.
func (t Tree) IsEmpty() bool {
	return len(t.Banks) == 0
}

// Len returns the number of presets across all banks.
func (t Tree) Len() int {
	n := 0
	for _, b := range t.Banks {
		n += len(b.Presets)
	}
	return n
}

// Bank returns the node for bank, if present.
func (t Tree) Bank(bank int) (BankNode, bool) {
	return lo.Find(t.Banks, func(b BankNode) bool { return b.Bank == bank })
}

// BankText is the display text of a bank node.
func BankText(bank int) string {
	return fmt.Sprintf("Bank # %d", bank)
}

// PresetText is the display text of a preset leaf.
func PresetText(program int, name string) string {
	return fmt.Sprintf("%d   %s", program, name)
}

// BuildTree groups presets by bank in one pass. Banks appear in the order
// their first preset is seen; presets keep iteration order within a bank.
func BuildTree(presets iter.Seq[engine.Preset]) Tree {
	var all []engine.Preset
	for p := range presets {
		all = append(all, p)
	}
	if len(all) == 0 {
		return Tree{}
	}

	byBank := lo.GroupBy(all, func(p engine.Preset) int { return p.Bank })
	order := lo.Uniq(lo.Map(all, func(p engine.Preset, _ int) int { return p.Bank }))

	tree := Tree{Banks: make([]BankNode, 0, len(order))}
	for _, bank := range order {
		tree.Banks = append(tree.Banks, BankNode{
			Bank: bank,
			Text: BankText(bank),
			Presets: lo.Map(byBank[bank], func(p engine.Preset, _ int) PresetNode {
				return PresetNode{
					Bank:    p.Bank,
					Program: p.Program,
					Name:    p.Name,
					Text:    PresetText(p.Program, p.Name),
				}
			}),
		})
	}
	return tree
}
