// Package format turns raw multi-line AI text into typed content blocks.
//
// Each non-blank line becomes exactly one block: a numbered item when it
// starts with digits and a dot, a bullet item when it starts with one of
// "•", "-" or "*", and a paragraph otherwise. Numerals are kept verbatim from
// the source text; the service's own numbering is never re-derived.
package format

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// Kind is the type of a content block.
type Kind int

const (
	KindParagraph Kind = iota
	KindNumbered
	KindBullet
)

func (k Kind) String() string {
	switch k {
	case KindNumbered:
		return "numbered"
	case KindBullet:
		return "bullet"
	default:
		return "paragraph"
	}
}

// Block is one classified unit of formatted output.
type Block struct {
	Kind  Kind
	Index string // numeral of a numbered item, empty otherwise
	Text  string
}

var (
	numberedPattern = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)
	bulletPattern   = regexp.MustCompile(`^[•\-*]\s*(.*)$`)
)

// Blocks returns a sequence over the blocks of text. The sequence is lazy and
// can be ranged over any number of times with identical results.
func Blocks(text string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for line := range strings.Lines(text) {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(Classify(line)) {
				return
			}
		}
	}
}

// Format collects all blocks of text.
func Format(text string) []Block {
	return slices.Collect(Blocks(text))
}

// Classify classifies a single trimmed, non-blank line.
func Classify(line string) Block {
	if m := numberedPattern.FindStringSubmatch(line); m != nil {
		return Block{Kind: KindNumbered, Index: m[1], Text: m[2]}
	}
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return Block{Kind: KindBullet, Text: m[1]}
	}
	return Block{Kind: KindParagraph, Text: line}
}
