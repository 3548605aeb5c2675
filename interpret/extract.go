package interpret

import (
	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

// ExtractEmojis scans text and returns every emoji in left-to-right order.
// Segmentation is grapheme-cluster based, so ZWJ sequences (family and
// profession emoji), skin-tone modified emoji, and flag pairs come back as
// one entry each. Index is the byte offset of the cluster in the UTF-8
// input; offsets are strictly increasing across the returned slice.
//
// The function is pure and never fails: text without emoji yields an empty
// slice, and malformed or partial sequences are simply returned as whatever
// clusters the segmenter produced that still classify as emoji.
func ExtractEmojis(text string) []ExtractedEmoji {
	if text == "" {
		return nil
	}

	var out []ExtractedEmoji
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		if !gomoji.ContainsEmoji(cluster) {
			continue
		}
		start, _ := gr.Positions()
		out = append(out, ExtractedEmoji{Character: cluster, Index: start})
	}
	return out
}
