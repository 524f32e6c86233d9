package siteloc

import (
	"sort"
	"strings"
)

// Fragment key suffixes used when flattening a tree. A single node may
// contribute both a plain-text and an inline-markup fragment.
const (
	fragSuffixText = "#text"
	fragSuffixHTML = "#html"
)

// BuildTranslationMap compares the default-locale and target-locale content
// trees of one page and returns the ordered fragment mapping to apply to the
// rendered document.
//
// Pairs are registered in priority order: whole inline-markup fragments
// first (surrounding text and links substituted atomically), then normalized
// anchors paired by position within each fragment, then plain-text
// fragments. Because registration is first-wins, a plain-text fragment whose
// literal string was already claimed by a markup-derived pair is suppressed
// rather than creating an ambiguous overwrite.
//
// Malformed input fails soft: an absent or empty tree yields an empty map.
func BuildTranslationMap(defaultTree, targetTree *ContentTree) *TranslationMap {
	m := NewTranslationMap()
	if defaultTree.Empty() || targetTree.Empty() {
		return m
	}

	src := flattenTree(defaultTree)
	dst := flattenTree(targetTree)

	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.HasSuffix(key, fragSuffixHTML) {
			continue
		}
		srcHTML := src[key]
		dstHTML, ok := dst[key]
		if !ok || srcHTML == dstHTML {
			continue
		}
		m.Add(srcHTML, dstHTML)
		registerAnchorPairs(m, srcHTML, dstHTML)
	}

	for _, key := range keys {
		if !strings.HasSuffix(key, fragSuffixText) {
			continue
		}
		srcText := src[key]
		dstText, ok := dst[key]
		if !ok {
			continue
		}
		m.Add(srcText, dstText)
	}

	return m
}

// registerAnchorPairs pairs the anchors of two differing markup fragments by
// position and registers each pair whose normalized form differs. The
// anchor's bare visible text is deliberately not registered: identical link
// text in different contexts would create one-to-many mappings.
func registerAnchorPairs(m *TranslationMap, srcHTML, dstHTML string) {
	srcAnchors := ExtractAnchors(srcHTML)
	dstAnchors := ExtractAnchors(dstHTML)

	n := len(srcAnchors)
	if len(dstAnchors) < n {
		n = len(dstAnchors)
	}
	for i := 0; i < n; i++ {
		if srcAnchors[i].Normalized != dstAnchors[i].Normalized {
			m.Add(srcAnchors[i].Normalized, dstAnchors[i].Normalized)
		}
	}
}

// flattenTree records every node's plain text and inline markup keyed by
// node id plus a kind suffix. All nodes are visited, not just descendants of
// one root, so flat and nested tree shapes flatten identically.
func flattenTree(t *ContentTree) map[string]string {
	frags := make(map[string]string, len(t.Nodes)*2)
	for id, node := range t.Nodes {
		if node == nil {
			continue
		}
		if strings.TrimSpace(node.Text) != "" {
			frags[id+fragSuffixText] = node.Text
		}
		if strings.TrimSpace(node.HTML) != "" {
			frags[id+fragSuffixHTML] = node.HTML
		}
	}
	return frags
}
