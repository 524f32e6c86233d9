package siteloc

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashFragment computes the SHA-256 hash of a trimmed fragment.
func HashFragment(s string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(s)))
	return hex.EncodeToString(sum[:])
}

// HashTrees computes a combined content hash of a default/target tree pair.
// The hash changes when any node's text or markup changes in either tree,
// which makes it the invalidation key for cached translation maps.
func HashTrees(defaultTree, targetTree *ContentTree) string {
	h := sha256.New()
	writeTree := func(t *ContentTree) {
		if t == nil {
			return
		}
		for _, id := range t.NodeIDs() {
			node := t.Nodes[id]
			if node == nil {
				continue
			}
			h.Write([]byte(id))
			h.Write([]byte{0x1f})
			h.Write([]byte(node.Text))
			h.Write([]byte{0x1f})
			h.Write([]byte(node.HTML))
			h.Write([]byte{0x1e})
		}
	}
	writeTree(defaultTree)
	h.Write([]byte{0x1d})
	writeTree(targetTree)
	return hex.EncodeToString(h.Sum(nil))
}

// MapCacheKey builds the cache key for one page/locale translation map.
func MapCacheKey(pageID, locale, treeHash string) string {
	return pageID + ":" + locale + ":" + treeHash
}
