package siteloc

import (
	"encoding/json"
	"sort"
	"strings"
)

// ContentNode is one element of a structured content tree as exported by
// the content API. A node may carry plain text, inline markup, or both,
// plus ordered references to child nodes in the same tree.
type ContentNode struct {
	ID       string   `json:"id"`
	Text     string   `json:"text,omitempty"`
	HTML     string   `json:"html,omitempty"`
	ChildIDs []string `json:"childIds,omitempty"`
}

// ContentTree is a node-id-keyed content export for one page in one locale.
// Two trees for the same page share node ids for corresponding structural
// positions; fragments are paired by node identity, never by position.
type ContentTree struct {
	Nodes map[string]*ContentNode `json:"nodes"`
}

// Empty reports whether the tree is absent or has no nodes.
func (t *ContentTree) Empty() bool {
	return t == nil || len(t.Nodes) == 0
}

// NodeIDs returns every node id in sorted order. Builder output must be
// deterministic, so callers iterate ids instead of ranging over the node map.
func (t *ContentTree) NodeIDs() []string {
	if t == nil {
		return nil
	}
	ids := make([]string, 0, len(t.Nodes))
	for id := range t.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Walk visits the subtree rooted at rootID in child order, calling fn for
// each node. Each reachable node is visited at most once; reference cycles
// are tolerated, not assumed absent.
func (t *ContentTree) Walk(rootID string, fn func(*ContentNode)) {
	if t == nil || fn == nil {
		return
	}
	visited := make(map[string]bool)
	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		node, ok := t.Nodes[id]
		if !ok || node == nil {
			return
		}
		fn(node)
		for _, child := range node.ChildIDs {
			visit(child)
		}
	}
	visit(rootID)
}

// FragmentPair maps one source fragment to its translated counterpart.
// A fragment is either plain text or an inline-markup snippet.
type FragmentPair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// TranslationMap is an insertion-ordered mapping from source fragment to
// translated fragment. Registration order encodes priority: the first
// registration for a source fragment wins and later ones are dropped, which
// is how markup-derived pairs suppress plain-text pairs for the same
// literal string.
type TranslationMap struct {
	pairs []FragmentPair
	index map[string]int
}

// NewTranslationMap returns an empty translation map.
func NewTranslationMap() *TranslationMap {
	return &TranslationMap{index: make(map[string]int)}
}

// Add registers a source → target pair. Identity pairs and sources that are
// already registered are dropped. Reports whether the pair was added.
func (m *TranslationMap) Add(source, target string) bool {
	if source == "" || source == target {
		return false
	}
	if _, exists := m.index[source]; exists {
		return false
	}
	m.index[source] = len(m.pairs)
	m.pairs = append(m.pairs, FragmentPair{Source: source, Target: target})
	return true
}

// Get returns the registered translation for a source fragment.
func (m *TranslationMap) Get(source string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[source]
	if !ok {
		return "", false
	}
	return m.pairs[i].Target, true
}

// Has reports whether a source fragment is registered.
func (m *TranslationMap) Has(source string) bool {
	_, ok := m.Get(source)
	return ok
}

// Len returns the number of registered pairs.
func (m *TranslationMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns the registered pairs in insertion order.
func (m *TranslationMap) Pairs() []FragmentPair {
	if m == nil {
		return nil
	}
	out := make([]FragmentPair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// PairsByLength returns the registered pairs ordered longest source first,
// so a short fragment is never substituted inside the span of a longer,
// more context-correct fragment. The sort is stable: equal lengths keep
// insertion order.
func (m *TranslationMap) PairsByLength() []FragmentPair {
	out := m.Pairs()
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Source) > len(out[j].Source)
	})
	return out
}

// MarshalJSON encodes the map as an ordered pair array so built maps can be
// cached and exported without losing priority order.
func (m *TranslationMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Pairs())
}

// UnmarshalJSON decodes an ordered pair array, re-applying the registration
// rules (identity pairs and duplicate sources are dropped).
func (m *TranslationMap) UnmarshalJSON(data []byte) error {
	var pairs []FragmentPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	m.pairs = nil
	m.index = make(map[string]int)
	for _, p := range pairs {
		m.Add(p.Source, p.Target)
	}
	return nil
}

// GeneratedClassPrefixes lists class-token prefixes injected by the
// rendering platform after export. Tokens with these prefixes are excluded
// from restore keys and merged back during attribute restoration.
var GeneratedClassPrefixes = []string{"w-"}

// IsGeneratedClass reports whether a class token was injected by the
// rendering platform rather than authored in the content export.
func IsGeneratedClass(token string) bool {
	for _, prefix := range GeneratedClassPrefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}
