package siteloc

import "strings"

// scannedTag is one opening tag lifted out of a document by the tag-scanning
// pattern. The engine never builds a DOM; tags are matched between the
// original and translated documents purely by restore key.
type scannedTag struct {
	raw         string
	name        string
	attrs       []tagAttr
	selfClosing bool
}

func (t scannedTag) attr(name string) (string, bool) {
	for _, a := range t.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

func (t scannedTag) classTokens() []string {
	class, _ := t.attr("class")
	return strings.Fields(class)
}

// restoreKey derives the TagAttributeRestoreKey: tag name, href and the
// stable (non-generated) class tokens. Platform-generated tokens are
// excluded because the translated markup, substituted from the structured
// export, never carries them.
func restoreKey(t scannedTag) string {
	href, _ := t.attr("href")
	var stable []string
	for _, tok := range t.classTokens() {
		if !IsGeneratedClass(tok) {
			stable = append(stable, tok)
		}
	}
	return t.name + "|" + href + "|" + strings.Join(stable, " ")
}

// scanTag parses one opening tag. ok is false for stretches the tag pattern
// cannot parse; those pass through unrestored.
func scanTag(raw string) (scannedTag, bool) {
	m := openTagRe.FindStringSubmatch(raw)
	if m == nil || m[0] != raw {
		return scannedTag{}, false
	}
	return scannedTag{
		raw:         raw,
		name:        strings.ToLower(m[1]),
		attrs:       parseTagAttrs(m[2]),
		selfClosing: m[3] == "/",
	}, true
}

// RestoreAttributes reunites presentation attributes that exist only in the
// rendered markup with content that was translated via the structured tree.
//
// Every opening tag of the original (pre-translation) document is indexed by
// restore key, anchors additionally by href alone as a fallback. Each tag of
// the translated document whose key matches gets the original tag's
// platform-generated class tokens merged into its class attribute (appended
// when a class attribute exists, otherwise the whole original class list is
// copied) and the original target attribute copied when it has none of its
// own. hreflang is never copied: it is locale-specific and must come only
// from the translation input.
//
// Tags that cannot be keyed unambiguously (no href and no stable class) are
// left alone, as is any part of either document the tag pattern cannot scan.
func RestoreAttributes(original, translated string) string {
	byKey := make(map[string]scannedTag)
	byHref := make(map[string]scannedTag)

	for _, raw := range openTagRe.FindAllString(original, -1) {
		t, ok := scanTag(raw)
		if !ok || !keyable(t) {
			continue
		}
		key := restoreKey(t)
		if _, seen := byKey[key]; !seen {
			byKey[key] = t
		}
		if t.name == "a" {
			if href, ok := t.attr("href"); ok && href != "" {
				if _, seen := byHref[href]; !seen {
					byHref[href] = t
				}
			}
		}
	}
	if len(byKey) == 0 {
		return translated
	}

	return openTagRe.ReplaceAllStringFunc(translated, func(raw string) string {
		t, ok := scanTag(raw)
		if !ok {
			return raw
		}
		orig, found := byKey[restoreKey(t)]
		if !found && t.name == "a" {
			if href, ok := t.attr("href"); ok && href != "" {
				orig, found = byHref[href]
			}
		}
		if !found {
			return raw
		}
		return mergeTag(t, orig)
	})
}

// keyable reports whether a tag carries enough identity (an href or a stable
// class token) to be matched across documents. Bare structural tags would
// all collide on the same key.
func keyable(t scannedTag) bool {
	if href, ok := t.attr("href"); ok && href != "" {
		return true
	}
	for _, tok := range t.classTokens() {
		if !IsGeneratedClass(tok) {
			return true
		}
	}
	return false
}

// mergeTag rebuilds a translated tag with the original tag's presentation
// attributes merged in. The translated tag's own attributes always win;
// only what the substitution stripped is restored.
func mergeTag(translated, original scannedTag) string {
	attrs := make([]tagAttr, len(translated.attrs))
	copy(attrs, translated.attrs)

	if _, has := translated.attr("target"); !has {
		if target, ok := original.attr("target"); ok {
			attrs = append(attrs, tagAttr{name: "target", value: target})
		}
	}

	origClass, origHasClass := original.attr("class")
	if trClass, trHasClass := translated.attr("class"); trHasClass {
		merged := mergeClassTokens(trClass, origClass)
		if merged != trClass {
			for i := range attrs {
				if attrs[i].name == "class" {
					attrs[i].value = merged
					break
				}
			}
		}
	} else if origHasClass {
		attrs = append(attrs, tagAttr{name: "class", value: origClass})
	}

	rebuilt := buildOpenTag(translated.name, attrs, translated.selfClosing)
	if rebuilt == translated.raw {
		return translated.raw
	}
	return rebuilt
}

// mergeClassTokens appends the original's platform-generated class tokens
// to a translated class list, skipping tokens already present.
func mergeClassTokens(translatedClass, originalClass string) string {
	have := make(map[string]bool)
	for _, tok := range strings.Fields(translatedClass) {
		have[tok] = true
	}
	merged := translatedClass
	for _, tok := range strings.Fields(originalClass) {
		if IsGeneratedClass(tok) && !have[tok] {
			if merged == "" {
				merged = tok
			} else {
				merged += " " + tok
			}
			have[tok] = true
		}
	}
	return merged
}
