// Package siteloc is the translation engine behind a multi-locale static
// site sync.
//
// Siteloc takes the structured content export of a page in two locales,
// derives an ordered fragment mapping, and applies it to the rendered
// default-locale document with a layered, markup-tolerant matching strategy:
//
//	import (
//	    "fmt"
//	    "github.com/nordbloc/siteloc"
//	)
//
//	func main() {
//	    m := siteloc.BuildTranslationMap(defaultTree, danishTree)
//	    if m.Len() == 0 {
//	        return // nothing to translate
//	    }
//
//	    translated := siteloc.ApplyTranslations(renderedHTML, m)
//	    translated = siteloc.RestoreAttributes(renderedHTML, translated)
//	    fmt.Println(translated)
//	}
//
// The engine never parses the rendered document into a DOM. The rendering
// platform re-serializes markup with its own attribute order, injected
// layout classes and entity encoding, so the engine matches fragments
// through a priority ladder (exact, attribute-normalized, tolerant pattern,
// line-split, whitespace variants) and reunites presentation attributes in
// a final restoration pass. Fragments that find no home are skipped, never
// raised: an untranslated fragment degrades output quality, not structure.
//
// The surrounding packages (content, crawl, assets, seo, cache, output,
// syncer) fetch content trees and rendered pages, cache built maps and
// write the localized output tree. The core in this package is pure and
// safe to run concurrently across independent (page, locale) pairs.
package siteloc
