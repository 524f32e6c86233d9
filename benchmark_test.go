package siteloc_test

import (
	"strings"
	"testing"

	"github.com/nordbloc/siteloc"
)

// Benchmarks for performance validation

func BenchmarkHashFragment(b *testing.B) {
	text := "Welcome to Acme, the home of quality widgets"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		siteloc.HashFragment(text)
	}
}

func BenchmarkBuildTranslationMap(b *testing.B) {
	def := &siteloc.ContentTree{Nodes: make(map[string]*siteloc.ContentNode)}
	tgt := &siteloc.ContentTree{Nodes: make(map[string]*siteloc.ContentNode)}
	for i := 0; i < 50; i++ {
		id := "n" + strings.Repeat("x", i%5) + string(rune('a'+i%26))
		def.Nodes[id] = &siteloc.ContentNode{ID: id, Text: "Source text " + id}
		tgt.Nodes[id] = &siteloc.ContentNode{ID: id, Text: "Oversat tekst " + id}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		siteloc.BuildTranslationMap(def, tgt)
	}
}

func BenchmarkApplyTranslations_Small(b *testing.B) {
	doc := `<html><body><h1>Welcome</h1><p>Read <a href="/docs" class="link">the docs</a></p></body></html>`
	m := siteloc.NewTranslationMap()
	m.Add("Welcome", "Velkommen")
	m.Add(`<a href="/docs">the docs</a>`, `<a href="/docs">dokumentationen</a>`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		siteloc.ApplyTranslations(doc, m)
	}
}

func BenchmarkApplyTranslations_Medium(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 100; i++ {
		sb.WriteString(`<p>Paragraph number `)
		sb.WriteString(strings.Repeat("word ", 10))
		sb.WriteString(`</p>`)
	}
	sb.WriteString("<h1>Welcome</h1></body></html>")
	doc := sb.String()

	m := siteloc.NewTranslationMap()
	m.Add("Welcome", "Velkommen")
	m.Add("Paragraph number", "Afsnit nummer")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		siteloc.ApplyTranslations(doc, m)
	}
}

func BenchmarkRestoreAttributes(b *testing.B) {
	original := `<div><a href="/buy" class="btn w-button" target="_blank">Buy</a><a href="/docs" class="link w-link">Docs</a></div>`
	translated := `<div><a href="/buy" class="btn">Køb</a><a href="/docs" class="link">Dok</a></div>`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		siteloc.RestoreAttributes(original, translated)
	}
}
