package siteloc

import (
	"strings"
	"testing"
)

func mapOf(t *testing.T, pairs ...[2]string) *TranslationMap {
	t.Helper()
	m := NewTranslationMap()
	for _, p := range pairs {
		m.Add(p[0], p[1])
	}
	return m
}

func TestApplyTranslations_EmptyMapIsByteForByteNoOp(t *testing.T) {
	// Non-canonical anchor attribute order must survive untouched.
	doc := `<html><body><a class="c" href="/x" target="_blank">Go</a></body></html>`

	got, report := ApplyTranslationsReport(doc, NewTranslationMap())
	if got != doc {
		t.Errorf("Expected document unchanged, got %q", got)
	}
	if report.Applied != 0 || report.UnmatchedCount() != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
}

func TestApplyTranslations_ExactMatchReplacesAllOccurrences(t *testing.T) {
	doc := `<p>Welcome</p><footer>Welcome</footer>`
	m := mapOf(t, [2]string{"Welcome", "Velkommen"})

	got := ApplyTranslations(doc, m)
	if got != `<p>Velkommen</p><footer>Velkommen</footer>` {
		t.Errorf("Expected all occurrences replaced, got %q", got)
	}
}

func TestApplyTranslations_LongestSourceWins(t *testing.T) {
	doc := `<h1>Welcome home</h1>`
	m := mapOf(t,
		[2]string{"Welcome", "Velkommen"},
		[2]string{"Welcome home", "Velkommen hjem"},
	)

	got, report := ApplyTranslationsReport(doc, m)
	if got != `<h1>Velkommen hjem</h1>` {
		t.Errorf("Expected the longer fragment to win, got %q", got)
	}
	if report.Applied != 1 {
		t.Errorf("Expected 1 applied, got %d", report.Applied)
	}
	if report.UnmatchedCount() != 1 || report.Unmatched[0] != "Welcome" {
		t.Errorf("Expected the short fragment to go unmatched, got %v", report.Unmatched)
	}
}

func TestApplyTranslations_MarkupToleratesInjectedClassAndTarget(t *testing.T) {
	// The export knows class="btn"; the platform rendered class="btn w-button"
	// and put href after class.
	doc := `<div><a class="btn w-button" href="/buy">Buy now</a></div>`
	m := mapOf(t, [2]string{`<a href="/buy" class="btn">Buy now</a>`, `<a href="/buy" class="btn">Køb nu</a>`})

	got := ApplyTranslations(doc, m)
	if got != `<div><a href="/buy" class="btn">Køb nu</a></div>` {
		t.Errorf("Tolerant match failed, got %q", got)
	}
}

func TestApplyTranslations_MarkupToleratesTargetBlank(t *testing.T) {
	doc := `<div><a target="_blank" href="/buy" class="btn">Buy now</a></div>`
	m := mapOf(t, [2]string{`<a href="/buy" class="btn">Buy now</a>`, `<a href="/buy" class="btn">Køb nu</a>`})

	got := ApplyTranslations(doc, m)
	if !strings.Contains(got, "Køb nu") {
		t.Errorf("Expected target=_blank to be absorbed, got %q", got)
	}
}

func TestApplyTranslations_HrefOnlyFallback(t *testing.T) {
	// The rendered anchor's class diverged entirely from the export.
	doc := `<p>Read <a href="/docs" class="navlink w-nav" target="_blank">the docs</a> now</p>`
	m := mapOf(t, [2]string{
		`<p>Read <a href="/docs" class="link">the docs</a> now</p>`,
		`<p>Læs <a href="/docs" class="link">dokumentationen</a> nu</p>`,
	})

	got, report := ApplyTranslationsReport(doc, m)
	if report.Applied != 1 {
		t.Fatalf("Expected 1 applied, got %d (unmatched %v)", report.Applied, report.Unmatched)
	}
	if !strings.Contains(got, "dokumentationen") || !strings.Contains(got, "Læs") {
		t.Errorf("Expected href-only fallback to substitute, got %q", got)
	}
}

func TestApplyTranslations_EntityEncodedExport(t *testing.T) {
	doc := `<p>Fish & Chips</p>`
	m := mapOf(t, [2]string{"<p>Fish &amp; Chips</p>", "<p>Fisk &amp; Pomfritter</p>"})

	got := ApplyTranslations(doc, m)
	if got != `<p>Fisk & Pomfritter</p>` {
		t.Errorf("Expected entity-decoded match and replacement, got %q", got)
	}
}

func TestApplyTranslations_LineSplitFallback(t *testing.T) {
	doc := "<p>First sentence.</p>\n<div>other stuff</div>\n<p>Second sentence.</p>"
	m := mapOf(t, [2]string{
		"First sentence.\nSecond sentence.",
		"Første sætning.\nAnden sætning.",
	})

	got, report := ApplyTranslationsReport(doc, m)
	if !strings.Contains(got, "Første sætning.") || !strings.Contains(got, "Anden sætning.") {
		t.Errorf("Expected line-split substitution, got %q", got)
	}
	if report.Applied != 1 {
		t.Errorf("Expected the entry to count as applied, got %d", report.Applied)
	}
}

func TestApplyTranslations_WhitespaceVariants(t *testing.T) {
	doc := `<span>Hello world</span>`
	m := mapOf(t, [2]string{"  Hello world  ", "  Hej verden  "})

	got := ApplyTranslations(doc, m)
	if got != `<span>Hej verden</span>` {
		t.Errorf("Expected trimmed variant to match, got %q", got)
	}
}

func TestApplyTranslations_UnmatchedEntriesReportedNotFatal(t *testing.T) {
	doc := `<p>Welcome</p>`
	m := mapOf(t,
		[2]string{"Welcome", "Velkommen"},
		[2]string{"Nowhere to be found", "Findes ikke"},
	)

	got, report := ApplyTranslationsReport(doc, m)
	if got != `<p>Velkommen</p>` {
		t.Errorf("Expected matching entry applied, got %q", got)
	}
	if report.Applied != 1 || report.UnmatchedCount() != 1 {
		t.Errorf("Expected 1 applied and 1 unmatched, got %+v", report)
	}
}

func TestApplyTranslations_TranslationKeepsItsOwnPresentation(t *testing.T) {
	doc := `<p><a href="/de">Site</a></p>`
	m := mapOf(t, [2]string{
		`<a href="/de">Site</a>`,
		`<a href="/de" hreflang="de">Seite</a>`,
	})

	got := ApplyTranslations(doc, m)
	if got != `<p><a href="/de" hreflang="de">Seite</a></p>` {
		t.Errorf("Expected the translation's hreflang to survive, got %q", got)
	}
}

func TestApplyTranslations_ReapplicationIsIdempotent(t *testing.T) {
	doc := `<html><body><h1>Welcome</h1><p>Contact us today</p></body></html>`
	m := mapOf(t,
		[2]string{"Welcome", "Velkommen"},
		[2]string{"Contact us today", "Kontakt os i dag"},
	)

	once := ApplyTranslations(doc, m)
	twice := ApplyTranslations(once, m)
	if once != twice {
		t.Errorf("Expected reapplication to change nothing:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestApplyTranslations_EndToEndWithBuilderAndRestore(t *testing.T) {
	def := tree(
		&ContentNode{ID: "n1", Text: "Welcome"},
		&ContentNode{ID: "n2", HTML: `<p>Read <a href="/docs" class="link">the docs</a></p>`},
	)
	tgt := tree(
		&ContentNode{ID: "n1", Text: "Velkommen"},
		&ContentNode{ID: "n2", HTML: `<p>Læs <a href="/docs" class="link">dokumentationen</a></p>`},
	)

	doc := `<html><body><h1>Welcome</h1>` +
		`<p>Read <a class="link w-inline-block" href="/docs" target="_blank">the docs</a></p>` +
		`</body></html>`

	m := BuildTranslationMap(def, tgt)
	translated := ApplyTranslations(doc, m)
	restored := RestoreAttributes(doc, translated)

	if !strings.Contains(restored, "<h1>Velkommen</h1>") {
		t.Errorf("Expected heading translated, got %q", restored)
	}
	if !strings.Contains(restored, "dokumentationen") {
		t.Errorf("Expected anchor text translated, got %q", restored)
	}
	if !strings.Contains(restored, "w-inline-block") {
		t.Errorf("Expected generated class restored, got %q", restored)
	}
	if !strings.Contains(restored, `target="_blank"`) {
		t.Errorf("Expected target restored, got %q", restored)
	}
}
