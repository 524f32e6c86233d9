package cache

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nordbloc/siteloc"
)

func TestExporter_Export(t *testing.T) {
	c := NewInMemoryCache(3600)
	c.Set("home:da_DK:h1", `[{"source":"Welcome","target":"Velkommen"}]`)
	c.Set("about:da_DK:h2", `[{"source":"About","target":"Om os"}]`)

	exporter := NewExporter(c)
	var buf bytes.Buffer

	err := exporter.Export(&buf, map[string]string{"locale": "da_DK"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFormat
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", export.Version)
	}
	if len(export.Entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(export.Entries))
	}
	if export.Metadata["locale"] != "da_DK" {
		t.Errorf("Expected metadata locale=da_DK, got %v", export.Metadata)
	}
}

func TestExporter_UnsupportedCache(t *testing.T) {
	exporter := NewExporter(&RedisCache{})
	var buf bytes.Buffer

	if err := exporter.Export(&buf, nil); err == nil {
		t.Error("Expected error for cache without export support")
	}
}

func TestImporter_RoundTrip(t *testing.T) {
	src := NewInMemoryCache(0)
	src.Set("home:da_DK:h1", `[{"source":"Welcome","target":"Velkommen"}]`)

	var buf bytes.Buffer
	if err := NewExporter(src).Export(&buf, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := NewInMemoryCache(0)
	result, err := NewImporter(dst).Import(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 1 {
		t.Errorf("Expected 1 imported entry, got %d", result.Imported)
	}
	if val, ok := dst.Get("home:da_DK:h1"); !ok || !strings.Contains(val, "Velkommen") {
		t.Errorf("Imported entry missing or wrong: %q %v", val, ok)
	}
}

func TestGetMap_SetMap_RoundTrip(t *testing.T) {
	c := NewInMemoryCache(0)

	m := siteloc.NewTranslationMap()
	m.Add("Welcome", "Velkommen")
	m.Add(`<a href="/x">Learn more</a>`, `<a href="/x">Lær mere</a>`)

	key := siteloc.MapCacheKey("home", "da_DK", "hash")
	if err := SetMap(c, key, m); err != nil {
		t.Fatalf("SetMap failed: %v", err)
	}

	got, ok := GetMap(c, key)
	if !ok {
		t.Fatal("Expected cached map")
	}
	if got.Len() != 2 {
		t.Fatalf("Expected 2 pairs, got %d", got.Len())
	}
	if target, _ := got.Get("Welcome"); target != "Velkommen" {
		t.Errorf("Expected Velkommen, got %q", target)
	}
	// Priority order must survive the round trip
	if got.Pairs()[0].Source != "Welcome" {
		t.Errorf("Pair order not preserved: %+v", got.Pairs())
	}
}

func TestGetMap_CorruptEntryIsMiss(t *testing.T) {
	c := NewInMemoryCache(0)
	c.Set("key", "{not json")

	if _, ok := GetMap(c, "key"); ok {
		t.Error("Corrupt entry should read as a miss")
	}
}

func TestGetMap_NilCache(t *testing.T) {
	if _, ok := GetMap(nil, "key"); ok {
		t.Error("Nil cache should read as a miss")
	}
	if err := SetMap(nil, "key", siteloc.NewTranslationMap()); err != nil {
		t.Errorf("SetMap on nil cache should be a no-op, got %v", err)
	}
}
