// Command siteloc syncs a multi-locale site into a localized static tree.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/nordbloc/siteloc"
	"github.com/nordbloc/siteloc/assets"
	"github.com/nordbloc/siteloc/cache"
	"github.com/nordbloc/siteloc/config"
	"github.com/nordbloc/siteloc/content"
	"github.com/nordbloc/siteloc/crawl"
	"github.com/nordbloc/siteloc/output"
	"github.com/nordbloc/siteloc/syncer"

	log "github.com/sirupsen/logrus"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = siteloc.Version
	commit    = siteloc.GitCommit
	buildDate = siteloc.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("siteloc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	configPath := fs.String("config", "", "Config file (default: config.yaml)")
	outDir := fs.String("out", "", "Output directory (or output file in --map mode)")
	onlyLocale := fs.String("locale", "", "Sync only this target locale")
	onlyPage := fs.String("page", "", "Sync only this page slug")
	mapFile := fs.String("map", "", "Translate a single document with this translation-map JSON file")
	diffFile := fs.String("diff", "", "Compare the --map file with this previous map and show changes")
	exportCache := fs.String("export-cache", "", "After the sync, export the map cache to this file")
	importCache := fs.String("import-cache", "", "Before the sync, import a map cache from this file")
	dryRun := fs.Bool("dry-run", false, "Build maps and report stats without writing output")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	jsonOutput := fs.Bool("json", false, "Output the run report as JSON")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", siteloc.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	// Handle map diff mode
	if *diffFile != "" {
		if *mapFile == "" {
			fs.Usage()
			return fmt.Errorf("--diff requires --map with the current map file")
		}
		return runDiff(*mapFile, *diffFile, stdout, *jsonOutput)
	}

	// Handle standalone document translation mode
	if *mapFile != "" {
		return runTranslate(fs.Args(), *mapFile, *outDir, stdout, stderr, *quiet, *jsonOutput)
	}

	return runSync(syncFlags{
		configPath:  *configPath,
		outDir:      *outDir,
		onlyLocale:  *onlyLocale,
		onlyPage:    *onlyPage,
		exportCache: *exportCache,
		importCache: *importCache,
		dryRun:      *dryRun,
		quiet:       *quiet,
		jsonOutput:  *jsonOutput,
	}, stdout, stderr)
}

type syncFlags struct {
	configPath  string
	outDir      string
	onlyLocale  string
	onlyPage    string
	exportCache string
	importCache string
	dryRun      bool
	quiet       bool
	jsonOutput  bool
}

// runSync wires the full pipeline from config and runs it.
func runSync(flags syncFlags, stdout, stderr io.Writer) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(stderr)
	if flags.quiet {
		log.SetLevel(log.ErrorLevel)
	}

	if flags.outDir != "" {
		cfg.Sync.OutputDir = flags.outDir
	}
	locales := cfg.Site.Locales
	if flags.onlyLocale != "" {
		locales = []string{flags.onlyLocale}
	}

	supplier := content.NewClient(content.ClientConfig{
		APIBaseURL:           cfg.API.BaseURL,
		SiteBaseURL:          cfg.Site.BaseURL,
		Token:                cfg.API.Token,
		Timeout:              cfg.API.Timeout,
		MaxRetries:           cfg.API.MaxRetries,
		MaxRequestsPerSecond: cfg.API.MaxRequestsPerSecond,
	})

	mapCache, err := buildCache(cfg)
	if err != nil {
		return err
	}
	if flags.importCache != "" {
		result, err := cache.NewImporter(mapCache).ImportFromFile(flags.importCache)
		if err != nil {
			return fmt.Errorf("importing cache: %w", err)
		}
		log.Infof("Imported %d cached maps (%d failed)", result.Imported, result.Failed)
	}

	var crawler *crawl.Crawler
	if cfg.Sync.CrawlFallback {
		crawler = crawl.NewCrawler(crawl.CrawlerConfig{
			BaseURL:  cfg.Site.BaseURL,
			Timeout:  cfg.API.Timeout,
			MaxPages: cfg.Sync.MaxCrawlPages,
		})
	}

	var sink output.Sink = discardSink{}
	var downloader *assets.Downloader
	if !flags.dryRun {
		sink = output.NewDirSink(cfg.Sync.OutputDir)
		if cfg.Sync.DownloadAssets {
			downloader = assets.NewDownloader(
				filepath.Join(cfg.Sync.OutputDir, "assets"), cfg.API.Timeout)
		}
	}

	service := syncer.New(supplier, sink, mapCache, crawler, downloader, syncer.Options{
		SiteBaseURL:   cfg.Site.BaseURL,
		DefaultLocale: cfg.Site.DefaultLocale,
		Locales:       locales,
		Workers:       cfg.Sync.Workers,
		OnlySlug:      flags.onlyPage,
	})

	report, err := service.Run(context.Background())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if !flags.dryRun && cfg.Sync.WriteSitemap && len(report.Slugs) > 0 {
		slugs := append([]string(nil), report.Slugs...)
		sort.Strings(slugs)
		if err := output.WriteSitemap(cfg.Sync.OutputDir, cfg.Site.BaseURL,
			cfg.Site.DefaultLocale, locales, slugs); err != nil {
			log.Warnf("Writing sitemap failed: %v", err)
		}
		if err := output.WriteRobots(cfg.Sync.OutputDir, cfg.Site.BaseURL); err != nil {
			log.Warnf("Writing robots.txt failed: %v", err)
		}
	}

	if flags.exportCache != "" {
		meta := map[string]string{"site": cfg.Site.BaseURL}
		if err := cache.NewExporter(mapCache).ExportToFile(flags.exportCache, meta); err != nil {
			return fmt.Errorf("exporting cache: %w", err)
		}
	}

	return reportRun(report, stdout, flags.quiet, flags.jsonOutput)
}

// buildCache picks the cache backend from config. A disabled cache still
// returns a working in-memory cache scoped to this run, so one run never
// rebuilds the same map twice.
func buildCache(cfg *config.Config) (cache.MapCache, error) {
	if !cfg.Cache.Enabled || cfg.Cache.RedisURL == "" {
		return cache.NewInMemoryCache(cfg.Cache.TTL), nil
	}
	c, err := cache.NewRedisCache(cache.RedisConfig{
		URL: cfg.Cache.RedisURL,
		TTL: cfg.Cache.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return c, nil
}

// reportRun prints the run report.
func reportRun(report *syncer.Report, stdout io.Writer, quiet, jsonOut bool) error {
	written, skipped, failed := 0, 0, 0
	for _, res := range report.Results {
		switch {
		case res.Err != nil:
			failed++
		case res.Skipped != "":
			skipped++
		default:
			written++
		}
	}

	if jsonOut {
		type unitOutput struct {
			Page      string `json:"page"`
			Locale    string `json:"locale,omitempty"`
			Applied   int    `json:"applied,omitempty"`
			Unmatched int    `json:"unmatched,omitempty"`
			Skipped   string `json:"skipped,omitempty"`
			Error     string `json:"error,omitempty"`
		}
		type runOutput struct {
			Written   int          `json:"written"`
			Skipped   int          `json:"skipped"`
			Failed    int          `json:"failed"`
			Unmatched int          `json:"unmatched"`
			Units     []unitOutput `json:"units"`
		}

		out := runOutput{Written: written, Skipped: skipped, Failed: failed, Unmatched: report.Unmatched()}
		for _, res := range report.Results {
			unit := unitOutput{
				Page:      res.Page,
				Locale:    res.Locale,
				Applied:   res.Applied,
				Unmatched: res.Unmatched,
				Skipped:   res.Skipped,
			}
			if res.Err != nil {
				unit.Error = res.Err.Error()
			}
			out.Units = append(out.Units, unit)
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if !quiet {
		fmt.Fprintf(stdout, "Sync complete\n")
		fmt.Fprintf(stdout, "  Written:   %d\n", written)
		fmt.Fprintf(stdout, "  Skipped:   %d\n", skipped)
		fmt.Fprintf(stdout, "  Failed:    %d\n", failed)
		fmt.Fprintf(stdout, "  Unmatched: %d\n", report.Unmatched())
	}
	if failed > 0 {
		return fmt.Errorf("%d units failed", failed)
	}
	return nil
}

// runTranslate translates one document with a map file, no API access.
func runTranslate(args []string, mapPath, outPath string, stdout, stderr io.Writer, quiet, jsonOut bool) error {
	mapData, err := os.ReadFile(mapPath) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return fmt.Errorf("reading map file: %w", err)
	}
	var m siteloc.TranslationMap
	if err := json.Unmarshal(mapData, &m); err != nil {
		return fmt.Errorf("decoding map file: %w", err)
	}

	var input, inputName string
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
		inputName = "stdin"
	} else {
		data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		input = string(data)
		inputName = filepath.Base(args[0])
	}

	if !quiet {
		fmt.Fprintf(stderr, "Translating %s with %d map entries...\n", inputName, m.Len())
	}

	translated, report := siteloc.ApplyTranslationsReport(input, &m)
	translated = siteloc.RestoreAttributes(input, translated)

	var out io.Writer = stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if jsonOut {
		result := struct {
			Content   string   `json:"content"`
			Applied   int      `json:"applied"`
			Unmatched []string `json:"unmatched,omitempty"`
		}{Content: translated, Applied: report.Applied, Unmatched: report.Unmatched}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprint(out, translated)

	if !quiet {
		fmt.Fprintf(stderr, "\n  Applied:   %d\n", report.Applied)
		fmt.Fprintf(stderr, "  Unmatched: %d\n", report.UnmatchedCount())
	}
	return nil
}

// runDiff compares two map files and shows what changed.
func runDiff(newPath, oldPath string, stdout io.Writer, jsonOut bool) error {
	oldMap, err := readMap(oldPath)
	if err != nil {
		return fmt.Errorf("reading previous map: %w", err)
	}
	newMap, err := readMap(newPath)
	if err != nil {
		return fmt.Errorf("reading current map: %w", err)
	}

	diff := siteloc.DiffMaps(oldMap, newMap)
	stats := diff.Stats()

	if jsonOut {
		type changeOutput struct {
			Source    string `json:"source"`
			OldTarget string `json:"old_target"`
			NewTarget string `json:"new_target"`
		}
		out := struct {
			Added     []siteloc.FragmentPair `json:"added,omitempty"`
			Removed   []siteloc.FragmentPair `json:"removed,omitempty"`
			Changed   []changeOutput         `json:"changed,omitempty"`
			Unchanged int                    `json:"unchanged"`
		}{
			Added:     diff.Added,
			Removed:   diff.Removed,
			Unchanged: diff.Unchanged,
		}
		for _, ch := range diff.Changed {
			out.Changed = append(out.Changed, changeOutput{
				Source: ch.Source, OldTarget: ch.OldTarget, NewTarget: ch.NewTarget,
			})
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(stdout, "Map diff: %s vs %s\n\n", filepath.Base(newPath), filepath.Base(oldPath))
	fmt.Fprintf(stdout, "Summary:\n")
	fmt.Fprintf(stdout, "  Unchanged: %d\n", stats.Unchanged)
	fmt.Fprintf(stdout, "  Added:     %d\n", stats.Added)
	fmt.Fprintf(stdout, "  Removed:   %d\n", stats.Removed)
	fmt.Fprintf(stdout, "  Changed:   %d\n\n", stats.Changed)

	if !diff.HasChanges() {
		fmt.Fprintf(stdout, "No changes detected.\n")
		return nil
	}

	for _, pair := range diff.Added {
		fmt.Fprintf(stdout, "  + %q\n", truncate(pair.Source, 60))
	}
	for _, ch := range diff.Changed {
		fmt.Fprintf(stdout, "  ~ %q: %q -> %q\n",
			truncate(ch.Source, 40), truncate(ch.OldTarget, 30), truncate(ch.NewTarget, 30))
	}
	for _, pair := range diff.Removed {
		fmt.Fprintf(stdout, "  - %q\n", truncate(pair.Source, 60))
	}
	return nil
}

func readMap(path string) (*siteloc.TranslationMap, error) {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, err
	}
	var m siteloc.TranslationMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// discardSink drops every document; dry runs use it so the pipeline runs
// end to end without touching the filesystem.
type discardSink struct{}

func (discardSink) WritePage(locale, slug, doc string) error { return nil }
