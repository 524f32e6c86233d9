package assets

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/nordbloc/siteloc"
	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Downloader mirrors discovered assets under a local directory.
type Downloader struct {
	client *resty.Client
	dir    string
}

// NewDownloader creates a downloader writing under dir.
func NewDownloader(dir string, timeoutSeconds int) *Downloader {
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeoutSeconds <= 0 {
		timeout = 60 * time.Second
	}
	return &Downloader{
		client: resty.New().SetTimeout(timeout).SetRetryCount(2),
		dir:    dir,
	}
}

// Download fetches every asset URL not already mirrored. Individual
// failures are logged and counted, never fatal: a missing image does not
// block a site sync.
func (d *Downloader) Download(ctx context.Context, urls []string) (fetched, failed int) {
	for _, assetURL := range urls {
		if err := ctx.Err(); err != nil {
			return fetched, failed
		}

		local := LocalPath(assetURL)
		if local == "" {
			failed++
			continue
		}
		dest := filepath.Join(d.dir, filepath.FromSlash(local))
		if _, err := os.Stat(dest); err == nil {
			continue // already mirrored
		}

		if err := d.fetchTo(ctx, assetURL, dest); err != nil {
			log.WithField("asset", assetURL).Warnf("Asset download failed: %v", err)
			failed++
			continue
		}
		fetched++
	}
	return fetched, failed
}

func (d *Downloader) fetchTo(ctx context.Context, assetURL, dest string) error {
	resp, err := d.client.R().SetContext(ctx).Get(assetURL)
	if err != nil {
		return &siteloc.FetchError{URL: assetURL, Message: "fetching asset", Cause: err, Retryable: true}
	}
	if resp.IsError() {
		return &siteloc.FetchError{URL: assetURL, StatusCode: resp.StatusCode(), Message: "asset fetch failed"}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &siteloc.OutputError{Path: dest, Message: "creating asset dir", Cause: err}
	}
	if err := os.WriteFile(dest, resp.Bytes(), 0o644); err != nil {
		return &siteloc.OutputError{Path: dest, Message: "writing asset", Cause: err}
	}
	return nil
}
