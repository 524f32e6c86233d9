// Package assets discovers the static assets a rendered document references
// and mirrors them into the output tree. Localized documents reference the
// same assets as the default-locale document, so collection runs once per
// page, not once per locale.
package assets

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// cssURLRe matches url(...) references inside style attributes and
// inline stylesheets.
var cssURLRe = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)

// Collect returns the same-host asset URLs a document references: images
// (src and srcset), stylesheets, scripts, favicons and url(...) references
// in inline CSS. The returned list is deduplicated in first-seen order.
func Collect(doc, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var found []string
	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || strings.HasPrefix(ref, "data:") {
			return
		}
		u, err := base.Parse(ref)
		if err != nil || (u.Host != base.Host && u.Host != "") {
			return
		}
		abs := u.String()
		if !seen[abs] {
			seen[abs] = true
			found = append(found, abs)
		}
	}

	tok := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		t := tok.Token()
		switch t.Data {
		case "img", "script", "source", "video", "audio":
			for _, a := range t.Attr {
				switch a.Key {
				case "src":
					add(a.Val)
				case "srcset":
					for _, candidate := range strings.Split(a.Val, ",") {
						fields := strings.Fields(strings.TrimSpace(candidate))
						if len(fields) > 0 {
							add(fields[0])
						}
					}
				}
			}
		case "link":
			var rel, href string
			for _, a := range t.Attr {
				switch a.Key {
				case "rel":
					rel = a.Val
				case "href":
					href = a.Val
				}
			}
			switch rel {
			case "stylesheet", "icon", "shortcut icon", "apple-touch-icon", "preload":
				add(href)
			}
		}

		for _, a := range t.Attr {
			if a.Key == "style" {
				for _, m := range cssURLRe.FindAllStringSubmatch(a.Val, -1) {
					add(m[1])
				}
			}
		}
	}

	// Inline <style> blocks are not reached by attribute scanning.
	for _, m := range cssURLRe.FindAllStringSubmatch(doc, -1) {
		add(m[1])
	}

	return found
}

// LocalPath maps an asset URL to its path under the output assets dir.
func LocalPath(assetURL string) string {
	u, err := url.Parse(assetURL)
	if err != nil {
		return ""
	}
	return strings.TrimLeft(u.Path, "/")
}
