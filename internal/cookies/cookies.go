// Package cookies exports browser cookies into a Netscape cookie file for the child.
package cookies

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"harvester/internal/domain/consts"
	"harvester/internal/file"
	"harvester/internal/utils/logging"

	"github.com/browserutils/kooky"
	// Use all browsers for Kooky:
	_ "github.com/browserutils/kooky/browser/all"
	"golang.org/x/net/publicsuffix"
)

const netscapeHeader = "# Netscape HTTP Cookie File"

// ExportForURLs reads valid browser cookies for every site in urls and writes
// them to path. It returns the number of cookies written.
//
// No file is written when no cookies are found.
func ExportForURLs(ctx context.Context, urls []string, path string) (int, error) {
	var all []*http.Cookie
	for _, domain := range BaseDomains(urls) {
		all = append(all, loadCookiesForDomain(ctx, domain)...)
	}
	all = dedupeCookies(all)

	if len(all) == 0 {
		logging.I("No browser cookies found for %d site(s), not passing a cookie file", len(BaseDomains(urls)))
		return 0, nil
	}

	if err := file.WriteLinesAtomic(path, FormatNetscape(all), consts.PermsCookieFile); err != nil {
		return 0, fmt.Errorf("failed to write cookie file: %w", err)
	}
	logging.D(1, "Saved %d cookies to file %s", len(all), path)
	return len(all), nil
}

// BaseDomains returns the registrable domains (eTLD+1) of urls, deduplicated and sorted.
func BaseDomains(urls []string) []string {
	seen := make(map[string]struct{})
	for _, u := range urls {
		d, err := baseDomain(u)
		if err != nil {
			logging.D(2, "No base domain for %q: %v", u, err)
			continue
		}
		seen[d] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// FormatNetscape renders cookies as Netscape cookie file lines, header first.
func FormatNetscape(cookies []*http.Cookie) []string {
	lines := make([]string, 0, len(cookies)+2)
	lines = append(lines, netscapeHeader, "")

	for _, c := range cookies {
		domain := c.Domain
		includeSubdomains := "FALSE"
		if strings.HasPrefix(domain, ".") {
			includeSubdomains = "TRUE"
		}

		secure := "FALSE"
		if c.Secure {
			secure = "TRUE"
		}

		path := c.Path
		if path == "" {
			path = "/"
		}

		var expires int64
		if !c.Expires.IsZero() {
			expires = c.Expires.Unix()
		}

		if c.HttpOnly {
			domain = "#HttpOnly_" + domain
		}

		lines = append(lines, fmt.Sprintf("%s\t%s\t%s\t%s\t%d\t%s\t%s",
			domain, includeSubdomains, path, secure, expires, c.Name, c.Value))
	}
	return lines
}

// loadCookiesForDomain loads the cookies associated with a particular domain.
func loadCookiesForDomain(ctx context.Context, domain string) []*http.Cookie {
	kookyCookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.DomainHasSuffix(domain))
	if err != nil {
		logging.D(2, "Failed reading cookies for %s: %v", domain, err)
	}
	if len(kookyCookies) == 0 {
		logging.I("No cookies found for %s", domain)
		return nil
	}

	logging.I("Found %d cookies for %s", len(kookyCookies), domain)
	return convertToHTTPCookies(kookyCookies)
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, 0, len(kookyCookies))
	for _, c := range kookyCookies {
		if c == nil {
			continue
		}
		httpCookies = append(httpCookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	return httpCookies
}

// dedupeCookies keeps the last cookie seen for each domain, path and name.
func dedupeCookies(cookies []*http.Cookie) []*http.Cookie {
	index := make(map[string]int, len(cookies))
	out := make([]*http.Cookie, 0, len(cookies))

	for _, c := range cookies {
		key := c.Domain + "|" + c.Path + "|" + c.Name
		if i, ok := index[key]; ok {
			out[i] = c
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out
}

// baseDomain returns the eTLD+1 of a URL's host.
func baseDomain(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	host := parsed.Hostname()
	if host == "" {
		return "", fmt.Errorf("no host in %q", u)
	}
	return publicsuffix.EffectiveTLDPlusOne(host)
}
