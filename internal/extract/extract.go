// Package extract recognizes video URLs in chat text and canonicalizes them
// into stable deduplication keys.
package extract

import (
	"errors"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Host patterns recognized in chat text. The generic pattern catches direct
// links to media files on any host.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://(?:www\.|m\.)?youtube\.com/(?:watch\?[\w=&%.-]+|shorts/[\w-]+|live/[\w-]+|embed/[\w-]+|v/[\w-]+)`),
	regexp.MustCompile(`https?://youtu\.be/[\w-]+(?:\?[\w=&%.-]+)?`),
	regexp.MustCompile(`https?://(?:www\.)?vimeo\.com/\d+`),
	regexp.MustCompile(`https?://(?:www\.)?dailymotion\.com/video/[\w-]+`),
	regexp.MustCompile(`https?://(?:www\.|m\.)?twitch\.tv/videos/\d+`),
	regexp.MustCompile(`https?://[^\s<>"']+\.(?:mp4|webm|mov|mkv)(?:\?[^\s<>"']*)?`),
}

// Well-known host aliases. Key: input host. Value: canonical domain.
//
// Intentionally conservative: only hosts that are truly the same source
// website from a viewer's perspective are aliased.
var canonicalDomainByHost = map[string]string{
	"youtube.com":     "youtube.com",
	"www.youtube.com": "youtube.com",
	"m.youtube.com":   "youtube.com",
	"youtu.be":        "youtube.com",

	"vimeo.com":     "vimeo.com",
	"www.vimeo.com": "vimeo.com",

	"dailymotion.com":     "dailymotion.com",
	"www.dailymotion.com": "dailymotion.com",

	"twitch.tv":     "twitch.tv",
	"www.twitch.tv": "twitch.tv",
	"m.twitch.tv":   "twitch.tv",
}

type match struct {
	pos int
	raw string
}

// Extract returns the canonical video URLs recognized in text, ordered by
// first occurrence and deduplicated on their canonical form. Zero matches
// yields an empty slice, not an error.
func Extract(text string) []string {
	var found []match
	for _, re := range urlPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			found = append(found, match{pos: loc[0], raw: text[loc[0]:loc[1]]})
		}
	}
	if len(found) == 0 {
		return nil
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	seen := make(map[string]struct{}, len(found))
	var urls []string
	for _, m := range found {
		canon, err := Canonicalize(m.raw)
		if err != nil {
			continue
		}
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		urls = append(urls, canon)
	}
	return urls
}

// Canonicalize normalizes a video URL into the form used as the queue's
// deduplication key.
//
// It canonicalizes the host (youtu.be -> youtube.com, www./m. stripped),
// prefers https, strips fragments and userinfo, and drops query parameters
// that commonly vary (timestamps, tracking):
//   - youtube.com: normalizes to https://youtube.com/watch?v={id}
//   - vimeo.com, dailymotion.com, twitch.tv: all query params dropped
//   - unknown hosts: fragment dropped, query preserved
func Canonicalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("missing url")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		u, err = url.Parse("https://" + raw)
		if err != nil {
			return "", err
		}
	}

	u.Fragment = ""
	u.User = nil

	host := normalizeHost(u.Host)
	canon := host
	if c, ok := canonicalDomainByHost[host]; ok {
		canon = c
	}

	// YouTube shortlinks need the ID extracted before the host is rewritten.
	youtubeID := ""
	if canon == "youtube.com" {
		if id := youTubeVideoID(u, host); id != "" {
			youtubeID = id
		}
	}

	if canon != "" {
		u.Host = canon
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		u.Scheme = "https"
	}
	u.Path = trimTrailingSlash(u.Path)

	switch canon {
	case "youtube.com":
		if youtubeID != "" {
			u.Path = "/watch"
			u.RawQuery = "v=" + url.QueryEscape(youtubeID)
		}
	case "vimeo.com", "dailymotion.com", "twitch.tv":
		u.RawQuery = ""
	}

	return u.String(), nil
}

// youTubeVideoID extracts the video ID from the supported YouTube URL shapes.
// Returns "" when no ID can be found.
func youTubeVideoID(u *url.URL, host string) string {
	if host == "youtu.be" {
		return firstPathSegment(u.Path)
	}
	if q := u.Query().Get("v"); q != "" {
		return q
	}
	for _, prefix := range []string{"/embed/", "/v/", "/shorts/", "/live/"} {
		if strings.HasPrefix(u.Path, prefix) {
			if id := firstPathSegment(strings.TrimPrefix(u.Path, prefix)); id != "" {
				return id
			}
		}
	}
	return ""
}

func normalizeHost(hostport string) string {
	h := strings.TrimSpace(strings.ToLower(hostport))
	if h == "" {
		return ""
	}
	// url.URL.Host may include port.
	if strings.Contains(h, ":") {
		if parsed, err := url.Parse("//" + h); err == nil && parsed.Hostname() != "" {
			h = parsed.Hostname()
		}
	}
	return strings.TrimSuffix(h, ".")
}

func trimTrailingSlash(p string) string {
	if p == "" || p == "/" {
		return p
	}
	return strings.TrimRight(p, "/")
}

func firstPathSegment(p string) string {
	p = strings.TrimPrefix(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	seg, _, _ := strings.Cut(p, "/")
	return strings.TrimSpace(seg)
}
