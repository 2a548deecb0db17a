package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Extensions the standard mime table doesn't reliably cover on minimal
// container images.
var contentTypeByExt = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
}

// handleFile serves one artifact's bytes with single-range support.
//
// Semantics: no Range header -> 200 full body; one well-formed byte range ->
// 206 with Content-Range; range starting at or past EOF -> 416; malformed or
// multi-range headers degrade to a 200 full body. Every response advertises
// Accept-Ranges so players know seeking works.
func (s *Server) handleFile(c echo.Context) error {
	name, err := safeName(c.Param("filename"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	path := filepath.Join(s.root, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	size := info.Size()

	h := c.Response().Header()
	h.Set("Accept-Ranges", "bytes")
	h.Set(echo.HeaderContentType, contentTypeFor(name))
	h.Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))

	start, end, status := parseRange(c.Request().Header.Get("Range"), size)
	switch status {
	case rangeUnsatisfiable:
		h.Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		return c.NoContent(http.StatusRequestedRangeNotSatisfiable)

	case rangePartial:
		f, err := os.Open(path)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		defer f.Close()
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "seek failed")
		}
		length := end - start + 1
		h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
		h.Set(echo.HeaderContentLength, strconv.FormatInt(length, 10))
		c.Response().WriteHeader(http.StatusPartialContent)
		_, err = io.CopyN(c.Response(), f, length)
		return err

	default: // full body
		f, err := os.Open(path)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		defer f.Close()
		h.Set(echo.HeaderContentLength, strconv.FormatInt(size, 10))
		c.Response().WriteHeader(http.StatusOK)
		_, err = io.Copy(c.Response(), f)
		return err
	}
}

// safeName confines a requested filename to a bare name inside the root.
// Anything that could escape (separators, dot-dot, hidden names) is rejected
// before any filesystem access happens.
func safeName(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty name")
	}
	if strings.ContainsAny(raw, `/\`) || raw == "." || raw == ".." {
		return "", fmt.Errorf("path escape attempt: %q", raw)
	}
	if strings.HasPrefix(raw, ".") {
		return "", fmt.Errorf("hidden name: %q", raw)
	}
	if raw != filepath.Base(filepath.Clean(raw)) {
		return "", fmt.Errorf("path escape attempt: %q", raw)
	}
	return raw, nil
}

func contentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := contentTypeByExt[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

type rangeStatus int

const (
	rangeNone rangeStatus = iota
	rangePartial
	rangeUnsatisfiable
)

// parseRange interprets a Range header against a resource of the given size.
// Supported forms: "bytes=a-b", "bytes=a-", "bytes=-n" (final n bytes).
// Multi-range and malformed headers report rangeNone: the caller degrades to
// a full-body response instead of erroring.
func parseRange(header string, size int64) (start, end int64, status rangeStatus) {
	if header == "" {
		return 0, 0, rangeNone
	}
	spec, ok := strings.CutPrefix(strings.TrimSpace(header), "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return 0, 0, rangeNone
	}
	spec = strings.TrimSpace(spec)

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return 0, 0, rangeNone
	}

	if startStr == "" {
		// Suffix form: last n bytes.
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || n <= 0 {
			return 0, 0, rangeNone
		}
		if n > size {
			n = size
		}
		if size == 0 {
			return 0, 0, rangeUnsatisfiable
		}
		return size - n, size - 1, rangePartial
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return 0, 0, rangeNone
	}
	if start >= size {
		return 0, 0, rangeUnsatisfiable
	}

	if endStr == "" {
		return start, size - 1, rangePartial
	}
	end, err = strconv.ParseInt(endStr, 10, 64)
	if err != nil || end < start {
		return 0, 0, rangeNone
	}
	if end >= size {
		end = size - 1
	}
	return start, end, rangePartial
}
