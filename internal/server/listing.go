package server

import (
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
)

// Artifact describes one published video in the listing.
type Artifact struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	Size      string    `json:"size"`
	Modified  time.Time `json:"modified"`
}

// handleListing enumerates published artifacts, newest first.
func (s *Server) handleListing(c echo.Context) error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "listing unavailable")
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Raced with an external delete; skip it.
			continue
		}
		artifacts = append(artifacts, Artifact{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			Size:      humanize.Bytes(uint64(info.Size())),
			Modified:  info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Modified.After(artifacts[j].Modified)
	})

	return c.JSON(http.StatusOK, artifacts)
}
