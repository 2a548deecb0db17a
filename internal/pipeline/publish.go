package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"videobot/pkg/utils/filename"
)

// publishSuffix marks every file this system produced.
const publishSuffix = "x220"

// artifactName derives the deterministic published filename:
// sanitized title, submission timestamp at minute precision, fixed suffix.
// seq > 0 appends a numeric disambiguator for same-minute title collisions.
func artifactName(title string, submittedAt time.Time, seq int) string {
	base := filename.Sanitize(title, 50)
	if base == "" {
		base = "video"
	}
	ts := submittedAt.Format("01-02-06_15-04")
	if seq > 0 {
		return fmt.Sprintf("%s-%s-%s-%d.mp4", base, ts, publishSuffix, seq+1)
	}
	return fmt.Sprintf("%s-%s-%s.mp4", base, ts, publishSuffix)
}

// publish moves the encoded file into outputDir under its deterministic name
// with a single rename, so readers never observe a partial artifact. Name
// collisions get a numeric disambiguator.
func publish(outputDir, title string, submittedAt time.Time, src string) (string, error) {
	for seq := 0; ; seq++ {
		dst := filepath.Join(outputDir, artifactName(title, submittedAt, seq))

		if _, err := os.Lstat(dst); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", dst, err)
		}

		if err := os.Rename(src, dst); err != nil {
			return "", fmt.Errorf("publish %s: %w", dst, err)
		}
		return dst, nil
	}
}
