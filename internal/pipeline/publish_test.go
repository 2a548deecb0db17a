package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testMinute = time.Date(2026, 8, 30, 21, 7, 42, 0, time.UTC)

func TestArtifactName_Deterministic(t *testing.T) {
	name := artifactName("Cool Video: The Sequel", testMinute, 0)
	require.Equal(t, "Cool-Video-The-Sequel-08-30-26_21-07-x220.mp4", name)
}

func TestArtifactName_EmptyTitleFallsBack(t *testing.T) {
	require.Equal(t, "video-08-30-26_21-07-x220.mp4", artifactName("???", testMinute, 0))
}

func TestArtifactName_Disambiguator(t *testing.T) {
	require.Equal(t, "clip-08-30-26_21-07-x220-2.mp4", artifactName("clip", testMinute, 1))
	require.Equal(t, "clip-08-30-26_21-07-x220-3.mp4", artifactName("clip", testMinute, 2))
}

func TestPublish_RenamesIntoOutputDir(t *testing.T) {
	outDir := t.TempDir()
	work := t.TempDir()
	src := filepath.Join(work, "encoded.mp4")
	require.NoError(t, os.WriteFile(src, []byte("encoded bytes"), 0o644))

	dst, err := publish(outDir, "My Clip", testMinute, src)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outDir, "My-Clip-08-30-26_21-07-x220.mp4"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, []byte("encoded bytes"), data)

	_, err = os.Stat(src)
	require.True(t, os.IsNotExist(err))
}

func TestPublish_SameTitleSameMinuteGetDistinctNames(t *testing.T) {
	outDir := t.TempDir()
	work := t.TempDir()

	var published []string
	for i := 0; i < 3; i++ {
		src := filepath.Join(work, "encoded.mp4")
		require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
		dst, err := publish(outDir, "Same Title", testMinute, src)
		require.NoError(t, err)
		published = append(published, filepath.Base(dst))
	}

	require.Equal(t, []string{
		"Same-Title-08-30-26_21-07-x220.mp4",
		"Same-Title-08-30-26_21-07-x220-2.mp4",
		"Same-Title-08-30-26_21-07-x220-3.mp4",
	}, published)
}

func TestPublish_MissingOutputDirFails(t *testing.T) {
	work := t.TempDir()
	src := filepath.Join(work, "encoded.mp4")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	_, err := publish(filepath.Join(work, "does-not-exist"), "clip", testMinute, src)
	require.Error(t, err)
}
