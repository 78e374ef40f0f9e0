package images

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeMagick records conversions and writes the destination file like
// the real tool would. identify queries report a fixed 800x1000 image.
func fakeMagick(calls *[][]string) Runner {
	return func(name string, args ...string) ([]byte, error) {
		if len(args) > 0 && args[0] == "identify" {
			return []byte("800 1000"), nil
		}
		*calls = append(*calls, args)
		dst := args[len(args)-1]
		return nil, os.WriteFile(dst, []byte("raster"), 0o644)
	}
}

func testPipeline(t *testing.T, force bool) (*Pipeline, *[][]string) {
	t.Helper()
	src := filepath.Join(t.TempDir(), "originals")
	out := filepath.Join(t.TempDir(), "site")
	require.NoError(t, os.MkdirAll(src, 0o755))
	for _, d := range VariantDirs() {
		require.NoError(t, os.MkdirAll(filepath.Join(out, "img", d), 0o755))
	}

	var calls [][]string
	p := NewPipeline(src, out, force, zap.NewNop())
	p.Run = fakeMagick(&calls)
	return p, &calls
}

func writeOriginal(t *testing.T, p *Pipeline, id string) {
	t.Helper()
	require.NoError(t, os.WriteFile(p.sourcePath(id), []byte("src"), 0o644))
}

func TestStale(t *testing.T) {
	p, _ := testPipeline(t, false)
	writeOriginal(t, p, "img1")
	src := p.sourcePath("img1")
	derived := filepath.Join(p.OutDir, "img", "large", "img1.jpg")

	// Missing derived file.
	stale, err := p.Stale(derived, src)
	require.NoError(t, err)
	assert.True(t, stale)

	// Fresh derived file.
	require.NoError(t, os.WriteFile(derived, []byte("x"), 0o644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(derived, future, future))
	stale, err = p.Stale(derived, src)
	require.NoError(t, err)
	assert.False(t, stale)

	// Derived older than source.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(derived, past, past))
	stale, err = p.Stale(derived, src)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestStaleMissingSource(t *testing.T) {
	p, _ := testPipeline(t, false)
	_, err := p.Stale("whatever", p.sourcePath("absent"))
	assert.Error(t, err)
}

func TestForceBypassesTimestamps(t *testing.T) {
	p, calls := testPipeline(t, true)
	writeOriginal(t, p, "img1")

	require.NoError(t, p.EnsureVariants("img1"))
	first := len(*calls)
	assert.Equal(t, len(VariantDirs()), first)

	// Everything is up to date now, but force keeps converting.
	require.NoError(t, p.EnsureVariants("img1"))
	assert.Equal(t, first*2, len(*calls))
}

func TestEnsureVariantsSkipsFreshFiles(t *testing.T) {
	p, calls := testPipeline(t, false)
	writeOriginal(t, p, "img1")

	require.NoError(t, p.EnsureVariants("img1"))
	assert.Equal(t, len(VariantDirs()), len(*calls))

	require.NoError(t, p.EnsureVariants("img1"))
	assert.Equal(t, len(VariantDirs()), len(*calls), "second pass must not convert")
}

func TestSize(t *testing.T) {
	p, _ := testPipeline(t, false)
	writeOriginal(t, p, "img1")

	w, h, err := p.Size("img1")
	require.NoError(t, err)
	assert.Equal(t, 800, w)
	assert.Equal(t, 1000, h)
}

func TestSizeUnparseableOutput(t *testing.T) {
	p, _ := testPipeline(t, false)
	p.Run = func(name string, args ...string) ([]byte, error) {
		return []byte("not a size"), nil
	}

	_, _, err := p.Size("img1")
	var te *ExternalToolError
	require.True(t, errors.As(err, &te))
}

func TestToolFailurePropagates(t *testing.T) {
	p, _ := testPipeline(t, false)
	writeOriginal(t, p, "img1")
	p.Run = func(name string, args ...string) ([]byte, error) {
		if len(args) > 0 && args[0] == "identify" {
			return []byte("800 1000"), nil
		}
		return nil, fmt.Errorf("exit status 1")
	}

	err := p.EnsureVariants("img1")
	var te *ExternalToolError
	require.True(t, errors.As(err, &te))
}

func TestEnsurePreview(t *testing.T) {
	p, calls := testPipeline(t, false)
	writeOriginal(t, p, "img1")
	writeOriginal(t, p, "img2")

	require.NoError(t, p.EnsurePreview([]string{"img1", "img2"}))
	require.Len(t, *calls, 1)

	// Fresh preview is left alone.
	require.NoError(t, p.EnsurePreview([]string{"img1", "img2"}))
	assert.Len(t, *calls, 1)
}

func TestEnsurePreviewEmptySet(t *testing.T) {
	p, calls := testPipeline(t, false)
	require.NoError(t, p.EnsurePreview(nil))
	assert.Empty(t, *calls)
}
