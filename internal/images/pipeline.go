// Package images derives the resized variants of each artwork image.
// Codec work is delegated to ImageMagick; this package only decides
// what is stale and shells out with fixed parameters per size class.
package images

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ExternalToolError reports a failed or unparseable ImageMagick
// invocation. Always fatal; already-written files are left as-is.
type ExternalToolError struct {
	Cmd string
	Err error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// Runner executes an external command and returns its stdout. Tests
// substitute their own.
type Runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// A variant is a derived raster size class with fixed conversion
// parameters.
type variant struct {
	dir  string
	args func(src, dst string) []string
}

var variants = []variant{
	{"large", func(src, dst string) []string {
		return []string{src, "-resize", "1600x1600>", "-quality", "85", dst}
	}},
	{"medium", func(src, dst string) []string {
		return []string{src, "-resize", "800x800>", "-quality", "85", dst}
	}},
	{"small", func(src, dst string) []string {
		return []string{src, "-resize", "400x400>", "-quality", "80", dst}
	}},
	{"square", func(src, dst string) []string {
		return []string{src, "-resize", "300x300^", "-gravity", "center",
			"-extent", "300x300", "-background", "white", "-quality", "80", dst}
	}},
}

// VariantDirs lists the derived image directories under img/, in the
// order they are created.
func VariantDirs() []string {
	dirs := make([]string, 0, len(variants))
	for _, v := range variants {
		dirs = append(dirs, v.dir)
	}
	return dirs
}

type Pipeline struct {
	SrcDir string // original full-size images, <image id>.jpg
	OutDir string // site root; variants land under img/
	Force  bool   // regenerate regardless of timestamps

	Run Runner
	Log *zap.Logger

	sizes map[string][2]int // identify cache, per image id
}

func NewPipeline(srcDir, outDir string, force bool, log *zap.Logger) *Pipeline {
	return &Pipeline{
		SrcDir: srcDir,
		OutDir: outDir,
		Force:  force,
		Run:    execRunner,
		Log:    log,
		sizes:  map[string][2]int{},
	}
}

func (p *Pipeline) sourcePath(imageID string) string {
	return filepath.Join(p.SrcDir, imageID+".jpg")
}

// Stale reports whether derived must be regenerated from src: it is
// missing, older than src, or a force rebuild was requested. A missing
// source is an error.
func (p *Pipeline) Stale(derived, src string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("source image: %w", err)
	}
	if p.Force {
		return true, nil
	}
	dstInfo, err := os.Stat(derived)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return dstInfo.ModTime().Before(srcInfo.ModTime()), nil
}

// EnsureVariants brings every size class of one image up to date.
func (p *Pipeline) EnsureVariants(imageID string) error {
	src := p.sourcePath(imageID)
	for _, v := range variants {
		dst := filepath.Join(p.OutDir, "img", v.dir, imageID+".jpg")
		stale, err := p.Stale(dst, src)
		if err != nil {
			return err
		}
		if !stale {
			continue
		}
		p.Log.Info("converting image", zap.String("image", imageID), zap.String("variant", v.dir))
		if _, err := p.Run("magick", v.args(src, dst)...); err != nil {
			return &ExternalToolError{Cmd: "magick " + v.dir + " " + imageID, Err: err}
		}
	}
	return nil
}

// Size returns the pixel width and height of the original image,
// querying ImageMagick once per image id per run.
func (p *Pipeline) Size(imageID string) (w, h int, err error) {
	if s, ok := p.sizes[imageID]; ok {
		return s[0], s[1], nil
	}
	src := p.sourcePath(imageID)
	out, err := p.Run("magick", "identify", "-format", "%w %h", src)
	if err != nil {
		return 0, 0, &ExternalToolError{Cmd: "magick identify " + imageID, Err: err}
	}
	fields := strings.Fields(string(out))
	if len(fields) != 2 {
		return 0, 0, &ExternalToolError{Cmd: "magick identify " + imageID,
			Err: fmt.Errorf("unexpected output %q", string(out))}
	}
	w, werr := strconv.Atoi(fields[0])
	h, herr := strconv.Atoi(fields[1])
	if werr != nil || herr != nil {
		return 0, 0, &ExternalToolError{Cmd: "magick identify " + imageID,
			Err: fmt.Errorf("unexpected output %q", string(out))}
	}
	p.sizes[imageID] = [2]int{w, h}
	return w, h, nil
}

// EnsurePreview composites the animated preview cycling through the
// given images. Stale when missing or older than any of its frames.
func (p *Pipeline) EnsurePreview(imageIDs []string) error {
	if len(imageIDs) == 0 {
		return nil
	}
	dst := filepath.Join(p.OutDir, "img", "featured.gif")
	stale := p.Force
	if !stale {
		for _, id := range imageIDs {
			s, err := p.Stale(dst, p.sourcePath(id))
			if err != nil {
				return err
			}
			if s {
				stale = true
				break
			}
		}
	}
	if !stale {
		return nil
	}

	args := []string{"-delay", "150", "-loop", "0"}
	for _, id := range imageIDs {
		args = append(args, p.sourcePath(id))
	}
	args = append(args, "-resize", "400x400^", "-gravity", "center",
		"-extent", "400x400", dst)
	p.Log.Info("building animated preview", zap.Int("frames", len(imageIDs)))
	if _, err := p.Run("magick", args...); err != nil {
		return &ExternalToolError{Cmd: "magick preview", Err: err}
	}
	return nil
}
