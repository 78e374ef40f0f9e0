// Package render composes formatted fields and derived images into the
// static HTML tree. One assembler per page kind; all share the layout
// skeleton embedded in templates/.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mjambon/martinj/config"
	"github.com/mjambon/martinj/internal/domain/works"
	"github.com/mjambon/martinj/internal/images"
	"github.com/mjambon/martinj/internal/store"
)

//go:embed templates/*.tmpl
var tplFS embed.FS

// FeaturedTag is the one tag whose page order comes from the
// hand-maintained list instead of dataset order.
const FeaturedTag = "featured"

type Site struct {
	Cfg      *config.Config
	Log      *zap.Logger
	Pipe     *images.Pipeline
	Artworks []works.Artwork
	Series   []works.Series

	tpl   *template.Template
	shown []*works.Artwork

	// Artwork ids whose standalone page and image variants have been
	// emitted already; the first listing an artwork appears in does
	// that work, later listings reuse it.
	emitted map[string]bool

	// Image ids already pushed through the pipeline this run, so a
	// forced rebuild still converts each image once.
	imgDone map[string]bool
}

func NewSite(cfg *config.Config, log *zap.Logger, pipe *images.Pipeline,
	artworks []works.Artwork, series []works.Series) (*Site, error) {

	tpl, err := template.ParseFS(tplFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Site{
		Cfg:      cfg,
		Log:      log,
		Pipe:     pipe,
		Artworks: artworks,
		Series:   series,
		tpl:      tpl,
		emitted:  map[string]bool{},
		imgDone:  map[string]bool{},
	}, nil
}

// Build writes the whole output tree. Any error aborts immediately;
// files already written stay on disk.
func (s *Site) Build() error {
	if err := s.makeDirs(); err != nil {
		return err
	}

	s.shown = works.Shown(s.Artworks)
	bySeries := works.GroupBySeries(s.shown)
	byTag := works.GroupByTag(s.shown)
	featured := works.OrderByList(byTag[FeaturedTag], s.Cfg.FeaturedOrder)

	for i := range s.Series {
		ser := &s.Series[i]
		desc := template.HTML(ser.DescriptionHTML) // trusted, hand-authored
		if err := s.renderListing("series/"+ser.ID, seriesLabel(ser), desc,
			bySeries[ser.ID], false); err != nil {
			return err
		}
	}
	if items := bySeries[works.OtherSeries]; len(items) > 0 && !s.hasSeries(works.OtherSeries) {
		if err := s.renderListing("series/other", "Other", "", items, false); err != nil {
			return err
		}
	}

	for _, tag := range s.Cfg.ValidTags {
		items := byTag[tag]
		if tag == FeaturedTag {
			items = featured
		}
		if len(items) == 0 {
			continue
		}
		if err := s.renderListing("tag/"+tag, capitalizeFirst(tag), "", items, false); err != nil {
			return err
		}
	}

	if err := s.renderListing("all", "All works", "", s.shown, false); err != nil {
		return err
	}
	if err := s.renderListing("catalog", "Catalog", "", s.shown, true); err != nil {
		return err
	}

	if err := s.renderArchive(featured); err != nil {
		return err
	}
	if err := s.renderStaticPages(); err != nil {
		return err
	}

	var frames []string
	for _, a := range featured {
		frames = append(frames, a.ImageID)
	}
	return s.Pipe.EnsurePreview(frames)
}

func (s *Site) ensureImage(imageID string) error {
	if s.imgDone[imageID] {
		return nil
	}
	s.imgDone[imageID] = true
	return s.Pipe.EnsureVariants(imageID)
}

// seriesLabel is the short description when one exists, else the
// capitalized series id.
func seriesLabel(ser *works.Series) string {
	if d := ser.Desc(); d != "" {
		return d
	}
	return capitalizeFirst(ser.ID)
}

func (s *Site) hasSeries(id string) bool {
	for i := range s.Series {
		if s.Series[i].ID == id {
			return true
		}
	}
	return false
}

func (s *Site) makeDirs() error {
	dirs := []string{s.Cfg.OutDir}
	for _, d := range images.VariantDirs() {
		dirs = append(dirs, filepath.Join(s.Cfg.OutDir, "img", d))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

type listingData struct {
	Chrome
	Desc     template.HTML
	Figures  []figureView
	Detailed bool
}

func (s *Site) renderListing(relDir, title string, desc template.HTML,
	items []*works.Artwork, detailed bool) error {

	figures := make([]figureView, 0, len(items))
	for _, a := range items {
		if err := s.ensureArtwork(a, relDir); err != nil {
			return err
		}
		fv, err := s.figureView(a)
		if err != nil {
			return err
		}
		figures = append(figures, fv)
	}

	rel := relDir + "/index.html"
	return s.writePage(rel, "listing", listingData{
		Chrome:   s.chrome(rel, title),
		Desc:     desc,
		Figures:  figures,
		Detailed: detailed,
	})
}

type artData struct {
	Chrome
	Figure   figureView
	BackHref string
}

// ensureArtwork emits the image variants and the standalone page for
// one artwork, once per run. The standalone page links back to the
// listing that first pulled it in, anchored by image id.
func (s *Site) ensureArtwork(a *works.Artwork, originDir string) error {
	if s.emitted[a.ID] {
		return nil
	}
	s.emitted[a.ID] = true

	if err := s.ensureImage(a.ImageID); err != nil {
		return err
	}

	fv, err := s.figureView(a)
	if err != nil {
		return err
	}
	rel := "art/" + a.ID + "/index.html"
	return s.writePage(rel, "art", artData{
		Chrome:   s.chrome(rel, fv.Title),
		Figure:   fv,
		BackHref: originDir + "/index.html#" + a.ImageID,
	})
}

type archiveData struct {
	Chrome
	Entries []archiveEntry
}

func (s *Site) renderArchive(featured []*works.Artwork) error {
	var entries []archiveEntry

	if len(s.shown) > 0 {
		latest := s.shown[len(s.shown)-1]
		entries = append(entries, archiveEntry{
			Href:  "art/" + latest.ID + "/index.html",
			Img:   "img/square/" + latest.ImageID + ".jpg",
			Label: "Latest",
		})
	}
	if len(featured) > 0 {
		entries = append(entries, archiveEntry{
			Href:  "tag/" + FeaturedTag + "/index.html",
			Img:   "img/featured.gif",
			Label: "Featured",
		})
	}
	for i := range s.Series {
		ser := &s.Series[i]
		if err := s.ensureImage(ser.ImageID); err != nil {
			return err
		}
		entries = append(entries, archiveEntry{
			Href:          "series/" + ser.ID + "/index.html",
			Img:           "img/square/" + ser.ImageID + ".jpg",
			Label:         seriesLabel(ser),
			DateRange:     ser.DateRange,
			RingColor:     ser.RingColor,
			RingThickness: ser.RingThickness,
		})
	}

	return s.writePage("index.html", "archive", archiveData{
		Chrome:  s.chrome("index.html", "Archive"),
		Entries: entries,
	})
}

type staticData struct {
	Chrome
	Body template.HTML
}

func (s *Site) renderStaticPages() error {
	for _, p := range s.Cfg.Pages {
		path := filepath.Join(s.Cfg.FragmentsDir, p.File)
		buf, err := os.ReadFile(path)
		if err != nil {
			return &store.LoadError{Path: path, Err: err}
		}
		rel := p.Slug + "/index.html"
		err = s.writePage(rel, "static", staticData{
			Chrome: s.chrome(rel, p.Title),
			Body:   template.HTML(buf), // trusted, hand-authored
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) chrome(relPath, title string) Chrome {
	return Chrome{
		Root:      rootPrefix(relPath),
		SiteTitle: s.Cfg.SiteTitle,
		Author:    s.Cfg.Author,
		PageTitle: title,
	}
}

// rootPrefix is the relative path from a page back to the site root,
// derived from the page's depth in the output tree.
func rootPrefix(relPath string) string {
	depth := strings.Count(relPath, "/")
	if depth == 0 {
		return "."
	}
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}

func (s *Site) writePage(relPath, tmplName string, data any) error {
	out := filepath.Join(s.Cfg.OutDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := s.tpl.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return err
	}
	s.Log.Debug("writing page", zap.String("path", relPath))
	return os.WriteFile(out, buf.Bytes(), 0o644)
}
