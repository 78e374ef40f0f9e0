package render

import (
	"github.com/mjambon/martinj/internal/domain/works"
	"github.com/mjambon/martinj/internal/images"
)

// Chrome is the layout skeleton data shared by every page kind.
// Exported so the template engine can reach its fields through the
// embedding page data structs.
type Chrome struct {
	Root      string // relative path back to the site root
	SiteTitle string
	Author    string
	PageTitle string
}

// figureView is one artwork prepared for a figure block. Absent fields
// are empty strings here; the formatters have already made the
// absent/empty distinction and the templates simply skip empties.
type figureView struct {
	ID      string
	ImageID string
	Title   string
	Margin  string // side margin percentage

	Date     string
	Medium   string
	Dims     string
	Location string
	Price    string
	Note     string
	Credit   *CreditInfo
}

type archiveEntry struct {
	Href          string
	Img           string
	Label         string
	DateRange     string
	RingColor     string
	RingThickness string
}

func (s *Site) figureView(a *works.Artwork) (figureView, error) {
	w, h, err := s.Pipe.Size(a.ImageID)
	if err != nil {
		return figureView{}, err
	}
	aspect := float64(w) / float64(h)

	fv := figureView{
		ID:      a.ID,
		ImageID: a.ImageID,
		Title:   DisplayTitle(a),
		Margin:  fmtNum(images.SideMargin(aspect, s.Cfg.MaxAspect), 2),
	}
	if v, ok := FormatDate(a); ok {
		fv.Date = v
	}
	if v, ok := Medium(a); ok {
		fv.Medium = v
	}
	if v, ok := FormatDimensions(a, s.Cfg.DimPrecision); ok {
		fv.Dims = v
	}
	if v, ok := Location(a); ok {
		fv.Location = v
	}
	if v, ok := FormatPrice(a); ok {
		fv.Price = v
	}
	if v, ok := Note(a); ok {
		fv.Note = v
	}
	if c, ok := CreditBlock(a); ok {
		fv.Credit = &c
	}
	return fv, nil
}
