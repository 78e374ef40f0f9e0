package works

// OtherSeries is the synthetic bucket for artworks with no series id.
const OtherSeries = "other"

type Series struct {
	ID      string
	DescEN  string
	DescFR  string
	ImageID string

	// Decorative ring drawn around the archive entry for this series.
	RingColor     string
	RingThickness string

	// Hand-authored, trusted HTML inserted verbatim.
	DescriptionHTML string

	DateRange string
}

// Desc returns the short description, preferring English.
func (s *Series) Desc() string {
	if s.DescEN != "" {
		return s.DescEN
	}
	return s.DescFR
}
