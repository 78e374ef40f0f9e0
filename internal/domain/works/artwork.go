package works

import "time"

// Guardianship describes who (or what) holds a piece now.
type Guardianship string

const (
	GuardPrivate   Guardianship = "private"
	GuardFamily    Guardianship = "family"
	GuardEphemeral Guardianship = "ephemeral"
	GuardRecycled  Guardianship = "recycled"
	GuardOther     Guardianship = ""
)

// Unit of physical dimensions as recorded in the table. Exactly one
// unit system is populated per row; the other is derived for display.
type Unit string

const (
	UnitIn Unit = "in"
	UnitCm Unit = "cm"
)

type Dimensions struct {
	Width  float64
	Height float64
	Unit   Unit
}

type Artwork struct {
	ID      string
	ImageID string

	TitleEN   string
	TitleFR   string
	TitleLang string // "", "en" or "fr"

	Date    time.Time
	HasDate bool

	Medium string
	Size   *Dimensions

	Guardianship Guardianship

	Note  string
	Price *int

	Tags   []string
	Series string // "" means the synthetic "other" bucket

	Show bool

	// The three credit fields travel together; when Credit is empty
	// the whole block is omitted from output.
	Credit      string
	LicenseName string
	LicenseURL  string
}

// HasCredit reports whether the artwork carries a complete credit
// block (text plus license name and URL).
func (a *Artwork) HasCredit() bool {
	return a.Credit != "" && a.LicenseName != "" && a.LicenseURL != ""
}
