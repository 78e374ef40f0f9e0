package works

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mjambon/martinj/internal/store"
)

// DataIntegrityError reports an inconsistency in the dataset itself:
// a duplicate title, an unsupported language tag, a malformed field.
// Always fatal; page generation never starts on a broken dataset.
type DataIntegrityError struct {
	Row string // artwork or series id, when known
	Msg string
}

func (e *DataIntegrityError) Error() string {
	if e.Row == "" {
		return e.Msg
	}
	return fmt.Sprintf("row %s: %s", e.Row, e.Msg)
}

const dateLayout = "2006-01-02"

// ParseArtworks turns raw table rows into validated records. validTags
// is the allow-list: tags outside it are silently dropped. Dataset
// order is preserved.
func ParseArtworks(rows []store.Row, validTags []string) ([]Artwork, error) {
	allowed := make(map[string]bool, len(validTags))
	for _, t := range validTags {
		allowed[t] = true
	}

	// Non-empty titles must be unique across the whole dataset, in
	// either language. Empty titles never collide.
	seenTitles := map[string]string{} // title -> id of first holder

	out := make([]Artwork, 0, len(rows))
	for _, row := range rows {
		a, err := parseArtwork(row, allowed)
		if err != nil {
			return nil, err
		}
		for _, title := range []string{a.TitleEN, a.TitleFR} {
			if title == "" {
				continue
			}
			if first, dup := seenTitles[title]; dup {
				return nil, &DataIntegrityError{
					Row: a.ID,
					Msg: fmt.Sprintf("title %q already used by %s", title, first),
				}
			}
			seenTitles[title] = a.ID
		}
		out = append(out, a)
	}
	return out, nil
}

func parseArtwork(row store.Row, allowed map[string]bool) (Artwork, error) {
	a := Artwork{
		ID:           row["id"],
		ImageID:      row["image_id"],
		TitleEN:      row["title_en"],
		TitleFR:      row["title_fr"],
		TitleLang:    row["title_lang"],
		Medium:       row["medium"],
		Guardianship: Guardianship(row["guardianship"]),
		Note:         row["note"],
		Series:       row["series"],
		Show:         parseBool(row["show"]),
		Credit:       row["credit"],
		LicenseName:  row["license_name"],
		LicenseURL:   row["license_url"],
	}

	if a.ID == "" {
		return a, &DataIntegrityError{Msg: "artwork row without an id"}
	}

	switch a.TitleLang {
	case "", "en", "fr":
	default:
		return a, &DataIntegrityError{Row: a.ID, Msg: fmt.Sprintf("unsupported title language %q", a.TitleLang)}
	}

	if d := row["date"]; d != "" {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return a, &DataIntegrityError{Row: a.ID, Msg: fmt.Sprintf("bad date %q", d)}
		}
		a.Date = t
		a.HasDate = true
	}

	size, err := parseDimensions(a.ID, row)
	if err != nil {
		return a, err
	}
	a.Size = size

	if p := row["price"]; p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return a, &DataIntegrityError{Row: a.ID, Msg: fmt.Sprintf("bad price %q", p)}
		}
		a.Price = &n
	}

	for _, t := range strings.Split(row["tags"], ",") {
		t = strings.TrimSpace(t)
		if allowed[t] {
			a.Tags = append(a.Tags, t)
		}
	}

	return a, nil
}

func parseDimensions(id string, row store.Row) (*Dimensions, error) {
	in, inErr := parsePair(row["width_in"], row["height_in"])
	cm, cmErr := parsePair(row["width_cm"], row["height_cm"])
	if inErr != nil || cmErr != nil {
		return nil, &DataIntegrityError{Row: id, Msg: "bad dimension value"}
	}
	switch {
	case in != nil && cm != nil:
		return nil, &DataIntegrityError{Row: id, Msg: "dimensions given in both inches and centimeters"}
	case in != nil:
		return &Dimensions{Width: in[0], Height: in[1], Unit: UnitIn}, nil
	case cm != nil:
		return &Dimensions{Width: cm[0], Height: cm[1], Unit: UnitCm}, nil
	default:
		return nil, nil
	}
}

// parsePair parses a width/height pair; both fields must be set or
// both empty.
func parsePair(w, h string) (*[2]float64, error) {
	if w == "" && h == "" {
		return nil, nil
	}
	if w == "" || h == "" {
		return nil, fmt.Errorf("half a dimension pair")
	}
	wf, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return nil, err
	}
	hf, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return nil, err
	}
	return &[2]float64{wf, hf}, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// ParseSeries turns raw series rows into records, table order kept.
func ParseSeries(rows []store.Row) ([]Series, error) {
	out := make([]Series, 0, len(rows))
	seen := map[string]bool{}
	for _, row := range rows {
		s := Series{
			ID:              row["id"],
			DescEN:          row["desc_en"],
			DescFR:          row["desc_fr"],
			ImageID:         row["image_id"],
			RingColor:       row["ring_color"],
			RingThickness:   row["ring_thickness"],
			DescriptionHTML: row["description_html"],
			DateRange:       row["date_range"],
		}
		if s.ID == "" {
			return nil, &DataIntegrityError{Msg: "series row without an id"}
		}
		if seen[s.ID] {
			return nil, &DataIntegrityError{Row: s.ID, Msg: "duplicate series id"}
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out, nil
}
