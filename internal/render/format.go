package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mjambon/martinj/internal/domain/works"
)

// Formatters derive display strings from artwork records. Each returns
// (value, ok); ok=false is the explicit "absent" marker so callers can
// tell "no data" from "empty data". None of them ever return ("", true)
// for a missing field.

const untitled = "Untitled"

const cmPerInch = 2.54

// DisplayTitle picks the canonical title. The language tag was
// validated at load time, so only "", "en" and "fr" reach this point.
// Only the first character is capitalized; word-by-word title-casing
// is wrong in both languages.
func DisplayTitle(a *works.Artwork) string {
	var t string
	switch a.TitleLang {
	case "fr":
		t = a.TitleFR
	case "en":
		t = a.TitleEN
	default:
		if a.TitleEN != "" {
			t = a.TitleEN
		} else {
			t = a.TitleFR
		}
	}
	if t == "" {
		return untitled
	}
	return capitalizeFirst(t)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// FormatDimensions renders both unit systems from whichever one the
// row carries, converting by the exact factor 2.54 and rounding to
// precision decimals.
func FormatDimensions(a *works.Artwork, precision int) (string, bool) {
	if a.Size == nil {
		return "", false
	}
	var inW, inH, cmW, cmH float64
	switch a.Size.Unit {
	case works.UnitIn:
		inW, inH = a.Size.Width, a.Size.Height
		cmW, cmH = inW*cmPerInch, inH*cmPerInch
	case works.UnitCm:
		cmW, cmH = a.Size.Width, a.Size.Height
		inW, inH = cmW/cmPerInch, cmH/cmPerInch
	}
	return fmt.Sprintf("%s × %s in (%s × %s cm)",
		fmtNum(inW, precision), fmtNum(inH, precision),
		fmtNum(cmW, precision), fmtNum(cmH, precision)), true
}

// fmtNum rounds to precision decimals and drops trailing zeros.
func fmtNum(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// Location maps guardianship to its public label. Family, recycled and
// unset pieces get no location line.
func Location(a *works.Artwork) (string, bool) {
	switch a.Guardianship {
	case works.GuardPrivate:
		return "Private collection", true
	case works.GuardEphemeral:
		return "Ephemeral", true
	}
	return "", false
}

// FormatDate renders the creation date as "January 2006".
func FormatDate(a *works.Artwork) (string, bool) {
	if !a.HasDate {
		return "", false
	}
	return a.Date.Format("January 2006"), true
}

// FormatPrice renders the currency-agnostic asking price.
func FormatPrice(a *works.Artwork) (string, bool) {
	if a.Price == nil {
		return "", false
	}
	return strconv.Itoa(*a.Price), true
}

// Medium returns the medium/support text.
func Medium(a *works.Artwork) (string, bool) {
	if a.Medium == "" {
		return "", false
	}
	return a.Medium, true
}

// Note returns the artist's free-text note.
func Note(a *works.Artwork) (string, bool) {
	if a.Note == "" {
		return "", false
	}
	return a.Note, true
}

// CreditInfo is the extra-credit block; the template escapes all three
// fields and links the license name to its URL.
type CreditInfo struct {
	Text        string
	LicenseName string
	LicenseURL  string
}

// CreditBlock returns the credit block when complete, absent
// otherwise. Partial blocks (text without a license pair) are treated
// as absent rather than rendered half-filled.
func CreditBlock(a *works.Artwork) (CreditInfo, bool) {
	if !a.HasCredit() {
		return CreditInfo{}, false
	}
	return CreditInfo{
		Text:        a.Credit,
		LicenseName: a.LicenseName,
		LicenseURL:  a.LicenseURL,
	}, true
}
