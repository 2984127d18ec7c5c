// Package resolve turns loosely structured NetCDF content into clean
// scalar values. Argo files scatter the same logical field across a
// variable, an upper-case global attribute, and a lower-case global
// attribute depending on the producing data centre; the resolution chain
// here makes that variance invisible to the assembler.
//
// Resolution never fails: a value that is missing or malformed degrades
// to the caller's default (or absence) so one bad field cannot sink a
// file.
package resolve

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Source is the dataset surface resolution reads from. *ncdf.Dataset and
// *ncdf.Memory both satisfy it.
type Source interface {
	HasVar(name string) bool
	AttrText(name string) (string, bool)
	AttrFloat(name string) (float64, bool)
	VarText(name string, idx ...int) (string, bool)
	VarFloat(name string, idx ...int) (float64, bool)
	VarInt(name string, idx ...int) (int64, bool)
	VarLen(name string) int
	DimLen(name string) int
}

// Text resolves a text field through the standard chain: variable, then
// the upper-case attribute, then the lower-case attribute, then def.
// The first candidate producing non-empty text wins; later candidates
// are not consulted even if richer.
func Text(src Source, name string, def string, idx ...int) string {
	if s, ok := src.VarText(name, idx...); ok {
		return s
	}
	if s, ok := src.AttrText(name); ok {
		return s
	}
	if s, ok := src.AttrText(strings.ToLower(name)); ok {
		return s
	}
	return def
}

// AttrChain resolves through attributes only (upper then lower case).
// Meta blocks assembled from profile files use this because their
// payload lives in global attributes, not variables.
func AttrChain(src Source, name string, def string) string {
	if s, ok := src.AttrText(name); ok {
		return s
	}
	if s, ok := src.AttrText(strings.ToLower(name)); ok {
		return s
	}
	return def
}

// AttrChainFloat resolves a numeric attribute pair, tolerating text
// attributes that hold a parseable number.
func AttrChainFloat(src Source, name string) *float64 {
	if f, ok := src.AttrFloat(name); ok {
		return &f
	}
	if f, ok := src.AttrFloat(strings.ToLower(name)); ok {
		return &f
	}
	if s := AttrChain(src, name, ""); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}

// Float resolves a numeric variable element. Fill values, NaN, and Inf
// read as absent.
func Float(src Source, name string, idx ...int) *float64 {
	if f, ok := src.VarFloat(name, idx...); ok {
		return &f
	}
	return nil
}

// Int resolves a numeric variable element truncated toward zero.
func Int(src Source, name string, idx ...int) *int64 {
	if v, ok := src.VarInt(name, idx...); ok {
		return &v
	}
	return nil
}

// IntFromText parses an integer out of resolved text, for numeric fields
// that some files encode as character data.
func IntFromText(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int64(f)
	return &v
}

// QC resolves a quality-control flag to exactly one character. The first
// character must be 0-9 or A-F (either case); anything else, including
// absence, yields def. Callers pass "0" for data flags and "9" for
// status flags.
func QC(src Source, name string, def string, idx ...int) string {
	s, ok := src.VarText(name, idx...)
	if !ok {
		return def
	}
	return QCChar(s, def)
}

// QCChar applies the one-character QC rule to already-decoded text.
func QCChar(s string, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	c := s[0]
	switch {
	case c >= '0' && c <= '9':
		return string(c)
	case c >= 'A' && c <= 'F':
		return string(c)
	case c >= 'a' && c <= 'f':
		return string(c)
	}
	return def
}

// Truncate clips s to max bytes. Column widths in the destination schema
// are hard limits; values are clipped, never rejected.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// TruncateEllipsis clips s to max bytes, marking the cut with "..." so a
// clipped project name stays recognizable.
func TruncateEllipsis(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// ArgoDate parses the positional YYYYMMDDHHMMSS administrative date
// format. Only the first 14 characters are considered; shorter input is
// rejected rather than zero-padded.
func ArgoDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if len(s) < 14 {
		return nil
	}
	t, err := time.ParseInLocation("20060102150405", s[:14], time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

var juldEpoch = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)

// JulianDay converts days-since-1950-01-01 to a timestamp. Values
// outside [10000, 50000] are rejected: small integers in JULD slots are
// status codes, and large ones are fill sentinels, neither of which may
// ever be converted into a plausible-looking date.
func JulianDay(days float64) *time.Time {
	if days < 10000 || days > 50000 {
		return nil
	}
	t := juldEpoch.Add(time.Duration(days * float64(24*time.Hour)))
	return &t
}

// JulianText applies the Julian-day rule to decoded text. Digit strings
// of one or two characters are status codes, not day counts, and are
// rejected before any numeric parse.
func JulianText(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "nan", "nat", "none":
		return nil
	}
	if len(s) <= 2 && isDigits(s) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return JulianDay(f)
}

// JulianVar resolves a JULD-family variable element, trying the numeric
// representation first and falling back to character data.
func JulianVar(src Source, name string, idx ...int) *time.Time {
	if f, ok := src.VarFloat(name, idx...); ok {
		return JulianDay(f)
	}
	if s, ok := src.VarText(name, idx...); ok {
		return JulianText(s)
	}
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

var batteryCountRe = regexp.MustCompile(`-\s*(\d+)`)
var anyNumberRe = regexp.MustCompile(`\d+`)

// BatteryPacks extracts a pack count from free-text battery descriptions
// like "board - 1 (s/n: 41);". The count after a dash wins; otherwise
// the first number anywhere in the text is used.
func BatteryPacks(text string) *int64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if m := batteryCountRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			return &v
		}
	}
	if m := anyNumberRe.FindString(text); m != "" {
		if v, err := strconv.ParseInt(m, 10, 64); err == nil {
			return &v
		}
	}
	return nil
}
