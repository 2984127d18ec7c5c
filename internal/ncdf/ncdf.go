// Package ncdf is a read-only projection over an opened NetCDF file.
//
// It narrows the upstream reader to the three lookups the ingestion
// pipeline needs: global attributes as text, variable elements by index,
// and dimension lengths. Character data is surfaced as Go strings (the
// trailing string-length dimension is already collapsed by the reader).
// Numeric elements equal to the variable's _FillValue, NaN, or Inf are
// reported as absent.
package ncdf

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"golang.org/x/text/encoding/charmap"
)

// Dataset wraps one open NetCDF group. Not safe for concurrent use; the
// pipeline processes one file at a time.
type Dataset struct {
	group api.Group
	vars  map[string]*Var
	names map[string]bool
}

// Open opens path and indexes its variable names. Variable payloads are
// loaded lazily on first access.
func Open(path string) (*Dataset, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open netcdf %s: %w", path, err)
	}
	d := &Dataset{
		group: g,
		vars:  make(map[string]*Var),
		names: make(map[string]bool),
	}
	for _, n := range g.ListVariables() {
		d.names[n] = true
	}
	return d, nil
}

// Close releases the underlying file handle.
func (d *Dataset) Close() error {
	if d.group != nil {
		d.group.Close()
		d.group = nil
	}
	return nil
}

// HasVar reports whether the file defines a variable with this name.
func (d *Dataset) HasVar(name string) bool {
	return d.names[name]
}

// AttrText returns a global attribute decoded to text. Missing or empty
// attributes report ok=false.
func (d *Dataset) AttrText(name string) (string, bool) {
	if d.group == nil {
		return "", false
	}
	v, has := d.group.Attributes().Get(name)
	if !has {
		return "", false
	}
	s := decodeScalar(v)
	if s == "" {
		return "", false
	}
	return s, true
}

// AttrFloat returns a global attribute as a float when it carries a
// numeric value.
func (d *Dataset) AttrFloat(name string) (float64, bool) {
	if d.group == nil {
		return 0, false
	}
	v, has := d.group.Attributes().Get(name)
	if !has {
		return 0, false
	}
	return numericScalar(v)
}

// Var returns the named variable, loading it on first use. Returns nil
// when the variable does not exist or cannot be read.
func (d *Dataset) Var(name string) *Var {
	if v, ok := d.vars[name]; ok {
		return v
	}
	if d.group == nil || !d.names[name] {
		d.vars[name] = nil
		return nil
	}
	raw, err := d.group.GetVariable(name)
	if err != nil || raw == nil {
		d.vars[name] = nil
		return nil
	}
	v := &Var{name: name, values: raw.Values}
	if raw.Attributes != nil {
		if fv, has := raw.Attributes.Get("_FillValue"); has {
			if f, ok := numericScalar(fv); ok {
				v.fill = &f
			}
		}
	}
	d.vars[name] = v
	return v
}

// VarText returns one element of a character variable. The index list
// addresses the leading dimensions; scalars take no index.
func (d *Dataset) VarText(name string, idx ...int) (string, bool) {
	v := d.Var(name)
	if v == nil {
		return "", false
	}
	return v.Text(idx...)
}

// VarFloat returns one numeric element, rejecting fill values.
func (d *Dataset) VarFloat(name string, idx ...int) (float64, bool) {
	v := d.Var(name)
	if v == nil {
		return 0, false
	}
	return v.Float(idx...)
}

// VarInt returns one numeric element truncated to an integer.
func (d *Dataset) VarInt(name string, idx ...int) (int64, bool) {
	f, ok := d.VarFloat(name, idx...)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// VarLen returns the outer length of a variable, or 0 for scalars and
// missing variables.
func (d *Dataset) VarLen(name string) int {
	v := d.Var(name)
	if v == nil {
		return 0
	}
	return v.Len()
}

// DimLen infers a dimension length from the first variable that names
// the dimension at any position. Argo files never carry some dimensions
// first: per-level variables are (N_PROF, N_LEVELS), so N_LEVELS only
// ever appears second. Returns 0 when no variable uses the dimension.
func (d *Dataset) DimLen(name string) int {
	if d.group == nil {
		return 0
	}
	for _, vn := range d.group.ListVariables() {
		raw, err := d.group.GetVariable(vn)
		if err != nil || raw == nil {
			continue
		}
		if n, ok := dimLenIn(raw.Dimensions, raw.Values, name); ok {
			return n
		}
	}
	return 0
}

// dimLenIn reports the length of the named dimension within one
// variable's (dimensions, values) pair. The dimension's position in the
// dimension list is the nesting depth to measure at.
func dimLenIn(dims []string, values any, name string) (int, bool) {
	for depth, dim := range dims {
		if dim != name {
			continue
		}
		if n, ok := lenAtDepth(values, depth); ok {
			return n, true
		}
	}
	return 0, false
}

// lenAtDepth descends depth nested-slice levels and returns the length
// there. Char variables collapse the trailing string-length dimension
// into Go strings, so a named dimension deeper than the value's slice
// nesting has no countable length.
func lenAtDepth(values any, depth int) (int, bool) {
	rv := reflect.ValueOf(values)
	for i := 0; i < depth; i++ {
		if rv.Kind() != reflect.Slice || rv.Len() == 0 {
			return 0, false
		}
		rv = rv.Index(0)
		for rv.Kind() == reflect.Interface {
			rv = rv.Elem()
		}
	}
	if rv.Kind() != reflect.Slice {
		return 0, false
	}
	return rv.Len(), true
}

// Var is one loaded variable. Values keep the upstream representation:
// nested slices for multi-dimensional data, strings for character data
// with the trailing dimension collapsed.
type Var struct {
	name   string
	values any
	fill   *float64
}

// Len returns the outer length, or 0 for scalar variables.
func (v *Var) Len() int {
	rv := reflect.ValueOf(v.values)
	if rv.Kind() == reflect.Slice {
		return rv.Len()
	}
	return 0
}

// Text returns the element at idx decoded to clean text. Empty and
// "nan"/"nat" payloads report ok=false.
func (v *Var) Text(idx ...int) (string, bool) {
	el, ok := v.element(idx...)
	if !ok {
		return "", false
	}
	s := decodeScalar(el)
	if s == "" {
		return "", false
	}
	return s, true
}

// Float returns the element at idx as a float, rejecting the variable's
// fill value sentinel as well as NaN and Inf.
func (v *Var) Float(idx ...int) (float64, bool) {
	el, ok := v.element(idx...)
	if !ok {
		return 0, false
	}
	f, ok := numericScalar(el)
	if !ok {
		return 0, false
	}
	if v.fill != nil && f == *v.fill {
		return 0, false
	}
	return f, true
}

// element walks the nested value by index. A scalar variable ignores a
// single trailing index of 0 so callers can treat 0-D and 1-D shapes
// uniformly, matching how Argo files mix the two.
func (v *Var) element(idx ...int) (any, bool) {
	cur := reflect.ValueOf(v.values)
	for _, i := range idx {
		if cur.Kind() != reflect.Slice {
			if i == 0 {
				continue
			}
			return nil, false
		}
		if i < 0 || i >= cur.Len() {
			return nil, false
		}
		cur = cur.Index(i)
		for cur.Kind() == reflect.Interface {
			cur = cur.Elem()
		}
	}
	if !cur.IsValid() || cur.Kind() == reflect.Slice {
		// a remaining slice means the caller under-indexed the variable
		return nil, false
	}
	return cur.Interface(), true
}

// decodeScalar renders an attribute or element value as trimmed text.
// Byte payloads that are not valid UTF-8 go through the Latin-1 decoder
// so a stray degree sign in a PI name never poisons the row.
func decodeScalar(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	case []byte:
		s = decodeBytes(t)
	case byte:
		s = string(rune(t))
	case fmt.Stringer:
		s = t.String()
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return ""
			}
			s = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", f), "0"), ".")
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			s = fmt.Sprintf("%d", rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			s = fmt.Sprintf("%d", rv.Uint())
		default:
			s = fmt.Sprint(v)
		}
	}
	s = strings.TrimSpace(strings.Trim(s, "\x00"))
	switch strings.ToLower(s) {
	case "", "nan", "nat", "none":
		return ""
	}
	return s
}

func decodeBytes(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().String(string(b))
	if err != nil {
		return string(b)
	}
	return s
}

// numericScalar converts a numeric element to float64. Strings holding
// numbers are not converted here; that is resolver policy.
func numericScalar(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}
	var f float64
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		f = rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f = float64(rv.Uint())
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
