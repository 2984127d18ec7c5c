package ncdf

// Memory is an in-memory stand-in for Dataset. It backs unit tests and
// lets the assembler be exercised without NetCDF fixtures on disk.
//
// Attrs holds global attributes. Vars holds variable payloads in the
// same shapes Dataset produces: scalars, strings, slices, and nested
// slices. Dims optionally pins dimension lengths; when a dimension is
// not listed, DimLen measures it inside the first VarDims entry naming
// it, at whatever position it appears, exactly as Dataset does.
type Memory struct {
	Attrs   map[string]any
	Vars    map[string]any
	Dims    map[string]int
	VarDims map[string][]string
	Fills   map[string]float64
}

// NewMemory returns an empty Memory ready for population.
func NewMemory() *Memory {
	return &Memory{
		Attrs:   make(map[string]any),
		Vars:    make(map[string]any),
		Dims:    make(map[string]int),
		VarDims: make(map[string][]string),
		Fills:   make(map[string]float64),
	}
}

func (m *Memory) HasVar(name string) bool {
	_, ok := m.Vars[name]
	return ok
}

func (m *Memory) AttrText(name string) (string, bool) {
	v, ok := m.Attrs[name]
	if !ok {
		return "", false
	}
	s := decodeScalar(v)
	if s == "" {
		return "", false
	}
	return s, true
}

func (m *Memory) AttrFloat(name string) (float64, bool) {
	v, ok := m.Attrs[name]
	if !ok {
		return 0, false
	}
	return numericScalar(v)
}

func (m *Memory) variable(name string) *Var {
	raw, ok := m.Vars[name]
	if !ok {
		return nil
	}
	v := &Var{name: name, values: raw}
	if f, ok := m.Fills[name]; ok {
		fill := f
		v.fill = &fill
	}
	return v
}

func (m *Memory) VarText(name string, idx ...int) (string, bool) {
	v := m.variable(name)
	if v == nil {
		return "", false
	}
	return v.Text(idx...)
}

func (m *Memory) VarFloat(name string, idx ...int) (float64, bool) {
	v := m.variable(name)
	if v == nil {
		return 0, false
	}
	return v.Float(idx...)
}

func (m *Memory) VarInt(name string, idx ...int) (int64, bool) {
	f, ok := m.VarFloat(name, idx...)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func (m *Memory) VarLen(name string) int {
	v := m.variable(name)
	if v == nil {
		return 0
	}
	return v.Len()
}

func (m *Memory) DimLen(name string) int {
	if n, ok := m.Dims[name]; ok {
		return n
	}
	for vn, dims := range m.VarDims {
		if n, ok := dimLenIn(dims, m.Vars[vn], name); ok {
			return n
		}
	}
	return 0
}

func (m *Memory) Close() error { return nil }
