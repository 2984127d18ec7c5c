package resolve

import (
	"testing"
	"time"

	"argoetl/internal/ncdf"
)

func TestTextPrefersVariableOverAttributes(t *testing.T) {
	m := ncdf.NewMemory()
	m.Vars["PROJECT_NAME"] = []string{"FROM_VAR"}
	m.Attrs["PROJECT_NAME"] = "FROM_UPPER"
	m.Attrs["project_name"] = "FROM_LOWER"

	if got := Text(m, "PROJECT_NAME", "def", 0); got != "FROM_VAR" {
		t.Fatalf("Text = %q, want FROM_VAR", got)
	}
}

func TestTextFallsThroughEmptyCandidates(t *testing.T) {
	m := ncdf.NewMemory()
	// whitespace-only variable data must not win the chain
	m.Vars["PROJECT_NAME"] = []string{"   "}
	m.Attrs["project_name"] = "FROM_LOWER"

	if got := Text(m, "PROJECT_NAME", "def", 0); got != "FROM_LOWER" {
		t.Fatalf("Text = %q, want FROM_LOWER", got)
	}
}

func TestTextUpperAttributeBeatsLower(t *testing.T) {
	m := ncdf.NewMemory()
	m.Attrs["WMO_INST_TYPE"] = "846"
	m.Attrs["wmo_inst_type"] = "847"

	if got := Text(m, "WMO_INST_TYPE", "", 0); got != "846" {
		t.Fatalf("Text = %q, want 846", got)
	}
}

func TestTextDefaultWhenAllAbsent(t *testing.T) {
	m := ncdf.NewMemory()
	if got := Text(m, "PROJECT_NAME", "Unknown Project", 0); got != "Unknown Project" {
		t.Fatalf("Text = %q, want Unknown Project", got)
	}
}

func TestFloatRejectsFillValue(t *testing.T) {
	m := ncdf.NewMemory()
	m.Vars["PRES"] = []float64{99999.0, 12.5}
	m.Fills["PRES"] = 99999.0

	if got := Float(m, "PRES", 0); got != nil {
		t.Fatalf("fill value resolved to %v, want nil", *got)
	}
	got := Float(m, "PRES", 1)
	if got == nil || *got != 12.5 {
		t.Fatalf("Float = %v, want 12.5", got)
	}
}

func TestQCRules(t *testing.T) {
	cases := []struct {
		in   string
		def  string
		want string
	}{
		{"1", "0", "1"},
		{" 4 ", "0", "4"},
		{"A", "0", "A"},
		{"f", "0", "f"},
		{"14", "0", "1"}, // first character only
		{"", "0", "0"},
		{"", "9", "9"},
		{"*", "0", "0"},
		{"Z", "9", "9"},
	}
	for _, c := range cases {
		if got := QCChar(c.in, c.def); got != c.want {
			t.Errorf("QCChar(%q, %q) = %q, want %q", c.in, c.def, got, c.want)
		}
	}
}

func TestQCDefaultWhenVariableMissing(t *testing.T) {
	m := ncdf.NewMemory()
	if got := QC(m, "JULD_STATUS", "9", 0); got != "9" {
		t.Fatalf("QC = %q, want 9", got)
	}
}

func TestTruncateEllipsis(t *testing.T) {
	long := make([]byte, 120)
	for i := range long {
		long[i] = 'x'
	}
	got := TruncateEllipsis(string(long), 100)
	if len(got) != 100 {
		t.Fatalf("len = %d, want 100", len(got))
	}
	if got[96:] != "x..." {
		t.Fatalf("tail = %q, want x...", got[96:])
	}
	if TruncateEllipsis("short", 100) != "short" {
		t.Fatal("short string must pass through unchanged")
	}
}

func TestArgoDate(t *testing.T) {
	got := ArgoDate("20230115093000")
	if got == nil {
		t.Fatal("valid date rejected")
	}
	want := time.Date(2023, 1, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ArgoDate = %v, want %v", got, want)
	}

	// positional: characters beyond 14 are ignored
	if got := ArgoDate("20230115093000 extra"); got == nil || !got.Equal(want) {
		t.Fatalf("trailing content changed the parse: %v", got)
	}

	if ArgoDate("202301") != nil {
		t.Fatal("short input must be rejected, not padded")
	}
	if ArgoDate("2023011509300x") != nil {
		t.Fatal("non-digit input must be rejected")
	}
}

func TestJulianDayRange(t *testing.T) {
	if JulianDay(9999.99) != nil {
		t.Fatal("below range accepted")
	}
	if JulianDay(50000.01) != nil {
		t.Fatal("above range accepted")
	}
	got := JulianDay(18262.0) // 1950-01-01 + 18262 days = 2000-01-02
	if got == nil {
		t.Fatal("in-range value rejected")
	}
	want := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("JulianDay = %v, want %v", got, want)
	}
}

func TestJulianTextRejectsStatusCodes(t *testing.T) {
	for _, s := range []string{"2", "4", "99"} {
		if JulianText(s) != nil {
			t.Errorf("status code %q converted to a date", s)
		}
	}
	if JulianText("100") != nil {
		t.Error("out-of-range day count accepted")
	}
	if JulianText("20000.5") == nil {
		t.Error("valid decimal day count rejected")
	}
	if JulianText("nat") != nil {
		t.Error("nat sentinel accepted")
	}
}

func TestJulianVarPrefersNumeric(t *testing.T) {
	m := ncdf.NewMemory()
	m.Vars["JULD"] = []float64{20000.25}
	got := JulianVar(m, "JULD", 0)
	if got == nil {
		t.Fatal("numeric JULD rejected")
	}
	want := juldEpoch.Add(time.Duration(20000.25 * float64(24*time.Hour)))
	if !got.Equal(want) {
		t.Fatalf("JulianVar = %v, want %v", got, want)
	}
}

func TestBatteryPacks(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		nil_ bool
	}{
		{"board -  1 (s/n: 41);", 1, false},
		{"2 packs alkaline", 2, false},
		{"lithium", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got := BatteryPacks(c.in)
		if c.nil_ {
			if got != nil {
				t.Errorf("BatteryPacks(%q) = %v, want nil", c.in, *got)
			}
			continue
		}
		if got == nil || *got != c.want {
			t.Errorf("BatteryPacks(%q) = %v, want %d", c.in, got, c.want)
		}
	}
}
