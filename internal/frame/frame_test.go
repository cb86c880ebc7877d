package frame

import (
	"encoding/base64"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var csvRows = []string{
	"Group;Concentration (g/L);Temp (°F);Score;LocaleNumber;Category;Note",
	"A;0,5;70;10,0;1.000,0;alpha;first",
	"A;0,6;71;11,0;1.100,0;alpha;second",
	"A;0,55;69;9,5;0.900,0;beta;third",
	"B;0,7;75;10,5;1.050,0;alpha;fourth",
	"B;0,65;74;9,8;0.980,0;beta;fifth",
	"B;0,68;73;10,2;1.020,0;alpha;sixth",
	"A;0,52;68;8,8;0.880,0;gamma;seventh",
	"B;0,75;76;9,7;0.970,0;beta;eighth",
	"A;3,0;95;50,0;5.000,0;alpha;ninth",
	"B;0,66;72;10,1;1.010,0;gamma;tenth",
}

var processedScore = []float64{10, 11, 9.5, 10.5, 9.8, 10.2, 8.8, 9.7, 50, 10.1}

const xlsxFixtureBase64 = `
UEsDBBQAAAAIAMEwN1vYAxPv/wAAALYCAAATABwAW0NvbnRlbnRfVHlwZXNdLnhtbFVUCQADyjjSaMo40mh1eAsAAQQAAAAABAAAAAC1ks1OwzAQhO95CsvX
Kt60B4RQkh74OQKH8gDG3iRW/CfbLeHtcVIEEqIIpHJaWTOz32jlejsZTQ4YonK2oWtWUYJWOKls39Cn3V15SbdtUe9ePUaSvTY2dEjJXwFEMaDhkTmPNiud
C4an/Aw9eC5G3iNsquoChLMJbSrTvIO2BSH1DXZ8rxO5nbJyRAfUkZLro3fGNZR7r5XgKetwsPILqHyHsJxcPHFQPq6ygcIpyCyeZnxGH/JFgpJIHnlI99xk
I0waXlwYn50b2c97vunquk4JlE7sTY6w6ANyGQfEZDRbJjNc2dWvKiz+CMtYn7nLx/6/V9n8d5Ualm/YFm9QSwMECgAAAAAAxDA3WwAAAAAAAAAAAAAAAAMA
HAB4bC9VVAkAA9A40mjyONJodXgLAAEEAAAAAAQAAAAAUEsDBBQAAAAIAMQwN1tM2kS6xQAAAEkBAAAPABwAeGwvd29ya2Jvb2sueG1sVVQJAAPQONJo0DjS
aHV4CwABBAAAAAAEAAAAAI1Qu27DMAzc/RUC90aOhyIwZGcJAnhvP0CxaVuIRRqk+vj8qjEMZOjQ7Y7k3ZF05++4mE8UDUwNHA8lGKSeh0BTA+9v15cTnNvC
fbHcb8x3k8dJG5hTWmtrtZ8xej3wipQ7I0v0KVOZrK6CftAZMcXFVmX5aqMPBJtDLf/x4HEMPV64/4hIaTMRXHzKy+ocVoW2MMY9QvQX7sSQj9hANxELgnnU
uiHfB0bqkIF0wxHsH5KLT/5JUD0Jqk3g7J7n7P6WtvgBUEsDBAoAAAAAANIwN1sAAAAAAAAAAAAAAAAOABwAeGwvd29ya3NoZWV0cy9VVAkAA+s40mjyONJo
dXgLAAEEAAAAAAQAAAAAUEsDBBQAAAAIANIwN1u3fFZsqwIAAIASAAAYABwAeGwvd29ya3NoZWV0cy9zaGVldDIueG1sVVQJAAPrONJo6zjSaHV4CwABBAAA
AAAEAAAAAJ3YT26bQBiH4X1OgVilkguD/wEVJkoMzibKJukBJngMqGYGDeMkvVXP0JN1nEhVQ/r7QCxx/BDsV9/gIbl6bY7Os9BdreTGDTzmOkIWal/LcuN+
f9x9jdyr9CJ5UfpHVwlhHPt+2W3cypj2m+93RSUa3nmqFdL+5aB0w4091KXftVrw/Rtqjv6csbXf8Fq66YXjJG8vZ9zw85E91urF0fb/u+/H9pXifHwduI7Z
uLU81lI8GO2mSd2liUlvtTq1iW/SxD+/4Bcf3Q1yWyULIY3mxn5e57L0777gs2zRWR5F0zqXv3/tCJwh/FAoLbDLkbtTBT+K+1PzJDTmO/jJuRGl0j8xvUX0
Xpn/XHDi22gf8837+ebgjNdEOmTYbEWkQipkRCKEAjYjWA6Zxxgpd0jyY1txogxyh1p3ZlSaRT/NYkIaZNhsTaRBKgyINAgFAZkGMi8YSIPkUBrkOlEouR/V
Ztlvs5zQBhk7NtTcILaOiTgIxdSI5vAKvXigDZJPwlBpEDNVrceVWfXLrMApb4gyyLBZSIRBKiS+4gyhgFw8c8g8tqLLIDk0Ncgd1EmbalSbdb/NekIbZOyK
Rk0NYuGSiINQPIuINvAKvTii2yA5MDWIHerDyDJhv0w4oQwytgzxdW0RCxdEGYTs2MyJNJB5bE6nQXJobJDr6teRbaJ+m2jCvQYZu8oQ39cWMSpohlBETg28
Qi8amBokS940VBrkOvFsNxzj4sT9OPGEwUHG3m6oJQ2xkPhplyEUU7e2HF6hF4d0HCQHljTERF1WI9ME7NPWlE2YHIgW1OfeQhZTvwagom/qOXaDGxxIh1Y2
CGU9dnqCz08P0I6Wmh+I7J2H2uZAFxJrYgaVvfcQ+6McO4/R29cdpENLHIRmYIVL/H+e9yT+34dJ6cUfUEsDBBQAAAAIAMcwN1sqMey0swAAAPgAAAAYABwA
eGwvd29ya3NoZWV0cy9zaGVldDEueG1sVVQJAAPWONJo1jjSaHV4CwABBAAAAAAEAAAAAE2P3WrDMAxG7/MURverkl6MUhyXwegLrHsA46iNqf+QxbLHr5OO
0cvzSfoO0qffGNQPcfU5jTDselCUXJ58uo3wfTm/HeBkOr1kvteZSFTbT3WEWaQcEaubKdq6y4VSm1wzRysN+Ya1MNlpO4oB933/jtH6BKZTSm/xpxW7UmPO
i+Lmhye3xK38MYCSEXwKPtGXMBjtq9FiSrCO5hwmYo1iNK4xur82bHWbBl88Gv+fMN0DUEsDBAoAAAAAAMYwN1sAAAAAAAAAAAAAAAAJABwAeGwvX3JlbHMv
VVQJAAPTONJo8jjSaHV4CwABBAAAAAAEAAAAAFBLAwQUAAAACADGMDdbCmPblLYAAACtAQAAGgAcAHhsL19yZWxzL3dvcmtib29rLnhtbC5yZWxzVVQJAAPT
ONJo0zjSaHV4CwABBAAAAAAEAAAAAL2QSwrCMBBA9z1FmL2dtgsRadqNCN1KPUBIpx/aJiGJv9sbBMWCgitXw/zePCYvr/PEzmTdoBWHNE6AkZK6GVTH4Vjv
Vxsoiyg/0CR8GHH9YBwLO8px6L03W0Qne5qFi7UhFTqttrPwIbUdGiFH0RFmSbJG+86AImJsgWVVw8FWTQqsvhn6Ba/bdpC00/I0k/IfruBF29H1RD5Ahe3I
c3iVHD5CGgcq4Fef7M8+2dMnx8XXi+gOUEsDBAoAAAAAAMMwN1sAAAAAAAAAAAAAAAAGABwAX3JlbHMvVVQJAAPNONJo8jjSaHV4CwABBAAAAAAEAAAAAFBL
AwQUAAAACADDMDdbDxvLDKoAAAAcAQAACwAcAF9yZWxzLy5yZWxzVVQJAAPNONJozTjSaHV4CwABBAAAAAAEAAAAAI3PsQ6CMBAG4J2naG6XgoMxxsJiTFgN
PkAtRyHQXtNWxbe3oxgHx8v9913+Y72YmT3Qh5GsgDIvgKFV1I1WC7i2580e6io7XnCWMUXCMLrA0o0NAoYY3YHzoAY0MuTk0KZNT97ImEavuZNqkhr5tih2
3H8aUGWMrVjWdAJ805XA2pfDf3jq+1HhidTdoI0/vnwlkiy9xihgmfmT/HQjmvKEAk8d+apklb0BUEsBAh4DFAAAAAgAwTA3W9gDE+//AAAAtgIAABMAGAAA
AAAAAQAAAKSBAAAAAFtDb250ZW50X1R5cGVzXS54bWxVVAUAA8o40mh1eAsAAQQAAAAABAAAAABQSwECHgMKAAAAAADEMDdbAAAAAAAAAAAAAAAAAwAYAAAA
AAAAABAA7UFMAQAAeGwvVVQFAAPQONJodXgLAAEEAAAAAAQAAAAAUEsBAh4DFAAAAAgAxDA3W0zaRLrFAAAASQEAAA8AGAAAAAAAAQAAAKSBiQEAAHhsL3dv
cmtib29rLnhtbFVUBQAD0DjSaHV4CwABBAAAAAAEAAAAAFBLAQIeAwoAAAAAANIwN1sAAAAAAAAAAAAAAAAOABgAAAAAAAAAEADtQZcCAAB4bC93b3Jrc2hl
ZXRzL1VUBQAD6zjSaHV4CwABBAAAAAAEAAAAAFBLAQIeAxQAAAAIANIwN1u3fFZsqwIAAIASAAAYABgAAAAAAAEAAACkgd8CAAB4bC93b3Jrc2hlZXRzL3No
ZWV0Mi54bWxVVAUAA+s40mh1eAsAAQQAAAAABAAAAABQSwECHgMUAAAACADHMDdbKjHstLMAAAD4AAAAGAAYAAAAAAABAAAApIHcBQAAeGwvd29ya3NoZWV0
cy9zaGVldDEueG1sVVQFAAPWONJodXgLAAEEAAAAAAQAAAAAUEsBAh4DCgAAAAAAxjA3WwAAAAAAAAAAAAAAAAkAGAAAAAAAAAAQAO1B4QYAAHhsL19yZWxz
L1VUBQAD0zjSaHV4CwABBAAAAAAEAAAAAFBLAQIeAxQAAAAIAMYwN1sKY9uUtgAAAK0BAAAaABgAAAAAAAEAAACkgSQHAAB4bC9fcmVscy93b3JrYm9vay54
bWwucmVsc1VUBQAD0zjSaHV4CwABBAAAAAAEAAAAAFBLAQIeAwoAAAAAAMMwN1sAAAAAAAAAAAAAAAAGABgAAAAAAAAAEADtQS4IAABfcmVscy9VVAUAA804
0mh1eAsAAQQAAAAABAAAAABQSwECHgMUAAAACADDMDdbDxvLDKoAAAAcAQAACwAYAAAAAAABAAAApIFuCAAAX3JlbHMvLnJlbHNVVAUAA8040mh1eAsAAQQA
AAAABAAAAABQSwUGAAAAAAoACgBTAwAAXQkAAAAA
`

func TestReadCSVInfersKinds(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "metrics.csv")
	if err := os.WriteFile(p, []byte(strings.Join(csvRows, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	opt := DefaultLoadOptions()
	opt.Delimiter = ';'
	opt.DecimalSeparator = ','
	opt.ThousandsSeparator = '.'

	tab, err := ReadCSV(p, opt)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	assertMetrics(t, tab, "metrics.csv")
}

func TestReadCSVMaxRowsAndBlanks(t *testing.T) {
	content := "id,score,label\n1,2.5,a\n2,,b\n3,4,\n4,5,a\n"
	p := filepath.Join(t.TempDir(), "blanks.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	opt := DefaultLoadOptions()
	opt.MaxRows = 3
	tab, err := Load(p, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tab.Len() != 3 || tab.Truncated != 4 {
		t.Fatalf("len = %d truncated = %d, want 3 and 4", tab.Len(), tab.Truncated)
	}
	score, _ := tab.Col("score")
	if score.Kind() != Numeric {
		t.Fatalf("score kind = %v", score.Kind())
	}
	if !math.IsNaN(score.Floats()[1]) || !score.IsMissing(1) {
		t.Fatalf("blank cell should be NaN, got %v", score.Floats()[1])
	}
	label, _ := tab.Col("label")
	if label.Kind() != Categorical || label.Strings()[2] != "" {
		t.Fatalf("label = %#v", label.Strings())
	}
	if got := tab.Row(1); got[1] != "" || got[0] != "2" {
		t.Fatalf("row 1 = %#v", got)
	}
}

func TestReadCSVColumnsSubsetAndHeaders(t *testing.T) {
	content := "a,,a\n1,x,2\n"
	tab, err := ParseCSV("inline", strings.NewReader(content), DefaultLoadOptions())
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if got := strings.Join(tab.Names(), "|"); got != "a|column2|a_2" {
		t.Fatalf("names = %s", got)
	}
	opt := DefaultLoadOptions()
	opt.Columns = []string{"a_2", "a"}
	tab, err = ParseCSV("inline", strings.NewReader(content), opt)
	if err != nil {
		t.Fatalf("ParseCSV subset: %v", err)
	}
	if got := strings.Join(tab.Names(), "|"); got != "a_2|a" {
		t.Fatalf("subset names = %s", got)
	}
	opt.Columns = []string{"missing"}
	if _, err := ParseCSV("inline", strings.NewReader(content), opt); err == nil {
		t.Fatalf("expected unknown column error")
	}
}

func TestReadCSVEmpty(t *testing.T) {
	tab, err := ParseCSV("empty", strings.NewReader(""), DefaultLoadOptions())
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if tab.NumCols() != 0 || tab.Len() != 0 {
		t.Fatalf("expected empty table, got %d cols %d rows", tab.NumCols(), tab.Len())
	}
	tab, err = ParseCSV("header", strings.NewReader("a,b\n"), DefaultLoadOptions())
	if err != nil {
		t.Fatalf("ParseCSV header-only: %v", err)
	}
	if tab.NumCols() != 2 || tab.Len() != 0 {
		t.Fatalf("expected 2 cols 0 rows, got %d cols %d rows", tab.NumCols(), tab.Len())
	}
}

func TestReadXLSXSheetSelection(t *testing.T) {
	path := writeXLSXFixture(t)
	opt := DefaultLoadOptions()
	opt.DecimalSeparator = ','
	opt.ThousandsSeparator = '.'

	opt.SheetName = "Data"
	byName, err := ReadXLSX(path, opt)
	if err != nil {
		t.Fatalf("ReadXLSX name: %v", err)
	}
	assertMetrics(t, byName, "analysis_dataset.xlsx")

	opt.SheetName = ""
	opt.SheetIndex = 2
	byIndex, err := Load(path, opt)
	if err != nil {
		t.Fatalf("Load index: %v", err)
	}
	assertMetrics(t, byIndex, "analysis_dataset.xlsx")

	opt.SheetName = "Nope"
	if _, err := ReadXLSX(path, opt); err == nil || !strings.Contains(err.Error(), "Available sheets") && !strings.Contains(err.Error(), "available sheets") {
		t.Fatalf("expected sheet not found error, got %v", err)
	}
}

func TestNormalizeRelPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"styles.xml", "xl/styles.xml"},
	}
	for _, tt := range tests {
		if got := normalizeRelPath(tt.input); got != tt.expected {
			t.Errorf("normalizeRelPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseNumericLocales(t *testing.T) {
	tests := []struct {
		in   string
		opt  LoadOptions
		want float64
		ok   bool
	}{
		{"12.5%", LoadOptions{}, 12.5, true},
		{"1.000,5", LoadOptions{}, 1000.5, true},
		{"1,000.5", LoadOptions{}, 1000.5, true},
		{"0,5", LoadOptions{}, 0.5, true},
		{"1 234", LoadOptions{}, 1234, true},
		{"1.000", LoadOptions{DecimalSeparator: ',', ThousandsSeparator: '.'}, 1000, true},
		{"alpha", LoadOptions{}, 0, false},
		{"", LoadOptions{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumeric(tt.in, tt.opt)
		if ok != tt.ok || (ok && math.Abs(got-tt.want) > 1e-12) {
			t.Errorf("parseNumeric(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTableValidation(t *testing.T) {
	_, err := NewTable(NewNumeric("a", []float64{1, 2}), NewCategorical("a", []string{"x", "y"}))
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Fatalf("expected ErrDuplicateColumn, got %v", err)
	}
	_, err = NewTable(NewNumeric("a", []float64{1, 2}), NewCategorical("b", []string{"x"}))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	tab := MustTable(Numbers("n", []int{3, 1, 2}), NewCategorical("s", []string{"c", "a", "b"}))
	n, ok := tab.Col("n")
	if !ok || n.Kind() != Numeric || n.Floats()[0] != 3 {
		t.Fatalf("Numbers column = %#v", n)
	}
	sub := n.Take([]int{2, 0})
	if sub.Len() != 2 || sub.Floats()[0] != 2 || sub.Floats()[1] != 3 {
		t.Fatalf("Take = %#v", sub.Floats())
	}
	if r := n.Renamed("m"); r.Name != "m" || n.Name != "n" {
		t.Fatalf("Renamed changed the original")
	}
}

func TestValueOrderingAndFormat(t *testing.T) {
	if Num(2).Compare(Num(10)) >= 0 {
		t.Fatalf("2 should order before 10")
	}
	if Str("10").Compare(Str("2")) >= 0 {
		t.Fatalf(`"10" should order before "2"`)
	}
	if Num(99).Compare(Str("a")) >= 0 {
		t.Fatalf("numbers should order before strings")
	}
	if CompareKeys([]Value{Str("a"), Num(1)}, []Value{Str("a"), Num(2)}) >= 0 {
		t.Fatalf("tuple ordering broken")
	}
	cases := map[float64]string{2.5: "2.5", 3: "3", 1e-15: "1e-15", 1234567: "1234567", math.Inf(1): "inf"}
	for in, want := range cases {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
	if !Num(math.NaN()).IsMissing() || Str("").IsMissing() {
		t.Fatalf("IsMissing wrong")
	}
}

func writeXLSXFixture(t *testing.T) string {
	t.Helper()
	raw := strings.ReplaceAll(strings.TrimSpace(xlsxFixtureBase64), "\n", "")
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("decode xlsx fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "analysis_dataset.xlsx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write xlsx fixture: %v", err)
	}
	return path
}

func assertMetrics(t *testing.T, tab *Table, expectName string) {
	t.Helper()
	if tab.Name != expectName {
		t.Fatalf("table name = %q, want %q", tab.Name, expectName)
	}
	if tab.Len() != 10 {
		t.Fatalf("rows = %d, want 10", tab.Len())
	}
	if tab.NumCols() != 7 || tab.Names()[0] != "Group" {
		t.Fatalf("names = %#v", tab.Names())
	}
	group, _ := tab.Col("Group")
	if group.Kind() != Categorical || group.Strings()[0] != "A" {
		t.Fatalf("group = %v %#v", group.Kind(), group.Strings())
	}
	score, ok := tab.Col("Score")
	if !ok || score.Kind() != Numeric {
		t.Fatalf("score column missing or not numeric")
	}
	for i, want := range processedScore {
		if math.Abs(score.Floats()[i]-want) > 1e-9 {
			t.Fatalf("score[%d] = %v, want %v", i, score.Floats()[i], want)
		}
	}
	locale, _ := tab.Col("LocaleNumber")
	if locale.Kind() != Numeric || locale.Floats()[0] != 1000 || locale.Floats()[8] != 5000 {
		t.Fatalf("locale = %#v", locale.Floats())
	}
	cat, _ := tab.Col("Category")
	if cat.Kind() != Categorical {
		t.Fatalf("category kind = %v", cat.Kind())
	}
}
