package dataset

import (
	"encoding/json"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/parcoords/pkg/errors"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		kind ValueKind
		want string
	}{
		{"10", KindNumber, "10"},
		{" 2.5 ", KindNumber, "2.5"},
		{"-1e3", KindNumber, "-1000"},
		{"", KindInvalid, "NaN"},
		{"NaN", KindInvalid, "NaN"},
		{"nan", KindInvalid, "NaN"},
		{"vw", KindString, "vw"},
		{"12abc", KindString, "12abc"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v := ParseValue(tt.in)
			if v.Kind() != tt.kind {
				t.Errorf("ParseValue(%q).Kind() = %v, want %v", tt.in, v.Kind(), tt.kind)
			}
			if v.String() != tt.want {
				t.Errorf("ParseValue(%q).String() = %q, want %q", tt.in, v.String(), tt.want)
			}
		})
	}
}

func TestNumberRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if !Number(f).IsInvalid() {
			t.Errorf("Number(%v) should be the invalid marker", f)
		}
	}
	if !(Value{}).IsInvalid() {
		t.Error("zero Value should be the invalid marker")
	}
}

func TestValueAccessors(t *testing.T) {
	if f, ok := Number(3).Float(); !ok || f != 3 {
		t.Errorf("Float() = %v, %v", f, ok)
	}
	if _, ok := String("a").Float(); ok {
		t.Error("String.Float() should not be ok")
	}
	if s, ok := String("a").Text(); !ok || s != "a" {
		t.Errorf("Text() = %q, %v", s, ok)
	}
	if _, ok := Invalid().Text(); ok {
		t.Error("Invalid.Text() should not be ok")
	}
}

func TestValueJSON(t *testing.T) {
	in := map[string]Value{"a": Number(1.5), "b": String("x"), "c": Invalid()}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"a":1.5,"b":"x","c":null}` {
		t.Errorf("Marshal = %s", data)
	}

	var out map[string]Value
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["a"] != in["a"] || out["b"] != in["b"] || !out["c"].IsInvalid() {
		t.Errorf("Unmarshal = %v", out)
	}
}

func TestColumns(t *testing.T) {
	items := []Item{
		{ID: 0, Values: map[string]Value{"b": Number(1), "a": Number(2)}},
		{ID: 1, Values: map[string]Value{"c": Number(1), "a": Number(2)}},
	}

	got := Columns(items, nil)
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}

	got = Columns(items, []string{"c"})
	if want := []string{"c", "a", "b"}; !slices.Equal(got, want) {
		t.Errorf("Columns(order) = %v, want %v", got, want)
	}

	got = Columns(items, []string{"gone", "b"})
	if want := []string{"b", "a", "c"}; !slices.Equal(got, want) {
		t.Errorf("Columns() should drop absent order names, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	ok := []Item{{ID: 1}, {ID: 2}}
	if err := Validate(ok); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	dup := []Item{{ID: 1}, {ID: 1}}
	if err := Validate(dup); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate(dup) = %v, want INVALID_INPUT", err)
	}

	badName := []Item{{ID: 1, Values: map[string]Value{"": Number(1)}}}
	if err := Validate(badName); err == nil {
		t.Error("Validate(empty name) should fail")
	}
}

func TestTableItems(t *testing.T) {
	tbl := Table{
		Columns: []string{"x", "y"},
		Rows:    [][]Value{{Number(1), String("a")}, {Number(2)}},
	}
	items := tbl.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[1].ID != 1 {
		t.Errorf("items[1].ID = %d, want 1", items[1].ID)
	}
	if !items[1].Get("y").IsInvalid() {
		t.Error("short row should be padded with invalid")
	}
	if !items[0].Get("missing").IsInvalid() {
		t.Error("absent attribute should read as invalid")
	}
}
