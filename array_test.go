package facetfilter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	ff "github.com/doclane/facetfilter"
)

func TestBuildArrayEmptyMeansNoFilter(t *testing.T) {
	cond, ok, err := ff.BuildArray(newFim(), newFilterable(), nil)
	if err != nil {
		t.Fatalf("BuildArray: %v", err)
	}
	if ok {
		t.Fatalf("BuildArray(nil) = (%v, true), want ok=false", cond)
	}
}

func TestBuildArrayOuterIsAndFoldInnerIsOrFold(t *testing.T) {
	elements := []ff.ArrayElement{
		ff.Raw(`channel = gotaga`),
		ff.Or(`timestamp > 10`, `timestamp < 5`),
	}
	cond, ok, err := ff.BuildArray(newFim(), newFilterable(), elements)
	if err != nil {
		t.Fatalf("BuildArray: %v", err)
	}
	if !ok {
		t.Fatal("BuildArray: want ok=true")
	}

	want := ff.AndCondition{
		Left: ff.OperatorCondition{Field: fieldChannel, Op: ff.Equal{Text: "gotaga"}},
		Right: ff.OrCondition{
			Left:  ff.OperatorCondition{Field: fieldTimestamp, Op: ff.GreaterThan{Value: 10}},
			Right: ff.OperatorCondition{Field: fieldTimestamp, Op: ff.LowerThan{Value: 5}},
		},
	}
	if diff := cmp.Diff(want, cond); diff != "" {
		t.Errorf("BuildArray mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildArraySingleElementOuterIsJustCombine(t *testing.T) {
	cond, ok, err := ff.BuildArray(newFim(), newFilterable(), []ff.ArrayElement{ff.Raw(`channel = gotaga`)})
	if err != nil {
		t.Fatalf("BuildArray: %v", err)
	}
	if !ok {
		t.Fatal("BuildArray: want ok=true")
	}
	want := ff.OperatorCondition{Field: fieldChannel, Op: ff.Equal{Text: "gotaga"}}
	if diff := cmp.Diff(want, cond); diff != "" {
		t.Errorf("BuildArray mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildArrayPropagatesElementErrors(t *testing.T) {
	_, _, err := ff.BuildArray(newFim(), newFilterable(), []ff.ArrayElement{ff.Raw(`_geo = 1`)})
	if err == nil {
		t.Fatal("BuildArray: expected error")
	}
	ferr, ok := err.(*ff.FilterError)
	if !ok || ferr.Kind != ff.KindReservedKeyword {
		t.Fatalf("BuildArray: got %v, want KindReservedKeyword", err)
	}
}
