package facetfilter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	ff "github.com/doclane/facetfilter"
)

func TestNegateDoubleIsIdentity(t *testing.T) {
	equal := ff.OperatorCondition{Field: fieldChannel, Op: ff.Equal{Text: "ponce"}}
	or := ff.OrCondition{
		Left:  ff.OperatorCondition{Field: fieldChannel, Op: ff.GreaterThan{Value: 1}},
		Right: ff.OperatorCondition{Field: fieldPrice, Op: ff.LowerThanOrEqual{Value: 2}},
	}
	tests := []struct {
		in, want ff.FilterCondition
	}{
		{in: equal, want: equal},
		// Between is the one reshaping case: the first Negate expands it
		// into an Or of two leaves, so the second yields the equivalent
		// And of its two inclusive bounds rather than a Between.
		{
			in: ff.OperatorCondition{Field: fieldPrice, Op: ff.Between{Low: 1, High: 2}},
			want: ff.AndCondition{
				Left:  ff.OperatorCondition{Field: fieldPrice, Op: ff.GreaterThanOrEqual{Value: 1}},
				Right: ff.OperatorCondition{Field: fieldPrice, Op: ff.LowerThanOrEqual{Value: 2}},
			},
		},
		{in: or, want: or},
		{in: ff.EmptyCondition{}, want: ff.EmptyCondition{}},
	}

	for _, tc := range tests {
		got := ff.Negate(ff.Negate(tc.in))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Negate(Negate(%#v)) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestNegateDeMorgan(t *testing.T) {
	or := ff.OrCondition{
		Left:  ff.OperatorCondition{Field: fieldChannel, Op: ff.Equal{Text: "a"}},
		Right: ff.OperatorCondition{Field: fieldChannel, Op: ff.Equal{Text: "b"}},
	}
	want := ff.AndCondition{
		Left:  ff.OperatorCondition{Field: fieldChannel, Op: ff.NotEqual{Text: "a"}},
		Right: ff.OperatorCondition{Field: fieldChannel, Op: ff.NotEqual{Text: "b"}},
	}
	if diff := cmp.Diff(want, ff.Negate(or)); diff != "" {
		t.Errorf("Negate(Or) mismatch (-want +got):\n%s", diff)
	}
}

func TestNegateBetweenSplitsIntoPair(t *testing.T) {
	between := ff.OperatorCondition{Field: fieldTimestamp, Op: ff.Between{Low: 22, High: 44}}
	want := ff.OrCondition{
		Left:  ff.OperatorCondition{Field: fieldTimestamp, Op: ff.LowerThan{Value: 22}},
		Right: ff.OperatorCondition{Field: fieldTimestamp, Op: ff.GreaterThan{Value: 44}},
	}
	if diff := cmp.Diff(want, ff.Negate(between)); diff != "" {
		t.Errorf("Negate(Between) mismatch (-want +got):\n%s", diff)
	}
}

func TestNegateEmptyIsEmpty(t *testing.T) {
	if diff := cmp.Diff(ff.EmptyCondition{}, ff.Negate(ff.EmptyCondition{})); diff != "" {
		t.Errorf("Negate(Empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestNegateGeo(t *testing.T) {
	lt := ff.OperatorCondition{Field: fieldGeo, Op: ff.GeoLowerThan{Point: [2]float64{12, 13.0005}, Radius: 2000}}
	want := ff.OperatorCondition{Field: fieldGeo, Op: ff.GeoGreaterThan{Point: [2]float64{12, 13.0005}, Radius: 2000}}
	if diff := cmp.Diff(want, ff.Negate(lt)); diff != "" {
		t.Errorf("Negate(GeoLowerThan) mismatch (-want +got):\n%s", diff)
	}
}
