package reagent

import (
	"errors"
	"math"
	"testing"

	"github.com/scienceol/equivalents/pkg/common/code"
	"gonum.org/v1/gonum/floats/scalar"
)

var (
	tetracycline = Solid{MolarMass: 444.43}
	lysine       = Solid{MolarMass: 182.65}
	triethyl     = Liquid{MolarMass: 101.19, Density: 0.73}
	pyridine     = Liquid{MolarMass: 79.10, Density: 0.98}
	ammonia      = PercentSolution{MolarMass: 17.03, Concentration: 25, SolutionDensity: 0.91}
	formalin     = PercentSolution{MolarMass: 30.03, Concentration: 37, SolutionDensity: 1.01}
	hcl          = MolarSolution{MolarMass: 36.46, Concentration: 2}
	sulfuric     = MolarSolution{MolarMass: 98.08, Concentration: 1}
)

func TestToMols(t *testing.T) {
	tests := []struct {
		name   string
		s      Substance
		amount float64
		want   float64
	}{
		{"tetracycline", tetracycline, 1.75, 0.00394},
		{"triethylamine", triethyl, 5.2, 0.03751},
		{"ammonia solution", ammonia, 0.8, 0.01069},
		{"2M HCl", hcl, 15, 0.03},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMols(tt.s, tt.amount)
			if err != nil {
				t.Fatal(err)
			}
			if Round(got, 5) != tt.want {
				t.Fatalf("ToMols = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromMols(t *testing.T) {
	tests := []struct {
		name  string
		s     Substance
		moles float64
		want  float64
	}{
		{"L-lysine hydrochloride", lysine, 0.002, 0.3653},
		{"pyridine", pyridine, 0.0015, 0.12107},
		{"formalin", formalin, 0.003, 0.24108},
		{"1M H2SO4", sulfuric, 0.0035, 3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromMols(tt.s, tt.moles)
			if err != nil {
				t.Fatal(err)
			}
			if Round(got, 5) != tt.want {
				t.Fatalf("FromMols = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []Substance{tetracycline, lysine, triethyl, pyridine, ammonia, formalin, hcl, sulfuric} {
		for _, x := range []float64{0.001, 0.5, 1, 12.34, 250} {
			moles, err := ToMols(s, x)
			if err != nil {
				t.Fatal(err)
			}
			back, err := FromMols(s, moles)
			if err != nil {
				t.Fatal(err)
			}
			if !scalar.EqualWithinRel(back, x, 1e-9) {
				t.Errorf("%T %v: round trip gave %v", s, x, back)
			}
		}
	}
}

func TestZeroAmount(t *testing.T) {
	got, err := ToMols(triethyl, 0)
	if err != nil || got != 0 {
		t.Fatalf("ToMols(0) = %v, %v", got, err)
	}
	got, err = FromMols(hcl, 0)
	if err != nil || got != 0 {
		t.Fatalf("FromMols(0) = %v, %v", got, err)
	}
}

func TestInvalidQuantity(t *testing.T) {
	tests := []struct {
		name   string
		s      Substance
		amount float64
	}{
		{"negative", tetracycline, -1},
		{"nan", tetracycline, math.NaN()},
		{"inf", pyridine, math.Inf(1)},
		{"zero molar mass", Solid{}, 1},
		{"zero density", Liquid{MolarMass: 10}, 1},
		{"zero concentration", MolarSolution{MolarMass: 10}, 1},
		{"zero solution density", PercentSolution{MolarMass: 10, Concentration: 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToMols(tt.s, tt.amount); !errors.Is(err, code.InvalidQuantity) {
				t.Errorf("ToMols err = %v", err)
			}
			if _, err := FromMols(tt.s, tt.amount); !errors.Is(err, code.InvalidQuantity) {
				t.Errorf("FromMols err = %v", err)
			}
		})
	}
}

func TestNilSubstance(t *testing.T) {
	if _, err := ToMols(nil, 1); !errors.Is(err, code.UnknownCategory) {
		t.Fatalf("err = %v, want UnknownCategory", err)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v    float64
		prec int
		want float64
	}{
		{0.121071, 2, 0.12},
		{2.675, 1, 2.7},
		// 2.675 is stored just below the tie
		{2.675, 2, 2.67},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{1.5, 0, 2},
		{2.5, 0, 2},
		{3, 2, 3},
	}
	for _, tt := range tests {
		if got := Round(tt.v, tt.prec); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.prec, got, tt.want)
		}
	}
	if got := Round(math.Inf(1), 2); !math.IsInf(got, 1) {
		t.Errorf("Round(+Inf) = %v", got)
	}
}
