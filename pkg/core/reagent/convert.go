package reagent

import (
	"math"
	"strconv"

	"github.com/scienceol/equivalents/pkg/common/code"
)

func checkAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return code.InvalidQuantity.WithMsgf("amount %v must be a finite non-negative number", v)
	}
	return nil
}

func checkSubstance(s Substance) error {
	if s == nil {
		return code.UnknownCategory.WithMsg("substance has no category")
	}
	if err := s.Validate(); err != nil {
		return code.InvalidQuantity.WithField(code.FieldOf(err), code.Message(err))
	}
	return nil
}

// ToMols converts an amount in the substance's unit (g or mL) to moles.
func ToMols(sub Substance, amount float64) (float64, error) {
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	if err := checkSubstance(sub); err != nil {
		return 0, err
	}

	var moles float64
	switch s := sub.(type) {
	case Solid:
		moles = amount / s.MolarMass
	case Liquid:
		moles = s.Density * amount / s.MolarMass
	case PercentSolution:
		moles = s.Concentration * s.SolutionDensity * amount / (100 * s.MolarMass)
	case MolarSolution:
		moles = amount * s.Concentration / 1000
	default:
		return 0, code.UnknownCategory.WithMsgf("substance %T", sub)
	}
	return moles, checkResult(moles)
}

// FromMols converts moles to an amount in the substance's unit.
func FromMols(sub Substance, moles float64) (float64, error) {
	if err := checkAmount(moles); err != nil {
		return 0, err
	}
	if err := checkSubstance(sub); err != nil {
		return 0, err
	}

	var amount float64
	switch s := sub.(type) {
	case Solid:
		amount = s.MolarMass * moles
	case Liquid:
		amount = s.MolarMass * moles / s.Density
	case PercentSolution:
		amount = s.MolarMass * moles * 100 / (s.SolutionDensity * s.Concentration)
	case MolarSolution:
		amount = moles * 1000 / s.Concentration
	default:
		return 0, code.UnknownCategory.WithMsgf("substance %T", sub)
	}
	return amount, checkResult(amount)
}

func checkResult(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return code.InvalidQuantity.WithMsg("result is not a finite number")
	}
	return nil
}

// Round rounds v to prec decimals by its exact binary value, ties to
// even, so 2.675 rounds to 2.67 and 0.125 to 0.12.
func Round(v float64, prec int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', prec, 64), 64)
	if err != nil {
		return v
	}
	return r
}
