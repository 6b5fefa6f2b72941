package reagent

import (
	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/repo/model"
)

func value(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, code.ValidationErr.WithField(field, field+" is missing")
	}
	return *v, nil
}

// FromRow decodes a stored row. Properties a category does not use are
// ignored; the ones it uses must pass Validate.
func FromRow(row *model.Reagent) (*Reagent, error) {
	category, ok := ParseCategory(row.Category)
	if !ok {
		return nil, code.UnknownCategory.WithMsgf("reagent %q has category %q", row.Name, row.Category)
	}
	molarMass, err := value(FieldMolarMass, row.MolarMass)
	if err != nil {
		return nil, err
	}

	r := &Reagent{Name: row.Name, Image: row.Image}
	switch category {
	case CategorySolid:
		r.Substance = Solid{MolarMass: molarMass}
	case CategoryLiquid:
		density, err := value(FieldDensity, row.Density)
		if err != nil {
			return nil, err
		}
		r.Substance = Liquid{MolarMass: molarMass, Density: density}
	case CategoryPercentSolution:
		conc, err := value(FieldSolutionConcentration, row.SolutionConcentration)
		if err != nil {
			return nil, err
		}
		density, err := value(FieldSolutionDensity, row.SolutionDensity)
		if err != nil {
			return nil, err
		}
		r.Substance = PercentSolution{MolarMass: molarMass, Concentration: conc, SolutionDensity: density}
	case CategoryMolarSolution:
		conc, err := value(FieldSolutionConcentration, row.SolutionConcentration)
		if err != nil {
			return nil, err
		}
		r.Substance = MolarSolution{MolarMass: molarMass, Concentration: conc}
	}
	if err := r.Substance.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// ToRow encodes r with only the properties of its category set.
func ToRow(r *Reagent) *model.Reagent {
	row := &model.Reagent{
		Name:     r.Name,
		Category: string(r.Category()),
		Image:    r.Image,
	}
	switch s := r.Substance.(type) {
	case Solid:
		row.MolarMass = &s.MolarMass
	case Liquid:
		row.MolarMass = &s.MolarMass
		row.Density = &s.Density
	case PercentSolution:
		row.MolarMass = &s.MolarMass
		row.SolutionConcentration = &s.Concentration
		row.SolutionDensity = &s.SolutionDensity
	case MolarSolution:
		row.MolarMass = &s.MolarMass
		row.SolutionConcentration = &s.Concentration
	}
	return row
}
