package reagent

import (
	"math"
	"strings"

	"github.com/scienceol/equivalents/pkg/common/code"
)

// Category decides which properties a reagent carries and which
// conversion formula applies. Values are the persisted spellings.
type Category string

const (
	CategorySolid           Category = "solid"
	CategoryLiquid          Category = "liquid"
	CategoryPercentSolution Category = "percent solution"
	CategoryMolarSolution   Category = "molar solution"
)

var Categories = []Category{
	CategorySolid,
	CategoryLiquid,
	CategoryPercentSolution,
	CategoryMolarSolution,
}

// ParseCategory accepts the persisted spelling, underscores in place of
// the space and any letter case.
func ParseCategory(s string) (Category, bool) {
	norm := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "_", " ")))
	for _, c := range Categories {
		if string(c) == norm {
			return c, true
		}
	}
	return "", false
}

func (c Category) Unit() Unit {
	if c == CategorySolid {
		return Gram
	}
	return Milliliter
}

type Unit string

const (
	Gram       Unit = "g"
	Milliliter Unit = "mL"
	Mole       Unit = "mol"
)

// Field names used in validation errors, matching the library keys.
const (
	FieldName                  = "name"
	FieldCategory              = "category"
	FieldMolarMass             = "molar mass"
	FieldDensity               = "density"
	FieldSolutionConcentration = "solution concentration"
	FieldSolutionDensity       = "solution density"
)

// Substance is the category specific part of a reagent. It is
// implemented by Solid, Liquid, PercentSolution and MolarSolution only.
type Substance interface {
	Category() Category
	// Validate reports the first property that is not a finite positive
	// number.
	Validate() error
	sealed()
}

// Solid is measured in grams.
type Solid struct {
	MolarMass float64 // g/mol
}

// Liquid is a neat liquid measured in milliliters.
type Liquid struct {
	MolarMass float64 // g/mol
	Density   float64 // g/mL
}

// PercentSolution is a mass/volume percent solution measured in
// milliliters.
type PercentSolution struct {
	MolarMass       float64 // g/mol of the solute
	Concentration   float64 // %, 0-100
	SolutionDensity float64 // g/mL
}

// MolarSolution is measured in milliliters.
type MolarSolution struct {
	MolarMass     float64 // g/mol of the solute
	Concentration float64 // mol/L
}

func (Solid) Category() Category           { return CategorySolid }
func (Liquid) Category() Category          { return CategoryLiquid }
func (PercentSolution) Category() Category { return CategoryPercentSolution }
func (MolarSolution) Category() Category   { return CategoryMolarSolution }

func (Solid) sealed()           {}
func (Liquid) sealed()          {}
func (PercentSolution) sealed() {}
func (MolarSolution) sealed()   {}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return code.ValidationErr.WithField(field, field+" must be a positive number")
	}
	return nil
}

func (s Solid) Validate() error {
	return positive(FieldMolarMass, s.MolarMass)
}

func (s Liquid) Validate() error {
	if err := positive(FieldMolarMass, s.MolarMass); err != nil {
		return err
	}
	return positive(FieldDensity, s.Density)
}

func (s PercentSolution) Validate() error {
	if err := positive(FieldMolarMass, s.MolarMass); err != nil {
		return err
	}
	if err := positive(FieldSolutionConcentration, s.Concentration); err != nil {
		return err
	}
	if s.Concentration > 100 {
		return code.ValidationErr.WithField(FieldSolutionConcentration, "solution concentration must not exceed 100 %")
	}
	return positive(FieldSolutionDensity, s.SolutionDensity)
}

func (s MolarSolution) Validate() error {
	if err := positive(FieldMolarMass, s.MolarMass); err != nil {
		return err
	}
	return positive(FieldSolutionConcentration, s.Concentration)
}

// Reagent is one catalog record. Records returned by the catalog are
// shared; don't modify them.
type Reagent struct {
	Name      string
	Image     string
	Substance Substance
}

func (r *Reagent) Category() Category { return r.Substance.Category() }

func (r *Reagent) Unit() Unit { return r.Substance.Category().Unit() }

// RegisterReq is the raw input of a registration. Properties that do not
// belong to the chosen category are ignored.
type RegisterReq struct {
	Name                  string   `json:"name"`
	Category              string   `json:"category"`
	MolarMass             *float64 `json:"molar_mass"`
	Density               *float64 `json:"density"`
	SolutionConcentration *float64 `json:"solution_concentration"`
	SolutionDensity       *float64 `json:"solution_density"`
	Image                 string   `json:"image"`
}

func required(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, code.ValidationErr.WithField(field, field+" is required")
	}
	return *v, positive(field, *v)
}

// Build validates the request and returns the reagent it describes.
func (req *RegisterReq) Build() (*Reagent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, code.ValidationErr.WithField(FieldName, "name is required")
	}
	category, ok := ParseCategory(req.Category)
	if !ok {
		return nil, code.ValidationErr.WithField(FieldCategory,
			"category must be one of solid, liquid, percent solution, molar solution")
	}

	molarMass, err := required(FieldMolarMass, req.MolarMass)
	if err != nil {
		return nil, err
	}

	var s Substance
	switch category {
	case CategorySolid:
		s = Solid{MolarMass: molarMass}
	case CategoryLiquid:
		density, err := required(FieldDensity, req.Density)
		if err != nil {
			return nil, err
		}
		s = Liquid{MolarMass: molarMass, Density: density}
	case CategoryPercentSolution:
		conc, err := required(FieldSolutionConcentration, req.SolutionConcentration)
		if err != nil {
			return nil, err
		}
		density, err := required(FieldSolutionDensity, req.SolutionDensity)
		if err != nil {
			return nil, err
		}
		s = PercentSolution{MolarMass: molarMass, Concentration: conc, SolutionDensity: density}
	case CategoryMolarSolution:
		conc, err := required(FieldSolutionConcentration, req.SolutionConcentration)
		if err != nil {
			return nil, err
		}
		s = MolarSolution{MolarMass: molarMass, Concentration: conc}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &Reagent{Name: name, Image: strings.TrimSpace(req.Image), Substance: s}, nil
}

// ReagentResp is the listing form of a reagent.
type ReagentResp struct {
	Name                  string   `json:"name"`
	Category              Category `json:"category"`
	Unit                  Unit     `json:"unit"`
	MolarMass             float64  `json:"molar_mass"`
	Density               *float64 `json:"density,omitempty"`
	SolutionConcentration *float64 `json:"solution_concentration,omitempty"`
	SolutionDensity       *float64 `json:"solution_density,omitempty"`
	Image                 string   `json:"image,omitempty"`
}

func NewReagentResp(r *Reagent) *ReagentResp {
	resp := &ReagentResp{
		Name:     r.Name,
		Category: r.Category(),
		Unit:     r.Unit(),
		Image:    r.Image,
	}
	switch s := r.Substance.(type) {
	case Solid:
		resp.MolarMass = s.MolarMass
	case Liquid:
		resp.MolarMass = s.MolarMass
		resp.Density = &s.Density
	case PercentSolution:
		resp.MolarMass = s.MolarMass
		resp.SolutionConcentration = &s.Concentration
		resp.SolutionDensity = &s.SolutionDensity
	case MolarSolution:
		resp.MolarMass = s.MolarMass
		resp.SolutionConcentration = &s.Concentration
	}
	return resp
}

type FindReq struct {
	Name string `form:"name" binding:"required"`
}

type CompoundReq struct {
	Name string `form:"name" binding:"required"`
}

// CompoundResp prefills a registration from PubChem.
type CompoundResp struct {
	Name             string  `json:"name"`
	MolecularFormula string  `json:"molecular_formula"`
	MolarMass        float64 `json:"molar_mass"`
}
