package model

// Reagent is one persisted catalog row. The json keys are those of the
// reagent library file and must not change.
type Reagent struct {
	BaseModel             `json:"-"`
	Name                  string   `gorm:"type:varchar(255);not null;index:idx_reagent_name" json:"name"`
	Category              string   `gorm:"type:varchar(32);not null" json:"category"`
	MolarMass             *float64 `gorm:"column:molar_mass" json:"molar mass,omitempty"`
	Density               *float64 `gorm:"column:density" json:"density,omitempty"`
	SolutionConcentration *float64 `gorm:"column:solution_concentration" json:"solution concentration,omitempty"`
	SolutionDensity       *float64 `gorm:"column:solution_density" json:"solution density,omitempty"`
	Image                 string   `gorm:"type:varchar(512)" json:"image"`
}

func (*Reagent) TableName() string { return "reagent" }
