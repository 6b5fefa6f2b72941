package equivalent

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/scienceol/equivalents/pkg/core/reagent"
)

// MaxReagents is the number of reagents that can be measured against one
// limiting reagent.
const MaxReagents = 4

type LimitingReq struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount"`
}

type ReagentReq struct {
	Name string  `json:"name" binding:"required"`
	Eq   float64 `json:"eq"`
}

type CalculateReq struct {
	Limiting LimitingReq  `json:"limiting"`
	Reagents []ReagentReq `json:"reagents" binding:"required"`
}

type LimitingResp struct {
	Name   string       `json:"name"`
	Amount float64      `json:"amount"`
	Unit   reagent.Unit `json:"unit"`
	Moles  float64      `json:"moles"`
}

type ResultResp struct {
	Name   string       `json:"name"`
	Amount float64      `json:"amount"`
	Unit   reagent.Unit `json:"unit"`
	Eq     float64      `json:"eq"`
	Moles  float64      `json:"moles"`
}

type CalculateResp struct {
	Limiting LimitingResp `json:"limiting"`
	Results  []ResultResp `json:"results"`
	Report   string       `json:"report"`
}

// format prints v as a float always, shortest digits with a ".0" on
// whole numbers and exponent form outside [1e-4, 1e16).
func format(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Report renders a result the way it is read at the bench. A blank line
// separates the header from the amounts:
//
//	For 1.75 g of tetracycline, measure:
//
//	0.12 mL of pyridine (2.0 eq)
func Report(resp *CalculateResp) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "For %s %s of %s, measure:\n",
		format(resp.Limiting.Amount), resp.Limiting.Unit, resp.Limiting.Name)
	for _, r := range resp.Results {
		fmt.Fprintf(b, "\n%s %s of %s (%s eq)",
			format(reagent.Round(r.Amount, 2)), r.Unit, r.Name, format(r.Eq))
	}
	return b.String()
}
