package equivalent

import "context"

type Service interface {
	// Calculate converts the limiting reagent to moles and measures every
	// other reagent against it.
	Calculate(ctx context.Context, req *CalculateReq) (*CalculateResp, error)
}
