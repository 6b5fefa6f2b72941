package equivalent

import (
	"context"
	"math"

	"github.com/scienceol/equivalents/pkg/common/code"
	core "github.com/scienceol/equivalents/pkg/core/equivalent"
	"github.com/scienceol/equivalents/pkg/core/reagent"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/middleware/metrics"
)

type equivalentImpl struct {
	catalog reagent.Finder
}

func New(catalog reagent.Finder) core.Service {
	return &equivalentImpl{catalog: catalog}
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func (e *equivalentImpl) Calculate(ctx context.Context, req *core.CalculateReq) (resp *core.CalculateResp, err error) {
	defer func() { metrics.ObserveCalculation(err) }()

	if n := len(req.Reagents); n < 1 || n > core.MaxReagents {
		return nil, code.ParamErr.WithMsgf("between 1 and %d reagents are required, got %d", core.MaxReagents, n)
	}
	if !positive(req.Limiting.Amount) {
		return nil, code.InvalidQuantity.WithField("amount",
			"limiting reagent amount must be a positive number")
	}

	limiting, err := e.catalog.Find(ctx, req.Limiting.Name)
	if err != nil {
		return nil, err
	}
	moles, err := reagent.ToMols(limiting.Substance, req.Limiting.Amount)
	if err != nil {
		logger.Warnf(ctx, "convert %s to moles err: %+v", limiting.Name, err)
		return nil, err
	}

	resp = &core.CalculateResp{
		Limiting: core.LimitingResp{
			Name:   limiting.Name,
			Amount: req.Limiting.Amount,
			Unit:   limiting.Unit(),
			Moles:  moles,
		},
		Results: make([]core.ResultResp, 0, len(req.Reagents)),
	}
	for _, item := range req.Reagents {
		if !positive(item.Eq) {
			return nil, code.InvalidQuantity.WithField("eq",
				"equivalents of "+item.Name+" must be a positive number")
		}
		r, err := e.catalog.Find(ctx, item.Name)
		if err != nil {
			return nil, err
		}
		need := moles * item.Eq
		amount, err := reagent.FromMols(r.Substance, need)
		if err != nil {
			logger.Warnf(ctx, "convert moles to %s err: %+v", r.Name, err)
			return nil, err
		}
		resp.Results = append(resp.Results, core.ResultResp{
			Name:   r.Name,
			Amount: amount,
			Unit:   r.Unit(),
			Eq:     item.Eq,
			Moles:  need,
		})
	}
	resp.Report = core.Report(resp)

	return resp, nil
}
