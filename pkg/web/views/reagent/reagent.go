package reagent

import (
	"github.com/gin-gonic/gin"
	"github.com/scienceol/equivalents/pkg/common"
	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/core/reagent"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
)

type Handle struct {
	rService reagent.Service
}

func NewReagentHandle(svc reagent.Service) *Handle {
	return &Handle{rService: svc}
}

func (h *Handle) List(ctx *gin.Context) {
	list := h.rService.List(ctx)
	resp := make([]*reagent.ReagentResp, 0, len(list))
	for _, r := range list {
		resp = append(resp, reagent.NewReagentResp(r))
	}
	common.Reply(ctx, nil, resp)
}

func (h *Handle) Get(ctx *gin.Context) {
	req := &reagent.FindReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Warnf(ctx, "parse Get reagent param err: %+v", err)
		common.ReplyErr(ctx, code.ParamErr.WithErr(err))
		return
	}
	r, err := h.rService.Find(ctx, req.Name)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	common.Reply(ctx, nil, reagent.NewReagentResp(r))
}

func (h *Handle) Create(ctx *gin.Context) {
	req := &reagent.RegisterReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Warnf(ctx, "parse Create reagent param err: %+v", err)
		common.ReplyErr(ctx, code.ParamErr.WithErr(err))
		return
	}
	r, err := h.rService.Register(ctx, req)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	common.Reply(ctx, nil, reagent.NewReagentResp(r))
}

func (h *Handle) Compound(ctx *gin.Context) {
	req := &reagent.CompoundReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Warnf(ctx, "parse Compound param err: %+v", err)
		common.ReplyErr(ctx, code.ParamErr.WithErr(err))
		return
	}
	resp, err := h.rService.QueryCompound(ctx, req)
	common.Reply(ctx, err, resp)
}
