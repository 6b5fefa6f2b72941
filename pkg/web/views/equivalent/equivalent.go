package equivalent

import (
	"github.com/gin-gonic/gin"
	"github.com/scienceol/equivalents/pkg/common"
	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/core/equivalent"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
)

type Handle struct {
	eService equivalent.Service
}

func NewEquivalentHandle(svc equivalent.Service) *Handle {
	return &Handle{eService: svc}
}

func (h *Handle) Calculate(ctx *gin.Context) {
	req := &equivalent.CalculateReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Warnf(ctx, "parse Calculate param err: %+v", err)
		common.ReplyErr(ctx, code.ParamErr.WithErr(err))
		return
	}
	resp, err := h.eService.Calculate(ctx, req)
	common.Reply(ctx, err, resp)
}
