package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
)

type Resp struct {
	Code  code.ErrCode `json:"code"`
	Msg   string       `json:"msg"`
	Field string       `json:"field,omitempty"`
	Data  any          `json:"data,omitempty"`
}

// HTTPStatus maps an error kind to the status code it is served with.
func HTTPStatus(err error) int {
	switch code.Of(err) {
	case code.Success:
		return http.StatusOK
	case code.ReagentNotFound, code.CompoundNotFound, code.RecordNotFound:
		return http.StatusNotFound
	case code.ParamErr, code.ValidationErr, code.InvalidQuantity:
		return http.StatusBadRequest
	case code.ReagentExist:
		return http.StatusConflict
	case code.RPCHttpErr, code.RPCHttpCodeErr:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	resp := &Resp{Code: code.Success, Msg: code.Success.String()}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

func ReplyErr(ctx *gin.Context, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf(ctx, "request %s %s err: %+v", ctx.Request.Method, ctx.Request.URL.Path, err)
	}
	ctx.AbortWithStatusJSON(status, &Resp{
		Code:  code.Of(err),
		Msg:   code.Message(err),
		Field: code.FieldOf(err),
	})
}
