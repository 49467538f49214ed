package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Code string

const (
	SUCCESS Code = "SUCCESS"
	FAIL    Code = "FAIL"
)

func Response(ctx *gin.Context, code Code, data interface{}) {
	if code == FAIL {
		msg, _ := data.(string)
		ctx.JSON(http.StatusOK, gin.H{
			"Code":    code,
			"Message": msg,
			"Data":    nil,
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"Code":    code,
		"Message": nil,
		"Data":    data,
	})
}

func ResponseError(ctx *gin.Context, err error) {
	Response(ctx, FAIL, err.Error())
}

func ResponseBadRequestError(ctx *gin.Context) {
	Response(ctx, FAIL, "bad request")
}

func ResponseSuccess(ctx *gin.Context, data interface{}) {
	Response(ctx, SUCCESS, data)
}
