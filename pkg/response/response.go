package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"upflow/internal/consts"
	"upflow/pkg/errors"
	"upflow/pkg/errors/ecode"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据
}

// 发送json格式数据
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	// 失败统一返回http 400，具体原因看code/message
	var httpStatus int
	if code != ecode.Success {
		httpStatus = http.StatusBadRequest
	} else {
		httpStatus = http.StatusOK
	}
	c.JSON(httpStatus, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// webhook签名缺失或不合法，返回401
func RequireAuthErr(c *gin.Context, err error) {
	var message string
	if err != nil {
		message = err.Error()
	} else {
		message = "unknow error."
	}
	c.JSON(http.StatusUnauthorized, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.SignatureErr,
		Message:   "invalid signature:" + message,
		Data:      nil,
	})
}

// 请求频繁，返回429
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.BadRequestErr,
		Message:   "The request is too frequent. Please try again later.",
		Data:      nil,
	})
}
