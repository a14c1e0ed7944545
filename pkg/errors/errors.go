package errors

import (
	"fmt"

	"upflow/pkg/errors/ecode"
)

// Err 携带业务错误码的错误，响应层通过DecodeErr还原 code/message
type Err struct {
	Code    int
	Message string
	Err     error
}

func (e *Err) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code: %d, message: %s, error: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("code: %d, message: %s", e.Code, e.Message)
}

func (e *Err) Unwrap() error {
	return e.Err
}

func New(code int, message string) *Err {
	return &Err{Code: code, Message: message}
}

// Wrap 包装底层错误并附加错误码
func Wrap(err error, code int, message string) *Err {
	return &Err{Code: code, Message: message, Err: err}
}

// DecodeErr 解出错误码和提示信息，nil表示成功
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, "OK"
	}
	if e, ok := err.(*Err); ok {
		return e.Code, e.Message
	}
	return ecode.InternalErr, err.Error()
}
