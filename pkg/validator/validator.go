package validator

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"upflow/internal/consts"
)

var once sync.Once

// LazyInitGinValidator 给gin自带的validator注册自定义校验规则
func LazyInitGinValidator() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// action: 交易指令只接受 BUY / SELL
		_ = v.RegisterValidation("action", func(fl validator.FieldLevel) bool {
			switch strings.ToUpper(fl.Field().String()) {
			case consts.ActionBuy, consts.ActionSell:
				return true
			}
			return false
		})
	})
}
