package execution

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"upflow/pkg/errors"
	"upflow/pkg/errors/ecode"
	"upflow/pkg/recorder"
	"upflow/pkg/response"
)

type Handler struct {
	rec *recorder.JSONFileRecorder
}

func NewHandler(rec *recorder.JSONFileRecorder) *Handler {
	return &Handler{rec: rec}
}

// ExecutionsGetRecent 查询最近的执行记录，?limit=20
func (h *Handler) ExecutionsGetRecent() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit := cast.ToInt(ctx.DefaultQuery("limit", "20"))
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		records, err := h.rec.ReadRecent(limit)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.InternalErr, "read execution records failed"), nil)
			return
		}
		response.JSON(ctx, nil, records)
	}
}
