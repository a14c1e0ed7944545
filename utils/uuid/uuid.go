package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// GenUUID16 生成16位短id，用于请求链路追踪
func GenUUID16() string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return s[:16]
}
