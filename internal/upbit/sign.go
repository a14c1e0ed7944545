package upbit

import (
	"crypto/sha512"
	"encoding/hex"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// authToken 为一次请求生成Bearer token
// token绑定本次请求的参数哈希，nonce每次都是新的uuid，复用会被重放
func (c *Client) authToken(queryString string) (string, error) {
	claims := jwt.MapClaims{
		"access_key": c.accessKey,
		"nonce":      uuid.NewString(),
	}
	if queryString != "" {
		hash := sha512.Sum512([]byte(queryString))
		claims["query_hash"] = hex.EncodeToString(hash[:])
		claims["query_hash_alg"] = "SHA512"
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(c.secretKey))
}
