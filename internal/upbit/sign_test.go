package upbit

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

func newTestClient() *Client {
	return &Client{
		accessKey: "test-access",
		secretKey: "test-secret",
	}
}

func TestParamsEncodeKeepsOrder(t *testing.T) {
	params := Params{
		{"market", "KRW-ETH"},
		{"limit", "100"},
	}
	if got := params.Encode(); got != "market=KRW-ETH&limit=100" {
		t.Fatalf("Encode() = %q, want %q", got, "market=KRW-ETH&limit=100")
	}

	// value需要url编码，key顺序保持插入顺序
	params = Params{
		{"states", "done,cancel"},
		{"market", "KRW-ETH"},
	}
	if got := params.Encode(); got != "states=done%2Ccancel&market=KRW-ETH" {
		t.Fatalf("Encode() = %q, want %q", got, "states=done%2Ccancel&market=KRW-ETH")
	}

	if got := Params(nil).Encode(); got != "" {
		t.Fatalf("Encode(nil) = %q, want empty", got)
	}
}

func TestAuthTokenQueryHash(t *testing.T) {
	c := newTestClient()
	qs := "market=KRW-ETH&limit=100"

	tokenStr, err := c.authToken(qs)
	if err != nil {
		t.Fatalf("authToken() error: %v", err)
	}

	claims := parseClaims(t, tokenStr, c.secretKey)

	sum := sha512.Sum512([]byte(qs))
	wantHash := hex.EncodeToString(sum[:])
	if claims["query_hash"] != wantHash {
		t.Fatalf("query_hash = %v, want %s", claims["query_hash"], wantHash)
	}
	if claims["query_hash_alg"] != "SHA512" {
		t.Fatalf("query_hash_alg = %v, want SHA512", claims["query_hash_alg"])
	}
	if claims["access_key"] != c.accessKey {
		t.Fatalf("access_key = %v, want %s", claims["access_key"], c.accessKey)
	}
}

func TestAuthTokenEmptyQueryOmitsHash(t *testing.T) {
	c := newTestClient()
	tokenStr, err := c.authToken("")
	if err != nil {
		t.Fatalf("authToken() error: %v", err)
	}
	claims := parseClaims(t, tokenStr, c.secretKey)
	if _, ok := claims["query_hash"]; ok {
		t.Fatalf("query_hash present for empty query string")
	}
	if _, ok := claims["query_hash_alg"]; ok {
		t.Fatalf("query_hash_alg present for empty query string")
	}
}

func TestAuthTokenNonceUniquePerCall(t *testing.T) {
	c := newTestClient()
	qs := "market=KRW-ETH"

	t1, err := c.authToken(qs)
	if err != nil {
		t.Fatalf("authToken() error: %v", err)
	}
	t2, err := c.authToken(qs)
	if err != nil {
		t.Fatalf("authToken() error: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("two tokens for same params are identical, nonce not refreshed")
	}

	c1 := parseClaims(t, t1, c.secretKey)
	c2 := parseClaims(t, t2, c.secretKey)
	if c1["nonce"] == c2["nonce"] {
		t.Fatalf("nonce reused across tokens: %v", c1["nonce"])
	}
	// 除nonce以外的claims一致
	if c1["access_key"] != c2["access_key"] || c1["query_hash"] != c2["query_hash"] {
		t.Fatalf("claims differ beyond nonce: %v vs %v", c1, c2)
	}
}

// parseClaims 用密钥验证HS512签名并取出claims
func parseClaims(t *testing.T, tokenStr, secret string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS512"}))
	if err != nil {
		t.Fatalf("token parse error: %v", err)
	}
	if !token.Valid {
		t.Fatalf("token does not verify against secret")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims type = %T", token.Claims)
	}
	return claims
}
