// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims 身分提供者簽發的 JWT 負載內容；Subject 即使用者 ID
type CustomClaims struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	ImageURL string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// UserID 回傳 token 的 subject
func (c *CustomClaims) UserID() string {
	return c.Subject
}

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// IssueAccessToken 以 HS256 簽發 token，供開發與測試使用
func IssueAccessToken(secret string, claims CustomClaims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	if claims.Subject == "" {
		return "", errors.New("subject is required")
	}
	now := timeNow()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAccessToken 驗證並解析 JWT 令牌
func VerifyAccessToken(secret, tokenString string) (*CustomClaims, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
