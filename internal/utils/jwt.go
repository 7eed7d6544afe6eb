package utils

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/RXAliman/scrunch/config"
	"github.com/RXAliman/scrunch/internal/infra/cache"
)

// SessionCookie carries the signed session token between requests.
const SessionCookie = "scrunch_session"

// GenerateToken mints a session token for a freshly authenticated
// account. The jti exists so signout can blacklist this exact token.
func GenerateToken(cfg *config.Config, accountID uint) (string, error) {
	claims := jwt.MapClaims{
		"account_id": strconv.FormatUint(uint64(accountID), 10),
		"jti":        uuid.NewString(),
		"exp":        time.Now().Add(cfg.SessionExpiration).Unix(),
		"iat":        time.Now().Unix(),
		"iss":        cfg.SessionIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecretKey))
}

func ValidateToken(cfg *config.Config, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.SessionSecretKey), nil
	})
}

// AccountIDFromToken extracts the account ID from a validated token.
func AccountIDFromToken(token *jwt.Token) (uint, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}
	idStr, ok := claims["account_id"].(string)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return uint(id), nil
}

// IsTokenBlacklisted reports whether signout already revoked this
// token. A Redis failure is returned so the caller can decide whether
// to degrade.
func IsTokenBlacklisted(ctx context.Context, c *cache.RedisCache, tokenString string) (bool, error) {
	jti, ok := tokenJTI(tokenString)
	if !ok {
		return false, nil
	}
	return c.Exists(ctx, "blacklist:"+jti)
}

// AddTokenToBlacklist revokes a token until its natural expiry.
func AddTokenToBlacklist(ctx context.Context, c *cache.RedisCache, tokenString string, expiration time.Duration) error {
	jti, ok := tokenJTI(tokenString)
	if !ok {
		return nil
	}
	return c.Set(ctx, "blacklist:"+jti, "1", expiration)
}

func tokenJTI(tokenString string) (string, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", false
	}
	jti, ok := claims["jti"].(string)
	return jti, ok && jti != ""
}
