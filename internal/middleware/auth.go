package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTKey is set from config at startup, before the router is built.
var JWTKey = []byte("dev-secret")

func SetJWTKey(secret string) {
	if secret != "" {
		JWTKey = []byte(secret)
	}
}

type Claims struct {
	UserID int    `json:"user_id"`
	Status string `json:"user_status"`
	jwt.RegisteredClaims
}

func parseToken(c *gin.Context) (*Claims, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return nil, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	tokenStr := strings.TrimSpace(parts[1])
	if tokenStr == "" {
		return nil, false
	}

	// expiry with a small leeway
	const leeway = 2 * time.Minute

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// accept HMAC only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return JWTKey, nil
	}, jwt.WithLeeway(leeway), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		claims, ok := parseToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("user_status", claims.Status)
		c.Next()
	}
}

// OptionalAuthMiddleware binds the caller identity when a valid token is
// present but lets anonymous requests through; feed reads are public and
// anonymous callers simply see me_liked=false.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseToken(c); ok {
			c.Set("user_id", claims.UserID)
			c.Set("user_status", claims.Status)
		}
		c.Next()
	}
}
