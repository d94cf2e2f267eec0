package middleware

import (
	"net/http"
	"strings"

	userRepo "careerpath/database/repository/user"
	"careerpath/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthUserMiddleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

func unauthorized(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusUnauthorized, message)
}

// JWTAuthUserMiddleware accepts a Bearer token only if it is the user's
// current session token. The active token hash is looked up in the auth
// cache first and in Mongo on a miss; authCache may be nil.
func JWTAuthUserMiddleware(repo userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Insufficient authorization")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			unauthorized(c, "Insufficient authorization")
			return
		}

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}
		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			switch {
			case err == nil && cachedHash == computedHash:
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				authorize(c, userID, role)
				return
			case err == nil:
				unauthorized(c, "Token mismatch")
				return
			case err != redis.Nil:
				logger.Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		usr, err := repo.GetByIDWithProjection(ctx, userID, bson.M{"id": 1, "role": 1, "tokenHash": 1})
		if err != nil || usr == nil {
			unauthorized(c, "Authentication error")
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != computedHash {
			unauthorized(c, "Token mismatch")
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}
		if usr.Role != "" {
			role = string(usr.Role)
		}
		authorize(c, userID, role)
	}
}

func authorize(c *gin.Context, userID, role string) {
	c.Set(ContextUserID, userID)
	c.Set(ContextRole, role)
	c.Next()
}
