package middleware

import (
	"net/http"
	"strings"
	"time"

	userRepo "nestview/database/repository/user"
	"nestview/models"
	"nestview/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// IdentityKey is the gin context key the authenticated caller is stored under.
const IdentityKey = "identity"

// JWTAuth validates the bearer token and puts the caller's Identity in the
// request context. Token hashes are checked against the Redis auth cache
// first; a cache miss falls back to a user lookup and repopulates the cache.
func JWTAuth(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + identity.ID
		ctx := c.Request.Context()

		authCache := utils.GetAuthCacheClient()
		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash != computedHash {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token mismatch"})
				return
			}
			_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
			c.Set(IdentityKey, identity)
			c.Next()
			return
		}
		if err != redis.Nil {
			zap.L().Warn("auth cache lookup failed, falling back to database", zap.Error(err))
		}

		// Cache miss: the token signature already checked out, so it is
		// enough to confirm the account still exists and matches the role
		// claim.
		account, err := users.GetByID(ctx, identity.ID)
		if err != nil || account == nil || account.Role != identity.Role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication error"})
			return
		}
		_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// CallerIdentity retrieves the authenticated caller set by JWTAuth.
func CallerIdentity(c *gin.Context) (models.Identity, bool) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := val.(models.Identity)
	return identity, ok
}
