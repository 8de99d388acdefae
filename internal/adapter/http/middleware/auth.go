package middleware

import (
	"strings"

	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/infrastructure/auth"
	"manutencao_xpto/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
)

const actorContextKey = "actor"

// AccessClaims is the JWT payload issued by the identity service. ClientID
// and TechnicianID are set only for the matching role.
type AccessClaims struct {
	jwt.StandardClaims
	Role         entities.Role `json:"role"`
	ClientID     string        `json:"client_id,omitempty"`
	TechnicianID string        `json:"technician_id,omitempty"`
}

type AuthMiddleware struct {
	blacklist *auth.Blacklist
	jwtCfg    config.JWTConfig
}

func NewAuthMiddleware(blacklist *auth.Blacklist, jwtCfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{blacklist: blacklist, jwtCfg: jwtCfg}
}

// WithAuthCheck validates the bearer token, rejects revoked tokens and stores
// the resulting ActorContext for handlers. When roles are given, actors with
// any other role get 403 before the handler runs.
func (am *AuthMiddleware) WithAuthCheck(allowedRoles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("Authorization")
		if tokenStr == "" {
			c.AbortWithStatus(401)
			return
		}
		tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")

		if am.blacklist != nil {
			revoked, err := am.blacklist.IsBlacklisted(c.Request.Context(), tokenStr)
			if err != nil {
				log.Errorf("[auth][middleware] blacklist lookup failed: %v", err)
				c.AbortWithStatus(401)
				return
			}
			if revoked {
				c.AbortWithStatus(401)
				return
			}
		}

		token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != am.jwtCfg.SigningMethod {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(am.jwtCfg.Secret), nil
		})
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		claims, ok := token.Claims.(*AccessClaims)
		if !ok || !token.Valid || !claims.Role.Valid() {
			c.AbortWithStatus(401)
			return
		}

		if len(allowedRoles) > 0 && !roleAllowed(claims.Role, allowedRoles) {
			c.AbortWithStatus(403)
			return
		}

		c.Set(actorContextKey, entities.ActorContext{
			UserID:       claims.Subject,
			Role:         claims.Role,
			ClientID:     claims.ClientID,
			TechnicianID: claims.TechnicianID,
		})

		c.Next()
	}
}

func roleAllowed(role entities.Role, allowed []entities.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// ActorFromContext returns the authenticated actor stored by WithAuthCheck.
func ActorFromContext(c *gin.Context) (entities.ActorContext, bool) {
	v, exists := c.Get(actorContextKey)
	if !exists {
		return entities.ActorContext{}, false
	}
	actor, ok := v.(entities.ActorContext)
	return actor, ok
}
