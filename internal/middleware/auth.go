package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/model"
	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/service"

	"github.com/gin-gonic/gin"
)

// IdentityKey — ключ, под которым личность пользователя сохраняется в контексте gin.
const IdentityKey = "user"

// IdentityResolver разрешает bearer-токен в личность пользователя.
type IdentityResolver interface {
	ResolveToken(token string) (*model.User, bool)
}

// TrailGetter возвращает маршрут по идентификатору для проверки владельца.
type TrailGetter interface {
	GetTrail(id int) (*model.Trail, error)
}

// bearerToken извлекает токен из заголовка Authorization с префиксом "Bearer ".
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// TokenRequired проверяет наличие и действительность bearer-токена.
// При отсутствии или недействительности токена запрос обрывается с 401,
// до бизнес-логики и хранилища дело не доходит. Личность пользователя
// кладется в контекст запроса под ключом IdentityKey.
func TokenRequired(auth IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is missing!"})
			return
		}
		user, ok := auth.ResolveToken(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is invalid!"})
			return
		}
		c.Set(IdentityKey, user)
		c.Next()
	}
}

// OwnerRequired пропускает запрос дальше только для владельца маршрута.
// Порядок проверок фиксирован: сначала существование маршрута (404), затем
// владение (403). Личность разрешается из токена заново, независимо от
// TokenRequired, чтобы обе проверки оставались самостоятельными.
func OwnerRequired(auth IdentityResolver, trails TrailGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Trail not found!"})
			return
		}
		trail, err := trails.GetTrail(id)
		if err != nil {
			if errors.Is(err, service.ErrTrailNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Trail not found!"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		user, ok := auth.ResolveToken(bearerToken(c))
		if !ok || user.ID != trail.OwnerUserID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You are not the owner of this trail!"})
			return
		}
		c.Next()
	}
}
