package middleware

import (
	"net/http"
	"strings"

	"carsite-backend/config"
	"carsite-backend/helper"
	"carsite-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var HTTPHelper = helper.NewHTTPHelper()

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return config.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

func setActor(c *gin.Context, claims *Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
}

// AuthMiddleware guards the JSON API with a Bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HTTPHelper.SendUnauthorizedError(c, "Authorization header required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Invalid token: "+err.Error(), HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		setActor(c, claims)
		c.Next()
	}
}

// SessionMiddleware guards the web surface with the session cookie and
// redirects anonymous visitors to the login page instead of erroring.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(config.SessionCookie)
		if err != nil || tokenString == "" {
			c.Redirect(http.StatusFound, "/accounts/login/")
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			c.Redirect(http.StatusFound, "/accounts/login/")
			c.Abort()
			return
		}

		setActor(c, claims)
		c.Next()
	}
}

// RequireModerator hard-denies non-moderators; used on the API surface.
func RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get("role"); role != string(models.RoleModerator) {
			c.JSON(http.StatusForbidden, gin.H{"error": "moderator role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// NewsModeratorGuard soft-denies the news creation page: anonymous and
// non-moderator visitors alike are sent back to the news listing, never
// shown an error.
func NewsModeratorGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(config.SessionCookie)
		if err != nil || tokenString == "" {
			c.Redirect(http.StatusFound, "/news/")
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil || claims.Role != string(models.RoleModerator) {
			c.Redirect(http.StatusFound, "/news/")
			c.Abort()
			return
		}

		setActor(c, claims)
		c.Next()
	}
}

// CurrentUser rebuilds the actor from the verified claims; id and role are
// all the authorization layer needs.
func CurrentUser(c *gin.Context) *models.User {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	username, _ := c.Get("username")
	role, _ := c.Get("role")
	return &models.User{
		ID:       userID.(uint),
		Username: username.(string),
		Role:     models.UserRole(role.(string)),
	}
}
