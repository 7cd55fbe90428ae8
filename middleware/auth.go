package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

const (
	// ContextUserKey stores the authenticated *models.User inside Gin context.
	ContextUserKey = "current_user"
	// LoginURL is where anonymous actors are sent by LoginRequired.
	LoginURL = "/auth/login/"
)

// UserLookup resolves the user named by a session.
type UserLookup interface {
	ByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticate resolves the session cookie into the current user.
// Missing, invalid or stale sessions leave the request anonymous.
func Authenticate(secret, cookieName string, users UserLookup) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(cookieName)
		if err != nil || token == "" {
			ctx.Next()
			return
		}
		claims, err := utils.ParseSession(secret, token)
		if err != nil {
			utils.Sugar.Debugf("session rejected err=%v", err)
			ctx.Next()
			return
		}
		user, err := users.ByID(ctx.Request.Context(), claims.UserID)
		if err != nil {
			utils.Sugar.Debugf("session user %d not loaded err=%v", claims.UserID, err)
			ctx.Next()
			return
		}
		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

// LoginRequired redirects anonymous actors to the login page with a return path.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := CurrentUser(ctx); ok {
			ctx.Next()
			return
		}
		ctx.Redirect(http.StatusFound, LoginURL+"?next="+url.QueryEscape(ctx.Request.URL.RequestURI()))
		ctx.Abort()
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
