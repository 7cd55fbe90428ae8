package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/forms"
	"github.com/cppla/yatube/repository"
	"github.com/cppla/yatube/utils"
)

// AuthController handles the session login and logout pages.
type AuthController struct {
	users  *repository.Users
	secret string
	cookie string
	ttl    time.Duration
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(users *repository.Users, secret, cookie string, ttl time.Duration) *AuthController {
	return &AuthController{users: users, secret: secret, cookie: cookie, ttl: ttl}
}

// LoginForm renders the login page, keeping the return path.
func (a *AuthController) LoginForm(ctx *gin.Context) {
	a.render(ctx, forms.Result[forms.LoginData]{}, ctx.Query("next"))
}

// Login verifies credentials, sets the session cookie and returns to next.
func (a *AuthController) Login(ctx *gin.Context) {
	values := formValues(ctx)
	next := values.Get("next")
	form := forms.ValidateLogin(values)
	if !form.OK() {
		a.render(ctx, form, next)
		return
	}

	user, err := a.users.ByUsername(ctx.Request.Context(), form.Data.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		fail(ctx, err)
		return
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, form.Data.Password) {
		form.Errors.Add("__all__", "Please enter a correct username and password.")
		a.render(ctx, form, next)
		return
	}

	token, err := utils.IssueSession(a.secret, user.ID, user.Username, a.ttl)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(a.cookie, token, int(a.ttl.Seconds()), "/", "", false, true)
	utils.Sugar.Infof("user logged in username=%s", user.Username)
	ctx.Redirect(http.StatusFound, safeNext(next))
}

// Logout drops the session cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(a.cookie, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/")
}

func (a *AuthController) render(ctx *gin.Context, form forms.Result[forms.LoginData], next string) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{"Form": form, "Next": next})
}

// safeNext only allows local absolute paths as a redirect target.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\\r\n") {
		return "/"
	}
	return next
}
