// Package controllers holds the gin handlers behind every page.
package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/repository"
	"github.com/cppla/yatube/utils"
)

const multipartMemory = 32 << 20

// formValues parses urlencoded or multipart bodies into one value set.
func formValues(ctx *gin.Context) url.Values {
	err := ctx.Request.ParseMultipartForm(multipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		utils.Sugar.Warnf("parse form path=%s err=%v", ctx.Request.URL.Path, err)
	}
	if ctx.Request.PostForm == nil {
		return url.Values{}
	}
	return ctx.Request.PostForm
}

// paramID parses a numeric route parameter; ok is false for anything else.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// fail maps a store error to the not-found or server error page.
func fail(ctx *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.ErrorPage(ctx, http.StatusNotFound)
		return
	}
	utils.Sugar.Errorf("request failed path=%s err=%v", ctx.Request.URL.Path, err)
	utils.ErrorPage(ctx, http.StatusInternalServerError)
}

// actor returns the logged in user. Routes using it sit behind LoginRequired.
func actor(ctx *gin.Context) *models.User {
	user, _ := middleware.CurrentUser(ctx)
	return user
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postURL(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/"
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(ctx *gin.Context) {
	utils.ErrorPage(ctx, http.StatusNotFound)
}
