package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/repository"
)

// FollowController manages subscriptions between users and the feed they produce.
type FollowController struct {
	store   *repository.Store
	perPage int
}

// NewFollowController creates a new FollowController instance.
func NewFollowController(store *repository.Store, perPage int) *FollowController {
	if perPage <= 0 {
		perPage = 10
	}
	return &FollowController{store: store, perPage: perPage}
}

// FollowIndex lists posts by the authors the logged in user follows.
func (f *FollowController) FollowIndex(ctx *gin.Context) {
	filter := repository.PostFilter{FollowedBy: actor(ctx).ID}
	page, err := f.store.Posts.Page(ctx.Request.Context(), filter, ctx.Query("page"), f.perPage)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "follow.html", gin.H{"Page": page})
}

// ProfileFollow subscribes the logged in user to an author.
// Following yourself is silently ignored.
func (f *FollowController) ProfileFollow(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	author, err := f.store.Users.ByUsername(reqCtx, ctx.Param("username"))
	if err != nil {
		fail(ctx, err)
		return
	}
	user := actor(ctx)
	if user.ID != author.ID {
		err := f.store.Follows.Follow(reqCtx, user.ID, author.ID)
		if err != nil && !errors.Is(err, models.ErrSelfFollow) {
			fail(ctx, err)
			return
		}
	}
	ctx.Redirect(http.StatusFound, profileURL(author.Username))
}

// ProfileUnfollow removes the subscription if there is one.
func (f *FollowController) ProfileUnfollow(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	author, err := f.store.Users.ByUsername(reqCtx, ctx.Param("username"))
	if err != nil {
		fail(ctx, err)
		return
	}
	if err := f.store.Follows.Unfollow(reqCtx, actor(ctx).ID, author.ID); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, profileURL(author.Username))
}
