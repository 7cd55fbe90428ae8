package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/repository"
	"github.com/cppla/yatube/utils"
)

// StatsController reports service health together with content counts.
type StatsController struct {
	store *repository.Store
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(store *repository.Store) *StatsController {
	return &StatsController{store: store}
}

// Health returns status ok and the current post, comment and follow totals.
func (s *StatsController) Health(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	var postCount, commentCount, followCount int64
	var err error

	if postCount, err = s.store.Posts.Count(reqCtx, repository.PostFilter{}); err != nil {
		utils.Sugar.Warnf("health: count posts err=%v", err)
		utils.Error(ctx, http.StatusServiceUnavailable, 50300, "database unavailable")
		return
	}
	if commentCount, err = s.store.Comments.Count(reqCtx); err != nil {
		utils.Sugar.Warnf("health: count comments err=%v", err)
		commentCount = 0
	}
	if followCount, err = s.store.Follows.Count(reqCtx); err != nil {
		utils.Sugar.Warnf("health: count follows err=%v", err)
		followCount = 0
	}

	utils.Success(ctx, gin.H{
		"status":        "ok",
		"post_count":    postCount,
		"comment_count": commentCount,
		"follow_count":  followCount,
	})
}
