package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/forms"
	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/repository"
	"github.com/cppla/yatube/utils"
)

// PostController serves post listings, post detail, authoring and comments.
type PostController struct {
	store   *repository.Store
	media   *utils.MediaStorage
	perPage int
}

// NewPostController creates a new PostController instance.
func NewPostController(store *repository.Store, media *utils.MediaStorage, perPage int) *PostController {
	if perPage <= 0 {
		perPage = 10
	}
	return &PostController{store: store, media: media, perPage: perPage}
}

// Index lists every post, newest first.
func (p *PostController) Index(ctx *gin.Context) {
	page, err := p.store.Posts.Page(ctx.Request.Context(), repository.PostFilter{}, ctx.Query("page"), p.perPage)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "index.html", gin.H{"Page": page})
}

// GroupPosts lists the posts of the group named by slug.
func (p *PostController) GroupPosts(ctx *gin.Context) {
	group, err := p.store.Groups.BySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		fail(ctx, err)
		return
	}
	page, err := p.store.Posts.Page(ctx.Request.Context(), repository.PostFilter{GroupID: group.ID}, ctx.Query("page"), p.perPage)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "group_list.html", gin.H{"Group": group, "Page": page})
}

// Profile lists an author's posts and whether the viewer follows them.
func (p *PostController) Profile(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	author, err := p.store.Users.ByUsername(reqCtx, ctx.Param("username"))
	if err != nil {
		fail(ctx, err)
		return
	}
	page, err := p.store.Posts.Page(reqCtx, repository.PostFilter{AuthorID: author.ID}, ctx.Query("page"), p.perPage)
	if err != nil {
		fail(ctx, err)
		return
	}

	following, canFollow := false, false
	if viewer, ok := middleware.CurrentUser(ctx); ok && viewer.ID != author.ID {
		canFollow = true
		if following, err = p.store.Follows.Exists(reqCtx, viewer.ID, author.ID); err != nil {
			fail(ctx, err)
			return
		}
	}
	ctx.HTML(http.StatusOK, "profile.html", gin.H{
		"Author":    author,
		"Page":      page,
		"Following": following,
		"CanFollow": canFollow,
	})
}

// PostDetail shows one post with its comments and an empty comment form.
func (p *PostController) PostDetail(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		NotFound(ctx)
		return
	}
	reqCtx := ctx.Request.Context()
	post, err := p.store.Posts.Get(reqCtx, id)
	if err != nil {
		fail(ctx, err)
		return
	}
	comments, err := p.store.Comments.ForPost(reqCtx, post.ID)
	if err != nil {
		fail(ctx, err)
		return
	}
	authorPosts, err := p.store.Posts.Count(reqCtx, repository.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		fail(ctx, err)
		return
	}
	viewer, ok := middleware.CurrentUser(ctx)
	ctx.HTML(http.StatusOK, "post_detail.html", gin.H{
		"Post":        post,
		"Comments":    comments,
		"AuthorPosts": authorPosts,
		"Form":        forms.Result[forms.CommentData]{},
		"CanEdit":     ok && viewer.ID == post.AuthorID,
	})
}

// PostCreate shows the new post form and creates the post on submit.
// The author is always the logged in user.
func (p *PostController) PostCreate(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodPost {
		p.renderForm(ctx, forms.Result[forms.PostData]{}, nil)
		return
	}
	user := actor(ctx)
	form := forms.ValidatePost(formValues(ctx))
	p.checkGroup(ctx, &form)
	image := p.saveUpload(ctx, &form)
	if !form.OK() {
		p.media.Remove(image)
		p.renderForm(ctx, form, nil)
		return
	}

	post := models.Post{
		Text:     form.Data.Text,
		AuthorID: user.ID,
		GroupID:  form.Data.GroupID,
		Image:    image,
	}
	if err := p.store.Posts.Create(ctx.Request.Context(), &post); err != nil {
		p.media.Remove(image)
		fail(ctx, err)
		return
	}
	utils.Sugar.Infof("post created id=%d author=%s", post.ID, user.Username)
	ctx.Redirect(http.StatusFound, profileURL(user.Username))
}

// PostEdit lets the author rewrite text, group and image of a post.
// Anyone else is sent back to the post without changes.
func (p *PostController) PostEdit(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		NotFound(ctx)
		return
	}
	post, err := p.store.Posts.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	if post.AuthorID != actor(ctx).ID {
		ctx.Redirect(http.StatusFound, postURL(post.ID))
		return
	}

	if ctx.Request.Method != http.MethodPost {
		values := url.Values{"text": {post.Text}}
		if post.GroupID != nil {
			values.Set("group", strconv.FormatUint(uint64(*post.GroupID), 10))
		}
		p.renderForm(ctx, forms.Result[forms.PostData]{Values: values}, post)
		return
	}

	form := forms.ValidatePost(formValues(ctx))
	p.checkGroup(ctx, &form)
	image := p.saveUpload(ctx, &form)
	if !form.OK() {
		p.media.Remove(image)
		p.renderForm(ctx, form, post)
		return
	}

	previous := post.Image
	post.Text = form.Data.Text
	post.GroupID = form.Data.GroupID
	switch {
	case image != "":
		post.Image = image
	case form.Data.ClearImage:
		post.Image = ""
	}
	if err := p.store.Posts.Update(ctx.Request.Context(), post); err != nil {
		p.media.Remove(image)
		fail(ctx, err)
		return
	}
	if previous != post.Image {
		p.media.Remove(previous)
	}
	ctx.Redirect(http.StatusFound, postURL(post.ID))
}

// AddComment attaches a comment by the logged in user to a post.
// Invalid comments are dropped; the response always returns to the post.
func (p *PostController) AddComment(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		NotFound(ctx)
		return
	}
	reqCtx := ctx.Request.Context()
	post, err := p.store.Posts.Get(reqCtx, id)
	if err != nil {
		fail(ctx, err)
		return
	}

	form := forms.ValidateComment(formValues(ctx))
	if form.OK() {
		comment := models.Comment{PostID: &post.ID, AuthorID: actor(ctx).ID, Text: form.Data.Text}
		if err := p.store.Comments.Create(reqCtx, &comment); err != nil {
			utils.Sugar.Errorf("comment not saved post=%d err=%v", post.ID, err)
		}
	}
	ctx.Redirect(http.StatusFound, postURL(post.ID))
}

// checkGroup reports a group id that names no group as a field error.
func (p *PostController) checkGroup(ctx *gin.Context, form *forms.Result[forms.PostData]) {
	if form.Data.GroupID == nil {
		return
	}
	_, err := p.store.Groups.ByID(ctx.Request.Context(), *form.Data.GroupID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		form.Errors.Add("group", "Select a valid choice. That choice is not one of the available choices.")
	case err != nil:
		utils.Sugar.Errorf("group lookup id=%d err=%v", *form.Data.GroupID, err)
		form.Errors.Add("group", "Could not load the group, try again.")
	}
}

// saveUpload stores the optional image once the rest of the form is valid.
func (p *PostController) saveUpload(ctx *gin.Context, form *forms.Result[forms.PostData]) string {
	if !form.OK() {
		return ""
	}
	fh, err := ctx.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			utils.Sugar.Warnf("read upload err=%v", err)
		}
		return ""
	}
	name, err := p.media.SaveImage(fh)
	switch {
	case errors.Is(err, utils.ErrNotImage):
		form.Errors.Add("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	case errors.Is(err, utils.ErrUploadTooLarge):
		form.Errors.Add("image", "The uploaded file is too large.")
	case err != nil:
		utils.Sugar.Errorf("save upload err=%v", err)
		form.Errors.Add("image", "The image could not be saved.")
	}
	return name
}

func (p *PostController) renderForm(ctx *gin.Context, form forms.Result[forms.PostData], post *models.Post) {
	groups, err := p.store.Groups.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "create_post.html", gin.H{
		"Form":   form,
		"Groups": groups,
		"Post":   post,
		"IsEdit": post != nil,
	})
}
