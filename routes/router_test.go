package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/repository"
	"github.com/cppla/yatube/utils"
)

// smallGIF is a valid 1x1 GIF image.
var smallGIF = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

type testApp struct {
	t      *testing.T
	cfg    config.AppConfig
	store  *repository.Store
	cache  *utils.MemoryCache
	media  *utils.MediaStorage
	now    time.Time
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	cfg := config.AppConfig{
		GinMode:            "test",
		JWTSecret:          "test-secret",
		SessionCookie:      "yatube_session",
		SessionTTLHours:    1,
		DBDriver:           "sqlite",
		DatabaseURI:        filepath.Join(dir, "test.db"),
		IndexCacheSeconds:  20,
		PostsPerPage:       10,
		PostTitleLength:    15,
		RateLimitPerMinute: 10000,
		AllowedOrigins:     []string{"*"},
		LogLevel:           "silent",
	}
	db, err := config.InitDatabase(cfg, models.All()...)
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	app := &testApp{t: t, cfg: cfg, store: repository.New(db), now: time.Now()}
	app.cache = utils.NewMemoryCache(func() time.Time { return app.now })
	app.media = utils.NewMediaStorage(filepath.Join(dir, "media"), "/media", 1)
	app.router, err = SetupRouter(cfg, app.store, app.cache, app.media)
	if err != nil {
		t.Fatalf("setup router: %v", err)
	}
	return app
}

func (a *testApp) user(name string) *models.User {
	a.t.Helper()
	hash, err := utils.HashPassword("pass-" + name)
	if err != nil {
		a.t.Fatalf("hash: %v", err)
	}
	u := &models.User{Username: name, PasswordHash: hash}
	if err := a.store.Users.Create(context.Background(), u); err != nil {
		a.t.Fatalf("create user: %v", err)
	}
	return u
}

func (a *testApp) group(slug string) *models.Group {
	a.t.Helper()
	g := &models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	if err := a.store.Groups.Create(context.Background(), g); err != nil {
		a.t.Fatalf("create group: %v", err)
	}
	return g
}

func (a *testApp) post(author *models.User, text string) *models.Post {
	a.t.Helper()
	p := &models.Post{Text: text, AuthorID: author.ID}
	if err := a.store.Posts.Create(context.Background(), p); err != nil {
		a.t.Fatalf("create post: %v", err)
	}
	return p
}

func (a *testApp) postCount() int64 {
	a.t.Helper()
	n, err := a.store.Posts.Count(context.Background(), repository.PostFilter{})
	if err != nil {
		a.t.Fatalf("count posts: %v", err)
	}
	return n
}

func (a *testApp) do(req *http.Request, as *models.User) *httptest.ResponseRecorder {
	a.t.Helper()
	if as != nil {
		token, err := utils.IssueSession(a.cfg.JWTSecret, as.ID, as.Username, time.Hour)
		if err != nil {
			a.t.Fatalf("issue session: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: a.cfg.SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, as *models.User) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), as)
}

func (a *testApp) postForm(path string, values url.Values, as *models.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, as)
}

func (a *testApp) postMultipart(path string, values url.Values, image []byte, as *models.User) *httptest.ResponseRecorder {
	a.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, vs := range values {
		for _, v := range vs {
			_ = mw.WriteField(k, v)
		}
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", "small.gif")
		if err != nil {
			a.t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write(image)
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req, as)
}

func expectRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func postPath(p *models.Post, suffix string) string {
	return "/posts/" + strconv.FormatUint(uint64(p.ID), 10) + "/" + suffix
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)
	leo := app.user("leo")
	cats := app.group("cats")
	p := &models.Post{Text: "a post about cats", AuthorID: leo.ID, GroupID: &cats.ID}
	if err := app.store.Posts.Create(context.Background(), p); err != nil {
		t.Fatalf("create post: %v", err)
	}

	cases := []struct {
		path string
		code int
		want string
	}{
		{"/", http.StatusOK, "a post about cats"},
		{"/group/cats/", http.StatusOK, "Group cats"},
		{"/group/dogs/", http.StatusNotFound, ""},
		{"/profile/leo/", http.StatusOK, "All posts of leo"},
		{"/profile/ghost/", http.StatusNotFound, ""},
		{postPath(p, ""), http.StatusOK, "Posts by this author: 1"},
		{"/posts/9999/", http.StatusNotFound, ""},
		{"/posts/abc/", http.StatusNotFound, ""},
		{"/unexisting_page/", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		w := app.get(tc.path, nil)
		if w.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.code, w.Code)
		}
		if tc.want != "" && !strings.Contains(w.Body.String(), tc.want) {
			t.Fatalf("%s: body missing %q", tc.path, tc.want)
		}
	}
}

func TestIndexPagination(t *testing.T) {
	app := newTestApp(t)
	leo := app.user("leo")
	for i := 0; i < 13; i++ {
		app.post(leo, fmt.Sprintf("post number %d", i))
	}

	cases := map[string]int{
		"/":          10,
		"/?page=2":   3,
		"/?page=99":  3,
		"/?page=abc": 10,
	}
	for path, want := range cases {
		w := app.get(path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if got := strings.Count(w.Body.String(), ">details</a>"); got != want {
			t.Fatalf("%s: expected %d posts, got %d", path, want, got)
		}
	}
}

func TestIndexCacheServesStaleResponse(t *testing.T) {
	app := newTestApp(t)
	leo := app.user("leo")
	p := app.post(leo, "cached text")

	first := app.get("/", nil).Body.String()
	if !strings.Contains(first, "cached text") {
		t.Fatalf("expected post on index")
	}
	if err := app.store.Posts.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if second := app.get("/", nil).Body.String(); second != first {
		t.Fatalf("expected cached index to be served unchanged")
	}

	if err := app.cache.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if third := app.get("/", nil).Body.String(); third == first {
		t.Fatalf("expected fresh index after clearing the cache")
	}

	app.post(leo, "written later")
	if strings.Contains(app.get("/", nil).Body.String(), "written later") {
		t.Fatalf("new post must not appear before the cache expires")
	}
	app.now = app.now.Add(21 * time.Second)
	if !strings.Contains(app.get("/", nil).Body.String(), "written later") {
		t.Fatalf("expected new post after the cache expired")
	}
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)
	leo := app.user("leo")
	p := app.post(leo, "text")

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/create/"},
		{http.MethodPost, "/create/"},
		{http.MethodGet, postPath(p, "edit/")},
		{http.MethodPost, postPath(p, "comment/")},
		{http.MethodGet, "/follow/"},
		{http.MethodGet, "/profile/leo/follow/"},
		{http.MethodGet, "/profile/leo/unfollow/"},
	}
	for _, tc := range cases {
		var w *httptest.ResponseRecorder
		if tc.method == http.MethodPost {
			w = app.postForm(tc.path, url.Values{"text": {"anon"}}, nil)
		} else {
			w = app.get(tc.path, nil)
		}
		expectRedirect(t, w, "/auth/login/?next="+url.QueryEscape(tc.path))
	}
	if n := app.postCount(); n != 1 {
		t.Fatalf("anonymous requests must not write, got %d posts", n)
	}
	if n, _ := app.store.Comments.Count(context.Background()); n != 0 {
		t.Fatalf("anonymous requests must not write comments, got %d", n)
	}
}

func TestCreatePostForcesAuthor(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")
	bob := app.user("bob")
	cats := app.group("cats")

	if w := app.get("/create/", alice); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Group cats") {
		t.Fatalf("expected create form with groups, got %d", w.Code)
	}

	before := app.postCount()
	w := app.postForm("/create/", url.Values{
		"text":   {"my new post"},
		"group":  {strconv.FormatUint(uint64(cats.ID), 10)},
		"author": {strconv.FormatUint(uint64(bob.ID), 10)},
	}, alice)
	expectRedirect(t, w, "/profile/alice/")
	if after := app.postCount(); after != before+1 {
		t.Fatalf("expected one new post, got %d -> %d", before, after)
	}

	page, err := app.store.Posts.Page(context.Background(), repository.PostFilter{}, "1", 10)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	created := page.Items[0]
	if created.AuthorID != alice.ID || created.Text != "my new post" {
		t.Fatalf("unexpected post %+v", created)
	}
	if created.GroupID == nil || *created.GroupID != cats.ID {
		t.Fatalf("expected group %d, got %v", cats.ID, created.GroupID)
	}
	if created.PubDate.IsZero() {
		t.Fatalf("expected server side pub date")
	}
}

func TestCreatePostInvalidRerenders(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")

	cases := []struct {
		name   string
		values url.Values
		want   string
	}{
		{"empty text", url.Values{"text": {"   "}}, "This field is required."},
		{"unknown group", url.Values{"text": {"ok"}, "group": {"999"}}, "Select a valid choice."},
		{"bad group", url.Values{"text": {"ok"}, "group": {"cats"}}, "Select a valid choice."},
	}
	for _, tc := range cases {
		w := app.postForm("/create/", tc.values, alice)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected form re-render, got %d", tc.name, w.Code)
		}
		if !strings.Contains(w.Body.String(), tc.want) {
			t.Fatalf("%s: body missing %q", tc.name, tc.want)
		}
	}
	if n := app.postCount(); n != 0 {
		t.Fatalf("invalid forms must not create posts, got %d", n)
	}
}

func TestCreatePostWithImage(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")

	w := app.postMultipart("/create/", url.Values{"text": {"with picture"}}, smallGIF, alice)
	expectRedirect(t, w, "/profile/alice/")

	page, err := app.store.Posts.Page(context.Background(), repository.PostFilter{}, "1", 10)
	if err != nil || len(page.Items) != 1 {
		t.Fatalf("expected one post, err=%v", err)
	}
	post := page.Items[0]
	if !strings.HasPrefix(post.Image, "posts/") {
		t.Fatalf("expected stored image, got %q", post.Image)
	}
	if _, err := os.Stat(filepath.Join(app.media.Root, filepath.FromSlash(post.Image))); err != nil {
		t.Fatalf("image file missing: %v", err)
	}

	for _, path := range []string{"/", "/profile/alice/", postPath(&post, "")} {
		if body := app.get(path, nil).Body.String(); !strings.Contains(body, app.media.URLFor(post.Image)) {
			t.Fatalf("%s: expected image url in page", path)
		}
	}
	if w := app.get(app.media.URLFor(post.Image), nil); w.Code != http.StatusOK {
		t.Fatalf("expected media to be served, got %d", w.Code)
	}
}

func TestCreatePostRejectsNonImage(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")

	w := app.postMultipart("/create/", url.Values{"text": {"not a picture"}}, []byte("plain text file"), alice)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Upload a valid image.") {
		t.Fatalf("expected image error, got %d", w.Code)
	}
	if n := app.postCount(); n != 0 {
		t.Fatalf("expected no post, got %d", n)
	}
}

func TestEditByNonAuthorIsNoop(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")
	bob := app.user("bob")
	p := app.post(alice, "original")

	expectRedirect(t, app.get(postPath(p, "edit/"), bob), postPath(p, ""))
	expectRedirect(t, app.postForm(postPath(p, "edit/"), url.Values{"text": {"hijacked"}}, bob), postPath(p, ""))

	got, err := app.store.Posts.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != "original" || got.AuthorID != alice.ID {
		t.Fatalf("post changed by non-author: %+v", got)
	}
}

func TestEditByAuthor(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")
	cats := app.group("cats")
	p := app.post(alice, "original")
	before, err := app.store.Posts.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	w := app.get(postPath(p, "edit/"), alice)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "original") {
		t.Fatalf("expected bound edit form, got %d", w.Code)
	}

	w = app.postForm(postPath(p, "edit/"), url.Values{"text": {""}}, alice)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "This field is required.") {
		t.Fatalf("expected re-rendered form, got %d", w.Code)
	}

	w = app.postForm(postPath(p, "edit/"), url.Values{
		"text":  {"rewritten"},
		"group": {strconv.FormatUint(uint64(cats.ID), 10)},
	}, alice)
	expectRedirect(t, w, postPath(p, ""))

	after, err := app.store.Posts.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.Text != "rewritten" || after.GroupID == nil || *after.GroupID != cats.ID {
		t.Fatalf("edit not applied: %+v", after)
	}
	if after.AuthorID != alice.ID || !after.PubDate.Equal(before.PubDate) {
		t.Fatalf("author or pub date changed: %+v", after)
	}
	if n := app.postCount(); n != 1 {
		t.Fatalf("edit must not create posts, got %d", n)
	}
}

func TestEditReplacesAndClearsImage(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")
	p := app.post(alice, "picture post")
	path := postPath(p, "edit/")

	expectRedirect(t, app.postMultipart(path, url.Values{"text": {"picture post"}}, smallGIF, alice), postPath(p, ""))
	withImage, _ := app.store.Posts.Get(context.Background(), p.ID)
	if withImage.Image == "" {
		t.Fatalf("expected image after edit")
	}

	expectRedirect(t, app.postMultipart(path, url.Values{"text": {"still here"}}, nil, alice), postPath(p, ""))
	kept, _ := app.store.Posts.Get(context.Background(), p.ID)
	if kept.Image != withImage.Image {
		t.Fatalf("image should be kept when no file is sent")
	}

	expectRedirect(t, app.postMultipart(path, url.Values{"text": {"no picture"}, "image-clear": {"on"}}, nil, alice), postPath(p, ""))
	cleared, _ := app.store.Posts.Get(context.Background(), p.ID)
	if cleared.Image != "" {
		t.Fatalf("expected image cleared, got %q", cleared.Image)
	}
	if _, err := os.Stat(filepath.Join(app.media.Root, filepath.FromSlash(withImage.Image))); !os.IsNotExist(err) {
		t.Fatalf("expected old image removed, err=%v", err)
	}
}

func TestAddComment(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")
	bob := app.user("bob")
	p := app.post(alice, "commentable")
	other := app.post(alice, "other")
	ctx := context.Background()

	w := app.postForm(postPath(p, "comment/"), url.Values{
		"text":   {"nice post"},
		"post":   {strconv.FormatUint(uint64(other.ID), 10)},
		"author": {strconv.FormatUint(uint64(alice.ID), 10)},
	}, bob)
	expectRedirect(t, w, postPath(p, ""))

	comments, err := app.store.Comments.ForPost(ctx, p.ID)
	if err != nil || len(comments) != 1 {
		t.Fatalf("expected one comment, got %d err=%v", len(comments), err)
	}
	if comments[0].AuthorID != bob.ID || comments[0].Text != "nice post" {
		t.Fatalf("unexpected comment %+v", comments[0])
	}
	if !strings.Contains(app.get(postPath(p, ""), nil).Body.String(), "nice post") {
		t.Fatalf("expected comment on post detail")
	}

	expectRedirect(t, app.postForm(postPath(p, "comment/"), url.Values{"text": {""}}, bob), postPath(p, ""))
	if n, _ := app.store.Comments.Count(ctx); n != 1 {
		t.Fatalf("invalid comment must be dropped, got %d", n)
	}

	if w := app.postForm("/posts/9999/comment/", url.Values{"text": {"lost"}}, bob); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing post, got %d", w.Code)
	}
}

func TestFollowUnfollowAndFeed(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")
	bob := app.user("bob")
	carol := app.user("carol")
	dave := app.user("dave")
	app.post(bob, "bob before follow")
	ctx := context.Background()

	if body := app.get("/profile/bob/", alice).Body.String(); !strings.Contains(body, "/profile/bob/follow/") {
		t.Fatalf("expected follow link for non follower")
	}

	expectRedirect(t, app.get("/profile/bob/follow/", alice), "/profile/bob/")
	expectRedirect(t, app.get("/profile/bob/follow/", alice), "/profile/bob/")
	if n, _ := app.store.Follows.Count(ctx); n != 1 {
		t.Fatalf("follow must be idempotent, got %d edges", n)
	}
	if body := app.get("/profile/bob/", alice).Body.String(); !strings.Contains(body, "/profile/bob/unfollow/") {
		t.Fatalf("expected unfollow link for follower")
	}
	expectRedirect(t, app.get("/profile/carol/follow/", alice), "/profile/carol/")

	app.post(bob, "bob after follow")
	app.post(carol, "carol writes")

	feed := app.get("/follow/", alice).Body.String()
	for _, want := range []string{"bob before follow", "bob after follow", "carol writes"} {
		if !strings.Contains(feed, want) {
			t.Fatalf("expected %q in feed", want)
		}
	}
	if got := strings.Count(feed, ">details</a>"); got != 3 {
		t.Fatalf("expected 3 posts in feed, got %d", got)
	}
	if body := app.get("/follow/", dave).Body.String(); strings.Count(body, ">details</a>") != 0 {
		t.Fatalf("feed of a non follower must be empty")
	}

	expectRedirect(t, app.get("/profile/bob/unfollow/", alice), "/profile/bob/")
	expectRedirect(t, app.get("/profile/bob/unfollow/", alice), "/profile/bob/")
	if ok, _ := app.store.Follows.Exists(ctx, alice.ID, bob.ID); ok {
		t.Fatalf("expected edge removed")
	}

	feed = app.get("/follow/", alice).Body.String()
	if strings.Contains(feed, "bob before follow") || strings.Contains(feed, "bob after follow") {
		t.Fatalf("unfollowed author's posts must leave the feed")
	}
	if !strings.Contains(feed, "carol writes") {
		t.Fatalf("posts of still followed authors must stay in the feed")
	}
	if got := strings.Count(feed, ">details</a>"); got != 1 {
		t.Fatalf("expected 1 post in feed after unfollow, got %d", got)
	}

	if w := app.get("/profile/ghost/follow/", alice); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown author, got %d", w.Code)
	}
}

func TestSelfFollowIgnored(t *testing.T) {
	app := newTestApp(t)
	alice := app.user("alice")

	expectRedirect(t, app.get("/profile/alice/follow/", alice), "/profile/alice/")
	if n, _ := app.store.Follows.Count(context.Background()); n != 0 {
		t.Fatalf("self follow must not create an edge, got %d", n)
	}
	if body := app.get("/profile/alice/", alice).Body.String(); strings.Contains(body, "/profile/alice/follow/") {
		t.Fatalf("no follow affordance on own profile")
	}
}

func TestLoginAndLogout(t *testing.T) {
	app := newTestApp(t)
	app.user("alice")

	if w := app.get("/auth/login/?next=/create/", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `value="/create/"`) {
		t.Fatalf("expected login form keeping next, got %d", w.Code)
	}

	w := app.postForm("/auth/login/", url.Values{"username": {"alice"}, "password": {"wrong"}, "next": {"/create/"}}, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Please enter a correct username and password.") {
		t.Fatalf("expected login error, got %d", w.Code)
	}

	w = app.postForm("/auth/login/", url.Values{"username": {"alice"}, "password": {"pass-alice"}, "next": {"/create/"}}, nil)
	expectRedirect(t, w, "/create/")
	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == app.cfg.SessionCookie {
			session = c
		}
	}
	if session == nil || session.Value == "" || !session.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", session)
	}

	req := httptest.NewRequest(http.MethodGet, "/create/", nil)
	req.AddCookie(session)
	if w := app.do(req, nil); w.Code != http.StatusOK {
		t.Fatalf("expected session to authenticate, got %d", w.Code)
	}

	w = app.postForm("/auth/login/", url.Values{"username": {"alice"}, "password": {"pass-alice"}, "next": {"//evil.example"}}, nil)
	expectRedirect(t, w, "/")

	w = app.get("/auth/logout/", nil)
	expectRedirect(t, w, "/")
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == app.cfg.SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected session cookie cleared")
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	leo := app.user("leo")
	app.post(leo, "one")

	w := app.get("/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data struct {
			Status    string `json:"status"`
			PostCount int64  `json:"post_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Status != "ok" || resp.Data.PostCount != 1 {
		t.Fatalf("unexpected health payload %s", w.Body.String())
	}
}
