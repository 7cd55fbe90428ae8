package forms

import (
	"net/url"
	"strings"
)

// CommentData is a validated comment submission.
type CommentData struct {
	Text string `form:"text" validate:"required"`
}

// ValidateComment binds the comment text. Post and author come from the request context.
func ValidateComment(values url.Values) Result[CommentData] {
	res := newResult[CommentData](values)
	res.Data.Text = strings.TrimSpace(values.Get("text"))
	check(res.Data, res.Errors)
	return res
}
