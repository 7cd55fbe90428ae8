package forms

import (
	"net/url"
	"strconv"
	"strings"
)

// PostData is a validated post submission.
type PostData struct {
	Text string `form:"text" validate:"required"`
	// GroupID is nil when no group was chosen.
	GroupID *uint `form:"group" validate:"omitempty,gt=0"`
	// ClearImage is set when the author asked to drop the current image.
	ClearImage bool `form:"image-clear"`
}

// ValidatePost binds text, group and image-clear from a submitted post form.
// Whether the group exists is left to the caller.
func ValidatePost(values url.Values) Result[PostData] {
	res := newResult[PostData](values)
	res.Data.Text = strings.TrimSpace(values.Get("text"))
	res.Data.ClearImage = values.Get("image-clear") != ""

	if raw := strings.TrimSpace(values.Get("group")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			res.Errors.Add("group", "Select a valid choice.")
		} else {
			gid := uint(id)
			res.Data.GroupID = &gid
		}
	}

	check(res.Data, res.Errors)
	return res
}
