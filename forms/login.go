package forms

import (
	"net/url"
	"strings"
)

// LoginData holds submitted credentials.
type LoginData struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
}

func ValidateLogin(values url.Values) Result[LoginData] {
	res := newResult[LoginData](values)
	res.Data.Username = strings.TrimSpace(values.Get("username"))
	res.Data.Password = values.Get("password")
	check(res.Data, res.Errors)
	return res
}
