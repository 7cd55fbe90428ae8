// Package templates holds the server-rendered pages.
package templates

import (
	"embed"
	"html/template"
	"strconv"
	"time"

	"github.com/cppla/yatube/utils"
)

// titled is satisfied by models.Post and *models.Post.
type titled interface {
	Title(n int) string
}

//go:embed *.html
var files embed.FS

// Load parses every page. Stored image names resolve through media and
// titleLength bounds post titles.
func Load(media *utils.MediaStorage, titleLength int) (*template.Template, error) {
	funcs := template.FuncMap{
		"linebreaks": utils.Linebreaks,
		"title": func(p titled) string {
			return p.Title(titleLength)
		},
		"media": media.URLFor,
		"date": func(t time.Time) string {
			return t.Format("02 Jan 2006 15:04")
		},
		"pages": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
		"idstr": func(id uint) string {
			return strconv.FormatUint(uint64(id), 10)
		},
	}
	return template.New("").Funcs(funcs).ParseFS(files, "*.html")
}
