package server

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chauanphu/xdoc-iu/internal/condition"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
)

//go:embed web
var webFS embed.FS

var templates = template.Must(template.New("").ParseFS(webFS, "web/templates/*.html"))

type fieldView struct {
	Name    string
	Label   string
	Unit    string
	Hint    string
	Numeric bool
	Key     bool
	Choices []choiceView
}

type choiceView struct {
	Value string
	Label string
}

type conditionLink struct {
	Name  string
	Title string
}

type formView struct {
	Name     string
	Title    string
	Fields   []fieldView
	Sections string
}

func mountViews(router *gin.Engine, msg *i18n.Printer) {
	router.SetHTMLTemplate(templates)

	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(static))

	router.GET("/", func(c *gin.Context) {
		links := []conditionLink{}
		for _, d := range condition.All() {
			links = append(links, conditionLink{Name: d.Name, Title: msg.Label(d.Title)})
		}
		c.HTML(http.StatusOK, "index.html", gin.H{"Conditions": links})
	})
	router.GET("/diagnosis/:condition", func(c *gin.Context) {
		d, ok := condition.Lookup(c.Param("condition"))
		if !ok {
			c.String(http.StatusNotFound, "not found")
			return
		}
		c.HTML(http.StatusOK, "diagnosis.html", newFormView(d, msg))
	})
}

func newFormView(d condition.Descriptor, msg *i18n.Printer) formView {
	keys := make(map[string]bool, len(d.KeyFields))
	for _, k := range d.KeyFields {
		keys[k] = true
	}

	fields := make([]fieldView, 0, len(d.Fields))
	for _, f := range d.Fields {
		choices := make([]choiceView, 0, len(f.Choices))
		for _, o := range f.Choices {
			choices = append(choices, choiceView{Value: o.Value, Label: msg.Label(o.Label)})
		}
		fields = append(fields, fieldView{
			Name:    f.Name,
			Label:   msg.Label(f.Label),
			Unit:    f.Unit,
			Hint:    msg.Label(f.Hint),
			Numeric: f.Kind == condition.Numeric,
			Key:     keys[f.Name],
			Choices: choices,
		})
	}

	sections, _ := json.Marshal(d.Sections)
	return formView{
		Name:     d.Name,
		Title:    msg.Label(d.Title),
		Fields:   fields,
		Sections: string(sections),
	}
}
