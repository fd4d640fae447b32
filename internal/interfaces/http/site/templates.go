package site

import (
	"embed"
	"html/template"
	"strconv"
	"strings"

	"github.com/livinglux/coliving-site/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"icon": iconGlyph,
	"euro": func(v *int) string {
		if v == nil {
			return "On request"
		}
		return "€" + strconv.Itoa(*v)
	},
	"lower": strings.ToLower,
}

var pages = map[string]*template.Template{
	"home":     mustParse("home.html"),
	"faq":      mustParse("faq.html"),
	"property": mustParse("property.html"),
	"notfound": mustParse("notfound.html"),
}

func mustParse(page string) *template.Template {
	return template.Must(template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page))
}

var glyphs = map[catalog.Icon]string{
	catalog.IconHeart:          "♥",
	catalog.IconKey:            "⚿",
	catalog.IconMapPin:         "⌖",
	catalog.IconCalendar:       "▦",
	catalog.IconStar:           "★",
	catalog.IconZap:            "ϟ",
	catalog.IconHeartHandshake: "❦",
	catalog.IconMoon:           "☾",
	catalog.IconTrash:          "♻",
	catalog.IconCigaretteOff:   "⊘",
	catalog.IconBus:            "⛟",
	catalog.IconBriefcase:      "⌂",
	catalog.IconClock:          "◷",
	catalog.IconTrees:          "♣",
	catalog.IconTrain:          "⇌",
}

// iconGlyph maps a content icon to the character the pages draw for it.
func iconGlyph(i catalog.Icon) string {
	if g, ok := glyphs[i]; ok {
		return g
	}
	return "•"
}
