package richtext

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Filter levels for rich text content.
const (
	FilterLevelNone = 1
	FilterLevelLow  = 2
	FilterLevelHigh = 3
)

var AllowedTags = []string{
	"a", "abbr", "acronym", "address", "area", "article", "aside", "b", "bdo",
	"big", "blockquote", "br", "button", "caption", "center", "cite", "code",
	"col", "colgroup", "dd", "del", "dfn", "dir", "div", "dl", "dt", "em",
	"fieldset", "figure", "font", "footer", "form", "h1", "h2", "h3", "h4",
	"h5", "h6", "header", "hr", "i", "img", "input", "ins", "kbd", "label",
	"legend", "li", "map", "men", "nav", "ol", "optgroup", "option", "p",
	"pre", "q", "s", "samp", "section", "select", "small", "span", "strike",
	"strong", "sub", "sup", "table", "tbody", "td", "textarea", "tfoot", "th",
	"thead", "tr", "tt", "u", "ul", "var", "wbr",
}

var AllowedAttributes = []string{
	"abbr", "accept", "accept-charset", "accesskey", "action", "align", "alt",
	"axis", "border", "cellpadding", "cellspacing", "char", "charoff",
	"charset", "checked", "cite", "class", "clear", "cols", "colspan",
	"color", "compact", "coords", "datetime", "dir", "disabled", "enctype",
	"for", "frame", "headers", "height", "href", "hreflang", "hspace", "id",
	"ismap", "label", "lang", "longdesc", "maxlength", "media", "method",
	"multiple", "name", "nohref", "noshade", "nowrap", "prompt", "readonly",
	"rel", "rev", "rows", "rowspan", "rules", "scope", "selected", "shape",
	"size", "span", "src", "start", "summary", "tabindex", "target", "title",
	"type", "usemap", "valign", "value", "vspace", "width", "xml:lang",
}

var AllowedStyles = []string{
	"border", "display", "float", "list-style-type", "margin",
	"margin-bottom", "margin-left", "margin-right", "margin-top",
	"padding-left", "text-align", "text-decoration", "vertical-align",
}

// Embeds permitted only at the low filter level.
var (
	LowFilterTags  = []string{"iframe", "embed", "video", "param", "source", "object"}
	LowFilterAttrs = []string{"allowfullscreen", "autostart", "loop", "hidden",
		"playcount", "volume", "controls", "data", "classid"}
)

var (
	policiesOnce sync.Once
	lowPolicy    *bluemonday.Policy
	highPolicy   *bluemonday.Policy
)

func buildPolicy(low bool) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.AllowAttrs(AllowedAttributes...).Globally()
	p.AllowStyles(AllowedStyles...).Globally()
	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.AllowRelativeURLs(true)
	p.AllowComments()
	if low {
		p.AllowElements(LowFilterTags...)
		p.AllowAttrs(LowFilterAttrs...).Globally()
	}
	return p
}

// Escape sanitizes html for the given filter level. Disallowed tags are
// stripped while their text is kept.
func Escape(html string, level int) string {
	if level == FilterLevelNone {
		return html
	}
	policiesOnce.Do(func() {
		lowPolicy = buildPolicy(true)
		highPolicy = buildPolicy(false)
	})
	if level == FilterLevelLow {
		return lowPolicy.Sanitize(html)
	}
	return highPolicy.Sanitize(html)
}
