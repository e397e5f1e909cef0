package richtext

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

var selfClosingTags = map[string]bool{"br": true, "img": true}

// CloseTags appends closing tags for elements left open in s.
func CloseTags(s string) string {
	var open []string
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				return s
			}
			break
		}
		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !selfClosingTags[tag] {
				open = append([]string{tag}, open...)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			for i, o := range open {
				if o == tag {
					open = append(open[:i], open[i+1:]...)
					break
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString(s)
	for _, tag := range open {
		b.WriteString("</" + tag + ">")
	}
	return b.String()
}
