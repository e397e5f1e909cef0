package utils

import (
	"path"
	"regexp"
	"strings"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes markup, leaving text content.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, " ")
}

// FirstWords returns the first n whitespace-separated words of s.
func FirstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// TitleFromFilename turns "my_beach-photo.jpg" into "My Beach Photo".
func TitleFromFilename(name string) string {
	name = path.Base(name)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, "'", "")

	runes := []rune(name)
	for i, r := range runes {
		if strings.ContainsRune(asciiPunctuation, r) {
			runes[i] = ' '
		}
	}
	for i, r := range runes {
		if i == 0 || runes[i-1] == ' ' {
			runes[i] = []rune(strings.ToUpper(string(r)))[0]
		}
	}
	return string(runes)
}

// StripPunctuation drops ASCII punctuation except the characters in keep.
func StripPunctuation(s, keep string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(asciiPunctuation, r) && !strings.ContainsRune(keep, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
