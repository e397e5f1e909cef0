package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	slugSeparators = regexp.MustCompile(`[-\s]+`)
	lowerCaser     = cases.Lower(language.Und)
)

// Slugify keeps letters, digits and -_~, folds separators into single dashes
// and lower-cases the result. Non-ASCII letters survive.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '-', r == '_', r == '~':
			b.WriteRune(r)
		case unicode.Is(unicode.Z, r):
			b.WriteRune(' ')
		}
	}
	slug := slugSeparators.ReplaceAllString(strings.TrimSpace(b.String()), "-")
	return lowerCaser.String(slug)
}

// UniqueSlug appends -1, -2, ... to slug until exists reports it free.
func UniqueSlug(slug string, exists func(string) (bool, error)) (string, error) {
	for i := 0; ; i++ {
		if i > 0 {
			if i > 1 {
				slug = slug[:strings.LastIndex(slug, "-")]
			}
			slug = fmt.Sprintf("%s-%d", slug, i)
		}
		taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
	}
}
