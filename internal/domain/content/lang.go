package content

import "strings"

// Lang is a site language. The site is bilingual: French is the primary
// language and the fallback for article text.
type Lang string

const (
	LangFR Lang = "fr"
	LangEN Lang = "en"
)

// Langs lists the supported languages, primary first.
var Langs = []Lang{LangFR, LangEN}

func ParseLang(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case LangFR:
		return LangFR, true
	case LangEN:
		return LangEN, true
	}
	return "", false
}

func (l Lang) String() string { return string(l) }

// Other returns the alternate language.
func (l Lang) Other() Lang {
	if l == LangEN {
		return LangFR
	}
	return LangEN
}

// Pick selects the value for the requested language. There is no fallback:
// an empty value for the requested language stays empty.
func Pick[T any](l Lang, fr, en T) T {
	if l == LangEN {
		return en
	}
	return fr
}
