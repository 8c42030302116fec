// Package textfilter softens scene text for family-rated tones.
package textfilter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/escape-room/pkg/state"
)

// replacements maps a word to the milder text shown in its place.
var replacements = map[string]string{
	"fuck":         "fudge",
	"fucking":      "freaking",
	"motherfucker": "mother-trucker",
	"shit":         "shoot",
	"bullshit":     "baloney",
	"damn":         "dang",
	"goddamn":      "gosh-dang",
	"hell":         "heck",
	"ass":          "butt",
	"asshole":      "jerk",
	"bastard":      "jerk",
	"bitch":        "jerk",
	"crap":         "crud",
	"piss":         "ticked",
	"dick":         "jerk",
	"prick":        "jerk",
	"christ":       "crikey",
}

// Filter replaces profanity while keeping the capitalization of the
// original word.
type Filter struct {
	pattern *regexp.Regexp
}

// New compiles a filter over the built-in word list.
func New() *Filter {
	words := make([]string, 0, len(replacements))
	for w := range replacements {
		words = append(words, regexp.QuoteMeta(w))
	}
	// Longest first so alternation prefers "motherfucker" over "fuck".
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})

	return &Filter{
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(words, "|") + `)(s|es)?\b`),
	}
}

// Applies reports whether text for the given tone should be filtered.
func Applies(tone state.Tone) bool {
	switch strings.ToLower(strings.TrimSpace(string(tone))) {
	case "g", "pg", "pg13", "pg-13":
		return true
	default:
		return false
	}
}

// Apply returns text with every listed word replaced.
func (f *Filter) Apply(text string) string {
	return f.pattern.ReplaceAllStringFunc(text, func(match string) string {
		word, suffix := f.split(match)
		repl, ok := replacements[strings.ToLower(word)]
		if !ok {
			return match
		}
		return matchCase(word, repl) + suffix
	})
}

// Contains reports whether text has anything Apply would change.
func (f *Filter) Contains(text string) bool {
	return f.pattern.MatchString(text)
}

// split separates a plural suffix from a matched word when the bare word
// is in the list.
func (f *Filter) split(match string) (string, string) {
	lower := strings.ToLower(match)
	if _, ok := replacements[lower]; ok {
		return match, ""
	}
	for _, suf := range []string{"es", "s"} {
		if strings.HasSuffix(lower, suf) {
			if _, ok := replacements[strings.TrimSuffix(lower, suf)]; ok {
				n := len(match) - len(suf)
				return match[:n], match[n:]
			}
		}
	}
	return match, ""
}

func matchCase(original, repl string) string {
	// Casers carry state, so each call gets its own.
	title := cases.Title(language.English)
	switch {
	case strings.ToUpper(original) == original:
		return strings.ToUpper(repl)
	case strings.ToLower(original) == original:
		return repl
	case title.String(strings.ToLower(original)) == original:
		return title.String(repl)
	}

	orig := []rune(original)
	out := []rune(repl)
	for i := range out {
		if i < len(orig) && unicode.IsUpper(orig[i]) {
			out[i] = unicode.ToUpper(out[i])
		} else {
			out[i] = unicode.ToLower(out[i])
		}
	}
	return string(out)
}
