// Package translit converts search text between the Latin and Cyrillic alphabets.
//
// Cyrillic to Latin is a one-letter-at-a-time table lookup. Latin to Cyrillic
// scans the input left to right and tries the longest letter cluster first
// ("shch", then "sch", then "sh", then "s"), so multi-letter spellings are
// matched greedily before single letters.
package translit

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var toLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu",
	'я': "ya",
}

var toCyrillic = map[string]string{
	"shch": "щ",
	"sch":  "щ",
	"yo":   "ё", "zh": "ж", "kh": "х", "ts": "ц", "ch": "ч", "sh": "ш",
	"yu": "ю", "ya": "я", "ye": "е", "yi": "й",
	"a": "а", "b": "б", "v": "в", "g": "г", "d": "д", "e": "е", "z": "з", "i": "и",
	"y": "ы", "k": "к", "l": "л", "m": "м", "n": "н", "o": "о", "p": "п", "r": "р",
	"s": "с", "t": "т", "u": "у", "f": "ф", "h": "х", "c": "к", "w": "в", "q": "к",
}

// longest cluster in toCyrillic
const maxCluster = 4

// ToLatin renders Cyrillic letters in Latin; other characters pass through
func ToLatin(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		lower := unicode.ToLower(r)
		latin, ok := toLatin[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if lower != r {
			latin = upperFirst(latin)
		}
		b.WriteString(latin)
	}

	return b.String()
}

// ToCyrillic renders Latin letters in Cyrillic, longest cluster first;
// other characters pass through
func ToCyrillic(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)

	for i := 0; i < len(text); {
		cyr, n := matchCluster(text[i:])
		if n == 0 {
			r, size := utf8.DecodeRuneInString(text[i:])
			b.WriteRune(r)
			i += size
			continue
		}
		if isUpperASCII(text[i]) {
			cyr = upperFirst(cyr)
		}
		b.WriteString(cyr)
		i += n
	}

	return b.String()
}

// matchCluster returns the Cyrillic rendering of the longest Latin cluster at
// the start of s and its byte length, or 0 if none matches
func matchCluster(s string) (string, int) {
	for n := min(maxCluster, len(s)); n > 0; n-- {
		chunk := s[:n]
		if !isASCIILetters(chunk) {
			continue
		}
		if cyr, ok := toCyrillic[strings.ToLower(chunk)]; ok {
			return cyr, n
		}
	}
	return "", 0
}

// HasCyrillic reports whether text contains a Russian letter
func HasCyrillic(text string) bool {
	for _, r := range text {
		if _, ok := toLatin[unicode.ToLower(r)]; ok {
			return true
		}
	}
	return false
}

// HasLatin reports whether text contains a basic Latin letter
func HasLatin(text string) bool {
	for i := 0; i < len(text); i++ {
		if isASCIILetter(text[i]) {
			return true
		}
	}
	return false
}

// Expand returns the spelling set of a query: the query itself, its Latin
// rendering if it contains Cyrillic and its Cyrillic rendering if it contains
// Latin. Identical spellings appear once; the original is always first.
func Expand(query string) []string {
	spellings := []string{query}

	add := func(s string) {
		for _, existing := range spellings {
			if existing == s {
				return
			}
		}
		spellings = append(spellings, s)
	}

	if HasCyrillic(query) {
		add(ToLatin(query))
	}
	if HasLatin(query) {
		add(ToCyrillic(query))
	}

	return spellings
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isUpperASCII(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isASCIILetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isASCIILetter(s[i]) {
			return false
		}
	}
	return true
}
