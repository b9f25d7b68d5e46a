package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases s and strips diacritics, so "Marrón" and "marron" compare equal.
// A fresh transformer is built per call; transform.Chain keeps internal state.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// tokens splits folded text on anything that is not a letter or digit
func tokens(s string) []string {
	return strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

var stopwords = map[string]struct{}{
	"a": {}, "al": {}, "and": {}, "con": {}, "de": {}, "del": {}, "el": {},
	"en": {}, "la": {}, "las": {}, "los": {}, "of": {}, "or": {}, "para": {},
	"por": {}, "the": {}, "un": {}, "una": {}, "with": {}, "y": {},
}

// tokenSet returns the distinct tokens of every part, without stopwords
func tokenSet(parts ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, p := range parts {
		for _, tok := range tokens(p) {
			if _, skip := stopwords[tok]; skip {
				continue
			}
			set[tok] = struct{}{}
		}
	}
	return set
}

// jaccard is |a∩b| / |a∪b|, 0 when both are empty
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// colorVocabulary maps folded color words to one canonical name
var colorVocabulary = func() map[string]string {
	groups := map[string][]string{
		"negro":    {"negro", "negra", "black"},
		"blanco":   {"blanco", "blanca", "white"},
		"rojo":     {"rojo", "roja", "red", "granate"},
		"azul":     {"azul", "blue", "marino", "navy", "celeste"},
		"verde":    {"verde", "green"},
		"amarillo": {"amarillo", "amarilla", "yellow"},
		"gris":     {"gris", "gray", "grey"},
		"marron":   {"marron", "cafe", "brown"},
		"rosa":     {"rosa", "rosado", "rosada", "pink"},
		"morado":   {"morado", "morada", "violeta", "purple", "violet"},
		"naranja":  {"naranja", "anaranjado", "orange"},
		"plateado": {"plateado", "plateada", "plata", "silver"},
		"dorado":   {"dorado", "dorada", "oro", "gold", "golden"},
		"beige":    {"beige", "crema", "cream"},
	}
	vocab := make(map[string]string)
	for canonical, words := range groups {
		for _, w := range words {
			vocab[w] = canonical
		}
	}
	return vocab
}()

// canonicalColor resolves a free-text color to the vocabulary. The first
// known word wins ("azul marino" -> azul); unknown colors fall back to their
// folded, space-joined form.
func canonicalColor(s string) string {
	toks := tokens(s)
	for _, tok := range toks {
		if c, ok := colorVocabulary[tok]; ok {
			return c
		}
	}
	return strings.Join(toks, " ")
}
