// Package moderation masks banned phrases in message bodies before they
// are persisted. The main target is contact-bypass wording (taking the
// deal off the platform) plus common abuse, in Romanian and English.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Moderator struct {
	matcher  *goahocorasick.Machine
	maskChar rune
}

type textMapping struct {
	normalized []rune
	origIdx    []int
}

// NewModerator builds the Aho-Corasick automaton over the normalized
// form of the banned phrase list.
func NewModerator(bannedPhrases []string, maskChar rune) (Moderator, error) {
	patterns := make([][]rune, len(bannedPhrases))
	for i, phrase := range bannedPhrases {
		patterns[i] = normalizeRunes([]rune(phrase))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Moderator{}, err
	}
	return Moderator{matcher: m, maskChar: maskChar}, nil
}

// Mask replaces every character belonging to a banned phrase with the
// mask rune, preserving spacing and length of the original text.
func (m *Moderator) Mask(original string) string {
	mapping := m.normalize(original)
	if len(mapping.normalized) == 0 {
		return original
	}

	origRunes := []rune(original)
	spans := m.matcher.MultiPatternSearch(mapping.normalized, false)
	if len(spans) == 0 {
		return original
	}

	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)

		if normStart < 0 || normEnd > len(mapping.origIdx) {
			continue
		}

		origStart := mapping.origIdx[normStart]
		origEnd := mapping.origIdx[normEnd-1] + 1

		for i := origStart; i < origEnd; i++ {
			origRunes[i] = m.maskChar
		}
	}

	return string(origRunes)
}

// normalize lowers, folds and strips noise from the input while keeping
// a map back to original rune positions for in-place masking.
func (m *Moderator) normalize(input string) textMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := foldRune(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return textMapping{normalized: norm, origIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := foldRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// foldRune strips Romanian diacritics and maps common leet speak
// characters back to their standard alphabet counterparts.
func foldRune(r rune) rune {
	switch r {
	case 'ă', 'â', 'Ă', 'Â':
		return 'a'
	case 'î', 'Î':
		return 'i'
	case 'ș', 'ş', 'Ș', 'Ş':
		return 's'
	case 'ț', 'ţ', 'Ț', 'Ţ':
		return 't'
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters ignored during pattern matching, which
// defeats spacing and punctuation tricks ("w h a t s-a p p").
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
