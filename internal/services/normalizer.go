package services

import (
	"bus-journey-service/internal/ports"
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer turns raw place-name queries into the canonical form stop
// names are compared in: lowercase Latin text without diacritics or
// punctuation, single-spaced.
//
// Non-Latin input (e.g. Devanagari) is sent to the translator; when that
// fails the normalizer falls back to local transliteration. Normalize never
// fails and is idempotent.
type Normalizer struct {
	translator    ports.NameTranslator
	timeout       time.Duration
	transliterate bool
	logger        *zap.Logger
}

// NewNormalizer builds a Normalizer. translator may be nil.
func NewNormalizer(translator ports.NameTranslator, cfg Config, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		translator:    translator,
		timeout:       cfg.TranslateTimeout,
		transliterate: cfg.TransliterateFallback,
		logger:        logger,
	}
}

func (n *Normalizer) Normalize(ctx context.Context, raw string) string {
	base := basicFold(raw)
	if base == "" || !hasNonLatin(base) {
		return foldText(base)
	}

	if translated, ok := n.translate(ctx, base); ok {
		return foldText(translated)
	}

	if n.transliterate {
		if t := foldText(unidecode.Unidecode(base)); t != "" {
			return t
		}
	}

	return base
}

func (n *Normalizer) translate(ctx context.Context, text string) (string, bool) {
	if n.translator == nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	out, err := n.translator.Translate(ctx, text, ports.ScriptLatin)
	if err != nil {
		n.logger.Warn("place name translation failed, using fallback",
			zap.String("text", text),
			zap.Error(err),
		)
		return "", false
	}

	// A translation that is still non-Latin would break idempotence.
	out = basicFold(out)
	if out == "" || hasNonLatin(out) {
		return "", false
	}
	return out, true
}

// basicFold lowercases and collapses whitespace without touching the script.
func basicFold(s string) string {
	s = cases.Lower(language.Und).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// foldText is applied to both queries and stored stop names so they compare
// in the same space. Combining marks are only stripped from Latin text;
// removing them from Indic scripts would drop vowel signs.
func foldText(s string) string {
	s = basicFold(s)
	if s == "" {
		return ""
	}

	if !hasNonLatin(s) {
		t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		if stripped, _, err := transform.String(t, s); err == nil {
			s = stripped
		}
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			return r
		}
		return ' '
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

func hasNonLatin(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}
