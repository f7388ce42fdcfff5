package ports

import (
	"context"
	"time"
)

// ScriptLatin is the ISO 15924 code requested when converting place names
// to a form comparable with stored stop names.
const ScriptLatin = "Latn"

// Contract for best-effort place-name translation/transliteration.
// Implementations must honor ctx deadlines; callers treat every error as
// "no translation available".
type NameTranslator interface {
	Translate(ctx context.Context, text string, targetScript string) (string, error)
}

// Key/value store for translated place names.
// A miss is reported as ok=false with a nil error.
type TranslationCache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
