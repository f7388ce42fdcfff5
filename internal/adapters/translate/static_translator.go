package translate

import (
	"bus-journey-service/internal/ports"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Pair struct {
	From, To string
}

// StaticTranslator answers from a fixed table. The server uses it when
// TRANSLATOR_TABLE names a table and no translation service is configured.
type StaticTranslator struct {
	m map[string]string
}

var _ ports.NameTranslator = (*StaticTranslator)(nil)

func NewStaticTranslator(pairs []Pair) *StaticTranslator {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.From] = p.To
	}
	return &StaticTranslator{m: m}
}

func (s *StaticTranslator) Translate(ctx context.Context, text, targetScript string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if targetScript != ports.ScriptLatin {
		return "", fmt.Errorf("static translate: unsupported target script %q", targetScript)
	}

	out, ok := s.m[text]
	if !ok {
		return "", fmt.Errorf("static translate: no entry for %q", text)
	}
	return out, nil
}

// LoadPairs reads a YAML mapping of source text to Latin rendering.
// Entries are returned sorted by source text.
func LoadPairs(path string) ([]Pair, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load translation table: read %s: %w", path, err)
	}

	var table map[string]string
	if err := yaml.Unmarshal(b, &table); err != nil {
		return nil, fmt.Errorf("load translation table: parse %s: %w", path, err)
	}

	pairs := make([]Pair, 0, len(table))
	for from, to := range table {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if from == "" || to == "" {
			return nil, fmt.Errorf("load translation table: empty entry %q: %q", from, to)
		}
		pairs = append(pairs, Pair{From: from, To: to})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].From < pairs[j].From })
	return pairs, nil
}
