package translate

import (
	"bus-journey-service/internal/ports"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\"थोब\": Thob\n\"बासनी\": \" Basni \"\n"), 0o600))

	pairs, err := LoadPairs(path)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	tr := NewStaticTranslator(pairs)
	out, err := tr.Translate(context.Background(), "बासनी", ports.ScriptLatin)
	require.NoError(t, err)
	assert.Equal(t, "Basni", out)

	_, err = tr.Translate(context.Background(), "पावटा", ports.ScriptLatin)
	assert.Error(t, err)
}

func TestLoadPairsExampleTable(t *testing.T) {
	pairs, err := LoadPairs(filepath.Join("..", "..", "..", "configs", "translations.example.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, pairs)
}

func TestLoadPairsErrors(t *testing.T) {
	_, err := LoadPairs(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o600))
	_, err = LoadPairs(path)
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("\"थोब\": \"\"\n"), 0o600))
	_, err = LoadPairs(empty)
	assert.Error(t, err)
}

func TestStaticTranslatorRejectsOtherScripts(t *testing.T) {
	tr := NewStaticTranslator([]Pair{{From: "थोब", To: "Thob"}})
	_, err := tr.Translate(context.Background(), "थोब", "Deva")
	assert.Error(t, err)
}
