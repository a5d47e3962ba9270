package sequence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	asJSON := filepath.Join(dir, "prog.json")
	require.NoError(t, os.WriteFile(asJSON, []byte(`{
  "version": "seq.v1",
  "clips": [
    {"name": "rise", "durationS": 1, "animations": [{"value": "a", "to": 1, "ease": "smooth"}]},
    {"name": "cross", "durationS": 2, "animations": [{"value": "b", "to": 2}, {"value": "a", "to": 0}]}
  ]
}`), 0644))
	asYAML := filepath.Join(dir, "prog.yaml")
	require.NoError(t, os.WriteFile(asYAML, []byte(`version: seq.v1
loop: true
clips:
  - name: rise
    duration_s: 1
    animations:
      - {value: a, to: 1, ease: smooth}
  - name: cross
    duration_s: 2
    animations:
      - {value: b, to: 2}
      - {value: a, to: 0}
`), 0644))

	for _, path := range []string{asJSON, asYAML} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			prog, err := LoadProgram(path)
			require.NoError(t, err)
			require.Len(t, prog.Clips, 2)
			assert.Equal(t, 3.0, prog.Duration())
			assert.Equal(t, "smooth", prog.Clips[0].Animations[0].Ease)
			assert.Equal(t, []string{"a", "b"}, prog.Values())
		})
	}

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"clips": [`), 0644))
	_, err := LoadProgram(bad)
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)

	_, err = LoadProgram(filepath.Join(dir, "prog.toml"))
	assert.Error(t, err)
}
