package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFresh(t *testing.T, path string) (*Settings, error) {
	t.Helper()
	viper.Reset()
	return Load(path)
}

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	settings, err := loadFresh(t, "")
	require.NoError(t, err)

	assert.Equal(t, "info", settings.Log.Level)
	assert.Equal(t, "text", settings.Log.Format)
	assert.InDelta(t, 0.5, settings.Detection.ConfidenceThreshold, 1e-9)
	assert.Equal(t, "eng", settings.OCR.Language)
	assert.InDelta(t, 100.0, settings.Scale.Ratio, 1e-9)
	assert.InDelta(t, 150.0, settings.Scale.DPI, 1e-9)
	assert.Equal(t, "commercial", settings.Carbon.ProjectType)
	assert.Empty(t, settings.Detection.Rules)
	assert.Empty(t, settings.Cost.Rates)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
detection:
  confidence_threshold: 0.7
  rules:
    structural:
      - element_type: beam
        min_aspect: 4
        max_aspect: 50
        min_area: 500
        max_area: 100000
        base_confidence: 0.8
scale:
  ratio: 50
cost:
  rates:
    - element_type: wall
      material: concrete
      base_rate: 95
      unit: sqm
carbon:
  project_type: residential
`)

	settings, err := loadFresh(t, path)
	require.NoError(t, err)

	assert.Equal(t, "debug", settings.Log.Level)
	assert.InDelta(t, 0.7, settings.Detection.ConfidenceThreshold, 1e-9)
	assert.InDelta(t, 50.0, settings.Scale.Ratio, 1e-9)
	assert.InDelta(t, 150.0, settings.Scale.DPI, 1e-9)
	assert.Equal(t, "residential", settings.Carbon.ProjectType)

	require.Len(t, settings.Detection.Rules["structural"], 1)
	assert.Equal(t, "beam", settings.Detection.Rules["structural"][0].ElementType)

	require.Len(t, settings.Cost.Rates, 1)
	assert.InDelta(t, 95.0, settings.Cost.Rates[0].BaseRate, 1e-9)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := loadFresh(t, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"bad level", "log:\n  level: verbose\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"threshold out of range", "detection:\n  confidence_threshold: 1.5\n"},
		{"unknown discipline", "detection:\n  rules:\n    nautical:\n      - element_type: hull\n"},
		{"zero scale ratio", "scale:\n  ratio: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadFresh(t, writeConfig(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}
