package conf

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/viper"

	"github.com/VivekMadav/construction-ai/internal/cost"
	"github.com/VivekMadav/construction-ai/internal/detection"
)

// Settings is the full runtime configuration. Every field has a default,
// so an absent config file yields a working analyzer.
type Settings struct {
	Debug bool `mapstructure:"debug"`

	Log       LogSettings       `mapstructure:"log"`
	Detection DetectionSettings `mapstructure:"detection"`
	OCR       OCRSettings       `mapstructure:"ocr"`
	Scale     ScaleSettings     `mapstructure:"scale"`
	Cost      CostSettings      `mapstructure:"cost"`
	Carbon    CarbonSettings    `mapstructure:"carbon"`
	Output    OutputSettings    `mapstructure:"output"`
}

// LogSettings controls the structured logger.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is json or text.
	Format string `mapstructure:"format"`
}

// DetectionSettings tunes the geometric element detector.
type DetectionSettings struct {
	// ConfidenceThreshold excludes rule matches below this base confidence.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`

	// Rules overrides the built-in rule table for a discipline, keyed by
	// discipline name. Disciplines not listed keep their defaults.
	Rules map[string][]detection.Rule `mapstructure:"rules"`
}

// OCRSettings controls text recognition.
type OCRSettings struct {
	// Language is the tesseract language code.
	Language string `mapstructure:"language"`
}

// ScaleSettings sets the assumed drawing scale used when no scale note is
// detected on the page.
type ScaleSettings struct {
	// Ratio is the scale denominator: 100 for a 1:100 drawing.
	Ratio float64 `mapstructure:"ratio"`

	// DPI is the rasterization density of page images.
	DPI float64 `mapstructure:"dpi"`
}

// CostSettings tunes cost estimation.
type CostSettings struct {
	// Rates overrides or extends the built-in rate table. Entries with the
	// same element type and material replace the built-in rate.
	Rates []cost.Rate `mapstructure:"rates"`
}

// CarbonSettings tunes carbon assessment.
type CarbonSettings struct {
	// ProjectType selects the carbon intensity benchmark.
	ProjectType string `mapstructure:"project_type"`
}

// OutputSettings controls where analysis results are written.
type OutputSettings struct {
	Dir string `mapstructure:"dir"`
}

var settingsMutex sync.Mutex

// Load reads configuration from the given file, or from the default search
// paths when path is empty. A missing config file is not an error: the
// built-in defaults apply.
func Load(path string) (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	if err := initViper(path); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	return settings, nil
}

func initViper(path string) error {
	setDefaultConfig()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/construction-ai")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}
	return nil
}

// Validate rejects settings the pipeline cannot run with.
func Validate(s *Settings) error {
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", s.Log.Level)
	}
	switch s.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", s.Log.Format)
	}
	if s.Detection.ConfidenceThreshold < 0 || s.Detection.ConfidenceThreshold > 1 {
		return fmt.Errorf("detection confidence threshold %v outside [0, 1]", s.Detection.ConfidenceThreshold)
	}
	for name := range s.Detection.Rules {
		if !validDiscipline(name) {
			return fmt.Errorf("rule override for unknown discipline %q", name)
		}
	}
	if s.Scale.Ratio <= 0 {
		return fmt.Errorf("scale ratio %v must be positive", s.Scale.Ratio)
	}
	if s.Scale.DPI <= 0 {
		return fmt.Errorf("scale dpi %v must be positive", s.Scale.DPI)
	}
	return nil
}

func validDiscipline(name string) bool {
	for _, d := range detection.Disciplines {
		if string(d) == name {
			return true
		}
	}
	return false
}
