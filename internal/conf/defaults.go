package conf

import (
	"github.com/spf13/viper"

	"github.com/VivekMadav/construction-ai/internal/imaging"
)

// setDefaultConfig registers the default for every configuration key. Keys
// absent from the config file resolve to these values.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("detection.confidence_threshold", 0.5)

	viper.SetDefault("ocr.language", "eng")

	viper.SetDefault("scale.ratio", imaging.DefaultScaleRatio)
	viper.SetDefault("scale.dpi", imaging.DefaultDPI)

	viper.SetDefault("carbon.project_type", "commercial")

	viper.SetDefault("output.dir", "results")
}
