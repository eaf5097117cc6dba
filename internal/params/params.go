// Package params loads per-pipeline YAML parameter files. Each load uses
// its own viper instance and returns a plain struct, so different
// directories and configs can coexist in one process.
package params

import (
	"fmt"

	"github.com/spf13/viper"
)

// Transform holds the parameters of the transform pipeline.
type Transform struct {
	InputDir    string `mapstructure:"input_dir"`
	OutputDir   string `mapstructure:"output_dir"`
	Compression string `mapstructure:"compression"`
}

// Extract holds the parameters of the download pipeline.
type Extract struct {
	BaseURL         string   `mapstructure:"base_url"`
	DataURL         string   `mapstructure:"data_url"`
	OutputDir       string   `mapstructure:"output_dir"`
	FilesToDownload []string `mapstructure:"files_to_download"`
}

// LoadTransform reads a transform parameter file.
func LoadTransform(path string) (Transform, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("input_dir", "data/01_raw/coxpresdb_extracts")
	v.SetDefault("output_dir", "data/02_transformed/coxpresdb")
	v.SetDefault("compression", "snappy")

	if err := v.ReadInConfig(); err != nil {
		return Transform{}, fmt.Errorf("read transform params: %w", err)
	}

	var p Transform
	if err := v.Unmarshal(&p); err != nil {
		return Transform{}, fmt.Errorf("unmarshal transform params: %w", err)
	}
	return p, nil
}

// LoadExtract reads a download parameter file.
func LoadExtract(path string) (Extract, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("output_dir", "data/01_raw/coxpresdb_extracts")

	if err := v.ReadInConfig(); err != nil {
		return Extract{}, fmt.Errorf("read extract params: %w", err)
	}

	var p Extract
	if err := v.Unmarshal(&p); err != nil {
		return Extract{}, fmt.Errorf("unmarshal extract params: %w", err)
	}
	return p, nil
}
