package bench

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pdok/morton3d/morton"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/perimeterx/marshmallow"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// Config is the immutable configuration of one harness run
type Config struct {
	// Cube sides, every sweep encodes or decodes side^3 values
	Sizes []uint `default:"[128,256,512]" validate:"required,min=1,dive,gt=0" json:"sizes" yaml:"sizes"`
	// Repetitions per measurement, the reported time is the average
	Times uint `default:"20" validate:"gt=0" json:"times" yaml:"times"`
	// Seed of the random streams, the generator is reseeded for every codec and every repetition
	Seed uint32 `json:"seed" yaml:"seed"`
	// Values generated, timed and digested at once
	BatchSize uint `default:"4096" validate:"gt=0,lte=1048576" json:"batchSize" yaml:"batchSize"`
	// Strategy names to measure, all when empty
	Strategies []string `validate:"dive,required" json:"strategies,omitempty" yaml:"strategies,omitempty"`
}

// DefaultConfig returns a Config with all defaults set
func DefaultConfig() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(fmt.Errorf(`could not set bench config defaults: %w`, err))
	}
	return cfg
}

// LoadConfig reads a JSON or YAML (.yaml/.yml) config file on top of DefaultConfig.
// Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAMLConfig(data)
	default:
		return ParseJSONConfig(data)
	}
}

func ParseJSONConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	unknown, err := marshmallow.Unmarshal(data, &cfg, marshmallow.WithExcludeKnownFieldsFromMap(true))
	if err != nil {
		return Config{}, fmt.Errorf(`could not decode bench config: %w`, err)
	}
	if len(unknown) > 0 {
		keys := maps.Keys(unknown)
		slices.Sort(keys)
		return Config{}, fmt.Errorf(`unknown keys %q in bench config`, keys)
	}
	return cfg, nil
}

func ParseYAMLConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf(`could not decode bench config: %w`, err)
	}
	return cfg, nil
}

// Validate checks cfg, and that every cube fits in the coordinates of width
func (cfg Config) Validate(width morton.Width) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	for _, size := range cfg.Sizes {
		if uint64(size) > uint64(width.MaxCoord)+1 {
			return fmt.Errorf(`size %d does not fit the %d-bit coordinates of a %d-bit code`, size, width.CoordBits, width.CodeBits)
		}
	}
	for _, name := range cfg.Strategies {
		if _, err := morton.ParseStrategy(name); err != nil {
			return err
		}
	}
	return nil
}
