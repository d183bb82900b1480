package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
	"github.com/jwaldner/greekmap/internal/surface"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// ModelConfig holds the default point shown on the dashboard
type ModelConfig struct {
	SpotPrice    float64 `yaml:"spot_price"`
	StrikePrice  float64 `yaml:"strike_price"`
	MaturityTime float64 `yaml:"maturity_time"`
	Volatility   float64 `yaml:"volatility"`
	RFRate       float64 `yaml:"rf_rate"`
}

// SurfaceConfig represents the default heatmap sweep
type SurfaceConfig struct {
	XParam string   `yaml:"x_param"`
	XMin   float64  `yaml:"x_min"`
	XMax   float64  `yaml:"x_max"`
	YParam string   `yaml:"y_param"`
	YMin   float64  `yaml:"y_min"`
	YMax   float64  `yaml:"y_max"`
	Points    int      `yaml:"points"`
	MaxPoints int      `yaml:"max_points"` // per-axis limit for API requests
	Greeks    []string `yaml:"greeks"`     // greeks rendered on the home page, in order
}

// EngineConfig represents pricing engine configuration
type EngineConfig struct {
	StrictValidation bool `yaml:"strict_validation"` // reject out-of-domain inputs instead of propagating NaN/Inf
}

// CSVConfig represents CSV export configuration
type CSVConfig struct {
	FilenameFormat string `yaml:"filename_format"`
}

type Config struct {
	// Server settings
	Port string

	Logging LoggingConfig `yaml:"logging"`
	Model   ModelConfig   `yaml:"model"`
	Surface SurfaceConfig `yaml:"surface"`
	Engine  EngineConfig  `yaml:"engine"`
	CSV     CSVConfig     `yaml:"csv"`
}

type YAMLConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Model   yamlModel     `yaml:"model"`
	Surface SurfaceConfig `yaml:"surface"`
	Engine  *EngineConfig `yaml:"engine"`
	CSV     CSVConfig     `yaml:"csv"`
}

// yamlModel tells an omitted field apart from an explicit zero, which is a
// legitimate rate.
type yamlModel struct {
	SpotPrice    *float64 `yaml:"spot_price"`
	StrikePrice  *float64 `yaml:"strike_price"`
	MaturityTime *float64 `yaml:"maturity_time"`
	Volatility   *float64 `yaml:"volatility"`
	RFRate       *float64 `yaml:"rf_rate"`
}

const defaultFilenameFormat = "{time}_{greek}_{x}_{y}.csv"

// Load reads config.yaml from the working directory.
func Load() *Config {
	return LoadFrom(getEnv("GREEKMAP_CONFIG", "config.yaml"))
}

// LoadFrom builds the configuration from defaults, environment variables
// (a .env file is read first) and then the YAML file at path, which wins.
// A missing or unparsable file leaves the environment values in place.
func LoadFrom(path string) *Config {
	_ = godotenv.Load() // optional .env in the working directory

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "greekmap.log"),
		},
		Model: ModelConfig{
			SpotPrice:    getEnvFloat("SPOT_PRICE", 100),
			StrikePrice:  getEnvFloat("STRIKE_PRICE", 100),
			MaturityTime: getEnvFloat("MATURITY_TIME", 1),
			Volatility:   getEnvFloat("VOLATILITY", 0.2),
			RFRate:       getEnvFloat("RF_RATE", 0.1),
		},
		Surface: SurfaceConfig{
			XParam: getEnv("SURFACE_X_PARAM", string(surface.Spot)),
			XMin:   getEnvFloat("SURFACE_X_MIN", 0),
			XMax:   getEnvFloat("SURFACE_X_MAX", 1000),
			YParam: getEnv("SURFACE_Y_PARAM", string(surface.Volatility)),
			YMin:   getEnvFloat("SURFACE_Y_MIN", 0),
			YMax:   getEnvFloat("SURFACE_Y_MAX", 1),
			Points:    getEnvInt("SURFACE_POINTS", 100),
			MaxPoints: getEnvInt("SURFACE_MAX_POINTS", 200),
			Greeks:    getEnvStringSlice("SURFACE_GREEKS", greekNames(bsm.Greeks())),
		},
		Engine: EngineConfig{
			StrictValidation: getEnvBool("ENGINE_STRICT_VALIDATION", false),
		},
		CSV: CSVConfig{
			FilenameFormat: getEnv("CSV_FILENAME_FORMAT", defaultFilenameFormat),
		},
	}

	if yamlCfg := loadYAMLConfig(path); yamlCfg != nil {
		if yamlCfg.Server.Port != "" {
			cfg.Port = yamlCfg.Server.Port
		}

		// Logging configuration from YAML
		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}

		// Model configuration from YAML, field by field
		m := yamlCfg.Model
		setFloat(&cfg.Model.SpotPrice, m.SpotPrice)
		setFloat(&cfg.Model.StrikePrice, m.StrikePrice)
		setFloat(&cfg.Model.MaturityTime, m.MaturityTime)
		setFloat(&cfg.Model.Volatility, m.Volatility)
		setFloat(&cfg.Model.RFRate, m.RFRate)

		s := yamlCfg.Surface
		if s.XParam != "" {
			cfg.Surface.XParam, cfg.Surface.XMin, cfg.Surface.XMax = s.XParam, s.XMin, s.XMax
		}
		if s.YParam != "" {
			cfg.Surface.YParam, cfg.Surface.YMin, cfg.Surface.YMax = s.YParam, s.YMin, s.YMax
		}
		if s.Points > 0 {
			cfg.Surface.Points = s.Points
		}
		if s.MaxPoints > 0 {
			cfg.Surface.MaxPoints = s.MaxPoints
		}
		if len(s.Greeks) > 0 {
			cfg.Surface.Greeks = s.Greeks
		}

		if yamlCfg.Engine != nil {
			cfg.Engine = *yamlCfg.Engine
		}

		if yamlCfg.CSV.FilenameFormat != "" {
			cfg.CSV.FilenameFormat = yamlCfg.CSV.FilenameFormat
		}
	}

	return cfg
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func loadYAMLConfig(path string) *YAMLConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil
	}

	return &yamlCfg
}

// Params returns the configured default point.
func (c *Config) Params() bsm.Params {
	return bsm.Params{
		Spot:       c.Model.SpotPrice,
		Strike:     c.Model.StrikePrice,
		Rate:       c.Model.RFRate,
		Maturity:   c.Model.MaturityTime,
		Volatility: c.Model.Volatility,
	}
}

// Axes returns the configured sweep.
func (c *Config) Axes() (x, y surface.Axis, err error) {
	xp, err := surface.ParseParam(c.Surface.XParam)
	if err != nil {
		return x, y, err
	}
	yp, err := surface.ParseParam(c.Surface.YParam)
	if err != nil {
		return x, y, err
	}
	x = surface.Axis{Param: xp, Min: c.Surface.XMin, Max: c.Surface.XMax, Points: c.Surface.Points}
	y = surface.Axis{Param: yp, Min: c.Surface.YMin, Max: c.Surface.YMax, Points: c.Surface.Points}
	return x, y, nil
}

// SurfaceGreeks returns the configured home-page greeks, skipping unknown
// names.
func (c *Config) SurfaceGreeks() []bsm.Greek {
	var out []bsm.Greek
	for _, name := range c.Surface.Greeks {
		if g, err := bsm.ParseGreek(name); err == nil {
			out = append(out, g)
		}
	}
	return out
}

func greekNames(gs []bsm.Greek) []string {
	names := make([]string, len(gs))
	for i, g := range gs {
		names[i] = string(g)
	}
	return names
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
