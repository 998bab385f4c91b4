package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pixil98/go-errors"
	"go.uber.org/zap/zapcore"
)

// EnvPath overrides the config file location.
const EnvPath = "DELVE_CONFIG"

// DefaultPath is used when EnvPath is unset.
const DefaultPath = "config/delve.toml"

type Config struct {
	Map        MapConfig        `toml:"map"`
	Player     PlayerConfig     `toml:"player"`
	Visibility VisibilityConfig `toml:"visibility"`
	Render     RenderConfig     `toml:"render"`
	Input      InputConfig      `toml:"input"`
	Data       DataConfig       `toml:"data"`
	Logging    LoggingConfig    `toml:"logging"`
}

type MapConfig struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Layout       string `toml:"layout"` // "rooms" or "scatter"
	Base         string `toml:"base"`   // "rock" or "open"
	Seed         int64  `toml:"seed"`   // 0 = pick from the clock
	MaxRooms     int    `toml:"max_rooms"`
	MinRoomSize  int    `toml:"min_room_size"`
	MaxRoomSize  int    `toml:"max_room_size"`
	Margin       int    `toml:"margin"`
	ScatterWalls int    `toml:"scatter_walls"`
}

type PlayerConfig struct {
	Prefab string `toml:"prefab"` // name in the prefab table
}

type VisibilityConfig struct {
	Workers int `toml:"workers"` // >1 recomputes viewsheds concurrently
	AOICell int `toml:"aoi_cell"`
}

type RenderConfig struct {
	FOVOnly bool `toml:"fov_only"`
}

type InputConfig struct {
	Mode       string        `toml:"mode"` // "terminal" or "script"
	ScriptsDir string        `toml:"scripts_dir"`
	MaxTicks   int           `toml:"max_ticks"`
	TickRate   time.Duration `toml:"tick_rate"`
}

type DataConfig struct {
	PrefabPath string `toml:"prefab_path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	Output string `toml:"output"` // file path, "stderr" or "stdout"
}

// Path returns the config file to load.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(name string, data []byte) (*Config, error) {
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Map.Validate())
	el.Add(c.Visibility.Validate())
	el.Add(c.Input.Validate())
	el.Add(c.Logging.Validate())
	if c.Player.Prefab == "" {
		el.Add(fmt.Errorf("player.prefab is required"))
	}
	if c.Data.PrefabPath == "" {
		el.Add(fmt.Errorf("data.prefab_path is required"))
	}
	return el.Err()
}

func (c *MapConfig) Validate() error {
	el := errors.NewErrorList()
	if c.Width < 3 || c.Height < 3 {
		el.Add(fmt.Errorf("map must be at least 3x3, got %dx%d", c.Width, c.Height))
	}
	switch c.Layout {
	case "rooms", "scatter":
	default:
		el.Add(fmt.Errorf("map.layout %q: want rooms or scatter", c.Layout))
	}
	switch c.Base {
	case "rock", "open":
	default:
		el.Add(fmt.Errorf("map.base %q: want rock or open", c.Base))
	}
	if c.MaxRooms < 0 {
		el.Add(fmt.Errorf("map.max_rooms must not be negative"))
	}
	if c.MinRoomSize < 3 {
		el.Add(fmt.Errorf("map.min_room_size must be at least 3"))
	}
	if c.MaxRoomSize < c.MinRoomSize {
		el.Add(fmt.Errorf("map.max_room_size %d is below min_room_size %d", c.MaxRoomSize, c.MinRoomSize))
	}
	if c.Margin < 1 {
		el.Add(fmt.Errorf("map.margin must be at least 1"))
	}
	if c.ScatterWalls < 0 {
		el.Add(fmt.Errorf("map.scatter_walls must not be negative"))
	}
	return el.Err()
}

func (c *VisibilityConfig) Validate() error {
	el := errors.NewErrorList()
	if c.Workers < 1 {
		el.Add(fmt.Errorf("visibility.workers must be at least 1"))
	}
	if c.AOICell < 1 {
		el.Add(fmt.Errorf("visibility.aoi_cell must be at least 1"))
	}
	return el.Err()
}

func (c *InputConfig) Validate() error {
	el := errors.NewErrorList()
	switch c.Mode {
	case "terminal":
	case "script":
		if c.ScriptsDir == "" {
			el.Add(fmt.Errorf("input.scripts_dir is required in script mode"))
		}
	default:
		el.Add(fmt.Errorf("input.mode %q: want terminal or script", c.Mode))
	}
	if c.MaxTicks < 0 {
		el.Add(fmt.Errorf("input.max_ticks must not be negative"))
	}
	if c.TickRate < 0 {
		el.Add(fmt.Errorf("input.tick_rate must not be negative"))
	}
	return el.Err()
}

func (c *LoggingConfig) Validate() error {
	el := errors.NewErrorList()
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		el.Add(fmt.Errorf("logging.level %q: %w", c.Level, err))
	}
	switch c.Format {
	case "json", "console":
	default:
		el.Add(fmt.Errorf("logging.format %q: want json or console", c.Format))
	}
	if c.Output == "" {
		el.Add(fmt.Errorf("logging.output is required"))
	}
	return el.Err()
}

func defaults() *Config {
	return &Config{
		Map: MapConfig{
			Width:        80,
			Height:       50,
			Layout:       "rooms",
			Base:         "rock",
			MaxRooms:     30,
			MinRoomSize:  6,
			MaxRoomSize:  10,
			Margin:       1,
			ScatterWalls: 400,
		},
		Player: PlayerConfig{
			Prefab: "player",
		},
		Visibility: VisibilityConfig{
			Workers: 1,
			AOICell: 8,
		},
		Render: RenderConfig{
			FOVOnly: true,
		},
		Input: InputConfig{
			Mode:       "terminal",
			ScriptsDir: "scripts",
			MaxTicks:   200,
			TickRate:   100 * time.Millisecond,
		},
		Data: DataConfig{
			PrefabPath: "data/yaml/prefabs.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "delve.log",
		},
	}
}
