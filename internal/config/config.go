package config

import (
	"errors"
	"fmt"
	"io/fs"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	TimerView TimerViewConfig `yaml:"timer_view"`
	Sound     SoundConfig     `yaml:"sound"`
	Log       LogConfig       `yaml:"log"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

// TimerViewConfig describes how the timer card is drawn.
type TimerViewConfig struct {
	X              float32 `yaml:"x"`
	Y              float32 `yaml:"y"`
	Height         float32 `yaml:"height"`
	GradientStart  string  `yaml:"gradient_start"`
	GradientEnd    string  `yaml:"gradient_end"`
	GradientAngle  float64 `yaml:"gradient_angle"`
	CornerRadius   float32 `yaml:"corner_radius"`
	ShadowColor    string  `yaml:"shadow_color"`
	ShadowOffsetX  float32 `yaml:"shadow_offset_x"`
	ShadowOffsetY  float32 `yaml:"shadow_offset_y"`
	TextColor      string  `yaml:"text_color"`
	StatusTextSize float32 `yaml:"status_text_size"`
	TimeTextSize   float32 `yaml:"time_text_size"`
	ButtonSize     float32 `yaml:"button_size"`
}

type SoundConfig struct {
	Enabled   bool    `yaml:"enabled"`
	StartPath string  `yaml:"start_path"`
	PausePath string  `yaml:"pause_path"`
	Volume    float64 `yaml:"volume"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the stock orange workout card.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "TimerView",
			WindowWidth:  390,
			WindowHeight: 844,
		},
		TimerView: TimerViewConfig{
			X:              16,
			Y:              100,
			Height:         93,
			GradientStart:  "#FFAA06FF",
			GradientEnd:    "#F6DE07E6",
			GradientAngle:  90,
			CornerRadius:   40,
			ShadowColor:    "#0000004D",
			ShadowOffsetX:  4,
			ShadowOffsetY:  7,
			TextColor:      "#FFFFFFFF",
			StatusTextSize: 18,
			TimeTextSize:   42,
			ButtonSize:     55,
		},
		Sound: SoundConfig{
			Enabled:   false,
			StartPath: "assets/start.wav",
			PausePath: "assets/pause.wav",
			Volume:    0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks values that would otherwise fail when the view is drawn.
func (c *Config) Validate() error {
	if c.App.WindowWidth <= 0 || c.App.WindowHeight <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.App.WindowWidth, c.App.WindowHeight)
	}
	if c.TimerView.Height <= 0 {
		return fmt.Errorf("invalid timer view height %v", c.TimerView.Height)
	}
	if c.TimerView.ButtonSize <= 0 {
		return fmt.Errorf("invalid button size %v", c.TimerView.ButtonSize)
	}
	for name, hex := range map[string]string{
		"gradient_start": c.TimerView.GradientStart,
		"gradient_end":   c.TimerView.GradientEnd,
		"shadow_color":   c.TimerView.ShadowColor,
		"text_color":     c.TimerView.TextColor,
	} {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// ParseColor parses #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex += "FF"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

type Manager struct {
	config     *Config
	configPath string
	loadErr    error
}

// NewManager loads the config at path, or the default location when path
// is empty. A missing file is created with the defaults. A file that
// cannot be parsed or validated is moved to BackupPath before the defaults
// are written, and the reason is kept in LoadError.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		configDir, err := getConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, "config.yaml")
	}

	manager := &Manager{
		configPath: path,
	}

	if err := manager.loadConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			manager.loadErr = err
			if err := os.Rename(path, manager.BackupPath()); err != nil {
				return nil, fmt.Errorf("back up config: %w", err)
			}
		}
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	}

	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	// Start from defaults so keys absent from the file keep their values.
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", m.configPath, err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("validate %s: %w", m.configPath, err)
	}

	m.config = config
	return nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// BackupPath is where a rejected config file is kept.
func (m *Manager) BackupPath() string {
	return m.configPath + ".bak"
}

// LoadError reports why an existing file was replaced with the defaults.
func (m *Manager) LoadError() error {
	return m.loadErr
}

func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".timerview"), nil
}

func (m *Manager) UpdateTimerViewConfig(config TimerViewConfig) error {
	m.config.TimerView = config
	return m.SaveConfig()
}

func (m *Manager) UpdateSoundConfig(config SoundConfig) error {
	m.config.Sound = config
	return m.SaveConfig()
}
