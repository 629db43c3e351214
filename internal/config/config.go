package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the command looks for its configuration.
const DefaultPath = "/etc/phoenlcd/config.yaml"

// Masks are the control port bit masks. Zero fields take the defaults.
type Masks struct {
	CS    uint8 `yaml:"cs"`
	RS    uint8 `yaml:"rs"`
	WR    uint8 `yaml:"wr"`
	RD    uint8 `yaml:"rd"`
	Reset uint8 `yaml:"reset"`
	Hold  uint8 `yaml:"hold"`
}

// BusConfig describes how the panel is wired to the host GPIO.
type BusConfig struct {
	// Data lists the eight data pin names, D0 first.
	Data []string `yaml:"data"`

	// Control lists the control port pin names, bit 0 first. An empty name
	// leaves the bit unconnected.
	Control []string `yaml:"control"`

	// Backlight is the backlight enable pin. Empty disables backlight control.
	Backlight string `yaml:"backlight"`

	Masks Masks `yaml:"masks"`

	// StrobeDelay is busy-waited after each write strobe edge, e.g. "50ns".
	StrobeDelay time.Duration `yaml:"strobe_delay"`
}

// Colors are one-byte panel colors.
type Colors struct {
	Frame  uint8 `yaml:"frame"`
	Icon   uint8 `yaml:"icon"`
	NoProg uint8 `yaml:"no_prog"`
	PCSD   uint8 `yaml:"pc_sd"`
	PCROM  uint8 `yaml:"pc_rom"`
}

// DisplayConfig controls what the status screen shows.
type DisplayConfig struct {
	// Icons enables the sketch icon.
	Icons bool `yaml:"icons"`

	// IconDir holds the <NAME>.SKI sketch icon files.
	IconDir string `yaml:"icon_dir"`

	Colors Colors `yaml:"colors"`
}

// MarqueeConfig controls the idle animation of the command.
type MarqueeConfig struct {
	// Schedule is a cron spec for marquee ticks, e.g. "@every 1s".
	Schedule string `yaml:"schedule"`
}

// Config is the top-level application configuration.
type Config struct {
	Bus      BusConfig     `yaml:"bus"`
	Display  DisplayConfig `yaml:"display"`
	Marquee  MarqueeConfig `yaml:"marquee"`
	LogLevel string        `yaml:"log_level"`
}

func defaultMasks() Masks {
	return Masks{CS: 0x01, RS: 0x02, WR: 0x04, RD: 0x08, Reset: 0x10, Hold: 0x20}
}

func defaultColors() Colors {
	return Colors{Frame: 0x52, Icon: 0xFF, NoProg: 0xE0, PCSD: 0x07, PCROM: 0x1F}
}

// DefaultConfig returns an in-memory default configuration for a Raspberry
// Pi header wiring.
func DefaultConfig() *Config {
	return &Config{
		Bus: BusConfig{
			Data:      []string{"GPIO5", "GPIO6", "GPIO12", "GPIO13", "GPIO16", "GPIO19", "GPIO20", "GPIO21"},
			Control:   []string{"GPIO8", "GPIO25", "GPIO24", "GPIO23", "GPIO22", ""},
			Backlight: "GPIO18",
			Masks:     defaultMasks(),
		},
		Display: DisplayConfig{
			Icons:   true,
			IconDir: "/var/lib/phoenlcd/icons",
			Colors:  defaultColors(),
		},
		Marquee: MarqueeConfig{
			Schedule: "@every 1s",
		},
		LogLevel: "info",
	}
}

// Normalize fills in missing values so that partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Bus.Data == nil {
		c.Bus.Data = def.Bus.Data
	}
	if c.Bus.Control == nil {
		c.Bus.Control = def.Bus.Control
	}
	if c.Bus.Masks == (Masks{}) {
		c.Bus.Masks = def.Bus.Masks
	}
	if c.Bus.StrobeDelay < 0 {
		c.Bus.StrobeDelay = 0
	}
	if c.Display.Colors == (Colors{}) {
		c.Display.Colors = def.Display.Colors
	}
	if c.Marquee.Schedule == "" {
		c.Marquee.Schedule = def.Marquee.Schedule
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate reports wiring mistakes that would make the bus unusable.
func (c *Config) Validate() error {
	if len(c.Bus.Data) != 8 {
		return fmt.Errorf("config: bus.data needs 8 pins, got %d", len(c.Bus.Data))
	}
	for i, name := range c.Bus.Data {
		if name == "" {
			return fmt.Errorf("config: bus.data[%d] is empty", i)
		}
	}
	if len(c.Bus.Control) > 8 {
		return fmt.Errorf("config: bus.control has %d pins, at most 8 fit", len(c.Bus.Control))
	}
	// Hold may stay unconnected.
	m := c.Bus.Masks
	for _, mask := range []uint8{m.CS, m.RS, m.WR, m.RD, m.Reset} {
		if mask == 0 {
			continue
		}
		bit := 0
		for mask>>(bit+1) != 0 {
			bit++
		}
		if bit >= len(c.Bus.Control) || c.Bus.Control[bit] == "" {
			return fmt.Errorf("config: mask %#02x has no control pin", mask)
		}
	}
	return nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms and returned.
//   - Otherwise the YAML is unmarshalled over DefaultConfig, so absent keys
//     keep their defaults, and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path atomically: a temp file in the same directory is
// written, synced, chmod'ed to 0600 and renamed over path.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".phoenlcd-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
