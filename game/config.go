package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ARENA_SCENARIO
const EnvPrefix = "ARENA"

// ErrInvalidConfig is wrapped by every configuration validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds game configuration
type Config struct {
	LogLevel string `mapstructure:"logLevel"`

	Screen ScreenConfig `mapstructure:"screen"`
	Arena  ArenaConfig  `mapstructure:"arena"`

	// TicksPerSecond is the shell's update rate
	TicksPerSecond int `mapstructure:"ticksPerSecond"`

	// MaxFrameDelta caps dt in seconds so a stalled frame cannot tunnel
	// projectiles through ships
	MaxFrameDelta float64 `mapstructure:"maxFrameDelta"`

	Scenario string       `mapstructure:"scenario"`
	Ships    []ShipConfig `mapstructure:"ships"`
	FireMode string       `mapstructure:"fireMode"`

	// Music is an optional ogg/vorbis file played once at startup
	Music string `mapstructure:"music"`

	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ScreenConfig is the window size in pixels
type ScreenConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// ArenaConfig describes the playfield
type ArenaConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`

	// DespawnMargin is added to Width to get the projectile despawn distance
	DespawnMargin float64 `mapstructure:"despawnMargin"`

	// draw-order layers; gameplay never reads them
	ShipDepth       float64 `mapstructure:"shipDepth"`
	ProjectileDepth float64 `mapstructure:"projectileDepth"`
}

// MetricsConfig controls the stdout metric exporter used by the binaries
type MetricsConfig struct {
	Stdout   bool          `mapstructure:"stdout"`
	Interval time.Duration `mapstructure:"interval"`
}

// ShipConfig is one roster entry as written in a config file. Zero values
// keep the preset's stat.
type ShipConfig struct {
	Name             string        `mapstructure:"name"`
	Type             string        `mapstructure:"type"`
	Faction          string        `mapstructure:"faction"`
	Pilot            string        `mapstructure:"pilot"`
	X                float64       `mapstructure:"x"`
	Y                float64       `mapstructure:"y"`
	Radius           float64       `mapstructure:"radius"`
	Color            string        `mapstructure:"color"`
	BaseAccel        float64       `mapstructure:"baseAccel"`
	MaxSpeed         float64       `mapstructure:"maxSpeed"`
	Damage           float64       `mapstructure:"damage"`
	Health           float64       `mapstructure:"health"`
	FireRate         time.Duration `mapstructure:"fireRate"`
	AlwaysFiring     *bool         `mapstructure:"alwaysFiring"`
	FirePolicy       string        `mapstructure:"firePolicy"`
	FireRange        float64       `mapstructure:"fireRange"`
	Intercept        bool          `mapstructure:"intercept"`
	ProjectileSpeed  float64       `mapstructure:"projectileSpeed"`
	ProjectileRadius float64       `mapstructure:"projectileRadius"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Screen: ScreenConfig{
			Width:  800,
			Height: 600,
		},
		Arena: ArenaConfig{
			Width:           800,
			Height:          600,
			DespawnMargin:   200,
			ShipDepth:       1,
			ProjectileDepth: 0,
		},
		TicksPerSecond: 60,
		MaxFrameDelta:  0.1,
		Scenario:       "duel",
		FireMode:       "toggle",
		Metrics: MetricsConfig{
			Stdout:   false,
			Interval: 10 * time.Second,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("screen.width", d.Screen.Width)
	v.SetDefault("screen.height", d.Screen.Height)
	v.SetDefault("arena.width", d.Arena.Width)
	v.SetDefault("arena.height", d.Arena.Height)
	v.SetDefault("arena.despawnMargin", d.Arena.DespawnMargin)
	v.SetDefault("arena.shipDepth", d.Arena.ShipDepth)
	v.SetDefault("arena.projectileDepth", d.Arena.ProjectileDepth)
	v.SetDefault("ticksPerSecond", d.TicksPerSecond)
	v.SetDefault("maxFrameDelta", d.MaxFrameDelta)
	v.SetDefault("scenario", d.Scenario)
	v.SetDefault("fireMode", d.FireMode)
	v.SetDefault("music", d.Music)
	v.SetDefault("metrics.stdout", d.Metrics.Stdout)
	v.SetDefault("metrics.interval", d.Metrics.Interval)
}

// LoadConfig reads the configuration. path may be empty, in which case only
// defaults and ARENA_* environment variables apply. The file format follows
// the extension (json, yaml, toml).
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values the simulation depends on
func (c Config) Validate() error {
	switch {
	case !(c.Arena.Width > 0) || !(c.Arena.Height > 0):
		return fmt.Errorf("%w: arena must have a positive size, got %vx%v", ErrInvalidConfig, c.Arena.Width, c.Arena.Height)
	case c.Arena.DespawnMargin < 0:
		return fmt.Errorf("%w: despawn margin must not be negative, got %v", ErrInvalidConfig, c.Arena.DespawnMargin)
	case c.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticks per second must be positive, got %d", ErrInvalidConfig, c.TicksPerSecond)
	case !(c.MaxFrameDelta > 0):
		return fmt.Errorf("%w: max frame delta must be positive, got %v", ErrInvalidConfig, c.MaxFrameDelta)
	}
	if _, err := ParseFireMode(c.FireMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Bounds returns the arena extent
func (c Config) Bounds() Bounds {
	return Bounds{Width: c.Arena.Width, Height: c.Arena.Height}
}

// DespawnDistance is the per-axis limit beyond which projectiles expire
func (c Config) DespawnDistance() float64 {
	return c.Arena.Width + c.Arena.DespawnMargin
}

// Level returns the configured log level, falling back to info
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Spec converts a roster entry into a ship spec. The entry starts from its
// type preset (player for player pilots, fighter otherwise) and overrides
// whatever it sets.
func (sc ShipConfig) Spec(mode FireMode) (ShipSpec, error) {
	pilot, err := ParsePilot(sc.Pilot)
	if err != nil {
		return ShipSpec{}, err
	}
	faction := FactionRed
	if pilot == PilotPlayer {
		faction = FactionBlue
	}
	if sc.Faction != "" {
		if faction, err = ParseFaction(sc.Faction); err != nil {
			return ShipSpec{}, err
		}
	}

	shipType := ShipTypeFighter
	if pilot == PilotPlayer {
		shipType = ShipTypePlayer
	}
	if sc.Type != "" {
		if shipType, err = ParseShipType(sc.Type); err != nil {
			return ShipSpec{}, err
		}
	}

	spec := GetShipTypeConfig(shipType, faction)
	spec.Pilot = pilot
	spec.FireMode = mode
	if sc.Name != "" {
		spec.Name = sc.Name
	}
	spec = spec.At(sc.X, sc.Y)

	if spec.Color, err = ParseColor(sc.Color); err != nil {
		return ShipSpec{}, err
	}
	if sc.Radius != 0 {
		spec.Radius = sc.Radius
	}
	if sc.BaseAccel != 0 {
		spec = spec.WithSpeed(sc.BaseAccel)
	}
	if sc.MaxSpeed != 0 {
		spec = spec.WithMaxSpeed(sc.MaxSpeed)
	}
	if sc.Damage != 0 {
		spec = spec.WithDamage(sc.Damage)
	}
	if sc.Health != 0 {
		spec.Health = sc.Health
	}
	if sc.FireRate != 0 {
		spec = spec.WithFiringRate(sc.FireRate)
	}
	if sc.AlwaysFiring != nil {
		spec.AlwaysFiring = *sc.AlwaysFiring
		// a cold AI gun stays cold unless a fire policy says otherwise
		if !spec.AlwaysFiring && spec.Pilot == PilotAI {
			spec = spec.WithFirePolicy(FireNever, 0)
		}
	}
	if sc.FirePolicy != "" {
		policy, err := ParseFirePolicy(sc.FirePolicy)
		if err != nil {
			return ShipSpec{}, err
		}
		spec = spec.WithFirePolicy(policy, sc.FireRange)
	}
	if sc.Intercept {
		spec = spec.WithIntercept(true)
	}
	if sc.ProjectileSpeed != 0 {
		spec.ProjectileSpeed = sc.ProjectileSpeed
	}
	if sc.ProjectileRadius != 0 {
		spec.ProjectileRadius = sc.ProjectileRadius
	}
	return spec, nil
}
