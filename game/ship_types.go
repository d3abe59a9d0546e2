package game

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PilotKind selects who produces a ship's intent
type PilotKind int

const (
	PilotAI PilotKind = iota
	PilotPlayer
)

// FirePolicy decides when an AI ship holds its trigger
type FirePolicy int

const (
	FireAlways FirePolicy = iota
	FireInRange
	FireNever
)

// FireMode decides how the player's fire button maps onto the firing flag
type FireMode int

const (
	// FireModeToggle starts firing on press and stops on release edges
	FireModeToggle FireMode = iota
	// FireModeHeld mirrors the button's current state every frame
	FireModeHeld
)

// ShipType names a preset ship template
type ShipType int

const (
	ShipTypePlayer ShipType = iota
	ShipTypeFighter
	ShipTypeGunship
	ShipTypeInterceptor
	ShipTypeCount
)

// Default ship stats
const (
	DefaultShipRadius       = 8.0
	DefaultBaseAccel        = 1000.0
	DefaultShipDamage       = 1.0
	DefaultShipHealth       = 100.0
	DefaultFireRate         = 500 * time.Millisecond
	DefaultProjectileSpeed  = 200.0
	DefaultProjectileRadius = 5.0
)

// ShipSpec holds everything needed to construct a ship. It is only read at
// spawn time.
type ShipSpec struct {
	Name             string
	Type             ShipType
	Faction          Faction
	Pilot            PilotKind
	X, Y             float64
	Radius           float64
	Color            Color
	BaseAccel        float64
	MaxSpeed         float64 // <= 0 means unbounded
	Damage           float64
	Health           float64
	FireRate         time.Duration
	AlwaysFiring     bool
	FirePolicy       FirePolicy
	FireRange        float64
	Intercept        bool
	ProjectileSpeed  float64
	ProjectileRadius float64
	FireMode         FireMode
	Autopilot        bool
}

// NewShipSpec returns a spec with the default stats
func NewShipSpec(name string, faction Faction, pilot PilotKind) ShipSpec {
	return ShipSpec{
		Name:             name,
		Faction:          faction,
		Pilot:            pilot,
		Radius:           DefaultShipRadius,
		BaseAccel:        DefaultBaseAccel,
		MaxSpeed:         0,
		Damage:           DefaultShipDamage,
		Health:           DefaultShipHealth,
		FireRate:         DefaultFireRate,
		FirePolicy:       FireAlways,
		ProjectileSpeed:  DefaultProjectileSpeed,
		ProjectileRadius: DefaultProjectileRadius,
	}
}

// GetShipTypeConfig returns the template for a ship type
func GetShipTypeConfig(shipType ShipType, faction Faction) ShipSpec {
	switch shipType {
	case ShipTypePlayer:
		spec := NewShipSpec("player", faction, PilotPlayer)
		spec.Type = ShipTypePlayer
		return spec
	case ShipTypeFighter:
		spec := NewShipSpec("fighter", faction, PilotAI).
			WithSpeed(600).
			WithMaxSpeed(220).
			WithFiringRate(700 * time.Millisecond)
		spec.Type = ShipTypeFighter
		spec.Radius = 7
		spec.Health = 3
		spec.AlwaysFiring = true
		return spec
	case ShipTypeGunship:
		spec := NewShipSpec("gunship", faction, PilotAI).
			WithSpeed(250).
			WithMaxSpeed(90).
			WithDamage(2).
			WithFiringRate(300 * time.Millisecond).
			WithFirePolicy(FireInRange, 350)
		spec.Type = ShipTypeGunship
		spec.Radius = 14
		spec.Health = 12
		spec.AlwaysFiring = true
		return spec
	case ShipTypeInterceptor:
		spec := NewShipSpec("interceptor", faction, PilotAI).
			WithSpeed(450).
			WithMaxSpeed(160).
			WithFiringRate(900 * time.Millisecond).
			WithIntercept(true)
		spec.Type = ShipTypeInterceptor
		spec.Radius = 9
		spec.Health = 5
		spec.AlwaysFiring = true
		spec.ProjectileSpeed = 320
		return spec
	default:
		return GetShipTypeConfig(ShipTypePlayer, faction)
	}
}

// WithFiringRate sets the weapon cooldown
func (s ShipSpec) WithFiringRate(rate time.Duration) ShipSpec {
	s.FireRate = rate
	return s
}

// WithSpeed sets the base acceleration magnitude
func (s ShipSpec) WithSpeed(accel float64) ShipSpec {
	s.BaseAccel = accel
	return s
}

// WithDamage sets the damage carried by every projectile the ship fires
func (s ShipSpec) WithDamage(damage float64) ShipSpec {
	s.Damage = damage
	return s
}

// WithMaxSpeed sets the velocity clamp; zero or a negative value disables it
func (s ShipSpec) WithMaxSpeed(speed float64) ShipSpec {
	s.MaxSpeed = speed
	return s
}

// WithIntercept toggles intercept prediction for AI aim
func (s ShipSpec) WithIntercept(intercept bool) ShipSpec {
	s.Intercept = intercept
	return s
}

// WithFirePolicy sets when an AI ship fires
func (s ShipSpec) WithFirePolicy(policy FirePolicy, fireRange float64) ShipSpec {
	s.FirePolicy = policy
	s.FireRange = fireRange
	return s
}

// At places the ship
func (s ShipSpec) At(x, y float64) ShipSpec {
	s.X, s.Y = x, y
	return s
}

// Validate checks the construction invariants
func (s ShipSpec) Validate() error {
	switch {
	case !(s.Radius > 0):
		return fmt.Errorf("ship %q: radius must be positive, got %v", s.Name, s.Radius)
	case !(s.Health > 0):
		return fmt.Errorf("ship %q: health must be positive, got %v", s.Name, s.Health)
	case !(s.Damage > 0):
		return fmt.Errorf("ship %q: damage must be positive, got %v", s.Name, s.Damage)
	case s.FireRate <= 0:
		return fmt.Errorf("ship %q: fire rate must be positive, got %v", s.Name, s.FireRate)
	case !(s.ProjectileSpeed > 0):
		return fmt.Errorf("ship %q: projectile speed must be positive, got %v", s.Name, s.ProjectileSpeed)
	case !(s.ProjectileRadius > 0):
		return fmt.Errorf("ship %q: projectile radius must be positive, got %v", s.Name, s.ProjectileRadius)
	case s.BaseAccel < 0 || math.IsNaN(s.BaseAccel):
		return fmt.Errorf("ship %q: base acceleration must not be negative, got %v", s.Name, s.BaseAccel)
	case s.Faction != FactionBlue && s.Faction != FactionRed:
		return fmt.Errorf("ship %q: unknown faction %d", s.Name, s.Faction)
	}
	return nil
}

// ParsePilot converts a config name into a PilotKind
func ParsePilot(name string) (PilotKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ai", "":
		return PilotAI, nil
	case "player", "human":
		return PilotPlayer, nil
	default:
		return 0, fmt.Errorf("unknown pilot %q", name)
	}
}

// ParseFirePolicy converts a config name into a FirePolicy
func ParseFirePolicy(name string) (FirePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "always", "":
		return FireAlways, nil
	case "range", "inrange":
		return FireInRange, nil
	case "never":
		return FireNever, nil
	default:
		return 0, fmt.Errorf("unknown fire policy %q", name)
	}
}

// ParseFireMode converts a config name into a FireMode
func ParseFireMode(name string) (FireMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toggle", "":
		return FireModeToggle, nil
	case "held", "hold":
		return FireModeHeld, nil
	default:
		return 0, fmt.Errorf("unknown fire mode %q", name)
	}
}

// ParseShipType converts a config name into a ShipType
func ParseShipType(name string) (ShipType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "player":
		return ShipTypePlayer, nil
	case "fighter":
		return ShipTypeFighter, nil
	case "gunship":
		return ShipTypeGunship, nil
	case "interceptor":
		return ShipTypeInterceptor, nil
	default:
		return 0, fmt.Errorf("unknown ship type %q", name)
	}
}
