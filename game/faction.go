package game

import (
	"fmt"
	"image/color"
	"strings"
)

// Faction represents which side an entity belongs to. Exactly two exist.
type Faction uint8

const (
	FactionBlue Faction = iota
	FactionRed
)

// FactionConfig holds configuration for each faction
type FactionConfig struct {
	Faction Faction
	Name    string
	Color   color.RGBA
}

var (
	// FactionConfigs holds configuration for each faction
	FactionConfigs = map[Faction]FactionConfig{
		FactionBlue: {
			Faction: FactionBlue,
			Name:    "blue",
			Color:   color.RGBA{0, 71, 242, 255},
		},
		FactionRed: {
			Faction: FactionRed,
			Name:    "red",
			Color:   color.RGBA{230, 40, 40, 255},
		},
	}
)

// GetFactionConfig returns configuration for a faction
func GetFactionConfig(faction Faction) FactionConfig {
	if config, ok := FactionConfigs[faction]; ok {
		return config
	}
	return FactionConfigs[FactionRed]
}

// Opposite returns the other faction
func (f Faction) Opposite() Faction {
	if f == FactionBlue {
		return FactionRed
	}
	return FactionBlue
}

// Hostile reports whether entities of f and other may damage each other
func (f Faction) Hostile(other Faction) bool {
	return f != other
}

func (f Faction) String() string {
	return GetFactionConfig(f).Name
}

// ParseFaction converts a config name into a Faction
func ParseFaction(name string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blue", "0":
		return FactionBlue, nil
	case "red", "1":
		return FactionRed, nil
	default:
		return 0, fmt.Errorf("unknown faction %q", name)
	}
}
