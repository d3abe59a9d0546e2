package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownScenario is returned for a scenario name that is not registered
	ErrUnknownScenario = errors.New("unknown scenario")
	// ErrInvalidScenario is returned when a roster breaks a construction invariant
	ErrInvalidScenario = errors.New("invalid scenario")
)

// Scenario is the initial roster of a match. Ships are spawned in order.
type Scenario struct {
	Name  string
	Ships []ShipSpec
}

// scenarios maps names to roster builders. Builders return fresh slices so
// callers may modify what they get.
var scenarios = map[string]func() Scenario{
	"sandbox": func() Scenario {
		return Scenario{
			Name: "sandbox",
			Ships: []ShipSpec{
				GetShipTypeConfig(ShipTypePlayer, FactionBlue),
			},
		}
	},
	"duel": func() Scenario {
		return Scenario{
			Name: "duel",
			Ships: []ShipSpec{
				GetShipTypeConfig(ShipTypePlayer, FactionBlue).At(-200, 0),
				GetShipTypeConfig(ShipTypeInterceptor, FactionRed).At(200, 0),
			},
		}
	},
	"skirmish": func() Scenario {
		wingman := GetShipTypeConfig(ShipTypeFighter, FactionBlue).At(-260, -80)
		wingman.Name = "wingman"
		return Scenario{
			Name: "skirmish",
			Ships: []ShipSpec{
				GetShipTypeConfig(ShipTypePlayer, FactionBlue).At(-260, 80),
				wingman,
				GetShipTypeConfig(ShipTypeFighter, FactionRed).At(260, 150),
				GetShipTypeConfig(ShipTypeGunship, FactionRed).At(300, 0),
				GetShipTypeConfig(ShipTypeInterceptor, FactionRed).At(260, -150),
			},
		}
	},
}

// ScenarioNames returns the registered scenario names, sorted
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetScenario returns a registered scenario by name
func GetScenario(name string) (Scenario, error) {
	build, ok := scenarios[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownScenario, name, strings.Join(ScenarioNames(), ", "))
	}
	return build(), nil
}

// ScenarioFromConfig resolves the roster to play: the config's ship list when
// present, the named scenario otherwise. The configured fire mode is applied
// to the player ship.
func ScenarioFromConfig(cfg Config) (Scenario, error) {
	mode, err := ParseFireMode(cfg.FireMode)
	if err != nil {
		return Scenario{}, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	var scenario Scenario
	if len(cfg.Ships) > 0 {
		scenario.Name = "custom"
		for i, sc := range cfg.Ships {
			spec, err := sc.Spec(mode)
			if err != nil {
				return Scenario{}, fmt.Errorf("%w: ship %d: %w", ErrInvalidScenario, i, err)
			}
			scenario.Ships = append(scenario.Ships, spec)
		}
	} else {
		if scenario, err = GetScenario(cfg.Scenario); err != nil {
			return Scenario{}, err
		}
		for i := range scenario.Ships {
			scenario.Ships[i].FireMode = mode
		}
	}

	if err := scenario.Validate(); err != nil {
		return Scenario{}, err
	}
	return scenario, nil
}

// Validate checks that the roster has exactly one player ship and that every
// ship satisfies its construction invariants
func (s Scenario) Validate() error {
	players := 0
	for _, spec := range s.Ships {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidScenario, s.Name, err)
		}
		if spec.Pilot == PilotPlayer {
			players++
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: %s: need exactly one player ship, got %d", ErrInvalidScenario, s.Name, players)
	}
	return nil
}

// WithAutopilot returns a copy of the scenario whose player ship is flown by
// the AI intent logic
func (s Scenario) WithAutopilot() Scenario {
	ships := make([]ShipSpec, len(s.Ships))
	copy(ships, s.Ships)
	for i := range ships {
		if ships[i].Pilot == PilotPlayer {
			ships[i].Autopilot = true
		}
	}
	s.Ships = ships
	return s
}

// Factions reports which factions the roster fields
func (s Scenario) Factions() (blue, red bool) {
	for _, spec := range s.Ships {
		switch spec.Faction {
		case FactionBlue:
			blue = true
		case FactionRed:
			red = true
		}
	}
	return blue, red
}
