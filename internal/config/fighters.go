package config

import (
	"errors"
	"fmt"

	"ringsim/internal/fighter"
)

var ErrUnknownFighter = errors.New("unknown fighter")

type FightersConfig struct {
	Fighters []FighterDef `yaml:"fighters"`
}

type FighterDef struct {
	ID           string                 `yaml:"id"`
	Name         string                 `yaml:"name"`
	OptimalRange float64                `yaml:"optimal_range"`
	Physical     fighter.Physical       `yaml:"physical"`
	Power        fighter.Power          `yaml:"power"`
	Speed        fighter.Speed          `yaml:"speed"`
	Defense      fighter.Defense        `yaml:"defense"`
	Technical    fighter.Technical      `yaml:"technical"`
	Mental       fighter.Mental         `yaml:"mental"`
	Stamina      fighter.StaminaProfile `yaml:"stamina"`
	Style        fighter.Style          `yaml:"style"`
	Note         string                 `yaml:"note"`
}

// Find returns the definition with the given id.
func (fc *FightersConfig) Find(id string) (FighterDef, error) {
	if fc != nil {
		for _, d := range fc.Fighters {
			if d.ID == id {
				return d, nil
			}
		}
	}
	return FighterDef{}, fmt.Errorf("%w: %q", ErrUnknownFighter, id)
}

// Build returns a fresh, primed fighter for one fight.
func (d FighterDef) Build() *fighter.Fighter {
	f := &fighter.Fighter{
		ID:           d.ID,
		Name:         d.Name,
		OptimalRange: d.OptimalRange,
		Physical:     d.Physical,
		Power:        d.Power,
		Speed:        d.Speed,
		Defense:      d.Defense,
		Technical:    d.Technical,
		Mental:       d.Mental,
		Stamina:      d.Stamina,
		Style:        d.Style,
	}
	f.Prime()
	return f
}

func (fc *FightersConfig) validate() error {
	seen := map[string]bool{}
	for i, d := range fc.Fighters {
		if d.ID == "" {
			return fmt.Errorf("fighter #%d has no id", i)
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate fighter id %q", d.ID)
		}
		seen[d.ID] = true
	}
	return nil
}
