package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	TuningFile   = "tuning.yaml"
	FightersFile = "fighters.yaml"
)

// Fixed bounds on the damage probabilities a tuning file may widen.
const (
	maxResistance = 0.3
	maxKnockdown  = 0.9
	minRecovery   = 0.1
	maxRecovery   = 0.95
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadTuning overlays the YAML file at path onto Default(). A missing file
// yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	cfg := Default()
	if err := loadYAML(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("loading tuning %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadFighters reads a fighter roster.
func LoadFighters(path string) (*FightersConfig, error) {
	var fc FightersConfig
	if err := loadYAML(path, &fc); err != nil {
		return nil, fmt.Errorf("loading fighters %s: %w", path, err)
	}
	if err := fc.validate(); err != nil {
		return nil, fmt.Errorf("loading fighters %s: %w", path, err)
	}
	return &fc, nil
}

// LoadAll reads tuning and roster from a config directory.
func LoadAll(dir string) (Tuning, *FightersConfig, error) {
	tuning, err := LoadTuning(filepath.Join(dir, TuningFile))
	if err != nil {
		return tuning, nil, err
	}
	roster, err := LoadFighters(filepath.Join(dir, FightersFile))
	if err != nil {
		return tuning, nil, err
	}
	return tuning, roster, nil
}

// normalize repairs values a partial YAML file can leave unusable. Maps are
// merged key by key by yaml.v3 unless the file nils them outright. Damage
// probability caps are held to their fixed bounds.
func (t *Tuning) normalize() {
	def := Default()
	if t.Fight.Rounds <= 0 {
		t.Fight.Rounds = def.Fight.Rounds
	}
	if t.Fight.RoundDuration <= 0 {
		t.Fight.RoundDuration = def.Fight.RoundDuration
	}
	if t.Fight.TickSeconds <= 0 {
		t.Fight.TickSeconds = def.Fight.TickSeconds
	}
	if t.Fight.Judges.Count <= 0 {
		t.Fight.Judges.Count = def.Fight.Judges.Count
	}
	if len(t.Fight.Exchange.CountAttempts) == 0 {
		t.Fight.Exchange.CountAttempts = def.Fight.Exchange.CountAttempts
	}
	if t.Ring.HalfWidth <= 0 {
		t.Ring.HalfWidth = def.Ring.HalfWidth
	}
	if t.Ring.MinSeparation <= 0 {
		t.Ring.MinSeparation = def.Ring.MinSeparation
	}
	if t.Ring.CircleMaxTicks < t.Ring.CircleMinTicks {
		t.Ring.CircleMaxTicks = t.Ring.CircleMinTicks
	}
	t.Damage.ResistanceMax = min(max(t.Damage.ResistanceMax, 0), maxResistance)
	t.Damage.KnockdownMax = min(max(t.Damage.KnockdownMax, 0), maxKnockdown)
	t.Damage.RecoveryMin = min(max(t.Damage.RecoveryMin, minRecovery), maxRecovery)
	t.Damage.RecoveryMax = min(max(t.Damage.RecoveryMax, t.Damage.RecoveryMin), maxRecovery)
	if t.Decision.MemoryCap <= 0 {
		t.Decision.MemoryCap = def.Decision.MemoryCap
	}
	if t.Decision.Styles == nil {
		t.Decision.Styles = map[string]StyleWeights{}
	}
	if _, ok := t.Decision.Styles[t.Decision.BaselineStyle]; !ok {
		t.Decision.BaselineStyle = def.Decision.BaselineStyle
		if t.Decision.Styles == nil {
		t.Decision.Styles = map[string]StyleWeights{}
	}
	if _, ok := t.Decision.Styles[t.Decision.BaselineStyle]; !ok {
			t.Decision.Styles[t.Decision.BaselineStyle] = def.Decision.Styles[def.Decision.BaselineStyle]
		}
	}
}
