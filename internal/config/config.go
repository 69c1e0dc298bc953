// Package config loads the YAML configuration shared by cmd/planctl,
// cmd/server and cmd/worker: agent rule sources, the staffing target,
// and annealing parameters, grounded on jdcasey-myshift-go's use of
// gopkg.in/yaml.v3 for exactly this kind of CLI config file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schedcu/shiftplan/internal/entity"
)

// AgentConfig is one agent's rule, expressed as the same tagged-union
// tree the HTTP API accepts.
type AgentConfig struct {
	Code string   `yaml:"code"`
	Rule RuleSpec `yaml:"rule"`
}

// ShiftSpec is a YAML-friendly shift literal.
type ShiftSpec struct {
	Code      string          `yaml:"code"`
	Intervals []IntervalSpec  `yaml:"intervals,omitempty"`
}

// IntervalSpec is a YAML-friendly half-open minute interval.
type IntervalSpec struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// RuleSpec is a YAML-friendly mirror of entity.ShiftRule.
type RuleSpec struct {
	Kind    string     `yaml:"kind"`
	Literal *ShiftSpec `yaml:"literal,omitempty"`
	Left    *RuleSpec  `yaml:"left,omitempty"`
	Right   *RuleSpec  `yaml:"right,omitempty"`
	Inner   *RuleSpec  `yaml:"inner,omitempty"`
}

// ToEntity converts the YAML rule tree into entity.ShiftRule.
func (r RuleSpec) ToEntity() (entity.ShiftRule, error) {
	switch r.Kind {
	case "literal":
		if r.Literal == nil {
			return entity.ShiftRule{}, entity.NewError(entity.KindParseError, "literal rule missing shift")
		}
		shift := r.Literal.toEntity()
		return entity.Lit(shift), nil
	case "choice", "concat":
		if r.Left == nil || r.Right == nil {
			return entity.ShiftRule{}, entity.NewError(entity.KindParseError, "%s rule missing an operand", r.Kind)
		}
		left, err := r.Left.ToEntity()
		if err != nil {
			return entity.ShiftRule{}, err
		}
		right, err := r.Right.ToEntity()
		if err != nil {
			return entity.ShiftRule{}, err
		}
		if r.Kind == "choice" {
			return entity.Choice(left, right), nil
		}
		return entity.Concat(left, right), nil
	case "star":
		if r.Inner == nil {
			return entity.ShiftRule{}, entity.NewError(entity.KindParseError, "star rule missing inner term")
		}
		inner, err := r.Inner.ToEntity()
		if err != nil {
			return entity.ShiftRule{}, err
		}
		return entity.Star(inner), nil
	default:
		return entity.ShiftRule{}, entity.NewError(entity.KindParseError, "unknown rule kind %q", r.Kind)
	}
}

func (s ShiftSpec) toEntity() entity.Shift {
	if len(s.Intervals) == 0 {
		return entity.Rest(s.Code)
	}
	ivs := make([]entity.Interval, len(s.Intervals))
	for i, iv := range s.Intervals {
		ivs[i] = entity.Interval{Start: iv.Start, End: iv.End}
	}
	return entity.NewShift(s.Code, ivs)
}

// TargetConfig is the staffing target section.
type TargetConfig struct {
	Values      []float64 `yaml:"values"`
	Days        int       `yaml:"days"`
	SlotMinutes int       `yaml:"slot_length_minutes"`
}

// AnnealingConfig overrides the scheduler defaults.
type AnnealingConfig struct {
	Cooling       float64 `yaml:"cooling"`
	ComfortWeight float64 `yaml:"comfort_weight"`
	Seed          uint64  `yaml:"seed"`
}

// ServerConfig holds cmd/server and cmd/worker connection settings.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	DatabaseURL string `yaml:"database_url"`
	RedisAddr   string `yaml:"redis_addr"`
	CronSpec    string `yaml:"cron_spec"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Config is the top-level configuration file shape.
type Config struct {
	Agents    []AgentConfig   `yaml:"agents"`
	Target    TargetConfig    `yaml:"target"`
	Annealing AnnealingConfig `yaml:"annealing"`
	Server    ServerConfig    `yaml:"server"`
}

// Load reads and parses a YAML config file from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, entity.NewError(entity.KindConfigError, "failed to read config %q: %v", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, entity.NewError(entity.KindParseError, "failed to parse config %q: %v", path, err)
	}
	return &cfg, nil
}
