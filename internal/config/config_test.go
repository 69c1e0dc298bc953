package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftplan/internal/entity"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileReturnsConfigError(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	require.Error(t, err)
	kind, ok := entity.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, entity.KindConfigError, kind)
}

func TestLoadMalformedYAMLReturnsParseError(t *testing.T) {
	path := writeConfig(t, "agents: [this is not: valid: yaml")
	_, err := Load(path)
	require.Error(t, err)
	kind, ok := entity.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, entity.KindParseError, kind)
}

func TestLoadParsesWellFormedConfig(t *testing.T) {
	path := writeConfig(t, `
agents:
  - code: alice
    rule:
      kind: choice
      left:
        kind: literal
        literal:
          code: D
          intervals:
            - start: 480
              end: 960
      right:
        kind: literal
        literal:
          code: OFF
target:
  values: [1, 2, 3]
  days: 1
  slot_length_minutes: 480
annealing:
  cooling: 0.95
  comfort_weight: 0.1
  seed: 42
server:
  addr: ":8080"
  database_url: "postgres://localhost/shiftplan"
  redis_addr: "localhost:6379"
  cron_spec: "0 3 * * *"
  env: "development"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Agents, 1)
	assert.Equal(t, "alice", cfg.Agents[0].Code)
	assert.Equal(t, []float64{1, 2, 3}, cfg.Target.Values)
	assert.Equal(t, 0.95, cfg.Annealing.Cooling)
	assert.Equal(t, "development", cfg.Server.Env)

	rule, err := cfg.Agents[0].Rule.ToEntity()
	require.NoError(t, err)
	shifts := rule.Shifts()
	assert.Contains(t, shifts, "D")
	assert.Contains(t, shifts, "OFF")
	assert.True(t, shifts["D"].IsWork())
	assert.False(t, shifts["OFF"].IsWork())
}

func TestRuleSpecToEntityRejectsUnknownKind(t *testing.T) {
	spec := RuleSpec{Kind: "bogus"}
	_, err := spec.ToEntity()
	require.Error(t, err)
	kind, ok := entity.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, entity.KindParseError, kind)
}

func TestRuleSpecToEntityRejectsIncompleteConcat(t *testing.T) {
	spec := RuleSpec{Kind: "concat", Left: &RuleSpec{Kind: "literal", Literal: &ShiftSpec{Code: "D"}}}
	_, err := spec.ToEntity()
	require.Error(t, err)
	kind, ok := entity.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, entity.KindParseError, kind)
}

func TestRuleSpecToEntityStar(t *testing.T) {
	spec := RuleSpec{Kind: "star", Inner: &RuleSpec{Kind: "literal", Literal: &ShiftSpec{Code: "OFF"}}}
	rule, err := spec.ToEntity()
	require.NoError(t, err)
	assert.Equal(t, entity.KindStar, rule.Kind)
}
