package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDatabaseConfig(t *testing.T) {
	path := writeConfig(t, "db-config.json",
		`{"host": "judge.example.com", "port": 3306, "user": "domjudge", "password": "secret", "database": "domjudge"}`)

	cfg, err := LoadDatabaseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "judge.example.com", cfg.Host)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "domjudge", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "domjudge", cfg.Database)
}

func TestLoadDatabaseConfigEnvOverride(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_PORT", "3307")

	path := writeConfig(t, "db-config.json",
		`{"host": "judge.example.com", "port": 3306, "user": "domjudge", "password": "secret", "database": "domjudge"}`)

	cfg, err := LoadDatabaseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "judge.example.com", cfg.Host)
}

func TestLoadDatabaseConfigMissingFile(t *testing.T) {
	_, err := LoadDatabaseConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadDatabaseConfigMalformedJSON(t *testing.T) {
	path := writeConfig(t, "db-config.json", `{"host": `)
	_, err := LoadDatabaseConfig(path)
	require.Error(t, err)
}

func TestLoadExamConfig(t *testing.T) {
	path := writeConfig(t, "exam-config.json",
		`{"shortname": "exam2026", "team_category": "Exams", "problem_names": ["sorting", "graphs"]}`)

	cfg, err := LoadExamConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "exam2026", cfg.Shortname)
	assert.Equal(t, "Exams", cfg.TeamCategory)
	assert.Equal(t, []string{"sorting", "graphs"}, cfg.ProblemNames)
	assert.False(t, cfg.AssignNewPasswordToExistingUsers)
}

func TestLoadExamConfigPasswordToggle(t *testing.T) {
	path := writeConfig(t, "exam-config.json",
		`{"shortname": "exam2026", "team_category": "Exams", "assign_new_password_to_existing_users": true}`)

	cfg, err := LoadExamConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.AssignNewPasswordToExistingUsers)
}

func TestLoadExamConfigRequiresShortname(t *testing.T) {
	path := writeConfig(t, "exam-config.json", `{"team_category": "Exams"}`)
	_, err := LoadExamConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shortname")
}
