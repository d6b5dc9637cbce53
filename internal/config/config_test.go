package config_test

import (
	"testing"

	"github.com/rmarques/quizdesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		SpecificDBPath:     "specific_questions.db",
		GeneralDBPath:      "general_questions.db",
		LogLevel:           "INFO",
		DefaultCount:       40,
		SpecificRatio:      0.6,
		ExcellentThreshold: 70,
		GoodThreshold:      50,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyStorePaths(t *testing.T) {
	cfg := validConfig()
	cfg.SpecificDBPath = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPECIFIC_DB_PATH")

	cfg = validConfig()
	cfg.GeneralDBPath = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GENERAL_DB_PATH")
}

func TestValidate_DefaultCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{name: "zero count", count: 0},
		{name: "negative count", count: -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.DefaultCount = tt.count

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "DEFAULT_QUESTION_COUNT")
		})
	}
}

func TestValidate_Ratio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		valid bool
	}{
		{name: "zero ratio", ratio: 0, valid: true},
		{name: "full ratio", ratio: 1, valid: true},
		{name: "negative ratio", ratio: -0.1, valid: false},
		{name: "ratio above one", ratio: 1.5, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.SpecificRatio = tt.ratio

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "SPECIFIC_RATIO")
			}
		})
	}
}

func TestValidate_Thresholds(t *testing.T) {
	cfg := validConfig()
	cfg.ExcellentThreshold = 120
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.GoodThreshold = 80 // above excellent
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.GoodThreshold = -5
	require.Error(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "SPECIFIC_DB_PATH", "GENERAL_DB_PATH", "DEFAULT_QUESTION_COUNT", "SPECIFIC_RATIO", "EXCELLENT_THRESHOLD", "GOOD_THRESHOLD"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "specific_questions.db", cfg.SpecificDBPath)
	assert.Equal(t, "general_questions.db", cfg.GeneralDBPath)
	assert.Equal(t, 40, cfg.DefaultCount)
	assert.Equal(t, 0.6, cfg.SpecificRatio)
	assert.Equal(t, 70.0, cfg.ExcellentThreshold)
	assert.Equal(t, 50.0, cfg.GoodThreshold)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DEFAULT_QUESTION_COUNT", "20")
	t.Setenv("SPECIFIC_RATIO", "0.5")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 20, cfg.DefaultCount)
	assert.Equal(t, 0.5, cfg.SpecificRatio)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DEFAULT_QUESTION_COUNT", "lots")
	t.Setenv("SPECIFIC_RATIO", "most")

	cfg := config.Load()

	assert.Equal(t, 40, cfg.DefaultCount)
	assert.Equal(t, 0.6, cfg.SpecificRatio)
}
