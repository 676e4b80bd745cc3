package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewardConfigNormalize(t *testing.T) {
	var cfg RewardConfig
	cfg.Normalize()

	assert.Equal(t, 100, cfg.LessonXP)
	assert.Equal(t, 200, cfg.XPPerLevel)
	assert.Equal(t, RepeatXPAlways, cfg.RepeatXP)
}

func TestRewardConfigNormalize_KeepsOncePolicy(t *testing.T) {
	cfg := RewardConfig{LessonXP: 50, XPPerLevel: 500, RepeatXP: RepeatXPOnce}
	cfg.Normalize()

	assert.Equal(t, 50, cfg.LessonXP)
	assert.Equal(t, 500, cfg.XPPerLevel)
	assert.Equal(t, RepeatXPOnce, cfg.RepeatXP)
}

func TestRewardConfigNormalize_UnknownPolicyFallsBack(t *testing.T) {
	cfg := RewardConfig{RepeatXP: "sometimes"}
	cfg.Normalize()

	assert.Equal(t, RepeatXPAlways, cfg.RepeatXP)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:      "db.internal",
		Port:      3306,
		User:      "artlearn",
		Password:  "secret",
		DBName:    "artlearn",
		Charset:   "utf8mb4",
		ParseTime: true,
	}

	assert.Equal(t,
		"artlearn:secret@tcp(db.internal:3306)/artlearn?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.DSN(),
	)
}
