package config

import (
	"os"
	"strconv"
)

// Config is the process configuration, read from the environment. A .env
// file is loaded by cmd/server before this runs.
type Config struct {
	Addr         string
	RoundSeconds int
	ChoiceCount  int
	MaxPlayers   int
	MinPlayers   int
}

func Load() Config {
	return Config{
		Addr:         getString("SKETCH_ADDR", ":8080"),
		RoundSeconds: getInt("SKETCH_ROUND_SECONDS", 60),
		ChoiceCount:  getInt("SKETCH_CHOICE_COUNT", 3),
		MaxPlayers:   getInt("SKETCH_MAX_PLAYERS", 16),
		MinPlayers:   getInt("SKETCH_MIN_PLAYERS", 2),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
