package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	PlayerID   string
	PlayerFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("DMGAME_SERVER", "http://localhost:8080"),
		PlayerID:   os.Getenv("DMGAME_PLAYER"),
		PlayerFile: getEnvOrDefault("DMGAME_PLAYER_FILE", defaultPlayerFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadPlayer loads the player ID from file if not already set
func (c *Config) LoadPlayer() error {
	if c.PlayerID != "" {
		return nil
	}

	data, err := os.ReadFile(c.PlayerFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No player file is fine
		}
		return err
	}

	c.PlayerID = strings.TrimSpace(string(data))
	return nil
}

// SavePlayer saves the player ID to the player file
func (c *Config) SavePlayer(playerID string) error {
	c.PlayerID = playerID

	dir := filepath.Dir(c.PlayerFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.PlayerFile, []byte(playerID), 0600)
}

func defaultPlayerFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dmgame/player"
	}
	return filepath.Join(home, ".dmgame", "player")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
