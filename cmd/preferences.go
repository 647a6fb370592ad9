package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// PreferencesFile is the name of the preferences file in the data folder.
const PreferencesFile = "preferences.json"

// Preferences are the user settings stored in the data folder.
type Preferences struct {
	Currency     string `json:"currency"`
	DateField    string `json:"date_type"`
	UpcomingDays int    `json:"upcoming_days"`
}

// DefaultPreferences apply when the data folder has no preferences file, and
// to the settings it leaves out.
var DefaultPreferences = Preferences{
	Currency:     "EUR",
	DateField:    "accounting",
	UpcomingDays: 7,
}

// LoadPreferences reads the preferences of the data folder dir.
func LoadPreferences(dir string) (Preferences, error) {
	prefs := DefaultPreferences
	data, err := os.ReadFile(filepath.Join(dir, PreferencesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, err
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("decoding %s: %w", PreferencesFile, err)
	}
	if prefs.UpcomingDays <= 0 {
		prefs.UpcomingDays = DefaultPreferences.UpcomingDays
	}
	return prefs, nil
}
