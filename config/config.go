package config

import (
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings is the on-disk configuration for mailsort.
type Settings struct {
	Endpoint string            `yaml:"endpoint"`
	LogFile  string            `yaml:"logFile"`
	Colors   map[string]string `yaml:"categoryColors"` // category -> hex badge color
	Gmail    GmailSettings     `yaml:"gmail"`
}

// GmailSettings controls the optional inbox import.
type GmailSettings struct {
	Enabled         bool     `yaml:"enabled"`
	CredentialsFile string   `yaml:"credentialsFile"`
	TokenFile       string   `yaml:"tokenFile"`
	FetchCount      int64    `yaml:"fetchCount"`
	Query           string   `yaml:"query"`
	IgnoreSenders   []string `yaml:"ignoreSenders"`
}

// Defaults returns the settings written when no config file exists.
func Defaults() Settings {
	return Settings{
		Endpoint: "http://127.0.0.1:5000/predict",
		LogFile:  "mailsort.log",
		Colors: map[string]string{
			"Admissions":   "#FF6B6B",
			"Examinations": "#FFA94D",
			"Hostel":       "#4D96FF",
			"Fees":         "#51CF66",
			"Technical":    "#845EF7",
			"General":      "#FF922B",
		},
		Gmail: GmailSettings{
			CredentialsFile: "credentials.json",
			TokenFile:       "token.json",
			FetchCount:      10,
			Query:           "in:inbox -in:draft",
			IgnoreSenders:   []string{},
		},
	}
}

// Manager handles loading, saving, and accessing settings.
type Manager struct {
	filePath string
	settings *Settings
	mu       sync.RWMutex
}

// NewManager loads filePath, creating it with defaults if it doesn't exist.
func NewManager(filePath string) (*Manager, error) {
	d := Defaults()
	m := &Manager{
		filePath: filePath,
		settings: &d,
	}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads settings from the YAML file. Fields missing from the file keep
// their default values.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			d := Defaults()
			m.settings = &d
			return m.save() // Create the file with defaults
		}
		return err
	}

	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return err
	}
	m.settings = &s
	return nil
}

// save writes the current settings. Callers must hold the write lock.
func (m *Manager) save() error {
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return err
	}
	return os.WriteFile(m.filePath, data, 0644)
}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := *m.settings
	s.Colors = maps.Clone(m.settings.Colors)
	s.Gmail.IgnoreSenders = slices.Clone(m.settings.Gmail.IgnoreSenders)
	return s
}

// SetEndpoint changes the classification endpoint and saves.
func (m *Manager) SetEndpoint(endpoint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings.Endpoint == endpoint {
		return nil
	}
	m.settings.Endpoint = endpoint
	return m.save()
}

// AddIgnoreSender adds a sender to the Gmail import ignore list and saves.
func (m *Manager) AddIgnoreSender(sender string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.settings.Gmail.IgnoreSenders, sender) {
		return nil // Already exists
	}
	m.settings.Gmail.IgnoreSenders = append(m.settings.Gmail.IgnoreSenders, sender)
	return m.save()
}
