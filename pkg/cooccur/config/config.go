package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/cooccur/pkg/cooccur/vocab"
)

// Vocabulary is a declared symbol universe for one variable. Order in
// the file is the canonical index order.
type Vocabulary struct {
	Variable string   `yaml:"variable"`
	Symbols  []string `yaml:"symbols"`
}

// LoadVocabulary loads a vocabulary from a YAML file
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Settings holds tunable engine options
type Settings struct {
	TopK int `yaml:"top_k"`
}

// LoadSettings loads engine settings from a YAML file
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Loader loads all configuration files and constructs components
type Loader struct {
	XVocabPath   string
	YVocabPath   string
	SettingsPath string
}

// Components holds all loaded configuration components. Vocabularies
// are nil when no path was given, which selects discovery mode.
type Components struct {
	XVocab   *vocab.Index
	YVocab   *vocab.Index
	Settings Settings
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.XVocabPath != "" {
		v, err := LoadVocabulary(l.XVocabPath)
		if err != nil {
			return nil, fmt.Errorf("load x vocabulary: %w", err)
		}
		idx, err := vocab.New(v.Symbols)
		if err != nil {
			return nil, fmt.Errorf("x vocabulary: %w", err)
		}
		comp.XVocab = idx
	}

	if l.YVocabPath != "" {
		v, err := LoadVocabulary(l.YVocabPath)
		if err != nil {
			return nil, fmt.Errorf("load y vocabulary: %w", err)
		}
		idx, err := vocab.New(v.Symbols)
		if err != nil {
			return nil, fmt.Errorf("y vocabulary: %w", err)
		}
		comp.YVocab = idx
	}

	if l.SettingsPath != "" {
		s, err := LoadSettings(l.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		comp.Settings = *s
	}

	return comp, nil
}
