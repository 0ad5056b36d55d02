package views

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

// Profile is the content of the CV.
type Profile struct {
	Name       string       `yaml:"name"`
	Headline   string       `yaml:"headline"`
	Location   string       `yaml:"location"`
	Email      string       `yaml:"email"`
	Summary    string       `yaml:"summary"`
	Links      []Link       `yaml:"links"`
	Experience []Experience `yaml:"experience"`
	Education  []Education  `yaml:"education"`
	Skills     []string     `yaml:"skills"`
}

// Link is an external profile link.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Experience is a CV work entry.
type Experience struct {
	Role       string   `yaml:"role"`
	Company    string   `yaml:"company"`
	Start      string   `yaml:"start"`
	End        string   `yaml:"end"`
	Highlights []string `yaml:"highlights"`
}

// Education is a CV education entry.
type Education struct {
	School string `yaml:"school"`
	Degree string `yaml:"degree"`
	Year   string `yaml:"year"`
}

// Period returns "start - end", with "present" for an open end.
func (e Experience) Period() string {
	end := e.End
	if end == "" {
		end = "present"
	}
	if e.Start == "" {
		return end
	}
	return e.Start + " - " + end
}

// DefaultProfile returns the built-in profile.
func DefaultProfile() *Profile {
	p, err := ParseProfile(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("views: built-in profile: %v", err))
	}
	return p
}

// ParseProfile decodes a YAML profile. Unknown fields are rejected so typos
// in hand-written files surface early.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("parse profile: name is required")
	}
	return &p, nil
}

// LoadProfile reads a YAML profile from path. An empty path returns the
// built-in profile.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return ParseProfile(data)
}
