package missiongroup

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed mapping.yaml
var mappingYAML []byte

type Mapping struct {
	Groups []GroupMapping `yaml:"groups"`
}

type GroupMapping struct {
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Departments []string `yaml:"departments"`
}

// DefaultMapping returns the mapping table shipped with the binary.
func DefaultMapping() (*Mapping, error) {
	return ParseMapping(mappingYAML)
}

func ParseMapping(data []byte) (*Mapping, error) {
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("missiongroup: parse mapping: %w", err)
	}
	seen := make(map[string]bool, len(m.Groups))
	for i, g := range m.Groups {
		if g.Code == "" || g.Name == "" {
			return nil, fmt.Errorf("missiongroup: mapping group %d needs a code and a name", i)
		}
		if seen[g.Code] {
			return nil, fmt.Errorf("missiongroup: duplicate mapping group %q", g.Code)
		}
		seen[g.Code] = true
	}
	return &m, nil
}

// Match returns the code of the first group owning a canonical name that
// contains, or is contained in, the department name. Groups and names are
// tried in file order.
func (m *Mapping) Match(departmentName string) (string, bool) {
	name := strings.TrimSpace(departmentName)
	if name == "" {
		return "", false
	}
	for _, g := range m.Groups {
		for _, canonical := range g.Departments {
			canonical = strings.TrimSpace(canonical)
			if canonical == "" {
				continue
			}
			if strings.Contains(name, canonical) || strings.Contains(canonical, name) {
				return g.Code, true
			}
		}
	}
	return "", false
}
