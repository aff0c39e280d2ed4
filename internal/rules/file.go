package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/financellm/financellm/internal/model"
)

// File is the on-disk rule list, e.g. rules/budget-rules.yaml.
type File struct {
	Rules []Entry `yaml:"rules"`
}

// Entry is one rule in a rule file.
type Entry struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

// LoadFile reads a YAML rule file. Entries with a blank pattern or category
// are rejected.
func LoadFile(path string) ([]model.BudgetRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes YAML rule file contents.
func ParseFile(data []byte) ([]model.BudgetRule, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	out := make([]model.BudgetRule, 0, len(f.Rules))
	for i, e := range f.Rules {
		if strings.TrimSpace(e.Pattern) == "" || strings.TrimSpace(e.Category) == "" {
			return nil, fmt.Errorf("rule %d: pattern and category are required", i+1)
		}
		out = append(out, model.BudgetRule{Pattern: e.Pattern, Category: e.Category})
	}
	return out, nil
}

// SaveFile writes rules as a YAML rule file.
func SaveFile(path string, rules []model.BudgetRule) error {
	f := File{Rules: make([]Entry, 0, len(rules))}
	for _, r := range rules {
		f.Rules = append(f.Rules, Entry{Pattern: r.Pattern, Category: r.Category})
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
