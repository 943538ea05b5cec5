package jsoncfg

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"mockupgen/internal/domain"
)

// PromptPlaceholder is substituted with the artwork title when building the
// generation prompt for a mockup.
const PromptPlaceholder = "{artwork_subject}"

// LoadMockups reads and validates the mockup configuration file. The
// configuration is loaded once at startup; an empty or malformed file is a
// fatal startup condition.
func LoadMockups(path string) ([]domain.MockupSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mockup config: read %s: %w", path, err)
	}
	var specs []domain.MockupSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("mockup config: parse %s: %w", path, err)
	}
	if err := ValidateMockups(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// ValidateMockups ensures every spec has a unique type, a substitutable
// prompt, and a positive target size.
func ValidateMockups(specs []domain.MockupSpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("mockup config: at least one mockup is required")
	}
	seen := make(map[string]struct{}, len(specs))
	for i, s := range specs {
		if strings.TrimSpace(s.Type) == "" {
			return fmt.Errorf("mockup config: entry %d: type is required", i)
		}
		if _, dup := seen[s.Type]; dup {
			return fmt.Errorf("mockup config: duplicate type %q", s.Type)
		}
		seen[s.Type] = struct{}{}
		if !strings.Contains(s.Prompt, PromptPlaceholder) {
			return fmt.Errorf("mockup config: %q: prompt must contain %s", s.Type, PromptPlaceholder)
		}
		if s.Size[0] <= 0 || s.Size[1] <= 0 {
			return fmt.Errorf("mockup config: %q: size must be a positive width/height pair", s.Type)
		}
	}
	return nil
}
