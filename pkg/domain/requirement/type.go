package requirement

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type classifies a requirement.
type Type string

const (
	TypeFunctional    Type = "functional"
	TypeNonFunctional Type = "non_functional"
	TypeBusiness      Type = "business"
	TypeTechnical     Type = "technical"
	TypeUser          Type = "user"
)

// AllTypes returns all requirement types in declaration order.
func AllTypes() []Type {
	return []Type{
		TypeFunctional,
		TypeNonFunctional,
		TypeBusiness,
		TypeTechnical,
		TypeUser,
	}
}

// IsValid returns true if the type is one of the known requirement types.
func (t Type) IsValid() bool {
	switch t {
	case TypeFunctional, TypeNonFunctional, TypeBusiness, TypeTechnical, TypeUser:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// DisplayName returns a human-readable display name for the type.
func (t Type) DisplayName() string {
	switch t {
	case TypeFunctional:
		return "Functional"
	case TypeNonFunctional:
		return "Non-Functional"
	case TypeBusiness:
		return "Business"
	case TypeTechnical:
		return "Technical"
	case TypeUser:
		return "User"
	default:
		return string(t)
	}
}

// ParseType parses a string into a Type. Matching is case-insensitive and
// accepts "-" in place of "_".
func ParseType(s string) (Type, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	t := Type(normalized)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid requirement type: %s", s)
	}
	return t, nil
}

// MarshalJSON implements json.Marshaler interface.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (t *Type) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := ParseType(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler interface.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	parsed, err := ParseType(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
