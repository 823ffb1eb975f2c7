package tree

import "fmt"

// Default field names.
const (
	DefaultIDField       = "id"
	DefaultParentIDField = "parentId"

	// ChildrenField is the reserved key holding nested child records in the
	// input and exported shapes.
	ChildrenField = "children"
)

// Config names the record fields carrying identifiers. The zero value is
// usable: empty names fall back to the defaults.
type Config struct {
	IDField       string `json:"id_field" yaml:"id_field" mapstructure:"id_field"`
	ParentIDField string `json:"parent_id_field" yaml:"parent_id_field" mapstructure:"parent_id_field"`

	// RejectCycles makes Move fail with ErrCycle when the new parent is the
	// moved node or one of its descendants. Off by default; without it such
	// a move detaches the subtree from the root.
	RejectCycles bool `json:"reject_cycles" yaml:"reject_cycles" mapstructure:"reject_cycles"`
}

// DefaultConfig returns a Config with the default field names.
func DefaultConfig() Config {
	return Config{
		IDField:       DefaultIDField,
		ParentIDField: DefaultParentIDField,
	}
}

// WithDefaults returns c with empty field names set to the defaults.
func (c Config) WithDefaults() Config {
	if c.IDField == "" {
		c.IDField = DefaultIDField
	}
	if c.ParentIDField == "" {
		c.ParentIDField = DefaultParentIDField
	}
	return c
}

// Validate checks that the configured field names can coexist in one record.
// Empty names are valid and mean the defaults.
func (c Config) Validate() error {
	c = c.WithDefaults()
	if c.IDField == c.ParentIDField {
		return fmt.Errorf("%w: id and parent id fields are both %q", ErrInvalidConfig, c.IDField)
	}
	if c.IDField == ChildrenField || c.ParentIDField == ChildrenField {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidConfig, ChildrenField)
	}
	return nil
}
