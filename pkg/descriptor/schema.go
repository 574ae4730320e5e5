package descriptor

// Option is one selectable value of a configurable: a display name and the
// raw key written to the command field
type Option struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
}

// Configurable is one user-facing parameter, or a named group of them
type Configurable struct {
	Name          string         `yaml:"name"`
	DisplayName   string         `yaml:"displayName,omitempty"`
	Default       any            `yaml:"default,omitempty"`
	Options       []Option       `yaml:"options,omitempty"`
	Configurables []Configurable `yaml:"configurables,omitempty"`
}

// Schema is the ordered list of configurables of a group
type Schema []Configurable

// Find returns the configurable with the given name, searching nested groups
func (s Schema) Find(name string) (*Configurable, bool) {
	for i := range s {
		if s[i].Name == name {
			return &s[i], true
		}
		if c, ok := Schema(s[i].Configurables).Find(name); ok {
			return c, true
		}
	}
	return nil, false
}

// Options returns the option list of a configurable, nil if it has none
func (s Schema) Options(name string) []Option {
	if c, ok := s.Find(name); ok {
		return c.Options
	}
	return nil
}

// Flatten returns every leaf configurable in declaration order
func (s Schema) Flatten() []*Configurable {
	var out []*Configurable
	for i := range s {
		if len(s[i].Configurables) > 0 {
			out = append(out, Schema(s[i].Configurables).Flatten()...)
			continue
		}
		out = append(out, &s[i])
	}
	return out
}

// Clone returns a deep copy of the schema
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	for i, c := range s {
		out[i] = c
		out[i].Options = append([]Option(nil), c.Options...)
		out[i].Configurables = Schema(c.Configurables).Clone()
	}
	return out
}
