package profile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Catalog is the ordered set of profiles read from the profile store
type Catalog struct {
	profiles []Profile
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Parse decodes a profile document. Each top-level key is a profile name
// mapped to a table of string fields; document order is kept.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]interface{}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	cat := NewCatalog()
	seen := make(map[string]bool, len(raw))
	for _, key := range md.Keys() {
		name := key[0]
		if seen[name] {
			continue
		}
		seen[name] = true

		table, ok := raw[name].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: '%s' is not a table", ErrParse, name)
		}

		fields := make(map[string]string, len(table))
		for k, v := range table {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s must be a string", ErrParse, name, k)
			}
			fields[k] = s
		}
		cat.profiles = append(cat.profiles, Profile{Name: name, Fields: fields})
	}

	return cat, nil
}

// Encode renders the catalog as a profile document in catalog order
func (c *Catalog) Encode() ([]byte, error) {
	var buf bytes.Buffer
	for i, p := range c.profiles {
		if i > 0 {
			buf.WriteString("\n")
		}
		// One table per call; encoding the whole map would sort names
		enc := toml.NewEncoder(&buf)
		enc.Indent = ""
		if err := enc.Encode(map[string]map[string]string{p.Name: p.Fields}); err != nil {
			return nil, fmt.Errorf("failed to encode profile '%s': %w", p.Name, err)
		}
	}
	return buf.Bytes(), nil
}

// Len returns the number of profiles
func (c *Catalog) Len() int {
	return len(c.profiles)
}

// At returns the profile at position i
func (c *Catalog) At(i int) (Profile, error) {
	if i < 0 || i >= len(c.profiles) {
		return Profile{}, fmt.Errorf("%w: index %d", ErrNotFound, i)
	}
	return c.profiles[i], nil
}

// Profiles returns a copy of the profiles in order
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// Names returns the profile names in order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		names[i] = p.Name
	}
	return names
}

// Get finds a profile by name
func (c *Catalog) Get(name string) (Profile, error) {
	for _, p := range c.profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: '%s'", ErrNotFound, name)
}

// Append adds a profile to the end of the catalog. It does not persist.
func (c *Catalog) Append(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if _, err := c.Get(p.Name); err == nil {
		return fmt.Errorf("%w: '%s'", ErrDuplicateName, p.Name)
	}
	c.profiles = append(c.profiles, p)
	return nil
}
