// Package catalog serves the long-form usage text of commands from an embedded TOML file.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"cortex/internal/core/domain"

	"github.com/pelletier/go-toml/v2"
)

//go:embed commands.toml
var defaultCatalog []byte

type Entry struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Usage       string   `toml:"usage"`
	Notes       string   `toml:"notes"`
	Examples    []string `toml:"examples"`
}

type file struct {
	Command []Entry `toml:"command"`
}

type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// Default returns the catalogue compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error decoding command catalogue: %w", err)
	}

	c := &Catalog{entries: f.Command, byName: make(map[string]int, len(f.Command))}

	for i, e := range f.Command {
		name := strings.ToLower(e.Name)
		if !strings.HasPrefix(name, "!") || len(name) < 2 {
			return nil, fmt.Errorf("%w: catalogue entry %d has invalid name %q", domain.ErrMissingConfig, i, e.Name)
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("%w: catalogue entry %q defined twice", domain.ErrMissingConfig, e.Name)
		}
		c.byName[name] = i
	}

	return c, nil
}

func (c *Catalog) Entries() []Entry {
	return c.entries
}

func (c *Catalog) Usage(command string) (string, bool) {
	i, ok := c.byName[strings.ToLower(command)]
	if !ok {
		return "", false
	}

	return c.entries[i].Render(), true
}

func (e Entry) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "**%s**\n- %s", e.Name, e.Description)
	if e.Notes != "" {
		fmt.Fprintf(&b, "\n- %s", e.Notes)
	}
	if e.Usage != "" {
		fmt.Fprintf(&b, "\n- **Usage**: `%s`", e.Usage)
	}

	switch len(e.Examples) {
	case 0:
	case 1:
		fmt.Fprintf(&b, "\n- **Example**: `%s`", e.Examples[0])
	default:
		b.WriteString("\n- **Examples**:")
		for _, ex := range e.Examples {
			fmt.Fprintf(&b, "\n  - `%s`", ex)
		}
	}

	return b.String()
}
