// Package cheats implements Game Genie and GameShark codes. Game
// Genie codes patch values read from the ROM, GameShark codes write
// values to RAM once per frame.
package cheats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidCode is returned when a code can not be parsed.
var ErrInvalidCode = errors.New("cheats: invalid code")

// Writer is the bus GameShark codes write to.
type Writer interface {
	Write(address uint16, value uint8)
}

// Cheat is a named group of codes, enabled or disabled together.
type Cheat struct {
	Name    string
	Enabled bool

	codes []string
}

// Codes returns the raw codes of the cheat.
func (c *Cheat) Codes() []string {
	return c.codes
}

// Cheats holds every loaded cheat.
type Cheats struct {
	cheats []*Cheat
	genie  []GameGenieCode
	shark  []GameSharkCode
}

// New returns an empty set of cheats.
func New() *Cheats {
	return &Cheats{}
}

// Load parses code and adds it to the cheat with the given name,
// creating the cheat if needed. New cheats are enabled.
func (c *Cheats) Load(code, name string) error {
	code = strings.TrimSpace(code)
	switch {
	case strings.Contains(code, "-"):
		g, err := ParseGameGenie(code)
		if err != nil {
			return err
		}
		g.Name = name
		c.genie = append(c.genie, g)
	default:
		s, err := ParseGameShark(code)
		if err != nil {
			return err
		}
		s.Name = name
		c.shark = append(c.shark, s)
	}

	cheat := c.Get(name)
	if cheat == nil {
		cheat = &Cheat{Name: name, Enabled: true}
		c.cheats = append(c.cheats, cheat)
	}
	cheat.codes = append(cheat.codes, code)
	return nil
}

// Get returns the cheat with the given name, or nil.
func (c *Cheats) Get(name string) *Cheat {
	for _, cheat := range c.cheats {
		if cheat.Name == name {
			return cheat
		}
	}
	return nil
}

// List returns every loaded cheat.
func (c *Cheats) List() []*Cheat {
	return c.cheats
}

// Enable enables the cheat with the given name.
func (c *Cheats) Enable(name string) error {
	return c.setEnabled(name, true)
}

// Disable disables the cheat with the given name.
func (c *Cheats) Disable(name string) error {
	return c.setEnabled(name, false)
}

func (c *Cheats) setEnabled(name string, enabled bool) error {
	cheat := c.Get(name)
	if cheat == nil {
		return fmt.Errorf("cheats: cheat not found: %s", name)
	}
	cheat.Enabled = enabled
	return nil
}

func (c *Cheats) enabled(name string) bool {
	cheat := c.Get(name)
	return cheat != nil && cheat.Enabled
}

// Patch returns the value read from the ROM at address, as modified
// by the enabled Game Genie codes.
func (c *Cheats) Patch(address uint16, value uint8) uint8 {
	for _, g := range c.genie {
		if g.Address == address && c.enabled(g.Name) {
			value = g.apply(value)
		}
	}
	return value
}

// Apply writes the values of the enabled GameShark codes.
func (c *Cheats) Apply(w Writer) {
	for _, s := range c.shark {
		if c.enabled(s.Name) {
			w.Write(s.Address, s.NewData)
		}
	}
}

// Parse reads cheats in the following format, where every line
// following a name holds a single Game Genie or GameShark code:
//
//	# Infinite Lives
//	01099ED0
//	# Invincible
//	00A-17B-C49
func Parse(r io.Reader) (*Cheats, error) {
	c := New()
	scanner := bufio.NewScanner(r)
	name := ""
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			continue
		case strings.HasPrefix(text, "#"):
			name = strings.TrimSpace(text[1:])
		case name == "":
			return nil, fmt.Errorf("cheats: line %d: code without a name", line)
		default:
			if err := c.Load(text, name); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cheats: %w", err)
	}
	return c, nil
}

// Save writes the cheats in the format read by Parse.
func (c *Cheats) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, cheat := range c.cheats {
		fmt.Fprintf(bw, "# %s\n", cheat.Name)
		for _, code := range cheat.codes {
			fmt.Fprintln(bw, code)
		}
	}
	return bw.Flush()
}
