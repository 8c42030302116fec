package scene

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
)

//go:embed data/escape_room.json
var defaultCatalogJSON []byte

// catalogFile is the on-disk layout of a catalog.
type catalogFile struct {
	Name   string  `json:"name"`
	Start  Scene   `json:"start"`
	Escape Scene   `json:"escape"`
	Rooms  []Scene `json:"rooms"`
}

// Catalog is the fixed set of scenes for a game: the start scene, the pool
// of rooms, and the escape scene. It is never mutated after construction;
// every accessor hands out copies.
type Catalog struct {
	name   string
	start  Scene
	escape Scene
	rooms  []Scene
}

// NewCatalog builds a catalog from the given scenes. The scenes are copied.
func NewCatalog(name string, start, escape Scene, rooms []Scene) *Catalog {
	c := &Catalog{
		name:   name,
		start:  start.Clone(),
		escape: escape.Clone(),
		rooms:  make([]Scene, len(rooms)),
	}
	for i, r := range rooms {
		c.rooms[i] = r.Clone()
	}
	return c
}

// Default returns the built-in escape room catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalogJSON)
	if err != nil {
		// The embedded file is covered by tests; a failure here is a build defect.
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads and parses a catalog JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog strictly (unknown fields are rejected) and
// validates it.
func Parse(data []byte) (*Catalog, error) {
	if !json.Valid(data) {
		return nil, errors.New("invalid JSON")
	}

	var f catalogFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed strict JSON unmarshaling: %w", err)
	}

	c := NewCatalog(f.Name, f.Start, f.Escape, f.Rooms)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Name() string { return c.name }

// StartScene is shown at the beginning of every session.
func (c *Catalog) StartScene() Scene { return c.start.Clone() }

// EscapeScene is shown once every room has been cleared.
func (c *Catalog) EscapeScene() Scene { return c.escape.Clone() }

// RoomScenes returns a fresh copy of all room scenes in catalog order.
// Callers may reorder or modify the result freely.
func (c *Catalog) RoomScenes() []Scene {
	rooms := make([]Scene, len(c.rooms))
	for i, r := range c.rooms {
		rooms[i] = r.Clone()
	}
	return rooms
}

// RoomCount is the number of rooms a player must clear to escape.
func (c *Catalog) RoomCount() int { return len(c.rooms) }

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

// Validate checks the catalog for authoring mistakes and returns every
// problem found, joined into one error.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool)

	check := func(where string, s Scene) {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%s: missing id", where))
		} else {
			if !validIDRegex.MatchString(s.ID) {
				errs = append(errs, fmt.Errorf("%s: id %q should be lowercase snake_case", where, s.ID))
			}
			if seen[s.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate id %q", where, s.ID))
			}
			seen[s.ID] = true
		}
		if s.Text == "" {
			errs = append(errs, fmt.Errorf("%s: empty text", where))
		}
		if len(s.Choices) == 0 {
			errs = append(errs, fmt.Errorf("%s: no choices", where))
		}
		for i, ch := range s.Choices {
			if ch.Label == "" {
				errs = append(errs, fmt.Errorf("%s: choice %d has empty label", where, i))
			}
			if !ch.Outcome.IsKnown() {
				errs = append(errs, fmt.Errorf("%s: choice %d has unknown outcome %q", where, i, ch.Outcome))
			}
		}
	}

	check("start scene", c.start)
	check("escape scene", c.escape)
	for i, r := range c.rooms {
		check(fmt.Sprintf("room %d", i), r)
	}

	return errors.Join(errs...)
}
