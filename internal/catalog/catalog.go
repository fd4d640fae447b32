package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// ErrNotFound is returned when a property, room or garage id is unknown.
var ErrNotFound = errors.New("catalog: not found")

// Catalog is the static site content. It is immutable after Load.
type Catalog struct {
	CoreValues []CoreValue `yaml:"coreValues" json:"coreValues"`
	HouseRules []HouseRule `yaml:"houseRules" json:"houseRules"`
	FAQs       []FAQ       `yaml:"faqs" json:"faqs"`
	Garages    []Garage    `yaml:"garages" json:"garages"`
	Properties []Property  `yaml:"properties" json:"properties"`

	byID map[string]int
}

// Default parses the content bundled with the binary.
func Default() (*Catalog, error) {
	return Load(defaultContent)
}

// Load parses and validates catalog content.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.byID = make(map[string]int, len(c.Properties))
	for i, p := range c.Properties {
		c.byID[p.ID] = i
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Properties))
	for _, p := range c.Properties {
		if strings.TrimSpace(p.ID) == "" {
			return errors.New("catalog: property without id")
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("catalog: duplicate property id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		switch p.Type {
		case PropertyTypeHouse, PropertyTypeApartment:
		default:
			return fmt.Errorf("catalog: property %q has invalid type %q", p.ID, p.Type)
		}
		if len(p.Rooms) == 0 {
			return fmt.Errorf("catalog: property %q has no rooms", p.ID)
		}
		if len(p.Images) == 0 && p.Image == "" {
			return fmt.Errorf("catalog: property %q has no image", p.ID)
		}

		rooms := make(map[string]struct{}, len(p.Rooms))
		for _, r := range p.Rooms {
			if _, dup := rooms[r.ID]; dup || r.ID == "" {
				return fmt.Errorf("catalog: property %q has missing or duplicate room id %q", p.ID, r.ID)
			}
			rooms[r.ID] = struct{}{}
			if r.Status != RoomAvailable && r.Status != RoomOccupied {
				return fmt.Errorf("catalog: room %s/%s has invalid status %q", p.ID, r.ID, r.Status)
			}
		}
	}
	for _, g := range c.Garages {
		if g.Status != GarageAvailable && g.Status != GarageRented {
			return fmt.Errorf("catalog: garage %q has invalid status %q", g.ID, g.Status)
		}
	}
	return nil
}

// Property returns the property with the given id.
func (c *Catalog) Property(id string) (Property, error) {
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Property{}, fmt.Errorf("property %q: %w", id, ErrNotFound)
	}
	return c.Properties[idx], nil
}

// Room returns a property together with one of its rooms.
func (c *Catalog) Room(propertyID, roomID string) (Property, Room, error) {
	property, err := c.Property(propertyID)
	if err != nil {
		return Property{}, Room{}, err
	}
	room, ok := property.Room(roomID)
	if !ok {
		return Property{}, Room{}, fmt.Errorf("room %q in %q: %w", roomID, propertyID, ErrNotFound)
	}
	return property, room, nil
}

// PropertiesOfType lists properties, optionally restricted to one type.
// An empty type returns everything in catalog order.
func (c *Catalog) PropertiesOfType(t PropertyType) []Property {
	result := make([]Property, 0, len(c.Properties))
	for _, p := range c.Properties {
		if t != "" && !strings.EqualFold(string(p.Type), string(t)) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// GaragesWithStatus lists garages, optionally restricted to one status.
func (c *Catalog) GaragesWithStatus(status GarageStatus) []Garage {
	result := make([]Garage, 0, len(c.Garages))
	for _, g := range c.Garages {
		if status != "" && g.Status != status {
			continue
		}
		result = append(result, g)
	}
	return result
}
