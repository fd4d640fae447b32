package catalog

import "strings"

// PropertyType classifies a property.
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "House"
	PropertyTypeApartment PropertyType = "Apartment"
)

// RoomStatus is the rental state of a room.
type RoomStatus string

const (
	RoomAvailable RoomStatus = "available"
	RoomOccupied  RoomStatus = "occupied"
)

// GarageStatus is the rental state of a garage.
type GarageStatus string

const (
	GarageAvailable GarageStatus = "available"
	GarageRented    GarageStatus = "rented"
)

// IndefiniteAvailability marks rooms without a known free date.
const IndefiniteAvailability = "Indefinite"

// Property is a rentable building or unit made of rooms.
type Property struct {
	ID                 string       `yaml:"id" json:"id"`
	Title              string       `yaml:"title" json:"title"`
	Location           string       `yaml:"location" json:"location"`
	Address            string       `yaml:"address" json:"address"`
	TotalSpace         string       `yaml:"totalSpace" json:"totalSpace"`
	Type               PropertyType `yaml:"type" json:"type"`
	MapPos             MapPos       `yaml:"mapPos" json:"mapPos"`
	Tags               []string     `yaml:"tags" json:"tags"`
	Description        string       `yaml:"description" json:"description"`
	LocationHighlights []Highlight  `yaml:"locationHighlights" json:"locationHighlights"`
	Amenities          []string     `yaml:"amenities" json:"amenities"`
	Image              string       `yaml:"image" json:"image"`
	Images             []string     `yaml:"images" json:"images"`
	Rooms              []Room       `yaml:"rooms" json:"rooms"`
}

// MapPos places the property pin on the overview map, in CSS percentages.
type MapPos struct {
	Top  string `yaml:"top" json:"top"`
	Left string `yaml:"left" json:"left"`
}

// Highlight is one line of the "location" block on a property page.
type Highlight struct {
	Icon Icon   `yaml:"icon" json:"icon"`
	Text string `yaml:"text" json:"text"`
}

// Gallery returns the images to page through. Properties without a gallery
// fall back to their primary image.
func (p Property) Gallery() []string {
	if len(p.Images) > 0 {
		return append([]string(nil), p.Images...)
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return nil
}

// Room finds a room of the property by id.
func (p Property) Room(id string) (Room, bool) {
	id = strings.TrimSpace(id)
	for _, room := range p.Rooms {
		if room.ID == id {
			return room, true
		}
	}
	return Room{}, false
}

// Room is an individually rentable unit within a property.
type Room struct {
	ID        string     `yaml:"id" json:"id"`
	Name      string     `yaml:"name" json:"name"`
	Price     *int       `yaml:"price" json:"price"`
	Charges   *int       `yaml:"charges" json:"charges"`
	Size      string     `yaml:"size" json:"size"`
	Available string     `yaml:"available" json:"available"`
	Status    RoomStatus `yaml:"status" json:"status"`
	Features  string     `yaml:"features" json:"features"`
	Images    []string   `yaml:"images" json:"images"`
}

// IsAvailable reports whether the room accepts applications.
func (r Room) IsAvailable() bool {
	return r.Status == RoomAvailable
}

// AvailabilityLabel is the short status line shown on a room card.
func (r Room) AvailabilityLabel() string {
	switch {
	case r.IsAvailable():
		return "Available: " + r.Available
	case r.Available == IndefiniteAvailability:
		return "Currently Rented"
	default:
		return "Booked until " + r.Available
	}
}

// Garage is a parking space rented independently of any property.
type Garage struct {
	ID       string       `yaml:"id" json:"id"`
	Name     string       `yaml:"name" json:"name"`
	Location string       `yaml:"location" json:"location"`
	Price    int          `yaml:"price" json:"price"`
	Size     string       `yaml:"size" json:"size"`
	Type     string       `yaml:"type" json:"type"`
	Status   GarageStatus `yaml:"status" json:"status"`
	Image    string       `yaml:"image" json:"image"`
}

// CoreValue is a marketing pillar shown on the home page.
type CoreValue struct {
	Icon  Icon   `yaml:"icon" json:"icon"`
	Title string `yaml:"title" json:"title"`
	Desc  string `yaml:"desc" json:"desc"`
}

// HouseRule is one of the rules every tenant agrees to.
type HouseRule struct {
	Icon  Icon   `yaml:"icon" json:"icon"`
	Title string `yaml:"title" json:"title"`
	Desc  string `yaml:"desc" json:"desc"`
}

// FAQ is a question/answer pair.
type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}
