package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Icon identifies a pictogram referenced by content entries. Renderers map
// each identifier to their own asset; content never carries artwork.
type Icon string

const (
	IconHeart          Icon = "Heart"
	IconKey            Icon = "Key"
	IconMapPin         Icon = "MapPin"
	IconCalendar       Icon = "Calendar"
	IconStar           Icon = "Star"
	IconZap            Icon = "Zap"
	IconHeartHandshake Icon = "HeartHandshake"
	IconMoon           Icon = "Moon"
	IconTrash          Icon = "Trash2"
	IconCigaretteOff   Icon = "CigaretteOff"
	IconBus            Icon = "Bus"
	IconBriefcase      Icon = "Briefcase"
	IconClock          Icon = "Clock"
	IconTrees          Icon = "Trees"
	IconTrain          Icon = "Train"
)

var knownIcons = map[Icon]struct{}{
	IconHeart: {}, IconKey: {}, IconMapPin: {}, IconCalendar: {}, IconStar: {},
	IconZap: {}, IconHeartHandshake: {}, IconMoon: {}, IconTrash: {},
	IconCigaretteOff: {}, IconBus: {}, IconBriefcase: {}, IconClock: {},
	IconTrees: {}, IconTrain: {},
}

// ParseIcon validates an icon identifier.
func ParseIcon(value string) (Icon, error) {
	icon := Icon(strings.TrimSpace(value))
	if _, ok := knownIcons[icon]; !ok {
		return "", fmt.Errorf("unknown icon %q", value)
	}
	return icon, nil
}

// UnmarshalYAML rejects identifiers outside the known set.
func (i *Icon) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	icon, err := ParseIcon(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*i = icon
	return nil
}
