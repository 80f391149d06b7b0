package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/brokertools/marketplace/api/internal/scoring"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

func NewApplicationStatus(value string) (ApplicationStatus, error) {
	switch s := ApplicationStatus(strings.ToLower(strings.TrimSpace(value))); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", fmt.Errorf("invalid application status: %s", value)
	}
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// Badge is an editor-assigned marketplace label. Badges are never derived
// from scores.
type Badge string

const (
	BadgeLeader        Badge = "leader"
	BadgeHighPerformer Badge = "high_performer"
	BadgeMomentum      Badge = "momentum"
)

var badgeLabels = map[Badge]string{
	BadgeLeader:        "Leader",
	BadgeHighPerformer: "High Performer",
	BadgeMomentum:      "Momentum Leader",
}

// Badges lists the controlled badge vocabulary in display order.
func Badges() []Badge {
	return []Badge{BadgeLeader, BadgeHighPerformer, BadgeMomentum}
}

func NewBadge(value string) (Badge, error) {
	b := Badge(strings.TrimSpace(value))
	if _, ok := badgeLabels[b]; !ok {
		return "", fmt.Errorf("invalid badge: %s", value)
	}
	return b, nil
}

func (b Badge) Label() string {
	return badgeLabels[b]
}

type BadgeList []Badge

func NewBadgeList(values []string) (BadgeList, error) {
	if len(values) == 0 {
		return nil, nil
	}
	result := make([]Badge, 0, len(values))
	seen := make(map[Badge]struct{})
	for _, raw := range values {
		badge, err := NewBadge(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[badge]; ok {
			continue
		}
		seen[badge] = struct{}{}
		result = append(result, badge)
	}
	return BadgeList(result), nil
}

func (l BadgeList) Strings() []string {
	result := make([]string, 0, len(l))
	for _, v := range l {
		result = append(result, string(v))
	}
	return result
}

// PublishSection is a vendor profile section whose visibility the editor controls.
type PublishSection string

const (
	SectionCategorise PublishSection = "categorise"
	SectionMapping    PublishSection = "mapping"
	SectionFeatures   PublishSection = "features"
	SectionScores     PublishSection = "scores"
)

func PublishSectionKeys() []PublishSection {
	return []PublishSection{SectionCategorise, SectionMapping, SectionFeatures, SectionScores}
}

func NewPublishSection(value string) (PublishSection, error) {
	s := PublishSection(strings.TrimSpace(value))
	for _, allowed := range PublishSectionKeys() {
		if s == allowed {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid publish section: %s", value)
}

type PublishedSections map[PublishSection]bool

// DefaultPublishedSections hides scores until the editor opts in.
func DefaultPublishedSections() PublishedSections {
	return PublishedSections{
		SectionCategorise: true,
		SectionMapping:    true,
		SectionFeatures:   true,
		SectionScores:     false,
	}
}

// NewPublishedSections overlays values on the defaults.
func NewPublishedSections(values map[string]bool) (PublishedSections, error) {
	result := DefaultPublishedSections()
	for raw, visible := range values {
		section, err := NewPublishSection(raw)
		if err != nil {
			return nil, err
		}
		result[section] = visible
	}
	return result, nil
}

func (p PublishedSections) Visible(section PublishSection) bool {
	return p[section]
}

func (p PublishedSections) Clone() PublishedSections {
	if p == nil {
		return nil
	}
	out := make(PublishedSections, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p PublishedSections) StringMap() map[string]bool {
	out := make(map[string]bool, len(p))
	for k, v := range p {
		out[string(k)] = v
	}
	return out
}

type ServiceRegion string

const (
	RegionNorthAmerica ServiceRegion = "North America"
	RegionEurope       ServiceRegion = "Europe"
	RegionAsiaPacific  ServiceRegion = "Asia Pacific"
	RegionAUNZ         ServiceRegion = "AU/NZ Only"
	RegionGlobal       ServiceRegion = "Global"
)

func ServiceRegions() []ServiceRegion {
	return []ServiceRegion{RegionNorthAmerica, RegionEurope, RegionAsiaPacific, RegionAUNZ, RegionGlobal}
}

func NewServiceRegion(value string) (ServiceRegion, error) {
	r := ServiceRegion(strings.TrimSpace(value))
	for _, allowed := range ServiceRegions() {
		if r == allowed {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid service region: %s", value)
}

type RegionList []ServiceRegion

// NewRegionList falls back to Global when no region is given.
func NewRegionList(values []string) (RegionList, error) {
	if len(values) == 0 {
		return RegionList{RegionGlobal}, nil
	}
	result := make([]ServiceRegion, 0, len(values))
	seen := make(map[ServiceRegion]struct{})
	for _, raw := range values {
		region, err := NewServiceRegion(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[region]; ok {
			continue
		}
		seen[region] = struct{}{}
		result = append(result, region)
	}
	return RegionList(result), nil
}

func (l RegionList) Strings() []string {
	result := make([]string, 0, len(l))
	for _, v := range l {
		result = append(result, string(v))
	}
	return result
}

func NewCategoryKey(value string) (scoring.CategoryKey, error) {
	key := scoring.CategoryKey(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := scoring.LookupCategory(key); !ok {
		return "", fmt.Errorf("invalid category: %s", value)
	}
	return key, nil
}

type URL string

func NewURL(value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}
