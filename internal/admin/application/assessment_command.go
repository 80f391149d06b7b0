package application

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

const defaultFeatureName = "New Feature"

// buildContent validates the command and converts it to domain content.
// Closed vocabularies are rejected here; out-of-range scores pass through and
// are clamped with a warning when scored.
func buildContent(applicationID string, cmd UpsertAssessmentCommand) (admindomain.AssessmentContent, error) {
	features, err := buildFeatures(applicationID, cmd.Features)
	if err != nil {
		return admindomain.AssessmentContent{}, err
	}
	badges, err := admindomain.NewBadgeList(cmd.SelectedBadges)
	if err != nil {
		return admindomain.AssessmentContent{}, invalid(err)
	}
	regions, err := admindomain.NewRegionList(cmd.ServiceAreas)
	if err != nil {
		return admindomain.AssessmentContent{}, invalid(err)
	}
	sections, err := admindomain.NewPublishedSections(cmd.PublishedSections)
	if err != nil {
		return admindomain.AssessmentContent{}, invalid(err)
	}

	faqs := make([]admindomain.FAQ, 0, len(cmd.FAQs))
	for _, f := range cmd.FAQs {
		q := strings.TrimSpace(f.Question)
		a := strings.TrimSpace(f.Answer)
		if q == "" && a == "" {
			continue
		}
		faqs = append(faqs, admindomain.FAQ{Question: q, Answer: a})
	}

	resources := make([]admindomain.LinkedResource, 0, len(cmd.LinkedResources))
	for _, r := range cmd.LinkedResources {
		u, err := admindomain.NewURL(r.URL)
		if err != nil {
			return admindomain.AssessmentContent{}, invalid(fmt.Errorf("linked resource %q: %w", r.Title, err))
		}
		title := strings.TrimSpace(r.Title)
		if title == "" && u == "" {
			continue
		}
		resources = append(resources, admindomain.LinkedResource{Title: title, URL: u})
	}

	return admindomain.AssessmentContent{
		Features:          features,
		SelectedBadges:    badges,
		ServiceAreas:      regions,
		PricingEntry:      strings.TrimSpace(cmd.PricingEntry),
		Alternatives:      normalizeList(cmd.Alternatives),
		FAQs:              faqs,
		LinkedResources:   resources,
		PublishedSections: sections,
		AuditInProgress:   cmd.AuditInProgress,
	}, nil
}

// buildFeatures validates feature rows. A row without an id gets one derived
// from the application id and its position, so the same command always
// yields the same record.
func buildFeatures(applicationID string, cmds []FeatureCommand) ([]admindomain.FeatureAssessment, error) {
	out := make([]admindomain.FeatureAssessment, 0, len(cmds))
	seen := make(map[string]struct{}, len(cmds))
	for i, c := range cmds {
		category, err := admindomain.NewCategoryKey(c.Category)
		if err != nil {
			return nil, invalid(fmt.Errorf("feature %d: %w", i, err))
		}
		boost := scoring.BoostNone
		if c.Boost != 0 {
			boost, err = scoring.ParseBoost(c.Boost)
			if err != nil {
				return nil, invalid(fmt.Errorf("feature %d: %w", i, err))
			}
		}
		if c.TopFeatureRank != nil && *c.TopFeatureRank < 1 {
			return nil, invalid(fmt.Errorf("feature %d: top feature rank must be >= 1", i))
		}

		id := strings.TrimSpace(c.ID)
		if id == "" {
			id = derivedFeatureID(applicationID, i)
		}
		if _, dup := seen[id]; dup {
			return nil, invalid(fmt.Errorf("duplicate feature id: %s", id))
		}
		seen[id] = struct{}{}

		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = defaultFeatureName
		}
		var rank *int
		if c.TopFeatureRank != nil {
			r := *c.TopFeatureRank
			rank = &r
		}
		out = append(out, admindomain.FeatureAssessment{
			ID:             id,
			Name:           name,
			Category:       category,
			Score:          c.Score,
			Boost:          boost,
			PublicNote:     strings.TrimSpace(c.PublicNote),
			PrivateNote:    strings.TrimSpace(c.PrivateNote),
			TopFeatureRank: rank,
		})
	}
	return out, nil
}

func derivedFeatureID(applicationID string, index int) string {
	name := []byte(applicationID + "/" + strconv.Itoa(index))
	return "f-" + uuid.NewSHA1(uuid.NameSpaceOID, name).String()
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func normalizeList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{})
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
