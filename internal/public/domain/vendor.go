package domain

import (
	"time"

	"github.com/brokertools/marketplace/api/internal/scoring"
)

// Vendor represents an approved vendor as stored.
type Vendor struct {
	ID           string
	Name         string
	Slug         string
	Tagline      string
	WebsiteURL   string
	Categories   []string
	Stats        VendorStats
	TrustMetrics scoring.TrustMetrics
	Assessment   *AssessmentSnapshot
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VendorStats aggregates review metrics.
type VendorStats struct {
	ReviewCount    *int
	AvgRating      *float64
	Rubric         scoring.ReviewRubric
	LastReviewedAt *time.Time
}

// AssessmentSnapshot is the stored editorial assessment without private notes.
type AssessmentSnapshot struct {
	Stage             string
	OverallScore      float64
	CategoryScores    map[string]float64
	SelectedBadges    []string
	PublishedSections map[string]bool
	ServiceAreas      []string
	PricingEntry      string
	Alternatives      []string
	FAQs              []FAQ
	LinkedResources   []LinkedResource
	Features          []PublicFeature
	AuditInProgress   bool
	UpdatedAt         time.Time
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type LinkedResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PublicFeature is the public part of an assessed feature.
type PublicFeature struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Score          int     `json:"score"`
	Boost          float64 `json:"boost"`
	PublicNote     string  `json:"publicNote,omitempty"`
	TopFeatureRank *int    `json:"topFeatureRank,omitempty"`
}
