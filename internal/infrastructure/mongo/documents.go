package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorStatsDocument is the embedded review aggregate on an application.
type VendorStatsDocument struct {
	ReviewCount    *int           `bson:"reviewCount,omitempty"`
	AvgRating      *float64       `bson:"avgRating,omitempty"`
	Rubric         RubricDocument `bson:"rubric,omitempty"`
	LastReviewedAt *time.Time     `bson:"lastReviewedAt,omitempty"`
}

// RubricDocument holds per-dimension review averages.
type RubricDocument struct {
	Usability *float64 `bson:"usability,omitempty"`
	Support   *float64 `bson:"support,omitempty"`
	Value     *float64 `bson:"value,omitempty"`
	Features  *float64 `bson:"features,omitempty"`
}

// TrustMetricsDocument holds the operational trust signals.
type TrustMetricsDocument struct {
	ResponseTimeHours *float64 `bson:"responseTimeHours,omitempty"`
	VerifiedRatio     *float64 `bson:"verifiedRatio,omitempty"`
	ReviewRecencyDays *float64 `bson:"reviewRecencyDays,omitempty"`
}

// ApplicationDocument is a vendor application. Approved documents are the
// public vendor listings.
type ApplicationDocument struct {
	ID           primitive.ObjectID   `bson:"_id"`
	CompanyName  string               `bson:"companyName"`
	Slug         string               `bson:"slug,omitempty"`
	Tagline      string               `bson:"tagline,omitempty"`
	WebsiteURL   string               `bson:"websiteUrl,omitempty"`
	ContactEmail string               `bson:"contactEmail,omitempty"`
	Features     []string             `bson:"features,omitempty"`
	Integrations []string             `bson:"integrations,omitempty"`
	Categories   []string             `bson:"categories,omitempty"`
	PricingEntry string               `bson:"pricingEntry,omitempty"`
	Alternatives []string             `bson:"alternatives,omitempty"`
	Status       string               `bson:"status"`
	RejectReason string               `bson:"rejectReason,omitempty"`
	Stats        VendorStatsDocument  `bson:"stats"`
	TrustMetrics TrustMetricsDocument `bson:"trustMetrics"`
	CreatedAt    *time.Time           `bson:"createdAt,omitempty"`
	UpdatedAt    *time.Time           `bson:"updatedAt,omitempty"`
}

// AssessmentDocument is the editorial assessment, unique per applicationId.
type AssessmentDocument struct {
	ApplicationID     string                   `bson:"applicationId"`
	Stage             string                   `bson:"stage"`
	Features          []FeatureDocument        `bson:"features"`
	SelectedBadges    []string                 `bson:"selectedBadges"`
	ServiceAreas      []string                 `bson:"serviceAreas"`
	PricingEntry      string                   `bson:"pricingEntry,omitempty"`
	Alternatives      []string                 `bson:"alternatives,omitempty"`
	FAQs              []FAQDocument            `bson:"faqs,omitempty"`
	LinkedResources   []LinkedResourceDocument `bson:"linkedResources,omitempty"`
	PublishedSections map[string]bool          `bson:"publishedSections"`
	AuditInProgress   bool                     `bson:"auditInProgress"`
	OverallScore      float64                  `bson:"overallScore"`
	CategoryScores    map[string]float64       `bson:"categoryScores"`
	FinalizedAt       *time.Time               `bson:"finalizedAt,omitempty"`
	CreatedAt         time.Time                `bson:"createdAt"`
	UpdatedAt         time.Time                `bson:"updatedAt"`
}

// FeatureDocument is one assessed feature embedded in an assessment.
type FeatureDocument struct {
	ID             string  `bson:"id"`
	Name           string  `bson:"name"`
	Category       string  `bson:"category"`
	Score          int     `bson:"score"`
	Boost          float64 `bson:"boost"`
	PublicNote     string  `bson:"publicNote,omitempty"`
	PrivateNote    string  `bson:"privateNote,omitempty"`
	TopFeatureRank *int    `bson:"topFeatureRank,omitempty"`
}

type FAQDocument struct {
	Question string `bson:"question"`
	Answer   string `bson:"answer"`
}

type LinkedResourceDocument struct {
	Title string `bson:"title"`
	URL   string `bson:"url"`
}
