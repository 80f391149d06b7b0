package sqlstore

import (
	"time"

	"gorm.io/datatypes"
)

// ApplicationRow is a vendor application. List columns and the review
// aggregates are stored as JSON.
type ApplicationRow struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	CompanyName  string `gorm:"not null"`
	Slug         string `gorm:"index"`
	Tagline      string
	WebsiteURL   string
	ContactEmail string
	Features     datatypes.JSON
	Integrations datatypes.JSON
	Categories   datatypes.JSON
	PricingEntry string
	Alternatives datatypes.JSON
	Status       string `gorm:"index:idx_application_status_created,priority:1;not null"`
	RejectReason string
	Stats        datatypes.JSON
	TrustMetrics datatypes.JSON
	CreatedAt    time.Time `gorm:"index:idx_application_status_created,priority:2"`
	UpdatedAt    time.Time
}

func (ApplicationRow) TableName() string { return "vendor_applications" }

// AssessmentRow holds one assessment per application. The editor content is
// a JSON body; scores and lifecycle fields are columns.
type AssessmentRow struct {
	ApplicationID string `gorm:"type:varchar(36);primaryKey"`
	Stage         string `gorm:"not null"`
	Body          datatypes.JSON
	OverallScore  float64
	FinalizedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (AssessmentRow) TableName() string { return "vendor_assessments" }

type statsPayload struct {
	ReviewCount    *int          `json:"reviewCount,omitempty"`
	AvgRating      *float64      `json:"avgRating,omitempty"`
	Rubric         rubricPayload `json:"rubric"`
	LastReviewedAt *time.Time    `json:"lastReviewedAt,omitempty"`
}

type rubricPayload struct {
	Usability *float64 `json:"usability,omitempty"`
	Support   *float64 `json:"support,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	Features  *float64 `json:"features,omitempty"`
}

type trustPayload struct {
	ResponseTimeHours *float64 `json:"responseTimeHours,omitempty"`
	VerifiedRatio     *float64 `json:"verifiedRatio,omitempty"`
	ReviewRecencyDays *float64 `json:"reviewRecencyDays,omitempty"`
}

type assessmentBody struct {
	Features          []featurePayload   `json:"features"`
	SelectedBadges    []string           `json:"selectedBadges"`
	ServiceAreas      []string           `json:"serviceAreas"`
	PricingEntry      string             `json:"pricingEntry,omitempty"`
	Alternatives      []string           `json:"alternatives,omitempty"`
	FAQs              []faqPayload       `json:"faqs,omitempty"`
	LinkedResources   []resourcePayload  `json:"linkedResources,omitempty"`
	PublishedSections map[string]bool    `json:"publishedSections"`
	AuditInProgress   bool               `json:"auditInProgress"`
	CategoryScores    map[string]float64 `json:"categoryScores"`
}

type featurePayload struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Score          int     `json:"score"`
	Boost          float64 `json:"boost"`
	PublicNote     string  `json:"publicNote,omitempty"`
	PrivateNote    string  `json:"privateNote,omitempty"`
	TopFeatureRank *int    `json:"topFeatureRank,omitempty"`
}

type faqPayload struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type resourcePayload struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
