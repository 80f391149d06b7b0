package admin

import "time"

type applicationResponse struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"companyName"`
	Slug         string    `json:"slug,omitempty"`
	Tagline      string    `json:"tagline,omitempty"`
	WebsiteURL   string    `json:"websiteUrl,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	Features     []string  `json:"features"`
	Integrations []string  `json:"integrations"`
	Categories   []string  `json:"categories"`
	PricingEntry string    `json:"pricingEntry,omitempty"`
	Alternatives []string  `json:"alternatives,omitempty"`
	Status       string    `json:"status"`
	RejectReason string    `json:"rejectReason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type applicationListResponse struct {
	Items []applicationResponse `json:"items"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type assessmentRequest struct {
	Features          []featurePayload  `json:"features"`
	SelectedBadges    []string          `json:"selectedBadges"`
	ServiceAreas      []string          `json:"serviceAreas"`
	PricingEntry      string            `json:"pricingEntry"`
	Alternatives      []string          `json:"alternatives"`
	FAQs              []faqPayload      `json:"faqs"`
	LinkedResources   []resourcePayload `json:"linkedResources"`
	PublishedSections map[string]bool   `json:"publishedSections"`
	AuditInProgress   bool              `json:"auditInProgress"`
}

// featurePayload is shared by requests and responses. Private notes are
// admin-only and never leave this package's routes.
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

type assessmentResponse struct {
	ApplicationID     string             `json:"applicationId"`
	Stage             string             `json:"stage"`
	Reopened          bool               `json:"reopened"`
	Features          []featurePayload   `json:"features"`
	TopFeatures       []string           `json:"topFeatures"`
	SelectedBadges    []string           `json:"selectedBadges"`
	ServiceAreas      []string           `json:"serviceAreas"`
	PricingEntry      string             `json:"pricingEntry,omitempty"`
	Alternatives      []string           `json:"alternatives"`
	FAQs              []faqPayload       `json:"faqs"`
	LinkedResources   []resourcePayload  `json:"linkedResources"`
	PublishedSections map[string]bool    `json:"publishedSections"`
	AuditInProgress   bool               `json:"auditInProgress"`
	OverallScore      float64            `json:"overallScore"`
	CategoryScores    map[string]float64 `json:"categoryScores"`
	FinalizedAt       *time.Time         `json:"finalizedAt,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

type openResponse struct {
	Application applicationResponse `json:"application"`
	Assessment  assessmentResponse  `json:"assessment"`
	Seeded      bool                `json:"seeded"`
}

type warningResponse struct {
	FeatureID string `json:"featureId"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

type saveResponse struct {
	Assessment assessmentResponse `json:"assessment"`
	Warnings   []warningResponse  `json:"warnings"`
}

type previewResponse struct {
	OverallScore   float64            `json:"overallScore"`
	CategoryScores map[string]float64 `json:"categoryScores"`
	Warnings       []warningResponse  `json:"warnings"`
}

type categoryResponse struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

type optionResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type rubricResponse struct {
	Categories     []categoryResponse `json:"categories"`
	Boosts         []float64          `json:"boosts"`
	ScoreRange     [2]int             `json:"scoreRange"`
	Badges         []optionResponse   `json:"badges"`
	ServiceRegions []string           `json:"serviceRegions"`
	Sections       map[string]bool    `json:"defaultPublishedSections"`
}
