package domain

import "time"

// Application is a vendor's marketplace application. Approved applications
// are the public vendor listings.
type Application struct {
	ID           string
	CompanyName  string
	Slug         string
	Tagline      string
	WebsiteURL   URL
	ContactEmail string
	// Features and Integrations are the vendor's self-reported lists.
	Features     []string
	Integrations []string
	Categories   []string
	PricingEntry string
	Alternatives []string
	Status       ApplicationStatus
	RejectReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Application) Approved() bool {
	return a.Status == StatusApproved
}
