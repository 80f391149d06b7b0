package main

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	publicdomain "github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

type vendorSeed struct {
	app     admindomain.Application
	stats   publicdomain.VendorStats
	metrics scoring.TrustMetrics
}

// generateVendors builds count applications. Roughly one in five has no
// reviews and each trust signal is missing about a quarter of the time, so
// listings exercise the partial-data paths.
func generateVendors(rng *rand.Rand, count int, now time.Time) []vendorSeed {
	out := make([]vendorSeed, 0, count)
	for i := 0; i < count; i++ {
		base := vendorNames[i%len(vendorNames)]
		name := base
		if i >= len(vendorNames) {
			name = fmt.Sprintf("%s %d", base, i/len(vendorNames)+1)
		}
		created := now.Add(-time.Duration(rng.Intn(180*24)) * time.Hour)

		app := admindomain.Application{
			CompanyName:  name,
			Slug:         slugify(name),
			Tagline:      taglines[rng.Intn(len(taglines))],
			WebsiteURL:   admindomain.URL("https://" + slugify(name) + ".example.com"),
			ContactEmail: "sales@" + slugify(name) + ".example.com",
			Features:     pickUnique(rng, featureNames, 2+rng.Intn(4)),
			Integrations: pickUnique(rng, integrationNames, rng.Intn(4)),
			Categories:   pickUnique(rng, categoryNames, 1+rng.Intn(2)),
			PricingEntry: pricing[rng.Intn(len(pricing))],
			Alternatives: pickUnique(rng, vendorNames, rng.Intn(3)),
			Status:       randomStatus(rng),
			CreatedAt:    created,
			UpdatedAt:    created,
		}
		if app.Status == admindomain.StatusRejected {
			app.RejectReason = rejectReasons[rng.Intn(len(rejectReasons))]
		}

		out = append(out, vendorSeed{
			app:     app,
			stats:   randomStats(rng, now),
			metrics: randomMetrics(rng),
		})
	}
	return out
}

func randomStatus(rng *rand.Rand) admindomain.ApplicationStatus {
	switch n := rng.Intn(10); {
	case n < 5:
		return admindomain.StatusPending
	case n < 9:
		return admindomain.StatusApproved
	default:
		return admindomain.StatusRejected
	}
}

func randomStats(rng *rand.Rand, now time.Time) publicdomain.VendorStats {
	if rng.Intn(5) == 0 {
		return publicdomain.VendorStats{}
	}
	count := 1 + rng.Intn(250)
	avg := round(2.5+rng.Float64()*2.5, 1)
	last := now.Add(-time.Duration(rng.Intn(400*24)) * time.Hour)
	return publicdomain.VendorStats{
		ReviewCount: &count,
		AvgRating:   &avg,
		Rubric: scoring.ReviewRubric{
			Usability: maybeScore(rng),
			Support:   maybeScore(rng),
			Value:     maybeScore(rng),
			Features:  maybeScore(rng),
		},
		LastReviewedAt: &last,
	}
}

func randomMetrics(rng *rand.Rand) scoring.TrustMetrics {
	var m scoring.TrustMetrics
	if rng.Intn(4) > 0 {
		hours := round(rng.Float64()*96, 1)
		m.ResponseTimeHours = &hours
	}
	if rng.Intn(4) > 0 {
		// Some sources report percentages rather than fractions.
		ratio := round(rng.Float64(), 2)
		if rng.Intn(2) == 0 {
			ratio = math.Round(ratio * 100)
		}
		m.VerifiedRatio = &ratio
	}
	return m
}

func maybeScore(rng *rand.Rand) *float64 {
	if rng.Intn(4) == 0 {
		return nil
	}
	v := round(1+rng.Float64()*4, 1)
	return &v
}

func pickUnique(rng *rand.Rand, source []string, count int) []string {
	if count >= len(source) {
		cp := make([]string, len(source))
		copy(cp, source)
		return cp
	}
	seen := make(map[int]struct{}, count)
	result := make([]string, 0, count)
	for len(result) < count {
		idx := rng.Intn(len(source))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		result = append(result, source[idx])
	}
	return result
}

func round(val float64, precision int) float64 {
	mul := math.Pow(10, float64(precision))
	return math.Round(val*mul) / mul
}

func slugify(parts ...string) string {
	builder := strings.Builder{}
	for _, part := range parts {
		for _, r := range strings.ToLower(part) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				builder.WriteRune(r)
			} else if unicode.IsSpace(r) || r == '-' || r == '_' {
				builder.WriteRune('-')
			}
		}
	}
	out := strings.Trim(builder.String(), "-")
	if out == "" {
		return fmt.Sprintf("vendor-%d", time.Now().UnixNano())
	}
	return out
}

var (
	vendorNames = []string{
		"Acme CRM", "BrokerFlow", "LedgerLane", "QuotePilot", "PolicyHub", "Clearwater Compliance",
		"DealDesk", "Northstar Analytics", "Harbor Docs", "SignalBridge", "TrueNorth Billing", "Cobalt Leads",
	}
	taglines = []string{
		"CRM built for independent brokers",
		"Automate renewals and follow-ups",
		"Compliance tracking without spreadsheets",
		"Quote comparison across carriers",
		"Commission accounting for agencies",
	}
	featureNames = []string{
		"Workflow Builder", "Email Sequences", "Carrier Quoting", "E-Signature", "SSO",
		"Audit Log", "Commission Tracking", "Pipeline Reports", "Document Vault", "Mobile App",
	}
	integrationNames = []string{"Slack", "HubSpot", "Salesforce", "QuickBooks", "Zapier", "Outlook"}
	categoryNames    = []string{"crm", "automation", "compliance", "analytics", "billing"}
	pricing          = []string{"Free tier", "$29/mo", "$49/seat/mo", "$199/mo", "Contact sales"}
	rejectReasons    = []string{
		"Not a broker-facing product",
		"Website unreachable during review",
		"Duplicate of an existing listing",
	}
)
