package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/brokertools/marketplace/api/internal/admin/application"
	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
	publicapp "github.com/brokertools/marketplace/api/internal/public/application"
	publicdomain "github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedApplication(t *testing.T, repo *ApplicationRepository, name string, status admindomain.ApplicationStatus, categories []string, created time.Time) string {
	t.Helper()
	avg := 4.4
	count := 30
	hours := 2.0
	id, err := repo.Create(context.Background(), admindomain.Application{
		CompanyName:  name,
		Slug:         name,
		Tagline:      name + " for brokers",
		WebsiteURL:   "https://example.com",
		Features:     []string{"Workflow Builder"},
		Integrations: []string{"Slack"},
		Categories:   categories,
		Status:       status,
		CreatedAt:    created,
	}, publicdomain.VendorStats{ReviewCount: &count, AvgRating: &avg}, scoring.TrustMetrics{ResponseTimeHours: &hours})
	require.NoError(t, err)
	return id
}

func TestApplicationRepositoryLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db, logger.NewNop())
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	first := seedApplication(t, repo, "acme", admindomain.StatusPending, []string{"crm"}, base)
	second := seedApplication(t, repo, "brokerly", admindomain.StatusPending, []string{"crm"}, base.Add(time.Hour))

	apps, err := repo.Find(ctx, application.ApplicationFilter{}, application.Paging{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, second, apps[0].ID)

	apps, err = repo.Find(ctx, application.ApplicationFilter{Keyword: "ACM"}, application.Paging{})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, first, apps[0].ID)
	assert.Equal(t, []string{"Slack"}, apps[0].Integrations)

	require.NoError(t, repo.UpdateStatus(ctx, first, admindomain.StatusRejected, "incomplete"))
	got, err := repo.FindByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, admindomain.StatusRejected, got.Status)
	assert.Equal(t, "incomplete", got.RejectReason)

	apps, err = repo.Find(ctx, application.ApplicationFilter{Status: "pending"}, application.Paging{})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, second, apps[0].ID)
}

func TestApplicationRepositoryNotFound(t *testing.T) {
	repo := NewApplicationRepository(openTestDB(t), logger.NewNop())
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, application.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", admindomain.StatusApproved, ""), application.ErrNotFound)
}

func sampleAssessment(applicationID string) admindomain.Assessment {
	rank := 1
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return admindomain.Assessment{
		ApplicationID: applicationID,
		Stage:         admindomain.StageDraft,
		Features: []admindomain.FeatureAssessment{
			{
				ID:             "f-0",
				Name:           "Workflow Builder",
				Category:       scoring.CategoryAutomation,
				Score:          8,
				Boost:          scoring.BoostStrong,
				PublicNote:     "Fast setup",
				PrivateNote:    "Asked for a discount",
				TopFeatureRank: &rank,
			},
		},
		SelectedBadges:    admindomain.BadgeList{admindomain.BadgeMomentum},
		ServiceAreas:      admindomain.RegionList{admindomain.RegionEurope},
		PricingEntry:      "$29/mo",
		Alternatives:      []string{"Acme CRM"},
		FAQs:              []admindomain.FAQ{{Question: "Trial?", Answer: "Yes"}},
		LinkedResources:   []admindomain.LinkedResource{{Title: "Docs", URL: "https://example.com/docs"}},
		PublishedSections: admindomain.DefaultPublishedSections(),
		OverallScore:      1.92,
		CategoryScores:    map[scoring.CategoryKey]float64{scoring.CategoryAutomation: 9.6},
		CreatedAt:         created,
		UpdatedAt:         created,
	}
}

func TestAssessmentRepositoryUpsertReplaces(t *testing.T) {
	repo := NewAssessmentRepository(openTestDB(t), logger.NewNop())
	ctx := context.Background()

	_, err := repo.FindByApplicationID(ctx, "app-1")
	assert.ErrorIs(t, err, application.ErrNotFound)

	record := sampleAssessment("app-1")
	require.NoError(t, repo.Upsert(ctx, &record))

	got, err := repo.FindByApplicationID(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, record, *got)

	finalized := record.CreatedAt.Add(time.Hour)
	record.Stage = admindomain.StageFinal
	record.FinalizedAt = &finalized
	record.UpdatedAt = finalized
	record.Alternatives = nil
	require.NoError(t, repo.Upsert(ctx, &record))

	got, err = repo.FindByApplicationID(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, admindomain.StageFinal, got.Stage)
	require.NotNil(t, got.FinalizedAt)
	assert.True(t, finalized.Equal(*got.FinalizedAt))
	assert.Empty(t, got.Alternatives)

	var count int64
	require.NoError(t, repo.db.Model(&AssessmentRow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVendorRepositoryServesApprovedOnly(t *testing.T) {
	db := openTestDB(t)
	apps := NewApplicationRepository(db, logger.NewNop())
	assessments := NewAssessmentRepository(db, logger.NewNop())
	vendors := NewVendorRepository(db, logger.NewNop())
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	approved := seedApplication(t, apps, "acme", admindomain.StatusApproved, []string{"crm", "automation"}, base)
	pending := seedApplication(t, apps, "brokerly", admindomain.StatusPending, []string{"crm"}, base)
	seedApplication(t, apps, "dealdesk", admindomain.StatusApproved, []string{"compliance"}, base.Add(time.Hour))

	record := sampleAssessment(approved)
	require.NoError(t, assessments.Upsert(ctx, &record))

	list, err := vendors.Find(ctx, publicapp.VendorFilter{Category: "crm"}, publicapp.Paging{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, approved, list[0].ID)
	require.NotNil(t, list[0].Assessment)
	assert.Equal(t, "Fast setup", list[0].Assessment.Features[0].PublicNote)
	assert.Equal(t, 4.4, *list[0].Stats.AvgRating)

	all, err := vendors.Find(ctx, publicapp.VendorFilter{}, publicapp.Paging{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = vendors.FindByID(ctx, pending)
	assert.ErrorIs(t, err, publicapp.ErrNotFound)

	v, err := vendors.FindByID(ctx, approved)
	require.NoError(t, err)
	assert.Equal(t, "acme", v.Name)
	assert.Equal(t, 2.0, *v.TrustMetrics.ResponseTimeHours)
}

func TestVendorRepositoryTreatsWildcardsLiterally(t *testing.T) {
	db := openTestDB(t)
	apps := NewApplicationRepository(db, logger.NewNop())
	vendors := NewVendorRepository(db, logger.NewNop())
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	seedApplication(t, apps, "acme", admindomain.StatusApproved, []string{"crm"}, base)
	literal := seedApplication(t, apps, "pct", admindomain.StatusApproved, []string{"c%"}, base.Add(time.Hour))

	list, err := vendors.Find(ctx, publicapp.VendorFilter{Category: "c%"}, publicapp.Paging{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, literal, list[0].ID)

	list, err = vendors.Find(ctx, publicapp.VendorFilter{Category: "c_m"}, publicapp.Paging{})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = vendors.Find(ctx, publicapp.VendorFilter{Keyword: "ac_e"}, publicapp.Paging{})
	require.NoError(t, err)
	assert.Empty(t, list)

	found, err := apps.Find(ctx, application.ApplicationFilter{Keyword: "%"}, application.Paging{})
	require.NoError(t, err)
	assert.Empty(t, found)
}
