package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func pendingApplication() admindomain.Application {
	return admindomain.Application{
		ID:           "app-42",
		CompanyName:  "Brokerly",
		Features:     []string{"Fact find", "E-sign"},
		Integrations: []string{"Mercury"},
		Status:       admindomain.StatusPending,
	}
}

func newTestService(apps *memoryApplications, store *memoryAssessments, opts ...AssessmentOption) AssessmentService {
	opts = append([]AssessmentOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewAssessmentService(store, apps, opts...)
}

func sampleCommand() UpsertAssessmentCommand {
	one := 1
	return UpsertAssessmentCommand{
		Features: []FeatureCommand{
			{ID: "f-0", Name: "Fact find", Category: "automation", Score: 8, Boost: 1.2, TopFeatureRank: &one},
			{ID: "f-sso", Name: "SSO", Category: "security", Score: 8, Boost: 1.5, PrivateNote: "checked in demo"},
		},
		SelectedBadges:    []string{"leader"},
		ServiceAreas:      []string{"AU/NZ Only"},
		PublishedSections: map[string]bool{"scores": true},
		FAQs:              []FAQCommand{{Question: "Trial?", Answer: "14 days"}},
		LinkedResources:   []LinkedResourceCommand{{Title: "Docs", URL: "https://docs.example.com"}},
	}
}

func TestOpenSeedsWhenNoRecordExists(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	svc := newTestService(apps, store)

	res, err := svc.Open(context.Background(), "app-42")
	require.NoError(t, err)
	assert.True(t, res.Seeded)
	assert.Len(t, res.Assessment.Features, 3)
	assert.Equal(t, admindomain.StageDraft, res.Assessment.Stage)

	// Seeding alone persists nothing.
	assert.Zero(t, store.upserts)
}

func TestOpenDoesNotReseedExistingRecord(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	svc := newTestService(apps, store)
	ctx := context.Background()

	cmd := UpsertAssessmentCommand{Features: []FeatureCommand{{ID: "only", Name: "Custom", Category: "data", Score: 6, Boost: 1}}}
	_, err := svc.SaveDraft(ctx, "app-42", cmd)
	require.NoError(t, err)

	res, err := svc.Open(ctx, "app-42")
	require.NoError(t, err)
	assert.False(t, res.Seeded)
	require.Len(t, res.Assessment.Features, 1)
	assert.Equal(t, "Custom", res.Assessment.Features[0].Name)
}

func TestOpenUnknownApplication(t *testing.T) {
	svc := newTestService(newMemoryApplications(), newMemoryAssessments())
	_, err := svc.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Open(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveDraftSnapshotsScoresAndKeepsStatus(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	inv := &recordingInvalidator{}
	svc := newTestService(apps, store, WithListingInvalidator(inv))

	res, err := svc.SaveDraft(context.Background(), "app-42", sampleCommand())
	require.NoError(t, err)

	// automation 9.6*0.20 + security 12*0.25
	assert.InDelta(t, 4.92, res.Assessment.OverallScore, 1e-9)
	assert.InDelta(t, 12.0, res.Assessment.CategoryScores[scoring.CategorySecurity], 1e-9)
	assert.Equal(t, admindomain.StageDraft, res.Assessment.Stage)

	stored, ok := store.stored("app-42")
	require.True(t, ok)
	assert.Equal(t, res.Assessment, stored)
	assert.Equal(t, admindomain.StatusPending, apps.status("app-42"))
	assert.Equal(t, []string{"app-42"}, inv.ids)
}

func TestSaveDraftRejectsClosedVocabularyViolations(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	svc := newTestService(apps, store)
	ctx := context.Background()

	cases := map[string]UpsertAssessmentCommand{
		"boost":    {Features: []FeatureCommand{{Category: "ai", Score: 5, Boost: 2}}},
		"category": {Features: []FeatureCommand{{Category: "crypto", Score: 5}}},
		"badge":    {SelectedBadges: []string{"gold"}},
		"region":   {ServiceAreas: []string{"Mars"}},
		"section":  {PublishedSections: map[string]bool{"pricing": true}},
		"rank":     {Features: []FeatureCommand{{Category: "ai", Score: 5, TopFeatureRank: new(int)}}},
		"dup id":   {Features: []FeatureCommand{{ID: "a", Category: "ai", Score: 5}, {ID: "a", Category: "ai", Score: 6}}},
	}
	for name, cmd := range cases {
		_, err := svc.SaveDraft(ctx, "app-42", cmd)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
	assert.Zero(t, store.upserts)
}

func TestSaveDraftClampsOutOfRangeScores(t *testing.T) {
	svc := newTestService(newMemoryApplications(pendingApplication()), newMemoryAssessments())

	cmd := UpsertAssessmentCommand{Features: []FeatureCommand{{ID: "x", Category: "comm", Score: 14, Boost: 1}}}
	res, err := svc.SaveDraft(context.Background(), "app-42", cmd)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "score", res.Warnings[0].Field)
	assert.Equal(t, 10, res.Assessment.Features[0].Score)
}

func TestSaveDraftDefaultsNewFeature(t *testing.T) {
	svc := newTestService(newMemoryApplications(pendingApplication()), newMemoryAssessments())

	res, err := svc.SaveDraft(context.Background(), "app-42", UpsertAssessmentCommand{
		Features: []FeatureCommand{{Category: "usability", Score: 1}},
	})
	require.NoError(t, err)
	f := res.Assessment.Features[0]
	assert.Equal(t, "New Feature", f.Name)
	assert.Equal(t, scoring.BoostNone, f.Boost)
	assert.Contains(t, f.ID, "f-")
}

func TestSaveDraftPersistenceFailureIsReturned(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	store.upsertErr = errStoreDown
	svc := newTestService(apps, store)

	res, err := svc.SaveDraft(context.Background(), "app-42", sampleCommand())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, errStoreDown)
	_, ok := store.stored("app-42")
	assert.False(t, ok)
}

func TestFinalizeApprovesApplication(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	svc := newTestService(apps, store)

	res, err := svc.Finalize(context.Background(), "app-42", sampleCommand())
	require.NoError(t, err)
	assert.Equal(t, admindomain.StageFinal, res.Assessment.Stage)
	require.NotNil(t, res.Assessment.FinalizedAt)
	assert.Equal(t, fixedNow, *res.Assessment.FinalizedAt)
	assert.Equal(t, admindomain.StatusApproved, apps.status("app-42"))
}

func TestFinalizeIsIdempotent(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	svc := newTestService(apps, store)
	ctx := context.Background()

	_, err := svc.Finalize(ctx, "app-42", sampleCommand())
	require.NoError(t, err)
	first, _ := store.stored("app-42")

	_, err = svc.Finalize(ctx, "app-42", sampleCommand())
	require.NoError(t, err)
	second, _ := store.stored("app-42")

	assert.Equal(t, first, second)
	assert.Equal(t, admindomain.StatusApproved, apps.status("app-42"))
}

func TestFinalizeWithUnnamedFeatureIDsIsIdempotent(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	svc := newTestService(apps, store)
	ctx := context.Background()

	cmd := UpsertAssessmentCommand{
		Features: []FeatureCommand{{Name: "Added by editor", Category: "security", Score: 7, Boost: 1.2}},
	}

	_, err := svc.Finalize(ctx, "app-42", cmd)
	require.NoError(t, err)
	first, _ := store.stored("app-42")

	_, err = svc.Finalize(ctx, "app-42", cmd)
	require.NoError(t, err)
	second, _ := store.stored("app-42")

	assert.Equal(t, first, second)
	assert.Equal(t, first.Features[0].ID, second.Features[0].ID)
	assert.Contains(t, first.Features[0].ID, "f-")
}

func TestFinalizeWithZeroFeaturesIsAllowed(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	svc := newTestService(apps, newMemoryAssessments())

	res, err := svc.Finalize(context.Background(), "app-42", UpsertAssessmentCommand{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Assessment.OverallScore)
	assert.Equal(t, admindomain.StatusApproved, apps.status("app-42"))
}

func TestFinalizePartialFailureIsRetryable(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	inv := &recordingInvalidator{}
	svc := newTestService(apps, store, WithListingInvalidator(inv))
	ctx := context.Background()

	apps.statusErr = errStoreDown
	_, err := svc.Finalize(ctx, "app-42", sampleCommand())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFinalizeIncomplete)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, []string{"app-42"}, inv.ids)

	stored, ok := store.stored("app-42")
	require.True(t, ok)
	assert.True(t, stored.Final())
	assert.Equal(t, admindomain.StatusPending, apps.status("app-42"))

	apps.statusErr = nil
	_, err = svc.Finalize(ctx, "app-42", sampleCommand())
	require.NoError(t, err)
	repaired, _ := store.stored("app-42")
	assert.Equal(t, stored, repaired)
	assert.Equal(t, admindomain.StatusApproved, apps.status("app-42"))
}

func TestFinalizeAssessmentWriteFailureLeavesStatusAlone(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	store.upsertErr = errStoreDown
	svc := newTestService(apps, store)

	_, err := svc.Finalize(context.Background(), "app-42", sampleCommand())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrFinalizeIncomplete))
	assert.Zero(t, apps.statusWrites)
}

func TestReopenDoesNotDemoteApproval(t *testing.T) {
	apps := newMemoryApplications(pendingApplication())
	store := newMemoryAssessments()
	svc := newTestService(apps, store)
	ctx := context.Background()

	_, err := svc.Finalize(ctx, "app-42", sampleCommand())
	require.NoError(t, err)

	cmd := sampleCommand()
	cmd.AuditInProgress = true
	res, err := svc.SaveDraft(ctx, "app-42", cmd)
	require.NoError(t, err)

	assert.True(t, res.Assessment.Reopened())
	assert.Equal(t, admindomain.StatusApproved, apps.status("app-42"))
	assert.Equal(t, 1, apps.statusWrites)
}

func TestInvalidatorFailureDoesNotFailSave(t *testing.T) {
	inv := &recordingInvalidator{err: errors.New("redis down")}
	svc := newTestService(newMemoryApplications(pendingApplication()), newMemoryAssessments(), WithListingInvalidator(inv))

	_, err := svc.SaveDraft(context.Background(), "app-42", sampleCommand())
	assert.NoError(t, err)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	store := newMemoryAssessments()
	svc := newTestService(newMemoryApplications(pendingApplication()), store)

	eval, err := svc.Preview(sampleCommand())
	require.NoError(t, err)
	assert.InDelta(t, 4.92, eval.Overall, 1e-9)
	assert.Zero(t, store.upserts)

	_, err = svc.Preview(UpsertAssessmentCommand{Features: []FeatureCommand{{Category: "nope"}}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
