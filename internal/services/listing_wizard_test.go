package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/mocks"
)

var testBounds = domain.PriceBounds{Min: 50000, Max: 10000000}

func newTestWizard(listings *mocks.MockListingAPI, media *mocks.MockMediaAPI) (*ListingWizardImpl, *mocks.MockNotifier, *mocks.MockEventLog) {
	notifier := mocks.NewMockNotifier()
	events := mocks.NewMockEventLog()
	wizard := NewListingWizard(listings, media, notifier, events, testBounds, 10)
	return wizard, notifier, events
}

func fillDetails(w *ListingWizardImpl) {
	w.SetVehicle(domain.VehicleDetails{
		Brand: "Maruti Suzuki", Model: "Swift", Variant: "VXI",
		Year: "2019", FuelType: "petrol", Transmission: "manual",
		KmDriven: "45000", OwnerNumber: "1",
	})
}

func fillPricing(w *ListingWizardImpl) {
	w.SetPricing(domain.PricingInfo{Price: "550000", Urgency: "within_month"})
}

func fillContactLocation(w *ListingWizardImpl) {
	w.SetLocation(domain.LocationInfo{City: "Pune", State: "Maharashtra"})
	w.SetContact(domain.ContactInfo{SellerName: "Asha", PhoneNumber: "+919876543210"})
}

func advanceToMedia(t *testing.T, w *ListingWizardImpl) {
	t.Helper()
	fillDetails(w)
	require.NoError(t, w.Next())
	fillPricing(w)
	require.NoError(t, w.Next())
	fillContactLocation(w)
	require.NoError(t, w.Next())
	require.Equal(t, domain.StepMedia, w.Step())
}

func uploadOne(t *testing.T, w *ListingWizardImpl) {
	t.Helper()
	_, err := w.AddImages(context.Background(), []domain.MediaFile{{Name: "front.jpg", Content: []byte("x")}})
	require.NoError(t, err)
	require.Equal(t, 1, func() int { d := w.Draft(); return d.UploadedCount() }())
}

func TestNextBlocksOnMissingFields(t *testing.T) {
	wizard, _, _ := newTestWizard(mocks.NewMockListingAPI(), mocks.NewMockMediaAPI())

	err := wizard.Next()

	assert.ErrorIs(t, err, domain.ErrStepBlocked)
	assert.Equal(t, domain.StepDetails, wizard.Step())
	assert.Contains(t, wizard.FieldErrors(), "brand_name")
	assert.Contains(t, wizard.FieldErrors(), "year")
}

func TestNextAdvancesThroughSteps(t *testing.T) {
	wizard, _, _ := newTestWizard(mocks.NewMockListingAPI(), mocks.NewMockMediaAPI())

	advanceToMedia(t, wizard)

	assert.Empty(t, wizard.FieldErrors())
}

func TestPricingBoundsAreInclusive(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		blocked bool
	}{
		{"at minimum", "50000", false},
		{"below minimum", "49999", true},
		{"at maximum", "10000000", false},
		{"above maximum", "10000001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wizard, _, _ := newTestWizard(mocks.NewMockListingAPI(), mocks.NewMockMediaAPI())
			fillDetails(wizard)
			require.NoError(t, wizard.Next())
			wizard.SetPricing(domain.PricingInfo{Price: tt.price})

			err := wizard.Next()

			if tt.blocked {
				assert.ErrorIs(t, err, domain.ErrStepBlocked)
				assert.Contains(t, wizard.FieldErrors(), "price")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBackPreservesInput(t *testing.T) {
	wizard, _, _ := newTestWizard(mocks.NewMockListingAPI(), mocks.NewMockMediaAPI())
	fillDetails(wizard)
	require.NoError(t, wizard.Next())

	wizard.Back()

	assert.Equal(t, domain.StepDetails, wizard.Step())
	assert.Equal(t, "Swift", wizard.Draft().Vehicle.Model)
}

func TestAddImagesReconcilesPerFile(t *testing.T) {
	media := mocks.NewMockMediaAPI()
	media.UploadImagesFunc = func(ctx context.Context, files []domain.MediaFile) ([]domain.UploadOutcome, error) {
		return []domain.UploadOutcome{
			{Name: "front.jpg", RemoteID: "img-1", URL: "/media/front.jpg"},
			{Name: "huge.jpg", Err: assert.AnError},
		}, nil
	}
	wizard, notifier, events := newTestWizard(mocks.NewMockListingAPI(), media)

	result, err := wizard.AddImages(context.Background(), []domain.MediaFile{
		{Name: "front.jpg", Content: []byte("x")},
		{Name: "huge.jpg", Content: []byte("x")},
	})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "img-1", result[0].RemoteID)
	assert.NotEmpty(t, result[0].LocalID)
	assert.Len(t, notifier.Errors, 1)
	assert.Contains(t, events.Types(), "IMAGE_UPLOADED")
	assert.Contains(t, events.Types(), "IMAGE_UPLOAD_FAILED")
}

func TestAddImagesWholeBatchFailureLeavesDraftClean(t *testing.T) {
	media := mocks.NewMockMediaAPI()
	media.UploadImagesFunc = func(ctx context.Context, files []domain.MediaFile) ([]domain.UploadOutcome, error) {
		return nil, &domain.APIError{Kind: domain.KindNetworkUnavailable, Message: "offline"}
	}
	wizard, _, _ := newTestWizard(mocks.NewMockListingAPI(), media)

	_, err := wizard.AddImages(context.Background(), []domain.MediaFile{{Name: "front.jpg", Content: []byte("x")}})

	require.Error(t, err)
	assert.Empty(t, wizard.Media())
}

func TestAddImagesEnforcesCap(t *testing.T) {
	media := mocks.NewMockMediaAPI()
	uploads := 0
	media.UploadImagesFunc = func(ctx context.Context, files []domain.MediaFile) ([]domain.UploadOutcome, error) {
		uploads++
		outcomes := make([]domain.UploadOutcome, len(files))
		for i, f := range files {
			outcomes[i] = domain.UploadOutcome{Name: f.Name, RemoteID: f.Name}
		}
		return outcomes, nil
	}
	wizard, _, _ := newTestWizard(mocks.NewMockListingAPI(), media)

	batch := make([]domain.MediaFile, 10)
	for i := range batch {
		batch[i] = domain.MediaFile{Name: string(rune('a'+i)) + ".jpg", Content: []byte("x")}
	}
	_, err := wizard.AddImages(context.Background(), batch)
	require.NoError(t, err)

	_, err = wizard.AddImages(context.Background(), []domain.MediaFile{{Name: "over.jpg", Content: []byte("x")}})

	assert.Error(t, err)
	assert.Equal(t, 1, uploads)
}

func TestRemoveImageDeletesRemoteFirst(t *testing.T) {
	media := mocks.NewMockMediaAPI()
	wizard, _, _ := newTestWizard(mocks.NewMockListingAPI(), media)
	uploadOne(t, wizard)
	localID := wizard.Media()[0].LocalID
	remoteID := wizard.Media()[0].RemoteID

	err := wizard.RemoveImage(context.Background(), localID)

	require.NoError(t, err)
	assert.Empty(t, wizard.Media())
	assert.Equal(t, []string{remoteID}, media.Deleted)
}

func TestRemoveImageKeepsEntryWhenRemoteDeleteFails(t *testing.T) {
	media := mocks.NewMockMediaAPI()
	media.DeleteFileFunc = func(ctx context.Context, remoteID string) error {
		return &domain.APIError{Kind: domain.KindServerError, Message: "oops"}
	}
	wizard, notifier, _ := newTestWizard(mocks.NewMockListingAPI(), media)
	uploadOne(t, wizard)
	localID := wizard.Media()[0].LocalID

	err := wizard.RemoveImage(context.Background(), localID)

	require.Error(t, err)
	assert.Len(t, wizard.Media(), 1)
	assert.Len(t, notifier.Errors, 1)
}

func TestRemoveImageUnknownID(t *testing.T) {
	wizard, _, _ := newTestWizard(mocks.NewMockListingAPI(), mocks.NewMockMediaAPI())

	err := wizard.RemoveImage(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrMediaNotFound)
}

func TestDraftSnapshotSurvivesLaterRemoval(t *testing.T) {
	wizard, _, _ := newTestWizard(mocks.NewMockListingAPI(), mocks.NewMockMediaAPI())
	advanceToMedia(t, wizard)

	_, err := wizard.AddImages(context.Background(), []domain.MediaFile{
		{Name: "front.jpg", Content: []byte("x")},
		{Name: "rear.jpg", Content: []byte("y")},
	})
	require.NoError(t, err)

	snapshot := wizard.Draft()
	require.Len(t, snapshot.Media, 2)

	require.NoError(t, wizard.RemoveImage(context.Background(), snapshot.Media[0].LocalID))

	require.Len(t, snapshot.Media, 2)
	assert.Equal(t, "front.jpg", snapshot.Media[0].FileName)
	assert.Equal(t, "rear.jpg", snapshot.Media[1].FileName)
	assert.Len(t, wizard.Draft().Media, 1)
}

func TestSubmitHappyPath(t *testing.T) {
	listings := mocks.NewMockListingAPI()
	var created *domain.ListingDraft
	listings.CreateFunc = func(ctx context.Context, draft *domain.ListingDraft) (string, error) {
		created = draft
		return "c9", nil
	}
	wizard, notifier, events := newTestWizard(listings, mocks.NewMockMediaAPI())
	advanceToMedia(t, wizard)
	uploadOne(t, wizard)

	id, err := wizard.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "c9", id)
	assert.Equal(t, "c9", wizard.ListingID())
	assert.Equal(t, domain.StepSubmitted, wizard.Step())
	require.NotNil(t, created)
	assert.Len(t, created.ImageIDs(), 1)
	assert.Contains(t, notifier.Successes, "Listing submitted for review")
	assert.Contains(t, events.Types(), "LISTING_SUBMITTED")

	// The draft is discarded after success
	assert.Empty(t, wizard.Draft().Vehicle.Brand)

	_, err = wizard.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrWizardCompleted)
}

func TestSubmitRequiresUploadedImage(t *testing.T) {
	listings := mocks.NewMockListingAPI()
	listings.CreateFunc = func(ctx context.Context, draft *domain.ListingDraft) (string, error) {
		t.Fatal("no request expected")
		return "", nil
	}
	wizard, _, _ := newTestWizard(listings, mocks.NewMockMediaAPI())
	advanceToMedia(t, wizard)

	_, err := wizard.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrStepBlocked)
	assert.Contains(t, wizard.FieldErrors(), "images")
}

func TestSubmitServerValidationRoutesToOwningStep(t *testing.T) {
	listings := mocks.NewMockListingAPI()
	listings.CreateFunc = func(ctx context.Context, draft *domain.ListingDraft) (string, error) {
		return "", &domain.APIError{
			Kind:    domain.KindServerValidation,
			Code:    "VALIDATION_ERROR",
			Message: "Invalid listing data",
			Fields:  map[string]string{"price": "Price is below the market minimum"},
		}
	}
	wizard, _, _ := newTestWizard(listings, mocks.NewMockMediaAPI())
	advanceToMedia(t, wizard)
	uploadOne(t, wizard)

	_, err := wizard.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.StepPricing, wizard.Step())
	assert.Equal(t, "Price is below the market minimum", wizard.FieldErrors()["price"])
	assert.Equal(t, "550000", wizard.Draft().Pricing.Price)

	// Fixing the field and resubmitting works
	listings.CreateFunc = func(ctx context.Context, draft *domain.ListingDraft) (string, error) {
		return "c9", nil
	}
	wizard.SetPricing(domain.PricingInfo{Price: "600000"})
	id, err := wizard.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c9", id)
}

func TestSubmitNetworkFailureKeepsDraft(t *testing.T) {
	listings := mocks.NewMockListingAPI()
	listings.CreateFunc = func(ctx context.Context, draft *domain.ListingDraft) (string, error) {
		return "", &domain.APIError{Kind: domain.KindNetworkUnavailable, Message: "offline"}
	}
	wizard, notifier, _ := newTestWizard(listings, mocks.NewMockMediaAPI())
	advanceToMedia(t, wizard)
	uploadOne(t, wizard)

	_, err := wizard.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.StepMedia, wizard.Step())
	assert.Equal(t, "Swift", wizard.Draft().Vehicle.Model)
	assert.Contains(t, notifier.Errors, "offline")
}

func TestSubmitGuardAllowsOneInFlightRequest(t *testing.T) {
	listings := mocks.NewMockListingAPI()
	started := make(chan struct{})
	release := make(chan struct{})
	createCalls := 0
	listings.CreateFunc = func(ctx context.Context, draft *domain.ListingDraft) (string, error) {
		createCalls++
		close(started)
		<-release
		return "c9", nil
	}
	wizard, _, _ := newTestWizard(listings, mocks.NewMockMediaAPI())
	advanceToMedia(t, wizard)
	uploadOne(t, wizard)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := wizard.Submit(context.Background())
		assert.NoError(t, err)
	}()

	<-started
	_, err := wizard.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)

	close(release)
	wg.Wait()
	assert.Equal(t, 1, createCalls)
}
