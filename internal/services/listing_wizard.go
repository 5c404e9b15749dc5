package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// ListingWizardImpl drives the multi-step sell flow. It exclusively owns the
// draft for the life of the flow: every mutation goes through the wizard so
// gating and validation always see current state.
type ListingWizardImpl struct {
	mu         sync.Mutex
	step       domain.WizardStep
	draft      domain.ListingDraft
	fieldErrs  domain.FieldErrors
	submitting bool
	completed  bool
	listingID  string

	listings  domain.ListingAPI
	media     domain.MediaAPI
	notifier  domain.Notifier
	events    domain.EventLog
	bounds    domain.PriceBounds
	maxImages int
}

// NewListingWizard creates a sell flow starting at the vehicle details step
func NewListingWizard(
	listings domain.ListingAPI,
	media domain.MediaAPI,
	notifier domain.Notifier,
	events domain.EventLog,
	bounds domain.PriceBounds,
	maxImages int,
) *ListingWizardImpl {
	return &ListingWizardImpl{
		step:      domain.StepDetails,
		fieldErrs: domain.FieldErrors{},
		listings:  listings,
		media:     media,
		notifier:  notifier,
		events:    events,
		bounds:    bounds,
		maxImages: maxImages,
	}
}

// Step returns the wizard's current step
func (w *ListingWizardImpl) Step() domain.WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the accumulated draft. The media slice is copied
// too so later draft compaction cannot reach into the caller's snapshot.
func (w *ListingWizardImpl) Draft() domain.ListingDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	draft := w.draft
	draft.Media = w.mediaSnapshot()
	return draft
}

// FieldErrors returns the current per-field validation messages
func (w *ListingWizardImpl) FieldErrors() domain.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	errs := make(domain.FieldErrors, len(w.fieldErrs))
	for k, v := range w.fieldErrs {
		errs[k] = v
	}
	return errs
}

// ListingID returns the created listing's ID after a successful submit
func (w *ListingWizardImpl) ListingID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.listingID
}

// SetVehicle updates the vehicle details fields
func (w *ListingWizardImpl) SetVehicle(details domain.VehicleDetails) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Vehicle = details
}

// SetPricing updates the pricing fields
func (w *ListingWizardImpl) SetPricing(pricing domain.PricingInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Pricing = pricing
}

// SetCondition updates the condition fields
func (w *ListingWizardImpl) SetCondition(condition domain.ConditionInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Condition = condition
}

// SetLocation updates the location fields
func (w *ListingWizardImpl) SetLocation(location domain.LocationInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Location = location
}

// SetContact updates the contact fields
func (w *ListingWizardImpl) SetContact(contact domain.ContactInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Contact = contact
}

// SetDescription updates the free-text description
func (w *ListingWizardImpl) SetDescription(description string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Description = description
}

// SetFeatures replaces the feature list
func (w *ListingWizardImpl) SetFeatures(features []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Features = features
}

// Next validates the current step and advances on success. On failure the
// wizard stays put and FieldErrors carries the messages.
func (w *ListingWizardImpl) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.completed {
		return domain.ErrWizardCompleted
	}

	errs := w.validateStep(w.step)
	if !errs.Empty() {
		w.fieldErrs = errs
		return domain.ErrStepBlocked
	}

	w.fieldErrs = domain.FieldErrors{}
	switch w.step {
	case domain.StepDetails:
		w.step = domain.StepPricing
	case domain.StepPricing:
		w.step = domain.StepContactLocation
	case domain.StepContactLocation:
		w.step = domain.StepMedia
	}
	return nil
}

// Back returns to the previous step, preserving everything entered
func (w *ListingWizardImpl) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.completed {
		return
	}
	switch w.step {
	case domain.StepPricing:
		w.step = domain.StepDetails
	case domain.StepContactLocation:
		w.step = domain.StepPricing
	case domain.StepMedia:
		w.step = domain.StepContactLocation
	}
	w.fieldErrs = domain.FieldErrors{}
}

func (w *ListingWizardImpl) validateStep(step domain.WizardStep) domain.FieldErrors {
	switch step {
	case domain.StepDetails:
		return domain.ValidateDetails(&w.draft)
	case domain.StepPricing:
		return domain.ValidatePricing(&w.draft, w.bounds)
	case domain.StepContactLocation:
		return domain.ValidateContactLocation(&w.draft)
	case domain.StepMedia:
		return domain.ValidateMedia(&w.draft)
	}
	return domain.FieldErrors{}
}

// AddImages uploads a batch and reconciles each file individually: successes
// become part of the draft, failures are dropped with a per-file toast. The
// draft never ends up referencing an image the server does not hold.
func (w *ListingWizardImpl) AddImages(ctx context.Context, files []domain.MediaFile) ([]domain.UploadedMedia, error) {
	if len(files) == 0 {
		return w.Media(), nil
	}

	w.mu.Lock()
	if w.completed {
		w.mu.Unlock()
		return nil, domain.ErrWizardCompleted
	}
	if len(w.draft.Media)+len(files) > w.maxImages {
		w.mu.Unlock()
		return nil, fmt.Errorf("a listing can have at most %d images", w.maxImages)
	}

	pending := make([]string, 0, len(files))
	for _, f := range files {
		localID := uuid.NewString()
		pending = append(pending, localID)
		w.draft.Media = append(w.draft.Media, domain.UploadedMedia{
			LocalID:  localID,
			FileName: f.Name,
		})
	}
	w.mu.Unlock()

	outcomes, err := w.media.UploadImages(ctx, files)
	if err != nil {
		// Whole batch failed before any file resolved
		w.mu.Lock()
		w.removeLocalIDs(pending)
		w.mu.Unlock()
		w.events.Record(domain.NewFlowEvent(domain.ImageUploadFailedEvent).WithError(err))
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for i, outcome := range outcomes {
		if i >= len(pending) {
			break
		}
		localID := pending[i]
		if outcome.Err != nil {
			w.removeLocalIDs([]string{localID})
			w.notifier.Error(outcome.Err.Error())
			w.events.Record(domain.NewFlowEvent(domain.ImageUploadFailedEvent).
				WithMetadata("file", outcome.Name).
				WithError(outcome.Err))
			continue
		}
		for j := range w.draft.Media {
			if w.draft.Media[j].LocalID == localID {
				w.draft.Media[j].RemoteID = outcome.RemoteID
				w.draft.Media[j].URL = outcome.URL
				w.draft.Media[j].ThumbnailURL = outcome.ThumbnailURL
				break
			}
		}
		w.events.Record(domain.NewFlowEvent(domain.ImageUploadedEvent).WithMetadata("file", outcome.Name))
	}

	return w.mediaSnapshot(), nil
}

// RemoveImage deletes an image from the draft. Uploaded images are removed
// from the server first; if that fails the draft keeps the image so the two
// sides never disagree about what exists.
func (w *ListingWizardImpl) RemoveImage(ctx context.Context, localID string) error {
	w.mu.Lock()
	if w.completed {
		w.mu.Unlock()
		return domain.ErrWizardCompleted
	}
	var target *domain.UploadedMedia
	for i := range w.draft.Media {
		if w.draft.Media[i].LocalID == localID {
			target = &w.draft.Media[i]
			break
		}
	}
	if target == nil {
		w.mu.Unlock()
		return domain.ErrMediaNotFound
	}
	remoteID := target.RemoteID
	w.mu.Unlock()

	if remoteID != "" {
		if err := w.media.DeleteFile(ctx, remoteID); err != nil {
			w.notifier.Error("Could not remove the image, please try again")
			w.events.Record(domain.NewFlowEvent(domain.ImageDeleteFailedEvent).
				WithMetadata("remote_id", remoteID).
				WithError(err))
			return err
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.removeLocalIDs([]string{localID})
	return nil
}

// Media returns a copy of the draft's media entries
func (w *ListingWizardImpl) Media() []domain.UploadedMedia {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mediaSnapshot()
}

// Submit validates the whole draft and creates the listing. Exactly one
// create request is in flight at a time: a second Submit during the first
// returns ErrSubmitInFlight without touching the network.
func (w *ListingWizardImpl) Submit(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.completed {
		w.mu.Unlock()
		return "", domain.ErrWizardCompleted
	}
	if w.submitting {
		w.mu.Unlock()
		return "", domain.ErrSubmitInFlight
	}

	errs := domain.FieldErrors{}
	for _, step := range []domain.WizardStep{domain.StepDetails, domain.StepPricing, domain.StepContactLocation, domain.StepMedia} {
		for field, msg := range w.validateStep(step) {
			errs[field] = msg
		}
	}
	if !errs.Empty() {
		w.fieldErrs = errs
		w.step = domain.EarliestStep(errs)
		w.mu.Unlock()
		return "", domain.ErrStepBlocked
	}

	w.submitting = true
	draft := w.draft
	w.mu.Unlock()

	id, err := w.listings.Create(ctx, &draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil {
		w.events.Record(domain.NewFlowEvent(domain.ListingSubmitFailedEvent).WithError(err))
		if fields := domain.FieldsOf(err); len(fields) > 0 {
			// The server rejected specific fields; route back to the
			// earliest step that owns one of them.
			w.fieldErrs = domain.FieldErrors(fields)
			w.step = domain.EarliestStep(w.fieldErrs)
			w.notifier.Error("Please fix the highlighted fields")
			return "", err
		}
		w.notifier.Error(userMessage(err))
		return "", err
	}

	w.completed = true
	w.listingID = id
	w.draft = domain.ListingDraft{}
	w.step = domain.StepSubmitted

	w.events.Record(domain.NewFlowEvent(domain.ListingSubmittedEvent).WithListing(id))
	w.notifier.Success("Listing submitted for review")
	return id, nil
}

// removeLocalIDs drops media entries by local ID. Caller holds the lock.
func (w *ListingWizardImpl) removeLocalIDs(localIDs []string) {
	drop := make(map[string]bool, len(localIDs))
	for _, id := range localIDs {
		drop[id] = true
	}
	kept := w.draft.Media[:0]
	for _, m := range w.draft.Media {
		if !drop[m.LocalID] {
			kept = append(kept, m)
		}
	}
	w.draft.Media = kept
}

func (w *ListingWizardImpl) mediaSnapshot() []domain.UploadedMedia {
	snapshot := make([]domain.UploadedMedia, len(w.draft.Media))
	copy(snapshot, w.draft.Media)
	return snapshot
}

// userMessage picks the message a toast should carry for an API failure
func userMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong, please try again"
}
