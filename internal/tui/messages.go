package tui

import (
	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/services"
)

// Screen identifies a top-level view
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenSell
	ScreenBrowse
	ScreenAdmin
)

// navigateMsg switches the active screen
type navigateMsg struct {
	screen Screen
}

// otpSentMsg reports a successful OTP dispatch
type otpSentMsg struct {
	challenge *domain.OtpChallenge
}

// verifiedMsg reports a completed login and the destination it requested
type verifiedMsg struct {
	destination string
}

// flowErrMsg carries a failed request's error back into the update loop
type flowErrMsg struct {
	err error
}

// imagesAddedMsg reports an upload batch reconciliation
type imagesAddedMsg struct {
	media []domain.UploadedMedia
}

// imageRemovedMsg reports a completed image removal
type imageRemovedMsg struct{}

// submittedMsg reports a created listing
type submittedMsg struct {
	listingID string
}

// dashboardLoadedMsg carries the dashboard's joint fetch result
type dashboardLoadedMsg struct {
	data *services.DashboardData
}

// listingDeletedMsg reports a completed dashboard delete
type listingDeletedMsg struct {
	id string
}

// searchResultsMsg carries browse results
type searchResultsMsg struct {
	listings []domain.ListingSummary
	total    int
}

// adminLoggedInMsg reports a completed admin login
type adminLoggedInMsg struct{}

// pendingLoadedMsg carries the moderation queue
type pendingLoadedMsg struct {
	listings []domain.ListingSummary
}

// reviewedMsg reports a completed verdict
type reviewedMsg struct {
	listingID string
}

func screenFor(destination string) Screen {
	switch destination {
	case "sell":
		return ScreenSell
	case "browse":
		return ScreenBrowse
	default:
		return ScreenDashboard
	}
}
