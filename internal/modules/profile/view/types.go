package view

import (
	"time"

	"github.com/nfrund/homejobs/internal/domain"
)

// TabLink is one entry of the tab bar.
type TabLink struct {
	Name   string
	Label  string
	Active bool
}

// FormData is the view model of the profile form.
type FormData struct {
	ID         string
	Tab        string
	Tabs       []TabLink
	Draft      domain.ProfileFields

	Subscription       *domain.SubscriptionDetails
	SubscriptionFailed bool
	Location           *time.Location
}

// PageData is the view model of the whole profile page.
type PageData struct {
	Profile *domain.Profile
	Form    FormData
}
