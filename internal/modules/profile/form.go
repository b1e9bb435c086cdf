package profile

import (
	"fmt"
	"sync/atomic"

	"github.com/nfrund/homejobs/internal/domain"
)

// SubmitState is the position of a form in its submit cycle.
type SubmitState uint32

const (
	StateIdle SubmitState = iota
	StateSubmitting
)

func (s SubmitState) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// Form is one mounted instance of the profile form. The draft is seeded once
// from the profile passed to NewForm and is never re-synced from the store;
// every submit sends the whole draft.
type Form struct {
	ID      string
	Tab     Tab
	Draft   domain.ProfileFields
	Session *domain.Session

	// Subscription is the billing summary. SubscriptionErr is set when the
	// read failed, which is distinct from a nil Subscription.
	Subscription    *domain.SubscriptionDetails
	SubscriptionErr error

	state atomic.Uint32
}

// NewForm mounts a form. A nil or partial profile seeds empty strings.
func NewForm(id string, p *domain.Profile, tab Tab, sess *domain.Session) *Form {
	f := &Form{ID: id, Tab: tab, Session: sess}
	if p != nil {
		f.Draft = p.ProfileFields
	}
	return f
}

func (f *Form) State() SubmitState {
	return SubmitState(f.state.Load())
}


func (f *Form) setState(s SubmitState) {
	f.state.Store(uint32(s))
}

// SetField edits one draft field by its form name.
func (f *Form) SetField(name, value string) error {
	switch name {
	case "full_name":
		f.Draft.FullName = value
	case "username":
		f.Draft.Username = value
	case "website":
		f.Draft.Website = value
	case "billing_address":
		f.Draft.BillingAddress = value
	case "phone_number":
		f.Draft.PhoneNumber = value
	case "company_name":
		f.Draft.CompanyName = value
	default:
		return fmt.Errorf("unknown profile field %q", name)
	}
	return nil
}

// FieldNames lists every draft field by form name.
var FieldNames = []string{"full_name", "username", "website", "billing_address", "phone_number", "company_name"}
