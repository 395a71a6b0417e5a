package directory

import (
	"fmt"
	"strings"

	"github.com/invoza/webapp/internal/api"
	"github.com/invoza/webapp/internal/validation"
)

// Form is the create/edit form state for an entity. Website, LogoURL and
// TaxID only render for businesses.
type Form struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Website string
	LogoURL string
	TaxID   string
}

// FormFromEntity seeds an edit form.
func FormFromEntity(e api.Entity) Form {
	return Form{
		Name:    e.Name,
		Email:   e.Email,
		Phone:   e.Phone,
		Address: e.Address,
		Website: e.Website,
		LogoURL: e.LogoURL,
		TaxID:   e.TaxID,
	}
}

// Validate runs the pre-submit checks. A non-empty result must block the
// upstream call entirely.
func (f Form) Validate() validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", f.Name, "Name is required", v)
	validation.Email("email", f.Email, "Invalid email format", v)
	return v
}

// Fields converts the form into the API's writable field set.
func (f Form) Fields() api.Fields {
	return api.Fields{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Address: f.Address,
		Website: f.Website,
		LogoURL: f.LogoURL,
		TaxID:   f.TaxID,
	}
}

// MapServerErrors pins backend rejection messages onto form fields by
// best-effort substring match, the same heuristic the backend's wording
// supports ("Name is required", "Invalid email format"). Messages that
// match no field are returned for display as a generic notice.
func MapServerErrors(messages []string) (validation.Violations, []string) {
	v := make(validation.Violations)
	var unmatched []string
	for _, msg := range messages {
		switch {
		case strings.Contains(msg, "Name"):
			v.Set("name", msg)
		case strings.Contains(msg, "email"):
			v.Set("email", msg)
		default:
			unmatched = append(unmatched, msg)
		}
	}
	return v, unmatched
}

// ConfirmDeleteMessage renders the confirmation copy, differentiating a
// single named deletion from a bulk one.
func ConfirmDeleteMessage(kind api.Kind, name string, bulkCount int) string {
	if bulkCount > 0 {
		return fmt.Sprintf("Are you sure you want to delete %d selected %s? This action cannot be undone.",
			bulkCount, kind.Plural())
	}
	return fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", name)
}

// BulkDeletedMessage reports the count the backend actually deleted, never
// the requested count.
func BulkDeletedMessage(kind api.Kind, deleted int) string {
	return fmt.Sprintf("Successfully deleted %d %s", deleted, kind.Plural())
}
