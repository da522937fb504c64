package partners

import (
	"strings"
	"time"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

func (in UpdateInput) columns() (map[string]any, error) {
	updates := map[string]any{}
	setText := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	setText("company_name", in.CompanyName)
	setText("contact_name", in.ContactName)
	setText("phone", in.Phone)
	setText("city", in.City)
	setText("state", in.State)
	setText("notes", in.Notes)
	setText("tipalti_payee_id", in.TipaltiPayeeID)
	setText("tipalti_status", in.TipaltiStatus)

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !strings.Contains(email, "@") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
		}
		updates["email"] = email
	}
	if in.CompanyName != nil && updates["company_name"] == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name cannot be empty")
	}

	start, err := parseDate("trial_start_date", in.TrialStartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("trial_end_date", in.TrialEndDate)
	if err != nil {
		return nil, err
	}
	if in.TrialStartDate != nil {
		updates["trial_start_date"] = start
	}
	if in.TrialEndDate != nil {
		updates["trial_end_date"] = end
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, errTrialWindow
	}
	return updates, nil
}

var errTrialWindow = pkgerrors.New(pkgerrors.CodeValidation, "trial end must not precede trial start")

// checkTrialWindow validates the trial dates the row will hold after updates,
// so a request carrying only one side is checked against the stored other side.
func checkTrialWindow(current *models.Partner, updates map[string]any) error {
	start, end := current.TrialStartDate, current.TrialEndDate
	if v, ok := updates["trial_start_date"]; ok {
		start, _ = v.(*time.Time)
	}
	if v, ok := updates["trial_end_date"]; ok {
		end, _ = v.(*time.Time)
	}
	if start != nil && end != nil && end.Before(*start) {
		return errTrialWindow
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps or bare dates; an empty string clears the column.
func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date").
			WithDetails(map[string]string{field: "must be YYYY-MM-DD or RFC3339"})
	}
	return &t, nil
}
