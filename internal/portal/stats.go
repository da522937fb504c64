package portal

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// PortalStats is the headline block of the partner dashboard.
type PortalStats struct {
	ActiveVenues       int             `json:"active_venues"`
	TrialVenues        int             `json:"trial_venues"`
	TotalVenues        int             `json:"total_venues"`
	ActiveDevices      int             `json:"active_devices"`
	TotalDevices       int             `json:"total_devices"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	TotalDataUsageMB   decimal.Decimal `json:"total_data_usage_mb"`
	NextPayment        decimal.Decimal `json:"next_payment"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	TrialDaysRemaining int             `json:"trial_days_remaining"`
}

// BuildPortalStats aggregates already-loaded records. It performs no I/O.
func BuildPortalStats(partner *models.Partner, venues []models.Venue, devices []models.Device, commissions []models.Commission, payments []models.Payment, now time.Time) PortalStats {
	stats := PortalStats{
		TotalVenues:      len(venues),
		TotalDevices:     len(devices),
		TotalEarnings:    decimal.Zero,
		TotalDataUsageMB: decimal.Zero,
		NextPayment:      decimal.Zero,
		TotalPaid:        decimal.Zero,
	}

	for _, v := range venues {
		switch v.Status {
		case enums.VenueStatusActive:
			stats.ActiveVenues++
		case enums.VenueStatusTrial:
			stats.TrialVenues++
		}
	}

	for _, d := range devices {
		if d.Status == enums.DeviceStatusActive {
			stats.ActiveDevices++
		}
		stats.TotalDataUsageMB = stats.TotalDataUsageMB.Add(d.DataUsageMB)
	}

	for _, c := range commissions {
		stats.TotalEarnings = stats.TotalEarnings.Add(c.Amount)
		if c.Status == enums.CommissionStatusPending {
			stats.NextPayment = stats.NextPayment.Add(c.Amount)
		}
	}

	for _, p := range payments {
		if p.Status == enums.PaymentStatusCompleted {
			stats.TotalPaid = stats.TotalPaid.Add(p.Amount)
		}
	}

	if partner != nil {
		stats.TrialDaysRemaining = TrialDaysRemaining(partner.TrialEndDate, now)
	}
	return stats
}

// TrialDaysRemaining returns whole days left until trialEnd, rounded up and
// never negative. A missing end date yields 0.
func TrialDaysRemaining(trialEnd *time.Time, now time.Time) int {
	if trialEnd == nil {
		return 0
	}
	days := math.Ceil(trialEnd.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}
