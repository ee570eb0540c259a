// Package lifecycle derives display state for a single asset: age, lifespan
// consumption, warranty/maintenance status and risk classification.
package lifecycle

import (
	"math"
	"time"

	"github.com/xaenox/lifeboard/internal/models"
)

const (
	daysPerYear  = 365.25
	daysPerMonth = 30.44

	dueSoonWindowDays = 30

	riskCriticalThreshold = 75
	riskHighThreshold     = 50
	riskMediumThreshold   = 25
)

// Evaluate computes AssetDisplayData for an asset at the given instant.
// Missing optional fields degrade to safe defaults; it never fails.
func Evaluate(asset models.Asset, now time.Time) models.AssetDisplayData {
	ageDays := now.Sub(asset.PurchaseDate).Hours() / 24

	display := models.AssetDisplayData{
		AgeYears:             int(math.Floor(ageDays / daysPerYear)),
		AgeMonths:            int(math.Floor(math.Mod(ageDays, daysPerYear) / daysPerMonth)),
		LifespanPercentage:   lifespanPercentage(ageDays, asset.ExpectedLifespan),
		WarrantyStatus:       warrantyStatus(asset.WarrantyExpiration, now),
		RiskLevel:            riskLevel(asset.Evaluation),
		TotalMaintenanceCost: totalMaintenanceCost(asset.MaintenanceHistory),
	}

	display.MaintenanceStatus = models.MaintenanceCurrent
	if asset.NextMaintenanceDue != nil {
		days := int(math.Floor(asset.NextMaintenanceDue.Sub(now).Hours() / 24))
		display.DaysUntilMaintenance = &days
		switch {
		case days < 0:
			display.MaintenanceStatus = models.MaintenanceOverdue
		case days <= dueSoonWindowDays:
			display.MaintenanceStatus = models.MaintenanceDueSoon
		}
	}

	display.NeedsAttention = display.RiskLevel == models.RiskHigh ||
		display.RiskLevel == models.RiskCritical ||
		display.MaintenanceStatus == models.MaintenanceOverdue

	return display
}

func lifespanPercentage(ageDays, expectedLifespanYears float64) int {
	if expectedLifespanYears <= 0 {
		return 0
	}
	pct := math.Round(ageDays / (expectedLifespanYears * daysPerYear) * 100)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

func warrantyStatus(expiration *time.Time, now time.Time) models.WarrantyStatus {
	if expiration == nil {
		return models.WarrantyNone
	}
	if expiration.After(now) {
		return models.WarrantyActive
	}
	return models.WarrantyExpired
}

func riskLevel(eval *models.AssetEvaluation) models.RiskLevel {
	if eval == nil {
		return models.RiskLow
	}
	switch {
	case eval.RiskScore >= riskCriticalThreshold:
		return models.RiskCritical
	case eval.RiskScore >= riskHighThreshold:
		return models.RiskHigh
	case eval.RiskScore >= riskMediumThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func totalMaintenanceCost(records []models.MaintenanceRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Cost
	}
	return total
}
