package models

import "time"

type WarrantyStatus string

const (
	WarrantyActive  WarrantyStatus = "active"
	WarrantyExpired WarrantyStatus = "expired"
	WarrantyNone    WarrantyStatus = "none"
)

type MaintenanceStatus string

const (
	MaintenanceCurrent MaintenanceStatus = "current"
	MaintenanceDueSoon MaintenanceStatus = "due_soon"
	MaintenanceOverdue MaintenanceStatus = "overdue"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Asset is a user-owned physical asset as stored by the backend. The engine
// never mutates it; derived state lives in AssetDisplayData.
type Asset struct {
	UserID             string              `json:"user_id"`
	AssetID            string              `json:"asset_id"`
	AssetType          string              `json:"asset_type"`
	Category           string              `json:"category"`
	PurchaseDate       time.Time           `json:"purchase_date"`
	PurchasePrice      float64             `json:"purchase_price"`
	Manufacturer       string              `json:"manufacturer,omitempty"`
	Model              string              `json:"model,omitempty"`
	SerialNumber       string              `json:"serial_number,omitempty"`
	ExpectedLifespan   float64             `json:"expected_lifespan"` // years
	WarrantyExpiration *time.Time          `json:"warranty_expiration,omitempty"`
	NextMaintenanceDue *time.Time          `json:"next_maintenance_due,omitempty"`
	MaintenanceHistory []MaintenanceRecord `json:"maintenance_history,omitempty"`
	Evaluation         *AssetEvaluation    `json:"llm_evaluation,omitempty"`
}

type MaintenanceRecord struct {
	Date     time.Time `json:"date"`
	Type     string    `json:"type"`
	Cost     float64   `json:"cost"`
	Provider string    `json:"provider,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// AssetEvaluation is supplied by the external scoring service.
type AssetEvaluation struct {
	RiskScore           float64              `json:"risk_score"` // 0-100
	ConditionAssessment string               `json:"condition_assessment,omitempty"`
	Recommendations     []string             `json:"recommendations,omitempty"`
	ReplacementPlanning *ReplacementPlanning `json:"replacement_planning,omitempty"`
}

type ReplacementPlanning struct {
	RecommendReplacement bool    `json:"recommend_replacement"`
	EstimatedCost        float64 `json:"estimated_cost,omitempty"`
	Timeline             string  `json:"timeline,omitempty"`
}

// AssetDisplayData is recomputed on every read and never persisted.
type AssetDisplayData struct {
	AgeYears             int               `json:"age_years"`
	AgeMonths            int               `json:"age_months"`
	LifespanPercentage   int               `json:"lifespan_percentage"`
	WarrantyStatus       WarrantyStatus    `json:"warranty_status"`
	MaintenanceStatus    MaintenanceStatus `json:"maintenance_status"`
	DaysUntilMaintenance *int              `json:"days_until_maintenance,omitempty"`
	RiskLevel            RiskLevel         `json:"risk_level"`
	NeedsAttention       bool              `json:"needs_attention"`
	TotalMaintenanceCost float64           `json:"total_maintenance_cost"`
}

// AssetsSummary comes back alongside the asset list from the backend.
type AssetsSummary struct {
	TotalAssets                  int     `json:"total_assets"`
	HighRiskCount                int     `json:"high_risk_count"`
	DueForMaintenance            int     `json:"due_for_maintenance"`
	TotalReplacementCostEstimate float64 `json:"total_replacement_cost_estimate"`
}
