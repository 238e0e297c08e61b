package models

import "time"

// Equipment is descriptive metadata about an installed appliance. It carries
// no computed behavior; the billing engine never reads it.
type Equipment struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	Model                  string     `gorm:"size:100;not null" json:"model"`
	Brand                  string     `gorm:"size:100" json:"brand"`
	Type                   string     `gorm:"size:50" json:"type"`
	EfficiencyClass        string     `gorm:"size:20" json:"efficiency_class"`
	MaintenanceState       string     `gorm:"size:50" json:"maintenance_state"`
	AvgDailyConsumption    int64      `json:"avg_daily_consumption"`
	NominalCapacity        int64      `json:"nominal_capacity"`
	EstimatedLifetimeYears int64      `json:"estimated_lifetime_years"`
	InstallDate            *time.Time `json:"install_date"`
	UsageFrequency         string     `gorm:"size:50" json:"usage_frequency"`
	CriticalSystem         bool       `json:"critical_system"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}
