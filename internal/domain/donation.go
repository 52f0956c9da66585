package domain

import "time"

// Status is the lifecycle stage of a donation record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every valid lifecycle stage.
var Statuses = []Status{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the four lifecycle stages.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// HelpOption is one of the ways a donor offers to help.
type HelpOption string

const (
	HelpDonateDevice        HelpOption = "donate_device"
	HelpSponsor             HelpOption = "sponsor"
	HelpParticipateEvents   HelpOption = "participate_events"
	HelpCreateProject       HelpOption = "create_project"
	HelpParticipateTraining HelpOption = "participate_training"
)

func (h HelpOption) Valid() bool {
	switch h {
	case HelpDonateDevice, HelpSponsor, HelpParticipateEvents, HelpCreateProject, HelpParticipateTraining:
		return true
	}
	return false
}

// DeviceType classifies the pledged device. The empty value means "not stated".
type DeviceType string

const (
	DeviceLaptop     DeviceType = "laptop"
	DeviceDesktop    DeviceType = "desktop"
	DeviceTablet     DeviceType = "tablet"
	DeviceSmartphone DeviceType = "smartphone"
	DeviceMonitor    DeviceType = "monitor"
	DevicePrinter    DeviceType = "printer"
	DeviceOther      DeviceType = "other"
)

func (d DeviceType) Valid() bool {
	switch d {
	case DeviceLaptop, DeviceDesktop, DeviceTablet, DeviceSmartphone, DeviceMonitor, DevicePrinter, DeviceOther, "":
		return true
	}
	return false
}

// DeviceCondition describes the working state of the pledged device.
type DeviceCondition string

const (
	ConditionWorking          DeviceCondition = "working"
	ConditionPartiallyWorking DeviceCondition = "partially_working"
	ConditionBroken           DeviceCondition = "broken"
	ConditionUnknown          DeviceCondition = "unknown"
)

func (c DeviceCondition) Valid() bool {
	switch c {
	case ConditionWorking, ConditionPartiallyWorking, ConditionBroken, ConditionUnknown, "":
		return true
	}
	return false
}

// EstimatedValue is the donor's rough valuation bracket.
type EstimatedValue string

func (v EstimatedValue) Valid() bool {
	switch v {
	case "0-500", "500-1000", "1000-2000", "2000+", "":
		return true
	}
	return false
}

// DeviceAge is the age bracket of the device in years.
type DeviceAge string

func (a DeviceAge) Valid() bool {
	switch a {
	case "0-1", "1-3", "3-5", "5+", "":
		return true
	}
	return false
}

// MaxAdminNotesLen caps the free-text triage notes on a record.
const MaxAdminNotesLen = 1000

// Donation is one submitted pledge of a device or other support.
type Donation struct {
	ID              string          `db:"id" json:"id"`
	FullName        string          `db:"full_name" json:"full_name"`
	Phone           string          `db:"phone" json:"phone"`
	Email           string          `db:"email" json:"email"`
	City            string          `db:"city" json:"city"`
	Address         string          `db:"address" json:"address"`
	HelpOptions     []string        `db:"help_options" json:"help_options"`
	DeviceType      DeviceType      `db:"device_type" json:"device_type"`
	DeviceCondition DeviceCondition `db:"device_condition" json:"device_condition"`
	DeviceBrand     string          `db:"device_brand" json:"device_brand"`
	DeviceModel     string          `db:"device_model" json:"device_model"`
	DeviceContent   string          `db:"device_content" json:"device_content"`
	EstimatedValue  EstimatedValue  `db:"estimated_value" json:"estimated_value"`
	DeviceAge       DeviceAge       `db:"device_age" json:"device_age"`
	Message         string          `db:"message" json:"message"`
	PrivacyPolicy   bool            `db:"privacy_policy" json:"privacy_policy"`
	Status          Status          `db:"status" json:"status"`
	AdminNotes      string          `db:"admin_notes" json:"admin_notes"`
	SourceCountry   string          `db:"source_country" json:"source_country,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// StatsSummary is the status-count aggregate over the whole collection.
type StatsSummary struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}
