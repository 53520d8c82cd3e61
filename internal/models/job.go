package models

import "github.com/google/uuid"

// LeadJob is a queued lead notification.
type LeadJob struct {
	ID         uuid.UUID        `json:"id"`
	Lead       LeadNotification `json:"lead"`
	RetryCount int              `json:"retry_count"`
}
