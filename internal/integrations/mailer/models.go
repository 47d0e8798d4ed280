package mailer

import "time"

// RequestCreatedNotification уведомление о создании заявки
type RequestCreatedNotification struct {
	To            string     `json:"to"`
	RequestID     string     `json:"requestId"`
	ServiceTypes  []string   `json:"serviceTypes"`
	AssignedDate  *time.Time `json:"assignedDate,omitempty"`
	PriceEstimate float64    `json:"priceEstimate"`
}

// StatusChangedNotification уведомление о смене статуса заявки
type StatusChangedNotification struct {
	To        string `json:"to"`
	RequestID string `json:"requestId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}
