package model

import "time"

// InquiryPayload is a user-filled contact form. PropertyTitle/PropertySlug
// are set when the inquiry was opened from a specific listing.
type InquiryPayload struct {
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Message       string `json:"message"`
	PropertyTitle string `json:"property_title,omitempty"`
	PropertySlug  string `json:"property_slug,omitempty"`
}

// EmailRequest is the payload accepted by the email-send endpoint and
// forwarded to the mail provider.
type EmailRequest struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	FromEmail string `json:"fromEmail,omitempty"`
	FromName  string `json:"fromName,omitempty"`
}

// CompanyContact is the business contact data inquiries are routed to.
type CompanyContact struct {
	Phone    string `json:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty"`
}

// SendResult is the outcome of a successful email dispatch. ID is the
// provider's delivery identifier.
type SendResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// LinkResult carries a composed outbound deep link (tel:, wa.me, mailto:).
type LinkResult struct {
	Channel string `json:"channel"`
	URL     string `json:"url"`
}

// InquiryLog is a persisted record of a dispatched inquiry.
type InquiryLog struct {
	ID           string    `json:"id" db:"id"`
	Channel      string    `json:"channel" db:"channel"`
	Recipient    string    `json:"recipient" db:"recipient"`
	Subject      string    `json:"subject,omitempty" db:"subject"`
	PropertySlug string    `json:"property_slug,omitempty" db:"property_slug"`
	DeliveryID   string    `json:"delivery_id,omitempty" db:"delivery_id"`
	TookMs       int64     `json:"took_ms" db:"took_ms"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PropertyListResponse is the catalog listing response. Degraded is true
// when the content store could not be reached and the client should render
// its empty state instead of an error page.
type PropertyListResponse struct {
	Results  []Property     `json:"results"`
	Total    int            `json:"total"`
	Criteria FilterCriteria `json:"criteria"`
	Degraded bool           `json:"degraded,omitempty"`
	Took     int64          `json:"took_ms"`
}

// FilterOptionsResponse carries the selection-control options. Each source
// degrades independently; a failed source yields an empty list and an
// entry in Errors.
type FilterOptionsResponse struct {
	Locations  []Option          `json:"locations"`
	Types      []Option          `json:"types"`
	Structures []Option          `json:"structures"`
	Errors     map[string]string `json:"errors,omitempty"`
}
