package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/config"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/mailer"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/repository"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/service"
)

// InquiryHandler handles inquiry-related HTTP requests
type InquiryHandler struct {
	dispatcher *service.Dispatcher
	repo       *repository.InquiryRepository
	contact    config.ContactConfig
}

// NewInquiryHandler creates a new inquiry handler. repo may be nil when
// the inquiry log is not configured.
func NewInquiryHandler(dispatcher *service.Dispatcher, repo *repository.InquiryRepository, contact config.ContactConfig) *InquiryHandler {
	return &InquiryHandler{
		dispatcher: dispatcher,
		repo:       repo,
		contact:    contact,
	}
}

// SendEmail handles POST /api/v1/inquiries/email. Missing required fields
// fail with 400 before the provider is contacted; provider failures
// surface as 502 carrying the provider's detail message.
func (h *InquiryHandler) SendEmail(c *gin.Context) {
	var req model.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.dispatcher.SendEmail(c.Request.Context(), req)
	if err != nil {
		var validationErr *service.ValidationError
		var providerErr *mailer.ProviderError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		case errors.Is(err, service.ErrSendInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &providerErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Email delivery failed", "detail": providerErr.Detail})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Link handles GET /api/v1/inquiries/link. It composes the outbound deep
// link for the chosen channel from the configured company contact and the
// caller's payload; nothing is dispatched server-side.
func (h *InquiryHandler) Link(c *gin.Context) {
	payload := model.InquiryPayload{
		Name:          c.Query("name"),
		Phone:         c.Query("phone"),
		Email:         c.Query("email"),
		Message:       c.Query("message"),
		PropertyTitle: c.Query("propertyTitle"),
		PropertySlug:  c.Query("propertySlug"),
	}

	channel := c.Query("channel")
	var (
		link string
		err  error
	)
	switch channel {
	case service.ChannelWhatsApp:
		link, err = h.dispatcher.WhatsAppLink(h.contact.WhatsApp, payload)
	case service.ChannelCall:
		link, err = h.dispatcher.TelLink(h.contact.Phone)
	case service.ChannelMailto:
		link, err = h.dispatcher.MailtoLink(h.contact.Email, payload)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel. Must be one of: whatsapp, call, mailto"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.LinkResult{Channel: channel, URL: link})
}

// Recent handles GET /api/v1/inquiries/recent
func (h *InquiryHandler) Recent(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inquiry log is not configured"})
		return
	}

	limit := queryInt(c, "limit", 50)
	records, err := h.repo.RecentInquiries(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries: " + err.Error()})
		return
	}
	if records == nil {
		records = []model.InquiryLog{}
	}

	c.JSON(http.StatusOK, gin.H{"results": records, "total": len(records)})
}

// queryInt reads an integer query parameter, falling back on invalid input.
func queryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
