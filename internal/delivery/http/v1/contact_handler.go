package v1

import (
	"errors"
	"net/http"

	"portfolio-site/internal/delivery/http/audit"
	"portfolio-site/internal/delivery/http/middleware"
	"portfolio-site/internal/delivery/http/response"
	"portfolio-site/internal/domain"
	"portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, submitLimit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	contact := public.Group("/contact")
	{
		contact.POST("", submitLimit, handler.SubmitContact)
		contact.GET("/status", handler.Status)
		contact.PATCH("/fields/:field", handler.UpdateField)
	}
}

// FieldUpdate is the body of a single-field edit.
type FieldUpdate struct {
	Value string `json:"value"`
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validate the four contact fields and relay them as an email. Accepts JSON or form encoding.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response{data=domain.ContactSnapshot}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response{data=domain.ContactSnapshot,error=domain.FieldErrors}
// @Failure      429      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	snap, err := h.contactUC.SubmitRequest(c.Request.Context(), middleware.VisitorID(c), &req)
	audit.ContactOutcome(c, req.Email, err)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			response.ErrorWithData(c, http.StatusUnprocessableEntity, "Please correct the highlighted fields", verr.Fields, snap)
			return
		}
		c.Error(contactError(err, snap))
		return
	}

	response.Success(c, http.StatusOK, "Your message has been sent successfully!", snap)
}

// Status godoc
// @Summary      Contact Form Status
// @Description  Current values, field errors and submission status of the caller's contact form.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ContactSnapshot}
// @Router       /contact/status [get]
func (h *ContactHandler) Status(c *gin.Context) {
	response.Success(c, http.StatusOK, "OK", h.contactUC.Snapshot(c.Request.Context(), middleware.VisitorID(c)))
}

// UpdateField godoc
// @Summary      Update Contact Field
// @Description  Set one field of the caller's contact form and clear that field's error.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        field  path      string       true  "name, email, subject or message"
// @Param        body   body      FieldUpdate  true  "New value"
// @Success      200    {object}  response.Response{data=domain.ContactSnapshot}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /contact/fields/{field} [patch]
func (h *ContactHandler) UpdateField(c *gin.Context) {
	var body FieldUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	ctx := c.Request.Context()
	visitor := middleware.VisitorID(c)
	if err := h.contactUC.UpdateField(ctx, visitor, domain.ContactField(c.Param("field")), body.Value); err != nil {
		if errors.Is(err, domain.ErrUnknownField) {
			c.Error(apperror.BadRequest("Unknown contact field"))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, "OK", h.contactUC.Snapshot(ctx, visitor))
}

// contactError maps a submit failure onto the HTTP error the client sees.
// Relay failures share one message; the cause only goes to the logs.
func contactError(err error, snap domain.ContactSnapshot) *apperror.AppError {
	switch {
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return apperror.Conflict("A message is already being sent", err).
			WithDetails(map[string]domain.SubmissionStatus{"status": snap.Status})
	case errors.Is(err, domain.ErrRelayNotConfigured):
		return apperror.ServiceUnavailable("Contact service temporarily unavailable", err)
	default:
		return apperror.BadGateway("Failed to send message. Please try again later.", err)
	}
}
