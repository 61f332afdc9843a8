package http

import (
	"errors"
	"strings"

	"talkpro/internal/domain"
	"talkpro/internal/ports/input"
	"talkpro/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HeaderUserID carries the opaque caller identity
const HeaderUserID = "X-User-ID"

const localsUserID = "userID"

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	interviews input.InterviewService
	history    input.HistoryService
	catalog    input.CatalogService
	channel    input.InterviewChannel
	validator  validator.Validator
}

// New func - Creates new HTTP handler
func New(interviews input.InterviewService, history input.HistoryService, catalog input.CatalogService, channel input.InterviewChannel) *HTTPHandler {
	return &HTTPHandler{
		interviews: interviews,
		history:    history,
		catalog:    catalog,
		channel:    channel,
		validator:  validator.New(),
	}
}

// HealthCheck func
// HealthCheck godoc
// @Summary Health check
// @Description Liveness, pings the history database when one is configured
// @Tags HEALTH
// @Success 200 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /health [get]
// @Produce json
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if err := hdl.history.Healthy(c.UserContext()); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// RequireUser func - Middleware reading the caller identity from the header,
// or from the user_id query parameter for browser WebSocket clients
func (hdl *HTTPHandler) RequireUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Get(HeaderUserID))
	if userID == "" {
		userID = strings.TrimSpace(c.Query("user_id"))
	}
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(ResponseBody{Status: Unauthorized})
	}
	c.Locals(localsUserID, userID)
	return c.Next()
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsUserID).(string)
	return id
}

// errorResponse maps domain errors onto the response presets
func errorResponse(c *fiber.Ctx, err error) error {
	status := InternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = NotFound
	case errors.Is(err, domain.ErrForbidden):
		status = Forbidden
	case errors.Is(err, domain.ErrInvalidState):
		status = ConFlict
	case errors.Is(err, domain.ErrGateway):
		status = BadGateway
	case errors.Is(err, domain.ErrInvalidRequest):
		status = BadRequest
	case errors.Is(err, domain.ErrHistoryDisabled):
		status = ServiceUnavailable
	}
	if status.Code >= fiber.StatusInternalServerError {
		logrus.Errorln(err)
	}

	msg := ResponseBody{Status: status}
	msg.Status.Message = []string{err.Error()}
	return c.Status(status.Code).JSON(msg)
}

// badRequest answers 400 with the validation message
func badRequest(c *fiber.Ctx, err error) error {
	msg := ResponseBody{
		Status: BadRequest,
	}
	msg.Status.Message = []string{
		err.Error(),
	}
	return c.Status(fiber.StatusBadRequest).JSON(msg)
}
