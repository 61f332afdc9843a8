package http

import (
	"talkpro/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const defaultHistoryLimit = 20

// ListHistory godoc
// @Summary List archived sessions
// @Description Archived sessions of the caller, newest first
// @Tags HISTORY
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param type query string false "algorithm, system_design or workplace"
// @Param skip query int false "skip"
// @Param limit query int false "limit"
// @Success 200 {object} ResponseBody{data=[]HistoryItemResponse}
// @Failure 503 {object} ResponseBody
// @Router /v1/api/history [get]
func (hdl *HTTPHandler) ListHistory(c *fiber.Ctx) error {
	var request HistoryQueryRequest
	if err := c.QueryParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return badRequest(c, err)
	}
	if request.Limit == 0 {
		request.Limit = defaultHistoryLimit
	}

	query := domain.HistoryQuery{
		UserID: userID(c),
		Skip:   request.Skip,
		Limit:  request.Limit,
	}
	if request.Type != "" {
		kind, err := domain.ParseInterviewKind(request.Type)
		if err != nil {
			return badRequest(c, err)
		}
		query.Kind = &kind
	}

	page, err := hdl.history.ListHistory(c.UserContext(), query)
	if err != nil {
		return errorResponse(c, err)
	}
	data := lo.Map(page.Records, func(r domain.SessionRecord, _ int) HistoryItemResponse {
		return newHistoryItemResponse(r)
	})
	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status:    Success,
		Data:      data,
		Skip:      &query.Skip,
		Limit:     &query.Limit,
		TotalItem: &page.Total,
	})
}

// GetHistory godoc
// @Summary Get archived session
// @Description Archived session with transcript and score
// @Tags HISTORY
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param id path string true "uuid"
// @Success 200 {object} ResponseBody
// @Failure 403 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/history/{id} [get]
func (hdl *HTTPHandler) GetHistory(c *fiber.Ctx) error {
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	record, err := hdl.history.GetHistory(c.UserContext(), userID(c), uid)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: record})
}

// DeleteHistory godoc
// @Summary Delete archived session
// @Tags HISTORY
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param id path string true "uuid"
// @Success 200 {object} ResponseBody
// @Failure 403 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/history/{id} [delete]
func (hdl *HTTPHandler) DeleteHistory(c *fiber.Ctx) error {
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	if err := hdl.history.DeleteHistory(c.UserContext(), userID(c), uid); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: fiber.Map{"id": uid}})
}
