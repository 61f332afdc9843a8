package http

import (
	"strings"

	"talkpro/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// ListQuestions godoc
// @Summary List algorithm questions
// @Tags CATALOG
// @Produce json
// @Param difficulty query string false "easy, medium or hard"
// @Param q query string false "fuzzy title search"
// @Success 200 {object} ResponseBody{data=[]QuestionResponse}
// @Router /v1/api/catalog/questions [get]
func (hdl *HTTPHandler) ListQuestions(c *fiber.Ctx) error {
	var query CatalogQueryRequest
	if err := c.QueryParser(&query); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	query.Difficulty = strings.ToLower(query.Difficulty)
	if err := hdl.validator.ValidateStruct(query); err != nil {
		return badRequest(c, err)
	}

	data := lo.Map(hdl.catalog.ListQuestions(query.Difficulty, query.Q), func(q domain.Question, _ int) QuestionResponse {
		return QuestionResponse{ID: q.ID, Title: q.Title, Difficulty: q.Difficulty}
	})
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: data})
}

// ListScenarios godoc
// @Summary List system design scenarios
// @Tags CATALOG
// @Produce json
// @Param q query string false "fuzzy title search"
// @Success 200 {object} ResponseBody{data=[]ScenarioResponse}
// @Router /v1/api/catalog/scenarios [get]
func (hdl *HTTPHandler) ListScenarios(c *fiber.Ctx) error {
	var query CatalogQueryRequest
	if err := c.QueryParser(&query); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(query); err != nil {
		return badRequest(c, err)
	}

	data := lo.Map(hdl.catalog.ListScenarios(query.Q), func(s domain.Scenario, _ int) ScenarioResponse {
		return ScenarioResponse{ID: s.ID, Title: s.Title, Description: s.Description}
	})
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: data})
}

// ListPersonas godoc
// @Summary List workplace scenarios
// @Tags CATALOG
// @Produce json
// @Success 200 {object} ResponseBody{data=[]PersonaResponse}
// @Router /v1/api/catalog/personas [get]
func (hdl *HTTPHandler) ListPersonas(c *fiber.Ctx) error {
	data := lo.Map(hdl.catalog.ListPersonas(), func(p domain.Persona, _ int) PersonaResponse {
		return PersonaResponse{ID: p.ID, Name: p.Name, Description: p.Description, Role: p.Role}
	})
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: data})
}
