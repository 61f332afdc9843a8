package http

import (
	"fmt"
	"strings"

	"talkpro/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StartAlgorithm godoc
// @Summary Start algorithm interview
// @Description Picks a random question of the difficulty and opens a session
// @Tags ALGORITHM
// @Accept application/json
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param StartAlgorithm body StartAlgorithmRequest true "StartAlgorithm"
// @Success 200 {object} ResponseBody{data=AlgorithmStartResponse}
// @Failure 400 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/algorithm/start [post]
func (hdl *HTTPHandler) StartAlgorithm(c *fiber.Ctx) error {
	var request StartAlgorithmRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	request.Difficulty = strings.ToLower(strings.TrimSpace(request.Difficulty))
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return badRequest(c, err)
	}

	session, opening, err := hdl.interviews.StartInterview(c.UserContext(), domain.KindAlgorithm, request.Difficulty, userID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: AlgorithmStartResponse{
		SessionID:  session.ID.String(),
		Question:   opening,
		Difficulty: request.Difficulty,
	}})
}

// AnswerAlgorithm godoc
// @Summary Submit algorithm answer
// @Description Runs one exchange; completed is true once the interviewer is satisfied
// @Tags ALGORITHM
// @Accept application/json
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param id path string true "session id"
// @Param AnswerAlgorithm body AnswerRequest true "AnswerAlgorithm"
// @Success 200 {object} ResponseBody{data=AlgorithmAnswerResponse}
// @Failure 403 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Failure 409 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/algorithm/{id}/answer [post]
func (hdl *HTTPHandler) AnswerAlgorithm(c *fiber.Ctx) error {
	result, err := hdl.submit(c, domain.KindAlgorithm)
	if err != nil || result == nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: AlgorithmAnswerResponse{
		Reply:     result.Reply,
		Completed: result.Signal.Completed,
	}})
}

// EndAlgorithm godoc
// @Summary End algorithm interview
// @Description Evaluates the session; a second call returns the stored report
// @Tags ALGORITHM
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param id path string true "session id"
// @Success 200 {object} ResponseBody
// @Failure 403 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/algorithm/{id}/end [post]
func (hdl *HTTPHandler) EndAlgorithm(c *fiber.Ctx) error {
	return hdl.end(c, domain.KindAlgorithm)
}

// StartSystemDesign godoc
// @Summary Start system design interview
// @Tags SYSTEM DESIGN
// @Accept application/json
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param StartSystemDesign body StartSystemDesignRequest true "StartSystemDesign"
// @Success 200 {object} ResponseBody{data=SystemDesignStartResponse}
// @Failure 400 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/system-design/start [post]
func (hdl *HTTPHandler) StartSystemDesign(c *fiber.Ctx) error {
	var request StartSystemDesignRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return badRequest(c, err)
	}

	session, opening, err := hdl.interviews.StartInterview(c.UserContext(), domain.KindSystemDesign, request.ScenarioID, userID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	scenario, err := hdl.catalog.GetScenario(session.SeedID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SystemDesignStartResponse{
		SessionID: session.ID.String(),
		Scenario: ScenarioResponse{
			ID:           scenario.ID,
			Title:        scenario.Title,
			Description:  scenario.Description,
			Requirements: scenario.Requirements,
			Constraints:  scenario.Constraints,
		},
		Requirements: scenario.Requirements,
		Opening:      opening,
	}})
}

// DiscussSystemDesign godoc
// @Summary Submit system design discussion
// @Description Runs one exchange and reports the detected discussion stage
// @Tags SYSTEM DESIGN
// @Accept application/json
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param id path string true "session id"
// @Param DiscussSystemDesign body AnswerRequest true "DiscussSystemDesign"
// @Success 200 {object} ResponseBody{data=SystemDesignDiscussResponse}
// @Failure 403 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/system-design/{id}/discuss [post]
func (hdl *HTTPHandler) DiscussSystemDesign(c *fiber.Ctx) error {
	result, err := hdl.submit(c, domain.KindSystemDesign)
	if err != nil || result == nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SystemDesignDiscussResponse{
		Reply: result.Reply,
		Stage: string(result.Signal.Stage),
	}})
}

// EndSystemDesign godoc
// @Summary End system design interview
// @Tags SYSTEM DESIGN
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param id path string true "session id"
// @Success 200 {object} ResponseBody
// @Router /v1/api/system-design/{id}/end [post]
func (hdl *HTTPHandler) EndSystemDesign(c *fiber.Ctx) error {
	return hdl.end(c, domain.KindSystemDesign)
}

// StartWorkplace godoc
// @Summary Start workplace role-play
// @Description The persona writes the opening question
// @Tags WORKPLACE
// @Accept application/json
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param StartWorkplace body StartWorkplaceRequest true "StartWorkplace"
// @Success 200 {object} ResponseBody{data=WorkplaceStartResponse}
// @Failure 404 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/workplace/start [post]
func (hdl *HTTPHandler) StartWorkplace(c *fiber.Ctx) error {
	var request StartWorkplaceRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return badRequest(c, err)
	}

	session, opening, err := hdl.interviews.StartInterview(c.UserContext(), domain.KindWorkplace, request.Scenario, userID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	persona, err := hdl.catalog.GetPersona(session.SeedID)
	if err != nil {
		return errorResponse(c, err)
	}
	dimensions := persona.Dimensions
	if len(dimensions) == 0 {
		dimensions = domain.WorkplaceDimensions
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: WorkplaceStartResponse{
		SessionID:    session.ID.String(),
		Scenario:     persona.ID,
		ScenarioName: persona.Name,
		Role:         persona.Role,
		Description:  persona.Description,
		Question:     opening,
		Dimensions:   dimensions,
	}})
}

// EndWorkplace godoc
// @Summary End workplace role-play
// @Description Evaluates the session; returns the stored report when already evaluated
// @Tags WORKPLACE
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param id path string true "session id"
// @Success 200 {object} ResponseBody
// @Router /v1/api/workplace/{id}/end [post]
func (hdl *HTTPHandler) EndWorkplace(c *fiber.Ctx) error {
	return hdl.end(c, domain.KindWorkplace)
}

// GetSession godoc
// @Summary Get live session
// @Description Status and transcript of a session still held in memory
// @Tags SESSION
// @Produce json
// @Param X-User-ID header string true "caller identity"
// @Param id path string true "session id"
// @Success 200 {object} ResponseBody{data=SessionResponse}
// @Failure 403 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/sessions/{id} [get]
func (hdl *HTTPHandler) GetSession(c *fiber.Ctx) error {
	session, err := hdl.interviews.GetSession(c.UserContext(), c.Params("id"), userID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: newSessionResponse(session)})
}

// submit parses an answer and runs one exchange. A nil result means the response was already written.
func (hdl *HTTPHandler) submit(c *fiber.Ctx, kind domain.InterviewKind) (*domain.AdvanceResult, error) {
	var request AnswerRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return nil, c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return nil, badRequest(c, err)
	}
	if err := hdl.checkKind(c, kind); err != nil {
		return nil, errorResponse(c, err)
	}

	answer := domain.Answer{Text: request.Content}
	if kind == domain.KindAlgorithm {
		answer.Code = request.Code
	}
	result, err := hdl.interviews.SubmitAnswer(c.UserContext(), c.Params("id"), userID(c), answer, nil)
	if err != nil {
		return nil, errorResponse(c, err)
	}
	return result, nil
}

func (hdl *HTTPHandler) end(c *fiber.Ctx, kind domain.InterviewKind) error {
	if err := hdl.checkKind(c, kind); err != nil {
		return errorResponse(c, err)
	}
	report, err := hdl.interviews.EndInterview(c.UserContext(), c.Params("id"), userID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: report})
}

// checkKind rejects sessions addressed through another interview kind's route
func (hdl *HTTPHandler) checkKind(c *fiber.Ctx, kind domain.InterviewKind) error {
	session, err := hdl.interviews.GetSession(c.UserContext(), c.Params("id"), userID(c))
	if err != nil {
		return err
	}
	if session.Kind != kind {
		return fmt.Errorf("%w: session %s is not a %s interview", domain.ErrNotFound, session.ID, kind)
	}
	return nil
}
