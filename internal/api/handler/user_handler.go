package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arthsaathi/finlit-engine/internal/core/ports"
)

// HeaderIdempotencyKey carries the client's retry identity for a submission.
const HeaderIdempotencyKey = "Idempotency-Key"

// UserHandler serves user creation and question history.
type UserHandler struct {
	service ports.QueryService
}

func NewUserHandler(service ports.QueryService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /user/:userId.
//
// @Summary      Get or create a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  Envelope{data=userResponse}
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Failure      500     {object}  Envelope
// @Router       /user/{userId} [post]
func (h *UserHandler) Create(c echo.Context) error {
	user, err := h.service.GetOrCreateUser(c.Request().Context(), pathUserID(c))
	if err != nil {
		return err
	}
	return respondOK(c, toUserResponse(user), false)
}

// RecordQuery handles POST /user/:userId/queries.
//
// @Summary      Record a question with the advice given for it
// @Description  A retry carrying an Idempotency-Key already used within the dedup window is not stored again.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId           path      string              true   "User id"
// @Param        Idempotency-Key  header    string              false  "Client retry identity"
// @Param        body             body      recordQueryRequest  true   "Question and response"
// @Success      201     {object}  Envelope{data=recordQueryResponse}
// @Success      200     {object}  Envelope{data=recordQueryResponse}  "Retried submission"
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Failure      500     {object}  Envelope
// @Router       /user/{userId}/queries [post]
func (h *UserHandler) RecordQuery(c echo.Context) error {
	var req recordQueryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := req.toInput()
	in.IdempotencyKey = c.Request().Header.Get(HeaderIdempotencyKey)

	res, err := h.service.RecordQuery(c.Request().Context(), pathUserID(c), in)
	if err != nil {
		return err
	}

	code := http.StatusCreated
	if res.Duplicate {
		code = http.StatusOK
	}
	return respond(c, code, recordQueryResponse{
		Query:      res.Query,
		TrustScore: res.TrustScore.Score,
		Duplicate:  res.Duplicate,
	}, res.TrustScore.Fallback)
}

// ListQueries handles GET /user/:userId/queries.
//
// @Summary      List a user's recent questions, newest first
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  Envelope{data=queryHistoryResponse}
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Router       /user/{userId}/queries [get]
func (h *UserHandler) ListQueries(c echo.Context) error {
	history, err := h.service.ListQueries(c.Request().Context(), pathUserID(c))
	if err != nil {
		return err
	}
	return respondOK(c, queryHistoryResponse{Queries: history.Queries}, history.Fallback)
}
