package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/arthsaathi/finlit-engine/internal/core/ports"
)

// ScoreHandler serves the trust score endpoints.
type ScoreHandler struct {
	service ports.TrustService
}

func NewScoreHandler(service ports.TrustService) *ScoreHandler {
	return &ScoreHandler{service: service}
}

// Get handles GET /score/:userId.
//
// @Summary      Get a user's trust score with metrics and factors
// @Tags         score
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  Envelope{data=trustProfileResponse}
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Router       /score/{userId} [get]
func (h *ScoreHandler) Get(c echo.Context) error {
	profile, err := h.service.GetTrustProfile(c.Request().Context(), pathUserID(c))
	if err != nil {
		return err
	}
	return respondOK(c, toTrustProfileResponse(profile), profile.Fallback)
}

// Put handles PUT /score/:userId.
//
// @Summary      Override a user's trust score
// @Tags         score
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string           true  "User id"
// @Param        body    body      setScoreRequest  true  "New score"
// @Success      200     {object}  Envelope{data=trustScoreResponse}
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Failure      500     {object}  Envelope
// @Router       /score/{userId} [put]
func (h *ScoreHandler) Put(c echo.Context) error {
	var req setScoreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.SetTrustScore(c.Request().Context(), pathUserID(c), *req.Score, req.Reason)
	if err != nil {
		return err
	}
	return respondOK(c, toTrustScoreResponse(res), false)
}

// Recalculate handles POST /score/:userId/recalculate.
//
// @Summary      Recompute a user's trust score from their query history
// @Tags         score
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  Envelope{data=trustScoreResponse}
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Router       /score/{userId}/recalculate [post]
func (h *ScoreHandler) Recalculate(c echo.Context) error {
	res, err := h.service.CalculateTrustScore(c.Request().Context(), pathUserID(c))
	if err != nil {
		return err
	}
	return respondOK(c, toTrustScoreResponse(res), res.Fallback)
}
