package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/arthsaathi/finlit-engine/internal/core/ports"
)

// RoadmapHandler serves the per-user roadmap endpoints.
type RoadmapHandler struct {
	service ports.RoadmapService
}

func NewRoadmapHandler(service ports.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{service: service}
}

// Get handles GET /user/:userId/roadmap.
//
// @Summary      Get a user's roadmap, creating the default one on first access
// @Tags         roadmap
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  Envelope{data=domain.Roadmap}
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Router       /user/{userId}/roadmap [get]
func (h *RoadmapHandler) Get(c echo.Context) error {
	res, err := h.service.GetOrCreateRoadmap(c.Request().Context(), pathUserID(c))
	if err != nil {
		return err
	}
	return respondOK(c, res.Roadmap, res.Fallback)
}

// Save handles POST /user/:userId/roadmap.
//
// @Summary      Replace a user's roadmap
// @Tags         roadmap
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string          true  "User id"
// @Param        body    body      roadmapRequest  true  "Roadmap"
// @Success      200     {object}  Envelope{data=domain.Roadmap}
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Failure      500     {object}  Envelope
// @Router       /user/{userId}/roadmap [post]
func (h *RoadmapHandler) Save(c echo.Context) error {
	var req roadmapRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	saved, err := h.service.SaveRoadmap(c.Request().Context(), pathUserID(c), req.toRoadmap())
	if err != nil {
		return err
	}
	return respondOK(c, saved, false)
}

// Update handles PUT /user/:userId/roadmap.
//
// @Summary      Update selected roadmap fields
// @Description  Only the fields present in the body are replaced.
// @Tags         roadmap
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string          true  "User id"
// @Param        body    body      roadmapRequest  true  "Fields to replace"
// @Success      200     {object}  Envelope{data=domain.Roadmap}
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Failure      500     {object}  Envelope
// @Router       /user/{userId}/roadmap [put]
func (h *RoadmapHandler) Update(c echo.Context) error {
	var req roadmapRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.service.UpdateRoadmap(c.Request().Context(), pathUserID(c), req.toUpdate())
	if err != nil {
		return err
	}
	return respondOK(c, updated, false)
}

// Recommendations handles POST /user/:userId/roadmap/recommendations.
//
// @Summary      Generate recommendations from the user's question history
// @Tags         roadmap
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string                  true   "User id"
// @Param        body    body      recommendationsRequest  false  "Optional context"
// @Success      200     {object}  Envelope{data=recommendationsResponse}
// @Failure      400     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Router       /user/{userId}/roadmap/recommendations [post]
func (h *RoadmapHandler) Recommendations(c echo.Context) error {
	var req recommendationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.GenerateRecommendations(c.Request().Context(), pathUserID(c), req.CurrentSituation, req.Goals)
	if err != nil {
		return err
	}
	return respondOK(c, recommendationsResponse{Recommendations: res.Recommendations}, res.Fallback)
}
