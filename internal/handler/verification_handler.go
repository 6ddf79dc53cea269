package handler

import (
	"net/http"

	"material-store/internal/middleware"
	"material-store/internal/model"
	"material-store/internal/service"
	"material-store/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VerificationHandler struct {
	verificationService service.VerificationService
}

func NewVerificationHandler(verificationService service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

func (h *VerificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	verifications := router.Group("/api/verification-requests")
	{
		verifications.GET("/collected-units", middleware.RequireRole(model.RoleCaseworker), h.ListCollectedUnits)
		verifications.POST("", middleware.RequireRole(model.RoleCaseworker), h.Propose)
		verifications.GET("/pending", middleware.RequireRole(model.RoleApprover), h.ListPending)
		verifications.POST("/:id/resolve", middleware.RequireRole(model.RoleApprover), h.Resolve)
		verifications.GET("/history", middleware.RequireRole(model.RoleCaseworker, model.RoleApprover, model.RoleMaster), h.ListHistory)
	}
}

// ListCollectedUnits handles GET /api/verification-requests/collected-units
// @Summary      List collected units
// @Description  Every returnable unit currently out with a consumer, for the verification screen
// @Tags         verifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.CollectedUnit}
// @Failure      500  {object}  response.Response
// @Router       /api/verification-requests/collected-units [get]
func (h *VerificationHandler) ListCollectedUnits(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	units, err := h.verificationService.ListCollectedUnits(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, units))
}

// Propose handles POST /api/verification-requests
// @Summary      Propose verification
// @Description  Snapshots the selected units with proposed conditions into a pending verification request
// @Tags         verifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ProposeVerificationInput  true  "Proposal Payload"
// @Success      201      {object}  response.Response{data=model.VerificationRequest}
// @Failure      400      {object}  response.Response
// @Router       /api/verification-requests [post]
func (h *VerificationHandler) Propose(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.ProposeVerificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	request, err := h.verificationService.Propose(c.Request.Context(), actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, request))
}

// Resolve handles POST /api/verification-requests/:id/resolve
// @Summary      Resolve verification
// @Description  Approves the conditions on record, or confirms the proposed changes and writes them back to the distribution items
// @Tags         verifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Verification Request ID"
// @Param        payload  body      service.ResolveVerificationInput  true  "Resolution Payload"
// @Success      200      {object}  response.Response{data=model.VerificationRequest}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/verification-requests/{id}/resolve [post]
func (h *VerificationHandler) Resolve(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request ID"))
		return
	}

	var input service.ResolveVerificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	request, err := h.verificationService.Resolve(c.Request.Context(), actor, id, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// ListPending handles GET /api/verification-requests/pending
// @Summary      List pending verifications
// @Description  Verification requests awaiting approver sign-off
// @Tags         verifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.VerificationRequest}
// @Failure      500  {object}  response.Response
// @Router       /api/verification-requests/pending [get]
func (h *VerificationHandler) ListPending(c *gin.Context) {
	requests, err := h.verificationService.ListPending(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// ListHistory handles GET /api/verification-requests/history
// @Summary      List verification history
// @Description  Every resolved verification request, newest first
// @Tags         verifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.VerificationRequest}
// @Failure      500  {object}  response.Response
// @Router       /api/verification-requests/history [get]
func (h *VerificationHandler) ListHistory(c *gin.Context) {
	requests, err := h.verificationService.ListHistory(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}
