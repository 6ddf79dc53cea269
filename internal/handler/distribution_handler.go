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

type DistributionHandler struct {
	distributionService service.DistributionService
}

func NewDistributionHandler(distributionService service.DistributionService) *DistributionHandler {
	return &DistributionHandler{distributionService: distributionService}
}

func (h *DistributionHandler) RegisterRoutes(router *gin.RouterGroup) {
	drafts := router.Group("/api/drafts", middleware.RequireRole(model.RoleConsumer))
	{
		drafts.GET("", h.ListDrafts)
		drafts.POST("", h.AddDraft)
		drafts.PUT("/:id", h.UpdateDraft)
		drafts.DELETE("/:id", h.DeleteDraft)
	}

	distributions := router.Group("/api/distribution-requests")
	{
		distributions.POST("", middleware.RequireRole(model.RoleConsumer), h.Submit)
		distributions.GET("/mine", middleware.RequireRole(model.RoleConsumer), h.ListMine)
		distributions.GET("/pending", middleware.RequireRole(model.RoleApprover), h.ListPending)
		distributions.POST("/:id/decisions", middleware.RequireRole(model.RoleApprover), h.DecideItems)
		distributions.GET("/handover", middleware.RequireRole(model.RoleCaseworker), h.ListForHandover)
		distributions.POST("/:id/handover", middleware.RequireRole(model.RoleCaseworker), h.ConfirmHandover)
		distributions.GET("/collected", middleware.RequireRole(model.RoleCaseworker), h.ListCollected)
	}
}

// ListDrafts handles GET /api/drafts
// @Summary      List drafts
// @Description  The consumer's unsubmitted draft items
// @Tags         distributions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.DraftItem}
// @Failure      500  {object}  response.Response
// @Router       /api/drafts [get]
func (h *DistributionHandler) ListDrafts(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	drafts, err := h.distributionService.ListDrafts(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, drafts))
}

// AddDraft handles POST /api/drafts
// @Summary      Add draft
// @Description  Adds a draft line after checking availability net of the consumer's other drafts
// @Tags         distributions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.DraftInput  true  "Draft Payload"
// @Success      201      {object}  response.Response{data=model.DraftItem}
// @Failure      400      {object}  response.Response
// @Router       /api/drafts [post]
func (h *DistributionHandler) AddDraft(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.DraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	draft, err := h.distributionService.AddDraft(c.Request.Context(), actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, draft))
}

// UpdateDraft handles PUT /api/drafts/:id
// @Summary      Update draft
// @Description  Replaces a draft line, re-checking availability
// @Tags         distributions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "Draft ID"
// @Param        payload  body      service.DraftInput  true  "Draft Payload"
// @Success      200      {object}  response.Response{data=model.DraftItem}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/drafts/{id} [put]
func (h *DistributionHandler) UpdateDraft(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid draft ID"))
		return
	}

	var input service.DraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	draft, err := h.distributionService.UpdateDraft(c.Request.Context(), actor, id, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// DeleteDraft handles DELETE /api/drafts/:id
// @Summary      Delete draft
// @Description  Removes one of the consumer's draft lines
// @Tags         distributions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id} [delete]
func (h *DistributionHandler) DeleteDraft(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid draft ID"))
		return
	}

	if err := h.distributionService.DeleteDraft(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Draft deleted successfully"))
}

// Submit handles POST /api/distribution-requests
// @Summary      Submit distribution request
// @Description  Turns the consumer's drafts into a pending request and clears them atomically
// @Tags         distributions
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  response.Response{data=model.DistributionRequest}
// @Failure      400  {object}  response.Response
// @Router       /api/distribution-requests [post]
func (h *DistributionHandler) Submit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	request, err := h.distributionService.Submit(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, request))
}

// DecideItems handles POST /api/distribution-requests/:id/decisions
// @Summary      Decide distribution items
// @Description  Applies a batch of approve/reject decisions to pending lines and folds the overall status
// @Tags         distributions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Distribution Request ID"
// @Param        payload  body      service.DecideItemsInput  true  "Decisions Payload"
// @Success      200      {object}  response.Response{data=model.DistributionRequest}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/distribution-requests/{id}/decisions [post]
func (h *DistributionHandler) DecideItems(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request ID"))
		return
	}

	var input service.DecideItemsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	request, err := h.distributionService.DecideItems(c.Request.Context(), actor, id, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// ConfirmHandover handles POST /api/distribution-requests/:id/handover
// @Summary      Confirm handover
// @Description  Records the physical outcome of one approved line; collected returnable lines bind a serial from available stock
// @Tags         distributions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Distribution Request ID"
// @Param        payload  body      service.HandoverInput  true  "Handover Payload"
// @Success      200      {object}  response.Response{data=model.DistributionRequest}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/distribution-requests/{id}/handover [post]
func (h *DistributionHandler) ConfirmHandover(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request ID"))
		return
	}

	var input service.HandoverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	request, err := h.distributionService.ConfirmHandover(c.Request.Context(), actor, id, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// ListPending handles GET /api/distribution-requests/pending
// @Summary      List pending distribution requests
// @Description  Requests still holding undecided lines, for the approver's queue
// @Tags         distributions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.DistributionRequest}
// @Failure      500  {object}  response.Response
// @Router       /api/distribution-requests/pending [get]
func (h *DistributionHandler) ListPending(c *gin.Context) {
	requests, err := h.distributionService.ListPending(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// ListForHandover handles GET /api/distribution-requests/handover
// @Summary      List requests awaiting handover
// @Description  Requests holding approved lines not yet collected or refused
// @Tags         distributions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.DistributionRequest}
// @Failure      500  {object}  response.Response
// @Router       /api/distribution-requests/handover [get]
func (h *DistributionHandler) ListForHandover(c *gin.Context) {
	requests, err := h.distributionService.ListForHandover(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// ListCollected handles GET /api/distribution-requests/collected
// @Summary      Collected items report
// @Description  Every collected line across all consumers, with consumer, handover date and messenger
// @Tags         distributions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.CollectedItemRow}
// @Failure      500  {object}  response.Response
// @Router       /api/distribution-requests/collected [get]
func (h *DistributionHandler) ListCollected(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	rows, err := h.distributionService.ListCollected(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// ListMine handles GET /api/distribution-requests/mine
// @Summary      List own distribution requests
// @Description  Every distribution request submitted by the current consumer
// @Tags         distributions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.DistributionRequest}
// @Failure      500  {object}  response.Response
// @Router       /api/distribution-requests/mine [get]
func (h *DistributionHandler) ListMine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	requests, err := h.distributionService.ListMine(c.Request.Context(), actor.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}
