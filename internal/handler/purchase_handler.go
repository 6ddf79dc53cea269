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

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

func (h *PurchaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	purchases := router.Group("/api/purchase-requests")
	{
		purchases.POST("", middleware.RequireRole(model.RoleCaseworker), h.Submit)
		purchases.GET("/mine", middleware.RequireRole(model.RoleCaseworker), h.ListMine)
		purchases.GET("/rejected", middleware.RequireRole(model.RoleCaseworker), h.ListRejectedCases)
		purchases.GET("/pending", middleware.RequireRole(model.RoleApprover), h.ListPending)
		purchases.POST("/:id/decisions", middleware.RequireRole(model.RoleApprover), h.DecideItems)
	}
}

// Submit handles POST /api/purchase-requests
// @Summary      Submit purchase request
// @Description  Records a vendor bill as a pending purchase request; returnable lines expand into one item per serialized unit
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitPurchaseInput  true  "Purchase Request Payload"
// @Success      201      {object}  response.Response{data=model.PurchaseRequest}
// @Failure      400      {object}  response.Response
// @Router       /api/purchase-requests [post]
func (h *PurchaseHandler) Submit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.SubmitPurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	request, err := h.purchaseService.Submit(c.Request.Context(), actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, request))
}

// DecideItems handles POST /api/purchase-requests/:id/decisions
// @Summary      Decide purchase items
// @Description  Applies a batch of approve/reject decisions to pending lines and folds the overall status
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Purchase Request ID"
// @Param        payload  body      service.DecideItemsInput  true  "Decisions Payload"
// @Success      200      {object}  response.Response{data=model.PurchaseRequest}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/purchase-requests/{id}/decisions [post]
func (h *PurchaseHandler) DecideItems(c *gin.Context) {
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

	request, err := h.purchaseService.DecideItems(c.Request.Context(), actor, id, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// ListPending handles GET /api/purchase-requests/pending
// @Summary      List pending purchase requests
// @Description  Requests still holding undecided lines, for the approver's queue
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.PurchaseRequest}
// @Failure      500  {object}  response.Response
// @Router       /api/purchase-requests/pending [get]
func (h *PurchaseHandler) ListPending(c *gin.Context) {
	requests, err := h.purchaseService.ListPending(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// ListMine handles GET /api/purchase-requests/mine
// @Summary      List own purchase requests
// @Description  Every purchase request submitted by the current caseworker
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.PurchaseRequest}
// @Failure      500  {object}  response.Response
// @Router       /api/purchase-requests/mine [get]
func (h *PurchaseHandler) ListMine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	requests, err := h.purchaseService.ListMine(c.Request.Context(), actor.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// ListRejectedCases handles GET /api/purchase-requests/rejected
// @Summary      List rejected cases
// @Description  Rejected line items across all requests together with their vendor metadata
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.RejectedCaseRow}
// @Failure      500  {object}  response.Response
// @Router       /api/purchase-requests/rejected [get]
func (h *PurchaseHandler) ListRejectedCases(c *gin.Context) {
	rows, err := h.purchaseService.ListRejectedCases(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
