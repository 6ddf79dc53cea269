package handler

import (
	"net/http"

	"material-store/internal/middleware"
	"material-store/internal/model"
	"material-store/internal/service"
	"material-store/pkg/response"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	ledger service.LedgerService
}

func NewStockHandler(ledger service.LedgerService) *StockHandler {
	return &StockHandler{ledger: ledger}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	stock := router.Group("/api/stock")
	{
		// Staff dashboards see the full per-unit projection
		stock.GET("", middleware.RequireRole(model.RoleMaster, model.RoleCaseworker, model.RoleApprover), h.GetStock)
		// Serial picker for the handover screen
		stock.GET("/serials", middleware.RequireRole(model.RoleCaseworker), h.GetAvailableSerials)
		// Consumers see name-level availability net of their own drafts
		stock.GET("/available", middleware.RequireRole(model.RoleConsumer), h.GetAvailable)
	}
}

// GetStock handles GET /api/stock
// @Summary      Get stock
// @Description  Current availability projection, per returnable unit and per non-returnable material
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.StockItem}
// @Failure      500  {object}  response.Response
// @Router       /api/stock [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	stock, err := h.ledger.Stock(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stock))
}

// GetAvailableSerials handles GET /api/stock/serials
// @Summary      Get available serials
// @Description  Free returnable units of one material, for the handover serial picker
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  true  "Material name"
// @Success      200   {object}  response.Response{data=[]service.StockItem}
// @Failure      400   {object}  response.Response
// @Router       /api/stock/serials [get]
func (h *StockHandler) GetAvailableSerials(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Material name is required"))
		return
	}

	units, err := h.ledger.AvailableSerials(c.Request.Context(), name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, units))
}

// GetAvailable handles GET /api/stock/available
// @Summary      Get available stock
// @Description  Name-level availability for the consumer request form, net of the consumer's drafts
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.StockItem}
// @Failure      500  {object}  response.Response
// @Router       /api/stock/available [get]
func (h *StockHandler) GetAvailable(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	stock, err := h.ledger.AvailableForConsumer(c.Request.Context(), actor.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stock))
}
