package handler

import (
	"net/http"

	"material-store/internal/middleware"
	"material-store/internal/model"
	"material-store/internal/service"
	"material-store/pkg/pagination"
	"material-store/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/audit-logs", middleware.RequireRole(model.RoleMaster), h.GetAuditLogs)
}

// GetAuditLogs handles GET /api/audit-logs
// @Summary      Get audit logs
// @Description  Retrieves the paginated audit trail, newest first
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	params := pagination.Parse(c)
	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), actor, params.Page, params.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}
