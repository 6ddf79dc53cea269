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

type MaterialHandler struct {
	materialService service.MaterialService
}

func NewMaterialHandler(materialService service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

func (h *MaterialHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Everyone reads the catalog; only the master changes it.
	router.GET("/api/materials", middleware.RequireRole(anyRole...), h.ListMaterials)

	materials := router.Group("/api/materials", middleware.RequireRole(model.RoleMaster))
	{
		materials.POST("", h.CreateMaterial)
		materials.PUT("/:id", h.UpdateMaterial)
		materials.DELETE("/:id", h.DeleteMaterial)
	}
}

// ListMaterials handles GET /api/materials
// @Summary      List materials
// @Description  Retrieves the material catalog ordered by name
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Material}
// @Failure      500  {object}  response.Response
// @Router       /api/materials [get]
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	materials, err := h.materialService.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, materials))
}

// CreateMaterial handles POST /api/materials
// @Summary      Create material
// @Description  Adds a catalog entry with its type and info classification
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.MaterialInput  true  "Material Payload"
// @Success      201      {object}  response.Response{data=model.Material}
// @Failure      400      {object}  response.Response
// @Router       /api/materials [post]
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.MaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	material, err := h.materialService.Create(c.Request.Context(), actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, material))
}

// UpdateMaterial handles PUT /api/materials/:id
// @Summary      Update material
// @Description  Updates a catalog entry by ID
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Material ID"
// @Param        payload  body      service.MaterialInput  true  "Material Payload"
// @Success      200      {object}  response.Response{data=model.Material}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid material ID"))
		return
	}

	var input service.MaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	material, err := h.materialService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, material))
}

// DeleteMaterial handles DELETE /api/materials/:id
// @Summary      Delete material
// @Description  Soft deletes a catalog entry by ID
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Material ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid material ID"))
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Material deleted successfully"))
}
