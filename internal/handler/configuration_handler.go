package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/service"
)

// ConfigurationHandler serves the scoped configuration CRUD endpoints.
type ConfigurationHandler struct {
	configService service.ConfigurationService
}

// NewConfigurationHandler creates a new ConfigurationHandler.
func NewConfigurationHandler(configService service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{configService: configService}
}

// Create handles POST /api/v1/configurations. Admin only.
func (h *ConfigurationHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.ConfigurationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	cfg, err := h.configService.Create(c.Request.Context(), input, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, cfg)
}

// Update handles PUT /api/v1/configurations/:id. Admin only.
func (h *ConfigurationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid configuration id")
		return
	}

	var input service.ConfigurationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	cfg, err := h.configService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cfg)
}

// Get handles GET /api/v1/configurations/:id.
func (h *ConfigurationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid configuration id")
		return
	}

	cfg, err := h.configService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cfg)
}

// List handles GET /api/v1/configurations?kind=mapping&offset=0&limit=20.
func (h *ConfigurationHandler) List(c *gin.Context) {
	kind := domain.ConfigKind(c.DefaultQuery("kind", string(domain.ConfigKindMapping)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	cfgs, total, err := h.configService.List(c.Request.Context(), kind, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, cfgs, PagMeta{Total: total, Offset: offset, Limit: limit})
}
