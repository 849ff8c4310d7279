package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	warehouseapp "github.com/khallark/studio-sub002/internal/application/warehouse"
	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/interfaces/http/dto"
)

// LocationHandler handles location hierarchy API endpoints
type LocationHandler struct {
	BaseHandler
	locationService *warehouseapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *warehouseapp.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// CreateWarehouseRequest creates a warehouse root
type CreateWarehouseRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"max=50"`
}

// CreateChildRequest creates a node under a parent location
type CreateChildRequest struct {
	ParentID string `json:"parent_id" binding:"required,uuid"`
	Name     string `json:"name" binding:"required,max=100"`
}

// CreateWarehouse handles warehouse creation
// @Summary      Create a warehouse
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        request body CreateWarehouseRequest true "Warehouse to create"
// @Success      201 {object} dto.Response
// @Router       /warehouse/locations/warehouses [post]
func (h *LocationHandler) CreateWarehouse(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	w, err := h.locationService.CreateWarehouse(c.Request.Context(), caller, req.Name, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, w)
}

// CreateZone handles zone creation
// @Summary      Create a zone
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        request body CreateChildRequest true "Zone to create"
// @Success      201 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /warehouse/locations/zones [post]
func (h *LocationHandler) CreateZone(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	z, err := h.locationService.CreateZone(c.Request.Context(), caller, uuid.MustParse(req.ParentID), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, z)
}

// CreateRack handles rack creation
// @Summary      Create a rack
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        request body CreateChildRequest true "Rack to create"
// @Success      201 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /warehouse/locations/racks [post]
func (h *LocationHandler) CreateRack(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	r, err := h.locationService.CreateRack(c.Request.Context(), caller, uuid.MustParse(req.ParentID), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// CreateShelf handles shelf creation
// @Summary      Create a shelf
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        request body CreateChildRequest true "Shelf to create"
// @Success      201 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /warehouse/locations/shelves [post]
func (h *LocationHandler) CreateShelf(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	s, err := h.locationService.CreateShelf(c.Request.Context(), caller, uuid.MustParse(req.ParentID), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s)
}

// ListWarehouses returns a page of the tenant's warehouses
// @Summary      List warehouses
// @Tags         locations
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /warehouse/locations/warehouses [get]
func (h *LocationHandler) ListWarehouses(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := shared.DefaultFilter()
	if listReq.Page > 0 {
		filter.Page = listReq.Page
	}
	if listReq.PageSize > 0 {
		filter.PageSize = listReq.PageSize
	}

	warehouses, err := h.locationService.ListWarehouses(c.Request.Context(), caller, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouses)
}

// ListZones returns the zones of a warehouse
// @Summary      List a warehouse's zones
// @Tags         locations
// @Produce      json
// @Param        id path string true "Warehouse ID"
// @Success      200 {object} dto.Response
// @Router       /warehouse/locations/warehouses/{id}/zones [get]
func (h *LocationHandler) ListZones(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	zones, err := h.locationService.ListZones(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, zones)
}

// ListRacks returns the racks of a zone
// @Summary      List a zone's racks
// @Tags         locations
// @Produce      json
// @Param        id path string true "Zone ID"
// @Success      200 {object} dto.Response
// @Router       /warehouse/locations/zones/{id}/racks [get]
func (h *LocationHandler) ListRacks(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zone ID")
		return
	}

	racks, err := h.locationService.ListRacks(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, racks)
}

// ListShelves returns the shelves of a rack
// @Summary      List a rack's shelves
// @Tags         locations
// @Produce      json
// @Param        id path string true "Rack ID"
// @Success      200 {object} dto.Response
// @Router       /warehouse/locations/racks/{id}/shelves [get]
func (h *LocationHandler) ListShelves(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rack ID")
		return
	}

	shelves, err := h.locationService.ListShelves(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shelves)
}

// RegisterRoutes registers location routes
func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	locations := rg.Group("/warehouse/locations")
	{
		locations.POST("/warehouses", h.CreateWarehouse)
		locations.GET("/warehouses", h.ListWarehouses)
		locations.GET("/warehouses/:id/zones", h.ListZones)
		locations.POST("/zones", h.CreateZone)
		locations.GET("/zones/:id/racks", h.ListRacks)
		locations.POST("/racks", h.CreateRack)
		locations.GET("/racks/:id/shelves", h.ListShelves)
		locations.POST("/shelves", h.CreateShelf)
	}
}
