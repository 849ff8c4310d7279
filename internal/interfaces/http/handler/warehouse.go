package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	warehouseapp "github.com/khallark/studio-sub002/internal/application/warehouse"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// WarehouseHandler handles stock unit API endpoints
type WarehouseHandler struct {
	BaseHandler
	putAwayService *warehouseapp.PutAwayService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(putAwayService *warehouseapp.PutAwayService) *WarehouseHandler {
	return &WarehouseHandler{putAwayService: putAwayService}
}

// HierarchyPathRequest names a full path through the location tree
type HierarchyPathRequest struct {
	WarehouseID string `json:"warehouse_id" binding:"required,uuid"`
	ZoneID      string `json:"zone_id" binding:"required,uuid"`
	RackID      string `json:"rack_id" binding:"required,uuid"`
	ShelfID     string `json:"shelf_id" binding:"required,uuid"`
}

// toPath converts the request to a domain hierarchy path
func (r HierarchyPathRequest) toPath() warehouse.HierarchyPath {
	return warehouse.HierarchyPath{
		WarehouseID: uuid.MustParse(r.WarehouseID),
		ZoneID:      uuid.MustParse(r.ZoneID),
		RackID:      uuid.MustParse(r.RackID),
		ShelfID:     uuid.MustParse(r.ShelfID),
	}
}

// InwardRequest registers new stock units at a receiving shelf
type InwardRequest struct {
	ProductID string               `json:"product_id" binding:"required,uuid"`
	Quantity  int                  `json:"quantity" binding:"required,gt=0"`
	Path      HierarchyPathRequest `json:"path" binding:"required"`
}

// PutAwayRequest relocates stock units to a shelf
type PutAwayRequest struct {
	UnitIDs []string             `json:"unit_ids" binding:"required,min=1,dive,uuid"`
	Path    HierarchyPathRequest `json:"path" binding:"required"`
}

// ConfirmPlacementRequest confirms units at their recorded shelves
type ConfirmPlacementRequest struct {
	UnitIDs []string `json:"unit_ids" binding:"required,min=1,dive,uuid"`
}

// parseUnitIDs converts validated uuid strings to uuid.UUIDs
func parseUnitIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	for i, s := range ids {
		out[i] = uuid.MustParse(s)
	}
	return out
}

// Inward handles stock registration
// @Summary      Register stock units entering the warehouse
// @Description  Creates individually tracked stock units at a validated shelf, in PENDING placement state
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        request body InwardRequest true "Inward request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /warehouse/stock-units/inward [post]
func (h *WarehouseHandler) Inward(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req InwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.putAwayService.Inward(c.Request.Context(), caller, warehouseapp.InwardInput{
		ProductID: uuid.MustParse(req.ProductID),
		Quantity:  req.Quantity,
		Path:      req.Path.toPath(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PutAway handles batch relocation
// @Summary      Put away stock units
// @Description  Relocates a batch of stock units to a validated shelf, all-or-nothing
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        request body PutAwayRequest true "Put-away request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /warehouse/stock-units/put-away [post]
func (h *WarehouseHandler) PutAway(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PutAwayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.putAwayService.PutAway(c.Request.Context(), caller, warehouseapp.PutAwayInput{
		UnitIDs: parseUnitIDs(req.UnitIDs),
		Path:    req.Path.toPath(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ConfirmPlacement handles placement verification
// @Summary      Confirm stock unit placement
// @Description  Marks units verified at their recorded shelves, making them eligible for allocation
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        request body ConfirmPlacementRequest true "Confirm placement request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /warehouse/stock-units/confirm-placement [post]
func (h *WarehouseHandler) ConfirmPlacement(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ConfirmPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.putAwayService.ConfirmPlacement(c.Request.Context(), caller, warehouseapp.ConfirmPlacementInput{
		UnitIDs: parseUnitIDs(req.UnitIDs),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers warehouse routes
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	units := rg.Group("/warehouse/stock-units")
	{
		units.POST("/inward", h.Inward)
		units.POST("/put-away", h.PutAway)
		units.POST("/confirm-placement", h.ConfirmPlacement)
	}
}
