package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	fulfillmentapp "github.com/khallark/studio-sub002/internal/application/fulfillment"
	warehouseapp "github.com/khallark/studio-sub002/internal/application/warehouse"
	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/interfaces/http/dto"
)

// OrderHandler handles order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	orderService  *fulfillmentapp.OrderService
	statusService *fulfillmentapp.StatusService
	bulkService   *fulfillmentapp.BulkService
	pickService   *warehouseapp.PickService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(
	orderService *fulfillmentapp.OrderService,
	statusService *fulfillmentapp.StatusService,
	bulkService *fulfillmentapp.BulkService,
	pickService *warehouseapp.PickService,
) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		statusService: statusService,
		bulkService:   bulkService,
		pickService:   pickService,
	}
}

// IngestOrderRequest represents an order arriving from a storefront
type IngestOrderRequest struct {
	StoreID     string               `json:"store_id" binding:"required,uuid"`
	ExternalRef string               `json:"external_ref" binding:"required"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Payload     fulfillment.Snapshot `json:"payload" binding:"required"`
}

// TransitionRequest moves an order along a forward edge
type TransitionRequest struct {
	Target  string `json:"target" binding:"required"`
	Remarks string `json:"remarks"`
}

// RevertRequest undoes an order's current status
type RevertRequest struct {
	Remarks string `json:"remarks"`
}

// ShipmentRequest books a shipment for an order
type ShipmentRequest struct {
	CourierCode string `json:"courier_code"`
}

// BulkStatusRequest moves a set of orders along the same forward edge
type BulkStatusRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required,min=1,dive,uuid"`
	Target   string   `json:"target" binding:"required"`
	Remarks  string   `json:"remarks"`
}

// BulkShipmentRequest books shipments for a set of orders
type BulkShipmentRequest struct {
	OrderIDs    []string `json:"order_ids" binding:"required,min=1,dive,uuid"`
	CourierCode string   `json:"courier_code"`
}

// BulkOrderIDsRequest names the orders a bulk operation targets
type BulkOrderIDsRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required,min=1,dive,uuid"`
}

// orderID extracts and parses the :id path parameter
func (h *OrderHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	return uuid.MustParse(req.ID), true
}

// Ingest handles order ingestion
// @Summary      Ingest an order
// @Description  Records an order arriving from a storefront with its immutable payload snapshot
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body IngestOrderRequest true "Order to ingest"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /orders [post]
func (h *OrderHandler) Ingest(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req IngestOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.orderService.Ingest(c.Request.Context(), caller, fulfillmentapp.IngestInput{
		StoreID:     uuid.MustParse(req.StoreID),
		ExternalRef: req.ExternalRef,
		TotalAmount: req.TotalAmount,
		Payload:     req.Payload,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// Get returns one order
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	view, err := h.orderService.Get(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ListByStore returns a page of a store's orders
// @Summary      List a store's orders
// @Tags         orders
// @Produce      json
// @Param        store_id path string true "Store ID"
// @Success      200 {object} dto.Response
// @Router       /stores/{store_id}/orders [get]
func (h *OrderHandler) ListByStore(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	storeID, err := uuid.Parse(c.Param("store_id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
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

	views, err := h.orderService.ListByStore(c.Request.Context(), caller, storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Allocate reserves stock for an order
// @Summary      Allocate stock to an order
// @Description  Reserves the oldest available stock units for every line item, all-or-nothing
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /orders/{id}/allocate [post]
func (h *OrderHandler) Allocate(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	result, err := h.pickService.Allocate(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Release reverses an order's allocation
// @Summary      Release an order's stock reservation
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response
// @Router       /orders/{id}/release [post]
func (h *OrderHandler) Release(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	result, err := h.pickService.Release(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Transition moves an order along a forward edge
// @Summary      Transition an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body TransitionRequest true "Transition request"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /orders/{id}/transition [post]
func (h *OrderHandler) Transition(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.statusService.Transition(c.Request.Context(), caller, id,
		fulfillment.OrderStatus(req.Target), req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Revert undoes an order's current status
// @Summary      Revert an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body RevertRequest false "Revert request"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /orders/{id}/revert [post]
func (h *OrderHandler) Revert(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req RevertRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.statusService.Revert(c.Request.Context(), caller, id, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// AssignAWB books a forward shipment for an order
// @Summary      Assign an AWB to an order
// @Description  Books a forward shipment with the courier network and moves the order to ReadyToDispatch
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body ShipmentRequest false "Shipment preferences"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /orders/{id}/assign-awb [post]
func (h *OrderHandler) AssignAWB(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.statusService.AssignAWB(c.Request.Context(), caller, id, req.CourierCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// BookReturn books a reverse shipment for an order
// @Summary      Book a return for an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body ShipmentRequest false "Shipment preferences"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /orders/{id}/book-return [post]
func (h *OrderHandler) BookReturn(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.statusService.BookReturn(c.Request.Context(), caller, id, req.CourierCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// BulkStatus moves a set of orders along the same forward edge
// @Summary      Bulk status update
// @Description  Partitions the orders by store and runs one concurrent sub-operation per partition
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body BulkStatusRequest true "Bulk status request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /orders/bulk/status [post]
func (h *OrderHandler) BulkStatus(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bulkService.BulkUpdateStatus(c.Request.Context(), caller, fulfillmentapp.BulkStatusInput{
		OrderIDs: parseUnitIDs(req.OrderIDs),
		Target:   fulfillment.OrderStatus(req.Target),
		Remarks:  req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BulkAssignAWB books forward shipments for a set of orders
// @Summary      Bulk AWB assignment
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body BulkShipmentRequest true "Bulk shipment request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /orders/bulk/assign-awb [post]
func (h *OrderHandler) BulkAssignAWB(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req BulkShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bulkService.BulkAssignAWB(c.Request.Context(), caller, fulfillmentapp.BulkShipmentInput{
		OrderIDs:    parseUnitIDs(req.OrderIDs),
		CourierCode: req.CourierCode,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BulkDispatch marks a set of orders Dispatched
// @Summary      Bulk dispatch
// @Description  Notifies each owning storefront before committing the transition
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body BulkOrderIDsRequest true "Bulk dispatch request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /orders/bulk/dispatch [post]
func (h *OrderHandler) BulkDispatch(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req BulkOrderIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bulkService.BulkDispatch(c.Request.Context(), caller, fulfillmentapp.BulkOrderIDsInput{
		OrderIDs: parseUnitIDs(req.OrderIDs),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BulkBookReturn books reverse shipments for a set of orders
// @Summary      Bulk return booking
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body BulkShipmentRequest true "Bulk return request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /orders/bulk/book-return [post]
func (h *OrderHandler) BulkBookReturn(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req BulkShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bulkService.BulkBookReturn(c.Request.Context(), caller, fulfillmentapp.BulkShipmentInput{
		OrderIDs:    parseUnitIDs(req.OrderIDs),
		CourierCode: req.CourierCode,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Ingest)
		orders.GET(":id", h.Get)
		orders.POST(":id/allocate", h.Allocate)
		orders.POST(":id/release", h.Release)
		orders.POST(":id/transition", h.Transition)
		orders.POST(":id/revert", h.Revert)
		orders.POST(":id/assign-awb", h.AssignAWB)
		orders.POST(":id/book-return", h.BookReturn)

		orders.POST("bulk/status", h.BulkStatus)
		orders.POST("bulk/assign-awb", h.BulkAssignAWB)
		orders.POST("bulk/dispatch", h.BulkDispatch)
		orders.POST("bulk/book-return", h.BulkBookReturn)
	}

	rg.GET("/stores/:store_id/orders", h.ListByStore)
}
