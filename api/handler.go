package api

import (
	"net/http"
	"strconv"

	"api_vehicles/internal/logger"
	"api_vehicles/internal/sales"
	"api_vehicles/internal/vehicles"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// salesHandler holds the sale and vehicle services and implements HTTP
// handlers for sales and payment operations.
type salesHandler struct {
	salesService   *sales.Service
	vehicleService *vehicles.Service
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, vehicleService *vehicles.Service) *salesHandler {
	return &salesHandler{
		salesService:   salesService,
		vehicleService: vehicleService,
	}
}

// CreateSaleRequest is the body of POST /sales.
type CreateSaleRequest struct {
	VehicleID int64 `json:"vehicle_id" binding:"required,gt=0" example:"1"`
	SellVehicleRequest
}

// PaymentStatusRequest is the body of PUT /sales/{id}/payment-status.
type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required" example:"APPROVED"`
}

// WebhookRequest is a payment provider notification. The sale is located
// by payment_code when present, otherwise by sale_id.
type WebhookRequest struct {
	PaymentCode string `json:"payment_code,omitempty" example:"PAY-3f1c..."`
	SaleID      int64  `json:"sale_id,omitempty" example:"1"`
	Status      string `json:"status" binding:"required" example:"APPROVED"`
}

// handleCreateSale godoc
// @Summary      Sell a vehicle
// @Description  Same as POST /vehicles/{id}/sell with the vehicle id in the body.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body CreateSaleRequest true "Sale"
// @Success      201 {object} SaleResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /sales [post]
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	var req CreateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.FromGin(ctx).Debug("failed to bind JSON request", zap.Error(err))
		handleBindError(ctx, err)
		return
	}

	sale, err := h.vehicleService.SellVehicle(ctx.Request.Context(), req.toInput(req.VehicleID))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, presentSale(sale))
}

// handleListSales godoc
// @Summary      List sales
// @Description  CPFs are masked. With vehicle_id, returns the single sale of that vehicle.
// @Tags         sales
// @Produce      json
// @Param        vehicle_id     query int    false "Vehicle ID"
// @Param        payment_status query string false "PENDING, APPROVED or REJECTED"
// @Param        page           query int    false "Page, starting at 1"
// @Param        size           query int    false "Page size, 1 to 100"
// @Success      200 {object} SaleListResponse
// @Failure      400 {object} ErrorResponse
// @Router       /sales [get]
func (h *salesHandler) handleListSales(ctx *gin.Context) {
	if raw := ctx.Query("vehicle_id"); raw != "" {
		vehicleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || vehicleID <= 0 {
			abortWithError(ctx, http.StatusBadRequest, "INVALID_ID", "vehicle_id must be a positive integer")
			return
		}
		h.saleByVehicle(ctx, vehicleID)
		return
	}

	page, ok := parsePage(ctx)
	if !ok {
		return
	}

	statusFilter := ctx.Query("payment_status")
	results, metadata, err := h.salesService.ListSales(ctx.Request.Context(), statusFilter, page)
	if err != nil {
		handleError(ctx, err)
		return
	}

	out := make([]SaleResponse, len(results))
	for i, s := range results {
		out[i] = presentSaleMasked(s)
	}
	ctx.JSON(http.StatusOK, SaleListResponse{
		Results:  out,
		Metadata: presentMetadata(metadata),
		Page:     page.Number,
		Size:     page.Size,
	})
}

// handleGetSaleByVehicle godoc
// @Summary      Get the sale of a vehicle
// @Tags         sales
// @Produce      json
// @Param        vehicle_id path int true "Vehicle ID"
// @Success      200 {object} SaleResponse
// @Failure      404 {object} ErrorResponse
// @Router       /sales/vehicle/{vehicle_id} [get]
func (h *salesHandler) handleGetSaleByVehicle(ctx *gin.Context) {
	vehicleID, ok := parseID(ctx, "vehicle_id")
	if !ok {
		return
	}
	h.saleByVehicle(ctx, vehicleID)
}

func (h *salesHandler) saleByVehicle(ctx *gin.Context, vehicleID int64) {
	sale, err := h.salesService.GetSaleByVehicle(ctx.Request.Context(), vehicleID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, presentSale(sale))
}

// handleGetSale godoc
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Param        id path int true "Sale ID"
// @Success      200 {object} SaleResponse
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id} [get]
func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	sale, err := h.salesService.GetSale(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, presentSale(sale))
}

// handleGetPaymentStatus godoc
// @Summary      Get the payment status of a sale
// @Tags         sales
// @Produce      json
// @Param        id path int true "Sale ID"
// @Success      200 {object} PaymentStatusResponse
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id}/payment-status [get]
func (h *salesHandler) handleGetPaymentStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	sale, err := h.salesService.GetSale(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, PaymentStatusResponse{
		SaleID:        sale.ID,
		PaymentStatus: string(sale.PaymentStatus),
		Sale:          presentSale(sale),
	})
}

// handleUpdatePaymentStatus godoc
// @Summary      Set the payment status of a sale
// @Description  Replaying the current terminal status succeeds with changed=false.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id      path int                  true "Sale ID"
// @Param        request body PaymentStatusRequest true "Status"
// @Success      200 {object} PaymentStatusResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /sales/{id}/payment-status [put]
func (h *salesHandler) handleUpdatePaymentStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req PaymentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err)
		return
	}

	res, err := h.salesService.UpdatePaymentStatus(ctx.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, presentPaymentResult(res))
}

// handlePaymentWebhook godoc
// @Summary      Payment provider webhook
// @Description  Idempotent: a replayed event returns the current state with changed=false.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body WebhookRequest true "Event"
// @Success      200 {object} PaymentStatusResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /payments/webhook [post]
func (h *salesHandler) handlePaymentWebhook(ctx *gin.Context) {
	var req WebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.FromGin(ctx).Warn("invalid webhook payload", zap.Error(err))
		handleBindError(ctx, err)
		return
	}

	res, err := h.salesService.CreatePaymentWebhookEvent(ctx.Request.Context(), sales.WebhookEvent{
		PaymentCode: req.PaymentCode,
		SaleID:      req.SaleID,
		Status:      req.Status,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, presentPaymentResult(res))
}
