package api

import (
	"net/http"
	"strconv"
	"time"

	"api_vehicles/internal/logger"
	"api_vehicles/internal/shared"
	"api_vehicles/internal/vehicles"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// vehiclesHandler holds the vehicle service and implements HTTP handlers for
// stock operations.
type vehiclesHandler struct {
	vehicleService *vehicles.Service
}

// NewVehiclesHandler creates a new vehicles handler.
func NewVehiclesHandler(vehicleService *vehicles.Service) *vehiclesHandler {
	return &vehiclesHandler{
		vehicleService: vehicleService,
	}
}

// CreateVehicleRequest is the body of POST /vehicles.
type CreateVehicleRequest struct {
	Brand string           `json:"brand" binding:"required" example:"Toyota"`
	Model string           `json:"model" binding:"required" example:"Corolla"`
	Year  int              `json:"year" binding:"required" example:"2023"`
	Color string           `json:"color" binding:"required" example:"White"`
	Price *decimal.Decimal `json:"price" binding:"required" swaggertype:"number" example:"85000.00"`
}

// UpdateVehicleRequest is the body of PUT /vehicles/{id}. Omitted fields
// keep their value.
type UpdateVehicleRequest struct {
	Brand *string          `json:"brand,omitempty" example:"Toyota"`
	Model *string          `json:"model,omitempty" example:"Corolla Cross"`
	Year  *int             `json:"year,omitempty" example:"2024"`
	Color *string          `json:"color,omitempty" example:"Black"`
	Price *decimal.Decimal `json:"price,omitempty" swaggertype:"number" example:"90000.00"`
}

// SellVehicleRequest is the body of POST /vehicles/{id}/sell.
type SellVehicleRequest struct {
	CustomerCPF string           `json:"customer_cpf" binding:"required,cpf" example:"111.444.777-35"`
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"85000.00"`
	SaleDate    *time.Time       `json:"sale_date,omitempty"`
	PaymentCode string           `json:"payment_code,omitempty" binding:"max=64"`
}

func (r SellVehicleRequest) toInput(vehicleID int64) vehicles.SellInput {
	in := vehicles.SellInput{
		VehicleID:   vehicleID,
		CustomerCPF: r.CustomerCPF,
		Amount:      *r.Amount,
		PaymentCode: r.PaymentCode,
	}
	if r.SaleDate != nil {
		in.SaleDate = *r.SaleDate
	}
	return in
}

// handleCreateVehicle godoc
// @Summary      Register a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        request body CreateVehicleRequest true "Vehicle"
// @Success      201 {object} VehicleResponse
// @Failure      400 {object} ErrorResponse
// @Router       /vehicles [post]
func (h *vehiclesHandler) handleCreateVehicle(ctx *gin.Context) {
	var req CreateVehicleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.FromGin(ctx).Debug("failed to bind JSON request", zap.Error(err))
		handleBindError(ctx, err)
		return
	}

	v, err := h.vehicleService.CreateVehicle(ctx.Request.Context(), vehicles.VehicleInput{
		Brand: req.Brand,
		Model: req.Model,
		Year:  req.Year,
		Color: req.Color,
		Price: *req.Price,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, presentVehicle(v))
}

// handleListVehicles godoc
// @Summary      List vehicles
// @Description  Without status, every vehicle ordered by id. With status, vehicles in that status ordered by price then id.
// @Tags         vehicles
// @Produce      json
// @Param        status query string false "AVAILABLE or SOLD"
// @Param        page   query int    false "Page, starting at 1"
// @Param        size   query int    false "Page size, 1 to 100"
// @Success      200 {object} VehicleListResponse
// @Failure      400 {object} ErrorResponse
// @Router       /vehicles [get]
func (h *vehiclesHandler) handleListVehicles(ctx *gin.Context) {
	h.listVehicles(ctx, ctx.Query("status"))
}

// handleListByStatus serves /vehicles/status/available and /vehicles/status/sold.
func (h *vehiclesHandler) handleListByStatus(status vehicles.Status) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		h.listVehicles(ctx, string(status))
	}
}

func (h *vehiclesHandler) listVehicles(ctx *gin.Context, status string) {
	page, ok := parsePage(ctx)
	if !ok {
		return
	}

	var (
		list []*vehicles.Vehicle
		err  error
	)
	if status == "" {
		list, err = h.vehicleService.ListVehicles(ctx.Request.Context(), page)
	} else {
		var st vehicles.Status
		st, err = vehicles.ParseStatus(status)
		if err == nil && st == vehicles.StatusAvailable {
			list, err = h.vehicleService.ListAvailableSortedByPrice(ctx.Request.Context(), page)
		} else if err == nil {
			list, err = h.vehicleService.ListSoldSortedByPrice(ctx.Request.Context(), page)
		}
	}
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, VehicleListResponse{
		Results: presentVehicles(list),
		Count:   len(list),
		Page:    page.Number,
		Size:    page.Size,
	})
}

// handleGetVehicle godoc
// @Summary      Get a vehicle
// @Tags         vehicles
// @Produce      json
// @Param        id path int true "Vehicle ID"
// @Success      200 {object} VehicleResponse
// @Failure      404 {object} ErrorResponse
// @Router       /vehicles/{id} [get]
func (h *vehiclesHandler) handleGetVehicle(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	v, err := h.vehicleService.GetVehicle(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, presentVehicle(v))
}

// handleUpdateVehicle godoc
// @Summary      Edit an available vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        id      path int                  true "Vehicle ID"
// @Param        request body UpdateVehicleRequest true "Fields to change"
// @Success      200 {object} VehicleResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /vehicles/{id} [put]
func (h *vehiclesHandler) handleUpdateVehicle(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err)
		return
	}

	v, err := h.vehicleService.UpdateVehicle(ctx.Request.Context(), id, vehicles.VehicleUpdate{
		Brand: req.Brand,
		Model: req.Model,
		Year:  req.Year,
		Color: req.Color,
		Price: req.Price,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, presentVehicle(v))
}

// handleSellVehicle godoc
// @Summary      Sell a vehicle
// @Description  Records a PENDING sale and marks the vehicle SOLD.
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        id      path int                true "Vehicle ID"
// @Param        request body SellVehicleRequest true "Sale"
// @Success      201 {object} SaleResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /vehicles/{id}/sell [post]
func (h *vehiclesHandler) handleSellVehicle(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req SellVehicleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err)
		return
	}

	sale, err := h.vehicleService.SellVehicle(ctx.Request.Context(), req.toInput(id))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, presentSale(sale))
}

func parseID(ctx *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(ctx, http.StatusBadRequest, "INVALID_ID", param+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func parsePage(ctx *gin.Context) (shared.Page, bool) {
	number, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "INVALID_PAGE", "page must be an integer")
		return shared.Page{}, false
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", strconv.Itoa(shared.DefaultPageSize)))
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "INVALID_PAGE_SIZE", "size must be an integer")
		return shared.Page{}, false
	}

	page, err := shared.NewPage(number, size)
	if err != nil {
		handleError(ctx, err)
		return shared.Page{}, false
	}
	return page, true
}
