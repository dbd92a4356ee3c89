package api

import (
	"context"
	"net/http"
	"time"

	_ "api_vehicles/docs"
	"api_vehicles/internal/logger"
	"api_vehicles/internal/sales"
	"api_vehicles/internal/vehicles"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is implemented by the storage backends.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the services the routes are served by.
type Dependencies struct {
	AppName  string
	Vehicles *vehicles.Service
	Sales    *sales.Service
	Storage  Pinger
	Logger   *zap.Logger
	Swagger  bool
}

// NewRouter builds the gin engine with the request-id, access-log and
// recovery middleware and every route registered.
func NewRouter(deps Dependencies, trustedProxies []string) (*gin.Engine, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, err
	}
	r.Use(
		logger.RequestIDMiddleware(deps.Logger),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
	)

	InitRoutes(r, deps)
	return r, nil
}

// InitRoutes registers all vehicle, sale and payment endpoints on the given
// Gin engine.
func InitRoutes(e *gin.Engine, deps Dependencies) {
	registerValidators()

	vehiclesHandler := NewVehiclesHandler(deps.Vehicles)
	salesHandler := NewSalesHandler(deps.Sales, deps.Vehicles)

	e.GET("/health", healthHandler(deps.AppName, deps.Storage))

	v := e.Group("/vehicles")
	v.POST("", vehiclesHandler.handleCreateVehicle)
	v.GET("", vehiclesHandler.handleListVehicles)
	v.GET("/status/available", vehiclesHandler.handleListByStatus(vehicles.StatusAvailable))
	v.GET("/status/sold", vehiclesHandler.handleListByStatus(vehicles.StatusSold))
	v.GET("/:id", vehiclesHandler.handleGetVehicle)
	v.PUT("/:id", vehiclesHandler.handleUpdateVehicle)
	v.POST("/:id/sell", vehiclesHandler.handleSellVehicle)

	s := e.Group("/sales")
	s.POST("", salesHandler.handleCreateSale)
	s.GET("", salesHandler.handleListSales)
	s.GET("/vehicle/:vehicle_id", salesHandler.handleGetSaleByVehicle)
	s.GET("/:id", salesHandler.handleGetSale)
	s.GET("/:id/payment-status", salesHandler.handleGetPaymentStatus)
	s.PUT("/:id/payment-status", salesHandler.handleUpdatePaymentStatus)

	e.POST("/payments/webhook", salesHandler.handlePaymentWebhook)

	if deps.Swagger {
		e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// healthHandler godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func healthHandler(appName string, storage Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{Status: "ok", App: appName, Storage: "ok"}
		if storage != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			defer cancel()
			if err := storage.Ping(ctx); err != nil {
				logger.FromGin(c).Warn("storage ping failed", zap.Error(err))
				resp.Status = "degraded"
				resp.Storage = "unreachable"
				c.JSON(http.StatusServiceUnavailable, resp)
				return
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
