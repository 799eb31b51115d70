package router

import (
	"github.com/OKANLA95/Keziah-Shop/internal/config"
	"github.com/OKANLA95/Keziah-Shop/internal/handler"
	"github.com/OKANLA95/Keziah-Shop/internal/infra"
	"github.com/OKANLA95/Keziah-Shop/internal/middleware"
	"github.com/OKANLA95/Keziah-Shop/internal/model"
	"github.com/OKANLA95/Keziah-Shop/internal/service"
	"github.com/OKANLA95/Keziah-Shop/internal/watch"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Store    *infra.FileStore
	Broker   *watch.Broker
	Auth     service.AuthService
	Products service.ProductService
	Sales    service.SaleService
	Invoices service.InvoiceService
	Reports  service.ReportService
}

// New builds the gin engine with the full middleware chain and route table.
func New(d Deps) *gin.Engine {
	if d.Cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
	)

	authH := handler.NewAuthHandler(d.Auth)
	profileH := handler.NewProfileHandler(d.Auth, d.Store)
	userH := handler.NewUserHandler(d.Auth)
	productH := handler.NewProductHandler(d.Products, d.Store)
	inventoryH := handler.NewInventoryHandler(d.Products)
	saleH := handler.NewSaleHandler(d.Sales)
	invoiceH := handler.NewInvoiceHandler(d.Invoices)
	reportH := handler.NewReportHandler(d.Reports, d.Broker)
	priceH := handler.NewPriceCheckHandler(d.Products, d.Redis)
	healthH := handler.NewHealthHandler(d.DB, d.Redis)

	// Uploaded files (product images, shop logos) are served statically.
	r.Static("/uploads", d.Store.Dir())

	r.GET("/health", healthH.Check)

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.LoginRateLimiter())
		{
			auth.POST("/signup", authH.Signup)
			auth.POST("/login", authH.Login)
			auth.POST("/refresh", authH.Refresh)
		}

		// Public cached price lookup, no account required.
		v1.GET("/price/:id", priceH.Check)

		secured := v1.Group("")
		secured.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
		{
			secured.GET("/auth/me", profileH.Me)

			profile := secured.Group("/profile",
				middleware.RequireRole(model.RoleManager, model.RoleFinance))
			{
				profile.PUT("", profileH.Update)
				profile.POST("/logo", profileH.UploadLogo)
			}

			users := secured.Group("/users", middleware.RequireRole(model.RoleAdmin))
			{
				users.GET("", userH.List)
				users.PATCH("/:id/role", userH.AssignRole)
				users.DELETE("/:id", userH.Deactivate)
				users.POST("/:id/reactivate", userH.Reactivate)
			}

			products := secured.Group("/products")
			{
				// Reads are open to every signed-in role; the projection
				// strips cost prices for roles that may not see them.
				products.GET("", productH.List)
				products.GET("/:id", productH.Get)

				manage := middleware.RequireRole(model.RoleManager, model.RoleAdmin)
				products.POST("", manage, productH.Create)
				products.PUT("/:id", manage, productH.Update)
				products.DELETE("/:id", manage, productH.Deactivate)
				products.POST("/:id/reactivate", manage, productH.Reactivate)
				products.POST("/:id/image", manage, productH.UploadImage)
				products.PATCH("/:id/stock", manage, inventoryH.AdjustStock)
			}

			inventory := secured.Group("/inventory",
				middleware.RequireRole(model.RoleManager, model.RoleFinance, model.RoleAdmin))
			{
				inventory.GET("/alerts", inventoryH.Alerts)
				inventory.GET("/movements", inventoryH.Movements)
			}

			sell := middleware.RequireRole(model.RoleSales, model.RoleManager, model.RoleAdmin)
			sales := secured.Group("/sales")
			{
				sales.POST("", sell, saleH.Record)
				sales.GET("", saleH.List)
				sales.GET("/:id", invoiceH.Get)
				sales.POST("/:id/confirm", sell, invoiceH.Confirm)
				sales.DELETE("/:id", sell, invoiceH.Cancel)
				sales.GET("/:id/invoice.pdf", invoiceH.PDF)
			}

			reports := secured.Group("/reports",
				middleware.RequireRole(model.RoleManager, model.RoleFinance, model.RoleAdmin))
			{
				reports.GET("/summary", reportH.Summary)
				reports.GET("/export.csv", reportH.ExportCSV)
				reports.GET("/export.pdf", reportH.ExportPDF)
				reports.GET("/stream", reportH.Stream)
			}
		}
	}

	if d.Cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
