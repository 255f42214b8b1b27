package router

import (
	"time"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/config"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/handler"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/middleware"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/repository"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/service"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	presupuestoRepo := repository.NewPresupuestoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	seguimientoRepo := repository.NewSeguimientoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	presupuestoSvc := service.NewPresupuestoService(
		presupuestoRepo, clienteRepo, materialRepo, movimientoRepo, seguimientoRepo, dispatcher, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	seguimientoSvc := service.NewSeguimientoService(seguimientoRepo)
	materialSvc := service.NewMaterialService(materialRepo, movimientoRepo)
	reporteSvc := service.NewReporteService(presupuestoRepo, seguimientoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	presupuestosH := handler.NewPresupuestosHandler(presupuestoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	seguimientosH := handler.NewSeguimientosHandler(seguimientoSvc)
	materialesH := handler.NewMaterialesHandler(materialSvc)
	reportesH := handler.NewReportesHandler(reporteSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: admin, operario — declared per-endpoint

		pres := v1.Group("/presupuestos")
		{
			pres.POST("", middleware.RequireRole("admin"), presupuestosH.Crear)
			pres.GET("", middleware.RequireRole("admin", "operario"), presupuestosH.Listar)
			pres.GET("/:id", middleware.RequireRole("admin", "operario"), presupuestosH.Obtener)
			pres.PUT("/:id", middleware.RequireRole("admin"), presupuestosH.Actualizar)
			pres.DELETE("/:id", middleware.RequireRole("admin"), presupuestosH.Eliminar)
			pres.POST("/:id/aprobar", middleware.RequireRole("admin"), presupuestosH.Aprobar)
			pres.POST("/:id/pagos", middleware.RequireRole("admin"), presupuestosH.RegistrarPago)
			pres.GET("/:id/pdf", middleware.RequireRole("admin", "operario"), presupuestosH.DescargarPDF)
		}

		cli := v1.Group("/clientes")
		{
			cli.GET("", middleware.RequireRole("admin", "operario"), clientesH.Listar)
			cli.GET("/:id", middleware.RequireRole("admin", "operario"), clientesH.Obtener)
			cli.PUT("/:id", middleware.RequireRole("admin"), clientesH.Actualizar)
			cli.DELETE("/:id", middleware.RequireRole("admin"), clientesH.Eliminar)
		}

		seg := v1.Group("/seguimientos")
		{
			seg.GET("", middleware.RequireRole("admin", "operario"), seguimientosH.Listar)
			seg.GET("/:id", middleware.RequireRole("admin", "operario"), seguimientosH.Obtener)
			seg.PATCH("/:id/estado", middleware.RequireRole("admin"), seguimientosH.ActualizarEstado)
			seg.PATCH("/:id/tareas/:tareaId", middleware.RequireRole("admin", "operario"), seguimientosH.ActualizarTarea)
			seg.PATCH("/:id/materiales/:materialId", middleware.RequireRole("admin", "operario"), seguimientosH.ActualizarMaterial)
			seg.POST("/:id/registros", middleware.RequireRole("admin", "operario"), seguimientosH.AgregarRegistro)
			seg.POST("/:id/gastos", middleware.RequireRole("admin", "operario"), seguimientosH.AgregarGasto)
			seg.POST("/:id/pagos", middleware.RequireRole("admin"), seguimientosH.RegistrarPago)
		}

		// Materiales — admin writes, operario reads
		v1.GET("/materiales", middleware.RequireRole("admin", "operario"), materialesH.Listar)
		v1.GET("/materiales/:id", middleware.RequireRole("admin", "operario"), materialesH.Obtener)
		v1.GET("/materiales/:id/movimientos", middleware.RequireRole("admin", "operario"), materialesH.ListarMovimientos)
		mat := v1.Group("/materiales", middleware.RequireRole("admin"))
		{
			mat.POST("", materialesH.Crear)
			mat.PUT("/:id", materialesH.Actualizar)
			mat.DELETE("/:id", materialesH.Desactivar)
			mat.POST("/:id/ajustar-stock", materialesH.AjustarStock)
		}

		v1.GET("/reportes/resumen", middleware.RequireRole("admin"), reportesH.ResumenFinanciero)

		usuarios := v1.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
