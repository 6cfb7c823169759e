package router

import (
	"time"

	"github.com/adornodavid/aybcosteo-sub001/internal/config"
	"github.com/adornodavid/aybcosteo-sub001/internal/handler"
	"github.com/adornodavid/aybcosteo-sub001/internal/infra"
	"github.com/adornodavid/aybcosteo-sub001/internal/middleware"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"
	"github.com/adornodavid/aybcosteo-sub001/internal/service"
	"github.com/adornodavid/aybcosteo-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
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
	hotelRepo := repository.NewHotelRepository(db)
	restauranteRepo := repository.NewRestauranteRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	platilloRepo := repository.NewPlatilloRepository(db)
	ingredienteRepo := repository.NewIngredienteRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	historicoRepo := repository.NewHistoricoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	hotelSvc := service.NewHotelService(hotelRepo)
	restauranteSvc := service.NewRestauranteService(restauranteRepo, hotelRepo)
	historicoSvc := service.NewHistoricoService(historicoRepo, menuRepo, platilloRepo)
	menuSvc := service.NewMenuService(menuRepo, restauranteRepo, platilloRepo, historicoSvc, rdb)
	platilloSvc := service.NewPlatilloService(platilloRepo, recetaRepo, ingredienteRepo)
	ingredienteSvc := service.NewIngredienteService(ingredienteRepo, platilloRepo)
	recetaSvc := service.NewRecetaService(recetaRepo, platilloRepo)
	reporteSvc := service.NewReporteService(menuRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	hotelesH := handler.NewHotelesHandler(hotelSvc)
	restaurantesH := handler.NewRestaurantesHandler(restauranteSvc)
	menusH := handler.NewMenusHandler(menuSvc)
	platillosH := handler.NewPlatillosHandler(platilloSvc)
	ingredientesH := handler.NewIngredientesHandler(ingredienteSvc)
	recetasH := handler.NewRecetasHandler(recetaSvc)
	historicoH := handler.NewHistoricoHandler(historicoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

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
		// Roles: analista (read-only), gerente (costing operations),
		// administrador (everything) — declared per-endpoint.

		// Hoteles — administrador writes, all authenticated read
		v1.GET("/hoteles", middleware.RequireRole("analista", "gerente", "administrador"), hotelesH.Listar)
		v1.GET("/hoteles/:id", middleware.RequireRole("analista", "gerente", "administrador"), hotelesH.ObtenerPorID)
		hoteles := v1.Group("/hoteles", middleware.RequireRole("administrador"))
		{
			hoteles.POST("", hotelesH.Crear)
			hoteles.PUT("/:id", hotelesH.Actualizar)
			hoteles.DELETE("/:id", hotelesH.Desactivar)
			hoteles.PATCH("/:id/reactivar", hotelesH.Reactivar)
		}

		// Restaurantes
		v1.GET("/restaurantes", middleware.RequireRole("analista", "gerente", "administrador"), restaurantesH.Listar)
		v1.GET("/restaurantes/:id", middleware.RequireRole("analista", "gerente", "administrador"), restaurantesH.ObtenerPorID)
		restaurantes := v1.Group("/restaurantes", middleware.RequireRole("administrador"))
		{
			restaurantes.POST("", restaurantesH.Crear)
			restaurantes.PUT("/:id", restaurantesH.Actualizar)
			restaurantes.DELETE("/:id", restaurantesH.Desactivar)
			restaurantes.PATCH("/:id/reactivar", restaurantesH.Reactivar)
		}

		// Menus — gerente y administrador manage assignments and prices
		v1.GET("/menus", middleware.RequireRole("analista", "gerente", "administrador"), menusH.Listar)
		v1.GET("/menus/:id", middleware.RequireRole("analista", "gerente", "administrador"), menusH.ObtenerPorID)
		v1.GET("/menus/:id/platillos", middleware.RequireRole("analista", "gerente", "administrador"), menusH.ListarAsignaciones)
		v1.GET("/menus/:id/margenes", middleware.RequireRole("analista", "gerente", "administrador"), menusH.Margenes)
		menus := v1.Group("/menus", middleware.RequireRole("gerente", "administrador"))
		{
			menus.POST("", menusH.Crear)
			menus.PUT("/:id", menusH.Actualizar)
			menus.DELETE("/:id", menusH.Eliminar)
			menus.PATCH("/:id/reactivar", menusH.Reactivar)
			menus.POST("/:id/platillos", menusH.AgregarPlatillo)
			menus.PUT("/:id/platillos/:platilloId/precio", menusH.ActualizarPrecio)
			menus.DELETE("/:id/platillos/:platilloId", menusH.QuitarPlatillo)
		}

		// Platillos
		v1.GET("/platillos", middleware.RequireRole("analista", "gerente", "administrador"), platillosH.Listar)
		v1.GET("/platillos/:id", middleware.RequireRole("analista", "gerente", "administrador"), platillosH.ObtenerPorID)
		v1.GET("/platillos/:id/componentes", middleware.RequireRole("analista", "gerente", "administrador"), platillosH.ListarComponentes)
		platillos := v1.Group("/platillos", middleware.RequireRole("gerente", "administrador"))
		{
			platillos.POST("", platillosH.Crear)
			platillos.PUT("/:id", platillosH.Actualizar)
			platillos.DELETE("/:id", platillosH.Desactivar)
			platillos.PATCH("/:id/reactivar", platillosH.Reactivar)
			platillos.POST("/:id/recetas", platillosH.AgregarReceta)
			platillos.POST("/:id/ingredientes", platillosH.AgregarIngrediente)
			platillos.DELETE("/:id/recetas/:recetaId", platillosH.QuitarReceta)
			platillos.DELETE("/:id/ingredientes/:ingredienteId", platillosH.QuitarIngrediente)
		}

		// Ingredientes y recetas
		v1.GET("/ingredientes", middleware.RequireRole("analista", "gerente", "administrador"), ingredientesH.Listar)
		v1.GET("/ingredientes/:id", middleware.RequireRole("analista", "gerente", "administrador"), ingredientesH.ObtenerPorID)
		ingredientes := v1.Group("/ingredientes", middleware.RequireRole("gerente", "administrador"))
		{
			ingredientes.POST("", ingredientesH.Crear)
			ingredientes.PUT("/:id", ingredientesH.Actualizar)
			ingredientes.PATCH("/:id/costo", ingredientesH.ActualizarCosto)
			ingredientes.DELETE("/:id", ingredientesH.Desactivar)
			ingredientes.PATCH("/:id/reactivar", ingredientesH.Reactivar)
		}

		v1.GET("/recetas", middleware.RequireRole("analista", "gerente", "administrador"), recetasH.Listar)
		v1.GET("/recetas/:id", middleware.RequireRole("analista", "gerente", "administrador"), recetasH.ObtenerPorID)
		recetas := v1.Group("/recetas", middleware.RequireRole("gerente", "administrador"))
		{
			recetas.POST("", recetasH.Crear)
			recetas.PUT("/:id", recetasH.Actualizar)
			recetas.PATCH("/:id/costo", recetasH.ActualizarCosto)
			recetas.DELETE("/:id", recetasH.Desactivar)
			recetas.PATCH("/:id/reactivar", recetasH.Reactivar)
		}

		// Historico — read-only ledger
		v1.GET("/historico", middleware.RequireRole("analista", "gerente", "administrador"), historicoH.Listar)

		// Reportes — async PDF by email
		v1.POST("/reportes/costos", middleware.RequireRole("gerente", "administrador"), reportesH.Solicitar)

		// Usuarios — administrador only
		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
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
