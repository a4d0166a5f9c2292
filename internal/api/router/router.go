package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Samu-Kiss/Uni-App/config"
	"github.com/Samu-Kiss/Uni-App/internal/api/handler"
	"github.com/Samu-Kiss/Uni-App/internal/api/middleware"
	"github.com/Samu-Kiss/Uni-App/pkg/jwt"
	"github.com/Samu-Kiss/Uni-App/pkg/redis"
)

// Setup builds the Gin engine with middleware and all routes.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth endpoints without authentication
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Profile)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// pensum
			materias := authorized.Group("/materias")
			{
				materias.POST("", h.Pensum.CreateMateria)
				materias.GET("", h.Pensum.ListMaterias)
				materias.GET("/progreso", h.Pensum.Progress)
				materias.GET("/disponibles", h.Pensum.AvailableCourses)
				materias.GET("/creditos", h.Pensum.CheckCreditos)
				materias.GET("/validar", h.Pensum.Validate)
				materias.POST("/simular-perdida", h.Pensum.SimulatePerdida)
				materias.POST("/refrescar-estados", h.Pensum.RefreshEstados)
				materias.GET("/:id", h.Pensum.GetMateria)
				materias.PUT("/:id", h.Pensum.UpdateMateria)
				materias.PATCH("/:id/estado", h.Pensum.UpdateEstado)
				materias.PATCH("/:id/semestre", h.Pensum.MoveMateria)
				materias.DELETE("/:id", h.Pensum.DeleteMateria)

				// nested resources
				materias.GET("/:id/clases", h.Clase.ListClases)
				materias.GET("/:id/calificaciones", h.GPA.ListCalificaciones)
				materias.GET("/:id/nota", h.GPA.MateriaGrade)
				materias.GET("/:id/nota-necesaria", h.GPA.NeededGrade)
			}

			// sections
			clases := authorized.Group("/clases")
			{
				clases.POST("", h.Clase.CreateClase)
				clases.GET("/:id", h.Clase.GetClase)
				clases.PUT("/:id", h.Clase.UpdateClase)
				clases.DELETE("/:id", h.Clase.DeleteClase)
			}

			// slot preferences
			franjas := authorized.Group("/franjas")
			{
				franjas.POST("", h.Franja.CreateFranja)
				franjas.GET("", h.Franja.ListFranjas)
				franjas.PUT("/:id", h.Franja.UpdateFranja)
				franjas.DELETE("/:id", h.Franja.DeleteFranja)
			}

			// schedule generation
			horarios := authorized.Group("/horarios")
			{
				horarios.POST("/generar", h.Schedule.Generate)
				horarios.POST("/seleccionar", h.Schedule.Select)
				horarios.GET("", h.Schedule.List)
				horarios.GET("/activo", h.Schedule.GetActive)
				horarios.GET("/conflictos", h.Schedule.Conflicts)
				horarios.GET("/grilla", h.Schedule.Grid)
				horarios.DELETE("/:id", h.Schedule.Delete)
			}

			// grades
			calificaciones := authorized.Group("/calificaciones")
			{
				calificaciones.POST("", h.GPA.CreateCalificacion)
				calificaciones.PUT("/:id", h.GPA.UpdateCalificacion)
				calificaciones.DELETE("/:id", h.GPA.DeleteCalificacion)
			}

			gpa := authorized.Group("/gpa")
			{
				gpa.GET("", h.GPA.GPA)
				gpa.POST("/simular", h.GPA.Simulate)
				gpa.GET("/alertas", h.GPA.Alerts)
				gpa.GET("/progreso", h.GPA.AcademicProgress)
			}

			// preferences
			authorized.GET("/configuracion", h.Config.Get)
			authorized.PUT("/configuracion", h.Config.Update)

			// export
			export := authorized.Group("/export")
			{
				export.GET("/ics", h.Export.ExportICS)
				export.GET("/xlsx", h.Export.ExportExcel)
			}
		}
	}

	return r
}
