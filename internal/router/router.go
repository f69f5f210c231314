package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/wayandway/moneylog-backend/internal/auth"
	"github.com/wayandway/moneylog-backend/internal/handler"
)

// Register wires routes and middleware. Read paths carry an optional viewer
// identity; write paths require a valid access token.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	tagHandler *handler.TagHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Auth routes, rate limited to slow down credential stuffing
	authGroup := api.Group("/auth", middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(5))))
	authGroup.POST("/register", authHandler.Register)
	authGroup.GET("/verify-email", authHandler.VerifyEmail)
	authGroup.POST("/login", authHandler.Login)

	// Read routes: anonymous allowed, a bearer token narrows or widens
	// visibility only
	public := api.Group("", auth.OptionalMiddleware(jwtService))
	public.GET("/posts", postHandler.FindAll)
	public.GET("/posts/tags", postHandler.FindByTags)
	public.GET("/posts/:id", postHandler.FindOne)
	public.GET("/blog/:domain", postHandler.FindByAuthor)
	public.GET("/users", userHandler.List)
	public.GET("/users/:id", userHandler.Get)
	public.GET("/users/domain/:domain", userHandler.GetByDomain)
	public.GET("/tags", tagHandler.List)
	public.GET("/tags/:name", tagHandler.Get)
	public.GET("/comments/:postId", commentHandler.FindByPost)

	// Write routes require a valid access token
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}))

	secured.POST("/posts", postHandler.Create)
	secured.PATCH("/posts/:id", postHandler.Update)
	secured.DELETE("/posts/:id", postHandler.Delete)

	secured.PATCH("/users/:id", userHandler.Update)
	secured.DELETE("/users/:id", userHandler.Delete)

	secured.POST("/tags", tagHandler.Create)
	secured.DELETE("/tags/:name", tagHandler.Delete)

	secured.POST("/comments", commentHandler.Create)
	secured.PATCH("/comments/:id", commentHandler.Update)
	secured.DELETE("/comments/:id", commentHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
