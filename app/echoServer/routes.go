package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/activity"
	"github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/auth"
	"github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/book"
	"github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/borrow"
	"github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/category"
	"github.com/vanchien2973/MidAssignment-sub000/app/echoServer/jwtx"
)

type C struct {
	Auth     *auth.Controller
	Book     *book.Controller
	Category *category.Controller
	Borrow   *borrow.Controller
	Activity *activity.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Authenticated
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id/role extraction for downstream handlers
	authed.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, err := jwtx.RoleFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			ctx.Set("role", role)
			return next(ctx)
		}
	})

	// Books
	authed.GET("/books", c.Book.List)
	authed.GET("/books/:id", c.Book.Detail)
	authed.POST("/books", c.Book.Create)
	authed.PUT("/books/:id", c.Book.Update)
	authed.POST("/books/:id/copies", c.Book.AddCopies)

	// Categories
	authed.GET("/categories", c.Category.List)
	authed.POST("/categories", c.Category.Create)
	authed.DELETE("/categories/:id", c.Category.Delete)

	// Borrowing requests
	authed.POST("/requests", c.Borrow.Create)
	authed.GET("/requests/my", c.Borrow.My)
	authed.GET("/requests", c.Borrow.List)
	authed.GET("/requests/:id", c.Borrow.Detail)
	authed.POST("/requests/:id/status", c.Borrow.UpdateStatus)
	authed.POST("/details/:id/extend", c.Borrow.Extend)
	authed.POST("/details/:id/return", c.Borrow.Return)
	authed.GET("/details/overdue", c.Borrow.Overdue)

	// Users & audit
	authed.GET("/users", c.Auth.ListUsers)
	authed.PUT("/users/:id/role", c.Auth.SetRole)
	authed.GET("/activities", c.Activity.List)
}
