package shopapi

import (
	"github.com/talkincode/toughstore/internal/app"
	"github.com/talkincode/toughstore/internal/service"
)

var (
	orderService    *service.OrderService
	productService  *service.ProductService
	categoryService *service.CategoryService
	brandService    *service.BrandService
	cartService     *service.CartService
	userService     *service.UserService
	authService     *service.AuthService
)

// Init wires the services to the application context and registers
// every route on the web server. Must run after webserver.Init.
func Init(appc app.AppContext) {
	db := appc.DB()
	cfg := appc.Config()

	orderService = service.NewOrderService(db, appc.Bus())
	productService = service.NewProductService(db)
	categoryService = service.NewCategoryService(db)
	brandService = service.NewBrandService(db)
	cartService = service.NewCartService(db)
	userService = service.NewUserService(db)
	authService = service.NewAuthService(db, cfg.Web.Secret, cfg.System.Appid)

	registerAuthRoutes()
	registerOrderRoutes()
	registerProductRoutes()
	registerCategoryRoutes()
	registerBrandRoutes()
	registerCartRoutes()
	registerUserRoutes()
}
