package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughstore/internal/service"
	"github.com/talkincode/toughstore/internal/webserver"
)

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/search", searchProducts)
	webserver.ApiGET("/products/featured", listFeaturedProducts)
	webserver.ApiGET("/products/category/:id", listProductsByCategory)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	products, err := productService.ListProducts(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, products)
}

func searchProducts(c echo.Context) error {
	products, err := productService.SearchProducts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, products)
}

func listFeaturedProducts(c echo.Context) error {
	products, err := productService.ListFeaturedProducts(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, products)
}

func listProductsByCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	products, err := productService.ListProductsByCategory(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, products)
}

func getProduct(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	product, err := productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, product)
}

func createProduct(c echo.Context) error {
	var payload service.ProductInput
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse product")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}
	product, err := productService.CreateProduct(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Created(c, product)
}

func updateProduct(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var payload service.ProductInput
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse product")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}
	product, err := productService.UpdateProduct(c.Request().Context(), id, payload)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, product)
}

func deleteProduct(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := productService.DeleteProduct(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}
