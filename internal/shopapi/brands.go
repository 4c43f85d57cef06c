package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughstore/internal/service"
	"github.com/talkincode/toughstore/internal/webserver"
)

func registerBrandRoutes() {
	webserver.ApiGET("/brands", listBrands)
	webserver.ApiGET("/brands/:id", getBrand)
	webserver.ApiPOST("/brands", createBrand)
	webserver.ApiPUT("/brands/:id", updateBrand)
	webserver.ApiDELETE("/brands/:id", deleteBrand)
}

func listBrands(c echo.Context) error {
	brands, err := brandService.ListBrands(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, brands)
}

func getBrand(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	brand, err := brandService.GetBrand(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, brand)
}

func createBrand(c echo.Context) error {
	var payload service.BrandInput
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse brand")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}
	brand, err := brandService.CreateBrand(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Created(c, brand)
}

func updateBrand(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var payload service.BrandInput
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse brand")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}
	brand, err := brandService.UpdateBrand(c.Request().Context(), id, payload)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, brand)
}

func deleteBrand(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := brandService.DeleteBrand(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}
