package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughstore/internal/service"
	"github.com/talkincode/toughstore/internal/webserver"
)

func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiGET("/categories/:id", getCategory)
	webserver.ApiGET("/categories/:id/children", listCategoryChildren)
	webserver.ApiPOST("/categories", createCategory)
	webserver.ApiPUT("/categories/:id", updateCategory)
	webserver.ApiDELETE("/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	categories, err := categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, categories)
}

func getCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	category, err := categoryService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, category)
}

func listCategoryChildren(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	children, err := categoryService.ListChildren(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, children)
}

func createCategory(c echo.Context) error {
	var payload service.CategoryInput
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse category")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}
	category, err := categoryService.CreateCategory(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Created(c, category)
}

func updateCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var payload service.CategoryInput
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse category")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}
	category, err := categoryService.UpdateCategory(c.Request().Context(), id, payload)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, category)
}

func deleteCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := categoryService.DeleteCategory(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}
