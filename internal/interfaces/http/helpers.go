package http

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
)

// queryFilter decodifica el FilterState del query string. Si es inválido responde 400 y devuelve false.
func queryFilter(c *fiber.Ctx) (FilterState, bool, error) {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err == nil {
		var f FilterState
		if f, err = DecodeFilter(q); err == nil {
			return f, true, nil
		}
	}
	return FilterState{}, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: err.Error()})
}

func page(f FilterState, total int) dto.PageResponse {
	return dto.PageResponse{Page: f.Page, PageSize: f.PageSize, Total: total, Filter: f.Encode()}
}

func listOf[T any](items []T, f FilterState, total int) dto.ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return dto.ListResponse[T]{Items: items, Page: page(f, total)}
}

// indexParam lee un parámetro de ruta entero no negativo.
func indexParam(c *fiber.Ctx, name string) (int, bool, error) {
	n, err := strconv.Atoi(c.Params(name))
	if err != nil || n < 0 {
		return 0, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: name + " debe ser un entero no negativo"})
	}
	return n, true, nil
}
