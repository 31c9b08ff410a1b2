// Package docs registra la especificación OpenAPI de la API para swag y el middleware de Swagger UI.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var doc string

// SwaggerInfo nombre y ruta con que se publica el documento.
var SwaggerInfo = struct {
	Name     string
	FilePath string
}{
	Name:     swag.Name,
	FilePath: "./docs/swagger.json",
}

type openAPI struct{}

func (openAPI) ReadDoc() string { return doc }

func init() {
	swag.Register(SwaggerInfo.Name, openAPI{})
}
