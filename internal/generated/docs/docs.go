// Package docs registers the service's OpenAPI document with swag so the
// swagger UI can serve it under /swagger/.
package docs

import (
	"scheduler/internal/generated/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Scheduler Service",
	Description:      "Schedules the automatic database export and runs persisted jobs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  servers.RawSpec(),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
