// Package docs registers the OpenAPI document served under /swagger.
// It mirrors the godoc annotations on the handlers; regenerate it with
// `swag init -g cmd/api/main.go` after changing them.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/exports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Recent CSV downloads",
                "parameters": [
                    {"type": "integer", "description": "max entries (1-1000)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ExportLogResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/admin/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Drops the memoized dataset and loads the sheet again.",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Reload the sheet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RefreshResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/admin/views": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List saved views",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ViewListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Save the current filters as a named view",
                "parameters": [
                    {"description": "view", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateViewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ViewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/admin/views/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Delete a saved view",
                "parameters": [
                    {"type": "string", "description": "view id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/counts/{field}": {
            "get": {
                "description": "Record counts per distinct value of a column, highest first.",
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Bar chart panel",
                "parameters": [
                    {"type": "string", "description": "column name, e.g. Category", "name": "field", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CountsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "description": "Map filters use plain names, heatmap filters the \"heat.\" prefix; repeat \"count\" to choose bar charts.",
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Full dashboard from query parameters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Renders markers, heatmap and bar charts for independent map and heatmap filters.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Full dashboard",
                "parameters": [
                    {"description": "filters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dashboard.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/export.csv": {
            "get": {
                "description": "Same filters as /api/markers, or a saved view's map filter with view=<id>.",
                "produces": ["text/csv"],
                "tags": ["Dashboard"],
                "summary": "Download filtered CSV",
                "parameters": [
                    {"type": "string", "description": "saved view id", "name": "view", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "CSV document", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "502": {"description": "sheet could not be loaded", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/heatmap": {
            "get": {
                "description": "Coordinates of the filtered records. Accepts the same filters as /api/markers plus radius.",
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Heatmap panel",
                "parameters": [
                    {"type": "integer", "description": "decay radius", "name": "radius", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HeatmapResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/markers": {
            "get": {
                "description": "One marker per filtered record. Filters: start, end (YYYY-MM-DD) and repeated Workshop, Version, Category, Solution values.",
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Marker map panel",
                "parameters": [
                    {"type": "string", "description": "first date, inclusive", "name": "start", "in": "query"},
                    {"type": "string", "description": "last date, inclusive", "name": "end", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "allowed categories", "name": "Category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MarkersResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/meta": {
            "get": {
                "description": "Columns, row count, date bounds, multi-select options and the color table.",
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Dataset metadata",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.Meta"}}
                }
            }
        },
        "/api/views/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Views"],
                "summary": "Load a saved view",
                "parameters": [
                    {"type": "string", "description": "view id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ViewResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/views/{id}/qr.png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["Views"],
                "summary": "QR code of a saved view's share link",
                "parameters": [
                    {"type": "string", "description": "view id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "edge length in pixels (128-1024)", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "PNG image", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"dataset_cached": {"type": "boolean"}, "status": {"type": "string"}}}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Exchanges username and password for a JWT used by the /admin routes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Log in",
                "parameters": [
                    {"description": "credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginSuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/signup": {
            "post": {
                "description": "Requires the X-Invite-Code header.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Create an admin account",
                "parameters": [
                    {"type": "string", "description": "signup invite code", "name": "X-Invite-Code", "in": "header", "required": true},
                    {"description": "credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SignupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/ws/dashboard": {
            "get": {
                "description": "Each text message is a JSON dashboard.Request; the server answers every message with a dashboard.Response.",
                "tags": ["WebSocket"],
                "summary": "Live dashboard over WebSocket",
                "responses": {
                    "101": {"description": "101 Switching Protocols", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dashboard.Meta": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "date_max": {"type": "string"},
                "date_min": {"type": "string"},
                "error": {"type": "string"},
                "options": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "palette": {"$ref": "#/definitions/palette.Palette"},
                "rows": {"type": "integer"}
            }
        },
        "dashboard.Request": {
            "type": "object",
            "properties": {
                "count_fields": {"type": "array", "items": {"type": "string"}},
                "heatmap": {"$ref": "#/definitions/models.FilterSpec"},
                "map": {"$ref": "#/definitions/models.FilterSpec"},
                "radius": {"type": "integer"}
            }
        },
        "dashboard.Response": {
            "type": "object",
            "properties": {
                "counts": {"type": "array", "items": {"$ref": "#/definitions/render.CountsPanel"}},
                "error": {"type": "string"},
                "heatmap": {"$ref": "#/definitions/render.HeatmapPanel"},
                "heatmap_rows": {"type": "integer"},
                "map_rows": {"type": "integer"},
                "markers": {"$ref": "#/definitions/render.MarkerPanel"},
                "total_rows": {"type": "integer"}
            }
        },
        "handler.CountsResponse": {"$ref": "#/definitions/render.CountsPanel"},
        "handler.CreateViewRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "count_fields": {"type": "array", "items": {"type": "string"}},
                "heatmap": {"$ref": "#/definitions/models.FilterSpec"},
                "map": {"$ref": "#/definitions/models.FilterSpec"},
                "name": {"type": "string", "example": "Parking, spring workshops"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid date \"01/02/2024\": want YYYY-MM-DD"}
            }
        },
        "handler.ExportLogResponse": {
            "type": "object",
            "properties": {
                "exports": {"type": "array", "items": {"$ref": "#/definitions/models.ExportEntry"}}
            }
        },
        "handler.HeatmapResponse": {"$ref": "#/definitions/render.HeatmapPanel"},
        "handler.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "password123"},
                "username": {"type": "string", "example": "facilitator"}
            }
        },
        "handler.LoginSuccessResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."}
            }
        },
        "handler.MarkersResponse": {"$ref": "#/definitions/render.MarkerPanel"},
        "handler.RefreshResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "refreshed": {"type": "boolean"},
                "rows": {"type": "integer"}
            }
        },
        "handler.SignupRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "password123"},
                "username": {"type": "string", "example": "facilitator"}
            }
        },
        "handler.SuccessResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "User created successfully"}
            }
        },
        "handler.ViewListResponse": {
            "type": "object",
            "properties": {
                "views": {"type": "array", "items": {"$ref": "#/definitions/handler.ViewResponse"}}
            }
        },
        "handler.ViewResponse": {
            "type": "object",
            "properties": {
                "count_fields": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "created_by": {"type": "string"},
                "heatmap": {"$ref": "#/definitions/models.FilterSpec"},
                "id": {"type": "string"},
                "map": {"$ref": "#/definitions/models.FilterSpec"},
                "name": {"type": "string"},
                "share_url": {"type": "string"}
            }
        },
        "models.DateRange": {
            "type": "object",
            "properties": {
                "end": {"type": "string", "example": "2024-06-30"},
                "start": {"type": "string", "example": "2024-01-01"}
            }
        },
        "models.ExportEntry": {
            "type": "object",
            "properties": {
                "client_ip": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "rows": {"type": "integer"},
                "view_id": {"type": "string"}
            }
        },
        "models.FilterSpec": {
            "type": "object",
            "properties": {
                "dates": {"$ref": "#/definitions/models.DateRange"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "palette.Palette": {
            "type": "object",
            "properties": {
                "colors": {"type": "object", "additionalProperties": {"type": "string"}},
                "fallback": {"type": "string"}
            }
        },
        "render.Count": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "value": {"type": "string"}
            }
        },
        "render.CountsPanel": {
            "type": "object",
            "properties": {
                "counts": {"type": "array", "items": {"$ref": "#/definitions/render.Count"}},
                "empty": {"type": "boolean"},
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "render.HeatmapPanel": {
            "type": "object",
            "properties": {
                "empty": {"type": "boolean"},
                "message": {"type": "string"},
                "points": {"type": "array", "items": {"type": "array", "items": {"type": "number"}}},
                "radius": {"type": "integer"}
            }
        },
        "render.Marker": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "label": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        },
        "render.MarkerPanel": {
            "type": "object",
            "properties": {
                "empty": {"type": "boolean"},
                "markers": {"type": "array", "items": {"$ref": "#/definitions/render.Marker"}},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Workshop Map Dashboard API",
	Description:      "Filters the participatory workshop sheet and serves map, heatmap, bar chart and CSV views of it.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
