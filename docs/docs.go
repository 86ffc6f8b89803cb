// Package docs registra a especificação OpenAPI servida em /swagger/*.
// Regenerar com: swag init -g cmd/main.go
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/register": {"post": {"tags": ["users"], "summary": "Registra um novo usuário",
            "parameters": [{"in": "body", "name": "registration", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/login": {"post": {"tags": ["users"], "summary": "Autentica um usuário e retorna um JWT",
            "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AuthResponse"}},
                "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/profile": {"get": {"tags": ["users"], "summary": "Perfil do usuário autenticado", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Profile"}},
                "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/categories": {"get": {"tags": ["services"], "summary": "Registro de categorias",
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Category"}}}}}},
        "/services": {
            "get": {"tags": ["services"], "summary": "Lista serviços do catálogo",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "subcategory", "in": "query"},
                    {"type": "string", "name": "location", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "number", "name": "price_min", "in": "query"},
                    {"type": "number", "name": "price_max", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query", "enum": ["recent", "rating", "price_asc", "price_desc"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ServiceListing"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}},
            "post": {"tags": ["services"], "summary": "Publica um serviço", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "service", "required": true, "schema": {"$ref": "#/definitions/domain.ServiceDraft"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Service"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}
        },
        "/services/featured": {"get": {"tags": ["services"], "summary": "Serviços em destaque",
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ServiceListing"}}}}}},
        "/services/{id}": {"get": {"tags": ["services"], "summary": "Detalhe de um serviço",
            "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ServiceDetail"}},
                "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/services/{id}/comments": {
            "get": {"tags": ["comments"], "summary": "Comentários de um serviço",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CommentView"}}}}},
            "post": {"tags": ["comments"], "summary": "Comenta e avalia um serviço", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "comment", "required": true, "schema": {"$ref": "#/definitions/domain.CommentDraft"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CommentView"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}
        },
        "/favorites": {
            "get": {"tags": ["favorites"], "summary": "Favoritos do usuário autenticado", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.FavoriteView"}}}}},
            "post": {"tags": ["favorites"], "summary": "Adiciona um serviço aos favoritos", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "favorite", "required": true, "schema": {"$ref": "#/definitions/domain.FavoriteRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.FavoriteView"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}
        },
        "/favorites/{serviceID}": {"delete": {"tags": ["favorites"], "summary": "Remove um serviço dos favoritos", "security": [{"BearerAuth": []}],
            "parameters": [{"type": "integer", "name": "serviceID", "in": "path", "required": true}],
            "responses": {"204": {"description": "No Content"},
                "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/reports": {"post": {"tags": ["reports"], "summary": "Denuncia um serviço ou comentário", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "body", "name": "report", "required": true, "schema": {"$ref": "#/definitions/domain.ReportDraft"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Report"}},
                "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/admin/reports": {"get": {"tags": ["reports"], "summary": "Lista as denúncias", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Report"}}},
                "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}}
    },
    "definitions": {
        "domain.ErrorResponse": {"type": "object", "properties": {
            "code": {"type": "integer", "example": 400},
            "category": {"type": "string", "example": "VALIDATION_ERROR"},
            "message": {"type": "string"}}},
        "domain.UserRegistration": {"type": "object", "properties": {
            "full_name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"},
            "role": {"type": "string", "enum": ["client", "provider"]},
            "country": {"type": "string"}, "city": {"type": "string"}, "phone": {"type": "string"}, "avatar": {"type": "string"}}},
        "domain.LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "domain.User": {"type": "object", "properties": {
            "id": {"type": "integer"}, "full_name": {"type": "string"}, "email": {"type": "string"},
            "role": {"type": "string"}, "country": {"type": "string"}, "city": {"type": "string"}, "phone": {"type": "string"},
            "registered_at": {"type": "string"}, "is_active": {"type": "boolean"}, "avatar": {"type": "string"}}},
        "domain.UserSummary": {"type": "object", "properties": {
            "id": {"type": "integer"}, "full_name": {"type": "string"}, "city": {"type": "string"},
            "country": {"type": "string"}, "avatar": {"type": "string"}}},
        "domain.UserDetail": {"type": "object", "properties": {
            "id": {"type": "integer"}, "full_name": {"type": "string"}, "city": {"type": "string"},
            "country": {"type": "string"}, "avatar": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}}},
        "domain.AuthResponse": {"type": "object", "properties": {
            "token": {"type": "string"}, "role": {"type": "string"}, "user": {"$ref": "#/definitions/domain.UserDetail"}}},
        "domain.Category": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "icon": {"type": "string"}, "count": {"type": "integer"}}},
        "domain.Service": {"type": "object", "properties": {
            "id": {"type": "integer"}, "owner_id": {"type": "integer"}, "title": {"type": "string"}, "description": {"type": "string"},
            "category": {"type": "string"}, "subcategory": {"type": "string"}, "location": {"type": "string"},
            "estimated_price": {"type": "number"}, "schedule": {"type": "string"}, "available": {"type": "boolean"},
            "published_at": {"type": "string"}, "images": {"type": "array", "items": {"type": "string"}}}},
        "domain.ServiceDraft": {"type": "object", "properties": {
            "title": {"type": "string"}, "description": {"type": "string"}, "category": {"type": "string"},
            "subcategory": {"type": "string"}, "location": {"type": "string"}, "estimated_price": {"type": "number"},
            "schedule": {"type": "string"}, "available": {"type": "boolean"}, "images": {"type": "array", "items": {"type": "string"}}}},
        "domain.ServiceListing": {"allOf": [{"$ref": "#/definitions/domain.Service"}, {"type": "object", "properties": {
            "rating": {"type": "number"}, "owner": {"$ref": "#/definitions/domain.UserSummary"}}}]},
        "domain.ServiceDetail": {"allOf": [{"$ref": "#/definitions/domain.Service"}, {"type": "object", "properties": {
            "rating": {"type": "number"}, "owner": {"$ref": "#/definitions/domain.UserDetail"},
            "comments": {"type": "array", "items": {"$ref": "#/definitions/domain.CommentView"}}}}]},
        "domain.CommentDraft": {"type": "object", "properties": {"rating": {"type": "integer", "minimum": 1, "maximum": 5}, "body": {"type": "string"}}},
        "domain.CommentView": {"type": "object", "properties": {
            "id": {"type": "integer"}, "service_id": {"type": "integer"}, "author_id": {"type": "integer"},
            "rating": {"type": "integer"}, "body": {"type": "string"}, "created_at": {"type": "string"},
            "author": {"type": "object", "properties": {"id": {"type": "integer"}, "full_name": {"type": "string"}, "avatar": {"type": "string"}}}}},
        "domain.FavoriteRequest": {"type": "object", "properties": {"service_id": {"type": "integer"}}},
        "domain.FavoriteView": {"type": "object", "properties": {
            "id": {"type": "integer"}, "user_id": {"type": "integer"}, "service_id": {"type": "integer"},
            "created_at": {"type": "string"}, "service": {"$ref": "#/definitions/domain.ServiceListing"}}},
        "domain.Profile": {"allOf": [{"$ref": "#/definitions/domain.UserDetail"}, {"type": "object", "properties": {
            "role": {"type": "string"}, "registered_at": {"type": "string"}, "is_active": {"type": "boolean"},
            "services": {"type": "array", "items": {"$ref": "#/definitions/domain.ServiceListing"}},
            "favorites": {"type": "array", "items": {"$ref": "#/definitions/domain.FavoriteView"}}}}]},
        "domain.ReportDraft": {"type": "object", "properties": {
            "service_id": {"type": "integer"}, "comment_id": {"type": "integer"}, "reason": {"type": "string"}}},
        "domain.Report": {"type": "object", "properties": {
            "id": {"type": "integer"}, "reporter_id": {"type": "integer"}, "service_id": {"type": "integer"},
            "comment_id": {"type": "integer"}, "reason": {"type": "string"}, "created_at": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Servilink API",
	Description:      "Marketplace de serviços: catálogo, comentários, favoritos e denúncias.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
