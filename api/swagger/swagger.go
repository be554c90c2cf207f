package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "Education Portal API", "description": "Scholarships, study destinations and editorial content with an administrator console", "version": "1.0.0"},
    "basePath": "/",
    "schemes": ["http"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [{"name": "Scholarships"}, {"name": "Articles"}, {"name": "Countries"}, {"name": "Universities"}, {"name": "News"}, {"name": "Menu"}, {"name": "Search"}, {"name": "Authentication"}, {"name": "Admin"}, {"name": "Users"}, {"name": "Export"}, {"name": "System"}],
    "paths": {
        "/health": {
            "get": {"tags": ["System"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["System"], "summary": "Readiness check", "responses": {"200": {"description": "Ready"}, "503": {"description": "Database unreachable"}}}
        },
        "/metrics": {
            "get": {"tags": ["System"], "summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/scholarships": {
            "get": {"tags": ["Scholarships"], "summary": "List scholarships", "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "country", "in": "query", "type": "string"}, {"name": "tag", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/scholarships/{slug}": {
            "get": {"tags": ["Scholarships"], "summary": "Get scholarship by slug", "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/articles": {
            "get": {"tags": ["Articles"], "summary": "List articles", "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/articles/{slug}": {
            "get": {"tags": ["Articles"], "summary": "Get article by slug", "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/countries": {
            "get": {"tags": ["Countries"], "summary": "List countries", "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/countries/{slug}": {
            "get": {"tags": ["Countries"], "summary": "Country detail with universities and scholarships", "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/universities": {
            "get": {"tags": ["Universities"], "summary": "List universities", "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "country", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/universities/{slug}": {
            "get": {"tags": ["Universities"], "summary": "Get university by slug", "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/news": {
            "get": {"tags": ["News"], "summary": "List news", "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "featured", "in": "query", "type": "boolean"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/news/{slug}": {
            "get": {"tags": ["News"], "summary": "Get news by slug", "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/news/featured": {
            "get": {"tags": ["News"], "summary": "Featured news", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/menu": {
            "get": {"tags": ["Menu"], "summary": "Navigation menu", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/search": {
            "get": {"tags": ["Search"], "summary": "Search all collections", "description": "Case-insensitive substring match partitioned by collection. An empty query returns everything.", "parameters": [{"name": "q", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/login": {
            "post": {"tags": ["Authentication"], "summary": "Authenticate user", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/refresh": {
            "post": {"tags": ["Authentication"], "summary": "Refresh access token", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/logout": {
            "post": {"tags": ["Authentication"], "summary": "Revoke refresh token", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/change-password": {
            "post": {"tags": ["Authentication"], "summary": "Change password", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/me": {
            "get": {"tags": ["Authentication"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/scholarships": {
            "get": {"tags": ["Admin"], "summary": "List scholarships", "security": [{"BearerAuth": []}], "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "country", "in": "query", "type": "string"}, {"name": "tag", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Admin"], "summary": "Create scholarship", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScholarshipRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/scholarships/{id}": {
            "get": {"tags": ["Admin"], "summary": "Get scholarship", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Admin"], "summary": "Replace scholarship", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScholarshipRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Admin"], "summary": "Delete scholarship", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/articles": {
            "get": {"tags": ["Admin"], "summary": "List articles", "security": [{"BearerAuth": []}], "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Admin"], "summary": "Create article", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ArticleRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/articles/{id}": {
            "get": {"tags": ["Admin"], "summary": "Get article", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Admin"], "summary": "Replace article", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ArticleRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Admin"], "summary": "Delete article", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/countries": {
            "get": {"tags": ["Admin"], "summary": "List countries", "security": [{"BearerAuth": []}], "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Admin"], "summary": "Create country", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CountryRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/countries/{id}": {
            "get": {"tags": ["Admin"], "summary": "Get country", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Admin"], "summary": "Replace country", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CountryRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Admin"], "summary": "Delete country", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/universities": {
            "get": {"tags": ["Admin"], "summary": "List universities", "security": [{"BearerAuth": []}], "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "country", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Admin"], "summary": "Create university", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UniversityRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/universities/{id}": {
            "get": {"tags": ["Admin"], "summary": "Get university", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Admin"], "summary": "Replace university", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UniversityRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Admin"], "summary": "Delete university", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/news": {
            "get": {"tags": ["Admin"], "summary": "List news", "security": [{"BearerAuth": []}], "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "featured", "in": "query", "type": "boolean"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Admin"], "summary": "Create news", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewsRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/news/{id}": {
            "get": {"tags": ["Admin"], "summary": "Get news", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Admin"], "summary": "Replace news", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewsRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Admin"], "summary": "Delete news", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/menu": {
            "get": {"tags": ["Admin"], "summary": "List menu", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Admin"], "summary": "Create menu", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MenuRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/menu/{id}": {
            "get": {"tags": ["Admin"], "summary": "Get menu", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Admin"], "summary": "Replace menu", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MenuRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Admin"], "summary": "Delete menu", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/users": {
            "get": {"tags": ["Users"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Users"], "summary": "Create user", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Slug conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/users/{id}": {
            "delete": {"tags": ["Users"], "summary": "Delete user", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/admin/export/{collection}": {
            "get": {"tags": ["Export"], "summary": "Export a collection", "security": [{"BearerAuth": []}], "produces": ["text/csv", "application/pdf"], "parameters": [{"name": "collection", "in": "path", "required": true, "type": "string", "enum": ["scholarships", "articles", "countries", "universities", "news", "menu"]}, {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}], "responses": {"200": {"description": "File download", "schema": {"type": "file"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        }
    },
    "definitions": {
        "LoginRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "RefreshTokenRequest": {"type": "object", "required": ["refreshToken"], "properties": {"refreshToken": {"type": "string"}}},
        "ChangePasswordRequest": {"type": "object", "required": ["oldPassword", "newPassword"], "properties": {"oldPassword": {"type": "string"}, "newPassword": {"type": "string", "minLength": 8}}},
        "CreateUserRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string", "minLength": 8}, "isAdmin": {"type": "boolean"}}},
        "ScholarshipRequest": {"type": "object", "required": ["title", "description", "amount", "deadline", "country"], "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "amount": {"type": "string"}, "deadline": {"type": "string"}, "country": {"type": "string"}, "tags": {"type": "array", "items": {"type": "string"}}, "slug": {"type": "string"}}},
        "ArticleRequest": {"type": "object", "required": ["title", "content", "summary"], "properties": {"title": {"type": "string"}, "content": {"type": "string"}, "summary": {"type": "string"}, "author": {"type": "string"}, "category": {"type": "string"}, "publishDate": {"type": "string", "format": "date-time"}, "slug": {"type": "string"}}},
        "CountryRequest": {"type": "object", "required": ["name", "description"], "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "universities": {"type": "integer", "minimum": 0}, "acceptanceRate": {"type": "number", "minimum": 0, "maximum": 100}, "slug": {"type": "string"}}},
        "UniversityRequest": {"type": "object", "required": ["name", "description", "country"], "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "country": {"type": "string"}, "ranking": {"type": "integer", "minimum": 1}, "features": {"type": "array", "items": {"type": "string"}}, "slug": {"type": "string"}}},
        "NewsRequest": {"type": "object", "required": ["title", "content", "summary"], "properties": {"title": {"type": "string"}, "content": {"type": "string"}, "summary": {"type": "string"}, "category": {"type": "string"}, "isFeatured": {"type": "boolean"}, "publishDate": {"type": "string", "format": "date-time"}, "slug": {"type": "string"}}},
        "MenuItem": {"type": "object", "required": ["title", "url"], "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "url": {"type": "string"}}},
        "MenuRequest": {"type": "object", "required": ["title", "url"], "properties": {"title": {"type": "string"}, "url": {"type": "string"}, "position": {"type": "integer", "minimum": 0}, "children": {"type": "array", "items": {"$ref": "#/definitions/MenuItem"}}}},
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "pageSize": {"type": "integer"}, "totalCount": {"type": "integer"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}, "fields": {"type": "array", "items": {"type": "string"}}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "meta": {"type": "object"}}}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
