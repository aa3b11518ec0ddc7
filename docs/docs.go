// Package docs registers the Swagger document served under /swagger.
// Keep it in step with the handler annotations.
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
        "/api/login": {
            "post": {
                "description": "Authenticate user and return an access token",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Authentication"
                ],
                "summary": "Login user",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/milestones/auto-distribute": {
            "post": {
                "description": "Milestones 1..n-1 get total/n rounded to 2 places; the last one takes the remainder.\nA zero total or zero milestone count leaves the quantities unchanged.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "milestones"
                ],
                "summary": "Split a component's total quantity evenly across its milestones",
                "parameters": [
                    {
                        "description": "Component",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.ComponentPayload"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.AutoDistributeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/models.FieldErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/milestones/periods": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "milestones"
                ],
                "summary": "List work periods and their milestone counts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.PeriodOption"
                            }
                        }
                    }
                }
            }
        },
        "/api/milestones/validate": {
            "post": {
                "description": "mode=live uses a 0.0001 tolerance; mode=submit allows 1% of the total (at least 0.01)\nand requires every applicable milestone.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "milestones"
                ],
                "summary": "Check that milestone quantities reconcile with the total",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "live",
                            "submit"
                        ],
                        "description": "live or submit",
                        "name": "mode",
                        "in": "query",
                        "required": false
                    },
                    {
                        "description": "Component",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.ComponentPayload"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.ValidationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/units": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "units"
                ],
                "summary": "List units",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.Unit"
                            }
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "units"
                ],
                "summary": "Create unit",
                "parameters": [
                    {
                        "description": "Unit",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Unit"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.Unit"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/units/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "units"
                ],
                "summary": "Get unit by ID",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Unit ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Unit"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "units"
                ],
                "summary": "Update unit",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Unit ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Unit",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Unit"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Unit"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "units"
                ],
                "summary": "Delete unit",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Unit ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                }
            }
        },
        "/api/works": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "works"
                ],
                "summary": "List work packages",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "description": "Page size (max 100)",
                        "name": "page_size",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "works"
                ],
                "summary": "Create a work package with its components and milestones",
                "parameters": [
                    {
                        "description": "Work package",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.WorkPackageRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.CreatedResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/models.FieldErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/works/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "works"
                ],
                "summary": "Get work package by ID",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Work package ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.WorkPackageGorm"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "works"
                ],
                "summary": "Delete a work package and its components",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Work package ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/works/{id}/components": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "works"
                ],
                "summary": "List the components of a work package",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Work package ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.WorkComponentGorm"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "works"
                ],
                "summary": "Add components and milestones to a work package",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Work package ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Components",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.ComponentsRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.CreatedResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/models.FieldErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/works/{id}/export_excel": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": [
                    "export"
                ],
                "summary": "Export a work package as an Excel report",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Work package ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Excel file",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/works/{id}/pdf": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/pdf"
                ],
                "tags": [
                    "export"
                ],
                "summary": "Generate a PDF summary of a work package",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Work package ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "PDF file",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/works/{id}/qr": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "image/jpeg"
                ],
                "tags": [
                    "export"
                ],
                "summary": "Generate a labelled QR code for a work package",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Work package ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "JPEG image",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "models.AutoDistributeResponse": {
            "type": "object",
            "properties": {
                "component": {
                    "$ref": "#/definitions/models.ComponentPayload"
                },
                "validation": {
                    "$ref": "#/definitions/models.ValidationResponse"
                }
            }
        },
        "models.ComponentPayload": {
            "type": "object",
            "properties": {
                "componentname": {
                    "type": "string",
                    "example": "Canal lining"
                },
                "unit": {
                    "type": "string",
                    "example": "Cum"
                },
                "totalQty": {
                    "type": "string",
                    "example": "100.00"
                },
                "Numberofmilestone": {
                    "type": "integer",
                    "example": 3
                },
                "periodMonths": {
                    "type": "integer",
                    "example": 36
                },
                "milestone1_qty": {
                    "type": "string",
                    "example": "33.33"
                },
                "milestone2_qty": {
                    "type": "string",
                    "example": "33.33"
                },
                "milestone3_qty": {
                    "type": "string",
                    "example": "33.34"
                },
                "milestonedetails": {
                    "type": "string",
                    "example": "M1:33.33,M2:33.33,M3:33.34"
                }
            }
        },
        "models.ComponentsRequest": {
            "type": "object",
            "required": [
                "components"
            ],
            "properties": {
                "components": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.ComponentPayload"
                    }
                }
            }
        },
        "models.CreatedResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string",
                    "example": "Work package created successfully"
                },
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "ids": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "Invalid input"
                },
                "details": {
                    "type": "string",
                    "example": ""
                }
            }
        },
        "models.FieldErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "Milestone quantities do not reconcile"
                },
                "errors": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "required": [
                "email",
                "password"
            ],
            "properties": {
                "email": {
                    "type": "string",
                    "example": "user@example.com"
                },
                "password": {
                    "type": "string",
                    "example": "password"
                }
            }
        },
        "models.LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {
                    "type": "string",
                    "example": "eyJhbGciOiJIUzI1NiIs..."
                },
                "token_type": {
                    "type": "string",
                    "example": "Bearer"
                },
                "expires_in": {
                    "type": "integer",
                    "example": 900
                }
            }
        },
        "models.PeriodOption": {
            "type": "object",
            "properties": {
                "months": {
                    "type": "integer",
                    "example": 36
                },
                "milestones": {
                    "type": "integer",
                    "example": 3
                }
            }
        },
        "models.Unit": {
            "type": "object",
            "required": [
                "unit_name"
            ],
            "properties": {
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "unit_name": {
                    "type": "string",
                    "example": "Cum"
                },
                "description": {
                    "type": "string",
                    "example": "Cubic metre"
                }
            }
        },
        "models.ValidationResponse": {
            "type": "object",
            "properties": {
                "valid": {
                    "type": "boolean",
                    "example": false
                },
                "mode": {
                    "type": "string",
                    "example": "live"
                },
                "state": {
                    "type": "string",
                    "example": "fields_visible"
                },
                "sum": {
                    "type": "string",
                    "example": "99.99"
                },
                "tolerance": {
                    "type": "string",
                    "example": "0.0001"
                },
                "errors": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "models.WorkComponentGorm": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "work_package_id": {
                    "type": "integer"
                },
                "componentname": {
                    "type": "string"
                },
                "unit": {
                    "type": "string"
                },
                "totalQty": {
                    "type": "string"
                },
                "Numberofmilestone": {
                    "type": "integer"
                },
                "milestone1_qty": {
                    "type": "string"
                },
                "milestone2_qty": {
                    "type": "string"
                },
                "milestone3_qty": {
                    "type": "string"
                },
                "milestonedetails": {
                    "type": "string"
                },
                "milestones_reconciled": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.WorkPackageGorm": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "reference_code": {
                    "type": "string"
                },
                "work_name": {
                    "type": "string"
                },
                "scheme_name": {
                    "type": "string"
                },
                "district": {
                    "type": "string"
                },
                "division": {
                    "type": "string"
                },
                "wua_name": {
                    "type": "string"
                },
                "estimated_cost": {
                    "type": "string"
                },
                "period_months": {
                    "type": "integer"
                },
                "milestone_count": {
                    "type": "integer"
                },
                "start_date": {
                    "type": "string"
                },
                "created_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "components": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.WorkComponentGorm"
                    }
                }
            }
        },
        "models.WorkPackageRequest": {
            "type": "object",
            "required": [
                "work_name",
                "period_months",
                "components"
            ],
            "properties": {
                "work_name": {
                    "type": "string",
                    "example": "Minor canal rehabilitation"
                },
                "scheme_name": {
                    "type": "string",
                    "example": "Medium irrigation scheme"
                },
                "district": {
                    "type": "string",
                    "example": "Nashik"
                },
                "division": {
                    "type": "string",
                    "example": "Irrigation Division 2"
                },
                "wua_name": {
                    "type": "string",
                    "example": "Shivneri WUA"
                },
                "estimated_cost": {
                    "type": "string",
                    "example": "2500000.00"
                },
                "period_months": {
                    "type": "integer",
                    "example": 36
                },
                "start_date": {
                    "type": "string",
                    "example": "2026-04-01"
                },
                "components": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.ComponentPayload"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Schemes:          []string{"http", "https"},
	Title:            "Works MIS API",
	Description:      "Irrigation work packages with component milestone allocation and validation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
