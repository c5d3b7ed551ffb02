// Package docs especificación Swagger 2.0 de la API, servida en /docs.
//
// Se mantiene a partir de las anotaciones de los handlers (internal/interfaces/http)
// y de los DTOs. Al cambiar una anotación, regenerar con:
//
//	swag init -g cmd/api/main.go -o docs
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
        "/auth/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Iniciar sesión",
                "parameters": [
                    {
                        "description": "user_name, password",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Usuario autenticado",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.MeResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/users": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Crear usuario",
                "parameters": [
                    {
                        "description": "user_name, email, password, role",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateUserRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Listar usuarios",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.UserResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/clinics": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "clinics"
                ],
                "summary": "Listar clínicas",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.ClinicResponse"
                            }
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "clinics"
                ],
                "summary": "Crear clínica",
                "parameters": [
                    {
                        "description": "name",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/clinics/my-clinics": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Materiales distintos y cantidad total por clínica.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "clinics"
                ],
                "summary": "Resumen de clínicas",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.ClinicSummaryResponse"
                            }
                        }
                    }
                }
            }
        },
        "/clinics/{id}": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Stock ordenado por nombre de material (incluye cantidades en cero) y últimos movimientos.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "clinics"
                ],
                "summary": "Detalle de una clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicDetailResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "clinics"
                ],
                "summary": "Renombrar clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "name",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Elimina también su stock, movimientos y transacciones.",
                "tags": [
                    "clinics"
                ],
                "summary": "Eliminar clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/clinics/{id}/allocate": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Distribuir material de la bodega general a una clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "material_id, quantity, note",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicAllocateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AllocateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/clinics/{id}/consume": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Consumir material de una clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "material_id, quantity, note",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicConsumeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ConsumeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/clinics/{id}/movements": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Registro de movimientos de una clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Máximo de registros (1-100, por defecto 20)",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Desplazamiento",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StockMovementListResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "No modifica cantidades; solo elimina el historial.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Vaciar el registro de movimientos de una clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ClearMovementsResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/clinics/{id}/stock/add": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Descuenta de la bodega general y registra un movimiento Inbound en la clínica.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Entrada directa al inventario de una clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "material_id, quantity, note",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicAllocateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicStockResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/clinics/{id}/stock/{materialId}/open": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Marcar un material de la clínica como abierto o cerrado",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "ID del material",
                        "name": "materialId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "is_open",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicStockOpenRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ClinicStockResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/dashboard/clinic/{id}": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Stock con cantidad mayor a cero y los últimos 20 movimientos.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Detalle operativo de una clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.DashboardClinicDetail"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/dashboard/financial-summary": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Gasto en materiales",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Desde (YYYY-MM-DD)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Hasta (YYYY-MM-DD)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "clinic_id",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.DashboardFinancialSummary"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/financial-transactions": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Ordenadas por fecha de transacción y luego por creación, ambas descendentes.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "financial"
                ],
                "summary": "Listar transacciones",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "clinic_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Fecha (YYYY-MM-DD)",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.FinancialTransactionResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "financial"
                ],
                "summary": "Registrar ingreso o egreso",
                "parameters": [
                    {
                        "description": "clinic_id, transaction_type (Income|Expense), amount, description, transaction_date",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.FinancialTransactionCreateRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.FinancialTransactionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/financial-transactions/daily-balance": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "financial"
                ],
                "summary": "Balance diario de una clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "clinic_id",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Fecha (YYYY-MM-DD, por defecto hoy)",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.DailyBalanceResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/financial-transactions/daily-balance/pdf": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/pdf"
                ],
                "tags": [
                    "financial"
                ],
                "summary": "Balance diario en PDF",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "clinic_id",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Fecha (YYYY-MM-DD, por defecto hoy)",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/financial-transactions/dashboard": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Totales del rango, historial diario y desempeño por clínica. Por defecto el mes en curso.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "financial"
                ],
                "summary": "Resumen financiero",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Desde (YYYY-MM-DD)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Hasta (YYYY-MM-DD)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "ID de la clínica",
                        "name": "clinic_id",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FinancialDashboardSummary"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/financial-transactions/export": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": [
                    "financial"
                ],
                "summary": "Exportar transacciones a Excel",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la clínica (vacío = todas)",
                        "name": "clinic_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Desde (YYYY-MM-DD)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Hasta (YYYY-MM-DD)",
                        "name": "end_date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/financial-transactions/{id}": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "financial"
                ],
                "summary": "Obtener transacción",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la transacción",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FinancialTransactionResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Solo el usuario que la creó o un Master.",
                "tags": [
                    "financial"
                ],
                "summary": "Eliminar transacción",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la transacción",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/materials": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Si trae cantidad registra un movimiento de entrada \"Stock inicial\" en la bodega general.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Crear material",
                "parameters": [
                    {
                        "description": "name, category, quantity, cost, total",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.MaterialCreateRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.MaterialResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Listar materiales",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Incluye cantidad distribuida y estado abierto por clínica",
                        "name": "with_open_status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.MaterialResponse"
                            }
                        }
                    }
                }
            }
        },
        "/materials/batch": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Todo o nada: si un ítem falla no se guarda ninguno y se listan los errores por ítem.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Crear materiales en lote",
                "parameters": [
                    {
                        "description": "materials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.MaterialCreateBatchRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.MaterialResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/materials/by-category/{category}": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Materiales de una categoría",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Nombre o número de la categoría",
                        "name": "category",
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
                                "$ref": "#/definitions/dto.MaterialResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/materials/categories": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Categorías de materiales",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.CategoryResponse"
                            }
                        }
                    }
                }
            }
        },
        "/materials/summary": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Stock general por material",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.MaterialGeneralStockResponse"
                            }
                        }
                    }
                }
            }
        },
        "/materials/{id}": {
            "put": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Un cambio de cantidad queda registrado como movimiento de la bodega general.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Actualizar material (administrativo)",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID del material",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "name, category, quantity, cost",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.MaterialUpdateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.MaterialResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Obtener material",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID del material",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.MaterialResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Eliminar material",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID del material",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/materials/{id}/add-stock": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Reemplaza el costo unitario y actualiza los datos de la última entrada.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Agregar cantidad a un material de la bodega general",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID del material",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "quantity, cost, total",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.MaterialAdjustQuantityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.MaterialResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/materials/{id}/assign-to-clinic": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "materials"
                ],
                "summary": "Asignar material de la bodega general a una clínica",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID del material",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "clinic_id, quantity",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.MaterialAssignToClinicRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AssignToClinicResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/stock-movements/{id}": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "inventory"
                ],
                "summary": "Obtener un movimiento de stock",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID del movimiento",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StockMovementResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.AllocateResponse": {
            "type": "object",
            "properties": {
                "material": {
                    "$ref": "#/definitions/dto.MaterialResponse"
                },
                "clinic_stock": {
                    "$ref": "#/definitions/dto.ClinicStockResponse"
                }
            }
        },
        "dto.AssignToClinicResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "warehouse_quantity": {
                    "type": "integer"
                },
                "clinic_quantity": {
                    "type": "integer"
                }
            }
        },
        "dto.CategoryResponse": {
            "type": "object",
            "properties": {
                "value": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "dto.ClearMovementsResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "deleted": {
                    "type": "integer"
                }
            }
        },
        "dto.ClinicAllocateRequest": {
            "type": "object",
            "properties": {
                "material_id": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "note": {
                    "type": "string"
                }
            }
        },
        "dto.ClinicConsumeRequest": {
            "type": "object",
            "properties": {
                "material_id": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "note": {
                    "type": "string"
                }
            }
        },
        "dto.ClinicDetailResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "stocks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ClinicStockResponse"
                    }
                },
                "movements": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.StockMovementResponse"
                    }
                }
            }
        },
        "dto.ClinicExpense": {
            "type": "object",
            "properties": {
                "clinic_id": {
                    "type": "string"
                },
                "clinic_name": {
                    "type": "string"
                },
                "total_spent": {
                    "type": "number"
                },
                "materials_added": {
                    "type": "integer"
                },
                "materials": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.MaterialExpense"
                    }
                }
            }
        },
        "dto.ClinicFinancialPerformance": {
            "type": "object",
            "properties": {
                "clinic_id": {
                    "type": "string"
                },
                "clinic_name": {
                    "type": "string"
                },
                "income": {
                    "type": "number"
                },
                "expense": {
                    "type": "number"
                },
                "balance": {
                    "type": "number"
                }
            }
        },
        "dto.ClinicRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                }
            }
        },
        "dto.ClinicResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "dto.ClinicStockOpenRequest": {
            "type": "object",
            "properties": {
                "is_open": {
                    "type": "boolean"
                }
            }
        },
        "dto.ClinicStockResponse": {
            "type": "object",
            "properties": {
                "material_id": {
                    "type": "string"
                },
                "material_name": {
                    "type": "string"
                },
                "quantity_available": {
                    "type": "integer"
                },
                "category": {
                    "type": "string"
                },
                "is_open": {
                    "type": "boolean"
                },
                "opened_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.ClinicSummaryResponse": {
            "type": "object",
            "properties": {
                "clinic_id": {
                    "type": "string"
                },
                "clinic_name": {
                    "type": "string"
                },
                "distinct_materials": {
                    "type": "integer"
                },
                "total_quantity": {
                    "type": "integer"
                }
            }
        },
        "dto.ConsumeResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "remaining_quantity": {
                    "type": "integer"
                }
            }
        },
        "dto.CreateUserRequest": {
            "type": "object",
            "properties": {
                "user_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                }
            }
        },
        "dto.DailyBalanceResponse": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string",
                    "format": "date-time"
                },
                "total_income": {
                    "type": "number"
                },
                "total_expenses": {
                    "type": "number"
                },
                "balance": {
                    "type": "number"
                },
                "transactions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.FinancialTransactionResponse"
                    }
                }
            }
        },
        "dto.DailyFinancialStats": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string",
                    "format": "date-time"
                },
                "income": {
                    "type": "number"
                },
                "expense": {
                    "type": "number"
                },
                "balance": {
                    "type": "number"
                }
            }
        },
        "dto.DashboardClinicDetail": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "stocks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ClinicStockResponse"
                    }
                },
                "recent_movements": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.StockMovementResponse"
                    }
                }
            }
        },
        "dto.DashboardFinancialSummary": {
            "type": "object",
            "properties": {
                "start_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "end_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "total_spent": {
                    "type": "number"
                },
                "total_materials_added": {
                    "type": "integer"
                },
                "clinic_expenses": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ClinicExpense"
                    }
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "dto.FinancialDashboardSummary": {
            "type": "object",
            "properties": {
                "start_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "end_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "total_income": {
                    "type": "number"
                },
                "total_expense": {
                    "type": "number"
                },
                "net_balance": {
                    "type": "number"
                },
                "daily_history": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.DailyFinancialStats"
                    }
                },
                "clinic_performance": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ClinicFinancialPerformance"
                    }
                }
            }
        },
        "dto.FinancialTransactionCreateRequest": {
            "type": "object",
            "properties": {
                "clinic_id": {
                    "type": "string"
                },
                "transaction_type": {
                    "type": "string"
                },
                "amount": {
                    "type": "number"
                },
                "description": {
                    "type": "string"
                },
                "transaction_date": {
                    "type": "string"
                }
            }
        },
        "dto.FinancialTransactionResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "clinic_id": {
                    "type": "string"
                },
                "clinic_name": {
                    "type": "string"
                },
                "transaction_type": {
                    "type": "string"
                },
                "amount": {
                    "type": "number"
                },
                "description": {
                    "type": "string"
                },
                "transaction_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_by_user_id": {
                    "type": "string"
                },
                "created_by_user_name": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "user_name": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "user_name": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                }
            }
        },
        "dto.MaterialAdjustQuantityRequest": {
            "type": "object",
            "properties": {
                "quantity": {
                    "type": "integer"
                },
                "cost": {
                    "type": "number"
                },
                "total": {
                    "type": "number"
                }
            }
        },
        "dto.MaterialAssignToClinicRequest": {
            "type": "object",
            "properties": {
                "clinic_id": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                }
            }
        },
        "dto.MaterialClinicStockResponse": {
            "type": "object",
            "properties": {
                "clinic_id": {
                    "type": "string"
                },
                "clinic_name": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                }
            }
        },
        "dto.MaterialCreateBatchRequest": {
            "type": "object",
            "properties": {
                "materials": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.MaterialCreateRequest"
                    }
                }
            }
        },
        "dto.MaterialCreateRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "cost": {
                    "type": "number"
                },
                "total": {
                    "type": "number"
                }
            }
        },
        "dto.MaterialExpense": {
            "type": "object",
            "properties": {
                "material_name": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "quantity_added": {
                    "type": "integer"
                },
                "total_cost": {
                    "type": "number"
                },
                "last_added": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.MaterialGeneralStockResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "warehouse_quantity": {
                    "type": "integer"
                },
                "total_clinic_quantity": {
                    "type": "integer"
                },
                "cost": {
                    "type": "number"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "last_added_quantity": {
                    "type": "integer"
                },
                "last_added_total": {
                    "type": "number"
                },
                "clinics": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.MaterialClinicStockResponse"
                    }
                }
            }
        },
        "dto.MaterialResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "cost": {
                    "type": "number"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "last_added_quantity": {
                    "type": "integer"
                },
                "last_added_total": {
                    "type": "number"
                },
                "last_added_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.MaterialUpdateRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "cost": {
                    "type": "number"
                }
            }
        },
        "dto.MeResponse": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "user_name": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                }
            }
        },
        "dto.PageResponse": {
            "type": "object",
            "properties": {
                "limit": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "dto.StockMovementListResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.StockMovementResponse"
                    }
                },
                "page": {
                    "$ref": "#/definitions/dto.PageResponse"
                }
            }
        },
        "dto.StockMovementResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "clinic_id": {
                    "type": "string"
                },
                "material_id": {
                    "type": "string"
                },
                "material_name": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "movement_type": {
                    "type": "string"
                },
                "performed_by": {
                    "type": "string"
                },
                "performed_by_name": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "note": {
                    "type": "string"
                }
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "user_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Token JWT con el prefijo \"Bearer \"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo metadatos de la especificación; cmd/api la sirve con ReadDoc.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Dental Inventory API",
	Description:      "Inventario multi-clínica de materiales odontológicos y libro de ingresos y egresos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
