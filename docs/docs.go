// Package docs registra o documento OpenAPI servido em /swagger (modo debug).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/barbers": {
            "get": {
                "tags": ["public"],
                "summary": "Lista barbearias (modo single devolve só a configurada)",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/barbers/{slug}": {
            "get": {
                "tags": ["public"],
                "summary": "Perfil, serviços ativos e galeria",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "barber_not_found"}}
            }
        },
        "/api/availability/dates": {
            "get": {
                "tags": ["public"],
                "summary": "Datas com pelo menos um horário livre",
                "parameters": [
                    {"type": "string", "name": "barber_id", "in": "query", "required": true},
                    {"type": "string", "name": "service_id", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/availability/slots": {
            "get": {
                "tags": ["public"],
                "summary": "Horários livres de uma data",
                "parameters": [
                    {"type": "string", "name": "barber_id", "in": "query", "required": true},
                    {"type": "string", "name": "service_id", "in": "query", "required": true},
                    {"type": "string", "name": "date", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "invalid_date"}}
            }
        },
        "/api/bookings": {
            "post": {
                "tags": ["public"],
                "summary": "Cria agendamento",
                "consumes": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "slot_unavailable"}}
            }
        },
        "/api/bookings/{id}": {
            "get": {
                "tags": ["public"],
                "summary": "Consulta agendamento pelo token de cancelamento",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "token", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "booking_not_found"}}
            }
        },
        "/api/bookings/{id}/cancel": {
            "post": {
                "tags": ["public"],
                "summary": "Cancela com token (até 24h antes)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "cancellation_window_passed"}}
            }
        },
        "/api/notifications/subscribe": {
            "post": {
                "tags": ["public"],
                "summary": "Inscreve e-mail para aviso de horário liberado",
                "responses": {"200": {"description": "OK"}, "201": {"description": "Created"}}
            }
        },
        "/api/payments/checkout": {
            "post": {
                "tags": ["payments"],
                "summary": "Gera link de pagamento",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/payments/webhook": {
            "post": {
                "tags": ["payments"],
                "summary": "Notificação do Mercado Pago",
                "responses": {"200": {"description": "OK"}, "400": {"description": "invalid_signature"}}
            }
        }
    },
    "definitions": {
        "CreateBookingRequest": {
            "type": "object",
            "required": ["barber_id", "service_id", "starts_at", "customer_name", "customer_email", "customer_phone", "location_type", "payment_method"],
            "properties": {
                "barber_id": {"type": "string"},
                "service_id": {"type": "string"},
                "starts_at": {"type": "string", "format": "date-time"},
                "ends_at": {"type": "string", "format": "date-time"},
                "customer_name": {"type": "string"},
                "customer_email": {"type": "string"},
                "customer_phone": {"type": "string"},
                "customer_address": {"type": "string"},
                "location_type": {"type": "string", "enum": ["in-shop", "home-visit"]},
                "payment_method": {"type": "string", "enum": ["on-site", "online"]}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "barber-booking API",
	Description:      "Agendamento online para barbearias.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
