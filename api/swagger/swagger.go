package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Booking API",
        "description": "Appointment booking engine with per-barber schedules and open-day calendars",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Bookings", "description": "Booking admission and lifecycle"},
        {"name": "Availability", "description": "Slot calendars"},
        {"name": "Barbers", "description": "Barbers and working hours"},
        {"name": "DayOffs", "description": "Full-day booking blocks"},
        {"name": "OpenDays", "description": "Explicitly opened booking days"},
        {"name": "Auth", "description": "Authentication"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and receive an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/bookings": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Submit a booking request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Outside working hours or invalid payload"},
                    "409": {"description": "Slot already taken"}
                }
            }
        },
        "/barbers": {
            "get": {
                "tags": ["Barbers"],
                "summary": "List barbers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/barbers/{id}/slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "List a barber's slots for a date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/open-days": {
            "get": {
                "tags": ["OpenDays"],
                "summary": "List upcoming open days",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/open-days/{date}/times": {
            "get": {
                "tags": ["OpenDays"],
                "summary": "List free times on an open day",
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Day is not open"}
                }
            }
        },
        "/dayoffs": {
            "get": {
                "tags": ["DayOffs"],
                "summary": "List day offs",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List bookings",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "barberId", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/bookings/manual": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Create a booking on behalf of a customer",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot already taken"}
                }
            }
        },
        "/admin/bookings/export": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Download the booking schedule for a date",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/admin/bookings/{id}/approve": {
            "patch": {
                "tags": ["Bookings"],
                "summary": "Approve a pending booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Booking is not pending"}
                }
            }
        },
        "/admin/bookings/{id}/reject": {
            "patch": {
                "tags": ["Bookings"],
                "summary": "Reject a booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RejectBookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/bookings/{id}/reschedule": {
            "patch": {
                "tags": ["Bookings"],
                "summary": "Move a booking to a new slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RescheduleBookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Target slot already taken"}
                }
            }
        },
        "/admin/bookings/{id}": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Get a booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Bookings"],
                "summary": "Delete a booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/admin/dayoffs": {
            "post": {
                "tags": ["DayOffs"],
                "summary": "Block a day for booking",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDayOffRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Day off already exists"}
                }
            }
        },
        "/admin/open-days": {
            "post": {
                "tags": ["OpenDays"],
                "summary": "Open a day for booking",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OpenDayRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Sundays cannot be opened"}
                }
            }
        },
        "/admin/barbers/{id}/work-hours": {
            "put": {
                "tags": ["Barbers"],
                "summary": "Replace a barber's working-hours policy",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WorkHoursRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Booking": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "barber_id": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "service": {"type": "string"},
                "comment": {"type": "string"},
                "send_reminder": {"type": "boolean"},
                "reminder_sent": {"type": "boolean"},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected", "completed"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "CreateBookingRequest": {
            "type": "object",
            "properties": {
                "barber_id": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "service": {"type": "string"},
                "comment": {"type": "string"},
                "send_reminder": {"type": "boolean"}
            },
            "required": ["date", "time", "full_name", "email", "phone", "service"]
        },
        "RejectBookingRequest": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"},
                "alternatives": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SlotAlternative"}
                }
            },
            "required": ["reason"]
        },
        "RescheduleBookingRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "time": {"type": "string"}
            },
            "required": ["date", "time"]
        },
        "SlotAlternative": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "CreateDayOffRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "barber_id": {"type": "string"},
                "reason": {"type": "string"}
            },
            "required": ["date"]
        },
        "OpenDayRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "times": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["date"]
        },
        "WorkHoursRequest": {
            "type": "object",
            "properties": {
                "start_hour": {"type": "integer"},
                "end_hour": {"type": "integer"},
                "wednesday_start": {"type": "integer"},
                "lunch_break": {"type": "boolean"},
                "slot_interval_minutes": {"type": "integer"},
                "accepts_online_booking": {"type": "boolean"}
            },
            "required": ["start_hour", "end_hour"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
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
