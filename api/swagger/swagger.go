package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "RoboReach Site API",
        "description": "Marketing and donations API for a robotics education nonprofit",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Admin login and identity"},
        {"name": "Content", "description": "Site content management"},
        {"name": "Proposals", "description": "Robotics program proposals"},
        {"name": "Templates", "description": "Proposal template documents"},
        {"name": "Donations", "description": "Supporter contributions"},
        {"name": "Stats", "description": "Dashboard aggregates"},
        {"name": "Settings", "description": "Key/value site settings"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/projects": {
            "get": {
                "tags": ["Content"],
                "summary": "List visible projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/universities": {
            "get": {
                "tags": ["Content"],
                "summary": "List partner universities (id and name only)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/proposals": {
            "post": {
                "tags": ["Proposals"],
                "summary": "Submit a proposal",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitProposalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/templates/download": {
            "get": {
                "tags": ["Templates"],
                "summary": "Download the current proposal template",
                "produces": ["application/octet-stream"],
                "responses": {
                    "200": {"description": "Template document"},
                    "404": {"description": "No active template"}
                }
            }
        },
        "/api/v1/donations": {
            "post": {
                "tags": ["Donations"],
                "summary": "Record a donation",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDonationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/donations/total": {
            "get": {
                "tags": ["Donations"],
                "summary": "Completed donation totals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Dashboard aggregates",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SubmitProposalRequest": {
            "type": "object",
            "required": ["title", "description", "university", "contact_email"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "university": {"type": "string"},
                "contact_email": {"type": "string"}
            }
        },
        "CreateDonationRequest": {
            "type": "object",
            "required": ["amount", "donation_type"],
            "properties": {
                "amount": {"type": "integer"},
                "currency": {"type": "string"},
                "name": {"type": "string"},
                "message": {"type": "string"},
                "donation_type": {"type": "string", "enum": ["one_time", "monthly"]},
                "anonymous": {"type": "boolean"},
                "payment_provider": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
