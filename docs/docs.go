// Package docs holds the swagger document served at /swagger.
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
        "/health": {
            "get": {
                "tags": [
                    "system"
                ],
                "summary": "Health check",
                "produces": [
                    "application/json"
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
        "/auth/sign-up": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Sign up",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.authCredentials"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Sign in",
                "produces": [
                    "application/json"
                ],
                "description": "Returns a bearer token. Attempts are rate limited.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.authCredentials"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "429": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Dashboard",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Dashboard"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/incidents": {
            "get": {
                "tags": [
                    "incidents"
                ],
                "summary": "List incidents",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Severity",
                        "name": "severity",
                        "in": "query",
                        "enum": [
                            "critical",
                            "warning",
                            "info"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Status",
                        "name": "status",
                        "in": "query",
                        "enum": [
                            "open",
                            "investigating",
                            "resolved"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Search over id, title and assignee",
                        "name": "q",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/incidents/{id}": {
            "get": {
                "tags": [
                    "incidents"
                ],
                "summary": "Get incident",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Incident id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.IncidentDetail"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/incidents/{id}/report": {
            "get": {
                "tags": [
                    "incidents"
                ],
                "summary": "Export incident report",
                "produces": [
                    "text/plain"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Incident id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/incidents/{id}/execute": {
            "post": {
                "tags": [
                    "incidents"
                ],
                "summary": "Execute recommended solution",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Incident id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Notification"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/incidents/{id}/dialogs/{kind}": {
            "post": {
                "tags": [
                    "dialogs"
                ],
                "summary": "Open dialog",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Incident id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Dialog kind",
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "reassign",
                            "resolve",
                            "ticket",
                            "fix"
                        ]
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dialog.View"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/dialogs/{sid}": {
            "get": {
                "tags": [
                    "dialogs"
                ],
                "summary": "Get dialog",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Dialog session id",
                        "name": "sid",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dialog.View"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/dialogs/{sid}/submit": {
            "post": {
                "tags": [
                    "dialogs"
                ],
                "summary": "Submit dialog",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Dialog session id",
                        "name": "sid",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dialog.Outcome"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/dialogs/{sid}/close": {
            "post": {
                "tags": [
                    "dialogs"
                ],
                "summary": "Close dialog",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Dialog session id",
                        "name": "sid",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dialog.View"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/team": {
            "get": {
                "tags": [
                    "team"
                ],
                "summary": "Team roster",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.TeamMember"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/fixes/proposed": {
            "get": {
                "tags": [
                    "fixes"
                ],
                "summary": "Proposed fixes",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/notifications": {
            "get": {
                "tags": [
                    "notifications"
                ],
                "summary": "List notifications",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Start of range",
                        "name": "from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "End of range",
                        "name": "to",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Notification type",
                        "name": "type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/settings": {
            "get": {
                "tags": [
                    "settings"
                ],
                "summary": "Get settings",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Settings"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "settings"
                ],
                "summary": "Save settings",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Settings",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Settings"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Settings"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/ws/dialogs/{sid}": {
            "get": {
                "tags": [
                    "dialogs"
                ],
                "summary": "Apply-fix progress stream",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Fix dialog session id",
                        "name": "sid",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Push interval, e.g. 500ms (max 10s)",
                        "name": "interval",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Push interval in ms",
                        "name": "interval_ms",
                        "in": "query"
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": [
                "password",
                "username"
            ],
            "properties": {
                "username": {
                    "type": "string",
                    "example": "analyst"
                },
                "password": {
                    "type": "string",
                    "example": "s3cret"
                }
            }
        },
        "models.MetricTile": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                },
                "change": {
                    "type": "string"
                },
                "trend": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "models.SimilarIncident": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "similarity": {
                    "type": "string"
                },
                "resolution": {
                    "type": "string"
                }
            }
        },
        "models.AIAnalysis": {
            "type": "object",
            "properties": {
                "issue": {
                    "type": "string"
                },
                "root_cause": {
                    "type": "string"
                },
                "recommended_fix": {
                    "type": "string"
                },
                "contributing_factors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "remediation_plan": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "similar_incidents": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.SimilarIncident"
                    }
                },
                "automated_actions": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "models.IncidentSummary": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "assignee": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "ai_confidence": {
                    "type": "integer"
                },
                "suggested_action": {
                    "type": "string"
                }
            }
        },
        "models.Dashboard": {
            "type": "object",
            "properties": {
                "metrics": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.MetricTile"
                    }
                },
                "incidents": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.IncidentSummary"
                    }
                },
                "analysis": {
                    "$ref": "#/definitions/models.AIAnalysis"
                }
            }
        },
        "models.TimelineEntry": {
            "type": "object",
            "properties": {
                "time": {
                    "type": "string"
                },
                "event": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "user": {
                    "type": "string"
                }
            }
        },
        "models.LogEntry": {
            "type": "object",
            "properties": {
                "timestamp": {
                    "type": "string"
                },
                "level": {
                    "type": "string"
                },
                "service": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "models.MetricsSnapshot": {
            "type": "object",
            "properties": {
                "error_rate": {
                    "type": "number"
                },
                "response_time_ms": {
                    "type": "integer"
                },
                "throughput": {
                    "type": "integer"
                },
                "cpu_usage": {
                    "type": "integer"
                },
                "memory_usage": {
                    "type": "integer"
                },
                "db_connections": {
                    "type": "integer"
                }
            }
        },
        "models.Ticket": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "incident_id": {
                    "type": "string"
                },
                "project": {
                    "type": "string"
                },
                "issue_type": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "assignee": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "service.IncidentDetail": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "relative_time": {
                    "type": "string"
                },
                "assignee": {
                    "type": "string"
                },
                "reporter": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "ai_confidence": {
                    "type": "integer"
                },
                "estimated_impact": {
                    "type": "string"
                },
                "suggested_action": {
                    "type": "string"
                },
                "affected_systems": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "timeline": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.TimelineEntry"
                    }
                },
                "logs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.LogEntry"
                    }
                },
                "metrics": {
                    "$ref": "#/definitions/models.MetricsSnapshot"
                },
                "severity_label": {
                    "type": "string"
                },
                "status_label": {
                    "type": "string"
                },
                "tickets": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Ticket"
                    }
                }
            }
        },
        "models.Notification": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "occurred_at": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "metadata": {
                    "type": "object"
                }
            }
        },
        "models.TeamMember": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "available": {
                    "type": "boolean"
                },
                "expertise": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "models.Settings": {
            "type": "object",
            "properties": {
                "organization_name": {
                    "type": "string"
                },
                "timezone": {
                    "type": "string"
                },
                "incident_prefix": {
                    "type": "string"
                },
                "auto_refresh": {
                    "type": "boolean"
                },
                "dark_mode": {
                    "type": "boolean"
                },
                "notify_critical": {
                    "type": "boolean"
                },
                "notify_analysis_complete": {
                    "type": "boolean"
                },
                "weekly_reports": {
                    "type": "boolean"
                },
                "two_factor_auth": {
                    "type": "boolean"
                },
                "ip_whitelist": {
                    "type": "boolean"
                },
                "confidence_threshold": {
                    "type": "integer"
                },
                "auto_execute_fixes": {
                    "type": "boolean"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "progress.Snapshot": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "active_index": {
                    "type": "integer"
                },
                "active_step": {
                    "type": "string"
                },
                "percent": {
                    "type": "number"
                },
                "steps": {
                    "type": "integer"
                },
                "started_at": {
                    "type": "string"
                },
                "completed_at": {
                    "type": "string"
                }
            }
        },
        "dialog.View": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "incident_id": {
                    "type": "string"
                },
                "state": {
                    "type": "string"
                },
                "opened_at": {
                    "type": "string"
                },
                "closed_at": {
                    "type": "string"
                },
                "form": {
                    "type": "object"
                },
                "options": {
                    "type": "object"
                },
                "progress": {
                    "$ref": "#/definitions/progress.Snapshot"
                }
            }
        },
        "dialog.Outcome": {
            "type": "object",
            "properties": {
                "notification": {
                    "$ref": "#/definitions/models.Notification"
                },
                "ticket": {
                    "$ref": "#/definitions/models.Ticket"
                },
                "progress": {
                    "$ref": "#/definitions/progress.Snapshot"
                },
                "closed": {
                    "type": "boolean"
                }
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
	Title:            "SecureWatch API",
	Description:      "Incident console backend: dashboard, incidents, dialogs and the apply-fix progress stream.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
