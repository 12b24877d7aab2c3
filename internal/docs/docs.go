// Package docs registers the OpenAPI document of the stats API with swag.
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
        "/api/v1/stats/leaders": {
            "get": {
                "description": "Ranked leaders per stat category, one entry per requested group in request order",
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Stat Leaders",
                "parameters": [
                    {"type": "string", "description": "Comma separated stat groups (hitting, pitching)", "name": "group", "in": "query", "required": true},
                    {"type": "string", "description": "Season number or 'current'", "name": "season", "in": "query"},
                    {"type": "string", "default": "season", "description": "Query type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "leagueLeaders", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.StatLeadersGroup"}}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/stats/players": {
            "get": {
                "description": "Season splits read from the batting or pitching read-models, with base running stats merged into hitting lines",
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Player Stats",
                "parameters": [
                    {"type": "string", "description": "Comma separated stat groups (hitting, pitching)", "name": "group", "in": "query", "required": true},
                    {"type": "string", "description": "Comma separated stat columns to return", "name": "fields", "in": "query"},
                    {"type": "string", "default": "R", "description": "R (regular season) or P (postseason)", "name": "gameType", "in": "query"},
                    {"type": "string", "description": "Season number or 'current'", "name": "season", "in": "query"},
                    {"type": "integer", "description": "Player filter", "name": "playerId", "in": "query"},
                    {"type": "integer", "description": "Team filter", "name": "teamId", "in": "query"},
                    {"type": "string", "description": "Stat column to sort by", "name": "sortStat", "in": "query"},
                    {"type": "string", "default": "desc", "description": "asc or desc", "name": "order", "in": "query"},
                    {"type": "integer", "description": "Maximum splits per group", "name": "limit", "in": "query"},
                    {"type": "string", "default": "season", "description": "Query type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "stats", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.PlayerStatsGroup"}}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/seasons/current": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Seasons"],
                "summary": "Current Season",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SeasonWindow"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/seasons/{season}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Seasons"],
                "summary": "Season Window",
                "parameters": [
                    {"type": "integer", "description": "Season", "name": "season", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SeasonWindow"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/ready": {
            "get": {
                "description": "Pings Postgres, Redis and, when analytics are enabled, ClickHouse",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "models.LeaderCategory": {
            "type": "object",
            "properties": {
                "leaderCategory": {"type": "string"},
                "leaders": {"type": "array", "items": {"type": "object", "additionalProperties": true}}
            }
        },
        "models.StatLeadersGroup": {
            "type": "object",
            "properties": {
                "leaderCategories": {"type": "array", "items": {"$ref": "#/definitions/models.LeaderCategory"}},
                "statGroup": {"type": "string", "enum": ["hitting", "pitching"]}
            }
        },
        "models.PlayerRef": {
            "type": "object",
            "properties": {
                "fullName": {"type": "string"},
                "id": {"type": "integer"}
            }
        },
        "models.Split": {
            "type": "object",
            "properties": {
                "player": {"$ref": "#/definitions/models.PlayerRef"},
                "season": {"type": "integer"},
                "stat": {"type": "object", "additionalProperties": true},
                "team": {"type": "object", "additionalProperties": true}
            }
        },
        "models.PlayerStatsGroup": {
            "type": "object",
            "properties": {
                "group": {"type": "string", "enum": ["hitting", "pitching"]},
                "splits": {"type": "array", "items": {"$ref": "#/definitions/models.Split"}},
                "totalSplits": {"type": "integer"},
                "type": {"type": "string", "enum": ["season"]}
            }
        },
        "models.SeasonWindow": {
            "type": "object",
            "properties": {
                "end": {"type": "string"},
                "season": {"type": "integer"},
                "start": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "League Stats API",
	Description:      "Leaderboards and player stat splits served from the league read-models.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
