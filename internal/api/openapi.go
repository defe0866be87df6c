package api

import (
	"net/http"
	"strings"
)

// buildOpenAPIDoc returns an OpenAPI 3.1 document covering the query routes.
func buildOpenAPIDoc(secured bool) map[string]any {
	paths := map[string]any{}
	for _, rt := range routes {
		paths[rt.pattern] = map[string]any{
			strings.ToLower(rt.method): buildOperation(rt, secured),
		}
	}

	doc := map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":   "kiegate",
			"version": "1.0",
		},
		"paths": paths,
	}
	if secured {
		doc["components"] = map[string]any{
			"securitySchemes": map[string]any{
				"BearerAuth": map[string]any{
					"type":   "http",
					"scheme": "bearer",
				},
			},
		}
	}
	return doc
}

func buildOperation(rt route, secured bool) map[string]any {
	var params []any
	for _, seg := range strings.Split(rt.pattern, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			params = append(params, map[string]any{
				"name":     strings.Trim(seg, "{}"),
				"in":       "path",
				"required": true,
				"schema":   map[string]any{"type": "string"},
			})
		}
	}
	for _, q := range rt.query {
		params = append(params, map[string]any{
			"name":   q,
			"in":     "query",
			"schema": map[string]any{"type": "string"},
		})
	}

	op := map[string]any{
		"summary": rt.summary,
		"responses": map[string]any{
			"200": map[string]any{"description": "OK"},
			"404": map[string]any{"description": "Entity or container not found"},
			"500": map[string]any{"description": "Unexpected error"},
		},
	}
	if len(params) > 0 {
		op["parameters"] = params
	}
	if secured {
		op["security"] = []any{map[string]any{"BearerAuth": []string{}}}
	}
	return op
}

// handleOpenAPI handles GET /openapi.json
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, buildOpenAPIDoc(s.config.APIKey != ""))
}
