package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/swaggo/swag"

	"minutes/internal/services/api/docs"
)

// SpecMutator edits the decoded OpenAPI document before it is served
type SpecMutator func(spec map[string]any)

var (
	mutatorsMu sync.Mutex
	mutators   []SpecMutator

	docReader = docs.ReadDoc
)

// Register adds m to every served spec; modules call it from New
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mutatorsMu.Lock()
	defer mutatorsMu.Unlock()
	mutators = append(mutators, m)
}

// instanceName is the swag registry key http-swagger reads doc.json from
const instanceName = "api"

// apiDoc renders the embedded spec on every read so late mutators are seen
type apiDoc struct {
	mu     sync.Mutex
	suffix string
}

var (
	served       = &apiDoc{}
	registerOnce sync.Once
)

// register publishes the doc under instanceName; swag panics on a second Register
func register(titleSuffix string) {
	served.setSuffix(titleSuffix)
	registerOnce.Do(func() { swag.Register(instanceName, served) })
}

func (d *apiDoc) setSuffix(s string) {
	d.mu.Lock()
	d.suffix = s
	d.mu.Unlock()
}

// ReadDoc implements swag.Swagger; an undecodable doc is served as is
func (d *apiDoc) ReadDoc() string {
	d.mu.Lock()
	suffix := d.suffix
	d.mu.Unlock()

	raw := docReader()
	out, err := render(raw, suffix)
	if err != nil {
		return raw
	}
	return string(out)
}

func render(raw, titleSuffix string) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, err
	}
	normalizeVersion(spec, "/api/v1")
	if info, ok := spec["info"].(map[string]any); ok && titleSuffix != "" {
		if title, ok := info["title"].(string); ok {
			info["title"] = title + " " + titleSuffix
		}
	}
	addErrorResponses(spec)

	mutatorsMu.Lock()
	for _, m := range mutators {
		m(spec)
	}
	mutatorsMu.Unlock()

	return json.Marshal(spec)
}

// normalizeVersion serves OAS 3.0.3, which the bundled UI renders, with a server url
func normalizeVersion(spec map[string]any, server string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") || strings.HasPrefix(v, "2") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": server}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// addErrorResponses documents the envelope every operation can fail with
func addErrorResponses(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		str := map[string]any{"type": "string"}
		num := map[string]any{"type": "integer", "format": "int32"}
		schemas["ErrorResponse"] = map[string]any{
			"type":        "object",
			"description": "Error envelope",
			"properties": map[string]any{
				"status_code": num, "status": str, "code": num, "error": str, "request_id": str,
			},
			"required": []any{"status_code", "status"},
		}
	}

	defaults := map[string]map[string]any{
		"400": errorResponse(http.StatusBadRequest, 8, "text is a required field"),
		"500": errorResponse(http.StatusInternalServerError, 1, "internal error"),
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, item := range paths {
		ops, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, op := range ops {
			op, ok := op.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for code, resp := range defaults {
				if _, ok := resps[code]; !ok {
					resps[code] = resp
				}
			}
		}
	}
}

func errorResponse(status, code int, msg string) map[string]any {
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      http.StatusText(status),
					"code":        code,
					"error":       msg,
					"request_id":  "minutes-host/abc-000001",
				},
			},
		},
	}
}
