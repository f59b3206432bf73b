package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/graphql-go/graphql"

	"weather-advisor/internal/gql"
	"weather-advisor/pkg/logging"
	"weather-advisor/pkg/metrics"
)

// GraphQLHandler serves the GraphQL endpoint and its companion pages
type GraphQLHandler struct {
	schema  graphql.Schema
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewGraphQLHandler creates a new GraphQL handler
func NewGraphQLHandler(schema graphql.Schema, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *GraphQLHandler {
	return &GraphQLHandler{
		schema:  schema,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// graphqlRequest is the standard GraphQL-over-HTTP request body
type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// ErrorResponse represents a non-GraphQL API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Query handles POST /graphql
func (h *GraphQLHandler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	h.metrics.ActiveRequests.Inc()
	defer h.metrics.ActiveRequests.Dec()

	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "invalid request body, expected a JSON GraphQL request", http.StatusBadRequest)
		return
	}

	operation := req.OperationName
	if operation == "" {
		operation = "anonymous"
	}

	defer func() {
		h.metrics.QueryDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
	}()

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	if result.HasErrors() {
		for _, gqlErr := range result.Errors {
			code := "INTERNAL"
			if c, ok := gqlErr.Extensions["code"].(string); ok {
				code = c
			}
			h.metrics.RecordQueryError(code, operation)
		}
		h.logger.Warn(ctx, "[GRAPHQL_ERRORS] Query completed with errors", logging.Fields{
			"operation":   operation,
			"error_count": len(result.Errors),
			"first_error": result.Errors[0].Message,
		})
		h.metrics.RecordQuery(operation, "error")
	} else {
		h.metrics.RecordQuery(operation, "ok")
	}

	// GraphQL errors ride inside a 200 response per convention.
	h.sendJSON(w, result, http.StatusOK)
}

// SchemaSDL handles GET /graphql/schema
func (h *GraphQLHandler) SchemaSDL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(gql.SDL))
}

// HealthCheck handles GET /health
func (h *GraphQLHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *GraphQLHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *GraphQLHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all GraphQL API routes
func (h *GraphQLHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/graphql", h.Query).Methods("POST")
	router.HandleFunc("/graphql", Playground).Methods("GET")
	router.HandleFunc("/graphql/schema", h.SchemaSDL).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}
