package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"

	"github.com/vanessaike/social-feed-graphql-api/internal/apperr"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphqlError struct {
	Message   string               `json:"message"`
	Status    int                  `json:"status,omitempty"`
	Data      []apperr.FieldError  `json:"data,omitempty"`
	Locations []gqlerrors.Location `json:"locations,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

// handleGraphQL executes queries and mutations. GET without a query serves
// the interactive explorer.
func (r *Router) handleGraphQL(w http.ResponseWriter, req *http.Request) {
	var payload graphqlRequest
	switch req.Method {
	case http.MethodGet:
		params := req.URL.Query()
		payload.Query = params.Get("query")
		if payload.Query == "" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(graphiqlPage))
			return
		}
		payload.OperationName = params.Get("operationName")
		if raw := params.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &payload.Variables); err != nil {
				writeError(w, http.StatusBadRequest, "invalid variables")
				return
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := r.schema.Exec(req.Context(), payload.Query, payload.OperationName, payload.Variables)
	out := graphqlResponse{Data: resp.Data}
	for _, qerr := range resp.Errors {
		out.Errors = append(out.Errors, r.formatError(qerr))
	}
	writeJSON(w, http.StatusOK, out)
}

// formatError reshapes an execution error into the {message, status, data}
// envelope. Resolver errors without an explicit status become an opaque 500;
// engine errors (parse, validation) pass through with their locations.
func (r *Router) formatError(qerr *gqlerrors.QueryError) graphqlError {
	var appErr *apperr.Error
	if errors.As(qerr.ResolverError, &appErr) {
		return graphqlError{Message: appErr.Message, Status: appErr.Status, Data: appErr.Data}
	}
	if qerr.ResolverError != nil {
		r.logger.Error("resolver failed", "error", qerr.ResolverError, "path", qerr.Path)
		return graphqlError{Message: "Internal server error.", Status: http.StatusInternalServerError}
	}
	return graphqlError{Message: qerr.Message, Locations: qerr.Locations}
}
