package graphql

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/audit"
)

// Handler serves queries POSTed as {query, variables, operationName}. Every query is
// audited before it runs.
func Handler(p *Provider, auditLogger audit.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			p.logger.Debug("couldn't decode graphql request", zap.Error(err))
			http.Error(w, "request body must be a JSON graphql request", http.StatusBadRequest)
			return
		}

		if req.Query == "" {
			http.Error(w, "query is required", http.StatusBadRequest)
			return
		}

		err := auditLogger.Log(r.Context(), audit.AuditData{
			"query":          req.Query,
			"variables":      req.Variables,
			"operation_name": req.OperationName,
		})
		if err != nil {
			p.logger.Error("failed to audit query", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		result := p.Do(r.Context(), req)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			p.logger.Error("failed to write graphql result", zap.Error(err))
		}
	})
}
