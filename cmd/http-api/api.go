package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/audit"
	"github.com/uswitch/typearchive/pkg/authnz"
	"github.com/uswitch/typearchive/pkg/graphql"
	"github.com/uswitch/typearchive/pkg/middleware"
	"github.com/uswitch/typearchive/pkg/store"
	"github.com/uswitch/typearchive/pkg/types"
)

type api struct {
	s            store.Store
	logger       *zap.Logger
	maxBodyBytes int64
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

func (a *api) listArchives(w http.ResponseWriter, r *http.Request) {
	props, err := a.s.List(r.Context())
	if err != nil {
		a.logger.Error("couldn't list archives", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, props)
}

func (a *api) getArchive(w http.ResponseWriter, r *http.Request) {
	guid := types.GUID(r.PathValue("guid"))

	archive, err := a.s.Get(r.Context(), guid)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "archive not found", http.StatusNotFound)
		return
	} else if err != nil {
		a.logger.Error("couldn't get archive", zap.Stringer("guid", guid), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, archive)
}

// putArchive only stores archives an accessor can be built from.
func (a *api) putArchive(w http.ResponseWriter, r *http.Request) {
	archive, err := types.DecodeArchive(http.MaxBytesReader(w, r.Body, a.maxBodyBytes), types.JSON)
	if err != nil {
		a.logger.Debug("couldn't decode an archive from the request body", zap.Error(err))
		http.Error(w, "request body must be a JSON archive", http.StatusBadRequest)
		return
	}

	if err := store.CheckArchive(archive); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := accessor.New(archive); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := a.s.Put(r.Context(), archive); err != nil {
		a.logger.Error("couldn't put archive", zap.Stringer("guid", archive.Properties.GUID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	user, _ := authnz.UserFromContext(r.Context())
	a.logger.Info("stored archive",
		zap.Stringer("guid", archive.Properties.GUID),
		zap.String("version", archive.Properties.Version),
		zap.String("user", user),
	)

	writeJSON(w, a.logger, http.StatusOK, archive.Properties)
}

func apiHandler(s store.Store, p *graphql.Provider, authn authnz.Authenticator, auditLogger audit.Logger, cors middleware.Middleware, maxBodyBytes int64, logger *zap.Logger) http.Handler {
	a := &api{
		s:            s,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}

	archiveMux := http.NewServeMux()

	archiveMux.HandleFunc("GET /archives", a.listArchives)
	archiveMux.HandleFunc("GET /archives/{guid}", a.getArchive)
	archiveMux.HandleFunc("PUT /archives", a.putArchive)

	apiMux := http.NewServeMux()

	// queries are audited with their body by the graphql handler
	apiMux.Handle("/graphql", graphql.Handler(p, auditLogger))
	apiMux.Handle("/", middleware.Wrap([]middleware.Middleware{auditLogger}, archiveMux))

	return middleware.Wrap(
		[]middleware.Middleware{
			cors,
			authn,
		},
		apiMux,
	)
}
