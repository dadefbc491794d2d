package audit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/uswitch/typearchive/pkg/authnz"
)

func auditTestHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})
}

func doAuditMiddleware(t *testing.T, expectedStatus int, expectedEntry AuditEntry, method, path, query string) {
	core, logs := observer.New(zap.InfoLevel)

	req := httptest.NewRequest(
		method, fmt.Sprintf("%s?%s", path, query), nil,
	)
	reqWithUser := req.WithContext(authnz.WithUser(req.Context(), expectedEntry.User))

	w := httptest.NewRecorder()

	auditLogger := NewAuditLog(zap.New(core))
	middleware := auditLogger.Middleware(auditTestHandler())
	middleware.ServeHTTP(w, reqWithUser)

	response := w.Result()

	if response.StatusCode != expectedStatus {
		t.Errorf("Should have got a %d, but got a %d", expectedStatus, response.StatusCode)
	}

	if response.StatusCode >= 400 {
		return
	}

	entries := logs.FilterLoggerName("audit").FilterMessage("audit").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, but got %d", len(entries))
	}

	fields := entries[0].ContextMap()

	if fields["user"] != expectedEntry.User {
		t.Errorf("should have been '%s', but was '%v'", expectedEntry.User, fields["user"])
	}

	if entryTime, ok := fields["time"].(time.Time); !ok {
		t.Errorf("expected a time, but got %v", fields["time"])
	} else if now := time.Now(); now.Sub(entryTime) > (1 * time.Second) {
		t.Errorf("should have been within a seconds of '%s', but was '%s'", now, entryTime)
	}

	data, ok := fields["data"].(AuditData)
	if !ok {
		t.Fatalf("expected audit data, but got %T", fields["data"])
	}

	if len(data) != len(expectedEntry.Data) {
		t.Errorf("expected entry doesn't have the same number of keys: %d != %d", len(data), len(expectedEntry.Data))
	}

	for k, v := range expectedEntry.Data {
		if data[k] != v {
			t.Errorf("Data['%s'] should have been '%v', but was '%v'", k, v, data[k])
		}
	}
}

func TestAuditHappyPath(t *testing.T) {
	doAuditMiddleware(t, 200, AuditEntry{
		User: "wibble@bibble.com",
		Data: AuditData{
			"method": "GET",
			"path":   "/",
			"query":  "",
		},
	}, "GET", "/", "")
}

func TestAuditQuery(t *testing.T) {
	doAuditMiddleware(t, 200, AuditEntry{
		User: "wibble@bibble.com",
		Data: AuditData{
			"method": "GET",
			"path":   "/archives",
			"query":  "version=1.4",
		},
	}, "GET", "/archives", "version=1.4")
}

func TestMissingUser(t *testing.T) {
	doAuditMiddleware(t, 500, AuditEntry{
		User: "",
		Data: AuditData{
			"method": "GET",
			"path":   "/",
			"query":  "",
		},
	}, "GET", "/", "")
}

func TestLogWithoutUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	err := NewAuditLog(zap.New(core)).Log(context.Background(), AuditData{"query": "{ archive { name } }"})
	if !errors.Is(err, ErrNoUser) {
		t.Errorf("expected ErrNoUser, but got %v", err)
	}

	if n := logs.FilterMessage("audit").Len(); n != 0 {
		t.Errorf("expected no audit entries, but got %d", n)
	}
}
