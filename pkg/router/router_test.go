package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func validSpec(operationID string) RouteSpec {
	return RouteSpec{
		OperationID: operationID,
		Summary:     "Test route",
		Description: "A route used by tests",
		Group:       "Test",
		Handler:     okHandler,
	}
}

func TestValidateRouteSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(spec *RouteSpec)
		wantErr string
	}{
		{
			name:   "valid spec",
			mutate: func(*RouteSpec) {},
		},
		{
			name:    "missing operation id",
			mutate:  func(spec *RouteSpec) { spec.OperationID = "" },
			wantErr: "OperationID",
		},
		{
			name:    "missing summary",
			mutate:  func(spec *RouteSpec) { spec.Summary = "" },
			wantErr: "Summary",
		},
		{
			name:    "missing description",
			mutate:  func(spec *RouteSpec) { spec.Description = "" },
			wantErr: "Description",
		},
		{
			name:    "missing group",
			mutate:  func(spec *RouteSpec) { spec.Group = "" },
			wantErr: "Group",
		},
		{
			name:    "missing handler",
			mutate:  func(spec *RouteSpec) { spec.Handler = nil },
			wantErr: "Handler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec := validSpec("op")
			tt.mutate(&spec)

			err := validateRouteSpec(spec)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validateRouteSpec() error = %v, want nil", err)
				}

				return
			}

			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateRouteSpec() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDuplicateOperationID(t *testing.T) {
	t.Parallel()

	rb := NewRouteBuilder(discardLogger())

	if err := rb.Get("/a", validSpec("op")); err != nil {
		t.Fatalf("first Get() error = %v", err)
	}

	err := rb.Get("/b", validSpec("op"))
	if err == nil || !strings.Contains(err.Error(), "duplicate operationID") {
		t.Errorf("second Get() error = %v, want duplicate operationID", err)
	}
}

func TestDuplicateOperationIDAcrossScopes(t *testing.T) {
	t.Parallel()

	rb := NewRouteBuilder(discardLogger())

	var inner error

	rb.Route("/api", func(rb *RouteBuilder) {
		if err := rb.Get("/a", validSpec("op")); err != nil {
			t.Fatalf("nested Get() error = %v", err)
		}
	})

	inner = rb.Get("/b", validSpec("op"))
	if inner == nil || !strings.Contains(inner.Error(), "duplicate operationID") {
		t.Errorf("Get() after nested registration error = %v, want duplicate operationID", inner)
	}
}

func TestPathParameterValidation(t *testing.T) {
	t.Parallel()

	t.Run("undocumented path parameter", func(t *testing.T) {
		t.Parallel()

		rb := NewRouteBuilder(discardLogger())

		err := rb.Get("/items/{itemID}", validSpec("getItem"))
		if err == nil || !strings.Contains(err.Error(), "not documented") {
			t.Errorf("Get() error = %v, want not documented", err)
		}
	})

	t.Run("documented path parameter", func(t *testing.T) {
		t.Parallel()

		rb := NewRouteBuilder(discardLogger())

		spec := validSpec("getItem")
		spec.Parameters = map[string]ParameterSpec{
			"itemID": {
				In:          ParameterInPath,
				Description: "ID of the item",
				Required:    true,
				Type:        new(string),
			},
		}

		if err := rb.Get("/items/{itemID}", spec); err != nil {
			t.Errorf("Get() error = %v, want nil", err)
		}
	})

	t.Run("optional path parameter rejected", func(t *testing.T) {
		t.Parallel()

		rb := NewRouteBuilder(discardLogger())

		spec := validSpec("getItem")
		spec.Parameters = map[string]ParameterSpec{
			"itemID": {
				In:          ParameterInPath,
				Description: "ID of the item",
				Required:    false,
				Type:        new(string),
			},
		}

		err := rb.Get("/items/{itemID}", spec)
		if err == nil || !strings.Contains(err.Error(), "must be required") {
			t.Errorf("Get() error = %v, want must be required", err)
		}
	})

	t.Run("documented parameter missing from path", func(t *testing.T) {
		t.Parallel()

		rb := NewRouteBuilder(discardLogger())

		spec := validSpec("getItem")
		spec.Parameters = map[string]ParameterSpec{
			"otherID": {
				In:          ParameterInPath,
				Description: "ID of something else",
				Required:    true,
				Type:        new(string),
			},
		}

		err := rb.Get("/items/{itemID}", spec)
		if err == nil || !strings.Contains(err.Error(), "not found in path") {
			t.Errorf("Get() error = %v, want not found in path", err)
		}
	})
}

func TestRoutesServed(t *testing.T) {
	t.Parallel()

	rb := NewRouteBuilder(discardLogger())

	rb.Route("/api", func(rb *RouteBuilder) {
		rb.MustGet("/ping", validSpec("ping"))
		rb.MustPost("/items", validSpec("createItem"))
	})

	srv := httptest.NewServer(rb.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/ping")
	if err != nil {
		t.Fatalf("GET /api/ping error = %v", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/ping status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp2, err := http.Post(srv.URL+"/api/items", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST /api/items error = %v", err)
	}

	defer resp2.Body.Close()

	if resp2.StatusCode != http.StatusOK {
		t.Errorf("POST /api/items status = %d, want %d", resp2.StatusCode, http.StatusOK)
	}
}
