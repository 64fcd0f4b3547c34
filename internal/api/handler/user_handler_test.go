package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

func TestUserHandler_List_WrapsNilAsEmptyArray(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubIdentityService{
		listUsersFn: func(ctx context.Context) ([]*domain.User, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok {
		t.Fatalf("data must be an array, got %T", resp["data"])
	}
	if len(data) != 0 {
		t.Fatalf("expected empty array, got %d entries", len(data))
	}
}

func TestUserHandler_Update_ForwardsMergeFields(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubIdentityService{
		updateProfileFn: func(ctx context.Context, id string, updates ports.ProfileUpdate) (*domain.User, error) {
			if id != "usr_001" {
				t.Fatalf("unexpected id: %s", id)
			}
			if updates.Name != "Renamed" || updates.Role != domain.RoleAuditor {
				t.Fatalf("unexpected updates: %+v", updates)
			}
			return &domain.User{ID: id, Name: updates.Name, Role: updates.Role}, nil
		},
	})

	req := jsonRequest(http.MethodPut, "/v1/users/usr_001", `{"name":"Renamed","role":"AUDITOR"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("usr_001")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_RejectsUnknownRole(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubIdentityService{
		updateProfileFn: func(ctx context.Context, id string, updates ports.ProfileUpdate) (*domain.User, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	})

	req := jsonRequest(http.MethodPut, "/v1/users/usr_001", `{"role":"ROOT"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("usr_001")

	if httpCode(t, handler.Update(c)) != http.StatusBadRequest {
		t.Fatal("expected 400")
	}
}

func TestUserHandler_Delete_OtherAccount(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	handler := NewUserHandler(&stubIdentityService{
		deleteUserFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/usr_002", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("usr_002")
	c.Set("user_id", "adm_001")
	c.Set("role", "ADMIN")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "usr_002" {
		t.Fatalf("expected usr_002 deleted, got %q", deleted)
	}
}

func TestUserHandler_Delete_OwnAccountRejected(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubIdentityService{
		deleteUserFn: func(ctx context.Context, id string) error {
			t.Fatal("should not be called")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/adm_001", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("adm_001")
	c.Set("user_id", "adm_001")
	c.Set("role", "ADMIN")

	if httpCode(t, handler.Delete(c)) != http.StatusConflict {
		t.Fatal("expected 409 for self-delete")
	}
}

func TestUserHandler_Delete_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubIdentityService{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/usr_002", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("usr_002")

	if httpCode(t, handler.Delete(c)) != http.StatusUnauthorized {
		t.Fatal("expected 401 without auth claims")
	}
}
