package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/youssefalsaeed/order-management-system/pkg/errors"
)

type samplePayload struct {
	UserID   uuid.UUID `json:"user_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

func newJSONRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBodySuccess(t *testing.T) {
	userID := uuid.New()
	var payload samplePayload
	err := DecodeJSONBody(newJSONRequest(`{"user_id":"`+userID.String()+`","quantity":2}`), &payload)
	if err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if payload.UserID != userID || payload.Quantity != 2 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyMalformedJSON(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(newJSONRequest(`{"user_id":`), &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(newJSONRequest(`{"user_id":"`+uuid.NewString()+`","quantity":1,"extra":true}`), &payload)
	if pkgerrors.As(err) == nil {
		t.Fatalf("expected error for unknown field, got %v", err)
	}
}

func TestDecodeJSONBodyFieldMessagesUseJSONNames(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(newJSONRequest(`{}`), &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["user_id"] != "is required" {
		t.Fatalf("unexpected user_id message %q", details["user_id"])
	}
	if details["quantity"] != "is required" {
		t.Fatalf("unexpected quantity message %q", details["quantity"])
	}
}
