package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilderTriggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerBillCreated("b1").
		TriggerBillsRefresh().
		TriggerSuccessNotification("saved").
		Write(rr)

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var triggers map[string]any
	if err := json.Unmarshal([]byte(rr.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := triggers["bill:created"]; !ok {
		t.Fatalf("missing bill:created trigger: %v", triggers)
	}
	if _, ok := triggers["bills:refresh"]; !ok {
		t.Fatalf("missing bills:refresh trigger: %v", triggers)
	}
	notif, ok := triggers["show-notification"].(map[string]any)
	if !ok || notif["type"] != "success" || notif["message"] != "saved" {
		t.Fatalf("unexpected notification payload: %v", triggers["show-notification"])
	}
}

func TestHTMXResponseBuilderNoTriggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().Status(204).Write(rr)

	if rr.Code != 204 {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if rr.Header().Get("HX-Trigger") != "" {
		t.Fatalf("no triggers should mean no header")
	}
}

func TestErrorResponseEscapes(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorResponse(422, `<script>alert("x")</script>`).Write(rr)

	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<script>") {
		t.Fatalf("message was not escaped: %s", body)
	}
	if !strings.Contains(body, `class="error"`) {
		t.Fatalf("expected error wrapper: %s", body)
	}
}
