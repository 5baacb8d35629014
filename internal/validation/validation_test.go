package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Status, body.Message
}

func TestCheckRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]interface{}
		required []string
		ok       bool
		message  string
	}{
		{
			name:     "all present",
			input:    map[string]interface{}{"title": "Roadworks", "description": "Jalan ditutup"},
			required: []string{"title", "description"},
			ok:       true,
		},
		{
			name:     "missing key",
			input:    map[string]interface{}{"title": "Roadworks"},
			required: []string{"title", "description"},
			message:  "Bad request: description is a required parameter.",
		},
		{
			name:     "nil value",
			input:    map[string]interface{}{"title": nil},
			required: []string{"title"},
			message:  "Bad request: title is a required parameter.",
		},
		{
			name:     "blank string",
			input:    map[string]interface{}{"title": "   "},
			required: []string{"title"},
			message:  "Bad request: title is a required parameter.",
		},
		{
			name:     "first failure wins in declared order",
			input:    map[string]interface{}{},
			required: []string{"name", "category", "status"},
			message:  "Bad request: name is a required parameter.",
		},
		{
			name:     "non-string values pass the presence check",
			input:    map[string]interface{}{"images": []interface{}{"a.jpg"}, "total": 0},
			required: []string{"images", "total"},
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			got := Check(w, tt.input, tt.required)
			if got != tt.ok {
				t.Fatalf("Check = %v, want %v", got, tt.ok)
			}
			if tt.ok {
				if w.Body.Len() != 0 {
					t.Fatalf("response must stay untouched on success, got %q", w.Body.String())
				}
				return
			}
			status, message := decodeMessage(t, w)
			if w.Code != http.StatusBadRequest || status != 400 {
				t.Fatalf("expected 400, got %d/%d", w.Code, status)
			}
			if message != tt.message {
				t.Fatalf("message = %q, want %q", message, tt.message)
			}
		})
	}
}

func TestCheckIDShapedFields(t *testing.T) {
	valid := "507f1f77bcf86cd799439011"

	tests := []struct {
		name  string
		field string
		value interface{}
		ok    bool
	}{
		{name: "valid hex id", field: "shopId", value: valid, ok: true},
		{name: "too short", field: "shopId", value: "abc123"},
		{name: "non-hex characters", field: "reportId", value: "zzzf1f77bcf86cd799439011"},
		{name: "case-insensitive suffix", field: "RESIDENTID", value: "nope"},
		{name: "underscore id", field: "_id", value: "not-an-id"},
		{name: "non-id field ignores shape", field: "description", value: "nope", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			got := Check(w, map[string]interface{}{tt.field: tt.value}, []string{tt.field})
			if got != tt.ok {
				t.Fatalf("Check = %v, want %v", got, tt.ok)
			}
			if tt.ok {
				return
			}
			_, message := decodeMessage(t, w)
			want := "Bad request: " + tt.field + " must be a valid ObjectId."
			if message != want {
				t.Fatalf("message = %q, want %q", message, want)
			}
		})
	}
}

func TestRejectIfPresent(t *testing.T) {
	messages := map[string]string{
		"email": "Email of the administrator user cannot be updated.",
		"phone": "Phone number of the administrator user cannot be updated.",
	}

	t.Run("forbidden field present", func(t *testing.T) {
		w := httptest.NewRecorder()
		ok := RejectIfPresent(w, map[string]interface{}{"email": "new@x.com"}, []string{"phone", "email"}, messages)
		if ok {
			t.Fatalf("expected rejection")
		}
		status, message := decodeMessage(t, w)
		if status != 400 || message != "Email of the administrator user cannot be updated." {
			t.Fatalf("unexpected response %d %q", status, message)
		}
	})

	t.Run("forbidden fields absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		ok := RejectIfPresent(w, map[string]interface{}{"firstName": "Aini"}, []string{"phone", "email"}, messages)
		if !ok {
			t.Fatalf("expected pass")
		}
		if w.Body.Len() != 0 {
			t.Fatalf("response must stay untouched")
		}
	})

	t.Run("blank forbidden field is ignored", func(t *testing.T) {
		w := httptest.NewRecorder()
		ok := RejectIfPresent(w, map[string]interface{}{"email": ""}, []string{"email"}, messages)
		if !ok {
			t.Fatalf("blank values do not count as updates")
		}
	})
}

func TestIsIDField(t *testing.T) {
	for field, want := range map[string]bool{
		"shopId":      true,
		"adminUserId": true,
		"_id":         true,
		"RESIDENTID":  true,
		"title":       false,
		"description": false,
	} {
		if got := IsIDField(field); got != want {
			t.Fatalf("IsIDField(%q) = %v, want %v", field, got, want)
		}
	}
}
