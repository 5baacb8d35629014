// Package validation implements the declarative required-field contract every
// mutating and lookup endpoint runs before touching storage. Checks are pure
// with respect to their inputs aside from writing the 400 response.
package validation

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jirantetangga/pkg/httputil"
)

// Check validates the declared required fields in caller order, first failure
// wins: the 400 response is written and false returned without looking at
// later fields. A field fails when absent, nil, or a blank string. Fields
// named like identifiers must additionally parse as ObjectIds.
func Check(w http.ResponseWriter, input map[string]interface{}, requiredFields []string) bool {
	for _, field := range requiredFields {
		value, ok := input[field]
		if !ok || isBlank(value) {
			httputil.Message(w, http.StatusBadRequest,
				"Bad request: "+field+" is a required parameter.")
			return false
		}
		if IsIDField(field) {
			s, ok := value.(string)
			if !ok || !IsObjectID(s) {
				httputil.Message(w, http.StatusBadRequest,
					"Bad request: "+field+" must be a valid ObjectId.")
				return false
			}
		}
	}
	return true
}

// RejectIfPresent is the inverse check for immutable fields: if any forbidden
// field is present in the input, the module's fixed message is written as a
// 400 and false returned. Fields are checked in caller order.
func RejectIfPresent(w http.ResponseWriter, input map[string]interface{}, forbiddenFields []string, messages map[string]string) bool {
	for _, field := range forbiddenFields {
		value, ok := input[field]
		if !ok || isBlank(value) {
			continue
		}
		message := messages[field]
		if message == "" {
			message = "Bad request: " + field + " cannot be updated."
		}
		httputil.Message(w, http.StatusBadRequest, message)
		return false
	}
	return true
}

// IsIDField reports whether the field name is treated as a storage
// identifier: "_id" or any name ending in "Id" (case-insensitive).
func IsIDField(name string) bool {
	if name == "_id" {
		return true
	}
	return len(name) >= 2 && strings.EqualFold(name[len(name)-2:], "id")
}

// IsObjectID reports whether s is a syntactically valid 24-hex-character
// identifier.
func IsObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

func isBlank(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
