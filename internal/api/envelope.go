package api

import (
	"encoding/json"

	"quickload-admin/internal/common/errors"
	"quickload-admin/internal/common/validation"
)

// Response envelope keys.
const (
	keyUser          = "user"
	keyUsers         = "users"
	keyProduct       = "product"
	keyProducts      = "products"
	keyProductOwner  = "productOwner"
	keyProductOwners = "productOwners"
	keyVehicle       = "vehicle"
	keyVehicles      = "vehicles"
	keyNotification  = "notification"
	keyNotifications = "notifications"
	keyMessage       = "message"
	keyAccessToken   = "accessToken"
	keyRefreshToken  = "refreshToken"
)

func recordEnvelope(key string) map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{key},
		"properties": map[string]interface{}{
			key: map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"_id"},
				"properties": map[string]interface{}{
					"_id": map[string]interface{}{"type": "string", "minLength": 1},
				},
			},
		},
	}
}

func listEnvelope(key string) map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{key},
		"properties": map[string]interface{}{
			key: map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "object"},
			},
		},
	}
}

var (
	loginEnvelope = map[string]interface{}{
		"type":     "object",
		"required": []interface{}{keyUser, keyAccessToken, keyRefreshToken},
		"properties": map[string]interface{}{
			keyUser:         map[string]interface{}{"type": "object"},
			keyAccessToken:  map[string]interface{}{"type": "string", "minLength": 1},
			keyRefreshToken: map[string]interface{}{"type": "string", "minLength": 1},
		},
	}

	refreshEnvelope = map[string]interface{}{
		"type":     "object",
		"required": []interface{}{keyAccessToken},
		"properties": map[string]interface{}{
			keyAccessToken:  map[string]interface{}{"type": "string", "minLength": 1},
			keyRefreshToken: map[string]interface{}{"type": "string"},
		},
	}

	messageEnvelope = map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			keyMessage: map[string]interface{}{"type": "string"},
		},
	}
)

// checkEnvelope validates raw against schema and returns the top-level fields.
func checkEnvelope(raw []byte, schema map[string]interface{}, key string) (map[string]json.RawMessage, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewEnvelopeDecodeError(key, "response is not JSON: "+err.Error())
	}
	if err := validation.ValidateDocument(schema, doc); err != nil {
		return nil, errors.NewEnvelopeDecodeError(key, err.Error())
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.NewEnvelopeDecodeError(key, err.Error())
	}
	return fields, nil
}

// unwrap validates raw against schema and decodes the field named key.
func unwrap[T any](raw []byte, schema map[string]interface{}, key string) (T, error) {
	var out T
	fields, err := checkEnvelope(raw, schema, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(fields[key], &out); err != nil {
		return out, errors.NewEnvelopeDecodeError(key, err.Error())
	}
	return out, nil
}

// unwrapWhole validates raw and decodes the entire body.
func unwrapWhole[T any](raw []byte, schema map[string]interface{}, key string) (T, error) {
	var out T
	if _, err := checkEnvelope(raw, schema, key); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errors.NewEnvelopeDecodeError(key, err.Error())
	}
	return out, nil
}
