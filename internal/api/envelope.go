package api

import "github.com/danielgtaylor/huma/v2"

// envelopeVersion is bumped only when the envelope structure itself changes.
const envelopeVersion = 1

// Envelope is the uniform wrapper around every API response body. Clients
// branch on "success" and read either "data" or the error fields.
type Envelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`

	// Error is set for simple errors, Code/Message/Details for detailed
	// ones. Mutually exclusive with Data.
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every huma response body in the portal envelope.
// Registered in NewServer via humaConfig.Transformers.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		env := &Envelope{V: envelopeVersion, Success: false}
		if apiErr.Code == "" && apiErr.Details == nil {
			env.Error = apiErr.Message
		} else {
			env.Code = apiErr.Code
			env.Message = apiErr.Message
			env.Details = apiErr.Details
		}
		return env, nil
	}

	return &Envelope{V: envelopeVersion, Success: true, Data: v}, nil
}
