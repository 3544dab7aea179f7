package response

import "encoding/json"

const ContentTypeJSON = "application/json"

// Status is the success body, always {"status":"ok"}.
type Status struct {
	Status string `json:"status"`
}

// Error is the failure body carrying a machine-readable message.
type Error struct {
	Error string `json:"error"`
}

// OK returns the encoded success body.
func OK() []byte {
	return encode(Status{Status: "ok"})
}

// ErrorBody returns the encoded error body for message.
func ErrorBody(message string) []byte {
	return encode(Error{Error: message})
}

func encode(v interface{}) []byte {
	// both body types are plain string structs; Marshal cannot fail
	b, _ := json.Marshal(v)
	return b
}
