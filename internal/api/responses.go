// Package api holds the response envelopes and bind-error helpers shared
// by the marketplace HTTP handlers.
package api

type ErrorResponse struct {
	Error string `json:"error" example:"insufficient withdrawable balance"`
}

type MessageResponse struct {
	Message string `json:"message" example:"entry released"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
