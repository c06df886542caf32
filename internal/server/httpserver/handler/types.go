// Package handler provides HTTP request handlers for the rendezvous
// server.
package handler

// CreateResponse is the response body for POST /rendezvous.
type CreateResponse struct {
	URL string `json:"url"`
}

// ErrorBody is the Matrix client-server error format.
type ErrorBody struct {
	Errcode string `json:"errcode"`
	Error   string `json:"error"`
}
