// Package handler provides HTTP request handlers for the rendezvous
// server.
//
// This package implements the rendezvous channel endpoints plus the
// health probes. Error bodies follow the Matrix client-server error
// format ({"errcode": "...", "error": "..."}) so existing clients can
// reuse their error handling.
package handler
