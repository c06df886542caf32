// Package token provides URL-safe random identifier generation.
//
// Session identifiers and entity-tag nonces both come from here:
// crypto/rand bytes rendered as Base64 RawURL for safe use in URLs
// and HTTP headers.
package token
