// Package servicedef contains the request and response payloads of the market API, with the
// JSON property names that the service uses.
package servicedef
