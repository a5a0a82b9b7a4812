// Package apidef contains the wire formats of the order API: request payloads the harness sends and
// the response envelopes it decodes, plus the literal error messages that are part of the API
// contract.
package apidef
