// Package httputil provides shared HTTP response utilities for handlers.
//
// Handler files should use these helpers instead of writing raw
// http.ResponseWriter calls, so JSON formatting and error envelopes stay
// consistent across endpoints.
package httputil
