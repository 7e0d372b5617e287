// Package server exposes the review dispatcher to a browser front end.
//
// Routes:
//   - POST /api/review: one review per request
//   - GET /api/models: the provider/model table
//   - GET /api/health
//   - GET /ws: one response frame per request frame, matched by "id"
//
// The caller's API key arrives in each request body and is never logged.
package server
