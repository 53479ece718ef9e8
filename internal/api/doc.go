// Package api serves the public account-activation and password-reset
// pages and the admin REST API under /api/v1, authenticated with the
// X-API-Key header.
package api
