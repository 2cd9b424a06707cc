// Package cms provides an HTTP client for the headless CMS that backs the
// portfolio.
//
// # Overview
//
// lantern needs two calls from the CMS:
//
//   - GET /api/ping: health check used to detect a cold start
//   - GET /upload/files: media library listing used to pick the hero image
//
// Every request carries the configured bearer token.
//
// # Client Usage
//
//	client, err := cms.NewClient(cfg.APIURL, cfg.APIToken)
//	if err != nil {
//		return fmt.Errorf("init cms client: %w", err)
//	}
//
//	res, err := client.Ping(ctx)
//	if err != nil || !res.OK() {
//		// treat as a failed attempt
//	}
//
// # Status Handling
//
// HTTP statuses >= 400 come back as *StatusError. A 2xx response still carries
// the backend's own status field; Ping copies it into PingResult.StatusCode so
// callers only have to check OK. Missing body status falls back to the HTTP
// status.
//
// # Media URLs
//
// Local uploads are reported relative to the CMS host ("/uploads/x.jpg").
// ResolveURL makes them absolute; CDN URLs pass through unchanged.
package cms
