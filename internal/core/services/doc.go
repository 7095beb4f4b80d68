// Package services implements the driving ports.
//
// ContentStore owns the cached snapshot: reads fall back to it, and every
// mutation tries the content API before deciding, per sync policy, whether
// to keep a local-only copy. SessionManager holds the bearer token,
// MediaService the photo uploads and Scheduler the background pull. The
// package talks to infrastructure only through ports/driven.
package services
