// Package bolt provides a bbolt-backed content cache and scheduler store.
//
// One file holds the slots bucket (content snapshot and session token as raw
// bytes), the jobs bucket (pull schedules as JSON) and the runs bucket, which
// nests one bucket of pull runs per job keyed by sequence.
package bolt
