// Package domain is the site content model and the rules that need no I/O.
//
// Snapshot carries the four sections (about, projects, testimonials and
// contact). MigrateRaw and Migrate coerce whatever shape was cached or
// served into a well-formed Snapshot, filling defaults per section. Slugify
// derives project slugs. The error taxonomy, sync states, settings and the
// background pull bookkeeping live here too.
//
// Only the standard library may be imported.
package domain
