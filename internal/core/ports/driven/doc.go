// Package driven holds the interfaces the core calls out through: the local
// cache, the remote content API, the image host, the config file and the
// scheduler's bookkeeping.
//
// ContentCache, ContentGateway and ConfigStore must be wired. ImageUploader
// may be nil, which turns photo uploads off. SchedulerStore may be nil, which
// leaves the scheduler idle.
//
// This package imports domain and nothing else from internal/.
package driven
