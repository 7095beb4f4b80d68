// Package mcp exposes the site content to AI assistants over the Model
// Context Protocol: the snapshot as resources and the edits as tools.
package mcp

import "errors"

// ErrMissingContentService is returned when the content service is not provided.
var ErrMissingContentService = errors.New("mcp: content service is required")
