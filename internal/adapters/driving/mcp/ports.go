package mcp

import (
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Content reads and edits the site content.
	Content driving.ContentService

	// Session reports whether edits will reach the API. Optional.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Content == nil {
		return ErrMissingContentService
	}
	return nil
}
