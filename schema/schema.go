// Package schema has the roster model, settings document and shared constants for all parts of gradebook.
package schema
