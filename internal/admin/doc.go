// Package admin implements the carebook administration tool: schema
// migrations and the practitioner verification workflow, driven from a
// terminal.
package admin
