// Package erpui provides embedded assets for production builds.
package erpui

import "embed"

// Embedded assets for production builds.
// In dev mode (IsDev=true), assets are loaded from disk so template edits show up without a rebuild.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
