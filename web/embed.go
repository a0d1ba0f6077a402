// Package web embeds the Emotify page templates and static assets.
package web

import "embed"

// TemplatesFS holds layouts/, pages/ and partials/.
//
//go:embed all:templates
var TemplatesFS embed.FS

// StaticFS holds the stylesheet and chart script served under /static/.
//
//go:embed all:static
var StaticFS embed.FS
