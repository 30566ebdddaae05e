// Package views embeds the HTML templates rendered by the web host.
package views

import "embed"

//go:embed *.html layouts/*.html
var FS embed.FS
