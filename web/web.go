// Package web embeds the single-page client served next to the API.
package web

import "embed"

//go:embed static
var Static embed.FS
