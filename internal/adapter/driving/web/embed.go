package web

import "embed"

// StaticFS holds the embedded static assets (stylesheet, particle animation,
// placeholder images).
//
//go:embed static/*
var StaticFS embed.FS
