package project

import "strings"

// FontID selects a font stack from the closed font enumeration.
type FontID string

const (
	FontDefault   FontID = "default"
	FontInter     FontID = "inter"
	FontGeorgia   FontID = "georgia"
	FontGaramond  FontID = "garamond"
	FontHelvetica FontID = "helvetica"
	FontCourier   FontID = "courier"
)

// fontStacks maps font tokens to concrete CSS font-stack strings.
// FontDefault is intentionally absent: it is a no-op and leaves the
// template's own font untouched.
var fontStacks = map[FontID]string{
	FontInter:     `"Inter", "Segoe UI", Arial, sans-serif`,
	FontGeorgia:   `Georgia, "Times New Roman", serif`,
	FontGaramond:  `"EB Garamond", Garamond, serif`,
	FontHelvetica: `"Helvetica Neue", Helvetica, Arial, sans-serif`,
	FontCourier:   `"Courier New", Courier, monospace`,
}

// ParseFont resolves a font token, falling back to FontDefault.
func ParseFont(token string) FontID {
	id := FontID(strings.ToLower(strings.TrimSpace(token)))
	if id == FontDefault {
		return FontDefault
	}
	if _, ok := fontStacks[id]; ok {
		return id
	}
	return FontDefault
}

// Stack returns the CSS font stack for the font, or "" for the default
// (no override).
func (f FontID) Stack() string {
	return fontStacks[f]
}
