package models

import (
	"strings"
)

// gifMarker is the in-band token that prefixes a GIF attachment inside a
// free-text purpose/body field: "[GIF]<url> <optional text>". The compose
// side writes it, the render side parses it back out.
const gifMarker = "[GIF]"

// GIFPreviewText is the fixed inbox preview shown for messages carrying a
// GIF attachment
const GIFPreviewText = "📷 GIF"

// MessageContent is the decoded form of a purpose/body field
type MessageContent struct {
	Text   string
	GIFURL string
}

// ParseMessageBody decodes the in-band GIF marker out of a free-text body.
// Bodies without the marker come back as plain text.
func ParseMessageBody(body string) MessageContent {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, gifMarker) {
		return MessageContent{Text: body}
	}

	rest := body[len(gifMarker):]
	url := rest
	text := ""
	if i := strings.IndexAny(rest, " \t\n"); i >= 0 {
		url = rest[:i]
		text = strings.TrimSpace(rest[i:])
	}
	return MessageContent{Text: text, GIFURL: url}
}

// Encode re-inserts the GIF marker for persistence
func (m MessageContent) Encode() string {
	if m.GIFURL == "" {
		return m.Text
	}
	if m.Text == "" {
		return gifMarker + m.GIFURL
	}
	return gifMarker + m.GIFURL + " " + m.Text
}

// HasGIF reports whether the message carries a GIF attachment
func (m MessageContent) HasGIF() bool {
	return m.GIFURL != ""
}
