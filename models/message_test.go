package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMessageBody_PlainText(t *testing.T) {
	content := ParseMessageBody("thanks for lunch")

	assert.Equal(t, "thanks for lunch", content.Text)
	assert.Empty(t, content.GIFURL)
	assert.False(t, content.HasGIF())
}

func TestParseMessageBody_GIFWithText(t *testing.T) {
	content := ParseMessageBody("[GIF]https://media.example.com/party.gif you earned it")

	assert.Equal(t, "https://media.example.com/party.gif", content.GIFURL)
	assert.Equal(t, "you earned it", content.Text)
	assert.True(t, content.HasGIF())
}

func TestParseMessageBody_GIFOnly(t *testing.T) {
	content := ParseMessageBody("[GIF]https://media.example.com/party.gif")

	assert.Equal(t, "https://media.example.com/party.gif", content.GIFURL)
	assert.Empty(t, content.Text)
	assert.True(t, content.HasGIF())
}

func TestParseMessageBody_Empty(t *testing.T) {
	content := ParseMessageBody("")

	assert.Empty(t, content.Text)
	assert.False(t, content.HasGIF())
}

func TestMessageContent_Encode_RoundTrip(t *testing.T) {
	original := MessageContent{
		Text:   "you earned it",
		GIFURL: "https://media.example.com/party.gif",
	}

	decoded := ParseMessageBody(original.Encode())

	assert.Equal(t, original, decoded)
}

func TestMessageContent_Encode_TextOnly(t *testing.T) {
	m := MessageContent{Text: "just text"}

	assert.Equal(t, "just text", m.Encode())
}

func TestMessageContent_Encode_GIFOnly(t *testing.T) {
	m := MessageContent{GIFURL: "https://media.example.com/party.gif"}

	assert.Equal(t, "[GIF]https://media.example.com/party.gif", m.Encode())
}
