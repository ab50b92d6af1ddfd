package models

import (
	"fmt"
	"strings"
)

// EmbedType selects how an embedded surface is framed
type EmbedType string

const (
	EmbedIframe      EmbedType = "iframe"
	EmbedVideo       EmbedType = "video"
	EmbedProcessing  EmbedType = "processing"
	EmbedAudio       EmbedType = "audio"
	EmbedHuggingFace EmbedType = "huggingface"
)

// Valid reports whether t is a known embed type. The empty value means iframe.
func (t EmbedType) Valid() bool {
	switch t {
	case "", EmbedIframe, EmbedVideo, EmbedProcessing, EmbedAudio, EmbedHuggingFace:
		return true
	}
	return false
}

// ButtonType selects the call-to-action rendered on a card
type ButtonType string

const (
	ButtonSource ButtonType = "source"
	ButtonLaunch ButtonType = "launch"
	ButtonListen ButtonType = "listen"
	ButtonView   ButtonType = "view"
)

// Valid reports whether b is a known button type. The empty value means source.
func (b ButtonType) Valid() bool {
	switch b {
	case "", ButtonSource, ButtonLaunch, ButtonListen, ButtonView:
		return true
	}
	return false
}

// Label returns the button caption
func (b ButtonType) Label() string {
	switch b {
	case ButtonLaunch:
		return "Launch App"
	case ButtonListen:
		return "Listen"
	case ButtonView:
		return "View Case Study"
	default:
		return "View Source"
	}
}

// ContentType is the coarse classification used by the filter bar
type ContentType string

const (
	ContentAll     ContentType = "ALL"
	ContentCode    ContentType = "CODE"
	ContentVisuals ContentType = "VISUALS"
	ContentAudio   ContentType = "AUDIO"
)

// ContentTypes lists the filter buttons in display order
var ContentTypes = []ContentType{ContentAll, ContentCode, ContentVisuals, ContentAudio}

// ParseContentType parses s case-insensitively. An empty string is ALL.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(strings.ToUpper(strings.TrimSpace(s))) {
	case "", ContentAll:
		return ContentAll, nil
	case ContentCode:
		return ContentCode, nil
	case ContentVisuals:
		return ContentVisuals, nil
	case ContentAudio:
		return ContentAudio, nil
	}
	return ContentAll, fmt.Errorf("invalid content type: %s", s)
}
