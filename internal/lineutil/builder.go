// Package lineutil converts bot responses into LINE messages.
package lineutil

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// QuickReplyItem represents an item in a quick reply.
type QuickReplyItem struct {
	ImageURL string
	Action   messaging_api.ActionInterface
}

// Action is an alias for the LINE SDK action interface for convenience.
type Action = messaging_api.ActionInterface

// NewImageMessage creates an image message. LINE requires both URLs to be HTTPS.
func NewImageMessage(originalContentURL, previewImageURL string) *messaging_api.ImageMessage {
	return &messaging_api.ImageMessage{
		OriginalContentUrl: originalContentURL,
		PreviewImageUrl:    previewImageURL,
	}
}

// NewTextMessage creates a text message, truncated to the LINE limit.
func NewTextMessage(text string) *messaging_api.TextMessage {
	return &messaging_api.TextMessage{Text: TruncateRunes(text, MaxTextMessageLength)}
}

// NewButtonsTemplateWithImage creates a buttons template with an optional
// thumbnail. Text is limited to 60 runes with an image and 160 without.
func NewButtonsTemplateWithImage(altText, title, text, thumbnailImageURL string, actions []Action) *messaging_api.TemplateMessage {
	if len(actions) > MaxTemplateActionCount {
		actions = actions[:MaxTemplateActionCount]
	}
	maxText := MaxTemplateTextNoImage
	if thumbnailImageURL != "" {
		maxText = MaxTemplateTextWithImage
	}

	template := &messaging_api.ButtonsTemplate{
		Text:    TruncateRunes(text, maxText),
		Actions: actions,
	}
	if title != "" {
		template.Title = TruncateRunes(title, MaxTemplateTitleLength)
	}
	if thumbnailImageURL != "" {
		template.ThumbnailImageUrl = thumbnailImageURL
	}

	return &messaging_api.TemplateMessage{
		AltText:  TruncateRunes(altText, MaxAltTextLength),
		Template: template,
	}
}

// NewQuickReply creates a quick reply, keeping at most 13 items.
func NewQuickReply(items []QuickReplyItem) *messaging_api.QuickReply {
	if len(items) > MaxQuickReplyItemCount {
		items = items[:MaxQuickReplyItemCount]
	}
	out := make([]messaging_api.QuickReplyItem, len(items))
	for i, item := range items {
		out[i] = messaging_api.QuickReplyItem{Action: item.Action}
		if item.ImageURL != "" {
			out[i].ImageUrl = item.ImageURL
		}
	}
	return &messaging_api.QuickReply{Items: out}
}

// NewMessageAction creates an action that sends text when tapped.
func NewMessageAction(label, text string) Action {
	return &messaging_api.MessageAction{
		Label: TruncateRunes(label, MaxQuickReplyLabel),
		Text:  TruncateRunes(text, MaxMessageActionText),
	}
}

// NewURIAction creates an action that opens uri when tapped.
func NewURIAction(label, uri string) Action {
	return &messaging_api.UriAction{
		Label: TruncateRunes(label, MaxActionLabelLength),
		Uri:   uri,
	}
}

// SetSender sets the Sender field on a message and returns it.
func SetSender(msg messaging_api.MessageInterface, sender *messaging_api.Sender) messaging_api.MessageInterface {
	if sender == nil {
		return msg
	}
	switch m := msg.(type) {
	case *messaging_api.TextMessage:
		m.Sender = sender
	case *messaging_api.TemplateMessage:
		m.Sender = sender
	case *messaging_api.ImageMessage:
		m.Sender = sender
	}
	return msg
}

// AddQuickReplyToMessages attaches quick reply items to the last message.
// It is a no-op when the last message does not support quick replies.
func AddQuickReplyToMessages(messages []messaging_api.MessageInterface, items ...QuickReplyItem) {
	if len(messages) == 0 || len(items) == 0 {
		return
	}
	qr := NewQuickReply(items)
	switch m := messages[len(messages)-1].(type) {
	case *messaging_api.TextMessage:
		m.QuickReply = qr
	case *messaging_api.TemplateMessage:
		m.QuickReply = qr
	case *messaging_api.ImageMessage:
		m.QuickReply = qr
	}
}

// TruncateRunes truncates text by rune count (not byte count) to properly handle UTF-8.
// Returns truncated string with "..." if exceeds maxRunes.
func TruncateRunes(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
