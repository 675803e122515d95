package lineutil

import (
	"strings"

	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

const watchLabel = "Watch on YouTube"

// RenderOptions controls how a Response is turned into LINE messages.
type RenderOptions struct {
	// PublicBaseURL makes relative image paths absolute.
	PublicBaseURL string
	Sender        *messaging_api.Sender
	// MaxMessages caps the reply; 0 uses the LINE limit.
	MaxMessages int
}

// Render converts resp into LINE messages: the text, then the image, then
// the video card. Suggestions become quick replies on the last message.
func Render(resp bot.Response, opts RenderOptions) []messaging_api.MessageInterface {
	limit := opts.MaxMessages
	if limit <= 0 || limit > MaxMessagesPerReply {
		limit = MaxMessagesPerReply
	}

	var msgs []messaging_api.MessageInterface
	if text := HTMLToText(resp.Text); text != "" {
		msgs = append(msgs, NewTextMessage(text))
	}
	if resp.Image != "" {
		msgs = append(msgs, imageMessage(AbsoluteURL(opts.PublicBaseURL, resp.Image)))
	}
	if resp.IFrame != "" {
		if frame, ok := ParseIFrame(resp.IFrame); ok {
			msgs = append(msgs, videoMessage(frame))
		}
	}

	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	for _, m := range msgs {
		SetSender(m, opts.Sender)
	}
	AddQuickReplyToMessages(msgs, QuickReplies(resp.Suggestions)...)
	return msgs
}

// QuickReplies maps suggestions to quick reply items. Linked suggestions
// open the link; the rest send their text back as a message.
func QuickReplies(suggestions []bot.Suggestion) []QuickReplyItem {
	items := make([]QuickReplyItem, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Link != "" {
			items = append(items, QuickReplyItem{Action: NewURIAction(s.Text, s.Link)})
			continue
		}
		items = append(items, QuickReplyItem{Action: NewMessageAction(s.Text, s.Text)})
	}
	return items
}

// imageMessage sends an image when the URL is HTTPS, which LINE requires,
// and the plain link otherwise.
func imageMessage(u string) messaging_api.MessageInterface {
	if strings.HasPrefix(u, "https://") {
		return NewImageMessage(u, u)
	}
	return NewTextMessage(u)
}

func videoMessage(frame IFrameInfo) messaging_api.MessageInterface {
	link := WatchURL(frame.Src)
	id, ok := YouTubeID(frame.Src)
	if !ok {
		return NewTextMessage(link)
	}
	title := frame.Title
	if title == "" {
		title = watchLabel
	}
	thumb := "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
	return NewButtonsTemplateWithImage(title+" "+link, "", title, thumb,
		[]Action{NewURIAction(watchLabel, link)})
}
