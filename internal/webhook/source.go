package webhook

import "github.com/line/line-bot-sdk-go/v8/linebot/webhook"

type eventMeta struct {
	id         string
	replyToken string
	redelivery bool
	userID     string
	chatID     string
	isUser     bool
}

func eventMetaOf(event webhook.EventInterface) eventMeta {
	var (
		m       eventMeta
		source  webhook.SourceInterface
		dc      *webhook.DeliveryContext
	)
	switch e := event.(type) {
	case webhook.MessageEvent:
		m.id, m.replyToken, source, dc = e.WebhookEventId, e.ReplyToken, e.Source, e.DeliveryContext
	case webhook.FollowEvent:
		m.id, m.replyToken, source, dc = e.WebhookEventId, e.ReplyToken, e.Source, e.DeliveryContext
	case webhook.PostbackEvent:
		m.id, m.replyToken, source, dc = e.WebhookEventId, e.ReplyToken, e.Source, e.DeliveryContext
	}
	if dc != nil {
		m.redelivery = dc.IsRedelivery
	}
	m.userID, m.chatID, m.isUser = sourceIDs(source)
	return m
}

// sourceIDs returns the sending user, the chat to reply in and whether the
// chat is a one-to-one conversation.
func sourceIDs(source webhook.SourceInterface) (userID, chatID string, isUser bool) {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId, s.UserId, true
	case webhook.GroupSource:
		return s.UserId, s.GroupId, false
	case webhook.RoomSource:
		return s.UserId, s.RoomId, false
	}
	return "", "", false
}
