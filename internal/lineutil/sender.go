package lineutil

import "github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

// GetSender creates the sender shown on every message of one reply.
// An empty name returns nil, which keeps the channel's default profile.
func GetSender(name, iconURL string) *messaging_api.Sender {
	if name == "" {
		return nil
	}
	sender := &messaging_api.Sender{Name: TruncateRunes(name, MaxActionLabelLength)}
	if iconURL != "" {
		sender.IconUrl = iconURL
	}
	return sender
}
