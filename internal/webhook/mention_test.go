package webhook

import (
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/stretchr/testify/assert"
)

func mentionOf(ms ...webhook.UserMentionee) *webhook.Mention {
	out := make([]webhook.MentioneeInterface, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return &webhook.Mention{Mentionees: out}
}

func TestIsBotMentioned(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mention *webhook.Mention
		want    bool
	}{
		{"no mention", nil, false},
		{"bot", mentionOf(webhook.UserMentionee{Index: 0, Length: 8, IsSelf: true}), true},
		{"other user", mentionOf(webhook.UserMentionee{Index: 0, Length: 5, UserId: "U1"}), false},
		{
			"bot among others",
			mentionOf(webhook.UserMentionee{Index: 0, Length: 5, UserId: "U1"}, webhook.UserMentionee{Index: 6, Length: 8, IsSelf: true}),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isBotMentioned(webhook.TextMessageContent{Text: "x", Mention: tt.mention}))
		})
	}
}

func TestRemoveBotMentions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		text    string
		mention *webhook.Mention
		want    string
	}{
		{"leading", "@BolaBot what is a tekong?", mentionOf(webhook.UserMentionee{Index: 0, Length: 8, IsSelf: true}), "what is a tekong?"},
		{"middle", "hey @BolaBot  show a video", mentionOf(webhook.UserMentionee{Index: 4, Length: 8, IsSelf: true}), "hey show a video"},
		{
			"keeps other users",
			"@Siti @BolaBot hi",
			mentionOf(webhook.UserMentionee{Index: 0, Length: 5, UserId: "U1"}, webhook.UserMentionee{Index: 6, Length: 8, IsSelf: true}),
			"@Siti hi",
		},
		{"multibyte", "@BolaBot 你好", mentionOf(webhook.UserMentionee{Index: 0, Length: 8, IsSelf: true}), "你好"},
		{"out of range", "hi", mentionOf(webhook.UserMentionee{Index: 5, Length: 3, IsSelf: true}), "hi"},
		{"no bot", "hi there", nil, "hi there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, removeBotMentions(tt.text, tt.mention))
		})
	}
}
