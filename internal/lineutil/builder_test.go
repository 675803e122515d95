package lineutil

import (
	"strings"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateRunes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "takraw", 10, "takraw"},
		{"exact", "takraw", 6, "takraw"},
		{"long", "sepak takraw", 8, "sepak..."},
		{"multibyte", "héllo wörld", 7, "héll..."},
		{"tiny limit", "takraw", 2, "ta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TruncateRunes(tt.in, tt.max))
		})
	}
}

func TestNewTextMessage_Truncates(t *testing.T) {
	t.Parallel()
	msg := NewTextMessage(strings.Repeat("a", MaxTextMessageLength+10))
	assert.Len(t, []rune(msg.Text), MaxTextMessageLength)
	assert.True(t, strings.HasSuffix(msg.Text, "..."))
}

func TestNewButtonsTemplateWithImage(t *testing.T) {
	t.Parallel()
	actions := []Action{
		NewURIAction("1", "https://a"), NewURIAction("2", "https://b"),
		NewURIAction("3", "https://c"), NewURIAction("4", "https://d"), NewURIAction("5", "https://e"),
	}
	msg := NewButtonsTemplateWithImage("alt", "", strings.Repeat("x", 100), "https://img", actions)

	tmpl, ok := msg.Template.(*messaging_api.ButtonsTemplate)
	require.True(t, ok)
	assert.Len(t, tmpl.Actions, MaxTemplateActionCount)
	assert.Len(t, []rune(tmpl.Text), MaxTemplateTextWithImage)
	assert.Empty(t, tmpl.Title)
	assert.Equal(t, "https://img", tmpl.ThumbnailImageUrl)
}

func TestMessageActionLabel(t *testing.T) {
	t.Parallel()
	a, ok := NewMessageAction("How to play Sepak Takraw?", "How to play Sepak Takraw?").(*messaging_api.MessageAction)
	require.True(t, ok)
	assert.Len(t, []rune(a.Label), MaxQuickReplyLabel)
	assert.Equal(t, "How to play Sepak Takraw?", a.Text)
}

func TestAddQuickReplyToMessages(t *testing.T) {
	t.Parallel()
	first := NewTextMessage("a")
	last := NewImageMessage("https://x", "https://x")
	msgs := []messaging_api.MessageInterface{first, last}

	AddQuickReplyToMessages(msgs, QuickReplyItem{Action: NewMessageAction("hi", "hi")})
	assert.Nil(t, first.QuickReply)
	require.NotNil(t, last.QuickReply)
	assert.Len(t, last.QuickReply.Items, 1)

	AddQuickReplyToMessages(nil, QuickReplyItem{})
}

func TestGetSender(t *testing.T) {
	t.Parallel()
	assert.Nil(t, GetSender("", "https://icon"))
	s := GetSender("BolaBot", "https://icon")
	assert.Equal(t, "BolaBot", s.Name)
	assert.Equal(t, "https://icon", s.IconUrl)
}
