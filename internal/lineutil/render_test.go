package lineutil

import (
	"testing"

	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/bolabot/bolabot-go/internal/catalog"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLToText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello there.", "Hello there."},
		{
			"survey link",
			"Great! Please click the link below to fill out the survey:<br><a href='https://forms.test/x' target='_blank'>Take the Survey</a>",
			"Great! Please click the link below to fill out the survey:\nTake the Survey: https://forms.test/x",
		},
		{"entity", "Rock &amp; roll", "Rock & roll"},
		{"bare link", `<a href="https://x.test">https://x.test</a>`, "https://x.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HTMLToText(tt.in))
		})
	}
}

func TestYouTubeLinks(t *testing.T) {
	t.Parallel()
	id, ok := YouTubeID("https://www.youtube.com/embed/N-ZInLq317c")
	require.True(t, ok)
	assert.Equal(t, "N-ZInLq317c", id)

	assert.Equal(t, "https://youtu.be/abc", WatchURL("https://youtube.com/watch?v=abc"))
	assert.Equal(t, "https://vimeo.com/1", WatchURL("https://vimeo.com/1"))
}

func TestAbsoluteURL(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "https://bot.test/static/images/ball.jpg", AbsoluteURL("https://bot.test", "/static/images/ball.jpg"))
	assert.Equal(t, "https://cdn.test/a.jpg", AbsoluteURL("https://bot.test", "https://cdn.test/a.jpg"))
	assert.Equal(t, "/static/a.jpg", AbsoluteURL("", "/static/a.jpg"))
}

func TestRender_Image(t *testing.T) {
	t.Parallel()
	resp := bot.Response{
		Text:        "The official Sepak Takraw ball.",
		Image:       "/static/images/ball.jpg",
		Suggestions: bot.Suggest("Show a spike image", "Rules of the game"),
	}
	msgs := Render(resp, RenderOptions{PublicBaseURL: "https://bot.test", Sender: GetSender("BolaBot", "")})
	require.Len(t, msgs, 2)

	text, ok := msgs[0].(*messaging_api.TextMessage)
	require.True(t, ok)
	assert.Equal(t, resp.Text, text.Text)
	assert.Equal(t, "BolaBot", text.Sender.Name)
	assert.Nil(t, text.QuickReply)

	img, ok := msgs[1].(*messaging_api.ImageMessage)
	require.True(t, ok)
	assert.Equal(t, "https://bot.test/static/images/ball.jpg", img.OriginalContentUrl)
	require.NotNil(t, img.QuickReply)
	assert.Len(t, img.QuickReply.Items, 2)
}

func TestRender_HTTPImageFallsBackToLink(t *testing.T) {
	t.Parallel()
	msgs := Render(bot.Response{Text: "x", Image: "/static/a.jpg"}, RenderOptions{PublicBaseURL: "http://localhost:8080"})
	require.Len(t, msgs, 2)
	link, ok := msgs[1].(*messaging_api.TextMessage)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8080/static/a.jpg", link.Text)
}

func TestRender_Video(t *testing.T) {
	t.Parallel()
	v := catalog.Default().Videos[0]
	msgs := Render(bot.Response{Text: v.Reply, IFrame: v.IFrame()}, RenderOptions{})
	require.Len(t, msgs, 2)

	tmpl, ok := msgs[1].(*messaging_api.TemplateMessage)
	require.True(t, ok)
	buttons, ok := tmpl.Template.(*messaging_api.ButtonsTemplate)
	require.True(t, ok)
	require.Len(t, buttons.Actions, 1)
	uri, ok := buttons.Actions[0].(*messaging_api.UriAction)
	require.True(t, ok)
	assert.Equal(t, "https://youtu.be/N-ZInLq317c", uri.Uri)
	assert.Equal(t, "https://img.youtube.com/vi/N-ZInLq317c/hqdefault.jpg", buttons.ThumbnailImageUrl)
}

func TestRender_LinkedSuggestion(t *testing.T) {
	t.Parallel()
	resp := bot.Response{
		Text:        "Before you go?",
		Suggestions: []bot.Suggestion{{Text: "Yes, take me to the survey", Link: "https://s.test"}, {Text: "No thanks"}},
	}
	msgs := Render(resp, RenderOptions{})
	require.Len(t, msgs, 1)
	text := msgs[0].(*messaging_api.TextMessage)
	require.NotNil(t, text.QuickReply)

	uri, ok := text.QuickReply.Items[0].Action.(*messaging_api.UriAction)
	require.True(t, ok)
	assert.Equal(t, "https://s.test", uri.Uri)
	msg, ok := text.QuickReply.Items[1].Action.(*messaging_api.MessageAction)
	require.True(t, ok)
	assert.Equal(t, "No thanks", msg.Text)
}
