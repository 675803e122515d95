package webhook

import (
	"cmp"
	"slices"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// selfMentions returns the bot's own mentions in msg.
func selfMentions(mention *webhook.Mention) []webhook.UserMentionee {
	if mention == nil {
		return nil
	}
	var out []webhook.UserMentionee
	for _, m := range mention.Mentionees {
		if um, ok := m.(webhook.UserMentionee); ok && um.IsSelf {
			out = append(out, um)
		}
	}
	return out
}

// isBotMentioned reports whether a group message addresses the bot.
func isBotMentioned(msg webhook.TextMessageContent) bool {
	return len(selfMentions(msg.Mention)) > 0
}

// removeBotMentions cuts the bot's mentions out of text and collapses the
// remaining whitespace. Mention offsets count runes.
func removeBotMentions(text string, mention *webhook.Mention) string {
	mentions := selfMentions(mention)
	if len(mentions) == 0 {
		return text
	}
	// Back to front, so earlier offsets stay valid.
	slices.SortFunc(mentions, func(a, b webhook.UserMentionee) int {
		return cmp.Compare(b.Index, a.Index)
	})

	runes := []rune(text)
	for _, m := range mentions {
		start := max(int(m.Index), 0)
		end := min(int(m.Index+m.Length), len(runes))
		if start >= end {
			continue
		}
		runes = append(runes[:start], runes[end:]...)
	}
	return strings.Join(strings.Fields(string(runes)), " ")
}
