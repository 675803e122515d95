package lineutil

// LINE API limits (rune counts).
// References: https://developers.line.biz/en/reference/messaging-api/
const (
	MaxTextMessageLength = 5000 // Text message max content length
	MaxAltTextLength     = 400  // Template message alt text length
	MaxMessagesPerReply  = 5    // Messages per reply token

	// Buttons template
	MaxTemplateTitleLength   = 40
	MaxTemplateTextNoImage   = 160
	MaxTemplateTextWithImage = 60
	MaxTemplateActionCount   = 4
	MaxActionLabelLength     = 20

	// Quick reply
	MaxQuickReplyItemCount = 13
	MaxQuickReplyLabel     = 20
	MaxMessageActionText   = 300
)
