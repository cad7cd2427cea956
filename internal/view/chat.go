package view

import (
	"fmt"
	"strings"

	"seo-web/internal/api"
)

const (
	FromUser = "user"
	FromBot  = "bot"
)

const welcomeText = "👋 Hi there! I'm Opty-bot, your SEO assistant. Ask me anything about SEO or how to improve your website's performance!"

type ChatMessage struct {
	From   string
	Text   string
	Failed bool
}

func Welcome() ChatMessage {
	return ChatMessage{From: FromBot, Text: welcomeText}
}

// ChatPrefill is the opening question when the chat is opened from a report.
func ChatPrefill(url string) string {
	if url == "" {
		return ""
	}
	return fmt.Sprintf("I'm looking at the SEO report for %s. Can you help me understand what I should focus on improving first?", url)
}

// NormalizeChatMessage trims a chat message; ok is false when nothing is
// left to send.
func NormalizeChatMessage(raw string) (msg string, ok bool) {
	msg = strings.TrimSpace(raw)
	return msg, msg != ""
}

// ChatExchange is the user's message followed by the bot's answer or the
// error that replaced it.
func ChatExchange(message string, res api.Result[api.ChatReply]) []ChatMessage {
	user := ChatMessage{From: FromUser, Text: message}
	if !res.IsOk() {
		return []ChatMessage{user, {
			From:   FromBot,
			Text:   fmt.Sprintf("I'm sorry, I encountered an error: %s. Please try again later.", res.Reason()),
			Failed: true,
		}}
	}
	return []ChatMessage{user, {From: FromBot, Text: res.Value.Response}}
}
