// Package conv renders model output for the transports: markdown to
// Telegram-safe HTML and markdown to terminal plain text.
package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var telegramPolicy = newTelegramPolicy()

// newTelegramPolicy allows only the tags Telegram accepts.
// https://core.telegram.org/bots/api#html-style
func newTelegramPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	return p
}

// renderHTML is the shared markdown render pass. Parsers hold state,
// so one is built per call.
func renderHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.Render(p.Parse(md), r)
}

// MarkdownToTelegramHTML renders markdown and strips every tag
// Telegram would reject the whole message for.
func MarkdownToTelegramHTML(md []byte) string {
	return string(telegramPolicy.SanitizeBytes(renderHTML(md)))
}
