package conv

import (
	"bytes"
	"strings"

	"github.com/inbucket/html2text"
)

// MarkdownToPlainText renders markdown to terminal-friendly plain text.
// Model output often carries markdown emphasis that reads poorly in a
// console, so it goes through the shared render pass and is then
// flattened.
func MarkdownToPlainText(md []byte) string {
	text, err := html2text.FromReader(bytes.NewReader(renderHTML(md)), html2text.Options{
		OmitLinks:    false,
		PrettyTables: true,
	})
	if err != nil {
		return strings.TrimSpace(string(md))
	}
	return strings.TrimSpace(text)
}
