package singbox

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Share links carry RFC 3986 sub-delims verbatim (alpn=h2,http/1.1 or a
// ';' in a path), so the class accepts them and trailingPunct strips what
// prose usually leaves behind a pasted link.
var shareLinkPattern = regexp.MustCompile(`(?:ss|vmess|trojan|vless|hy2|hysteria2|anytls)://[a-zA-Z0-9_\-.:@?=&%#+/\[\]~,!$'()*;]+`)

const trailingPunct = ".,;:!?)'\""

// ExtractLinks returns every supported share link found in text, in the
// order they first appear.
func ExtractLinks(text string) []string {
	var found []string
	for line := range strings.Lines(text) {
		for _, m := range shareLinkPattern.FindAllString(line, -1) {
			if link := strings.TrimRight(m, trailingPunct); !strings.HasSuffix(link, "://") {
				found = append(found, link)
			}
		}
	}
	return lo.Uniq(found)
}
