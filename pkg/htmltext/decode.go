// Package htmltext decodes the small set of HTML character entities that
// trivia providers embed in question, answer and category text.
package htmltext

import "strings"

// replacements maps named entities to their display characters. Pairs apply
// strictly in slice order: &amp; must rewrite before the angle bracket
// entities so malformed input like &amp;lt; cannot cascade into a second
// substitution.
var replacements = []struct {
	entity string
	text   string
}{
	{"&quot;", `"`},
	{"&#039;", "'"},
	{"&apos;", "'"},
	{"&amp;", "and"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&ndash;", "-"},
	{"&mdash;", "-"},
	{"&hellip;", "..."},
	{"&lsquo;", "'"},
	{"&rsquo;", "'"},
	{"&ldquo;", `"`},
	{"&rdquo;", `"`},
	{"&deg;", "°"},
	{"&pound;", "£"},
	{"&euro;", "€"},
	{"&cent;", "¢"},
	{"&yen;", "¥"},
	{"&eacute;", "é"},
	{"&egrave;", "è"},
	{"&aacute;", "á"},
	{"&agrave;", "à"},
	{"&iacute;", "í"},
	{"&oacute;", "ó"},
	{"&uacute;", "ú"},
	{"&ntilde;", "ñ"},
	{"&uuml;", "ü"},
	{"&ouml;", "ö"},
	{"&auml;", "ä"},
	{"&ccedil;", "ç"},
	{"&szlig;", "ß"},
	{"&nbsp;", " "},
}

// Decode rewrites the known entities in raw into their display characters.
// Unknown entities pass through unchanged, so the function is total and
// idempotent on text that contains no entities.
func Decode(raw string) string {
	if !strings.Contains(raw, "&") {
		return raw
	}
	for _, r := range replacements {
		raw = strings.ReplaceAll(raw, r.entity, r.text)
	}
	return raw
}
