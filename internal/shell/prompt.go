package shell

import "strings"

// continuationPrompt builds the secondary prompt for an unfinished
// input unit. The tag names what the shell is waiting for (quote,
// dquote, */, semicolon, newline) and is right-aligned to the primary
// prompt's width with leading dots, so continued lines stay visually
// aligned with the first one. A tag wider than the primary prompt is
// shown unpadded.
func continuationPrompt(primary, tag string) string {
	suffix := tag + "> "
	if len(suffix) >= len(primary) {
		return suffix
	}
	return strings.Repeat(".", len(primary)-len(suffix)) + suffix
}
