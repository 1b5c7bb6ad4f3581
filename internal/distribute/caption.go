package distribute

import "strings"

const defaultCaptionTemplate = "{title}\n\n{hashtags}"

// RenderCaption fills a caption template. The template may reference {title}
// and {hashtags}; hashtags are rendered as #tag tokens, capped at limit when
// limit is positive.
func RenderCaption(template, title string, hashtags []string, limit int) string {
	if strings.TrimSpace(template) == "" {
		template = defaultCaptionTemplate
	}
	rendered := strings.ReplaceAll(template, "{title}", title)
	rendered = strings.ReplaceAll(rendered, "{hashtags}", renderHashtags(hashtags, limit))
	return strings.TrimSpace(rendered)
}

func renderHashtags(tags []string, limit int) string {
	tokens := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.TrimPrefix(tag, "#"))
		if tag == "" {
			continue
		}
		tokens = append(tokens, "#"+tag)
		if limit > 0 && len(tokens) == limit {
			break
		}
	}
	return strings.Join(tokens, " ")
}
