// Package compose builds the generation prompt from a batch of fetched
// records plus the format, tone, and length selectors.
package compose

import (
	"fmt"
	"strings"

	"recast/internal/model"
)

// excerptRunes is how much of a secondary record's body makes it into the
// prompt. Only the primary record is included in full.
const excerptRunes = 300

// Compose assembles the prompt text for one generation request. It is a pure
// function of its inputs: no randomness, no external calls, byte-identical
// output for identical inputs. Unknown contentType, tone, or length values
// resolve to the default instruction text rather than failing.
func Compose(records []model.Record, meta model.BatchMeta, contentType, tone, length string) string {
	var b strings.Builder

	origin := ""
	if meta != nil {
		origin = meta.Origin()
	}

	fmt.Fprintf(&b, "You are a content creator repurposing aggregated source material into a new piece.\n\n")
	fmt.Fprintf(&b, "Task: create a %s about %q.\n\n", displayName(contentType), origin)

	fmt.Fprintf(&b, "Format instructions:\n%s\n\n", contentTypeFor(contentType))
	fmt.Fprintf(&b, "Tone:\n%s\n\n", toneFor(tone))
	fmt.Fprintf(&b, "Length:\n%s\n\n", lengthFor(length))

	if len(records) > 0 {
		primary := records[0]
		b.WriteString("Primary content:\n")
		writeRecordHeader(&b, primary)
		b.WriteString(primary.Body)
		b.WriteString("\n")

		if len(primary.Related) > 0 {
			b.WriteString("\nRelated articles:\n")
			for _, rel := range primary.Related {
				writeExcerpt(&b, rel)
			}
		}

		if len(records) > 1 {
			b.WriteString("\nAdditional content:\n")
			for _, rec := range records[1:] {
				writeExcerpt(&b, rec)
			}
		}
	}

	b.WriteString("\nFinal instructions:\n")
	b.WriteString("1. Do not mention the platform or website the source material came from.\n")
	b.WriteString("2. Paraphrase everything in your own words; never quote the source text verbatim.\n")
	b.WriteString("3. Output only the finished piece, with no commentary about these instructions.\n")

	return b.String()
}

func writeRecordHeader(b *strings.Builder, rec model.Record) {
	fmt.Fprintf(b, "Title: %s\n", rec.Title)
	if rec.Author != "" {
		fmt.Fprintf(b, "Author: %s\n", rec.Author)
	}
	if len(rec.Categories) > 0 {
		fmt.Fprintf(b, "Categories: %s\n", strings.Join(rec.Categories, ", "))
	}
	b.WriteString("\n")
}

func writeExcerpt(b *strings.Builder, rec model.Record) {
	fmt.Fprintf(b, "- %s: %s\n", rec.Title, model.TruncateRunes(rec.Body, excerptRunes, "..."))
}

// displayName renders a selector key as readable prose for the task header.
func displayName(contentType string) string {
	switch contentType {
	case "blog_post":
		return "blog post"
	case "social_post":
		return "social media post"
	case "thread":
		return "discussion thread"
	case "newsletter":
		return "newsletter"
	case "script":
		return "video script"
	default:
		return "piece of content"
	}
}
