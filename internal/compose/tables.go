package compose

// Lookup tables mapping the format, tone, and length selectors to
// instruction text. Each table is paired with a default so unknown selector
// values never fail; they fall back to the generic instruction.

var contentTypeInstructions = map[string]string{
	"blog_post": "Structure the piece as a blog post: a compelling headline, a short introduction " +
		"that hooks the reader, clearly separated sections with subheadings, and a closing takeaway.",
	"script": "Write a spoken-word script: a cold-open hook in the first two sentences, " +
		"conversational transitions between segments, and a short outro with a call to action. " +
		"Mark natural pause points with [PAUSE].",
	"social_post": "Write a single standalone social media post: one strong hook line, a compact " +
		"insight-driven body, and three to five relevant hashtags on the final line.",
	"thread": "Write a numbered thread of six to ten connected posts. The first post must hook the " +
		"reader, every later post should carry exactly one idea, and the final post should " +
		"summarize and invite discussion.",
	"newsletter": "Write a newsletter edition: a personal greeting, a short editor's note, the main " +
		"story, a brief section summarizing the secondary items, and a sign-off.",
}

const defaultContentTypeInstruction = "Structure the piece clearly: an introduction, a body organized " +
	"one idea per section, and a conclusion."

var toneInstructions = map[string]string{
	"professional": "Use a polished, authoritative voice. Precise wording, no slang, confident claims " +
		"backed by the source material.",
	"casual": "Use a relaxed, conversational voice, as if explaining to a friend. Contractions and " +
		"light asides are fine.",
	"humorous": "Keep it witty and playful. Work in light jokes and amusing observations without " +
		"undercutting the substance.",
	"educational": "Teach as you go: define terms on first use, build from simple to complex, and " +
		"favor concrete examples over abstractions.",
	"inspirational": "Use an uplifting, motivating voice. Emphasize possibility and progress, and end " +
		"on a forward-looking note.",
}

const defaultToneInstruction = "Use a clear, neutral voice accessible to a general audience."

var lengthGuidance = map[string]string{
	"short":  "Keep it concise: roughly 150 to 300 words.",
	"medium": "Aim for roughly 500 to 800 words.",
	"long":   "Write a thorough piece of roughly 1200 to 2000 words.",
}

const defaultLengthGuidance = "Use as many words as the material naturally requires, around 500 to 800."

func contentTypeFor(key string) string {
	if v, ok := contentTypeInstructions[key]; ok {
		return v
	}
	return defaultContentTypeInstruction
}

func toneFor(key string) string {
	if v, ok := toneInstructions[key]; ok {
		return v
	}
	return defaultToneInstruction
}

func lengthFor(key string) string {
	if v, ok := lengthGuidance[key]; ok {
		return v
	}
	return defaultLengthGuidance
}
