package compose

import (
	"strings"
	"testing"

	"recast/internal/model"
)

func sampleBatch() ([]model.Record, model.BatchMeta) {
	records := []model.Record{
		{
			Title:  "Go 1.26 released",
			Body:   "The latest Go release ships with...",
			Author: "gopher",
			Related: []model.Record{
				{Title: "Go modules", Body: strings.Repeat("m", 400)},
			},
		},
		{Title: "Generics in practice", Body: strings.Repeat("g", 400)},
		{Title: "Error handling survey", Body: "Short body."},
	}
	meta := model.CollectionInfo{Name: "golang"}
	return records, meta
}

func TestCompose_Deterministic(t *testing.T) {
	records, meta := sampleBatch()

	a := Compose(records, meta, "blog_post", "casual", "short")
	b := Compose(records, meta, "blog_post", "casual", "short")
	if a != b {
		t.Error("identical inputs must produce byte-identical prompts")
	}
}

func TestCompose_KnownSelectors(t *testing.T) {
	records, meta := sampleBatch()
	prompt := Compose(records, meta, "newsletter", "humorous", "long")

	for _, want := range []string{
		`create a newsletter about "golang"`,
		contentTypeInstructions["newsletter"],
		toneInstructions["humorous"],
		lengthGuidance["long"],
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestCompose_UnknownSelectorsFallBack(t *testing.T) {
	records, meta := sampleBatch()
	prompt := Compose(records, meta, "haiku", "sarcastic", "epic")

	for _, want := range []string{
		defaultContentTypeInstruction,
		defaultToneInstruction,
		defaultLengthGuidance,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing default instruction %q", want)
		}
	}
}

func TestCompose_PrimaryContentInFull(t *testing.T) {
	records, meta := sampleBatch()
	prompt := Compose(records, meta, "blog_post", "professional", "medium")

	if !strings.Contains(prompt, "The latest Go release ships with...") {
		t.Error("primary record body should appear in full")
	}
	if !strings.Contains(prompt, "Title: Go 1.26 released") {
		t.Error("primary record title should appear")
	}
}

func TestCompose_SecondarySectionsTruncated(t *testing.T) {
	records, meta := sampleBatch()
	prompt := Compose(records, meta, "blog_post", "professional", "medium")

	if !strings.Contains(prompt, "Related articles:") {
		t.Error("related section missing")
	}
	if !strings.Contains(prompt, "Additional content:") {
		t.Error("additional section missing")
	}

	// Related and additional bodies are cut to the excerpt length.
	if strings.Contains(prompt, strings.Repeat("m", 301)) {
		t.Error("related body should be truncated to the excerpt length")
	}
	if !strings.Contains(prompt, strings.Repeat("m", 300)+"...") {
		t.Error("related excerpt should end with an ellipsis")
	}
	if strings.Contains(prompt, strings.Repeat("g", 301)) {
		t.Error("additional body should be truncated to the excerpt length")
	}

	// A short additional body passes through whole.
	if !strings.Contains(prompt, "- Error handling survey: Short body.") {
		t.Error("short additional body should appear untruncated")
	}
}

func TestCompose_NoSecondarySectionsForSingleRecord(t *testing.T) {
	records := []model.Record{{Title: "Solo", Body: "body"}}
	prompt := Compose(records, model.TopicInfo{Topic: "solo topic"}, "script", "casual", "short")

	if strings.Contains(prompt, "Related articles:") {
		t.Error("no related section without related records")
	}
	if strings.Contains(prompt, "Additional content:") {
		t.Error("no additional section for a single record")
	}
	if !strings.Contains(prompt, `about "solo topic"`) {
		t.Error("topic origin should appear in the task header")
	}
}

func TestCompose_ClosingInstructions(t *testing.T) {
	records, meta := sampleBatch()
	prompt := Compose(records, meta, "thread", "educational", "medium")

	if !strings.Contains(prompt, "Do not mention the platform") {
		t.Error("closing instructions must forbid naming the source platform")
	}
	if !strings.Contains(prompt, "Paraphrase") {
		t.Error("closing instructions must require paraphrasing")
	}
}

func TestCompose_EmptyRecords(t *testing.T) {
	prompt := Compose(nil, model.TopicInfo{Topic: "empty"}, "blog_post", "casual", "short")
	if prompt == "" {
		t.Error("compose is total: empty input still yields instruction text")
	}
	if strings.Contains(prompt, "Primary content:") {
		t.Error("no primary section without records")
	}
}
