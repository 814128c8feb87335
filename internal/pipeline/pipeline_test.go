package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recast/internal/model"
)

type fakeSocial struct {
	records []model.Record
	info    model.CollectionInfo
	err     error
	calls   int
}

func (f *fakeSocial) TopItems(_ context.Context, _ string, _ int, _ string) ([]model.Record, model.CollectionInfo, error) {
	f.calls++
	return f.records, f.info, f.err
}

type fakeTopics struct {
	records []model.Record
	info    model.TopicInfo
	err     error
	calls   int
}

func (f *fakeTopics) TopicContent(_ context.Context, _ string, _ int, _ bool) ([]model.Record, model.TopicInfo, error) {
	f.calls++
	return f.records, f.info, f.err
}

type fakeModel struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeModel) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type fakeRecorder struct {
	runs []model.Run
}

func (f *fakeRecorder) SaveRun(run model.Run) error {
	f.runs = append(f.runs, run)
	return nil
}

func collectionParams() Params {
	return Params{
		Source:      SourceCollection,
		Name:        "golang",
		ContentType: "blog_post",
		Tone:        "casual",
		Length:      "short",
		Limit:       5,
		TimeFilter:  "day",
	}
}

func TestRun_CollectionSource(t *testing.T) {
	social := &fakeSocial{
		records: []model.Record{{Title: "Post", Body: "body"}},
		info:    model.CollectionInfo{Name: "golang"},
	}
	mc := &fakeModel{text: "a finished blog post"}
	rec := &fakeRecorder{}

	p := New(social, &fakeTopics{}, mc, rec, nil)
	result, err := p.Run(context.Background(), collectionParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Output != "a finished blog post" {
		t.Errorf("Output = %q", result.Output)
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if social.calls != 1 {
		t.Errorf("social fetcher called %d times, want 1", social.calls)
	}
	if len(mc.prompts) != 1 || !strings.Contains(mc.prompts[0], `about "golang"`) {
		t.Errorf("model prompt = %q", mc.prompts)
	}

	if len(rec.runs) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(rec.runs))
	}
	run := rec.runs[0]
	if run.Status != model.RunStatusCompleted {
		t.Errorf("run status = %q, want COMPLETED", run.Status)
	}
	if run.Output != "a finished blog post" {
		t.Errorf("run output = %q", run.Output)
	}
}

func TestRun_TopicSource(t *testing.T) {
	topics := &fakeTopics{
		records: []model.Record{{Title: "Article", Body: "body"}},
		info:    model.TopicInfo{Topic: "quantum computing"},
	}
	social := &fakeSocial{}
	mc := &fakeModel{text: "generated"}

	p := New(social, topics, mc, nil, nil)
	params := collectionParams()
	params.Source = SourceTopic
	params.Name = "quantum computing"

	result, err := p.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if topics.calls != 1 || social.calls != 0 {
		t.Errorf("calls = topics:%d social:%d, want 1/0", topics.calls, social.calls)
	}
	if result.Meta.Origin() != "quantum computing" {
		t.Errorf("Meta.Origin = %q", result.Meta.Origin())
	}
}

func TestRun_UnknownSource(t *testing.T) {
	p := New(&fakeSocial{}, &fakeTopics{}, &fakeModel{}, nil, nil)
	params := collectionParams()
	params.Source = "rss"

	_, err := p.Run(context.Background(), params)
	if !model.IsKind(err, model.KindInvalidParameter) {
		t.Fatalf("kind = %q, want invalid_parameter", model.KindOf(err))
	}
}

func TestRun_FetchFailure(t *testing.T) {
	cause := model.Errorf(model.KindSourceNotFound, "social.CollectionInfo", "collection %q not found", "golang")
	social := &fakeSocial{err: cause}
	mc := &fakeModel{text: "never used"}
	rec := &fakeRecorder{}

	p := New(social, &fakeTopics{}, mc, rec, nil)
	_, err := p.Run(context.Background(), collectionParams())
	if err == nil {
		t.Fatal("expected error")
	}

	var se *StepError
	if !errors.As(err, &se) || se.Step != "fetch" {
		t.Errorf("want StepError{fetch}, got %v", err)
	}
	if model.KindOf(err) != model.KindSourceNotFound {
		t.Errorf("kind = %q, original classification should survive", model.KindOf(err))
	}
	if len(mc.prompts) != 0 {
		t.Error("model should not be called after a fetch failure")
	}

	if len(rec.runs) != 1 || rec.runs[0].Status != model.RunStatusFailed {
		t.Fatalf("failed run should be recorded as FAILED, got %+v", rec.runs)
	}
	if !strings.Contains(rec.runs[0].ErrorText, "golang") {
		t.Errorf("recorded error should carry context: %q", rec.runs[0].ErrorText)
	}
}

func TestRun_GenerateFailure(t *testing.T) {
	social := &fakeSocial{records: []model.Record{{Title: "Post"}}}
	mc := &fakeModel{err: errors.New("service down")}

	p := New(social, &fakeTopics{}, mc, nil, nil)
	_, err := p.Run(context.Background(), collectionParams())

	var se *StepError
	if !errors.As(err, &se) || se.Step != "generate" {
		t.Errorf("want StepError{generate}, got %v", err)
	}
	if model.KindOf(err) != model.KindGenerationFailed {
		t.Errorf("kind = %q, want generation_failed", model.KindOf(err))
	}
}

func TestRun_PromptIsDeterministic(t *testing.T) {
	social := &fakeSocial{
		records: []model.Record{{Title: "Post", Body: "body"}},
		info:    model.CollectionInfo{Name: "golang"},
	}
	mc := &fakeModel{text: "out"}
	p := New(social, &fakeTopics{}, mc, nil, nil)

	if _, err := p.Run(context.Background(), collectionParams()); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(context.Background(), collectionParams()); err != nil {
		t.Fatal(err)
	}
	if mc.prompts[0] != mc.prompts[1] {
		t.Error("same params and records must compose the same prompt")
	}
}
