// Package pipeline wires one run end to end: fetch, compose, generate.
// Control flow is strictly linear and synchronous; no state survives a run
// beyond the optional history row.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"recast/internal/compose"
	"recast/internal/engine"
	"recast/internal/model"
)

// Source selector values for Params.Source.
const (
	SourceCollection = "collection"
	SourceTopic      = "topic"
)

// SocialFetcher is what the pipeline needs from the social-source client.
type SocialFetcher interface {
	TopItems(ctx context.Context, name string, limit int, timeFilter string) ([]model.Record, model.CollectionInfo, error)
}

// TopicFetcher is what the pipeline needs from the encyclopedic client.
type TopicFetcher interface {
	TopicContent(ctx context.Context, topic string, numArticles int, includeRelated bool) ([]model.Record, model.TopicInfo, error)
}

// RunRecorder persists finished runs. Recording failures are logged, never
// fatal: the generated text is the deliverable, not the history row.
type RunRecorder interface {
	SaveRun(run model.Run) error
}

// Params are the collaborator-supplied knobs for one run.
type Params struct {
	Source         string // SourceCollection or SourceTopic
	Name           string // collection name or topic string
	ContentType    string
	Tone           string
	Length         string
	Limit          int    // item count (posts or articles)
	TimeFilter     string // collection runs only
	IncludeRelated bool   // topic runs only
}

// Result is everything one run produced.
type Result struct {
	RunID   string
	Prompt  string
	Output  string
	Records []model.Record
	Meta    model.BatchMeta
}

// Pipeline executes runs against its fetchers and model client.
type Pipeline struct {
	social SocialFetcher
	topics TopicFetcher
	model  engine.ModelClient
	runs   RunRecorder
	log    *slog.Logger
}

// New creates a pipeline. runs may be nil to disable history recording.
func New(social SocialFetcher, topics TopicFetcher, mc engine.ModelClient, runs RunRecorder, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{social: social, topics: topics, model: mc, runs: runs, log: log}
}

// Run executes fetch → compose → generate for the given parameters.
func (p *Pipeline) Run(ctx context.Context, params Params) (*Result, error) {
	runID := uuid.New().String()
	run := model.NewRun(runID, params.Source, params.Name, params.ContentType, params.Tone, params.Length)

	result, err := p.execute(ctx, runID, params)
	if err != nil {
		run.Status = model.RunStatusFailed
		run.ErrorText = err.Error()
		p.record(run)
		return nil, err
	}

	run.Status = model.RunStatusCompleted
	run.Output = result.Output
	p.record(run)
	return result, nil
}

func (p *Pipeline) execute(ctx context.Context, runID string, params Params) (*Result, error) {
	var (
		records []model.Record
		meta    model.BatchMeta
		err     error
	)

	switch params.Source {
	case SourceCollection:
		var info model.CollectionInfo
		records, info, err = p.social.TopItems(ctx, params.Name, params.Limit, params.TimeFilter)
		meta = info
	case SourceTopic:
		var info model.TopicInfo
		records, info, err = p.topics.TopicContent(ctx, params.Name, params.Limit, params.IncludeRelated)
		meta = info
	default:
		return nil, model.Errorf(model.KindInvalidParameter, "pipeline.Run",
			"unknown source %q, valid options are: %s, %s", params.Source, SourceCollection, SourceTopic)
	}
	if err != nil {
		return nil, &StepError{Step: "fetch", Err: err}
	}
	p.log.Info("fetched content", "run", runID, "source", params.Source, "name", params.Name, "records", len(records))

	prompt := compose.Compose(records, meta, params.ContentType, params.Tone, params.Length)
	p.log.Debug("composed prompt", "run", runID, "bytes", len(prompt))

	output, err := engine.Generate(ctx, p.model, prompt)
	if err != nil {
		return nil, &StepError{Step: "generate", Err: err}
	}
	p.log.Info("generated content", "run", runID, "bytes", len(output))

	return &Result{
		RunID:   runID,
		Prompt:  prompt,
		Output:  output,
		Records: records,
		Meta:    meta,
	}, nil
}

func (p *Pipeline) record(run model.Run) {
	if p.runs == nil {
		return
	}
	if err := p.runs.SaveRun(run); err != nil {
		p.log.Warn("save run history", "run", run.ID, "error", err)
	}
}

// StepError wraps an error with the pipeline step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
