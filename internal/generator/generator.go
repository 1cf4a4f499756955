// Package generator runs the synthetic data pipeline for one upload: load the
// table, describe its schema, prompt the model, and turn the reply back into
// a table shaped like the original.
package generator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blagoySimandov/synthdata/internal/errs"
	"github.com/blagoySimandov/synthdata/internal/logging"
	"github.com/blagoySimandov/synthdata/internal/metrics"
	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/blagoySimandov/synthdata/internal/services"
	"github.com/blagoySimandov/synthdata/internal/table"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxOutputTokens = 2000
	DefaultTemperature     = 0.7
)

type IGenerator interface {
	Prepare(ctx context.Context, input *models.GenerationInput) (*Plan, error)
	Generate(ctx context.Context, input *models.GenerationInput) (*models.Table, error)
}

// Plan is everything known about a request before the model is called.
type Plan struct {
	Source  *models.Table
	Format  table.Format
	Schema  models.SchemaDescription
	Prompt  string
	NumRows int
}

type Generator struct {
	client          services.IAIClient
	prompts         services.IPromptBuilder
	policy          services.SchemaPolicy
	provider        string
	model           string
	maxOutputTokens int
	temperature     float32
}

type GeneratorConfig struct {
	Client          services.IAIClient
	PromptBuilder   services.IPromptBuilder
	SchemaPolicy    services.SchemaPolicy
	Provider        string
	Model           string
	MaxOutputTokens int
	Temperature     float32
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	prompts := cfg.PromptBuilder
	if prompts == nil {
		prompts = services.NewGenerationPromptBuilder()
	}

	policy := cfg.SchemaPolicy
	if policy == "" {
		policy = services.SchemaPolicyCoerce
	}

	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxOutputTokens
	}

	return &Generator{
		client:          cfg.Client,
		prompts:         prompts,
		policy:          policy,
		provider:        cfg.Provider,
		model:           cfg.Model,
		maxOutputTokens: maxTokens,
		temperature:     cfg.Temperature,
	}
}

// Prepare loads the upload and builds the prompt without calling the model.
func (g *Generator) Prepare(ctx context.Context, input *models.GenerationInput) (*Plan, error) {
	g.advance(ctx, models.StageReceived)

	if input.NumRows < 1 {
		return nil, errs.Errorf(errs.InvalidRequest, models.OpRequest, "row count must be at least 1, got %d", input.NumRows)
	}

	filename := table.SecureFilename(input.Filename)
	logging.EnrichUpload(ctx, filename, len(input.Data))

	source, format, err := table.Load(filename, input.Data)
	if err != nil {
		return nil, err
	}
	logging.EnrichTable(ctx, string(format), len(source.Columns), len(source.Rows))
	g.advance(ctx, models.StageLoaded)

	schema := services.DescribeSchema(source)
	g.advance(ctx, models.StageDescribed)

	if instruction := strings.TrimSpace(input.Instruction); instruction != "" {
		logging.EnrichMetadata(ctx, "instruction_chars", len(instruction))
	}
	prompt := g.prompts.Build(schema, input.NumRows, input.Instruction)
	logging.EnrichPrompt(ctx, len(prompt))
	g.advance(ctx, models.StagePrompted)

	return &Plan{
		Source:  source,
		Format:  format,
		Schema:  schema,
		Prompt:  prompt,
		NumRows: input.NumRows,
	}, nil
}

// Generate runs the whole pipeline and returns the synthetic table. Failures
// are tagged with an errs.Kind and the stage that raised them.
func (g *Generator) Generate(ctx context.Context, input *models.GenerationInput) (*models.Table, error) {
	logging.EnrichGeneration(ctx, g.provider, g.model, string(g.policy), input.NumRows)

	out, err := g.generate(ctx, input)
	if err != nil {
		g.advance(ctx, models.StageFailed)
		metrics.GenerationsTotal.WithLabelValues("failure", string(errs.KindOf(err))).Inc()
		return nil, err
	}

	logging.EnrichRowsGenerated(ctx, len(out.Rows))
	metrics.GenerationsTotal.WithLabelValues("success", "").Inc()
	metrics.RowsGenerated.Add(float64(len(out.Rows)))
	return out, nil
}

func (g *Generator) generate(ctx context.Context, input *models.GenerationInput) (*models.Table, error) {
	plan, err := g.Prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	raw, err := g.complete(ctx, plan.Prompt)
	if err != nil {
		return nil, err
	}
	g.advance(ctx, models.StageCompleted)

	payload := services.StripCodeFence(raw)
	g.advance(ctx, models.StageExtracted)

	reply, err := table.Reparse(payload)
	if err != nil {
		log.Debug().
			Str("trace_id", logging.GetTraceID(ctx)).
			Int("reply_chars", len(raw)).
			Msg("completion is not well-formed CSV")
		return nil, err
	}
	g.advance(ctx, models.StageReparsed)

	out, err := services.ConformToSchema(reply, plan.Schema, g.policy, plan.NumRows)
	if err != nil {
		return nil, err
	}
	g.advance(ctx, models.StageConformed)

	if len(out.Rows) < plan.NumRows {
		log.Warn().
			Str("trace_id", logging.GetTraceID(ctx)).
			Int("requested", plan.NumRows).
			Int("received", len(out.Rows)).
			Msg("model returned fewer rows than requested")
	}
	return out, nil
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errs.Errorf(errs.Internal, models.OpComplete, "no completion client configured")
	}

	req := &models.CompletionRequest{
		SystemPrompt:    services.SystemPrompt,
		UserPrompt:      prompt,
		MaxOutputTokens: g.maxOutputTokens,
		Candidates:      1,
		Temperature:     g.temperature,
	}

	start := time.Now()
	resp, err := g.client.GenerateContent(ctx, req)
	outcome := "success"
	if err == nil && (resp == nil || strings.TrimSpace(resp.Text) == "") {
		err = services.ErrEmptyCompletion
	}
	if err != nil {
		outcome = "failure"
	}
	metrics.CompletionDuration.WithLabelValues(g.provider, outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		return "", errs.E(errs.CollaboratorFailure, models.OpComplete, fmt.Errorf("completion request failed: %w", err))
	}
	return strings.TrimSpace(resp.Text), nil
}

func (g *Generator) advance(ctx context.Context, stage models.Stage) {
	logging.EnrichStage(ctx, string(stage))
	log.Debug().
		Str("trace_id", logging.GetTraceID(ctx)).
		Str("stage", string(stage)).
		Msg("generation stage")
}

// ResolveRowCount turns the raw numRows form value into a row count. A blank
// value or an integer below 1 yields def. A value that is not an integer, or
// is above max, is an InvalidRequest.
func ResolveRowCount(raw string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Errorf(errs.InvalidRequest, models.OpRequest, "numRows must be an integer, got %q", raw)
	}
	if n < 1 {
		return def, nil
	}

	if err := validation.Validate(n, validation.Required, validation.Max(max)); err != nil {
		return 0, errs.E(errs.InvalidRequest, models.OpRequest, fmt.Errorf("numRows %w", err))
	}
	return n, nil
}
