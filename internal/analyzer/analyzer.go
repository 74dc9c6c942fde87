// Package analyzer sends filtered commits to an OpenAI-compatible
// chat-completions API in bounded batches and parses each response into a
// partial experience report.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gitvitae/gitvitae/internal/commit"
	"github.com/gitvitae/gitvitae/internal/report"
)

const (
	// DefaultBatchSize keeps each prompt under the model's input limit.
	DefaultBatchSize = 20
	// DefaultDelay spaces out successive batch calls to respect rate limits.
	DefaultDelay = time.Second

	// DefaultModel is used unless GITVITAE_MODEL overrides it.
	DefaultModel = openai.GPT4oMini

	// APIKeyEnv holds the service API key; required for any analysis path.
	APIKeyEnv = "OPENAI_API_KEY"
	// ModelEnv optionally overrides the model identifier.
	ModelEnv = "GITVITAE_MODEL"

	maxResponseTokens = 1500
	temperature       = 0.7
)

// ChatCompleter is the slice of the OpenAI client the analyzer uses.
// *openai.Client satisfies it; tests substitute a stub.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// BatchError reports the batch that aborted an analysis run. The first
// failing batch fails the whole run; no partial results survive.
type BatchError struct {
	Batch int // zero-based batch index
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("analysis failed at batch %d: %v", e.Batch+1, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Analyzer turns a commit sequence into per-batch partial reports. The zero
// values of BatchSize and Delay mean the defaults.
type Analyzer struct {
	Client    ChatCompleter
	Model     string
	BatchSize int
	Delay     time.Duration
	Progress  io.Writer // per-batch progress lines; nil discards
}

// New returns an analyzer with default batch size, delay, and model.
func New(client ChatCompleter) *Analyzer {
	return &Analyzer{Client: client, Model: ModelFromEnv()}
}

// NewClientFromEnv builds the OpenAI client from the environment. A missing
// API key fails analysis only; commit fetching never needs it.
func NewClientFromEnv() (ChatCompleter, error) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("%s is not set", APIKeyEnv)
	}
	return openai.NewClient(key), nil
}

// ModelFromEnv returns the configured model identifier.
func ModelFromEnv() string {
	if m := os.Getenv(ModelEnv); m != "" {
		return m
	}
	return DefaultModel
}

// Partition splits commits into contiguous batches of at most size,
// preserving order. Only the final batch may be smaller than size.
func Partition(commits []commit.Record, size int) [][]commit.Record {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var batches [][]commit.Record
	for start := 0; start < len(commits); start += size {
		batches = append(batches, commits[start:min(start+size, len(commits))])
	}
	return batches
}

// Analyze processes batches strictly in order, pausing between calls, and
// returns one partial report per batch. The first failing batch aborts the
// run with a *BatchError; completed partials are discarded.
func (a *Analyzer) Analyze(ctx context.Context, commits []commit.Record, projectContext string) ([]report.Analysis, error) {
	batches := Partition(commits, a.BatchSize)
	partials := make([]report.Analysis, 0, len(batches))

	for i, batch := range batches {
		fmt.Fprintf(a.progress(), "Analyzing batch %d/%d (%d commits)...\n", i+1, len(batches), len(batch))

		partial, err := a.analyzeBatch(ctx, batch, projectContext)
		if err != nil {
			return nil, &BatchError{Batch: i, Err: err}
		}
		partials = append(partials, partial)

		if i < len(batches)-1 {
			time.Sleep(a.delay())
		}
	}
	return partials, nil
}

func (a *Analyzer) analyzeBatch(ctx context.Context, batch []commit.Record, projectContext string) (report.Analysis, error) {
	resp, err := a.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model(),
		Temperature: temperature,
		MaxTokens:   maxResponseTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(batch, projectContext)},
		},
	})
	if err != nil {
		return report.Analysis{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return report.Analysis{}, errors.New("empty model response")
	}
	return ParseResponse(resp.Choices[0].Message.Content)
}

func (a *Analyzer) model() string {
	if a.Model != "" {
		return a.Model
	}
	return DefaultModel
}

func (a *Analyzer) delay() time.Duration {
	if a.Delay > 0 {
		return a.Delay
	}
	return DefaultDelay
}

func (a *Analyzer) progress() io.Writer {
	if a.Progress != nil {
		return a.Progress
	}
	return io.Discard
}
