package whisper

import (
	"context"

	"github.com/sashabaranov/go-openai"

	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/model"
)

// Options are sent with every request.
type Options struct {
	Model    string
	Language string
	Prompt   string
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	opts   Options
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, opts Options) *RemoteTranscriber {
	if opts.Model == "" {
		opts.Model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, opts: opts}
}

// Transcribe uploads the unit payload and returns the plain text transcript.
// The upload is named after the unit so the service can infer its encoding.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, unit model.AudioUnit) (string, error) {
	payload, err := unit.Open()
	if err != nil {
		return "", apperrors.Environment(err, "cannot read '%s'", unit.Path)
	}
	defer payload.Close()

	req := openai.AudioRequest{
		Model:    rt.opts.Model,
		FilePath: unit.Name,
		Reader:   payload,
		Prompt:   rt.opts.Prompt,
		Language: rt.opts.Language,
		Format:   openai.AudioResponseFormatText,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", handleAPIError(err)
	}

	return resp.Text, nil
}
