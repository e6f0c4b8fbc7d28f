package whisper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/model"
)

type capturedRequest struct {
	model    string
	language string
	prompt   string
	format   string
	filename string
	payload  []byte
}

func newTestTranscriber(t *testing.T, handler http.HandlerFunc) *RemoteTranscriber {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("sk-test-api-key-0123456789")
	config.BaseURL = server.URL + "/v1"
	return NewRemoteTranscriber(openai.NewClientWithConfig(config), Options{
		Model:    "whisper-1",
		Language: "da",
		Prompt:   "Interview",
	})
}

// capture runs on the server goroutine, so it reports with t.Errorf only.
func capture(t *testing.T, r *http.Request) capturedRequest {
	t.Helper()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		t.Errorf("Failed to parse multipart form: %v", err)
		return capturedRequest{}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		t.Errorf("Failed to get file from form: %v", err)
		return capturedRequest{}
	}
	defer file.Close()
	payload, err := io.ReadAll(file)
	if err != nil {
		t.Errorf("Failed to read upload: %v", err)
	}

	return capturedRequest{
		model:    r.FormValue("model"),
		language: r.FormValue("language"),
		prompt:   r.FormValue("prompt"),
		format:   r.FormValue("response_format"),
		filename: header.Filename,
		payload:  payload,
	}
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interview.mp3")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRemoteTranscriber_Transcribe(t *testing.T) {
	var got capturedRequest
	rt := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test-api-key-0123456789", r.Header.Get("Authorization"))
		got = capture(t, r)
		_, _ = w.Write([]byte("Hej, og velkommen til interviewet."))
	})

	path := writeSource(t, "ID3-whole-file")
	text, err := rt.Transcribe(context.Background(), model.AudioUnit{
		Name:   "interview.mp3",
		Path:   path,
		Length: int64(len("ID3-whole-file")),
	})

	require.NoError(t, err)
	assert.Equal(t, "Hej, og velkommen til interviewet.", text)
	assert.Equal(t, "whisper-1", got.model)
	assert.Equal(t, "da", got.language)
	assert.Equal(t, "Interview", got.prompt)
	assert.Equal(t, "text", got.format)
	assert.Equal(t, "interview.mp3", got.filename)
	assert.Equal(t, []byte("ID3-whole-file"), got.payload)
}

func TestRemoteTranscriber_UploadsOnlyTheUnitRange(t *testing.T) {
	var got capturedRequest
	rt := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		got = capture(t, r)
		_, _ = w.Write([]byte("second"))
	})

	path := writeSource(t, "aaaabbbbcc")
	_, err := rt.Transcribe(context.Background(), model.AudioUnit{
		Index:  1,
		Name:   "interview.mp3",
		Path:   path,
		Offset: 4,
		Length: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("bbbb"), got.payload)
}

func TestRemoteTranscriber_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`,
			wantCode: CodeInvalidCredential,
		},
		{
			name:     "quota exhausted",
			status:   http.StatusTooManyRequests,
			body:     `{"error": {"message": "You exceeded your current quota", "type": "insufficient_quota", "code": "insufficient_quota"}}`,
			wantCode: CodeQuotaExceeded,
		},
		{
			name:     "payload too large without JSON body",
			status:   http.StatusRequestEntityTooLarge,
			body:     `413 Request Entity Too Large`,
			wantCode: CodePayloadTooLarge,
		},
		{
			name:     "invalid file format",
			status:   http.StatusBadRequest,
			body:     `{"error": {"message": "Invalid file format. Supported formats: ['flac', 'm4a', 'mp3']", "type": "invalid_request_error"}}`,
			wantCode: CodeUnsupportedFormat,
		},
		{
			name:     "other bad request",
			status:   http.StatusBadRequest,
			body:     `{"error": {"message": "language must be ISO-639-1", "type": "invalid_request_error"}}`,
			wantCode: CodeRemote,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `{"error": {"message": "Internal server error", "type": "server_error"}}`,
			wantCode: CodeRemote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			rt := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			path := writeSource(t, "audio")
			_, err := rt.Transcribe(context.Background(), model.AudioUnit{Name: "interview.mp3", Path: path, Length: 5})
			require.Error(t, err)

			var te *TranscriptionError
			require.True(t, apperrors.As(err, &te))
			assert.Equal(t, tt.wantCode, te.Code)
			assert.Equal(t, tt.status, te.StatusCode)
			assert.Equal(t, apperrors.KindRemoteService, apperrors.KindOf(err))
			assert.Equal(t, 1, calls, "failed requests are not retried")
			if tt.wantCode != CodeRemote {
				assert.NotEmpty(t, apperrors.GuidanceOf(err))
			}
		})
	}
}

func TestRemoteTranscriber_Cancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	rt := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		// The server only notices a closed connection once the body is consumed.
		_, _ = io.Copy(io.Discard, r.Body)
		close(started)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	path := writeSource(t, "audio")
	_, err := rt.Transcribe(ctx, model.AudioUnit{Name: "interview.mp3", Path: path, Length: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemoteTranscriber_NetworkError(t *testing.T) {
	config := openai.DefaultConfig("sk-test-api-key-0123456789")
	config.BaseURL = "http://127.0.0.1:1/v1"
	config.HTTPClient = &http.Client{Timeout: time.Second}
	rt := NewRemoteTranscriber(openai.NewClientWithConfig(config), Options{})

	path := writeSource(t, "audio")
	_, err := rt.Transcribe(context.Background(), model.AudioUnit{Name: "interview.mp3", Path: path, Length: 5})

	var te *TranscriptionError
	require.True(t, apperrors.As(err, &te))
	assert.Equal(t, CodeRemote, te.Code)
}

func TestRemoteTranscriber_MissingSource(t *testing.T) {
	rt := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := rt.Transcribe(context.Background(), model.AudioUnit{Name: "gone.mp3", Path: "/nonexistent/gone.mp3", Length: 1})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindEnvironment, apperrors.KindOf(err))
}
