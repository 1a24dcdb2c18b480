package ai

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/config"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/pkg/aiinterface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	reply    string
	err      error
	block    bool
	models   []aiinterface.ModelInfo
	listErr  error
	requests []*aiinterface.ChatCompletionRequest
}

func (f *fakeClient) ChatCompletion(ctx context.Context, req *aiinterface.ChatCompletionRequest) (*aiinterface.ChatCompletionResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &aiinterface.ChatCompletionResponse{Content: f.reply, Model: "gemma3:1b"}, nil
}

func (f *fakeClient) ListModels(ctx context.Context) ([]aiinterface.ModelInfo, error) {
	return f.models, f.listErr
}

func (f *fakeClient) Name() string { return "fake" }
func (f *fakeClient) Close() error { return nil }

func newTestGateway(t *testing.T, client *fakeClient, opts Options) (*Gateway, *logger.Manager) {
	t.Helper()
	m, err := logger.NewManager(logger.Config{
		Environment: "testing",
		Dir:         t.TempDir(),
		Console:     io.Discard,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	if opts.Model == "" {
		opts.Model = "gemma3:1b"
	}
	return NewGateway(client, m, opts), m
}

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]any
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	return out
}

func TestGateway_Success(t *testing.T) {
	client := &fakeClient{reply: "Kedarnath opens in early May."}
	g, m := newTestGateway(t, client, Options{Temperature: 0.7, MaxTokens: 1000})

	res := g.Generate(context.Background(), Request{
		Message:   "When does Kedarnath open?",
		UserID:    "pilgrim-42",
		RequestID: "abcd1234",
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Kedarnath opens in early May.", res.Response)
	assert.Equal(t, "gemma3:1b", res.Model)
	assert.Empty(t, res.ErrorMessage)
	assert.Equal(t, 2, res.Metadata["message_count"])
	assert.GreaterOrEqual(t, res.ProcessingTimeMs, 0.0)

	require.Len(t, client.requests, 1)
	assert.Equal(t, 0.7, client.requests[0].Temperature)
	assert.Equal(t, 1000, client.requests[0].MaxTokens)

	events := readEvents(t, m.FilePath(logger.AIResponsesFile))
	require.Len(t, events, 1)
	assert.Equal(t, logger.EventAIResponse, events[0]["event_type"])
	assert.Equal(t, "abcd1234", events[0]["request_id"])
}

func TestGateway_FallbackOnError(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	g, m := newTestGateway(t, client, Options{})

	res := g.Generate(context.Background(), Request{Message: "hello", UserID: "u1", Language: "en"})

	assert.False(t, res.Success)
	assert.Equal(t, FallbackModel, res.Model)
	assert.Equal(t, FallbackResponse("hello", "en"), res.Response)
	assert.Contains(t, res.ErrorMessage, "connection refused")
	assert.Equal(t, true, res.Metadata["fallback_used"])

	events := readEvents(t, m.FilePath(logger.AIResponsesFile))
	require.Len(t, events, 1)
	assert.Equal(t, logger.EventAIError, events[0]["event_type"])

	errs := readEvents(t, m.FilePath(logger.ErrorFile))
	var tagged bool
	for _, e := range errs {
		if e["error_type"] == logger.ErrorTypeExternalAPI {
			tagged = true
		}
	}
	assert.True(t, tagged)
}

func TestGateway_FallbackOnEmptyReply(t *testing.T) {
	g, _ := newTestGateway(t, &fakeClient{reply: "   "}, Options{})

	res := g.Generate(context.Background(), Request{Message: "मौसम कैसा है", UserID: "u1", Language: "hi"})

	assert.False(t, res.Success)
	assert.Equal(t, fallbackResponses[LanguageHindi][IntentWeather], res.Response)
	assert.Equal(t, ErrEmptyReply.Error(), res.ErrorMessage)
}

func TestGateway_FallbackOnTimeout(t *testing.T) {
	g, _ := newTestGateway(t, &fakeClient{block: true}, Options{Timeout: 20 * time.Millisecond})

	done := make(chan Result, 1)
	go func() { done <- g.Generate(context.Background(), Request{Message: "route to badrinath", UserID: "u1"}) }()

	select {
	case res := <-done:
		assert.False(t, res.Success)
		assert.Equal(t, fallbackResponses[LanguageEnglish][IntentCharDham], res.Response)
	case <-time.After(2 * time.Second):
		t.Fatal("gateway did not honour its timeout")
	}
}

func TestGateway_PromptShape(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	g, _ := newTestGateway(t, client, Options{})

	history := make([]Turn, 0, 7)
	for i := 0; i < 7; i++ {
		role := aiinterface.RoleUser
		if i%2 == 1 {
			role = "bot"
		}
		history = append(history, Turn{Role: role, Content: string(rune('a' + i))})
	}

	g.Generate(context.Background(), Request{
		Message:  "namaste",
		UserID:   "u1",
		Context:  "travelling with elders",
		History:  history,
		Language: "ga",
	})

	require.Len(t, client.requests, 1)
	msgs := client.requests[0].Messages
	require.Len(t, msgs, 1+5+1+1)

	assert.Equal(t, aiinterface.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Additional context: travelling with elders")
	// last five turns: c..g
	assert.Equal(t, "c", msgs[1].Content)
	assert.Equal(t, aiinterface.RoleUser, msgs[1].Role)
	assert.Equal(t, aiinterface.RoleAssistant, msgs[2].Role)
	assert.Equal(t, "g", msgs[5].Content)
	assert.Equal(t, aiinterface.Message{Role: aiinterface.RoleUser, Content: "namaste"}, msgs[6])
	assert.Equal(t, aiinterface.Message{Role: aiinterface.RoleSystem, Content: "Please respond in Garhwali if possible, otherwise Hindi."}, msgs[7])
}

func TestLanguageInstruction(t *testing.T) {
	assert.Empty(t, LanguageInstruction("en"))
	assert.Empty(t, LanguageInstruction(""))
	assert.Equal(t, "Please respond in Hindi (हिंदी में उत्तर दें).", LanguageInstruction("hi"))
	assert.Equal(t, "Please respond in English.", LanguageInstruction("fr"))
}

func TestGateway_ModelInfo(t *testing.T) {
	client := &fakeClient{models: []aiinterface.ModelInfo{{Name: "llama3"}, {Name: "gemma3:1b", Size: 42}}}
	g, _ := newTestGateway(t, client, Options{})

	info := g.ModelInfo(context.Background())
	assert.True(t, info.Available)
	assert.Equal(t, int64(42), info.Size)
	assert.True(t, g.CheckConnection(context.Background()))

	client.models = []aiinterface.ModelInfo{{Name: "llama3"}}
	info = g.ModelInfo(context.Background())
	assert.False(t, info.Available)
	assert.Equal(t, "Model not found", info.Error)

	client.listErr = errors.New("dial tcp: refused")
	assert.False(t, g.CheckConnection(context.Background()))
	assert.Contains(t, g.ModelInfo(context.Background()).Error, "refused")
}

func TestNewModelClient(t *testing.T) {
	c, err := NewModelClient(config.AIConfig{Provider: "ollama", Host: "http://localhost:11434", Model: "gemma3:1b"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, c.Name())

	c, err = NewModelClient(config.AIConfig{Provider: "openai", Host: "http://localhost:11434", Model: "gemma3:1b"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, c.Name())

	_, err = NewModelClient(config.AIConfig{Provider: "bard", Model: "x"})
	assert.Error(t, err)
}

func TestGateway_ReportPerformance(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	g, m := newTestGateway(t, client, Options{})

	empty := g.ReportPerformance()
	assert.Equal(t, 0, empty.TotalRequests)
	assert.Zero(t, empty.SuccessRate)

	g.Generate(context.Background(), Request{Message: "hello", UserID: "u1"})
	client.err = errors.New("down")
	g.Generate(context.Background(), Request{Message: "hello", UserID: "u1"})

	p := g.ReportPerformance()
	assert.Equal(t, 2, p.TotalRequests)
	assert.Equal(t, 50.0, p.SuccessRate)
	assert.Equal(t, "fake", p.Provider)

	var found bool
	for _, e := range readEvents(t, m.FilePath(logger.AIResponsesFile)) {
		if e["event_type"] == logger.EventModelPerformance {
			found = true
		}
	}
	assert.True(t, found)
}
