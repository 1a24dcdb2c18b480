package logger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferPool = buffer.NewPool()

// renderFunc turns one entry plus its accumulated fields into a line
type renderFunc func(ent zapcore.Entry, fields map[string]interface{}) string

// textEncoder collects fields into a map and hands them to a render function.
// Used for the human-oriented console sinks; file sinks use zap's JSON encoder.
type textEncoder struct {
	*zapcore.MapObjectEncoder
	render renderFunc
}

func newTextEncoder(render renderFunc) zapcore.Encoder {
	return &textEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder(), render: render}
}

// newPlainEncoder development console: [LEVEL] | 15:04:05 | name | msg | [req_id=.., user=.., time=..ms]
func newPlainEncoder() zapcore.Encoder {
	return newTextEncoder(renderPlain)
}

// newAIConsoleEncoder multi-line rendering for conversation events
func newAIConsoleEncoder() zapcore.Encoder {
	return newTextEncoder(renderAI)
}

func (e *textEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}
	return &textEncoder{MapObjectEncoder: clone, render: e.render}
}

func (e *textEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	merged := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		merged.Fields[k] = v
	}
	for _, f := range fields {
		f.AddTo(merged)
	}

	buf := bufferPool.Get()
	buf.AppendString(e.render(ent, merged.Fields))
	buf.AppendString(zapcore.DefaultLineEnding)
	return buf, nil
}

func renderPlain(ent zapcore.Entry, fields map[string]interface{}) string {
	parts := []string{
		"[" + ent.Level.CapitalString() + "]",
		clock(ent.Time),
		ent.LoggerName,
		ent.Message,
	}

	var extras []string
	if v, ok := fields[KeyRequestID]; ok {
		extras = append(extras, "req_id="+stringify(v))
	}
	if v, ok := fields[KeyUserID]; ok {
		extras = append(extras, "user="+stringify(v))
	}
	if v, ok := fields[KeyResponseTime]; ok {
		extras = append(extras, "time="+stringify(v)+"ms")
	}
	if len(extras) > 0 {
		parts = append(parts, "["+strings.Join(extras, ", ")+"]")
	}
	return strings.Join(parts, " | ")
}

const (
	heavyRule = "================================================================================"
	lightRule = "--------------------------------------------------"
)

func renderAI(ent zapcore.Entry, fields map[string]interface{}) string {
	ts := clock(ent.Time)

	switch stringify(fields[KeyEventType]) {
	case EventAIResponse:
		return strings.Join([]string{
			"",
			heavyRule,
			fmt.Sprintf("🤖 AI CONVERSATION [%s]", ts),
			fmt.Sprintf("👤 User (%s): %s", orDefault(fields[KeyUserID], "unknown"), stringify(fields["user_message"])),
			heavyRule,
			fmt.Sprintf("🧠 AI Response (%s, %.1fms):", orDefault(fields["model_used"], "unknown"), number(fields["processing_time_ms"])),
			stringify(fields["ai_response"]),
			heavyRule,
		}, "\n")
	case EventConversationContext:
		return strings.Join([]string{
			"",
			fmt.Sprintf("📊 CONTEXT ANALYSIS [%s]", ts),
			"🎯 Context: " + stringify(fields["context_used"]),
			"💡 Actions: " + stringify(fields["suggested_actions"]),
			"🔗 Topics: " + stringify(fields["related_topics"]),
			lightRule,
		}, "\n")
	case EventAIError:
		return strings.Join([]string{
			"",
			heavyRule,
			fmt.Sprintf("❌ AI ERROR [%s]", ts),
			"⚠️ Error: " + stringify(fields["error_message"]),
			heavyRule,
			"🔄 Fallback Response:",
			stringify(fields["fallback_response"]),
			heavyRule,
		}, "\n")
	}
	return fmt.Sprintf("[AI-%s] %s | %s", ent.Level.CapitalString(), ts, ent.Message)
}

func clock(t time.Time) string {
	return t.Local().Format("15:04:05")
}

func orDefault(v interface{}, def string) string {
	if s := stringify(v); s != "" {
		return s
	}
	return def
}

// stringify renders a MapObjectEncoder value; arrays are comma joined
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case []interface{}:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, stringify(item))
		}
		return strings.Join(items, ", ")
	case []string:
		return strings.Join(val, ", ")
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprint(val)
	}
}

func number(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int64:
		return float64(val)
	case int:
		return float64(val)
	}
	return 0
}
