package ai

import (
	"github.com/Harshitjoshi133/DeepShiva/pkg/aiinterface"
)

// historyWindow prior turns forwarded to the model
const historyWindow = 5

const systemPrompt = `You are Deep-Shiva, an AI assistant specialized in Uttarakhand tourism and spiritual guidance. You help visitors with:

1. Char Dham Yatra information (Kedarnath, Badrinath, Gangotri, Yamunotri)
2. Travel planning and routes
3. Weather conditions and best visit times
4. Local culture and traditions
5. Yoga and spiritual practices
6. Accommodation and transportation
7. Safety guidelines and emergency information

Guidelines:
- Be helpful, informative, and culturally sensitive
- Provide practical, actionable advice
- Include safety considerations when relevant
- Respect local customs and traditions
- Keep responses concise but comprehensive
- Use a warm, welcoming tone
- If you don't know something specific, suggest reliable sources

Current context: You are helping with Uttarakhand tourism and pilgrimage planning.`

var languageInstructions = map[string]string{
	"hi": "Please respond in Hindi (हिंदी में उत्तर दें).",
	"ga": "Please respond in Garhwali if possible, otherwise Hindi.",
}

// SystemPrompt base prompt plus optional caller context
func SystemPrompt(extra string) string {
	if extra == "" {
		return systemPrompt
	}
	return systemPrompt + "\n\nAdditional context: " + extra
}

// LanguageInstruction instruction appended for non-English replies, empty for English
func LanguageInstruction(language string) string {
	if language == "" || language == LanguageEnglish {
		return ""
	}
	if s, ok := languageInstructions[language]; ok {
		return s
	}
	return "Please respond in English."
}

// BuildMessages system prompt, last turns of history, the user message, then
// the language instruction
func BuildMessages(req *Request) []aiinterface.Message {
	history := req.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	messages := make([]aiinterface.Message, 0, len(history)+3)
	messages = append(messages, aiinterface.Message{Role: aiinterface.RoleSystem, Content: SystemPrompt(req.Context)})
	for _, turn := range history {
		role := aiinterface.RoleAssistant
		if turn.Role == aiinterface.RoleUser {
			role = aiinterface.RoleUser
		}
		messages = append(messages, aiinterface.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, aiinterface.Message{Role: aiinterface.RoleUser, Content: req.Message})

	if instr := LanguageInstruction(req.Language); instr != "" {
		messages = append(messages, aiinterface.Message{Role: aiinterface.RoleSystem, Content: instr})
	}
	return messages
}
