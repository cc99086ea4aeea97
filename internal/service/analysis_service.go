package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"diagbot/internal/model"
)

const analysisSystemPrompt = "Ты — консалтинг-эксперт агентства 1ma.ai. Ты анализируешь бизнес клиента, " +
	"подбираешь точки применения искусственного интеллекта и формируешь понятный план внедрения. " +
	"Отвечай кратко, по делу и строго на русском языке."

const chatSystemPrompt = "Ты — персональный AI-консультант агентства 1ma.ai. Ты уже провёл диагностику " +
	"бизнеса клиента и подготовил ему отчёт. Клиент задаёт уточняющие вопросы — опирайся на сделанные " +
	"выводы и конкретику из отчёта. Отвечай дружелюбно и практично, не придумывай данных, " +
	"всегда предлагай следующий шаг."

const analysisUserPrompt = "Проанализируй ответы клиента и подготовь рекомендации по внедрению ИИ.\n" +
	"Верни JSON-объект со строгой структурой:\n" +
	"{\n" +
	`  "business_summary": "краткое описание бизнеса и текущей ситуации",` + "\n" +
	`  "priority_processes": ["ключевой процесс 1", ...],` + "\n" +
	`  "ai_opportunities": ["основная возможность 1", ...],` + "\n" +
	`  "quick_wins": ["быстрый результат 1", ...],` + "\n" +
	`  "long_term": ["долгосрочная инициатива 1", ...],` + "\n" +
	`  "next_steps": ["шаг 1", ...],` + "\n" +
	`  "recommended_tools": ["инструмент или интеграция 1", ...],` + "\n" +
	`  "gpt_prompts": ["пример запроса для GPT 1", ...]` + "\n" +
	"}\n" +
	"Формулируй пункты с учётом отрасли, целей и масштаба клиента. " +
	"Учитывай уровень его компетенций в ИИ. Не добавляй текста вне JSON."

const chatUserPrompt = "Используй эти данные, чтобы ответить клиенту на его вопрос. " +
	"Сформулируй ответ полностью на русском языке, без JSON."

// AnalysisService calls the language model for the questionnaire analysis
// and for chat replies. Every failure path substitutes a default result so
// the conversation can still deliver something.
type AnalysisService struct {
	client *openai.Client
	model  string
}

// NewAnalysisService creates the service. With an empty API key the
// service stays in offline mode and returns defaults.
func NewAnalysisService(apiKey, modelName string) *AnalysisService {
	s := &AnalysisService{model: modelName}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	} else {
		log.Println("Warning: OPENAI_API_KEY not set, analysis disabled")
	}
	return s
}

// DefaultAnalysis is the empty result substituted on any failure.
func DefaultAnalysis() *model.Analysis {
	return &model.Analysis{
		PriorityProcesses: []string{},
		AIOpportunities:   []string{},
		QuickWins:         []string{},
		LongTerm:          []string{},
		NextSteps:         []string{},
		RecommendedTools:  []string{},
		GPTPrompts:        []string{},
	}
}

// Analyze produces the structured recommendation for the finished
// questionnaire. Returns the default analysis instead of an error on any
// API or parse failure.
func (s *AnalysisService) Analyze(ctx context.Context, payload *model.AnalysisPayload) (*model.Analysis, error) {
	if s.client == nil {
		return DefaultAnalysis(), nil
	}

	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Printf("failed to serialize analysis payload: %v", err)
		return DefaultAnalysis(), nil
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: analysisUserPrompt + "\n\nДанные клиента:\n" + string(serialized)},
		},
	})
	if err != nil {
		log.Printf("analysis request failed: %v", err)
		return DefaultAnalysis(), nil
	}
	if len(resp.Choices) == 0 {
		log.Println("analysis response contained no choices")
		return DefaultAnalysis(), nil
	}

	var parsed model.Analysis
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		log.Printf("failed to parse analysis JSON: %v", err)
		return DefaultAnalysis(), nil
	}
	normalizeAnalysis(&parsed)
	return &parsed, nil
}

// ChatReply answers one follow-up question in CHAT mode. Returns "" on any
// failure; the caller falls back to a canned message.
func (s *AnalysisService) ChatReply(ctx context.Context, payload *model.ChatPayload) (string, error) {
	if s.client == nil {
		return "", nil
	}

	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Printf("failed to serialize chat payload: %v", err)
		return "", nil
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.35,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: chatUserPrompt + "\n\n" + string(serialized)},
		},
	})
	if err != nil {
		log.Printf("chat request failed: %v", err)
		return "", nil
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// normalizeAnalysis replaces nil slices so downstream renderers can range
// without nil checks.
func normalizeAnalysis(a *model.Analysis) {
	if a.PriorityProcesses == nil {
		a.PriorityProcesses = []string{}
	}
	if a.AIOpportunities == nil {
		a.AIOpportunities = []string{}
	}
	if a.QuickWins == nil {
		a.QuickWins = []string{}
	}
	if a.LongTerm == nil {
		a.LongTerm = []string{}
	}
	if a.NextSteps == nil {
		a.NextSteps = []string{}
	}
	if a.RecommendedTools == nil {
		a.RecommendedTools = []string{}
	}
	if a.GPTPrompts == nil {
		a.GPTPrompts = []string{}
	}
}
