// Package catalog holds the fixed diagnostic questionnaire. The catalog is
// built once at process start, is read-only afterwards and is the only
// structure shared across sessions.
package catalog

import "diagbot/internal/model"

var questions = buildQuestions()

// All returns the full ordered question sequence.
func All() []model.Question {
	return questions
}

// ByID returns the question with the given id, or false when the id is
// unknown. Callers must treat a miss as "ignore the event".
func ByID(id string) (*model.Question, bool) {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i], true
		}
	}
	return nil, false
}

func buildQuestions() []model.Question {
	return []model.Question{
		{
			ID:          "q_business_profile",
			Text:        "*Вопрос 1.* Расскажи о своём бизнесе: чем занимаешься, какие продукты или услуги предлагаешь?\n\n_Напиши ответ одним сообщением._",
			Section:     model.SectionBusiness,
			ExpectsText: true,
		},
		{
			ID:      "q_niche",
			Text:    "*Вопрос 2.* К какой сфере ближе всего твой бизнес?",
			Section: model.SectionBusiness,
			Options: []model.Option{
				{Key: "retail", Text: "🛍 Торговля и e-commerce"},
				{Key: "services", Text: "🤝 Услуги и консалтинг"},
				{Key: "production", Text: "🏭 Производство"},
				{Key: "it", Text: "💻 IT и digital"},
				{Key: "other", Text: "✍️ Другое", RequiresFreeText: true},
			},
		},
		{
			ID:      "q_team_size",
			Text:    "*Вопрос 3.* Сколько человек в твоей команде?",
			Section: model.SectionBusiness,
			Options: []model.Option{
				{Key: "solo", Text: "👤 Работаю один"},
				{Key: "small", Text: "👥 2–10 человек"},
				{Key: "medium", Text: "🏢 11–50 человек"},
				{Key: "large", Text: "🏬 Больше 50"},
			},
		},
		{
			ID:          "q_goals",
			Text:        "*Вопрос 4.* Какие цели сейчас в приоритете? _Можно выбрать несколько._",
			Section:     model.SectionBusiness,
			MultiSelect: true,
			Options: []model.Option{
				{Key: "growth", Text: "📈 Рост выручки"},
				{Key: "costs", Text: "✂️ Снижение затрат"},
				{Key: "speed", Text: "⚡ Ускорение процессов"},
				{Key: "quality", Text: "⭐ Качество продукта и сервиса"},
				{Key: "other", Text: "✍️ Другое", RequiresFreeText: true},
			},
		},
		{
			ID:          "q_processes",
			Text:        "*Вопрос 5.* Какие процессы занимают больше всего времени? _Можно выбрать несколько._",
			Section:     model.SectionBusiness,
			MultiSelect: true,
			Options: []model.Option{
				{Key: "sales", Text: "💬 Продажи и переписка с клиентами"},
				{Key: "content", Text: "📝 Контент и маркетинг"},
				{Key: "docs", Text: "📄 Документы и отчётность"},
				{Key: "support", Text: "🎧 Поддержка клиентов"},
				{Key: "hiring", Text: "🧑‍💼 Найм и обучение"},
			},
		},
		{
			ID:          "q_pain_points",
			Text:        "*Вопрос 6.* Что сейчас болит сильнее всего? _Можно выбрать несколько._",
			Section:     model.SectionBusiness,
			MultiSelect: true,
			Options: []model.Option{
				{Key: "routine", Text: "🔁 Много ручной рутины"},
				{Key: "leads", Text: "📉 Мало заявок и клиентов"},
				{Key: "chaos", Text: "🌪 Хаос в процессах"},
				{Key: "time", Text: "⏳ Не хватает времени"},
				{Key: "other", Text: "✍️ Другое", RequiresFreeText: true},
			},
		},
		{
			ID:      "q_data",
			Text:    "*Вопрос 7.* Где живут данные твоего бизнеса: клиенты, продажи, заявки?",
			Section: model.SectionReadiness,
			Options: []model.Option{
				{Key: "crm", Text: "🗂 В CRM или учётной системе"},
				{Key: "tables", Text: "📊 В таблицах"},
				{Key: "chats", Text: "💬 В мессенджерах и почте"},
				{Key: "nowhere", Text: "🤷 Толком нигде"},
			},
		},
		{
			ID:      "q_automation",
			Text:    "*Вопрос 8.* Как ты относишься к автоматизации и ИИ в работе?",
			Section: model.SectionReadiness,
			Options: []model.Option{
				{Key: "active", Text: "🚀 Уже пробую инструменты"},
				{Key: "curious", Text: "🧐 Интересно, но не знаю с чего начать"},
				{Key: "skeptic", Text: "🤨 Скорее скептически"},
			},
		},
		{
			ID:      "q_budget",
			Text:    "*Вопрос 9.* Какой бюджет готов выделить на внедрение ИИ в ближайшие 3 месяца?",
			Section: model.SectionReadiness,
			Options: []model.Option{
				{Key: "none", Text: "0 — только бесплатные инструменты"},
				{Key: "small", Text: "До 50 тыс. ₽"},
				{Key: "medium", Text: "50–200 тыс. ₽"},
				{Key: "large", Text: "Больше 200 тыс. ₽"},
			},
		},
		{
			ID:          "q_expectations",
			Text:        "*Вопрос 10.* Что хочешь получить от внедрения ИИ в первую очередь?\n\n_Напиши ответ одним сообщением._",
			Section:     model.SectionReadiness,
			ExpectsText: true,
		},
	}
}
