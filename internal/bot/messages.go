package bot

import "diagbot/internal/model"

// User-facing copy and button definitions. Buttons pair the callback data
// with the visible label.

// Button is an inline-keyboard button definition.
type Button struct {
	Data string
	Text string
}

var (
	startButton           = Button{"start_intro", "🚀 Начать диагностику"}
	videoReadyButton      = Button{"video_ready", "✅ Посмотрел(а), едем дальше"}
	startDiagnosisButton  = Button{"start_diagnosis", "🔍 Перейти к диагностике"}
	reportButton          = Button{"generate_report", "📄 Получить отчёт"}
	multiSelectDoneButton = Button{"done", "✅ Готово"}
)

// SkillOption pairs a skill level with its visible label.
type SkillOption struct {
	Level model.SkillLevel
	Text  string
}

var skillLevelOptions = []SkillOption{
	{model.SkillNovice, "🌱 Новичок — только присматриваюсь к ИИ"},
	{model.SkillConfident, "💪 Уверенный пользователь — уже кое-что пробовал"},
	{model.SkillExpert, "🧠 Эксперт — активно использую ИИ в работе"},
}

// SkillLevelText resolves a skill level to its label, or "" when unset.
func SkillLevelText(level model.SkillLevel) string {
	for _, opt := range skillLevelOptions {
		if opt.Level == level {
			return opt.Text
		}
	}
	return ""
}

const (
	welcomeText = "👋 Привет! Я — AI-диагност агентства *1ma.ai*.\n\n" +
		"За несколько минут я разберу твой бизнес по полочкам: где ИИ сэкономит время, " +
		"где принесёт деньги и с чего начать внедрение.\n\n" +
		"В конце ты получишь персональный PDF-отчёт с планом действий. Поехали?"

	skillLevelPrompt = "Для начала — как ты оцениваешь свой опыт работы с ИИ?"

	videoMessage = "🎬 Отлично! Перед диагностикой посмотри короткое видео (3 минуты) — " +
		"в нём я объясняю, как отвечать на вопросы, чтобы отчёт получился максимально точным.\n\n" +
		"https://1ma.ai/intro\n\nКак посмотришь — жми кнопку ниже."

	expertSkipMessage = "🔥 Отлично, тогда без длинных вступлений — сразу к делу.\n\n" +
		"Дальше будет несколько вопросов о твоём бизнесе. Отвечай честно и конкретно: " +
		"чем точнее ответы, тем полезнее отчёт."

	diagnosisIntro = "🔍 *Начинаем диагностику.*\n\n" +
		"Я задам около десяти вопросов о бизнесе и процессах. " +
		"Где есть кнопки — выбирай вариант, где нет — пиши ответ текстом."

	customOptionPrompt = "✍️ Окей, напиши свой вариант одним сообщением."

	selectedHeader = "*Выбрано:*"

	preReportMessage = "🎉 *Диагностика завершена!*\n\n" +
		"Я собрал все ответы. Жми кнопку — подготовлю персональный отчёт " +
		"с рекомендациями по внедрению ИИ."

	reportDeliveryMessage = "📄 Твой персональный отчёт готов!\n\n" +
		"Внутри — разбор бизнеса, приоритетные процессы и конкретные шаги. " +
		"Если появятся вопросы — просто напиши их сюда."

	reportErrorMessage = "😔 Не получилось собрать отчёт. Попробуй ещё раз чуть позже — " +
		"нажми кнопку «Получить отчёт» повторно."

	postReportMessage = "💬 Кстати: если хочешь разобрать рекомендации лично, " +
		"приходи на бесплатную консультацию с экспертом 1ma.ai."

	consultationButtonText = "📅 Записаться на консультацию"

	preChatReminder = "Сначала давай закончим диагностику 🙂 Отвечай на текущий вопрос " +
		"или нажми /start, чтобы начать заново."

	chatFallbackMessage = "Не смог придумать ответ 🤔 Попробуй переформулировать вопрос."
)
