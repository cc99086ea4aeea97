package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"diagbot/internal/model"
)

const defaultFontName = "Helvetica"

// ReportService renders the diagnostic PDF report. The returned file is
// consumed once by the caller and deleted after delivery.
type ReportService struct {
	fontPath string
	outDir   string
}

// NewReportService creates the renderer. fontPath points at a TTF with
// Cyrillic glyphs; with an empty path the built-in Helvetica is used and
// non-latin text will degrade.
func NewReportService(fontPath string) *ReportService {
	return &ReportService{
		fontPath: fontPath,
		outDir:   os.TempDir(),
	}
}

// Render builds the PDF and returns its path.
func (s *ReportService) Render(meta *model.UserMetadata, payload *model.AnalysisPayload, analysis *model.Analysis) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 20, 18)
	pdf.SetAutoPageBreak(true, 20)

	font := defaultFontName
	if s.fontPath != "" {
		pdf.AddUTF8Font("report", "", s.fontPath)
		pdf.AddUTF8Font("report", "B", s.fontPath)
		font = "report"
	}

	pdf.AddPage()

	title := func(text string) {
		pdf.SetFont(font, "B", 16)
		pdf.MultiCell(0, 8, text, "", "L", false)
		pdf.Ln(2)
	}
	heading := func(text string) {
		pdf.SetFont(font, "B", 12)
		pdf.MultiCell(0, 7, text, "", "L", false)
		pdf.Ln(1)
	}
	body := func(text string) {
		pdf.SetFont(font, "", 10)
		pdf.MultiCell(0, 5.5, text, "", "L", false)
		pdf.Ln(1)
	}
	bullets := func(items []string) {
		pdf.SetFont(font, "", 10)
		for _, item := range items {
			pdf.MultiCell(0, 5.5, "• "+item, "", "L", false)
		}
		pdf.Ln(1)
	}

	title("Диагностика внедрения ИИ")

	client := meta.FullName
	if client == "" {
		client = meta.Username
	}
	body(fmt.Sprintf("Клиент: %s", client))
	if payload.SkillLevel != "" {
		body(fmt.Sprintf("Уровень компетенций: %s", payload.SkillLevel))
	}
	body(fmt.Sprintf("Дата: %s", time.Now().Format("02.01.2006")))
	pdf.Ln(3)

	if analysis.BusinessSummary != "" {
		heading("О бизнесе")
		body(analysis.BusinessSummary)
	}

	sections := []struct {
		name  string
		items []string
	}{
		{"Приоритетные процессы", analysis.PriorityProcesses},
		{"Возможности для ИИ", analysis.AIOpportunities},
		{"Быстрые победы", analysis.QuickWins},
		{"Долгосрочные инициативы", analysis.LongTerm},
		{"Следующие шаги", analysis.NextSteps},
		{"Рекомендуемые инструменты", analysis.RecommendedTools},
		{"Примеры запросов для GPT", analysis.GPTPrompts},
	}
	for _, section := range sections {
		if len(section.items) == 0 {
			continue
		}
		heading(section.name)
		bullets(section.items)
	}

	heading("Ответы на вопросы диагностики")
	for _, qa := range payload.Answers {
		if qa.Answer == "" {
			continue
		}
		pdf.SetFont(font, "B", 10)
		pdf.MultiCell(0, 5.5, qa.Question, "", "L", false)
		pdf.SetFont(font, "", 10)
		pdf.MultiCell(0, 5.5, qa.Answer, "", "L", false)
		pdf.Ln(1)
	}

	pdf.Ln(3)
	body("Отчёт подготовлен агентством 1ma.ai. Чтобы обсудить внедрение — запишись на консультацию.")

	path := filepath.Join(s.outDir, fmt.Sprintf("ai-diagnostic-%s.pdf", uuid.NewString()))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
