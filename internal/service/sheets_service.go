package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"diagbot/internal/model"
	"diagbot/internal/repository"
)

// SheetsService persists finished questionnaires, best-effort. Preferred
// integration is a Google Apps Script endpoint appending to a spreadsheet;
// the Mongo archive is the fallback. With neither configured the snapshot
// is only logged.
type SheetsService struct {
	gasEndpoint string
	httpClient  *http.Client
	archive     repository.ArchiveRepo // may be nil
}

// NewSheetsService creates the persistence service. archive may be nil
// when no Mongo connection is configured.
func NewSheetsService(gasEndpoint string, archive repository.ArchiveRepo) *SheetsService {
	return &SheetsService{
		gasEndpoint: gasEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		archive: archive,
	}
}

type sheetsPayload struct {
	Meta        sheetsMeta             `json:"meta"`
	Answers     []model.QuestionAnswer `json:"answers"`
	AnswersByID map[string]string      `json:"answers_by_id"`
}

type sheetsMeta struct {
	Timestamp  string `json:"timestamp"`
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	SkillLevel string `json:"skill_level"`
}

// Persist stores one answer snapshot. An error is returned only when every
// configured backend failed; the caller treats it as retry-later.
func (s *SheetsService) Persist(ctx context.Context, meta *model.UserMetadata, payload *model.AnalysisPayload) error {
	body := &sheetsPayload{
		Meta: sheetsMeta{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			UserID:     meta.UserID,
			Username:   meta.Username,
			FullName:   meta.FullName,
			SkillLevel: payload.SkillLevel,
		},
		Answers:     payload.Answers,
		AnswersByID: payload.AnswersByID,
	}

	if s.gasEndpoint != "" {
		err := s.postToGAS(ctx, body)
		if err == nil {
			log.Printf("saved answers for user %d via GAS endpoint", meta.UserID)
			return nil
		}
		log.Printf("GAS endpoint failed, falling back to archive: %v", err)
	}

	if s.archive != nil {
		entry := &model.ArchiveEntry{
			Meta:        *meta,
			SkillLevel:  payload.SkillLevel,
			Answers:     payload.Answers,
			AnswersByID: payload.AnswersByID,
		}
		if err := s.archive.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to archive answers: %w", err)
		}
		log.Printf("archived answers for user %d", meta.UserID)
		return nil
	}

	if s.gasEndpoint == "" {
		log.Println("no persistence configured; answers not stored")
		return nil
	}
	return fmt.Errorf("all persistence backends failed")
}

func (s *SheetsService) postToGAS(ctx context.Context, payload *sheetsPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gasEndpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GAS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GAS endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
