package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/config"

	"github.com/google/uuid"
)

// MeetingService talks to the external meeting provider over HTTP with a
// bounded timeout and falls back to a static panel URL when the call fails.
// It never returns an error: a session must always end up with some URL.
type MeetingService struct {
	cfg    config.MeetingConfig
	client *http.Client
}

func NewMeetingService(cfg config.MeetingConfig) *MeetingService {
	return &MeetingService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type createRoomRequest struct {
	CreatorID  string `json:"creator_id"`
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
}

type createRoomResponse struct {
	JoinURL string `json:"join_url"`
}

func (s *MeetingService) EnsureMeetingURL(ctx context.Context, creatorID, interviewID uuid.UUID, title string) string {
	url, err := s.createRoom(ctx, creatorID, interviewID, title)
	if err != nil {
		slog.Warn("meeting room creation failed, using fallback url",
			"interview_id", interviewID, "error", err.Error())
		return fmt.Sprintf(s.cfg.FallbackURLPattern, interviewID)
	}
	return url
}

func (s *MeetingService) createRoom(ctx context.Context, creatorID, interviewID uuid.UUID, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(createRoomRequest{
		CreatorID:  creatorID.String(),
		ExternalID: interviewID.String(),
		Title:      title,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/v1/rooms", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("meeting provider returned status %d", resp.StatusCode)
	}

	var out createRoomResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.JoinURL == "" {
		return "", fmt.Errorf("meeting provider returned empty join url")
	}
	return out.JoinURL, nil
}
