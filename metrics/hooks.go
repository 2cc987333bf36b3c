package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	config "github.com/wanjiru84/pro_marketplace/configs"
	"github.com/google/uuid"
)

// Hooks is the outbound port for the metrics subsystem. The booking
// core fires these after a terminal transition commits; failures are
// logged by callers and never roll back the transition.
type Hooks interface {
	OnBookingCompleted(professionalID uuid.UUID) error
	OnBookingCancelled(professionalID uuid.UUID) error
}

type HTTPHooks struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPHooks() *HTTPHooks {
	return &HTTPHooks{
		BaseURL: config.Config("METRICS_BASE_URL"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (h *HTTPHooks) OnBookingCompleted(professionalID uuid.UUID) error {
	return h.post("booking.completed", professionalID)
}

func (h *HTTPHooks) OnBookingCancelled(professionalID uuid.UUID) error {
	return h.post("booking.cancelled", professionalID)
}

func (h *HTTPHooks) post(event string, professionalID uuid.UUID) error {
	payload := map[string]string{
		"event":           event,
		"professional_id": professionalID.String(),
	}
	body, _ := json.Marshal(payload)

	resp, err := h.client.Post(fmt.Sprintf("%s/v1/events", h.BaseURL), "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("metrics service returned status %s", resp.Status)
	}
	return nil
}

// NoopHooks keeps the booking core wired when no metrics deployment is
// configured.
type NoopHooks struct{}

func (NoopHooks) OnBookingCompleted(professionalID uuid.UUID) error {
	log.Printf("metrics hooks not configured, dropping booking.completed for professional %s", professionalID)
	return nil
}

func (NoopHooks) OnBookingCancelled(professionalID uuid.UUID) error {
	log.Printf("metrics hooks not configured, dropping booking.cancelled for professional %s", professionalID)
	return nil
}
