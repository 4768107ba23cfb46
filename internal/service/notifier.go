package service

import (
	"context"
	"net/http"

	"notamadmin/internal/model"
	"notamadmin/internal/observability"

	"github.com/jonboulle/clockwork"
)

// isoTimestamp matches the ISO-8601 form the downstream flows parse.
const isoTimestamp = "2006-01-02T15:04:05.000000Z"

type CreatedPayload struct {
	AirportID string `json:"airport_id"`
	City      string `json:"city"`
	Message   string `json:"message"`
}

type UpdatedPayload struct {
	NotamID   uint   `json:"notam_id"`
	AirportID string `json:"airport_id"`
	City      string `json:"city"`
	Message   string `json:"message"`
	UpdatedAt string `json:"updated_at"`
	Query     string `json:"query"`
}

// NotamNotifier tells the workflow-automation system about new and edited NOTAMs.
type NotamNotifier interface {
	NotifyCreated(ctx context.Context, notam model.Notam) error
	NotifyUpdated(ctx context.Context, notam model.Notam) error
}

type notamNotifier struct {
	webhookCaller
	createdURL string
	updatedURL string
	clock      clockwork.Clock
}

func NewNotamNotifier(client *http.Client, createdURL, updatedURL string, clock clockwork.Clock, metrics *observability.Metrics) NotamNotifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &notamNotifier{
		webhookCaller: webhookCaller{client: client, metrics: metrics},
		createdURL:    createdURL,
		updatedURL:    updatedURL,
		clock:         clock,
	}
}

func (n *notamNotifier) NotifyCreated(ctx context.Context, notam model.Notam) error {
	return n.postJSON(ctx, n.createdURL, webhookCreated, CreatedPayload{
		AirportID: notam.AirportID,
		City:      notam.City,
		Message:   notam.Message,
	})
}

func (n *notamNotifier) NotifyUpdated(ctx context.Context, notam model.Notam) error {
	return n.postJSON(ctx, n.updatedURL, webhookUpdated, UpdatedPayload{
		NotamID:   notam.ID,
		AirportID: notam.AirportID,
		City:      notam.City,
		Message:   notam.Message,
		UpdatedAt: n.clock.Now().UTC().Format(isoTimestamp),
		Query:     "update",
	})
}
