package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/vergeframework/verge/internal/sync"
)

// Handler bridges synchronization events to the WebSocket server.
// It formats sync results as broadcast messages so connected clients
// see schema changes as they land.
type Handler struct {
	server *Server
	logger *log.Logger
}

// NewHandler creates a new event handler connected to a schema server
func NewHandler(server *Server, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}

	return &Handler{
		server: server,
		logger: logger,
	}
}

// OnSyncComplete handles the completion of a sync run
func (h *Handler) OnSyncComplete(report *sync.Report) {
	totals := report.Totals()
	h.logger.Printf("Sync complete: created=%d existing=%d failed=%d",
		totals.Created, totals.Existing, totals.Failed)

	dataJSON, err := json.Marshal(report)
	if err != nil {
		h.logger.Printf("Failed to marshal sync report: %v", err)
		return
	}

	// Broadcast the report itself
	msg := Message{
		Type:      MessageTypeSyncReport,
		Timestamp: time.Now(),
		Data:      dataJSON,
	}
	h.server.Broadcast(msg)

	// Also broadcast the refreshed schema overview
	h.broadcastSchema()
}

// broadcastSchema sends the current schema overview to all clients
func (h *Handler) broadcastSchema() {
	msg, err := NewSchemaMessage(h.server.apps)
	if err != nil {
		h.logger.Printf("Failed to build schema overview: %v", err)
		return
	}
	h.server.Broadcast(msg)
}
