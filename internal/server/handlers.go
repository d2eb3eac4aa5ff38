package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"smartcourt/internal/events"
)

// MaxViewport bounds each side of a requested viewport.
const MaxViewport = 4096

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ViewportRequest is the body of POST /api/v1/viewport.
type ViewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse acknowledges a contact submission.
type ContactResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// HealthCheck returns the health status of the host
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	_, mounted := s.ctrl.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"service":        "smartcourt",
		"mounted":        mounted,
		"active_clients": s.hub.ClientCount(),
		"timestamp":      time.Now().UTC(),
	})
}

// GetSnapshot returns the current HUD state.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.ctrl.Snapshot()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, "simulation not mounted", nil)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// GetFrame returns the most recently presented frame as WebP.
func (s *Server) GetFrame(w http.ResponseWriter, r *http.Request) {
	frame, snap := s.surface.Latest()
	if frame == nil {
		respondError(w, http.StatusServiceUnavailable, "no frame rendered yet", nil)
		return
	}

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, frame, nil); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode frame", err)
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame", fmt.Sprintf("%d", snap.Frame))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// SetViewport resizes the rendered output.
func (s *Server) SetViewport(w http.ResponseWriter, r *http.Request) {
	var req ViewportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Width <= 0 || req.Height <= 0 || req.Width > MaxViewport || req.Height > MaxViewport {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("viewport must be 1..%d on each side", MaxViewport), nil)
		return
	}

	if err := s.ctrl.Resize(req.Width, req.Height); err != nil {
		respondError(w, http.StatusServiceUnavailable, "resize failed", err)
		return
	}
	s.surface.SetSize(req.Width, req.Height)
	respondJSON(w, http.StatusOK, req)
}

// Contact accepts a contact form submission and acknowledges it with a
// generated id. Nothing is stored.
func (s *Server) Contact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id := uuid.New().String()
	fmt.Printf("contact %s from %q <%s>\n", id, req.Name, req.Email)
	respondJSON(w, http.StatusOK, ContactResponse{Status: "received", ID: id})
}

// HandleWebSocket upgrades HTTP connections to WebSocket
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("WebSocket upgrade error: %v\n", err)
		return
	}

	c := NewClient(uuid.New().String(), conn, s.hub, s.latestMessage)
	s.hub.Register(c)

	// pumps outlive the request
	go c.WritePump(s.ctx)
	go c.ReadPump(s.ctx)
}

// PublishEvent forwards a simulation event to WebSocket clients.
func (s *Server) PublishEvent(e events.Event) {
	s.hub.Broadcast(Message{Type: MessageTypeEvent, Payload: e, Timestamp: time.Now()})
}

func (s *Server) latestMessage() Message {
	snap, ok := s.ctrl.Snapshot()
	if !ok {
		return Message{
			Type:      MessageTypeError,
			Payload:   map[string]string{"message": "simulation not mounted"},
			Timestamp: time.Now(),
		}
	}
	return Message{Type: MessageTypeSnapshot, Payload: snap, Timestamp: time.Now()}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
