package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"i4.energy/across/hfpag/gateway"
	"i4.energy/across/hfpag/slc"
)

// Notifier delivers gateway events to one service level connection.
type Notifier interface {
	Notify(ctx context.Context, n slc.Notification) error
}

// Registry maps serial ports to their live connection.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Notifier
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]Notifier)}
}

func (r *Registry) Set(port string, n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[port] = n
}

// Remove drops the entry for port if it still belongs to n.
func (r *Registry) Remove(port string, n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[port] == n {
		delete(r.conns, port)
	}
}

func (r *Registry) Get(port string) (Notifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.conns[port]
	return n, ok
}

// Server handles incoming HTTP requests that drive the gateway side of the
// connected hands-free units
type Server struct {
	Logger      *slog.Logger
	Backend     *MemoryBackend
	Connections *Registry
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /notify", s.handleNotify)
	mux.HandleFunc("GET /calls", s.handleCalls)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

// NotifyRequest is the body of POST /notify. Which fields matter depends on
// Type.
type NotifyRequest struct {
	Port      string `json:"port"`
	Type      string `json:"type"`
	Number    string `json:"number,omitempty"`
	Indicator string `json:"indicator,omitempty"`
	Value     int    `json:"value,omitempty"`
	Enabled   bool   `json:"enabled,omitempty"`
}

// notification builds the gateway event described by the request.
func (req NotifyRequest) notification() (slc.Notification, error) {
	switch req.Type {
	case "ring":
		return slc.Ring{Number: req.Number}, nil
	case "call-waiting":
		return slc.CallWaiting{Number: req.Number}, nil
	case "indicator":
		ind, err := indicatorByName(req.Indicator)
		if err != nil {
			return nil, err
		}
		return slc.IndicatorUpdate{Indicator: ind, Value: req.Value}, nil
	case "speaker-gain":
		return slc.SpeakerGain{Gain: req.Value}, nil
	case "microphone-gain":
		return slc.MicrophoneGain{Gain: req.Value}, nil
	case "inband-ringtone":
		return slc.InbandRingtone{Enabled: req.Enabled}, nil
	case "audio":
		return slc.AudioConnection{}, nil
	default:
		return nil, fmt.Errorf("unknown notification type %q", req.Type)
	}
}

func indicatorByName(name string) (slc.Indicator, error) {
	for ind := slc.IndicatorService; ind <= slc.IndicatorBatteryCharge; ind++ {
		if ind.String() == name {
			return ind, nil
		}
	}
	return 0, fmt.Errorf("unknown indicator %q", name)
}

// handleNotify feeds a gateway event to the connection on the given port
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	var req NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Port == "" || req.Type == "" {
		s.sendError(w, "both 'port' and 'type' fields are required", http.StatusBadRequest)
		return
	}

	n, err := req.notification()
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, ok := s.Connections.Get(req.Port)
	if !ok {
		s.sendError(w, fmt.Sprintf("no connection on %s", req.Port), http.StatusNotFound)
		return
	}

	if err := conn.Notify(r.Context(), n); err != nil {
		status := http.StatusInternalServerError
		var perr *slc.ProcedureError
		switch {
		case errors.Is(err, gateway.ErrNotEstablished):
			status = http.StatusConflict
		case errors.As(err, &perr):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, gateway.ErrAlreadyClosed):
			status = http.StatusServiceUnavailable
		}
		s.Logger.Error("Failed to deliver notification", "error", err, "port", req.Port, "type", req.Type)
		s.sendError(w, err.Error(), status)
		return
	}

	if s.Backend != nil {
		switch n := n.(type) {
		case slc.Ring:
			s.Backend.Incoming(n.Number)
		case slc.CallWaiting:
			s.Backend.Incoming(n.Number)
		case slc.IndicatorUpdate:
			if err := s.Backend.SetIndicator(n.Indicator, n.Value); err != nil {
				s.Logger.Warn("Failed to record indicator", "error", err, "indicator", n.Indicator.String())
			}
		}
	}

	s.Logger.Info("Notification delivered", "port", req.Port, "type", req.Type)
	w.WriteHeader(http.StatusOK)
}

// handleCalls lists the calls of the in-memory backend
func (s *Server) handleCalls(w http.ResponseWriter, r *http.Request) {
	if s.Backend == nil {
		s.sendError(w, "no backend", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Backend.Calls())
}
