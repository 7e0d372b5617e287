package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	wsWriteWait = 10 * time.Second
	wsIdleWait  = 10 * time.Minute
)

// wsRequest is a review request frame. ID is echoed in the response.
type wsRequest struct {
	ID string `json:"id"`
	reviewBody
}

type wsResponse struct {
	ID       string `json:"id,omitempty"`
	Review   string `json:"review,omitempty"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Status   int    `json:"status"`
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if s.opts.AllowedOrigin == "*" {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || origin == s.opts.AllowedOrigin
		},
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}
}

// handleWS answers every request frame with exactly one response frame.
// Frames on one connection are handled in order.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())
	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WS upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	ctx := r.Context()
	for {
		conn.SetReadDeadline(time.Now().Add(wsIdleWait))
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("WS read ended")
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		resp := s.reviewFrame(r, data)
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(resp); err != nil {
			log.Debug().Err(err).Msg("WS write failed")
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (s *Server) reviewFrame(r *http.Request, data []byte) wsResponse {
	var req wsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wsResponse{Error: "invalid body", Status: http.StatusBadRequest}
	}

	res, err := s.rv.Review(r.Context(), req.toRequest())
	if err != nil {
		eb, code := errorResponse(err)
		zerolog.Ctx(r.Context()).Warn().Str("frameId", req.ID).Str("kind", string(eb.Kind)).Msg("review rejected")
		return wsResponse{ID: req.ID, Error: eb.Error, Kind: string(eb.Kind), Status: code}
	}
	return wsResponse{
		ID:       req.ID,
		Review:   res.Review,
		Provider: string(res.Provider),
		Model:    res.Model,
		Status:   http.StatusOK,
	}
}
