package server

import (
	"encoding/json"
	"net/http"

	"github.com/dshills/diffreview/internal/providers"
	"github.com/dshills/diffreview/internal/review"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds a review request body.
const maxBodyBytes = 16 << 20

type reviewBody struct {
	Diff               string `json:"diff"`
	ReviewInstructions string `json:"reviewInstructions"`
	Provider           string `json:"provider"`
	APIKey             string `json:"apiKey"`
	UseProModel        bool   `json:"useProModel"`
}

// toRequest keeps an unknown provider name as-is so the dispatcher validates
// the key and inputs before reporting it.
func (b reviewBody) toRequest() review.Request {
	p, err := providers.ParseProvider(b.Provider)
	if err != nil {
		p = providers.Provider(b.Provider)
	}
	return review.Request{
		Diff:           b.Diff,
		Instructions:   b.ReviewInstructions,
		Provider:       p,
		APIKey:         b.APIKey,
		UseStrongModel: b.UseProModel,
	}
}

type errorBody struct {
	Error string      `json:"error"`
	Kind  review.Kind `json:"kind,omitempty"`
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var body reviewBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		jsonErr(w, errorBody{Error: "invalid body"}, http.StatusBadRequest)
		return
	}

	res, err := s.rv.Review(r.Context(), body.toRequest())
	if err != nil {
		eb, code := errorResponse(err)
		zerolog.Ctx(r.Context()).Warn().Str("kind", string(eb.Kind)).Int("status", code).Msg("review rejected")
		jsonErr(w, eb, code)
		return
	}
	jsonOK(w, res, http.StatusOK)
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	var v any = providers.Table()
	if s.opts.ModelsFn != nil {
		v = s.opts.ModelsFn()
	}
	jsonOK(w, map[string]any{"providers": providers.All(), "models": v}, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// errorResponse maps a review failure to a body and HTTP status.
func errorResponse(err error) (errorBody, int) {
	kind := review.KindOf(err)
	return errorBody{Error: err.Error(), Kind: kind}, statusFor(kind)
}

func statusFor(kind review.Kind) int {
	switch kind {
	case review.EmptyInput, review.MissingAPIKey, review.UnsupportedProvider:
		return http.StatusBadRequest
	case review.InvalidCredentials:
		return http.StatusUnauthorized
	case review.UpstreamEmptyResponse, review.UpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func jsonOK(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, body errorBody, code int) {
	jsonOK(w, body, code)
}
