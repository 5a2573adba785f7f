package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

type askRequest struct {
	Question string `json:"question"`
}

type chunkEvent struct {
	Text string `json:"text"`
}

type doneEvent struct {
	Answer  string                   `json:"answer"`
	Sources []domain.GroundingSource `json:"sources"`
}

// eventStream writes server-sent events. Headers are sent with the first
// event so errors raised before streaming still get a JSON response.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

func (s *eventStream) send(event string, v any) error {
	if !s.started {
		h := s.w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (rt *router) ask(w http.ResponseWriter, r *http.Request) error {
	var req askRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return badRequest("question is required")
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported by response writer")
	}
	stream := &eventStream{w: w, flusher: flusher}

	resp, err := rt.ports.Account.Ask(r.Context(), question, func(chunk string) {
		if err := stream.send("chunk", chunkEvent{Text: chunk}); err != nil {
			logger.Debug("ask: client went away: %v", err)
		}
	})
	if err != nil && !stream.started {
		return err
	}

	// Past this point the status line is written; failures go in the stream.
	if err != nil {
		err = stream.send("error", newErrorBody(err, statusFor(err)))
	} else {
		sources := resp.Sources
		if sources == nil {
			sources = []domain.GroundingSource{}
		}
		err = stream.send("done", doneEvent{Answer: resp.Answer, Sources: sources})
	}
	if err != nil {
		logger.Debug("ask: write event: %v", err)
	}
	return nil
}
