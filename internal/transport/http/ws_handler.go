package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"assessment-service/internal/app"
	"assessment-service/internal/domain"

	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.AttemptService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.AttemptService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Question int `json:"question"`
	Option   int `json:"option"`
}

// questionView is the client-facing question shape. The correct option
// never leaves the server; scoring is recomputed here on submit.
type questionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type startedPayload struct {
	AttemptID       string         `json:"attemptId"`
	SectionID       string         `json:"sectionId"`
	DurationSeconds int            `json:"durationSeconds"`
	Questions       []questionView `json:"questions"`
}

type remainingPayload struct {
	Seconds int `json:"seconds"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS runs one attempt over a websocket: it starts the attempt, streams
// the countdown, records answers, and drives submission. The expiry timer
// here and the client's submit message both funnel into the same guarded
// transition, so their race yields exactly one persisted result.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sectionID := r.URL.Query().Get("sectionId")
	userID := r.URL.Query().Get("userId")
	userName := r.URL.Query().Get("name")
	if sectionID == "" || userID == "" || userName == "" {
		http.Error(w, "missing sectionId, userId, or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	attempt, err := h.service.Start(r.Context(), sectionID, userID, userName)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.Abandon(attempt.ID())

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	timerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	submit := func() {
		result, err := h.service.Submit(r.Context(), attempt.ID())
		switch {
		case err == nil:
			h.trySend(send, closeSignals, outboundMessage[any]{Type: "submitted", Payload: result})
		case errors.Is(err, domain.ErrAlreadySubmitted):
			// Success-equivalent: the other trigger won the race.
			h.trySend(send, closeSignals, outboundMessage[any]{Type: "closed", Payload: struct{}{}})
		case errors.Is(err, domain.ErrResultWrite):
			h.trySend(send, closeSignals, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "could not submit, please retry"}})
		default:
			h.trySend(send, closeSignals, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		}
	}

	// Countdown ticker; fires the automatic submit when the budget runs out.
	go func() {
		defer close(timerDone)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				left, err := h.service.Remaining(attempt.ID())
				if err != nil {
					return
				}
				h.trySend(send, closeSignals, outboundMessage[any]{Type: "remaining", Payload: remainingPayload{Seconds: left}})
				if left <= 0 {
					submit()
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "started", Payload: startedView(attempt)}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			err := h.service.SelectAnswer(r.Context(), attempt.ID(), payload.Question, payload.Option)
			switch {
			case err == nil:
				send <- outboundMessage[any]{Type: "answerAck", Payload: payload}
			case errors.Is(err, domain.ErrAttemptClosed):
				send <- outboundMessage[any]{Type: "closed", Payload: struct{}{}}
			default:
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "submit":
			submit()
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-timerDone
	close(send)
	<-writerDone
}

// trySend delivers a message unless the connection is shutting down; the
// timer goroutine must never block on a dead writer.
func (h *WSHandler) trySend(send chan<- outboundMessage[any], closeSignals <-chan struct{}, msg outboundMessage[any]) {
	select {
	case send <- msg:
	case <-closeSignals:
	}
}

func startedView(attempt *app.Attempt) startedPayload {
	questions := attempt.Questions()
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView{ID: q.ID, Text: q.Text, Options: q.Options})
	}
	return startedPayload{
		AttemptID:       attempt.ID(),
		SectionID:       attempt.SectionID(),
		DurationSeconds: attempt.DurationSeconds(),
		Questions:       views,
	}
}
