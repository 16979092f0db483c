// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/menuwise/internal/extract"
	"github.com/tomtom215/menuwise/internal/logging"
	"github.com/tomtom215/menuwise/internal/preferences"
	"github.com/tomtom215/menuwise/internal/session"
	"github.com/tomtom215/menuwise/internal/validation"
	ws "github.com/tomtom215/menuwise/internal/websocket"
)

// maxPreviewWait caps the long-poll duration accepted by GetPreview.
const maxPreviewWait = 30 * time.Second

// multipartMemory is how much of a multipart upload is kept in memory
// before spilling to temporary files.
const multipartMemory = 8 << 20

// maxQuestionnaireBytes limits questionnaire bodies.
const maxQuestionnaireBytes = 64 << 10

type sessionCtxKey struct{}

// SessionView is a session snapshot tagged with its id.
type SessionView struct {
	ID string `json:"id"`
	session.State
}

func viewOf(o *session.Orchestrator) SessionView {
	return SessionView{ID: o.ID(), State: o.Snapshot()}
}

// sessionContext loads the {id} session for the nested routes and tags
// the request context with its id for logging.
func (h *Handler) sessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		o, err := h.sessions.Get(id)
		if err != nil {
			writeSessionError(w, r, err)
			return
		}
		ctx := logging.ContextWithSessionID(r.Context(), id)
		ctx = context.WithValue(ctx, sessionCtxKey{}, o)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func orchestratorFrom(r *http.Request) *session.Orchestrator {
	o, _ := r.Context().Value(sessionCtxKey{}).(*session.Orchestrator)
	return o
}

// Questions handles GET /api/v1/questions and returns the quiz in order.
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(preferences.Questions())
}

// CreateSession handles POST /api/v1/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	o, err := h.sessions.Create()
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	logging.Ctx(logging.ContextWithSessionID(r.Context(), o.ID())).Info().Msg("session created")
	NewResponseWriter(w, r).Created(viewOf(o))
}

// GetSession handles GET /api/v1/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(viewOf(orchestratorFrom(r)))
}

// DeleteSession handles DELETE /api/v1/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.sessions.Delete(id) {
		writeSessionError(w, r, session.ErrNotFound)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// transition wraps a no-argument orchestrator event as a handler that
// replies with the new snapshot.
func transition(event func(*session.Orchestrator) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o := orchestratorFrom(r)
		if err := event(o); err != nil {
			writeSessionError(w, r, err)
			return
		}
		NewResponseWriter(w, r).Success(viewOf(o))
	}
}

// Start handles POST /api/v1/sessions/{id}/start.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	transition((*session.Orchestrator).Start)(w, r)
}

// Cancel handles POST /api/v1/sessions/{id}/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	transition((*session.Orchestrator).Cancel)(w, r)
}

// RetryMenu handles POST /api/v1/sessions/{id}/preview/retry.
func (h *Handler) RetryMenu(w http.ResponseWriter, r *http.Request) {
	transition((*session.Orchestrator).RetryMenu)(w, r)
}

// ConfirmPreview handles POST /api/v1/sessions/{id}/preview/confirm.
func (h *Handler) ConfirmPreview(w http.ResponseWriter, r *http.Request) {
	transition((*session.Orchestrator).ConfirmPreview)(w, r)
}

// Restart handles POST /api/v1/sessions/{id}/restart.
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	transition((*session.Orchestrator).Restart)(w, r)
}

// inputRequest is the JSON form of a menu submission. Data may be plain
// base64 or a data URL ("data:image/png;base64,...").
type inputRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=text image"`
	Text     string `json:"text,omitempty" validate:"required_if=Kind text,max=100000"`
	Data     string `json:"data,omitempty" validate:"required_if=Kind image"`
	MIMEType string `json:"mime_type,omitempty" validate:"omitempty,startswith=image/"`
}

// SubmitInput handles POST /api/v1/sessions/{id}/input. It accepts JSON
// (inputRequest) or multipart form data with an "image" file or a "text"
// field, starts extraction in the background and replies 202.
func (h *Handler) SubmitInput(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadBytes)

	in, err := decodeInput(r)
	if err != nil {
		if verr, ok := asValidation(err); ok {
			logging.Ctx(r.Context()).Debug().Strs("fields", verr.Fields()).Msg("menu input rejected")
			apiErr := verr.ToAPIError()
			NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
			return
		}
		writeSessionError(w, r, err)
		return
	}

	o := orchestratorFrom(r)
	if err := o.SubmitInput(r.Context(), in); err != nil {
		writeSessionError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Accepted(viewOf(o))
}

// validationFailure carries struct validation errors out of decodeInput.
type validationFailure struct {
	err *validation.RequestValidationError
}

func (v *validationFailure) Error() string { return v.err.Error() }

func asValidation(err error) (*validation.RequestValidationError, bool) {
	var vf *validationFailure
	if errors.As(err, &vf) {
		return vf.err, true
	}
	return nil, false
}

func decodeInput(r *http.Request) (session.Input, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType := "application/json"
	if contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return session.Input{}, fmt.Errorf("%w: %w", ErrUnsupportedMediaType, err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		return decodeJSONInput(r.Body)
	case "multipart/form-data":
		return decodeMultipartInput(r)
	default:
		return session.Input{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// decodeJSONBody reads the whole body before unmarshaling so a
// *http.MaxBytesError from a limited reader reaches the caller intact.
func decodeJSONBody(body io.Reader, v any) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return nil
}

func decodeJSONInput(body io.Reader) (session.Input, error) {
	var req inputRequest
	if err := decodeJSONBody(body, &req); err != nil {
		return session.Input{}, err
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return session.Input{}, &validationFailure{err: verr}
	}

	if req.Kind == string(extract.KindText) {
		return session.Input{Kind: extract.KindText, Text: req.Text}, nil
	}

	data, mimeType, err := decodeImageData(req.Data)
	if err != nil {
		return session.Input{}, err
	}
	if req.MIMEType != "" {
		mimeType = req.MIMEType
	}
	return session.Input{Kind: extract.KindImage, Data: data, MIMEType: mimeType}, nil
}

// decodeImageData decodes plain base64 or a base64 data URL, returning the
// MIME type declared by the data URL if any.
func decodeImageData(s string) ([]byte, string, error) {
	var mimeType string
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", fmt.Errorf("%w: data URL must be base64 encoded", ErrMalformedBody)
		}
		mimeType = strings.TrimSuffix(header, ";base64")
		if !isImageMIMEType(mimeType) {
			return nil, "", fmt.Errorf("%w: data URL type %q is not an image", ErrMalformedBody, mimeType)
		}
		s = payload
	}

	s = strings.TrimSpace(s)
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: image data is not valid base64", ErrMalformedBody)
	}
	return data, mimeType, nil
}

// isImageMIMEType reports whether s is empty or an image/* type, matching
// the rule applied to inputRequest.MIMEType.
func isImageMIMEType(s string) bool {
	return validation.ValidateVar(s, "omitempty,startswith=image/") == nil
}

func decodeMultipartInput(r *http.Request) (session.Input, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return session.Input{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return session.Input{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		mimeType := header.Header.Get("Content-Type")
		if !isImageMIMEType(mimeType) {
			// Clients often send application/octet-stream for photos.
			mimeType = ""
		}
		return session.Input{
			Kind:     extract.KindImage,
			Data:     data,
			MIMEType: mimeType,
		}, nil
	}
	if !errors.Is(err, http.ErrMissingFile) {
		return session.Input{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return session.Input{Kind: extract.KindText, Text: r.FormValue("text")}, nil
}

// CompleteQuestionnaire handles POST /api/v1/sessions/{id}/questionnaire.
// The body maps question ids to answer values, which is also the JSON form
// of a complete preference vector.
func (h *Handler) CompleteQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var answers map[preferences.QuestionID]string
	if err := decodeJSONBody(http.MaxBytesReader(w, r.Body, maxQuestionnaireBytes), &answers); err != nil {
		writeSessionError(w, r, err)
		return
	}

	prefs, err := preferences.FromAnswers(answers)
	if err != nil {
		writeSessionError(w, r, err)
		return
	}

	o := orchestratorFrom(r)
	if err := o.CompleteQuestionnaire(prefs); err != nil {
		writeSessionError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(viewOf(o))
}

// GetPreview handles GET /api/v1/sessions/{id}/preview. With ?wait=<duration>
// (capped at 30s) it long-polls until extraction settles first.
func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	o := orchestratorFrom(r)

	if raw := r.URL.Query().Get("wait"); raw != "" {
		wait, err := time.ParseDuration(raw)
		if err != nil || wait < 0 {
			NewResponseWriter(w, r).BadRequest("wait must be a non-negative duration such as 10s")
			return
		}
		if wait > maxPreviewWait {
			wait = maxPreviewWait
		}
		ctx, cancel := context.WithTimeout(r.Context(), wait)
		// A timeout just means the preview is still loading.
		_ = o.Wait(ctx)
		cancel()
	}

	view, err := o.Preview()
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(view)
}

// GetResults handles GET /api/v1/sessions/{id}/results.
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	resp, err := orchestratorFrom(r).Results(r.Context())
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(resp)
}

// WebSocket handles GET /api/v1/sessions/{id}/ws and streams state
// snapshots of the session.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Live updates are not available")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an HTTP error.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, orchestratorFrom(r).ID())
	if err := client.Attach(); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("websocket client rejected")
	}
}
