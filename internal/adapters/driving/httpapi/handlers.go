package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

type loginRequest struct {
	Email     string `json:"email"`
	Subscribe bool   `json:"subscribe"`
}

type generateRequest struct {
	TemplateID   string            `json:"templateId"`
	Fields       map[string]string `json:"fields"`
	Jurisdiction string            `json:"jurisdiction"`
	ClauseIDs    []string          `json:"clauseIds"`
}

type saveRequest struct {
	Document   domain.GeneratedDocument `json:"document"`
	ExistingID string                   `json:"existingId"`
}

type purchaseRequest struct {
	ProductID string `json:"productId"`
}

type scoreRequest struct {
	Answers []int `json:"answers"`
}

type questionResponse struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type downloadResponse struct {
	Document domain.SavedDocument `json:"document"`
	Location string               `json:"location"`
}

func (rt *router) listTemplates(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, domain.Templates())
	return nil
}

func (rt *router) getTemplate(w http.ResponseWriter, r *http.Request) error {
	t, ok := domain.LookupTemplate(chi.URLParam(r, "id"))
	if !ok {
		return domain.ErrNotFound
	}
	writeJSON(w, http.StatusOK, t)
	return nil
}

func (rt *router) listProducts(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, domain.Products())
	return nil
}

func (rt *router) quizQuestions(w http.ResponseWriter, _ *http.Request) error {
	questions := domain.QuizQuestions()
	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionResponse{ID: q.ID, Question: q.Question, Options: q.Options})
	}
	writeJSON(w, http.StatusOK, out)
	return nil
}

func (rt *router) scoreQuiz(w http.ResponseWriter, r *http.Request) error {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	result, err := rt.ports.Quiz.ScoreQuiz(req.Answers)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, result)
	return nil
}

func (rt *router) login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	token := newSessionToken(r)
	ctx := driving.WithSession(r.Context(), token)
	profile, err := rt.ports.Account.Login(ctx, req.Email, req.Subscribe)
	if err != nil {
		return err
	}
	setSessionCookie(w, r, token)
	w.Header().Set(sessionHeader, token)
	writeJSON(w, http.StatusOK, profile)
	return nil
}

func (rt *router) logout(w http.ResponseWriter, r *http.Request) error {
	if err := rt.ports.Account.Logout(r.Context()); err != nil {
		return err
	}
	setSessionCookie(w, r, "")
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (rt *router) profile(w http.ResponseWriter, r *http.Request) error {
	profile, err := rt.ports.Account.Current(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, profile)
	return nil
}

func (rt *router) purchase(w http.ResponseWriter, r *http.Request) error {
	var req purchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	profile, err := rt.ports.Account.Purchase(r.Context(), strings.TrimSpace(req.ProductID))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, profile)
	return nil
}

func (rt *router) generate(w http.ResponseWriter, r *http.Request) error {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	doc, err := rt.ports.Account.Generate(r.Context(), driving.GenerateInput{
		TemplateID:   req.TemplateID,
		Form:         domain.FormData(req.Fields),
		Jurisdiction: req.Jurisdiction,
		ClauseIDs:    req.ClauseIDs,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, doc)
	return nil
}

func (rt *router) listDocuments(w http.ResponseWriter, r *http.Request) error {
	docs, err := rt.ports.Account.ListDocuments(r.Context())
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []domain.SavedDocument{}
	}
	writeJSON(w, http.StatusOK, docs)
	return nil
}

func (rt *router) saveDocument(w http.ResponseWriter, r *http.Request) error {
	var req saveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	saved, err := rt.ports.Account.SaveDocument(r.Context(), req.Document, req.ExistingID)
	if err != nil {
		return err
	}
	status := http.StatusCreated
	if req.ExistingID != "" {
		status = http.StatusOK
	}
	writeJSON(w, status, saved)
	return nil
}

func (rt *router) getDocument(w http.ResponseWriter, r *http.Request) error {
	doc, err := rt.ports.Account.GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, doc)
	return nil
}

func (rt *router) download(w http.ResponseWriter, r *http.Request) error {
	res, err := rt.ports.Account.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, downloadResponse{Document: res.Document, Location: res.Location})
	return nil
}
