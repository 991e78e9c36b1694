// Package http provides http transport for extraction
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"minutes/internal/modkit/httpkit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/net/http/bind"
	"minutes/internal/services/api/extract/domain"
	exdom "minutes/internal/services/extract/domain"
)

// Register mounts the extract routes
func Register(r httpkit.Router, ex exdom.ExtractorPort) {
	h := &handlers{ex: ex}
	httpkit.Post(r, "/", h.extract)
	httpkit.Post(r, "/tokens", h.tokens)
	httpkit.Get(r, "/grammar", h.grammar)
	httpkit.Get(r, "/minutes/{id}", h.document)
}

type handlers struct{ ex exdom.ExtractorPort }

// swagger:route POST /extract Extract extractText
// @Summary Extract leaders and songs from minutes text
// @Tags extract
// @Accept json
// @Produce json
// @Param payload body domain.ExtractInput true "Minutes text"
// @Success 200 {object} domain.ExtractOutput "ok"
// @Router /extract [post]
func (h *handlers) extract(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.ExtractInput](r)
	if err != nil {
		return nil, err
	}
	res, err := h.ex.Extract(r.Context(), in.Text, in.Options(h.ex.Defaults()))
	if err != nil {
		return nil, err
	}
	return domain.ExtractOutput{
		Records:     res.Records,
		Diagnostics: res.Diagnostics,
		Offices:     res.Offices,
		Grammar:     h.ex.Grammar().Fingerprint,
	}, nil
}

// swagger:route POST /extract/tokens Extract extractTokens
// @Summary Tokenize minutes text
// @Tags extract
// @Accept json
// @Produce json
// @Param payload body domain.TokensInput true "Minutes text"
// @Success 200 {object} domain.TokensOutput "ok"
// @Router /extract/tokens [post]
func (h *handlers) tokens(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.TokensInput](r)
	if err != nil {
		return nil, err
	}
	toks, err := h.ex.Tokens(r.Context(), in.Text, in.KeepSpace)
	if err != nil {
		return nil, err
	}
	return domain.TokensOutput{Count: len(toks), Tokens: toks}, nil
}

// swagger:route GET /extract/grammar Extract extractGrammar
// @Summary Compiled grammar order, captures and fingerprint
// @Tags extract
// @Produce json
// @Success 200 {object} exdom.GrammarInfo "ok"
// @Router /extract/grammar [get]
func (h *handlers) grammar(_ *stdhttp.Request) (any, error) {
	return h.ex.Grammar(), nil
}

// swagger:route GET /extract/minutes/{id} Extract extractMinutes
// @Summary Extract a stored minutes document
// @Tags extract
// @Produce json
// @Param id path int true "Minutes id"
// @Param evaluate query bool false "Score against recorded leads"
// @Success 200 {object} exdom.DocumentResult "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /extract/minutes/{id} [get]
func (h *handlers) document(r *stdhttp.Request) (any, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return nil, perr.WithField(perr.InvalidArgf("id must be a positive integer"), "id")
	}
	evaluate, _ := strconv.ParseBool(r.URL.Query().Get("evaluate"))
	return h.ex.Document(r.Context(), id, h.ex.Defaults(), evaluate)
}
