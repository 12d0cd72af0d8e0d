package handlers

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"geo-pricing-service/internal/adapters/page"
	"geo-pricing-service/internal/services"

	"go.uber.org/zap"
)

// PageHandler serves the marketing site. HTML pages are localized for the
// visitor on every request; everything else is served as a static asset.
type PageHandler struct {
	converter *services.Converter
	site      fs.FS
	static    http.Handler
	logger    *zap.Logger
	now       func() time.Time
}

func NewPageHandler(conv *services.Converter, site fs.FS, logger *zap.Logger, now func() time.Time) *PageHandler {
	return &PageHandler{
		converter: conv,
		site:      site,
		static:    http.FileServerFS(site),
		logger:    logger,
		now:       now,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, r, h.logger, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || strings.HasSuffix(r.URL.Path, "/") {
		name = path.Join(name, "index.html")
	}

	if path.Ext(name) != ".html" {
		h.static.ServeHTTP(w, r)
		return
	}

	h.servePage(w, r, name)
}

func (h *PageHandler) servePage(w http.ResponseWriter, r *http.Request, name string) {
	f, err := h.site.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("open page failed", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	doc, err := page.Parse(f, h.logger)
	if err != nil {
		h.logger.Error("parse page failed", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	doc.FillYear(h.now().Year())

	out := h.converter.NewSession(doc).Run(r.Context(), visitorFromRequest(r), r.URL.Query().Get("country"))

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		h.logger.Error("render page failed", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Content depends on who is asking.
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Price-Currency", string(out.Currency))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())
}
