package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schemamark/schemamark/internal/config"
	"github.com/schemamark/schemamark/internal/core"
	"github.com/schemamark/schemamark/internal/core/builder"
	"github.com/schemamark/schemamark/internal/core/finder"
	"github.com/schemamark/schemamark/internal/core/injector"
	"github.com/schemamark/schemamark/internal/core/model"
	"github.com/schemamark/schemamark/internal/fetch"
	"github.com/schemamark/schemamark/internal/lookup"
)

type Server struct {
	Engine  *core.Engine
	Fetcher *fetch.Fetcher
}

func NewServer(cfg *config.Config) (*Server, error) {
	suggest, err := lookup.NewClient(cfg.Finder)
	if err != nil {
		return nil, err
	}

	catalog := finder.DefaultCatalog()
	if len(cfg.Catalog) > 0 {
		catalog = catalog[:0]
		for _, s := range cfg.Catalog {
			catalog = append(catalog, finder.Source{
				Name:        s.Name,
				URLTemplate: s.URLTemplate,
				SiteType:    s.SiteType,
				Category:    s.Category,
				Priority:    s.Priority,
			})
		}
	}

	f := finder.New(catalog, suggest, cfg.Finder.Allowlist)
	engine := core.NewEngine(f, injector.Policy(cfg.Injector.Policy))
	fetcher := fetch.New(cfg.FetchTimeout(), cfg.Fetcher.UserAgent, cfg.Fetcher.MaxContentBytes)

	return &Server{
		Engine:  engine,
		Fetcher: fetcher,
	}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/analyze", s.Analyze)
	r.POST("/schemas/drug", s.GenerateDrug)
	r.POST("/schemas/trial", s.GenerateTrial)
	r.POST("/inject", s.Inject)
	r.GET("/sources", s.FindSources)

	return r
}

// AnalyzeRequest names a page either by URL (fetched server-side) or by raw
// HTML supplied directly.
type AnalyzeRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	pageHTML, ok := s.resolvePage(c, req.URL, req.HTML)
	if !ok {
		return
	}

	page, err := s.Engine.AnalyzePage(pageHTML)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(page.Blocks), "blocks": page.Blocks})
}

func (s *Server) GenerateDrug(c *gin.Context) {
	var in builder.DrugInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc, block, err := s.Engine.GenerateDrug(in)
	if err != nil {
		respondError(c, err)
		return
	}

	respondGenerated(c, doc, block)
}

func (s *Server) GenerateTrial(c *gin.Context) {
	var in builder.TrialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc, block, err := s.Engine.GenerateTrial(in)
	if err != nil {
		respondError(c, err)
		return
	}

	respondGenerated(c, doc, block)
}

// InjectRequest carries the target page and exactly one entity payload.
type InjectRequest struct {
	URL   string              `json:"url"`
	HTML  string              `json:"html"`
	Drug  *builder.DrugInput  `json:"drug"`
	Trial *builder.TrialInput `json:"trial"`
}

func (s *Server) Inject(c *gin.Context) {
	var req InjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if (req.Drug == nil) == (req.Trial == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide exactly one of drug or trial"})
		return
	}

	pageHTML, ok := s.resolvePage(c, req.URL, req.HTML)
	if !ok {
		return
	}

	var ent model.Entity
	var err error
	if req.Drug != nil {
		ent, err = builder.Drug(*req.Drug)
	} else {
		ent, err = builder.ClinicalTrial(*req.Trial)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := s.Engine.InjectEntity(pageHTML, ent)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": updated})
}

func (s *Server) FindSources(c *gin.Context) {
	q := finder.Query{
		Name:        c.Query("name"),
		GenericName: c.Query("generic"),
		DrugClass:   c.Query("class"),
	}

	candidates, err := s.Engine.FindSources(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(candidates), "candidates": candidates})
}

// resolvePage fetches the page when a URL was given, otherwise uses the
// supplied HTML. Writes the error response itself on failure.
func (s *Server) resolvePage(c *gin.Context, url, html string) (string, bool) {
	if url == "" && html == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide url or html"})
		return "", false
	}
	if url == "" {
		return html, true
	}

	pageHTML, err := s.Fetcher.Fetch(c.Request.Context(), url)
	if err != nil {
		log.Printf("Failed to fetch %s: %v", url, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch page: " + err.Error()})
		return "", false
	}
	return pageHTML, true
}

func respondGenerated(c *gin.Context, doc *model.MarkupDocument, block []byte) {
	c.JSON(http.StatusOK, gin.H{
		"document_id": doc.UUID,
		"created_at":  doc.CreatedAt,
		"jsonld":      string(block),
	})
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	var parseErr *model.ParseError
	var injectionErr *model.InjectionError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &parseErr), errors.As(err, &injectionErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNoSources):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrServiceUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
