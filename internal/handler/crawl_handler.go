package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/siteinsight-backend/internal/export"
	"github.com/fuzumoe/siteinsight-backend/internal/model"
	"github.com/fuzumoe/siteinsight-backend/internal/repository"
	"github.com/fuzumoe/siteinsight-backend/internal/service"
)

type CrawlHandler struct {
	crawlService service.CrawlService
}

func NewCrawlHandler(svc service.CrawlService) *CrawlHandler { return &CrawlHandler{crawlService: svc} }

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}

func paginationFromQuery(c *gin.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return repository.Pagination{Page: page, PageSize: size}
}

// errorStatus maps service and repository errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrCrawlNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidSeed):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrCrawlRunning):
		return http.StatusConflict
	case errors.Is(err, service.ErrQueueFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// @Summary Queue a crawl
// @Tags    crawls
// @Accept  json
// @Produce json
// @Param   input body model.CreateCrawlInput true "Seed domain or URL"
// @Success 202 {object} model.CrawlDTO
// @Failure 400 {object} map[string]string "error"
// @Failure 503 {object} map[string]string "queue full"
// @Router  /api/v1/crawls [post]
func (h *CrawlHandler) Create(c *gin.Context) {
	var in model.CreateCrawlInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	dto, err := h.crawlService.Create(&in)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, dto)
}

// @Summary List crawls (paginated)
// @Tags    crawls
// @Produce json
// @Param   page      query int false "page"
// @Param   page_size query int false "page_size"
// @Success 200 {object} model.PaginatedResponse[model.CrawlDTO]
// @Router  /api/v1/crawls [get]
func (h *CrawlHandler) List(c *gin.Context) {
	items, err := h.crawlService.List(paginationFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get one crawl
// @Tags    crawls
// @Produce json
// @Param   id path int true "Crawl ID"
// @Success 200 {object} model.CrawlDTO
// @Failure 404 {object} map[string]string "error"
// @Router  /api/v1/crawls/{id} [get]
func (h *CrawlHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	dto, err := h.crawlService.Get(id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary Re-queue a crawl
// @Tags    crawls
// @Produce json
// @Param   id path int true "Crawl ID"
// @Success 202 {object} map[string]string "queued"
// @Failure 409 {object} map[string]string "already running"
// @Router  /api/v1/crawls/{id}/start [patch]
func (h *CrawlHandler) Start(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.crawlService.Start(id); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": model.StatusQueued})
}

// @Summary Crawl result: pages, enterprise signals and corpus
// @Tags    crawls
// @Produce json
// @Param   id path int true "Crawl ID"
// @Success 200 {object} model.CrawlResultDTO
// @Failure 404 {object} map[string]string "error"
// @Router  /api/v1/crawls/{id}/results [get]
func (h *CrawlHandler) Results(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	dto, err := h.crawlService.Results(id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary Download a crawl result as xlsx
// @Tags    crawls
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   id path int true "Crawl ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "error"
// @Router  /api/v1/crawls/{id}/export [get]
func (h *CrawlHandler) Export(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.crawlService.Export(id, &buf); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="crawl-%d.xlsx"`, id))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// @Summary Delete a crawl
// @Tags    crawls
// @Produce json
// @Param   id path int true "Crawl ID"
// @Success 200 {object} map[string]string "deleted"
// @Failure 404 {object} map[string]string "error"
// @Router  /api/v1/crawls/{id} [delete]
func (h *CrawlHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.crawlService.Delete(id); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// @Summary Crawl a site synchronously without storing the result
// @Tags    crawls
// @Accept  json
// @Produce json
// @Param   input body model.CreateCrawlInput true "Seed domain or URL"
// @Success 200 {object} crawler.CrawlResult
// @Failure 400 {object} map[string]string "error"
// @Failure 502 {object} crawler.CrawlResult "homepage unreachable or rejected"
// @Router  /api/v1/crawls/preview [post]
func (h *CrawlHandler) Preview(c *gin.Context) {
	var in model.CreateCrawlInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.crawlService.Preview(c.Request.Context(), &in)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if res.Failed() {
		c.JSON(http.StatusBadGateway, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RegisterRoutes mounts the crawl endpoints on the given router group.
func (h *CrawlHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/crawls", h.Create)
	rg.POST("/crawls/preview", h.Preview)
	rg.GET("/crawls", h.List)
	rg.GET("/crawls/:id", h.Get)
	rg.DELETE("/crawls/:id", h.Delete)
	rg.PATCH("/crawls/:id/start", h.Start)
	rg.GET("/crawls/:id/results", h.Results)
	rg.GET("/crawls/:id/export", h.Export)
}
