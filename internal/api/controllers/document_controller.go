package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripmate/internal/models/request_models"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

type DocumentController struct {
	retrievalService services.RetrievalServiceInterface
}

func NewDocumentController(retrievalService services.RetrievalServiceInterface) *DocumentController {
	return &DocumentController{
		retrievalService: retrievalService,
	}
}

// POST /documents
func (dc *DocumentController) IngestHandler(c *gin.Context) {
	var req request_models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "source and text are required")
		return
	}

	chunks, err := dc.retrievalService.Ingest(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"chunks": chunks}, "Document ingested successfully")
}

// GET /documents/search?q=&k=
func (dc *DocumentController) SearchHandler(c *gin.Context) {
	k, err := strconv.Atoi(c.DefaultQuery("k", "3"))
	if err != nil || k < 1 || k > 20 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid k (must be 1-20)")
		return
	}

	docs, err := dc.retrievalService.RetrieveContext(c.Request.Context(), c.Query("q"), k)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, docs, "Fetched documents successfully")
}
