package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resource-hub-go/internal/service"
)

// SearchHandler 负责处理资源搜索请求。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search 处理 GET /resources/search?q=...&limit=... 请求。
func (h *SearchHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.searchService.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		writeError(c, "Search", err)
		return
	}
	c.JSON(http.StatusOK, items)
}
