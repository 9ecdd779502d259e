package api

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Paging holds the page size limits applied to list queries.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// page reads page, pageSize, sortField and sortDirection from the query
// string. Bad numbers fall back to the first page at the default size.
func (p Paging) page(c *gin.Context) repository.Page {
	page := repository.Page{Page: 1, Size: p.DefaultSize, SortField: c.Query("sortField"), SortDir: repository.SortAsc}

	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		page.Page = n
	}
	if n, err := strconv.Atoi(c.Query("pageSize")); err == nil && n > 0 {
		page.Size = n
	}
	if p.MaxSize > 0 && page.Size > p.MaxSize {
		page.Size = p.MaxSize
	}
	if page.Size <= 0 {
		page.Size = 10
	}
	if strings.EqualFold(c.Query("sortDirection"), string(repository.SortDesc)) {
		page.SortDir = repository.SortDesc
	}
	return page
}

// pathID parses the named path parameter as an ObjectID, aborting with 400
// when it is malformed.
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// queryID parses an optional ObjectID filter. An absent value is nil.
func queryID(c *gin.Context, name string) (*primitive.ObjectID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return nil, false
	}
	return &id, true
}

// parseID converts an optional hex id from a request body.
func parseID(hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, nil
	}
	return primitive.ObjectIDFromHex(hex)
}

func parseIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// bindJSON binds the body, aborting with 400 on malformed input.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}

// SelectionResponse is the selected/available split shown by multi-select
// form controls.
type SelectionResponse struct {
	Selected  []domain.Option `json:"selected"`
	Available []domain.Option `json:"available"`
}
