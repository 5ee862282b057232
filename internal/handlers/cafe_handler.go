package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/httpresp"
	"github.com/BruksfildServices01/ratemycafe/internal/locale"
	ucCafe "github.com/BruksfildServices01/ratemycafe/internal/usecase/cafe"
)

// ======================================================
// HANDLER
// ======================================================

type CafeHandler struct {
	listCafes *ucCafe.ListCafes
	getCafe   *ucCafe.GetCafe
	lr        *locale.Router
}

func NewCafeHandler(
	listCafes *ucCafe.ListCafes,
	getCafe *ucCafe.GetCafe,
	lr *locale.Router,
) *CafeHandler {
	return &CafeHandler{
		listCafes: listCafes,
		getCafe:   getCafe,
		lr:        lr,
	}
}

// GET /api/v1/cafes?q=&sort=&lat=&lng=
func (h *CafeHandler) List(c *gin.Context) {
	origin, err := originFromQuery(c)
	if err != nil {
		httperr.FromError(c, err, "invalid_request", "load cafes")
		return
	}

	mode, err := domain.ParseSortMode(c.Query("sort"))
	if err != nil {
		httperr.FromError(c, err, "invalid_sort", "load cafes")
		return
	}

	listings, err := h.listCafes.Execute(c.Request.Context(), ucCafe.ListInput{
		Query:  c.Query("q"),
		Sort:   mode,
		Origin: origin,
	})
	if err != nil {
		httperr.FromError(c, err, "cafe_list_failed", "load cafes")
		return
	}

	httpresp.List(c, listings)
}

// GET /api/v1/cafes/:id?locale=
func (h *CafeHandler) Get(c *gin.Context) {
	id := c.Param("id")

	l := c.Query("locale")
	if !locale.IsSupported(l) {
		l = h.lr.Default()
	}

	detail, err := h.getCafe.Execute(c.Request.Context(), id, h.lr.Path(l, "/cafes/"+id))
	if err != nil {
		httperr.FromError(c, err, "cafe_get_failed", "load cafe")
		return
	}

	httpresp.OK(c, detail)
}
