package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quickload-admin/internal/listing"
	"quickload-admin/internal/models"
	"quickload-admin/internal/state"
)

// viewFrom reads ?tab=&sort=&page=. A missing or bad page means page 1.
func viewFrom(c *gin.Context) listing.View {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	return listing.View{
		Tab:  c.Query("tab"),
		Sort: listing.ParseSort(c.Query("sort")),
		Page: page,
	}
}

// renderList answers with the current page or the resource's fixed failure
// message.
func renderList[T any](s *Server, c *gin.Context, snap state.Snapshot[[]T], spec listing.Spec[T]) {
	if snap.Error != "" {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": snap.Error})
		return
	}
	c.JSON(http.StatusOK, listing.Apply(snap.Data, viewFrom(c), spec, s.pageSize))
}

func (s *Server) listUsers(c *gin.Context) {
	snap := state.Users(s.svc, s.deps).Refetch(c.Request.Context())
	renderList(s, c, snap, listing.Users)
}

// listProducts narrows to one owner with ?owner=, and to one owner's type
// with ?owner=&type=.
func (s *Server) listProducts(c *gin.Context) {
	ctx := c.Request.Context()
	owner, productType := c.Query("owner"), c.Query("type")

	var snap state.Snapshot[[]models.Product]
	switch {
	case owner != "" && productType != "":
		snap = state.ProductsByOwnerAndType(s.svc, owner, productType, s.deps).Refetch(ctx)
	case owner != "":
		snap = state.ProductsByUserID(s.svc, owner, s.deps).Refetch(ctx)
	default:
		snap = state.Products(s.svc, s.deps).Refetch(ctx)
	}
	renderList(s, c, snap, listing.Products)
}

// listOwners asks the backend for one product type with ?type=; the tab
// filter still applies on top.
func (s *Server) listOwners(c *gin.Context) {
	ctx := c.Request.Context()
	if productType := c.Query("type"); productType != "" {
		renderList(s, c, state.ProductOwnersByType(s.svc, productType, s.deps).Refetch(ctx), listing.Owners)
		return
	}
	renderList(s, c, state.ProductOwners(s.svc, s.deps).Refetch(ctx), listing.Owners)
}

func (s *Server) listVehicles(c *gin.Context) {
	snap := state.Vehicles(s.svc, s.deps).Refetch(c.Request.Context())
	renderList(s, c, snap, listing.Vehicles)
}

func (s *Server) listNotifications(c *gin.Context) {
	snap := state.Notifications(s.svc, s.deps).Refetch(c.Request.Context())
	if snap.Error != "" {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": snap.Error})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": snap.Data})
}
