package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickload-admin/internal/models"
)

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func productIDs(items []models.Product) []string {
	return ids(items, func(p models.Product) string { return p.ID })
}

func makeProducts(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{ID: fmt.Sprintf("p%02d", i+1), ProductType: models.ProductTypeBricks}
	}
	return out
}

// ==========================
// Sorting
// ==========================

func TestSortByVerified_Scenario(t *testing.T) {
	items := []models.Product{{ID: "1", IsVerified: true}, {ID: "2", IsVerified: false}}

	asc := Apply(items, View{Sort: SortAsc, Page: 1}, Products, 10)
	assert.Equal(t, []string{"2", "1"}, productIDs(asc.Items))

	desc := Apply(items, asc.View.ToggleSort(), Products, 10)
	assert.Equal(t, []string{"1", "2"}, productIDs(desc.Items))
}

func TestSortByVerified_StableForEqualKeys(t *testing.T) {
	items := []models.Product{
		{ID: "a", IsVerified: true},
		{ID: "b"},
		{ID: "c", IsVerified: true},
		{ID: "d"},
		{ID: "e"},
	}

	asc := Apply(items, View{Sort: SortAsc}, Products, 10)
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, productIDs(asc.Items))

	desc := Apply(items, View{Sort: SortDesc}, Products, 10)
	assert.Equal(t, []string{"a", "c", "b", "d", "e"}, productIDs(desc.Items))

	again := Apply(items, View{Sort: SortDesc}.ToggleSort(), Products, 10)
	assert.Equal(t, productIDs(asc.Items), productIDs(again.Items))

	// input untouched
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, productIDs(items))
}

func TestParseSortAndToggle(t *testing.T) {
	assert.Equal(t, SortDesc, ParseSort("DESC"))
	assert.Equal(t, SortAsc, ParseSort(""))
	assert.Equal(t, SortAsc, ParseSort("sideways"))
	assert.Equal(t, SortAsc, SortAsc.Toggle().Toggle())
}

// ==========================
// Filtering
// ==========================

func TestFilter_Tabs(t *testing.T) {
	users := []models.User{
		{ID: "1", Type: models.UserTypeMerchant},
		{ID: "2", Type: models.UserTypeDriver},
		{ID: "3", Type: models.UserTypeMerchantDriver},
		{ID: "4", Type: models.UserTypeMerchant},
	}
	userIDs := func(u []models.User) []string { return ids(u, func(x models.User) string { return x.ID }) }

	tests := []struct {
		tab  string
		want []string
	}{
		{"All User", []string{"1", "2", "3", "4"}},
		{"", []string{"1", "2", "3", "4"}},
		{"Merchant", []string{"1", "4"}},
		{"merchant-driver", []string{"3"}},
		{"Driver", []string{"2"}},
		{"Customer", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			got := Filter(users, tt.tab, Users.Match)
			assert.Equal(t, tt.want, userIDs(got))
		})
	}
}

func TestFilter_OwnersBySetMembership(t *testing.T) {
	owners := []models.ProductOwner{
		{ID: "o1", ProductType: []models.ProductType{models.ProductTypeBajri, models.ProductTypeGrit}},
		{ID: "o2", ProductType: []models.ProductType{models.ProductTypeCement}},
		{ID: "o3"},
	}

	got := Filter(owners, "Grit", Owners.Match)
	require.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].ID)

	assert.Len(t, Filter(owners, "All Owners", Owners.Match), 3)
}

func TestFilter_Vehicles(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: "v1", VehicleType: models.VehicleTypeOpenBody},
		{ID: "v2", VehicleType: models.VehicleTypeDumper},
	}

	got := Filter(vehicles, "open body", Vehicles.Match)

	require.Len(t, got, 1)
	assert.Equal(t, "v1", got[0].ID)
}

// ==========================
// Pagination
// ==========================

func TestPaginate_Bounds(t *testing.T) {
	items := makeProducts(23)

	tests := []struct {
		page      int
		wantFirst string
		wantLen   int
	}{
		{1, "p01", 10},
		{2, "p11", 10},
		{3, "p21", 3},
	}
	for _, tt := range tests {
		res := Apply(items, View{Page: tt.page}, Products, 10)
		require.Len(t, res.Items, tt.wantLen)
		assert.Equal(t, tt.wantFirst, res.Items[0].ID)
		assert.Equal(t, 3, res.TotalPages)
		assert.Equal(t, 23, res.Total)
	}
}

func TestApply_ClampsPage(t *testing.T) {
	items := makeProducts(12)

	res := Apply(items, View{Page: 9}, Products, 10)
	assert.Equal(t, 2, res.View.Page)
	assert.Len(t, res.Items, 2)

	res = Apply(items, View{Page: 0}, Products, 10)
	assert.Equal(t, 1, res.View.Page)

	res = Apply(nil, View{Page: 4}, Products, 10)
	assert.Equal(t, 1, res.View.Page)
	assert.Equal(t, 0, res.TotalPages)
	assert.Empty(t, res.Items)
}

func TestWithTab_ResetsPage(t *testing.T) {
	v := View{Tab: "All", Sort: SortDesc, Page: 3}.WithTab("Grit")

	assert.Equal(t, View{Tab: "Grit", Sort: SortDesc, Page: 1}, v)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
}

func TestCounts_UseUnfilteredCollection(t *testing.T) {
	items := []models.Product{
		{ID: "1", ProductType: models.ProductTypeGrit, IsVerified: true},
		{ID: "2", ProductType: models.ProductTypeBajri},
		{ID: "3", ProductType: models.ProductTypeBajri, IsVerified: true},
	}

	res := Apply(items, View{Tab: "Bajri", Page: 1}, Products, 10)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, Counts{Total: 3, Verified: 2, Unverified: 1}, res.Counts)
	assert.Equal(t, ProductTabs, res.Tabs)
}
