package listing

import (
	"strings"

	"quickload-admin/internal/models"
)

var (
	UserTabs    = []string{"All User", "Merchant", "Driver", "Merchant-Driver"}
	ProductTabs = []string{"All", "Bajri", "Bricks", "Grit", "Cement"}
	OwnerTabs   = []string{"All Owners", "Bajri", "Bricks", "Grit", "Cement"}
	VehicleTabs = []string{"All Vehicles", "Open Body", "Container", "Trailer", "Dumper"}
)

var Users = Spec[models.User]{
	Tabs: UserTabs,
	Match: func(u models.User, tab string) bool {
		return strings.EqualFold(string(u.Type), tab)
	},
	Verified: func(u models.User) bool { return u.IsVerified },
}

var Products = Spec[models.Product]{
	Tabs: ProductTabs,
	Match: func(p models.Product, tab string) bool {
		return strings.EqualFold(string(p.ProductType), tab)
	},
	Verified: func(p models.Product) bool { return p.IsVerified },
}

// Owners match when the shop sells the tab's product type.
var Owners = Spec[models.ProductOwner]{
	Tabs: OwnerTabs,
	Match: func(o models.ProductOwner, tab string) bool {
		return o.Sells(tab)
	},
	Verified: func(o models.ProductOwner) bool { return o.IsVerified },
}

var Vehicles = Spec[models.Vehicle]{
	Tabs: VehicleTabs,
	Match: func(v models.Vehicle, tab string) bool {
		return strings.EqualFold(string(v.VehicleType), tab)
	},
	Verified: func(v models.Vehicle) bool { return v.IsVerified },
}
