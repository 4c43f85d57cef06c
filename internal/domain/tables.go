package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Accounts
	&User{},
	&Role{},
	&UserRole{},
	&Address{},
	// Catalog
	&Category{},
	&Brand{},
	&Product{},
	// Shopping
	&ShoppingCart{},
	&Order{},
	&OrderItem{},
}
