package domain

var Tables = []interface{}{
	// Accounts
	&User{},
	// Catalog
	&Product{},
	// Cart
	&Cart{},
	&CartItem{},
}
