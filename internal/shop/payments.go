package shop

import "tokokita/internal/domain"

// Static taxonomies. Payment methods are display labels only, there is
// no gateway integration behind them. Process-wide, never cleared by
// logout.

var paymentCategories = []domain.PaymentCategory{
	{
		Name: "E-Wallet",
		Methods: []domain.PaymentMethod{
			{ID: "gopay", Name: "GoPay"},
			{ID: "ovo", Name: "OVO"},
			{ID: "dana", Name: "DANA"},
		},
	},
	{
		Name: "Bank Transfer",
		Methods: []domain.PaymentMethod{
			{ID: "bca", Name: "BCA"},
			{ID: "bni", Name: "BNI"},
		},
	},
}

var shippingOptions = []domain.ShippingOption{
	{ID: "regular", Name: "Reguler (3-5 hari)", Price: 0},
	{ID: "express", Name: "Express (1-2 hari)", Price: 20000},
}

func PaymentCategories() []domain.PaymentCategory { return paymentCategories }

func ShippingOptions() []domain.ShippingOption { return shippingOptions }

func FindPaymentMethod(id string) (domain.PaymentMethod, bool) {
	for _, cat := range paymentCategories {
		for _, m := range cat.Methods {
			if m.ID == id {
				return m, true
			}
		}
	}
	return domain.PaymentMethod{}, false
}

func FindShippingOption(id string) (domain.ShippingOption, bool) {
	for _, opt := range shippingOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return domain.ShippingOption{}, false
}
