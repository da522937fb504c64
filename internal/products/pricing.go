package products

import "github.com/shopspring/decimal"

// partnerDiscount is the flat multiplier applied to store prices for partners.
var partnerDiscount = decimal.RequireFromString("0.95")

// PartnerPrice returns round(price * 0.95, 2). It depends on the store price
// only; MSRP and markup never feed into it.
func PartnerPrice(price decimal.Decimal) decimal.Decimal {
	return price.Mul(partnerDiscount).Round(2)
}
