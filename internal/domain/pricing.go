package domain

import "github.com/shopspring/decimal"

// TicketSubtotal charges every seat of a showtime the showtime's price regardless of seat type.
func TicketSubtotal(price decimal.Decimal, seatCount int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(seatCount)))
}

func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// TotalPrice is price*seatCount plus the sum of every refreshment line.
func TotalPrice(showtimePrice decimal.Decimal, seatCount int, lines []BookingRefreshment) decimal.Decimal {
	total := TicketSubtotal(showtimePrice, seatCount)

	for _, l := range lines {
		total = total.Add(LineTotal(l.UnitPrice, l.Quantity))
	}

	return total
}
