package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Accounts() AccountRepository
	Carts() CartRepository
	Products() ProductRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Keys() KeyRepository
	Ratings() RatingRepository
}
