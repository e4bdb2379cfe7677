package repositories

// Store bundles the repositories of all entities behind one handle and
// provides a transactional scope for workflows that mutate more than one
// entity.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Tags() TagRepository
	ProductTags() ProductTagRepository
	Purchases() PurchaseRepository
	UserProducts() UserProductRepository

	// Atomically runs fn against a Store bound to a single transaction.
	// Every read and write inside fn shares that transaction; returning a
	// non-nil error rolls the whole transaction back, so no partially
	// applied state is ever observable.
	Atomically(fn func(tx Store) error) error
}
