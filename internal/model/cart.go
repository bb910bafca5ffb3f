package model

// CartItem is one line of the buyer's pending selection. The id is
// generated at insertion time and stays stable for the item's lifetime;
// it is the merge/removal key, independent of the product id. The
// product is a snapshot: later server-side price or name changes do not
// reach back into the cart.
type CartItem struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
