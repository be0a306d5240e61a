package handler

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Place      *PlaceHandler
	Review     *ReviewHandler
	Contribute *ContributeHandler
	Suggest    *SuggestHandler
	Wishlist   *WishlistHandler
	User       *UserHandler
	WebSocket  *WebSocketHandler
}
