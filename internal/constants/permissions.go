package constants

const (
	ViewPrices       = "view_prices"
	TradeCoins       = "trade_coins"
	ViewPortfolio    = "view_portfolio"
	ManageCoins      = "manage_coins"
	ManageUsers      = "manage_users"
	ViewAdminStats   = "view_admin_stats"
	ViewMarketStats  = "view_market_stats"
	ViewActivityFeed = "view_activity_feed"
)
