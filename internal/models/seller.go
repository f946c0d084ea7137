package models

// SellerReference identifies a seller after URL parsing. Exactly one of ID
// and Username is populated; a username must be resolved to an ID by the API
// client before it can be used downstream.
type SellerReference struct {
	ID          int64  `json:"id,omitempty"`
	Username    string `json:"username,omitempty"`
	CountryCode string `json:"countryCode"`
}

// SellerProfile is the full seller record returned by the get-seller
// operation.
type SellerProfile struct {
	ID             int64    `json:"id"`
	Username       string   `json:"username"`
	ProfileURL     string   `json:"profileUrl"`
	Rating         float64  `json:"rating"`
	RatingCount    int      `json:"ratingCount"`
	ItemCount      int      `json:"itemCount"`
	SoldItemCount  int      `json:"soldItemCount"`
	FollowerCount  int      `json:"followerCount"`
	FollowingCount int      `json:"followingCount"`
	Country        string   `json:"country"`
	City           string   `json:"city,omitempty"`
	MemberSince    string   `json:"memberSince,omitempty"`
	Verifications  []string `json:"verifications,omitempty"`
	RecentItems    []Item   `json:"recentItems,omitempty"`
}
