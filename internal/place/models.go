package place

type Place struct {
	ID            int64    `json:"id"`
	Location      string   `json:"location"`
	Country       string   `json:"country"`
	Category      string   `json:"category"`
	Visitors      int64    `json:"visitors"`
	Rating        *float64 `json:"rating"`
	Revenue       float64  `json:"revenue"`
	Accommodation string   `json:"accommodation_available"`
	Address       string   `json:"address"`
	ImageURL      string   `json:"imageurl"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	PriceLevel    int      `json:"pricelevel"`
	IsOpen        bool     `json:"isopen"`
	Types         string   `json:"types"`
	PlaceID       string   `json:"placeid"`
}

type ListQuery struct {
	Page          int
	Limit         int
	Country       string
	Category      string
	Accommodation string
	Search        string
	SortBy        string
	SortOrder     string
	TopOnly       bool
}

type Page struct {
	Data         []Place
	Page         int
	TotalPages   int
	TotalRecords int
}

type FilterOptions struct {
	Countries      []string `json:"countries"`
	Categories     []string `json:"categories"`
	Accommodations []string `json:"accommodations"`
}

type Stats struct {
	AvgRating   float64 `json:"avgRating"`
	AvgVisitors float64 `json:"avgVisitors"`
	MinRating   float64 `json:"minRating"`
	MaxRating   float64 `json:"maxRating"`
	TotalPlaces int64   `json:"totalPlaces"`
}
