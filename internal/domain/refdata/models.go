package refdata

// City is a reference city with its map center and search radius.
type City struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	RadiusKm  float64 `json:"radius_km"`
}

// Item is a generic lookup row shared by sports, abilities and genders.
type Item struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Slug string  `json:"slug"`
	Code *string `json:"code,omitempty"`
}

// Set bundles the four lookup tables served by the reference-data endpoint.
// Callers always re-fetch the whole set; there is no incremental update.
type Set struct {
	Cities    []City `json:"cities"`
	Sports    []Item `json:"sports"`
	Abilities []Item `json:"abilities"`
	Genders   []Item `json:"genders"`
}

// key returns the value a game record references an item by: the explicit
// code when present, otherwise the slug.
func (i Item) key() string {
	if i.Code != nil && *i.Code != "" {
		return *i.Code
	}
	return i.Slug
}
