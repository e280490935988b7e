package refdata

// Lookups indexes a reference Set for the decode paths the normalizer and
// filter engine need. A zero-value Lookups behaves like an empty set: every
// resolution misses and callers fall back to raw codes.
type Lookups struct {
	cities    map[string]City
	sports    map[string]string
	abilities map[string]string
	genders   map[string]string
	cityOrder []string
}

// NewLookups builds an index over the given reference set.
func NewLookups(set Set) Lookups {
	l := Lookups{
		cities:    make(map[string]City, len(set.Cities)),
		sports:    make(map[string]string, len(set.Sports)),
		abilities: make(map[string]string, len(set.Abilities)),
		genders:   make(map[string]string, len(set.Genders)),
		cityOrder: make([]string, 0, len(set.Cities)),
	}
	for _, city := range set.Cities {
		l.cities[city.Slug] = city
		l.cityOrder = append(l.cityOrder, city.Slug)
	}
	for _, item := range set.Sports {
		l.sports[item.key()] = item.Name
	}
	for _, item := range set.Abilities {
		l.abilities[item.key()] = item.Name
	}
	for _, item := range set.Genders {
		l.genders[item.key()] = item.Name
	}
	return l
}

// City resolves a city by slug.
func (l Lookups) City(slug string) (City, bool) {
	city, ok := l.cities[slug]
	return city, ok
}

// CityLabel resolves a city slug to its display name.
func (l Lookups) CityLabel(slug string) (string, bool) {
	city, ok := l.cities[slug]
	return city.Name, ok
}

// Sport resolves a sport code to its display name.
func (l Lookups) Sport(code string) (string, bool) {
	name, ok := l.sports[code]
	return name, ok
}

// Ability resolves an ability code to its display name.
func (l Lookups) Ability(code string) (string, bool) {
	name, ok := l.abilities[code]
	return name, ok
}

// Gender resolves a gender code to its display name.
func (l Lookups) Gender(code string) (string, bool) {
	name, ok := l.genders[code]
	return name, ok
}

// DefaultCitySlug returns the first reference city, used to seed the filter
// state once reference data arrives.
func (l Lookups) DefaultCitySlug() (string, bool) {
	if len(l.cityOrder) == 0 {
		return "", false
	}
	return l.cityOrder[0], true
}
