package booking

import (
	"fmt"
	"strings"
)

// PriceBracket classifies services by effective price
type PriceBracket string

const (
	PriceBudget   PriceBracket = "budget"
	PriceStandard PriceBracket = "standard"
	PricePremium  PriceBracket = "premium"
)

// ClassifyPrice: below 200 is budget, from 400 premium, standard in between
func ClassifyPrice(price int) PriceBracket {
	switch {
	case price < 200:
		return PriceBudget
	case price >= 400:
		return PricePremium
	default:
		return PriceStandard
	}
}

// ParsePriceBracket accepts an empty string as "no bracket"
func ParsePriceBracket(raw string) (PriceBracket, error) {
	switch b := PriceBracket(fold(raw)); b {
	case "":
		return "", nil
	case PriceBudget, PriceStandard, PricePremium:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriceBracket, raw)
}

// City a service operates in
type City string

const (
	CityMecca  City = "mecca"
	CityMedina City = "medina"
)

var cityAliases = map[City][]string{
	CityMecca:  {"mecca", "la mecque", "mecque", "makkah", "makka"},
	CityMedina: {"medina", "medine", "madinah", "madina"},
}

// ParseCity maps a city name in any known spelling to a City
func ParseCity(raw string) (City, error) {
	key := fold(raw)
	if key == "" {
		return "", nil
	}
	for city, aliases := range cityAliases {
		for _, alias := range aliases {
			if key == alias {
				return city, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCity, raw)
}

// CityOf finds the city named inside a free-form location
func CityOf(location string) (City, bool) {
	loc := fold(location)
	for _, city := range []City{CityMecca, CityMedina} {
		for _, alias := range cityAliases[city] {
			if strings.Contains(loc, alias) {
				return city, true
			}
		}
	}
	return "", false
}

var languageCodes = map[string]string{
	"fr": "fr", "french": "fr", "francais": "fr",
	"en": "en", "english": "en", "anglais": "en",
	"ar": "ar", "arabic": "ar", "arabe": "ar",
	"ur": "ur", "urdu": "ur", "ourdou": "ur",
	"tr": "tr", "turkish": "tr", "turc": "tr",
	"id": "id", "indonesian": "id", "indonesien": "id",
	"ms": "ms", "malay": "ms", "malais": "ms",
}

// CanonicalLanguage maps English and French language names to ISO codes.
// Unknown names are returned folded so they still compare equal to themselves.
func CanonicalLanguage(name string) string {
	key := fold(name)
	if code, ok := languageCodes[key]; ok {
		return code
	}
	return key
}

// Filter narrows a service list. Zero-valued dimensions match everything.
type Filter struct {
	Query      string       `json:"query,omitempty"`
	Category   Category     `json:"category,omitempty"`
	City       City         `json:"city,omitempty"`
	Languages  []string     `json:"languages,omitempty"`
	PriceRange PriceBracket `json:"price_range,omitempty"`
}

// IsEmpty reports whether the filter lets every service through
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Query) == "" && f.Category == "" && f.City == "" &&
		len(f.Languages) == 0 && f.PriceRange == ""
}

// FilterServices keeps the services matching every active dimension, in order.
// The input slice is never modified.
func FilterServices(services []Service, f Filter) []Service {
	query := fold(f.Query)
	wanted := make(map[string]struct{}, len(f.Languages))
	for _, l := range f.Languages {
		if code := CanonicalLanguage(l); code != "" {
			wanted[code] = struct{}{}
		}
	}

	out := make([]Service, 0, len(services))
	for _, s := range services {
		if query != "" && !matchesQuery(s, query) {
			continue
		}
		if f.Category != "" && fold(string(s.Category)) != fold(string(f.Category)) {
			continue
		}
		if f.City != "" {
			if city, ok := CityOf(s.Location); !ok || city != f.City {
				continue
			}
		}
		if len(wanted) > 0 && !speaksAny(s.Languages, wanted) {
			continue
		}
		if f.PriceRange != "" && ClassifyPrice(s.EffectivePrice()) != f.PriceRange {
			continue
		}
		out = append(out, s)
	}
	return out
}

// matchesQuery checks title, location and guide name, nothing else
func matchesQuery(s Service, query string) bool {
	for _, field := range []string{s.Title, s.Location, s.GuideName} {
		if strings.Contains(fold(field), query) {
			return true
		}
	}
	return false
}

func speaksAny(languages []string, wanted map[string]struct{}) bool {
	for _, l := range languages {
		if _, ok := wanted[CanonicalLanguage(l)]; ok {
			return true
		}
	}
	return false
}
