package command

import "strings"

var countryCodes = map[string]string{
	"argentina":                "ar",
	"australia":                "au",
	"austria":                  "at",
	"belgium":                  "be",
	"brazil":                   "br",
	"bulgaria":                 "bg",
	"canada":                   "ca",
	"china":                    "cn",
	"colombia":                 "co",
	"cuba":                     "cu",
	"czechia":                  "cz",
	"czech republic":           "cz",
	"egypt":                    "eg",
	"france":                   "fr",
	"germany":                  "de",
	"greece":                   "gr",
	"hong kong":                "hk",
	"hungary":                  "hu",
	"india":                    "in",
	"indonesia":                "id",
	"ireland":                  "ie",
	"israel":                   "il",
	"italy":                    "it",
	"japan":                    "jp",
	"korea":                    "kr",
	"south korea":              "kr",
	"latvia":                   "lv",
	"lithuania":                "lt",
	"malaysia":                 "my",
	"mexico":                   "mx",
	"morocco":                  "ma",
	"netherlands":              "nl",
	"new zealand":              "nz",
	"nigeria":                  "ng",
	"norway":                   "no",
	"philippines":              "ph",
	"poland":                   "pl",
	"portugal":                 "pt",
	"romania":                  "ro",
	"russia":                   "ru",
	"russian federation":       "ru",
	"saudi arabia":             "sa",
	"serbia":                   "rs",
	"singapore":                "sg",
	"slovakia":                 "sk",
	"slovenia":                 "si",
	"south africa":             "za",
	"spain":                    "es",
	"sweden":                   "se",
	"switzerland":              "ch",
	"taiwan":                   "tw",
	"thailand":                 "th",
	"turkey":                   "tr",
	"türkiye":                  "tr",
	"ukraine":                  "ua",
	"united arab emirates":     "ae",
	"united kingdom":           "gb",
	"great britain":            "gb",
	"united states":            "us",
	"united states of america": "us",
	"venezuela":                "ve",
}

var countryAliases = map[string]string{
	"uae": "ae",
	"uk":  "gb",
	"usa": "us",
}

// CountryCode maps a country name to its lowercase ISO 3166-1 alpha-2 code.
func CountryCode(name string) (string, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if code, ok := countryAliases[key]; ok {
		return code, true
	}

	code, ok := countryCodes[key]
	return code, ok
}
