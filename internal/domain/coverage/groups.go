package coverage

// GroupKey identifies a continental coverage group.
type GroupKey string

const (
	GroupEU GroupKey = "EU"
	GroupAS GroupKey = "AS"
	GroupNA GroupKey = "NA"
	GroupSA GroupKey = "SA"
	GroupAF GroupKey = "AF"
	GroupOC GroupKey = "OC"
	GroupME GroupKey = "ME"

	// ContinentGlobal is the fallback continent classification for packages
	// whose coverage codes match no continental bucket.
	ContinentGlobal = "GLOBAL"
)

// Group is a static continental/geographic bucket. A provider coverage code
// resolves to at most one Group via its CoverageCodes list.
type Group struct {
	Key           GroupKey
	Name          string
	CurrencyCode  string
	Image         string
	Countries     []string // ISO 3166-1 alpha-2, lowercase
	CoverageCodes []string // provider coverage codes, uppercase
}

// Groups returns the coverage groups in their fixed declaration order.
// The order is the only tie-break when a code appears in several groups
// (e.g. "APAC" is listed for both Asia and Oceania), so it must stay stable.
func Groups() []Group {
	return groups
}

var groups = []Group{
	{
		Key:          GroupEU,
		Name:         "Europe",
		CurrencyCode: "eur",
		Image:        "/hero/europe.svg",
		Countries: []string{
			"al", "ad", "am", "at", "az", "by", "be", "ba", "bg", "hr", "cy", "cz", "dk", "ee", "fi", "fr",
			"ge", "de", "gr", "hu", "is", "ie", "it", "kz", "xk", "lv", "li", "lt", "lu", "mt", "md", "mc",
			"me", "nl", "mk", "no", "pl", "pt", "ro", "ru", "sm", "rs", "sk", "si", "es", "se", "ch", "tr",
			"ua", "gb", "va",
		},
		CoverageCodes: []string{"EU", "EUR", "EURO", "EEA", "EFTA"},
	},
	{
		Key:          GroupAS,
		Name:         "Asia",
		CurrencyCode: "usd",
		Image:        "/hero/asia.svg",
		Countries: []string{
			"af", "am", "az", "bh", "bd", "bt", "bn", "kh", "cn", "cy", "ge", "in", "id", "ir", "iq", "il", "jp",
			"jo", "kz", "kp", "kr", "kw", "kg", "la", "lb", "my", "mv", "mn", "mm", "np", "om", "pk", "ph", "qa",
			"sa", "sg", "lk", "sy", "tw", "tj", "th", "tl", "tm", "ae", "uz", "vn", "ye",
		},
		CoverageCodes: []string{"AS", "ASIA", "APAC", "SEA", "EASTASIA", "SOUTHASIA", "CN", "IN", "JP", "KR", "SG"},
	},
	{
		Key:           GroupNA,
		Name:          "North America",
		CurrencyCode:  "usd",
		Image:         "/hero/north-america.svg",
		Countries:     []string{"us", "ca", "mx", "gl", "bm"},
		CoverageCodes: []string{"NA", "NAM", "US", "USA", "CA", "CAN", "MX", "MEX"},
	},
	{
		Key:           GroupSA,
		Name:          "South America",
		CurrencyCode:  "usd",
		Image:         "/hero/south-america.svg",
		Countries:     []string{"ar", "bo", "br", "cl", "co", "ec", "gy", "py", "pe", "sr", "uy", "ve", "fk"},
		CoverageCodes: []string{"SA", "SAM", "LATAM", "LATINAMERICA", "BR", "AR", "CL", "CO"},
	},
	{
		Key:          GroupAF,
		Name:         "Africa",
		CurrencyCode: "usd",
		Image:        "/hero/africa.svg",
		Countries: []string{
			"dz", "ao", "bj", "bw", "bf", "bi", "cv", "cm", "cf", "td", "km", "cg", "cd", "ci", "dj", "eg", "gq",
			"er", "sz", "et", "ga", "gm", "gh", "gn", "gw", "ke", "ls", "lr", "ly", "mg", "mw", "ml", "mr", "mu",
			"yt", "ma", "mz", "na", "ne", "ng", "rw", "re", "st", "sn", "sc", "sl", "so", "za", "ss", "sd", "tz",
			"tg", "tn", "ug", "zm", "zw",
		},
		CoverageCodes: []string{"AF", "AFRICA", "SSA", "NORTHAFRICA", "SOUTHAFRICA", "NAFRICA", "SAFRICA", "NG", "ZA"},
	},
	{
		Key:           GroupOC,
		Name:          "Oceania",
		CurrencyCode:  "aud",
		Image:         "/hero/oceania.svg",
		Countries:     []string{"au", "nz", "fj", "pg", "ws", "sb", "to", "tv", "vu", "nr", "ki", "fm", "mh", "pw"},
		CoverageCodes: []string{"OC", "OCEANIA", "AU", "NZ", "PACIFIC", "APAC"},
	},
	{
		Key:          GroupME,
		Name:         "Middle East",
		CurrencyCode: "usd",
		Image:        "/hero/middle-east.svg",
		Countries: []string{
			"ae", "bh", "cy", "eg", "ir", "iq", "il", "jo", "kw", "lb", "om", "ps", "qa", "sa", "sy", "tr", "ye",
		},
		CoverageCodes: []string{"ME", "MIDEAST", "MIDDLEEAST", "UAE", "KSA", "QATAR", "GULF", "GCC", "LEVANT"},
	},
}

// Continent is a catalog browsing bucket. Continent collections are created
// for every entry; a package is classified into the first continent whose
// code list intersects its coverage codes, else ContinentGlobal.
type Continent struct {
	Code          string
	Title         string
	Image         string
	CoverageCodes []string
}

// Continents returns the continent buckets in their fixed declaration order,
// GLOBAL last.
func Continents() []Continent {
	return continents
}

var continents = []Continent{
	{Code: "EU", Title: "Europe", Image: "/hero/europe.svg", CoverageCodes: []string{"EU"}},
	{Code: "ASIA", Title: "Asia", Image: "/hero/asia.svg", CoverageCodes: []string{"ASIA"}},
	{Code: "NA", Title: "North America", Image: "/hero/north-america.svg", CoverageCodes: []string{"NA", "USA", "CAN", "MEX"}},
	{Code: "SA", Title: "South America", Image: "/hero/south-america.svg", CoverageCodes: []string{"SA"}},
	{Code: "AF", Title: "Africa", Image: "/hero/africa.svg", CoverageCodes: []string{"AF"}},
	{Code: "OC", Title: "Oceania", Image: "/hero/oceania.svg", CoverageCodes: []string{"OC", "AUS", "NZ"}},
	{Code: ContinentGlobal, Title: "Global", Image: "/hero/global.svg", CoverageCodes: []string{"GLOBAL"}},
}

// GlobalImage is the thumbnail used for packages without a continental match.
const GlobalImage = "/hero/global.svg"

// ContinentByCode returns the continent bucket for a code, or nil.
func ContinentByCode(code string) *Continent {
	for i := range continents {
		if continents[i].Code == code {
			return &continents[i]
		}
	}
	return nil
}
