package homegate

// OfferType says what kind of deal a listing offers. The mobile API only
// serves rentals.
type OfferType string

const OfferTypeRent OfferType = "RENT"

// Currency of all prices in a listing.
type Currency string

const CurrencyCHF Currency = "CHF"

// PriceInterval says how often a price is due.
type PriceInterval string

const PriceIntervalMonth PriceInterval = "MONTH"

// GeoCoords is a WGS84 coordinate pair.
type GeoCoords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address locates a listing. Every field is optional: the backend omits
// whatever the lister did not provide, and a nil pointer means exactly that.
type Address struct {
	Country             *string    `json:"country,omitempty"`
	GeoCoordinates      *GeoCoords `json:"geoCoordinates,omitempty"`
	Locality            *string    `json:"locality,omitempty"`
	PostOfficeBoxNumber *string    `json:"postOfficeBoxNumber,omitempty"`
	PostalCode          *string    `json:"postalCode,omitempty"`
	Region              *string    `json:"region,omitempty"`
	Street              *string    `json:"street,omitempty"`
	StreetAddition      *string    `json:"streetAddition,omitempty"`
}

// Characteristics are the physical attributes of a listing. LivingSpace is
// in square meters and not every listing reports it. NumberOfRooms can be
// fractional (2.5, 3.5).
type Characteristics struct {
	LivingSpace   *int    `json:"livingSpace,omitempty"`
	NumberOfRooms float64 `json:"numberOfRooms"`
}

// Lister is the party offering the listing.
type Lister struct {
	Phone *string `json:"phone,omitempty"`
}

// Attachment is an image or document attached to a listing.
type Attachment struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	File string `json:"file"`
}

// LocalizationEntryText is the wording of a listing in one language.
type LocalizationEntryText struct {
	Title string `json:"title"`
}

// LocalizationEntry is a listing's content in one language.
type LocalizationEntry struct {
	Attachments []Attachment          `json:"attachments,omitempty"`
	Text        LocalizationEntryText `json:"text"`
}

// Localization carries a listing's content per language. Primary names the
// language the lister wrote the listing in; the other entries are present
// only when a translation exists.
type Localization struct {
	De      *LocalizationEntry `json:"de,omitempty"`
	En      *LocalizationEntry `json:"en,omitempty"`
	Fr      *LocalizationEntry `json:"fr,omitempty"`
	It      *LocalizationEntry `json:"it,omitempty"`
	Primary string             `json:"primary"`
}

// Price is one price of a listing. Net excludes extra costs, Gross includes
// them.
type Price struct {
	Interval *PriceInterval `json:"interval,omitempty"`
	Net      *int           `json:"net,omitempty"`
	Gross    *int           `json:"gross,omitempty"`
	Extra    *int           `json:"extra,omitempty"`
}

// Prices carries the rent or purchase price of a listing. For rentals Buy
// stays nil.
type Prices struct {
	Rent     *Price   `json:"rent,omitempty"`
	Currency Currency `json:"currency"`
	Buy      *Price   `json:"buy,omitempty"`
}

// Listing is the full description of one property.
type Listing struct {
	Address         Address         `json:"address"`
	Categories      []Category      `json:"categories"`
	Characteristics Characteristics `json:"characteristics"`
	ID              string          `json:"id"`
	Lister          Lister          `json:"lister"`
	Localization    Localization    `json:"localization"`
	OfferType       OfferType       `json:"offerType"`
	Prices          Prices          `json:"prices"`
}

// RealEstate is one search result: a listing plus its result-level id.
type RealEstate struct {
	ID      string  `json:"id"`
	Listing Listing `json:"listing"`
}
