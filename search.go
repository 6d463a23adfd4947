package homegate

import "fmt"

// The backend rejects circular search areas of 50 km or more.
const maxRadiusMeters = 50000

// Location is a circular search area centered on WGS84 coordinates, with the
// radius in meters.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
}

func (l Location) validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return &InvalidQueryError{
			Field:  "query.location.latitude",
			Reason: fmt.Sprintf("%v is outside [-90, 90]", l.Latitude),
		}
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return &InvalidQueryError{
			Field:  "query.location.longitude",
			Reason: fmt.Sprintf("%v is outside [-180, 180]", l.Longitude),
		}
	}
	if l.Radius <= 0 {
		return &InvalidQueryError{
			Field:  "query.location.radius",
			Reason: "must be greater than 0",
		}
	}
	if l.Radius >= maxRadiusMeters {
		return &InvalidQueryError{
			Field:  "query.location.radius",
			Reason: fmt.Sprintf("%d is not less than %d meters", l.Radius, maxRadiusMeters),
		}
	}
	return nil
}

// FromTo is an inclusive integer range filter. Nil bounds are open and are
// omitted from the request body, never sent as null.
type FromTo struct {
	From *int `json:"from,omitempty"`
	To   *int `json:"to,omitempty"`
}

func (r FromTo) validate(field string) error {
	if r.From != nil && r.To != nil && *r.From > *r.To {
		return &InvalidQueryError{
			Field:  field,
			Reason: fmt.Sprintf("from (%d) is greater than to (%d)", *r.From, *r.To),
		}
	}
	return nil
}

// FromToFloat is an inclusive range filter for values with fractional steps,
// such as room counts (2.5, 3.5).
type FromToFloat struct {
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

func (r FromToFloat) validate(field string) error {
	if r.From != nil && r.To != nil && *r.From > *r.To {
		return &InvalidQueryError{
			Field:  field,
			Reason: fmt.Sprintf("from (%v) is greater than to (%v)", *r.From, *r.To),
		}
	}
	return nil
}

// Query holds the filter part of a search request.
type Query struct {
	Categories        []Category  `json:"categories"`
	ExcludeCategories []Category  `json:"excludeCategories"`
	LivingSpace       FromTo      `json:"livingSpace"`
	Location          Location    `json:"location"`
	MonthlyRent       FromTo      `json:"monthlyRent"`
	NumberOfRooms     FromToFloat `json:"numberOfRooms"`
	OfferType         OfferType   `json:"offerType"`
}

// GeoCoordsTemplate selects coordinate fields for the response.
type GeoCoordsTemplate struct {
	Latitude  bool `json:"latitude"`
	Longitude bool `json:"longitude"`
}

// AddressTemplate selects address fields for the response.
type AddressTemplate struct {
	Country             bool              `json:"country"`
	GeoCoordinates      GeoCoordsTemplate `json:"geoCoordinates"`
	Locality            bool              `json:"locality"`
	PostOfficeBoxNumber bool              `json:"postOfficeBoxNumber"`
	PostalCode          bool              `json:"postalCode"`
	Region              bool              `json:"region"`
	Street              bool              `json:"street"`
	StreetAddition      bool              `json:"streetAddition"`
}

// CharacteristicsTemplate selects property characteristic fields.
type CharacteristicsTemplate struct {
	LivingSpace      bool `json:"livingSpace"`
	LotSize          bool `json:"lotSize"`
	NumberOfRooms    bool `json:"numberOfRooms"`
	SingleFloorSpace bool `json:"singleFloorSpace"`
	TotalFloorSpace  bool `json:"totalFloorSpace"`
}

// ListerTemplate selects lister contact fields.
type ListerTemplate struct {
	LogoURL bool `json:"logoUrl"`
	Phone   bool `json:"phone"`
}

// LocaleTextTemplate selects text fields of one locale.
type LocaleTextTemplate struct {
	Title bool `json:"title"`
}

// LocaleURLsTemplate selects URL fields of one locale.
type LocaleURLsTemplate struct {
	Type bool `json:"type"`
}

// LocaleTemplate selects the fields of one locale.
type LocaleTemplate struct {
	Attachments bool               `json:"attachments"`
	Text        LocaleTextTemplate `json:"text"`
	URLs        LocaleURLsTemplate `json:"urls"`
}

// LocalizationTemplate selects localization fields per language.
type LocalizationTemplate struct {
	De      LocaleTemplate `json:"de"`
	En      LocaleTemplate `json:"en"`
	Fr      LocaleTemplate `json:"fr"`
	It      LocaleTemplate `json:"it"`
	Primary bool           `json:"primary"`
}

// ListingTemplate selects listing fields for the response.
type ListingTemplate struct {
	Address         AddressTemplate         `json:"address"`
	Categories      bool                    `json:"categories"`
	Characteristics CharacteristicsTemplate `json:"characteristics"`
	ID              bool                    `json:"id"`
	Lister          ListerTemplate          `json:"lister"`
	Localization    LocalizationTemplate    `json:"localization"`
	OfferType       bool                    `json:"offerType"`
	Prices          bool                    `json:"prices"`
}

// ResultTemplate tells the backend which fields to include in each result.
type ResultTemplate struct {
	ID             bool            `json:"id"`
	ListerBranding bool            `json:"listerBranding"`
	Listing        ListingTemplate `json:"listing"`
	ListingType    bool            `json:"listingType"`
	RemoteViewing  bool            `json:"remoteViewing"`
}

// SearchRequest is the complete body of a listings search. From and Size
// control pagination; SortBy and SortDirection control ordering.
type SearchRequest struct {
	From           int            `json:"from"`
	Query          Query          `json:"query"`
	ResultTemplate ResultTemplate `json:"resultTemplate"`
	Size           int            `json:"size"`
	SortBy         string         `json:"sortBy"`
	SortDirection  string         `json:"sortDirection"`
	TrackTotalHits bool           `json:"trackTotalHits"`
}

// Validate checks the request locally before it goes on the wire.
func (r *SearchRequest) Validate() error {
	if r.Size <= 0 {
		return &InvalidQueryError{Field: "size", Reason: "must be greater than 0"}
	}
	if r.From < 0 {
		return &InvalidQueryError{Field: "from", Reason: "must not be negative"}
	}

	if err := r.Query.Location.validate(); err != nil {
		return err
	}
	if err := r.Query.LivingSpace.validate("query.livingSpace"); err != nil {
		return err
	}
	if err := r.Query.MonthlyRent.validate("query.monthlyRent"); err != nil {
		return err
	}
	if err := r.Query.NumberOfRooms.validate("query.numberOfRooms"); err != nil {
		return err
	}

	for _, c := range r.Query.Categories {
		if !c.Valid() {
			return &InvalidQueryError{
				Field:  "query.categories",
				Reason: fmt.Sprintf("unknown category %q", string(c)),
			}
		}
	}
	for _, c := range r.Query.ExcludeCategories {
		if !c.Valid() {
			return &InvalidQueryError{
				Field:  "query.excludeCategories",
				Reason: fmt.Sprintf("unknown category %q", string(c)),
			}
		}
	}

	return nil
}

// DefaultSearchRequest returns a sendable request with no filters applied:
// every range is open, no categories are selected or excluded, and the full
// result template is requested. The location starts as the Android app's
// built-in circle around central Zurich so the default passes Validate
// as-is; callers replace it and tighten the filters they care about.
func DefaultSearchRequest() *SearchRequest {
	return &SearchRequest{
		From: 0,
		Query: Query{
			Categories:        []Category{},
			ExcludeCategories: []Category{},
			LivingSpace:       FromTo{},
			Location: Location{
				Latitude:  47.359856,
				Longitude: 8.541819,
				Radius:    622,
			},
			MonthlyRent:   FromTo{},
			NumberOfRooms: FromToFloat{},
			OfferType:     OfferTypeRent,
		},
		ResultTemplate: DefaultResultTemplate(),
		Size:           20,
		SortBy:         "listingType",
		SortDirection:  "desc",
		TrackTotalHits: true,
	}
}

// DefaultResultTemplate requests every field the app knows about.
func DefaultResultTemplate() ResultTemplate {
	locale := LocaleTemplate{
		Attachments: true,
		Text:        LocaleTextTemplate{Title: true},
		URLs:        LocaleURLsTemplate{Type: true},
	}

	return ResultTemplate{
		ID:             true,
		ListerBranding: true,
		Listing: ListingTemplate{
			Address: AddressTemplate{
				Country:             true,
				GeoCoordinates:      GeoCoordsTemplate{Latitude: true, Longitude: true},
				Locality:            true,
				PostOfficeBoxNumber: true,
				PostalCode:          true,
				Region:              true,
				Street:              true,
				StreetAddition:      true,
			},
			Categories: true,
			Characteristics: CharacteristicsTemplate{
				LivingSpace:      true,
				LotSize:          true,
				NumberOfRooms:    true,
				SingleFloorSpace: true,
				TotalFloorSpace:  true,
			},
			ID:     true,
			Lister: ListerTemplate{LogoURL: true, Phone: true},
			Localization: LocalizationTemplate{
				De:      locale,
				En:      locale,
				Fr:      locale,
				It:      locale,
				Primary: true,
			},
			OfferType: true,
			Prices:    true,
		},
		ListingType:   true,
		RemoteViewing: true,
	}
}

// Int returns a pointer to v, for filling optional range bounds.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for filling optional range bounds.
func Float(v float64) *float64 { return &v }
