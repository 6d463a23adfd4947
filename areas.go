package homegate

// GeoArea is a named geographic area known to the backend, such as a city,
// region or canton. Type is the backend's identifier for the kind of area
// and TypeLabel its human-readable form in the requested language.
type GeoArea struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	TypeLabel string `json:"typeLabel"`
}
