package types

// Place is a geocoded location. Produced once per request by the geocoder
// and never modified afterwards.
type Place struct {
	Name        string
	Coordinates Coords
	Country     string
	// Timezone is the IANA timezone name when the geocoder reports one
	Timezone string
}

// LocationQuery is the caller's forecast request
type LocationQuery struct {
	Name string
	Date string // YYYY-MM-DD, optional
	Time string // H:MM or HH:MM, optional
}
