package geo

import "housepulse/pkg/contracts/domain"

// stateInfo carries a state's approximate geographic center and its postal
// abbreviation.
type stateInfo struct {
	Coordinate domain.Coordinate
	StateID    string
}

// stateCenters maps full state names to approximate center coordinates.
var stateCenters = map[string]stateInfo{
	"Alabama":        {domain.Coordinate{Latitude: 32.806671, Longitude: -86.791130}, "AL"},
	"Alaska":         {domain.Coordinate{Latitude: 61.370716, Longitude: -152.404419}, "AK"},
	"Arizona":        {domain.Coordinate{Latitude: 33.729759, Longitude: -111.431221}, "AZ"},
	"Arkansas":       {domain.Coordinate{Latitude: 34.969704, Longitude: -92.373123}, "AR"},
	"California":     {domain.Coordinate{Latitude: 36.116203, Longitude: -119.681564}, "CA"},
	"Colorado":       {domain.Coordinate{Latitude: 39.059811, Longitude: -105.311104}, "CO"},
	"Connecticut":    {domain.Coordinate{Latitude: 41.597782, Longitude: -72.755371}, "CT"},
	"Delaware":       {domain.Coordinate{Latitude: 39.318523, Longitude: -75.507141}, "DE"},
	"Florida":        {domain.Coordinate{Latitude: 27.766279, Longitude: -81.686783}, "FL"},
	"Georgia":        {domain.Coordinate{Latitude: 33.040619, Longitude: -83.643074}, "GA"},
	"Hawaii":         {domain.Coordinate{Latitude: 21.094318, Longitude: -157.498337}, "HI"},
	"Idaho":          {domain.Coordinate{Latitude: 44.240459, Longitude: -114.478828}, "ID"},
	"Illinois":       {domain.Coordinate{Latitude: 40.349457, Longitude: -88.986137}, "IL"},
	"Indiana":        {domain.Coordinate{Latitude: 39.849426, Longitude: -86.258278}, "IN"},
	"Iowa":           {domain.Coordinate{Latitude: 42.011539, Longitude: -93.210526}, "IA"},
	"Kansas":         {domain.Coordinate{Latitude: 38.526600, Longitude: -96.726486}, "KS"},
	"Kentucky":       {domain.Coordinate{Latitude: 37.668140, Longitude: -84.670067}, "KY"},
	"Louisiana":      {domain.Coordinate{Latitude: 31.169546, Longitude: -91.867805}, "LA"},
	"Maine":          {domain.Coordinate{Latitude: 44.323535, Longitude: -69.765261}, "ME"},
	"Maryland":       {domain.Coordinate{Latitude: 39.063946, Longitude: -76.802101}, "MD"},
	"Massachusetts":  {domain.Coordinate{Latitude: 42.230171, Longitude: -71.530106}, "MA"},
	"Michigan":       {domain.Coordinate{Latitude: 43.326618, Longitude: -84.536095}, "MI"},
	"Minnesota":      {domain.Coordinate{Latitude: 45.694454, Longitude: -93.900192}, "MN"},
	"Mississippi":    {domain.Coordinate{Latitude: 32.741646, Longitude: -89.678696}, "MS"},
	"Missouri":       {domain.Coordinate{Latitude: 38.456085, Longitude: -92.288368}, "MO"},
	"Montana":        {domain.Coordinate{Latitude: 47.052952, Longitude: -110.454353}, "MT"},
	"Nebraska":       {domain.Coordinate{Latitude: 41.125370, Longitude: -98.268082}, "NE"},
	"Nevada":         {domain.Coordinate{Latitude: 38.313515, Longitude: -117.055374}, "NV"},
	"New Hampshire":  {domain.Coordinate{Latitude: 43.452492, Longitude: -71.563896}, "NH"},
	"New Jersey":     {domain.Coordinate{Latitude: 40.298904, Longitude: -74.521011}, "NJ"},
	"New Mexico":     {domain.Coordinate{Latitude: 34.840515, Longitude: -106.248482}, "NM"},
	"New York":       {domain.Coordinate{Latitude: 42.165726, Longitude: -74.948051}, "NY"},
	"North Carolina": {domain.Coordinate{Latitude: 35.630066, Longitude: -79.806419}, "NC"},
	"North Dakota":   {domain.Coordinate{Latitude: 47.528912, Longitude: -99.784012}, "ND"},
	"Ohio":           {domain.Coordinate{Latitude: 40.388783, Longitude: -82.764915}, "OH"},
	"Oklahoma":       {domain.Coordinate{Latitude: 35.565342, Longitude: -96.928917}, "OK"},
	"Oregon":         {domain.Coordinate{Latitude: 44.572021, Longitude: -122.070938}, "OR"},
	"Pennsylvania":   {domain.Coordinate{Latitude: 40.590752, Longitude: -77.209755}, "PA"},
	"Rhode Island":   {domain.Coordinate{Latitude: 41.680893, Longitude: -71.511780}, "RI"},
	"South Carolina": {domain.Coordinate{Latitude: 33.856892, Longitude: -80.945007}, "SC"},
	"South Dakota":   {domain.Coordinate{Latitude: 44.299782, Longitude: -99.438828}, "SD"},
	"Tennessee":      {domain.Coordinate{Latitude: 35.747845, Longitude: -86.692345}, "TN"},
	"Texas":          {domain.Coordinate{Latitude: 31.054487, Longitude: -97.563461}, "TX"},
	"Utah":           {domain.Coordinate{Latitude: 40.150032, Longitude: -111.862434}, "UT"},
	"Vermont":        {domain.Coordinate{Latitude: 44.045876, Longitude: -72.710686}, "VT"},
	"Virginia":       {domain.Coordinate{Latitude: 37.769337, Longitude: -78.169968}, "VA"},
	"Washington":     {domain.Coordinate{Latitude: 47.400902, Longitude: -121.490494}, "WA"},
	"West Virginia":  {domain.Coordinate{Latitude: 38.491226, Longitude: -80.954453}, "WV"},
	"Wisconsin":      {domain.Coordinate{Latitude: 44.268543, Longitude: -89.616508}, "WI"},
	"Wyoming":        {domain.Coordinate{Latitude: 42.755966, Longitude: -107.302490}, "WY"},
}

// StateCenter returns the approximate center coordinate for a full state
// name, or false if the name is unknown.
func StateCenter(state string) (domain.Coordinate, bool) {
	info, ok := stateCenters[state]
	if !ok {
		return domain.Coordinate{}, false
	}
	return info.Coordinate, true
}

// StateID returns the two-letter postal abbreviation for a full state name.
func StateID(state string) (string, bool) {
	info, ok := stateCenters[state]
	if !ok {
		return "", false
	}
	return info.StateID, true
}

// StateNames lists the known full state names.
func StateNames() []string {
	names := make([]string, 0, len(stateCenters))
	for name := range stateCenters {
		names = append(names, name)
	}
	return names
}
