package geoapify

// mockFeatures is the canned San Jose dataset served whenever the places
// provider is unconfigured or errors out. Shapes mirror Geoapify's feature
// properties so they flow through the same formatting path.
var mockFeatures = []placeFeature{
	{
		Properties: placeProperties{
			PlaceID:   "mock_vta_sjsu_north",
			Name:      "VTA Park and Ride - SJSU North",
			Formatted: "850 N 4th Street, San Jose, CA 95112",
			Lat:       37.339386,
			Lon:       -121.878924,
			Parking: &parkingProperties{
				Type:     "surface",
				Access:   "permissive",
				Capacity: 150,
				Fee:      boolPtr(false),
			},
		},
	},
	{
		Properties: placeProperties{
			PlaceID:   "mock_sjsu_7th_garage",
			Name:      "SJSU 7th Street Garage",
			Formatted: "330 S 7th Street, San Jose, CA 95112",
			Lat:       37.334512,
			Lon:       -121.882214,
			Parking: &parkingProperties{
				Type:     "multi-storey",
				Access:   "public",
				Capacity: 800,
				Fee:      boolPtr(true),
			},
		},
	},
	{
		Properties: placeProperties{
			PlaceID:   "mock_city_hall",
			Name:      "City Hall Parking",
			Formatted: "200 E Santa Clara St, San Jose, CA 95113",
			Lat:       37.337702,
			Lon:       -121.885422,
			Parking: &parkingProperties{
				Type:     "underground",
				Access:   "public",
				Capacity: 500,
				Fee:      boolPtr(true),
			},
		},
	},
	{
		Properties: placeProperties{
			PlaceID:   "mock_plaza_lot",
			Name:      "Plaza Parking Lot",
			Formatted: "88 S 4th St, San Jose, CA 95112",
			Lat:       37.334888,
			Lon:       -121.880556,
			Parking: &parkingProperties{
				Type:     "surface",
				Access:   "public",
				Capacity: 75,
				Fee:      boolPtr(true),
			},
		},
	},
	{
		Properties: placeProperties{
			PlaceID:   "mock_japantown",
			Name:      "Japantown Parking",
			Formatted: "565 N 6th St, San Jose, CA 95112",
			Lat:       37.352891,
			Lon:       -121.879234,
			Parking: &parkingProperties{
				Type:     "surface",
				Access:   "public",
				Capacity: 120,
				Fee:      boolPtr(false),
			},
		},
	},
}

func boolPtr(b bool) *bool { return &b }
