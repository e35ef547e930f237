package shared

import "hotel_booking/internal/domain"

// SampleHotels is the built-in catalog used by the dev backends and the
// ingestor's seed pass. A fresh slice is returned on every call.
func SampleHotels() []domain.Hotel {
	return []domain.Hotel{
		{
			ID: "1", Name: "Grand Plaza Hotel", Location: "New York, USA",
			Rating: 4.8, ReviewCount: 256, Price: 250,
			Description: "Luxury hotel in the heart of Manhattan with stunning city views and world-class amenities",
			Amenities:   []string{"WiFi", "Pool", "Gym", "Restaurant", "Spa", "Parking"},
			Coords:      &domain.Coords{Lat: 40.7589, Lon: -73.9851},
		},
		{
			ID: "2", Name: "Seaside Resort", Location: "Miami Beach, USA",
			Rating: 4.6, ReviewCount: 189, Price: 180,
			Description: "Beautiful beachfront resort with ocean views and private beach access",
			Amenities:   []string{"WiFi", "Beach Access", "Pool", "Bar", "Water Sports"},
			Coords:      &domain.Coords{Lat: 25.7907, Lon: -80.1300},
		},
		{
			ID: "3", Name: "Mountain Lodge", Location: "Aspen, Colorado",
			Rating: 4.9, ReviewCount: 312, Price: 320,
			Description: "Cozy lodge with stunning mountain views and direct ski slope access",
			Amenities:   []string{"WiFi", "Fireplace", "Ski Access", "Restaurant", "Spa"},
			Coords:      &domain.Coords{Lat: 39.1911, Lon: -106.8175},
		},
		{
			ID: "4", Name: "Urban Boutique Hotel", Location: "San Francisco, USA",
			Rating: 4.7, ReviewCount: 203, Price: 210,
			Description: "Stylish boutique hotel in downtown SF with modern design and rooftop bar",
			Amenities:   []string{"WiFi", "Rooftop Bar", "Gym", "Parking", "Business Center"},
			Coords:      &domain.Coords{Lat: 37.7749, Lon: -122.4194},
		},
		{
			ID: "5", Name: "Luxury Resort & Spa", Location: "Los Angeles, USA",
			Rating: 4.8, ReviewCount: 445, Price: 380,
			Description: "Five-star resort with premium spa facilities and gourmet dining",
			Amenities:   []string{"WiFi", "Spa", "Pool", "Restaurant", "Valet", "Concierge"},
			Coords:      &domain.Coords{Lat: 34.0522, Lon: -118.2437},
		},
	}
}
