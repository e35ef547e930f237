package domain

type Hotel struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Location    string   `json:"location" bson:"location"`
	Rating      float64  `json:"rating" bson:"rating"`
	ReviewCount int      `json:"reviews" bson:"reviews"`
	Price       float64  `json:"price" bson:"price"`
	Description string   `json:"description" bson:"description"`
	Amenities   []string `json:"amenities" bson:"amenities"`
	Image       *string  `json:"image,omitempty" bson:"image,omitempty"`
	Coords      *Coords  `json:"coords,omitempty" bson:"coords,omitempty"`
}

type Coords struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lon float64 `json:"lon" bson:"lon"`
}

// Validate checks the catalog invariants of a hotel record.
func (h Hotel) Validate() error {
	switch {
	case h.ID == "":
		return invalid(ErrInvalidInput, "hotel id is required")
	case h.Rating < 0 || h.Rating > 5:
		return invalid(ErrInvalidInput, "hotel rating must be between 0 and 5")
	case h.ReviewCount < 0:
		return invalid(ErrInvalidInput, "hotel review count must not be negative")
	case h.Price <= 0:
		return invalid(ErrInvalidInput, "hotel price must be positive")
	}
	return nil
}
