package rubric

import "github.com/starford/othala/internal/models"

// defaultCriteria is the built-in tour rubric used when no rubric file is
// configured. Weights range 1-5; the Vaastu placement rules are pass/fail.
var defaultCriteria = []models.Criterion{
	{Category: "Environmental", Name: "Flood zone", Weight: 5},
	{Category: "Environmental", Name: "High voltage power lines", Weight: 4},
	{Category: "Environmental", Name: "Industrial complex proximity", Weight: 5},
	{Category: "Environmental", Name: "Noise pollution", Weight: 3},

	{Category: "Neighborhood", Name: "Whole Foods proximity", Weight: 4},
	{Category: "Neighborhood", Name: "Indian Grocery proximity", Weight: 4},
	{Category: "Neighborhood", Name: "Amenity proximity (gyms/rec/Tesla)", Weight: 3},
	{Category: "Neighborhood", Name: "Greenery", Weight: 3},

	{Category: "Community", Name: "Amenities quality", Weight: 4},
	{Category: "Community", Name: "Completion stage", Weight: 3},
	{Category: "Community", Name: "Trees & parks", Weight: 3},
	{Category: "Community", Name: "Playgrounds", Weight: 3},
	{Category: "Community", Name: "Demographics", Weight: 2},

	{Category: "Home", Name: "Lot shape", Weight: 3},
	{Category: "Home", Name: "Backyard size", Weight: 4},
	{Category: "Home", Name: "Location within community", Weight: 3},
	{Category: "Home", Name: "Grass quality", Weight: 1},

	{Category: "Builder", Name: "Quality of construction", Weight: 5},
	{Category: "Builder", Name: "Incentives", Weight: 3},
	{Category: "Builder", Name: "Warranty", Weight: 4},
	{Category: "Builder", Name: "Energy efficiency", Weight: 4},

	{Category: "School", Name: "Zoned school ratings", Weight: 5},

	{Category: "Vaastu", Name: "Main Entrance (East/North ok, South avoid)", Weight: 5, Kind: models.KindBoolean},
	{Category: "Vaastu", Name: "Kitchen (SE/NW ok, NE avoid)", Weight: 4, Kind: models.KindBoolean},
	{Category: "Vaastu", Name: "Master Bedroom (SW ok, NE avoid)", Weight: 4, Kind: models.KindBoolean},
	{Category: "Vaastu", Name: "Pooja Room (NE/E ok, South/under stairs avoid)", Weight: 3, Kind: models.KindBoolean},
}

// Default returns the built-in rubric.
func Default() (*Rubric, error) {
	return New(defaultCriteria)
}
