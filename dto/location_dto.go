package dto

type CoordinatesDTO struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

type RainfallDTO struct {
	Annual float64 `json:"annual" binding:"gte=0"`
	Season string  `json:"season" binding:"omitempty,rainseason"`
}

type CreateLocationDTO struct {
	District    string          `json:"district" binding:"required"`
	City        string          `json:"city" binding:"required"`
	State       string          `json:"state" binding:"required"`
	Country     string          `json:"country"`
	Coordinates *CoordinatesDTO `json:"coordinates"`
	Climate     string          `json:"climate" binding:"required,climate"`
	Rainfall    *RainfallDTO    `json:"rainfall"`
	SoilType    string          `json:"soilType" binding:"omitempty,soiltype"`
	Trees       []string        `json:"trees" binding:"omitempty,dive,objectid"`
}

type UpdateLocationDTO struct {
	District    *string         `json:"district,omitempty" binding:"omitempty,min=1"`
	City        *string         `json:"city,omitempty" binding:"omitempty,min=1"`
	State       *string         `json:"state,omitempty" binding:"omitempty,min=1"`
	Country     *string         `json:"country,omitempty" binding:"omitempty,min=1"`
	Coordinates *CoordinatesDTO `json:"coordinates,omitempty"`
	Climate     *string         `json:"climate,omitempty" binding:"omitempty,climate"`
	Rainfall    *RainfallDTO    `json:"rainfall,omitempty"`
	SoilType    *string         `json:"soilType,omitempty" binding:"omitempty,soiltype"`
	Trees       *[]string       `json:"trees,omitempty" binding:"omitempty,dive,objectid"`
}

// NearbyTreesDTO uses pointers so a missing coordinate is told apart from 0.
// Presence is checked by the handler.
type NearbyTreesDTO struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Radius    float64  `json:"radius"`
}
