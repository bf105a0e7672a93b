package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Climate string

const (
	ClimateTropical    Climate = "tropical"
	ClimateSubtropical Climate = "subtropical"
	ClimateTemperate   Climate = "temperate"
	ClimateArid        Climate = "arid"
	ClimateSemiArid    Climate = "semi-arid"
)

type SoilType string

const (
	SoilClay        SoilType = "clay"
	SoilSandy       SoilType = "sandy"
	SoilLoamy       SoilType = "loamy"
	SoilRocky       SoilType = "rocky"
	SoilAlluvial    SoilType = "alluvial"
	SoilBlackCotton SoilType = "black-cotton"
)

type RainSeason string

const (
	RainMonsoon   RainSeason = "monsoon"
	RainWinter    RainSeason = "winter"
	RainSummer    RainSeason = "summer"
	RainYearRound RainSeason = "year-round"
)

var (
	Climates    = []Climate{ClimateTropical, ClimateSubtropical, ClimateTemperate, ClimateArid, ClimateSemiArid}
	SoilTypes   = []SoilType{SoilClay, SoilSandy, SoilLoamy, SoilRocky, SoilAlluvial, SoilBlackCotton}
	RainSeasons = []RainSeason{RainMonsoon, RainWinter, RainSummer, RainYearRound}
)

func (c Climate) Valid() bool {
	for _, v := range Climates {
		if v == c {
			return true
		}
	}
	return false
}

func (s SoilType) Valid() bool {
	for _, v := range SoilTypes {
		if v == s {
			return true
		}
	}
	return false
}

func (s RainSeason) Valid() bool {
	for _, v := range RainSeasons {
		if v == s {
			return true
		}
	}
	return false
}

const DefaultCountry = "India"

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// GeoPoint is the GeoJSON form indexed with 2dsphere. Coordinates are
// [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(c Coordinates) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{c.Longitude, c.Latitude}}
}

type Rainfall struct {
	Annual float64    `bson:"annual,omitempty" json:"annual,omitempty"`
	Season RainSeason `bson:"season,omitempty" json:"season,omitempty"`
}

type Location struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	District    string          `bson:"district" json:"district"`
	City        string          `bson:"city" json:"city"`
	State       string          `bson:"state" json:"state"`
	Country     string          `bson:"country" json:"country"`
	Coordinates *Coordinates    `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Geo         *GeoPoint       `bson:"geo,omitempty" json:"-"`
	Climate     Climate         `bson:"climate" json:"climate"`
	Rainfall    *Rainfall       `bson:"rainfall,omitempty" json:"rainfall,omitempty"`
	SoilType    SoilType        `bson:"soilType,omitempty" json:"soilType,omitempty"`
	Trees       []bson.ObjectID `bson:"-" json:"trees"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

func (l *Location) GetID() bson.ObjectID   { return l.ID }
func (l *Location) SetID(id bson.ObjectID) { l.ID = id }

// SyncGeo keeps the indexed GeoJSON point in step with Coordinates.
func (l *Location) SyncGeo() {
	if l.Coordinates == nil {
		l.Geo = nil
		return
	}
	l.Geo = NewGeoPoint(*l.Coordinates)
}

func (l *Location) Ref() LocationRef {
	return LocationRef{District: l.District, City: l.City, State: l.State}
}

type LocationSummary struct {
	ID       bson.ObjectID `json:"id"`
	District string        `json:"district"`
	City     string        `json:"city"`
	State    string        `json:"state"`
	Country  string        `json:"country"`
}

func (l *Location) Summary() LocationSummary {
	return LocationSummary{ID: l.ID, District: l.District, City: l.City, State: l.State, Country: l.Country}
}

// LocationView is a location with its trees populated.
type LocationView struct {
	Location
	Trees []Tree `json:"trees"`
}
