package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	locationNotFound = "Location not found"

	// DefaultNearbyRadius is used when a request sends no usable radius.
	DefaultNearbyRadius = 50000.0
)

func summaries(list []models.Location) []models.LocationSummary {
	out := make([]models.LocationSummary, 0, len(list))
	for i := range list {
		out = append(out, list[i].Summary())
	}
	return out
}

func locationTrees(ctx context.Context, s *store.Store, locationID bson.ObjectID) ([]models.Tree, error) {
	ids, err := s.Links.Targets(ctx, models.LinkLocationTree, locationID)
	if err != nil {
		return nil, err
	}
	return s.Trees.GetMany(ctx, ids)
}

// GET /api/locations
func GetLocations(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := s.Locations.List(c.Request.Context())
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, summaries(list))
	}
}

// GET /api/locations/:id/trees
func GetLocationTrees(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", locationNotFound)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		loc, err := s.Locations.Get(ctx, id)
		if err != nil {
			utils.RespondError(c, err, locationNotFound)
			return
		}
		trees, err := locationTrees(ctx, s, id)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"location": gin.H{
				"district": loc.District,
				"city":     loc.City,
				"state":    loc.State,
				"climate":  loc.Climate,
			},
			"trees": trees,
		})
	}
}

// GET /api/locations/search/:query
func SearchLocations(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Param("query"))
		list, err := s.Locations.Search(c.Request.Context(), query)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, summaries(list))
	}
}

// POST /api/locations/nearby-trees
func NearbyTrees(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.NearbyTreesDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		if body.Latitude == nil || body.Longitude == nil {
			utils.RespondError(c, utils.ValidationError("Latitude and longitude are required"), "")
			return
		}
		radius := body.Radius
		if radius <= 0 {
			radius = DefaultNearbyRadius
		}
		point := models.Coordinates{Latitude: *body.Latitude, Longitude: *body.Longitude}

		ctx := c.Request.Context()
		locations, err := s.Locations.Near(ctx, point, radius)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}

		trees := make([]models.LocatedTree, 0)
		seen := make(map[bson.ObjectID]bool)
		for i := range locations {
			loc := &locations[i]
			found, err := locationTrees(ctx, s, loc.ID)
			if err != nil {
				utils.RespondError(c, err, "")
				return
			}
			for _, t := range found {
				if seen[t.ID] {
					continue
				}
				seen[t.ID] = true
				trees = append(trees, models.LocatedTree{Tree: t, Location: loc.Ref()})
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"coordinates": point,
			"radius":      radius / 1000,
			"treesFound":  len(trees),
			"trees":       trees,
		})
	}
}

// POST /api/locations
func CreateLocation(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateLocationDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		ctx := c.Request.Context()

		treeIDs, err := resolveIDs(ctx, s.Trees, body.Trees, "tree")
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}

		now := time.Now().UTC()
		loc := models.Location{
			District:    strings.TrimSpace(body.District),
			City:        strings.TrimSpace(body.City),
			State:       strings.TrimSpace(body.State),
			Country:     strings.TrimSpace(body.Country),
			Coordinates: toCoordinates(body.Coordinates),
			Climate:     models.Climate(body.Climate),
			Rainfall:    toRainfall(body.Rainfall),
			SoilType:    models.SoilType(body.SoilType),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if loc.Country == "" {
			loc.Country = models.DefaultCountry
		}

		if err := s.Locations.Create(ctx, &loc); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		if err := s.Links.Replace(ctx, models.LinkLocationTree, loc.ID, treeIDs); err != nil {
			discardCreated(ctx, s, loc.ID, s.Locations.Delete, models.LinkLocationTree)
			utils.RespondError(c, err, "")
			return
		}
		loc.Trees = treeIDs
		c.JSON(http.StatusCreated, loc)
	}
}

// PUT /api/locations/:id responds with the trees populated.
func UpdateLocation(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", locationNotFound)
		if !ok {
			return
		}
		var body dto.UpdateLocationDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		ctx := c.Request.Context()

		loc, err := s.Locations.Get(ctx, id)
		if err != nil {
			utils.RespondError(c, err, locationNotFound)
			return
		}

		var treeIDs []bson.ObjectID
		if body.Trees != nil {
			if treeIDs, err = resolveIDs(ctx, s.Trees, *body.Trees, "tree"); err != nil {
				utils.RespondError(c, err, "")
				return
			}
		}

		setIf(&loc.District, body.District)
		setIf(&loc.City, body.City)
		setIf(&loc.State, body.State)
		setIf(&loc.Country, body.Country)
		if body.Coordinates != nil {
			loc.Coordinates = toCoordinates(body.Coordinates)
		}
		if body.Climate != nil {
			loc.Climate = models.Climate(*body.Climate)
		}
		if body.Rainfall != nil {
			loc.Rainfall = toRainfall(body.Rainfall)
		}
		if body.SoilType != nil {
			loc.SoilType = models.SoilType(*body.SoilType)
		}
		loc.UpdatedAt = time.Now().UTC()

		if err := s.Locations.Replace(ctx, loc); err != nil {
			utils.RespondError(c, err, locationNotFound)
			return
		}
		if body.Trees != nil {
			if err := s.Links.Replace(ctx, models.LinkLocationTree, id, treeIDs); err != nil {
				utils.RespondError(c, err, "")
				return
			}
		}

		trees, err := locationTrees(ctx, s, id)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, models.LocationView{Location: *loc, Trees: trees})
	}
}

// DELETE /api/locations/:id
func DeleteLocation(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", locationNotFound)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if err := s.Locations.Delete(ctx, id); err != nil {
			utils.RespondError(c, err, locationNotFound)
			return
		}
		if err := s.Links.DeleteOwner(ctx, models.LinkLocationTree, id); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
	}
}

func toCoordinates(in *dto.CoordinatesDTO) *models.Coordinates {
	if in == nil || in.Latitude == nil || in.Longitude == nil {
		return nil
	}
	return &models.Coordinates{Latitude: *in.Latitude, Longitude: *in.Longitude}
}

func toRainfall(in *dto.RainfallDTO) *models.Rainfall {
	if in == nil {
		return nil
	}
	return &models.Rainfall{Annual: in.Annual, Season: models.RainSeason(in.Season)}
}
