package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/maplink/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
// Object fields resolve through the json tags of the domain types.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	coordinateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coordinate",
		Fields: graphql.Fields{
			"latitude":  &graphql.Field{Type: graphql.Float},
			"longitude": &graphql.Field{Type: graphql.Float},
		},
	})

	coordinateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CoordinateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"latitude":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"longitude": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	legType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Leg",
		Fields: graphql.Fields{
			"from":    &graphql.Field{Type: graphql.Int},
			"to":      &graphql.Field{Type: graphql.Int},
			"meters":  &graphql.Field{Type: graphql.Float},
			"display": &graphql.Field{Type: graphql.String},
		},
	})

	linksType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Links",
		Fields: graphql.Fields{
			"google": &graphql.Field{Type: graphql.String},
			"osrm":   &graphql.Field{Type: graphql.String},
		},
	})

	analysisType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Analysis",
		Fields: graphql.Fields{
			"coordinates":  &graphql.Field{Type: graphql.NewList(coordinateType)},
			"legs":         &graphql.Field{Type: graphql.NewList(legType)},
			"total_meters": &graphql.Field{Type: graphql.Float},
			"links":        &graphql.Field{Type: linksType},
		},
	})

	distanceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Distance",
		Fields: graphql.Fields{
			"from":    &graphql.Field{Type: coordinateType},
			"to":      &graphql.Field{Type: coordinateType},
			"meters":  &graphql.Field{Type: graphql.Float},
			"display": &graphql.Field{Type: graphql.String},
		},
	})

	sampleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Sample",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.String},
			"title": &graphql.Field{Type: graphql.String},
			"text":  &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"analyze": &graphql.Field{
				Type:        analysisType,
				Description: "Extract coordinates from text and derive legs and map links",
				Args: graphql.FieldConfigArgument{
					"text": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					text := p.Args["text"].(string)
					return deps.Links.Analyze(p.Context, "graphql", text)
				},
			},
			"links": &graphql.Field{
				Type:        linksType,
				Description: "Map links for an explicit coordinate list",
				Args: graphql.FieldConfigArgument{
					"coordinates": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(coordinateInput))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					coords, err := coordinatesArg(p.Args["coordinates"])
					if err != nil {
						return nil, err
					}
					if len(coords) > maxLinkCoordinates {
						return nil, fmt.Errorf("too many coordinates (max %d)", maxLinkCoordinates)
					}
					return deps.Links.Links(p.Context, coords), nil
				},
			},
			"distance": &graphql.Field{
				Type:        distanceType,
				Description: "Great-circle distance between two points",
				Args: graphql.FieldConfigArgument{
					"from": &graphql.ArgumentConfig{Type: graphql.NewNonNull(coordinateInput)},
					"to":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(coordinateInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					from, err := coordinateArg(p.Args["from"])
					if err != nil {
						return nil, err
					}
					to, err := coordinateArg(p.Args["to"])
					if err != nil {
						return nil, err
					}
					meters, display := deps.Links.Distance(p.Context, from, to)
					return DistanceResponse{From: from, To: to, Meters: meters, Display: display}, nil
				},
			},
			"samples": &graphql.Field{
				Type:        graphql.NewList(sampleType),
				Description: "List built-in sample texts",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Samples.List(p.Context)
				},
			},
			"sample": &graphql.Field{
				Type:        sampleType,
				Description: "Get a sample by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Samples.Get(p.Context, id)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

func coordinatesArg(v interface{}) ([]domain.Coordinate, error) {
	list, _ := v.([]interface{})
	coords := make([]domain.Coordinate, 0, len(list))
	for i, item := range list {
		c, err := coordinateArg(item)
		if err != nil {
			return nil, fmt.Errorf("coordinates[%d]: %w", i, err)
		}
		coords = append(coords, c)
	}
	return coords, nil
}

func coordinateArg(v interface{}) (domain.Coordinate, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("expected coordinate object")
	}
	lat, okLat := m["latitude"].(float64)
	lon, okLon := m["longitude"].(float64)
	if !okLat || !okLon {
		return domain.Coordinate{}, fmt.Errorf("latitude and longitude are required")
	}
	return domain.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Query == "" {
			return errBadRequest(c, "query is required")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return sendJSON(c, result)
	}
}
