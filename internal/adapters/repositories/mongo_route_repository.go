package repositories

import (
	"bus-journey-service/internal/domain"
	"bus-journey-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BusCollection = "buses"

type busPoint struct {
	Name  string  `bson:"name"`
	Lat   float64 `bson:"lat"`
	Lng   float64 `bson:"lng"`
	Order int     `bson:"order"`
}

type busRoute struct {
	StartPoint *busPoint  `bson:"startPoint"`
	Stops      []busPoint `bson:"stops"`
	EndPoint   *busPoint  `bson:"endPoint"`
}

// busDocument is the stored shape of a bus with its route. Start and end
// points live outside the intermediate stop list.
type busDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	BusNumber string             `bson:"busNumber"`
	RouteName string             `bson:"routeName"`
	Capacity  int                `bson:"capacity"`
	IsActive  bool               `bson:"isActive"`
	Route     busRoute           `bson:"route"`
}

type MongoRouteRepository struct {
	coll *mongo.Collection
}

var _ ports.RouteRepository = (*MongoRouteRepository)(nil)

func NewMongoRouteRepository(db *mongo.Database) (*MongoRouteRepository, error) {
	if db == nil {
		return nil, errors.New("new mongo route repository: database is nil")
	}
	return &MongoRouteRepository{coll: db.Collection(BusCollection)}, nil
}

func (r *MongoRouteRepository) FindAllActive(ctx context.Context) ([]domain.Route, error) {
	opts := options.Find().SetSort(bson.D{{Key: "routeName", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("find active routes: query: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []busDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find active routes: decode: %w", err)
	}

	routes := make([]domain.Route, 0, len(docs))
	for _, d := range docs {
		routes = append(routes, d.toDomain())
	}
	return routes, nil
}

// toDomain flattens start, intermediate stops and end into one ordered
// list numbered from 0. Intermediate stops keep their stored relative order.
func (d busDocument) toDomain() domain.Route {
	mid := make([]busPoint, len(d.Route.Stops))
	copy(mid, d.Route.Stops)
	sort.SliceStable(mid, func(i, j int) bool { return mid[i].Order < mid[j].Order })

	points := make([]busPoint, 0, len(mid)+2)
	if d.Route.StartPoint != nil {
		points = append(points, *d.Route.StartPoint)
	}
	points = append(points, mid...)
	if d.Route.EndPoint != nil {
		points = append(points, *d.Route.EndPoint)
	}

	stops := make([]domain.Stop, 0, len(points))
	for i, p := range points {
		stops = append(stops, domain.Stop{
			Name:      p.Name,
			Latitude:  p.Lat,
			Longitude: p.Lng,
			Order:     i,
		})
	}

	id := d.BusNumber
	if !d.ID.IsZero() {
		id = d.ID.Hex()
	}

	return domain.Route{
		ID:        id,
		Name:      d.RouteName,
		VehicleID: d.BusNumber,
		Capacity:  d.Capacity,
		Active:    d.IsActive,
		Stops:     stops,
	}
}

// SeedMongo upserts routes into the buses collection keyed by bus number.
// The first and last stops become the start and end points.
func SeedMongo(ctx context.Context, db *mongo.Database, data []RouteSeed) error {
	if db == nil {
		return errors.New("seed mongo: database is nil")
	}
	coll := db.Collection(BusCollection)

	for i, r := range data {
		key := r.BusNumber
		if key == "" {
			key = r.RouteID
		}
		if key == "" {
			return fmt.Errorf("seed mongo: item at index %d: bus_number or route_id required", i+1)
		}

		doc := newBusDocument(r)
		doc.BusNumber = key

		_, err := coll.ReplaceOne(ctx, bson.M{"busNumber": key}, doc, options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("seed mongo: upsert busNumber=%s: %w", key, err)
		}
	}
	return nil
}

func newBusDocument(r RouteSeed) busDocument {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	points := make([]busPoint, 0, len(r.Stops))
	for pos, s := range r.Stops {
		order := pos
		if s.Order != nil {
			order = *s.Order
		}
		points = append(points, busPoint{Name: s.Name, Lat: s.Lat, Lng: s.Lng, Order: order})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Order < points[j].Order })

	doc := busDocument{
		BusNumber: r.BusNumber,
		RouteName: r.RouteName,
		Capacity:  r.Capacity,
		IsActive:  active,
		Route:     busRoute{Stops: []busPoint{}},
	}
	if len(points) == 0 {
		return doc
	}

	start := points[0]
	doc.Route.StartPoint = &start
	if len(points) > 1 {
		end := points[len(points)-1]
		doc.Route.EndPoint = &end
		doc.Route.Stops = append(doc.Route.Stops, points[1:len(points)-1]...)
	}
	return doc
}
