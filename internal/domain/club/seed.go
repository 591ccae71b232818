package club

import (
	"context"

	"go.uber.org/zap"

	"tennis-space/backend/internal/logger"
)

// Seed creates the demonstration catalog. A club that fails to persist is
// logged and skipped; the ids of the clubs that were created are returned.
func (s *Service) Seed(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)
	ids := []string{}
	var lastErr error
	for _, c := range Catalog() {
		out, err := s.CreateClub(ctx, c)
		if err != nil {
			log.Warn("seed club failed", zap.String("name", c.Name), zap.Error(err))
			lastErr = err
			continue
		}
		ids = append(ids, out.ID)
	}
	log.Info("seed finished", zap.Int("created", len(ids)))
	if len(ids) == 0 && lastErr != nil {
		return ids, lastErr
	}
	return ids, nil
}

func price(v float64) *float64 { return &v }

func court(id, name string, surface Surface, floodlights, indoor bool, perHour *float64) Court {
	return Court{
		ID:             id,
		Name:           name,
		Surface:        surface,
		HasFloodlights: floodlights,
		IsIndoor:       indoor,
		PricePerHour:   perHour,
		IsActive:       true,
	}
}

// Catalog is the fixed set of demonstration clubs around Aachen.
func Catalog() []TennisClub {
	return []TennisClub{
		New("TC Rot-Weiß Aachen", "Krefelder Straße 223, 52070 Aachen",
			"Traditioneller Tennisclub mit 4 modernen Sandplätzen und Flutlicht",
			court("court1", "Center Court", SurfaceClay, true, false, nil),
			court("court2", "Platz 2", SurfaceClay, true, false, nil),
			court("court3", "Platz 3", SurfaceClay, false, false, nil),
			court("court4", "Platz 4", SurfaceClay, false, false, nil),
		),
		New("Alemannia Aachen Tennis", "Krefelder Straße 199, 52070 Aachen",
			"Sportverein mit 5 Plätzen und Indoor-Halle",
			court("court1", "Außenplatz 1", SurfaceClay, true, false, nil),
			court("court2", "Außenplatz 2", SurfaceClay, true, false, nil),
			court("court3", "Außenplatz 3", SurfaceClay, false, false, nil),
			court("court4", "Halle 1", SurfaceHard, false, true, nil),
			court("court5", "Halle 2", SurfaceHard, false, true, nil),
		),
		New("TC Blau-Weiß Aachen", "Monschauer Straße 45, 52064 Aachen",
			"Moderner Club mit 6 Hartplätzen",
			court("court1", "Court 1", SurfaceHard, true, false, price(25)),
			court("court2", "Court 2", SurfaceHard, true, false, price(25)),
			court("court3", "Court 3", SurfaceHard, false, false, price(20)),
			court("court4", "Court 4", SurfaceHard, false, false, price(20)),
			court("court5", "Court 5", SurfaceHard, false, false, price(20)),
			court("court6", "Court 6", SurfaceHard, false, false, price(20)),
		),
		New("Tennisclub Eschweiler", "Dürener Straße 12, 52249 Eschweiler",
			"Gemütlicher Verein mit 3 Sandplätzen",
			court("court1", "Platz A", SurfaceClay, true, false, nil),
			court("court2", "Platz B", SurfaceClay, false, false, nil),
			court("court3", "Platz C", SurfaceClay, false, false, nil),
		),
		New("TC Herzogenrath", "Hauptstraße 88, 52134 Herzogenrath",
			"Premium Club mit Kunstrasenplätzen",
			court("court1", "Premium Court 1", SurfaceArtificial, true, false, nil),
			court("court2", "Premium Court 2", SurfaceArtificial, true, false, nil),
			court("court3", "Court 3", SurfaceArtificial, false, false, nil),
			court("court4", "Court 4", SurfaceArtificial, false, false, nil),
			court("court5", "Court 5", SurfaceArtificial, false, false, nil),
		),
		New("Tennispark Stolberg", "Rathausstraße 100, 52222 Stolberg",
			"Großer Tennispark mit 8 Plätzen verschiedener Beläge",
			court("court1", "Center Court", SurfaceClay, true, false, nil),
			court("court2", "Sandplatz 2", SurfaceClay, true, false, nil),
			court("court3", "Sandplatz 3", SurfaceClay, false, false, nil),
			court("court4", "Sandplatz 4", SurfaceClay, false, false, nil),
			court("court5", "Hartplatz 1", SurfaceHard, true, false, nil),
			court("court6", "Hartplatz 2", SurfaceHard, true, false, nil),
			court("court7", "Indoor 1", SurfaceHard, false, true, nil),
			court("court8", "Indoor 2", SurfaceHard, false, true, nil),
		),
		New("TC Würselen", "Kaiserstraße 77, 52146 Würselen",
			"Familiärer Verein mit 4 Sandplätzen",
			court("court1", "Platz 1", SurfaceClay, true, false, nil),
			court("court2", "Platz 2", SurfaceClay, true, false, nil),
			court("court3", "Platz 3", SurfaceClay, false, false, nil),
			court("court4", "Platz 4", SurfaceClay, false, false, nil),
		),
		New("Tennishalle Alsdorf", "Annastraße 50, 52477 Alsdorf",
			"Indoor-Zentrum mit 6 Hallenplätzen",
			court("court1", "Halle A1", SurfaceHard, false, true, price(30)),
			court("court2", "Halle A2", SurfaceHard, false, true, price(30)),
			court("court3", "Halle B1", SurfaceHard, false, true, price(25)),
			court("court4", "Halle B2", SurfaceHard, false, true, price(25)),
			court("court5", "Halle C1", SurfaceHard, false, true, price(25)),
			court("court6", "Halle C2", SurfaceHard, false, true, price(25)),
		),
		New("TC Baesweiler", "Sportstraße 15, 52499 Baesweiler",
			"Vereinsanlage mit 5 Außenplätzen",
			court("court1", "Hauptplatz", SurfaceClay, true, false, nil),
			court("court2", "Platz 2", SurfaceClay, true, false, nil),
			court("court3", "Platz 3", SurfaceClay, false, false, nil),
			court("court4", "Nebenplatz 1", SurfaceArtificial, false, false, nil),
			court("court5", "Nebenplatz 2", SurfaceArtificial, false, false, nil),
		),
		New("Grün-Weiß Düren Tennis", "Valencienner Straße 89, 52349 Düren",
			"Großverein mit 7 verschiedenen Plätzen",
			court("court1", "Center Court", SurfaceClay, true, false, nil),
			court("court2", "Sand 2", SurfaceClay, true, false, nil),
			court("court3", "Sand 3", SurfaceClay, true, false, nil),
			court("court4", "Hart 1", SurfaceHard, true, false, price(20)),
			court("court5", "Hart 2", SurfaceHard, false, false, price(20)),
			court("court6", "Kunstrasen", SurfaceArtificial, false, false, nil),
			court("court7", "Indoor", SurfaceHard, false, true, price(35)),
		),
	}
}
