// Package seed ships a small set of hand-written city guides used to
// populate a fresh database for demos and local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wandergenie/wandergenie/internal/knowledge"
)

// Ingestor stores a document as embedded chunks.
type Ingestor interface {
	Ingest(ctx context.Context, text string, meta knowledge.Metadata) (int, error)
}

// document pairs a guide with its metadata.
type document struct {
	text string
	meta knowledge.Metadata
}

var documents = []document{
	{
		text: `Tokyo, Japan - A vibrant metropolis blending tradition and modernity.

Must-Visit Attractions:
- Senso-ji Temple: Ancient Buddhist temple in Asakusa, free entry
- Tokyo Skytree: 634m tall tower with observation decks, ¥2,100-3,400
- Shibuya Crossing: World's busiest pedestrian crossing, free
- Meiji Shrine: Peaceful Shinto shrine in forest setting, free
- Tsukiji Outer Market: Fresh seafood and street food, budget-friendly

Transportation: JR Pass for tourists ¥29,650 for 7 days, covers most trains.
Local subway day pass ¥600-900.

Accommodation: Budget hostels ¥2,000-4,000/night, Mid-range hotels ¥8,000-15,000/night,
Luxury hotels ¥20,000+/night.

Food: Ramen ¥800-1,200, Sushi ¥2,000-10,000+, Convenience store meals ¥300-600.`,
		meta: knowledge.Metadata{
			Type:        "city_guide",
			Destination: "Tokyo",
			Country:     "Japan",
			Category:    "overview",
			Source:      "seed",
		},
	},
	{
		text: `Paris, France - The City of Light, capital of romance and culture.

Top Attractions:
- Eiffel Tower: Iconic landmark, €28.30 for summit access
- Louvre Museum: World's largest art museum, €17 entry
- Arc de Triomphe: Napoleonic monument, €13 to climb
- Notre-Dame: Gothic cathedral (exterior viewing currently), free
- Champs-Élysées: Famous avenue for shopping and dining
- Versailles Palace: Day trip from Paris, €20 entry

Transportation: Metro/RER day pass €8-20, Paris Visite pass available.

Accommodation: Budget hostels €30-60/night, Mid-range hotels €100-200/night,
Luxury hotels €300+/night.

Food: Croissant €1.50-3, Café lunch €12-20, Fine dining €50-150+.`,
		meta: knowledge.Metadata{
			Type:        "city_guide",
			Destination: "Paris",
			Country:     "France",
			Category:    "overview",
			Source:      "seed",
		},
	},
	{
		text: `New York City, USA - The city that never sleeps.

Major Attractions:
- Statue of Liberty: Ferry and crown access $23.50
- Empire State Building: Observation deck $44-79
- Central Park: Urban oasis, free walking tours available
- Metropolitan Museum: Suggested donation $30
- Times Square: Bright lights and Broadway shows, free to visit
- Brooklyn Bridge: Iconic bridge walk, free

Transportation: MetroCard $2.90 per ride, weekly unlimited $34.

Accommodation: Budget hostels $50-100/night, Mid-range hotels $150-300/night,
Luxury hotels $400+/night.

Food: Pizza slice $3-5, Diner meal $15-25, Fine dining $75-200+.`,
		meta: knowledge.Metadata{
			Type:        "city_guide",
			Destination: "New York City",
			Country:     "USA",
			Category:    "overview",
			Source:      "seed",
		},
	},
}

// popularDestinations are well-known cities worth pre-generating guides
// for, grouped roughly by region.
var popularDestinations = []string{
	"Bangkok, Thailand",
	"Singapore, Singapore",
	"Dubai, UAE",
	"Seoul, South Korea",
	"Mumbai, India",
	"Hong Kong, China",
	"Bali, Indonesia",

	"London, England",
	"Rome, Italy",
	"Barcelona, Spain",
	"Amsterdam, Netherlands",
	"Prague, Czech Republic",
	"Vienna, Austria",
	"Berlin, Germany",
	"Istanbul, Turkey",

	"Los Angeles, USA",
	"Las Vegas, USA",
	"Miami, USA",
	"Mexico City, Mexico",
	"Rio de Janeiro, Brazil",
	"Buenos Aires, Argentina",

	"Sydney, Australia",
	"Melbourne, Australia",
	"Auckland, New Zealand",
	"Cape Town, South Africa",
	"Marrakech, Morocco",
}

// Popular returns the bulk-generation destination list as "City, Country"
// strings.
func Popular() []string {
	return append([]string(nil), popularDestinations...)
}

// Destinations lists the cities covered by the seed set.
func Destinations() []string {
	out := make([]string, len(documents))
	for i, d := range documents {
		out[i] = d.meta.Destination
	}
	return out
}

// Seed ingests every bundled guide and returns the total chunk count.
// It stops at the first failure.
func Seed(ctx context.Context, ingestor Ingestor, logger *slog.Logger) (int, error) {
	if ingestor == nil {
		return 0, fmt.Errorf("ingestor is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	total := 0
	for _, d := range documents {
		n, err := ingestor.Ingest(ctx, d.text, d.meta)
		if err != nil {
			return total, fmt.Errorf("seeding %s: %w", d.meta.Destination, err)
		}
		logger.Info("seeded destination", "destination", d.meta.Destination, "chunks", n)
		total += n
	}
	return total, nil
}
