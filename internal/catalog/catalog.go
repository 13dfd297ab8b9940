package catalog

import (
	"strings"
	"time"

	"auction-house/internal/models"
)

// Filter keeps auctions whose title or description contains query
// (case-insensitive; empty query matches all) and whose category equals
// category ("" or "all" matches all). Input order is preserved.
func Filter(auctions []models.Auction, query, category string) []models.Auction {
	q := strings.ToLower(query)
	matchAllCategories := category == "" || strings.EqualFold(category, "all")

	out := make([]models.Auction, 0, len(auctions))
	for _, a := range auctions {
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) {
			continue
		}
		if !matchAllCategories && a.Category != category {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Categories returns the distinct categories of the given auctions in
// first-seen order.
func Categories(auctions []models.Auction) []string {
	seen := make(map[string]bool, len(auctions))
	out := make([]string, 0, len(auctions))
	for _, a := range auctions {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		out = append(out, a.Category)
	}
	return out
}

// Seed returns the demo catalog: six collectible lots with staggered end
// times relative to now. The first lot carries a pre-existing bid history.
func Seed(now time.Time) []models.Auction {
	return []models.Auction{
		{
			ID:          "1",
			Title:       "Reloj Vintage de Colección",
			Description: "Reloj de los años 50 en perfecto estado de funcionamiento.",
			Category:    "Antigüedades",
			Seller:      "AntiqueCollector",
			CurrentBid:  450,
			MinNextBid:  460,
			EndTime:     now.Add(24 * time.Hour),
			BidHistory: []models.BidRecord{
				{BidderID: "Collector123", Amount: 450, Timestamp: now.Add(-1 * time.Hour)},
				{BidderID: "VintageEnthusiast", Amount: 425, Timestamp: now.Add(-2 * time.Hour)},
				{BidderID: "ArtDeco", Amount: 400, Timestamp: now.Add(-3 * time.Hour)},
			},
		},
		{
			ID:          "2",
			Title:       "Cuadro de Arte Moderno",
			Description: "Obra original firmada por el artista contemporáneo.",
			Category:    "Arte",
			Seller:      "GaleriaModerna",
			CurrentBid:  1200,
			EndTime:     now.Add(48 * time.Hour),
		},
		{
			ID:          "3",
			Title:       "Consola de Videojuegos Retro",
			Description: "Consola en su caja original con todos los accesorios.",
			Category:    "Electrónica",
			Seller:      "RetroGamer",
			CurrentBid:  350,
			EndTime:     now.Add(72 * time.Hour),
		},
		{
			ID:          "4",
			Title:       "Moneda Antigua Romana",
			Description: "Moneda de la época del Imperio Romano en excelente estado.",
			Category:    "Numismática",
			Seller:      "NumisRoma",
			CurrentBid:  800,
			EndTime:     now.Add(96 * time.Hour),
		},
		{
			ID:          "5",
			Title:       "Guitarra Firmada por Músico Famoso",
			Description: "Guitarra eléctrica con autógrafo del artista.",
			Category:    "Música",
			Seller:      "RockMemorabilia",
			CurrentBid:  2500,
			EndTime:     now.Add(120 * time.Hour),
		},
		{
			ID:          "6",
			Title:       "Libro Primera Edición",
			Description: "Ejemplar de primera edición en perfecto estado.",
			Category:    "Literatura",
			Seller:      "Bibliofilo",
			CurrentBid:  600,
			EndTime:     now.Add(144 * time.Hour),
		},
	}
}
