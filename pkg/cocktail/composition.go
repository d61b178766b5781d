package cocktail

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
)

// CompositionLink is one normalized (ingredient, amount, unit) triple.
type CompositionLink struct {
	IngredientID uint
	Amount       int
	Unit         domain.Unit
}

// NormalizeComposition canonicalizes a composition so that two ingredient
// lists describing the same multiset compare equal regardless of input order
// or unit letter-casing. Sort order is ingredient id, then amount, then unit.
func NormalizeComposition(links []CompositionLink) []CompositionLink {
	normalized := make([]CompositionLink, len(links))
	copy(normalized, links)
	sort.Slice(normalized, func(i, j int) bool {
		a, b := normalized[i], normalized[j]
		if a.IngredientID != b.IngredientID {
			return a.IngredientID < b.IngredientID
		}
		if a.Amount != b.Amount {
			return a.Amount < b.Amount
		}
		return a.Unit < b.Unit
	})
	return normalized
}

// EqualCompositions reports whether two already-normalized compositions are
// the same multiset.
func EqualCompositions(a, b []CompositionLink) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// normalizeStoredLinks converts persisted link rows into a normalized
// composition. An unparseable stored unit is a data-integrity error.
func normalizeStoredLinks(rows []entities.CocktailIngredient) ([]CompositionLink, error) {
	links := make([]CompositionLink, 0, len(rows))
	for _, row := range rows {
		unit, err := domain.ParseStoredUnit(row.Unit)
		if err != nil {
			return nil, fmt.Errorf("cocktail %d ingredient %d: %w", row.CocktailID, row.IngredientID, err)
		}
		links = append(links, CompositionLink{
			IngredientID: row.IngredientID,
			Amount:       row.Amount,
			Unit:         unit,
		})
	}
	return NormalizeComposition(links), nil
}

// DedupeKey derives the uniqueness key persisted alongside a cocktail. The
// key covers name, visibility scope and the canonical composition, so the
// store-level unique index rejects at commit time any concurrent create that
// slipped past the proactive duplicate check.
func DedupeKey(name string, isPublic bool, ownerID uint, normalized []CompositionLink) string {
	scope := "public"
	if !isPublic {
		scope = fmt.Sprintf("user:%d", ownerID)
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('\x1f')
	b.WriteString(scope)
	for _, link := range normalized {
		b.WriteByte('\x1f')
		b.WriteString(fmt.Sprintf("%d:%d:%s", link.IngredientID, link.Amount, link.Unit))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
