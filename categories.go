package homegate

import "slices"

// Category identifies a property type in the backend's taxonomy. Values use
// the wire spelling. Responses may carry categories this package does not
// know yet; they decode fine and only requested categories are validated.
type Category string

const (
	CategoryFlat              Category = "FLAT"
	CategoryApartment         Category = "APARTMENT"
	CategoryMaisonette        Category = "MAISONETTE"
	CategoryDuplex            Category = "DUPLEX"
	CategoryAtticFlat         Category = "ATTIC_FLAT"
	CategoryRoofFlat          Category = "ROOF_FLAT"
	CategoryStudio            Category = "STUDIO"
	CategorySingleRoom        Category = "SINGLE_ROOM"
	CategoryTerraceFlat       Category = "TERRACE_FLAT"
	CategoryBachelorFlat      Category = "BACHELOR_FLAT"
	CategoryLoft              Category = "LOFT"
	CategoryAttic             Category = "ATTIC"
	CategoryHouse             Category = "HOUSE"
	CategoryRowHouse          Category = "ROW_HOUSE"
	CategoryBifamiliarHouse   Category = "BIFAMILIAR_HOUSE"
	CategoryTerraceHouse      Category = "TERRACE_HOUSE"
	CategoryVilla             Category = "VILLA"
	CategoryFarmHouse         Category = "FARM_HOUSE"
	CategoryCaveHouse         Category = "CAVE_HOUSE"
	CategoryCastle            Category = "CASTLE"
	CategoryGrannyFlat        Category = "GRANNY_FLAT"
	CategoryChalet            Category = "CHALET"
	CategoryRustico           Category = "RUSTICO"
	CategorySingleHouse       Category = "SINGLE_HOUSE"
	CategoryHobbyRoom         Category = "HOBBY_ROOM"
	CategoryCellarCompartment Category = "CELLAR_COMPARTMENT"
	CategoryAtticCompartment  Category = "ATTIC_COMPARTMENT"
	CategoryFurnishedFlat     Category = "FURNISHED_FLAT"
)

// allCategories is the canonical declaration order of the taxonomy. Category
// sets serialize in this order so equal sets produce identical request
// bodies.
var allCategories = []Category{
	CategoryFlat,
	CategoryApartment,
	CategoryMaisonette,
	CategoryDuplex,
	CategoryAtticFlat,
	CategoryRoofFlat,
	CategoryStudio,
	CategorySingleRoom,
	CategoryTerraceFlat,
	CategoryBachelorFlat,
	CategoryLoft,
	CategoryAttic,
	CategoryHouse,
	CategoryRowHouse,
	CategoryBifamiliarHouse,
	CategoryTerraceHouse,
	CategoryVilla,
	CategoryFarmHouse,
	CategoryCaveHouse,
	CategoryCastle,
	CategoryGrannyFlat,
	CategoryChalet,
	CategoryRustico,
	CategorySingleHouse,
	CategoryHobbyRoom,
	CategoryCellarCompartment,
	CategoryAtticCompartment,
	CategoryFurnishedFlat,
}

var categoryRank = func() map[Category]int {
	ranks := make(map[Category]int, len(allCategories))
	for i, c := range allCategories {
		ranks[c] = i
	}
	return ranks
}()

// AllCategories returns every known category in canonical order.
func AllCategories() []Category {
	return slices.Clone(allCategories)
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryRank[c]
	return ok
}

// NormalizeCategories removes duplicates and puts the set into canonical
// order. Unknown categories keep their relative order at the end. The result
// is never nil: the backend expects an empty JSON array, not null, when no
// categories are selected.
func NormalizeCategories(categories []Category) []Category {
	out := make([]Category, 0, len(categories))

	seen := make(map[Category]struct{}, len(categories))
	for _, c := range categories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(a, b Category) int {
		return rankOf(a) - rankOf(b)
	})

	return out
}

func rankOf(c Category) int {
	if rank, ok := categoryRank[c]; ok {
		return rank
	}
	return len(allCategories)
}
