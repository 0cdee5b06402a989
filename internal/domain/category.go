package domain

import "errors"

// Category is the life-domain lens a reading is performed through. It selects
// which interpretation text applies to a card and frames the AI prompt.
type Category string

// The category id space is a closed enumeration; anything else is rejected
// before it can cause a side effect.
const (
	CategoryGeneral       Category = "general"
	CategoryCareer        Category = "career"
	CategoryWealth        Category = "wealth"
	CategoryLove          Category = "love"
	CategoryRelationships Category = "relationships"
	CategoryHealth        Category = "health"
	CategoryAvoid2026     Category = "avoid_2026"
	CategoryAttract2026   Category = "attract_2026"
)

// ErrInvalidCategory is returned when a category id is not part of the
// closed enumeration.
var ErrInvalidCategory = errors.New("invalid reading category")

// CategoryInfo carries the display metadata for a category.
type CategoryInfo struct {
	Title       string
	Description string
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryGeneral:       {Title: "일반 운세", Description: "2026년 전반적인 운세"},
	CategoryCareer:        {Title: "커리어", Description: "직장과 경력 발전"},
	CategoryWealth:        {Title: "재물", Description: "금전운과 재정 상태"},
	CategoryLove:          {Title: "연애", Description: "사랑과 로맨스"},
	CategoryRelationships: {Title: "인간관계", Description: "가족, 친구, 동료 관계"},
	CategoryHealth:        {Title: "건강", Description: "신체적, 정신적 건강"},
	CategoryAvoid2026:     {Title: "2026년 피해야 할 것", Description: "조심하고 멀리해야 할 것"},
	CategoryAttract2026:   {Title: "2026년 끌어와야 할 것", Description: "가까이하고 키워야 할 것"},
}

var categoryOrder = []Category{
	CategoryGeneral,
	CategoryCareer,
	CategoryWealth,
	CategoryLove,
	CategoryRelationships,
	CategoryHealth,
	CategoryAvoid2026,
	CategoryAttract2026,
}

// Valid reports whether the category is part of the closed enumeration.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns the display metadata for the category. The zero CategoryInfo
// is returned for unknown categories.
func (c Category) Info() CategoryInfo {
	return categoryInfo[c]
}

// Title returns the display title for the category.
func (c Category) Title() string {
	return categoryInfo[c].Title
}

// ParseCategory validates a raw category id.
// Returns ErrInvalidCategory if the id is not part of the enumeration.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Categories returns all valid categories in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}
