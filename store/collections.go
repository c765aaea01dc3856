package store

import "github.com/pkg/errors"

// Collection names. One profile collection plus one similarity index
// partition per matching category.
const (
	UserCollection             = "user_profiles"
	SimilarityCollection       = "user_similarities"
	FriendSimilarityCollection = "friend_similarities"
	CoupleSimilarityCollection = "couple_similarities"
)

// Category is a matching context with its own similarity index partition.
type Category string

const (
	CategoryDefault Category = "default"
	CategoryFriend  Category = "friend"
	CategoryCouple  Category = "couple"
)

// Categories lists every similarity partition, in cleanup order.
var Categories = []Category{CategoryDefault, CategoryFriend, CategoryCouple}

var categoryCollections = map[Category]string{
	CategoryDefault: SimilarityCollection,
	CategoryFriend:  FriendSimilarityCollection,
	CategoryCouple:  CoupleSimilarityCollection,
}

// Collection returns the similarity collection backing the category.
func (c Category) Collection() string {
	return categoryCollections[c]
}

// ParseCategory maps a request parameter to a category. Empty means the
// default partition.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "", string(CategoryDefault):
		return CategoryDefault, nil
	case string(CategoryFriend):
		return CategoryFriend, nil
	case string(CategoryCouple):
		return CategoryCouple, nil
	}
	return "", errors.Errorf("unknown category %q", s)
}

// AllCollections lists every collection a driver must provision.
func AllCollections() []string {
	return []string{
		UserCollection,
		SimilarityCollection,
		FriendSimilarityCollection,
		CoupleSimilarityCollection,
	}
}
