package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CategoryLabel is the dietary class of a menu category. The API accepts
// exactly these two spellings, case-sensitively.
type CategoryLabel string

const (
	CategoryVeg    CategoryLabel = "Veg"
	CategoryNonVeg CategoryLabel = "Non-Veg"
)

func (c CategoryLabel) IsValid() bool {
	return c == CategoryVeg || c == CategoryNonVeg
}

// MenuCategory partitions a service's menu into Veg and Non-Veg sections.
type MenuCategory struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CateringService primitive.ObjectID `bson:"cateringService" json:"cateringService"`
	Name            CategoryLabel      `bson:"name" json:"name"`
}

// MenuItem is a single dish offered by a service under a category.
type MenuItem struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CateringService primitive.ObjectID `bson:"cateringService" json:"cateringService"`
	Category        primitive.ObjectID `bson:"category" json:"category"`
	Name            string             `bson:"name" json:"name"`
	Price           float64            `bson:"price" json:"price"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
}
