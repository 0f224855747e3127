package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"storefront/internal/catalog/repository"
)

const objectIDHexLen = 24

// Server-side document validators. They are a coarse backstop for writes that
// bypass the service layer; the service validator stays the source of truth
// for field rules.
var (
	CategoryValidator = bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             []string{"name", "slug", "created_at", "updated_at"},
			"additionalProperties": true,
			"properties": bson.M{
				"_id":         bson.M{"bsonType": "objectId"},
				"name":        bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
				"slug":        bson.M{"bsonType": "string", "minLength": 1, "maxLength": 120},
				"description": bson.M{"bsonType": "string", "maxLength": 1000},
				"image":       bson.M{"bsonType": "string"},
				"created_at":  bson.M{"bsonType": "date"},
				"updated_at":  bson.M{"bsonType": "date"},
			},
		},
	}

	ProductValidator = bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{
				"name",
				"slug",
				"price",
				"price_amount",
				"category_id",
				"images",
				"created_at",
				"updated_at",
			},
			"additionalProperties": true,
			"properties": bson.M{
				"_id":          bson.M{"bsonType": "objectId"},
				"name":         bson.M{"bsonType": "string", "minLength": 2, "maxLength": 150},
				"slug":         bson.M{"bsonType": "string", "minLength": 1, "maxLength": 170},
				"description":  bson.M{"bsonType": "string", "maxLength": 5000},
				"price":        bson.M{"bsonType": "string", "minLength": 1},
				"price_amount": bson.M{"bsonType": []string{"long", "int"}, "minimum": 0},
				"category_id": bson.M{
					"bsonType":  "string",
					"minLength": objectIDHexLen,
					"maxLength": objectIDHexLen,
				},
				"images": bson.M{
					"bsonType": "array",
					"maxItems": 20,
					"items":    bson.M{"bsonType": "string"},
				},
				"featured":   bson.M{"bsonType": "bool"},
				"premium":    bson.M{"bsonType": "bool"},
				"custom":     bson.M{"bsonType": "bool"},
				"in_stock":   bson.M{"bsonType": "bool"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}

	ReviewValidator = bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             []string{"product_id", "name", "rating", "comment", "created_at"},
			"additionalProperties": true,
			"properties": bson.M{
				"_id": bson.M{"bsonType": "objectId"},
				"product_id": bson.M{
					"bsonType":  "string",
					"minLength": objectIDHexLen,
					"maxLength": objectIDHexLen,
				},
				"name":       bson.M{"bsonType": "string", "minLength": 2, "maxLength": 80},
				"rating":     bson.M{"bsonType": []string{"int", "long"}, "minimum": 1, "maximum": 5},
				"comment":    bson.M{"bsonType": "string", "minLength": 3, "maxLength": 2000},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
)

// Validators maps every catalog collection to its validator.
func Validators() map[string]bson.M {
	return map[string]bson.M{
		repository.CategoriesCollection: CategoryValidator,
		repository.ProductsCollection:   ProductValidator,
		repository.ReviewsCollection:    ReviewValidator,
	}
}
