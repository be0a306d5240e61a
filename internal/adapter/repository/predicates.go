package repository

import (
	"cloud.google.com/go/firestore"

	"tripspot/internal/domain/entity"
)

// Predicate is one Where clause of a places query.
type Predicate struct {
	Path  string
	Op    string
	Value interface{}
}

// BuildPlacePredicates turns a filter into conjunctive Where clauses. Absent
// fields produce no clause.
func BuildPlacePredicates(filter entity.PlaceFilter) []Predicate {
	var preds []Predicate

	if filter.Keyword != "" {
		preds = append(preds, Predicate{Path: "keywords", Op: "array-contains", Value: filter.Keyword})
	}
	if filter.Region != nil {
		if label := filter.Region.StoreLabel(); label != "" {
			preds = append(preds, Predicate{Path: "regionType", Op: "==", Value: label})
		}
	}
	if filter.Season != nil {
		preds = append(preds, Predicate{Path: "seasonTags", Op: "array-contains", Value: string(*filter.Season)})
	}
	if filter.Budget != nil {
		preds = append(preds, Predicate{Path: "budgetLevel", Op: "==", Value: string(*filter.Budget)})
	}

	return preds
}

func applyPredicates(q firestore.Query, preds []Predicate) firestore.Query {
	for _, p := range preds {
		q = q.Where(p.Path, p.Op, p.Value)
	}
	return q
}

// placeUpdates lists the field paths set in fields. Nil fields are skipped.
func placeUpdates(fields entity.PlaceFields) []firestore.Update {
	var updates []firestore.Update

	if fields.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *fields.Name})
	}
	if fields.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *fields.Description})
	}
	if fields.ImageURLs != nil {
		updates = append(updates, firestore.Update{Path: "imageUrls", Value: fields.ImageURLs})
	}
	if fields.Location != nil {
		updates = append(updates,
			firestore.Update{Path: "location.region", Value: fields.Location.Region},
			firestore.Update{Path: "location.district", Value: fields.Location.District},
		)
	}
	if fields.RegionType != nil {
		updates = append(updates, firestore.Update{Path: "regionType", Value: *fields.RegionType})
	}
	if fields.SeasonTags != nil {
		updates = append(updates, firestore.Update{Path: "seasonTags", Value: fields.SeasonTags})
	}
	if fields.BudgetLevel != nil {
		updates = append(updates, firestore.Update{Path: "budgetLevel", Value: *fields.BudgetLevel})
	}
	if fields.Keywords != nil {
		updates = append(updates, firestore.Update{Path: "keywords", Value: fields.Keywords})
	}
	if fields.CreatedBy != nil {
		updates = append(updates, firestore.Update{Path: "createdBy", Value: *fields.CreatedBy})
	}
	if fields.Draft != nil {
		updates = append(updates, firestore.Update{Path: "draft", Value: *fields.Draft})
	}

	return updates
}
