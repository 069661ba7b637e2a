package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

type PreferenceService interface {
	ManagePreferences(ctx context.Context, db database.Store, userID string, preferences []string) (models.UserPreferences, bool, error)
	GetPreferences(ctx context.Context, db database.Store, userID string) (models.UserPreferences, bool, error)
}

type PreferenceServiceImpl struct{}

func NewPreferenceService() *PreferenceServiceImpl {
	return &PreferenceServiceImpl{}
}

// filterSkills keeps only entries from the allowed skill set, preserving the
// caller's order. Unknown entries are silently dropped.
func filterSkills(preferences []string) []string {
	allowed := make(map[string]bool, len(models.AllowedSkills))
	for _, s := range models.AllowedSkills {
		allowed[s] = true
	}
	valid := make([]string, 0, len(preferences))
	for _, p := range preferences {
		if allowed[p] {
			valid = append(valid, p)
		}
	}
	return valid
}

// ManagePreferences upserts the user's preference document and, on success,
// drops an agent message into the user's chat pointing at the saved skills.
// The second return reports whether the document was newly created.
func (s *PreferenceServiceImpl) ManagePreferences(ctx context.Context, db database.Store, userID string, preferences []string) (models.UserPreferences, bool, error) {
	valid := filterSkills(preferences)
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"preferences": valid,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	res, err := db.UpdateOne(ctx, models.PreferenceCollection, bson.M{"userId": userID}, update, true)
	if err != nil {
		return models.UserPreferences{}, false, err
	}
	created := res.UpsertedID != ""

	doc, err := db.FindOne(ctx, models.PreferenceCollection, bson.M{"userId": userID})
	if err != nil {
		return models.UserPreferences{}, false, err
	}
	var stored models.UserPreferences
	if err := bson.Unmarshal(doc, &stored); err != nil {
		return models.UserPreferences{}, false, fmt.Errorf("decode preferences: %w", err)
	}

	if len(valid) > 0 {
		chat := models.ChatMessage{
			UserID:   userID,
			UserType: "agent",
			Message: fmt.Sprintf(
				"Looks like preferences has been set for %s. From where do you want to start? Please choose from your preferences!",
				strings.Join(valid, ", ")),
			Timestamp: now,
		}
		if _, err := db.Insert(ctx, models.ChatCollection, chat); err != nil {
			return models.UserPreferences{}, false, fmt.Errorf("record preference chat: %w", err)
		}
	}
	return stored, created, nil
}

// GetPreferences returns the stored document. A user who never saved
// preferences gets an empty default record; the second return is true for
// that fallback.
func (s *PreferenceServiceImpl) GetPreferences(ctx context.Context, db database.Store, userID string) (models.UserPreferences, bool, error) {
	doc, err := db.FindOne(ctx, models.PreferenceCollection, bson.M{"userId": userID})
	if errors.Is(err, database.ErrNotFound) {
		return models.UserPreferences{
			UserID:      userID,
			Preferences: []string{},
		}, true, nil
	}
	if err != nil {
		return models.UserPreferences{}, false, err
	}
	var prefs models.UserPreferences
	if err := bson.Unmarshal(doc, &prefs); err != nil {
		return models.UserPreferences{}, false, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs, false, nil
}
