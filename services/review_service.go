// services/review_service.go
package services

import (
	"errors"
	"fmt"
	"servsphere-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewService owns review creation and the service rating aggregate.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Add inserts one review per (service, customer) and recomputes the
// service aggregate from the full review set. Insert and recompute
// share a transaction so the stored rating always matches the reviews.
func (s *ReviewService) Add(customer Principal, serviceID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if err := Authorize(OpAddReview, customer, nil, uuid.Nil); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidArgument)
	}
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrInvalidArgument)
	}

	var service models.Service
	if err := s.db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	review := models.Review{
		CustomerID: customer.ID,
		ServiceID:  serviceID,
		Rating:     rating,
		Comment:    comment,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Review{}).
			Where("service_id = ? AND customer_id = ?", serviceID, customer.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateReview
		}

		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		// Full re-scan, not a running average: the aggregate is exact
		// for the review set as of this write. The just-inserted row
		// guarantees a non-empty set.
		var agg struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&models.Review{}).
			Select("AVG(rating) AS avg, COUNT(*) AS count").
			Where("service_id = ?", serviceID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Service{}).
			Where("id = ?", serviceID).
			Updates(map[string]interface{}{
				"rating":        agg.Avg,
				"reviews_count": agg.Count,
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	return &review, nil
}

// ListForService returns a service's reviews with only the reviewer's
// display name exposed.
func (s *ReviewService) ListForService(serviceID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("service_id = ?", serviceID).
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
