package services

import (
	"servsphere-backend/models"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAddReviewRecomputesAggregate(t *testing.T) {
	db := setupTestDB(t)
	provider := createTestUser(t, db, "provider", models.RoleProvider)
	customer1 := createTestUser(t, db, "customer1", models.RoleCustomer)
	customer2 := createTestUser(t, db, "customer2", models.RoleCustomer)
	service := createTestService(t, db, provider)
	svc := NewReviewService(db)

	_, err := svc.Add(principalOf(customer1), service.ID, 4, "Great work")
	assert.NoError(t, err)

	var stored models.Service
	db.First(&stored, "id = ?", service.ID)
	assert.Equal(t, 4.0, stored.Rating)
	assert.Equal(t, 1, stored.ReviewsCount)

	_, err = svc.Add(principalOf(customer2), service.ID, 2, "Showed up late")
	assert.NoError(t, err)

	db.First(&stored, "id = ?", service.ID)
	assert.Equal(t, 3.0, stored.Rating)
	assert.Equal(t, 2, stored.ReviewsCount)
}

func TestAddReviewDuplicate(t *testing.T) {
	db := setupTestDB(t)
	provider := createTestUser(t, db, "provider", models.RoleProvider)
	customer := createTestUser(t, db, "customer", models.RoleCustomer)
	service := createTestService(t, db, provider)
	svc := NewReviewService(db)

	_, err := svc.Add(principalOf(customer), service.ID, 5, "Perfect")
	assert.NoError(t, err)

	// Second review by the same customer is always rejected
	_, err = svc.Add(principalOf(customer), service.ID, 1, "Changed my mind")
	assert.ErrorIs(t, err, ErrDuplicateReview)

	// The rejected attempt left the aggregate untouched
	var stored models.Service
	db.First(&stored, "id = ?", service.ID)
	assert.Equal(t, 5.0, stored.Rating)
	assert.Equal(t, 1, stored.ReviewsCount)

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestReviewUniqueIndexBackstop(t *testing.T) {
	db := setupTestDB(t)
	provider := createTestUser(t, db, "provider", models.RoleProvider)
	customer := createTestUser(t, db, "customer", models.RoleCustomer)
	service := createTestService(t, db, provider)
	svc := NewReviewService(db)

	_, err := svc.Add(principalOf(customer), service.ID, 4, "Great work")
	assert.NoError(t, err)

	// Insert directly, bypassing the duplicate pre-check: the composite
	// unique index still rejects a second review per customer
	dup := models.Review{
		CustomerID: customer.ID,
		ServiceID:  service.ID,
		Rating:     2,
		Comment:    "Again",
	}
	assert.ErrorIs(t, db.Create(&dup).Error, gorm.ErrDuplicatedKey)
}

func TestAddReviewLostRaceMapsToDuplicate(t *testing.T) {
	db := setupTestDB(t)
	provider := createTestUser(t, db, "provider", models.RoleProvider)
	customer := createTestUser(t, db, "customer", models.RoleCustomer)
	service := createTestService(t, db, provider)
	svc := NewReviewService(db)

	// A concurrent review by the same customer lands between the
	// duplicate pre-check and the insert: the unique index has to catch
	// it and the caller still sees the domain error.
	var once sync.Once
	err := db.Callback().Create().Before("gorm:create").Register("rival_review_write", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.Review); !ok {
			return
		}
		once.Do(func() {
			_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
				`INSERT INTO reviews
					(id, customer_id, service_id, rating, comment, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				uuid.New(), customer.ID, service.ID, 5, "Beat you to it",
				time.Now(), time.Now())
			if err != nil {
				tx.AddError(err)
			}
		})
	})
	assert.NoError(t, err)

	_, err = svc.Add(principalOf(customer), service.ID, 4, "Great work")
	assert.ErrorIs(t, err, ErrDuplicateReview)

	// The losing transaction persisted nothing and the aggregate is
	// untouched
	var stored models.Service
	db.First(&stored, "id = ?", service.ID)
	assert.Equal(t, 0.0, stored.Rating)
	assert.Equal(t, 0, stored.ReviewsCount)

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAddReviewValidation(t *testing.T) {
	db := setupTestDB(t)
	provider := createTestUser(t, db, "provider", models.RoleProvider)
	customer := createTestUser(t, db, "customer", models.RoleCustomer)
	service := createTestService(t, db, provider)
	svc := NewReviewService(db)

	_, err := svc.Add(principalOf(customer), service.ID, 0, "Too low")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Add(principalOf(customer), service.ID, 6, "Too high")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Add(principalOf(customer), service.ID, 3, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Add(principalOf(customer), uuid.New(), 3, "No such service")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForService(t *testing.T) {
	db := setupTestDB(t)
	provider := createTestUser(t, db, "provider", models.RoleProvider)
	customer := createTestUser(t, db, "customer", models.RoleCustomer)
	service := createTestService(t, db, provider)
	svc := NewReviewService(db)

	_, err := svc.Add(principalOf(customer), service.ID, 4, "Great work")
	assert.NoError(t, err)

	reviews, err := svc.ListForService(service.ID)
	assert.NoError(t, err)
	assert.Len(t, reviews, 1)

	// Only the reviewer's display name is exposed
	assert.NotNil(t, reviews[0].Customer)
	assert.Equal(t, "customer", reviews[0].Customer.Name)
	assert.Empty(t, reviews[0].Customer.Email)
}
