// controllers/service.go
package controllers

import (
	"errors"
	"math"
	"net/http"
	"servsphere-backend/config"
	"servsphere-backend/models"
	"servsphere-backend/utils"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxServicePhotos = 3

// CreateService creates a new service offering for the calling provider
func CreateService(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	category := c.PostForm("category")
	description := strings.TrimSpace(c.PostForm("description"))
	pinCode, _ := strconv.Atoi(c.PostForm("pinCode"))
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid price")
		return
	}
	experience, _ := strconv.Atoi(c.PostForm("experience"))

	if title == "" || description == "" || pinCode == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "title, description and pinCode are required")
		return
	}
	if !models.ValidCategory(category) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown service category")
		return
	}
	if experience < 0 || experience > 100 {
		utils.RespondWithError(c, http.StatusBadRequest, "Experience must be between 0 and 100 years")
		return
	}

	photos, err := saveServicePhotos(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	service := models.Service{
		Title:         title,
		Category:      category,
		PinCode:       pinCode,
		Description:   description,
		Price:         price,
		Experience:    experience,
		ServicePhotos: photos,
		Available:     true,
		ProviderID:    principal.ID,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "New service created successfully",
		"service": service,
	})
}

// GetServices lists services filtered by category/pinCode with
// pagination: GET /services?category=maid&pinCode=123456&page=1&limit=6
func GetServices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 6
	}

	query := config.DB.Model(&models.Service{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if pinCode := c.Query("pinCode"); pinCode != "" {
		pin, err := strconv.Atoi(pinCode)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid pinCode")
			return
		}
		query = query.Where("pin_code = ?", pin)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var services []models.Service
	err := query.Preload("Provider", providerDisplayFields).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&services).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"services":   services,
		"totalPages": int(math.Ceil(float64(total) / float64(limit))),
	})
}

// GetMyServices lists the calling provider's own services
func GetMyServices(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.Where("provider_id = ?", principal.ID).Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetServicesByCategory lists every service in one category
func GetServicesByCategory(c *gin.Context) {
	category := c.Param("category")

	var services []models.Service
	err := config.DB.Where("category = ?", category).
		Preload("Provider", providerDisplayFields).
		Find(&services).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error fetching category services")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"serviceCount": len(services),
		"services":     services,
	})
}

// GetCategoryCounts returns how many services exist per category
func GetCategoryCounts(c *gin.Context) {
	var rows []struct {
		Category string
		Count    int64
	}
	err := config.DB.Model(&models.Service{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}

	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// GetServiceByID retrieves a single service with its provider
func GetServiceByID(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	err = config.DB.Preload("Provider", providerDisplayFields).
		First(&service, "id = ?", serviceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService merges field changes and appends any newly uploaded
// photos. Owner or admin only.
func UpdateService(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if service.ProviderID != principal.ID && principal.Role != models.RoleAdmin {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to update this service")
		return
	}

	if title := strings.TrimSpace(c.PostForm("title")); title != "" {
		service.Title = title
	}
	if category := c.PostForm("category"); category != "" {
		if !models.ValidCategory(category) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown service category")
			return
		}
		service.Category = category
	}
	if pinCode := c.PostForm("pinCode"); pinCode != "" {
		pin, err := strconv.Atoi(pinCode)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid pinCode")
			return
		}
		service.PinCode = pin
	}
	if description := strings.TrimSpace(c.PostForm("description")); description != "" {
		service.Description = description
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid price")
			return
		}
		service.Price = price
	}
	if expStr := c.PostForm("experience"); expStr != "" {
		experience, err := strconv.Atoi(expStr)
		if err != nil || experience < 0 || experience > 100 {
			utils.RespondWithError(c, http.StatusBadRequest, "Experience must be between 0 and 100 years")
			return
		}
		service.Experience = experience
	}
	if availableStr := c.PostForm("available"); availableStr != "" {
		available, err := strconv.ParseBool(availableStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid available flag")
			return
		}
		service.Available = available
	}

	// New photos append to the existing list
	newPhotos, err := saveServicePhotos(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	service.ServicePhotos = append(service.ServicePhotos, newPhotos...)

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error updating service")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service updated successfully",
		"service": service,
	})
}

// DeleteService removes a service. Owner or admin only.
func DeleteService(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if service.ProviderID != principal.ID && principal.Role != models.RoleAdmin {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to delete this service")
		return
	}

	if err := config.DB.Delete(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

func providerDisplayFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "photo")
}

func saveServicePhotos(c *gin.Context) (models.StringArray, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all, nothing to save
		return models.StringArray{}, nil
	}

	files := form.File["servicePhotos"]
	if len(files) > maxServicePhotos {
		return nil, errors.New("you can upload a maximum of 3 images")
	}

	photos := models.StringArray{}
	for _, file := range files {
		saved, err := utils.SavePhoto(c, file, "./public/service-images")
		if err != nil {
			return nil, err
		}
		photos = append(photos, saved)
	}
	return photos, nil
}
