package controllers

import (
	"errors"
	"net/http"
	"servsphere-backend/config"
	"servsphere-backend/models"
	"servsphere-backend/utils"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user from a multipart form (profile photo upload
// alongside the fields).
func Register(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	phone := strings.TrimSpace(c.PostForm("phone"))
	password := c.PostForm("password")
	role := c.PostForm("role")

	if name == "" || email == "" || password == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if len(password) < 8 {
		utils.RespondWithError(c, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if phone != "" && !utils.ValidatePhone(phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}
	if role == "" {
		role = models.RoleCustomer
	}
	if !models.ValidRole(role) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	// Check if email already exists
	var existingUser models.User
	result := config.DB.Where("email = ?", email).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// Optional profile photo
	photo := ""
	if file, err := c.FormFile("photo"); err == nil {
		saved, err := utils.SavePhoto(c, file, "./public/images")
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		photo = saved
	}

	newUser := models.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password, // Hashed in BeforeCreate hook
		Photo:    photo,
		Role:     role,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    newUser,
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", strings.TrimSpace(input.Email)).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Check password
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Generate token
	token, err := utils.GenerateToken(user.ID.String(), user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Me returns the authenticated user's profile
func Me(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", principal.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile merges name/email changes and an optional new photo
func UpdateProfile(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", principal.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(c.PostForm("email")); email != "" {
		user.Email = email
	}
	if file, err := c.FormFile("photo"); err == nil {
		saved, err := utils.SavePhoto(c, file, "./public/images")
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		user.Photo = saved
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Profile update failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetAllUsers lists every user (admin only, enforced by the route)
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error fetching users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
