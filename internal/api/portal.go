package api

import (
	"net/http"

	"mise/internal/auth"
	"mise/internal/models"

	"github.com/gin-gonic/gin"
)

// Read-side endpoints for the storefront and portal pages. These are the thin
// CRUD views the rest of the application is made of.

// ListRecipes returns all recipes
func (s *Server) ListRecipes(c *gin.Context) {
	var recipes []models.Recipe
	if err := s.DB.Order("created_at desc").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one recipe by slug, with ingredients and instructions
// deserialized
func (s *Server) GetRecipe(c *gin.Context) {
	slug := c.Param("slug")

	var recipe models.Recipe
	if err := s.DB.Where("slug = ?", slug).First(&recipe).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if _, err := recipe.GetIngredients(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if _, err := recipe.GetInstructions(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// ListProducts returns all available shop products
func (s *Server) ListProducts(c *gin.Context) {
	var products []models.Product
	if err := s.DB.Where("available = ?", true).Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product by slug
func (s *Server) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	var product models.Product
	if err := s.DB.Where("slug = ?", slug).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// authActor returns the actor stored by the auth middleware
func authActor(c *gin.Context) (*auth.Actor, bool) {
	return auth.ActorFrom(c)
}
