package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/jinzhu/gorm"
)

// StringSlice represents a slice of strings that can be stored in the database
type StringSlice []string

// Value converts the slice to a JSON string for storage
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan converts the database value back to a slice
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// Recipe represents a published recipe on the storefront
type Recipe struct {
	gorm.Model
	Slug             string `gorm:"unique_index;not null"`
	Title            string
	Description      string
	Category         string
	Difficulty       string // easy, medium, hard
	Servings         int
	PrepTimeMinutes  int
	CookTimeMinutes  int
	IngredientsJSON  string      `gorm:"type:text"`
	InstructionsJSON string      `gorm:"type:text"`
	Tags             StringSlice `gorm:"type:text"`
	// Transient fields (ignored by GORM)
	Ingredients  []Ingredient  `gorm:"-"`
	Instructions []Instruction `gorm:"-"`
}

// TableName sets the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Instruction is one numbered step of a recipe
type Instruction struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
}

// GetIngredients returns the deserialized ingredient list
func (r *Recipe) GetIngredients() ([]Ingredient, error) {
	if len(r.Ingredients) > 0 {
		return r.Ingredients, nil
	}
	var ingredients []Ingredient
	if r.IngredientsJSON == "" {
		return ingredients, nil
	}
	if err := json.Unmarshal([]byte(r.IngredientsJSON), &ingredients); err != nil {
		return nil, err
	}
	r.Ingredients = ingredients
	return ingredients, nil
}

// SetIngredients serializes the ingredient list for storage
func (r *Recipe) SetIngredients(ingredients []Ingredient) error {
	data, err := json.Marshal(ingredients)
	if err != nil {
		return err
	}
	r.IngredientsJSON = string(data)
	r.Ingredients = ingredients
	return nil
}

// GetInstructions returns the deserialized instruction steps
func (r *Recipe) GetInstructions() ([]Instruction, error) {
	if len(r.Instructions) > 0 {
		return r.Instructions, nil
	}
	var instructions []Instruction
	if r.InstructionsJSON == "" {
		return instructions, nil
	}
	if err := json.Unmarshal([]byte(r.InstructionsJSON), &instructions); err != nil {
		return nil, err
	}
	r.Instructions = instructions
	return instructions, nil
}

// SetInstructions serializes the instruction steps for storage
func (r *Recipe) SetInstructions(instructions []Instruction) error {
	data, err := json.Marshal(instructions)
	if err != nil {
		return err
	}
	r.InstructionsJSON = string(data)
	r.Instructions = instructions
	return nil
}
