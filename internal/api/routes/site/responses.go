package site

import (
	"github.com/matt-dz/silviakaka/internal/category"
	"github.com/matt-dz/silviakaka/internal/sitegen"
)

type CategoriesResponse struct {
	Categories []category.Group `json:"categories"`
}

type PathsResponse struct {
	sitegen.Manifest
	Paths []string `json:"paths"`
}
