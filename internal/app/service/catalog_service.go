package service

import (
	"errors"
	"strings"

	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/internal/app/repository"
	"github.com/bigsofa/bigsofa-backend/internal/catalog"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("furniture item not found")
)

// ItemList is one catalog page: the visible items plus the generation of the
// load that produced them, so clients can correlate stale responses.
type ItemList struct {
	Items      []model.PublicView `json:"items"`
	Generation uint64             `json:"generation"`
}

type CatalogService interface {
	GetCategories() ([]model.Category, error)
	GetItems(categoryID uint, search string) (*ItemList, error)
	GetItem(id uint) (*model.FurnitureItem, error)
}

type catalogService struct {
	categoryRepo  repository.CategoryRepository
	furnitureRepo repository.FurnitureRepository
	loader        *catalog.Loader
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	furnitureRepo repository.FurnitureRepository,
	loader *catalog.Loader,
) CatalogService {
	return &catalogService{
		categoryRepo:  categoryRepo,
		furnitureRepo: furnitureRepo,
		loader:        loader,
	}
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

// GetItems returns the catalog view for a category, optionally narrowed by a
// case-insensitive name search. Items sharing an image URL collapse to the
// first occurrence so repeated stock photos do not flood the grid.
func (s *catalogService) GetItems(categoryID uint, search string) (*ItemList, error) {
	if categoryID != 0 {
		if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	snap, err := s.loader.Load(catalog.Query{CategoryID: categoryID, Search: search})
	if err != nil {
		return nil, err
	}

	items := filterItems(snap.Items, categoryID, search)
	items = dedupeByImageURL(items)

	views := make([]model.PublicView, len(items))
	for i, item := range items {
		views[i] = item.Public()
	}

	logger.Debug("Catalog items resolved", map[string]interface{}{
		"category_id": categoryID,
		"search":      search,
		"count":       len(views),
		"generation":  snap.Generation,
	})

	return &ItemList{Items: views, Generation: snap.Generation}, nil
}

func (s *catalogService) GetItem(id uint) (*model.FurnitureItem, error) {
	item, err := s.furnitureRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// filterItems narrows a snapshot to the requested category and search term.
// The snapshot may have been loaded for a different query, so both filters
// apply here too.
func filterItems(items []model.FurnitureItem, categoryID uint, search string) []model.FurnitureItem {
	query := strings.ToLower(strings.TrimSpace(search))

	out := make([]model.FurnitureItem, 0, len(items))
	for _, item := range items {
		if categoryID != 0 && item.CategoryID != categoryID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// dedupeByImageURL keeps the first item per image URL. Items without an
// image are never collapsed.
func dedupeByImageURL(items []model.FurnitureItem) []model.FurnitureItem {
	seen := make(map[string]bool, len(items))
	out := make([]model.FurnitureItem, 0, len(items))
	for _, item := range items {
		if item.ImageURL != "" {
			if seen[item.ImageURL] {
				continue
			}
			seen[item.ImageURL] = true
		}
		out = append(out, item)
	}
	return out
}
