package service

import (
	"errors"

	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/internal/app/repository"
	"github.com/bigsofa/bigsofa-backend/internal/catalog"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidPrice = errors.New("price must be positive")

// FurnitureInput carries the validated fields of the admin editor form. The
// image has already been stored by the time the service sees it; ImageURL is
// its public location.
type FurnitureInput struct {
	Name        string
	Description string
	PriceCents  int64
	CategoryID  uint
	ImageURL    string
}

type FurnitureService interface {
	ListItems() ([]model.FurnitureItem, error)
	GetItem(id uint) (*model.FurnitureItem, error)
	CreateItem(input FurnitureInput) (*model.FurnitureItem, error)
	UpdateItem(id uint, input FurnitureInput) (*model.FurnitureItem, error)
	DeleteItem(id uint) error
}

type furnitureService struct {
	furnitureRepo repository.FurnitureRepository
	categoryRepo  repository.CategoryRepository
	loader        *catalog.Loader
}

func NewFurnitureService(
	furnitureRepo repository.FurnitureRepository,
	categoryRepo repository.CategoryRepository,
	loader *catalog.Loader,
) FurnitureService {
	return &furnitureService{
		furnitureRepo: furnitureRepo,
		categoryRepo:  categoryRepo,
		loader:        loader,
	}
}

func (s *furnitureService) ListItems() ([]model.FurnitureItem, error) {
	return s.furnitureRepo.FindAll()
}

func (s *furnitureService) GetItem(id uint) (*model.FurnitureItem, error) {
	item, err := s.furnitureRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *furnitureService) CreateItem(input FurnitureInput) (*model.FurnitureItem, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	item := &model.FurnitureItem{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
	}
	if err := s.furnitureRepo.Create(item); err != nil {
		return nil, err
	}

	s.loader.Invalidate()

	logger.Info("Furniture item created", map[string]interface{}{
		"item_id":     item.ID,
		"name":        item.Name,
		"category_id": item.CategoryID,
	})
	return s.furnitureRepo.FindByID(item.ID)
}

// UpdateItem replaces the item's fields with the form values. An empty
// ImageURL keeps the stored image.
func (s *furnitureService) UpdateItem(id uint, input FurnitureInput) (*model.FurnitureItem, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	item, err := s.furnitureRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.PriceCents = input.PriceCents
	item.CategoryID = input.CategoryID
	if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}

	if err := s.furnitureRepo.Update(item); err != nil {
		return nil, err
	}

	s.loader.Invalidate()

	logger.Info("Furniture item updated", map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
	})
	return s.furnitureRepo.FindByID(item.ID)
}

func (s *furnitureService) DeleteItem(id uint) error {
	if _, err := s.furnitureRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if err := s.furnitureRepo.Delete(id); err != nil {
		return err
	}

	s.loader.Invalidate()

	logger.Info("Furniture item deleted", map[string]interface{}{
		"item_id": id,
	})
	return nil
}

func (s *furnitureService) validate(input FurnitureInput) error {
	if input.PriceCents <= 0 {
		return ErrInvalidPrice
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
