package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/domain/repository"
	"github.com/darkahs/storefront/internal/pkg/imagecache"
)

const (
	maxProductImages = 4
	maxImageSize     = 5 << 20
	minImageSize     = 10 << 10
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

var validSizes = map[string]struct{}{
	"XXS": {}, "XS": {}, "S": {}, "M": {}, "L": {}, "XL": {}, "XXL": {}, "XXXL": {},
}

// ValidationError carries the list of rejected product fields.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid product: " + strings.Join(e.Problems, "; ")
}

// ImageFile is an uploaded image pending validation and hosting.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageUploader pushes image bytes to the external host.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// ProductInput is the full set of catalog fields for create/update.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	SubCategory string
	Sizes       []string
	Bestseller  bool
}

// ProductUseCase manages the catalog and its image pipeline.
type ProductUseCase struct {
	products repository.ProductRepository
	uploader ImageUploader
	cache    *imagecache.Cache
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository, uploader ImageUploader, cache *imagecache.Cache) *ProductUseCase {
	return &ProductUseCase{products: products, uploader: uploader, cache: cache}
}

func validateProduct(in ProductInput) []string {
	var problems []string

	switch {
	case in.Name == "":
		problems = append(problems, "name is required")
	case len(in.Name) < 3:
		problems = append(problems, "name must be at least 3 characters")
	case len(in.Name) > 100:
		problems = append(problems, "name must be less than 100 characters")
	}

	switch {
	case in.Description == "":
		problems = append(problems, "description is required")
	case len(in.Description) < 50:
		problems = append(problems, "description must be at least 50 characters")
	case len(in.Description) > 10000:
		problems = append(problems, "description must not be more than 10000 characters")
	}

	switch {
	case in.Price <= 0:
		problems = append(problems, "price must be a positive number")
	case in.Price > 1000000:
		problems = append(problems, "price must be less than 1,000,000")
	}

	if in.Category == "" {
		problems = append(problems, "category is required")
	}
	if in.SubCategory == "" {
		problems = append(problems, "subcategory is required")
	}

	for _, size := range in.Sizes {
		if _, ok := validSizes[size]; !ok {
			problems = append(problems, "only XXS, XS, S, M, L, XL, XXL, XXXL are valid sizes")
			break
		}
	}

	return problems
}

func validateImages(images []ImageFile) []string {
	var problems []string
	if len(images) > maxProductImages {
		problems = append(problems, fmt.Sprintf("at most %d images are accepted", maxProductImages))
	}
	for _, img := range images {
		if _, ok := allowedImageTypes[img.ContentType]; !ok {
			problems = append(problems, "only jpeg, jpg, png and webp are accepted")
			break
		}
	}
	for _, img := range images {
		if len(img.Data) > maxImageSize {
			problems = append(problems, "file has exceeded the maximum acceptable size: 5MB")
			break
		}
		if len(img.Data) < minImageSize {
			problems = append(problems, "file is below the minimum acceptable size: 10KB")
			break
		}
	}
	return problems
}

// Create validates the input, hosts the images and persists the product.
func (u *ProductUseCase) Create(ctx context.Context, in ProductInput, images []ImageFile) (*model.Product, error) {
	problems := append(validateProduct(in), validateImages(images)...)
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	urls, err := u.hostImages(ctx, images)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Images:      urls,
		Category:    strings.TrimSpace(in.Category),
		SubCategory: strings.TrimSpace(in.SubCategory),
		Sizes:       in.Sizes,
		Bestseller:  in.Bestseller,
	}
	if err := u.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update merges the input over the stored product, replacing images only
// when new ones are supplied.
func (u *ProductUseCase) Update(ctx context.Context, id string, in ProductInput, images []ImageFile) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := ProductInput{
		Name:        firstNonEmpty(in.Name, product.Name),
		Description: firstNonEmpty(in.Description, product.Description),
		Price:       product.Price,
		Category:    firstNonEmpty(in.Category, product.Category),
		SubCategory: firstNonEmpty(in.SubCategory, product.SubCategory),
		Sizes:       product.Sizes,
		Bestseller:  in.Bestseller,
	}
	if in.Price > 0 {
		merged.Price = in.Price
	}
	if len(in.Sizes) > 0 {
		merged.Sizes = in.Sizes
	}

	problems := append(validateProduct(merged), validateImages(images)...)
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	product.Name = strings.TrimSpace(merged.Name)
	product.Description = strings.TrimSpace(merged.Description)
	product.Price = merged.Price
	product.Category = strings.TrimSpace(merged.Category)
	product.SubCategory = strings.TrimSpace(merged.SubCategory)
	product.Sizes = merged.Sizes
	product.Bestseller = merged.Bestseller

	if len(images) > 0 {
		urls, err := u.hostImages(ctx, images)
		if err != nil {
			return nil, err
		}
		product.Images = urls
	}

	if err := u.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product and returns the deleted record.
func (u *ProductUseCase) Delete(ctx context.Context, id string) (*model.Product, error) {
	return u.products.Delete(ctx, id)
}

// Get fetches one product.
func (u *ProductUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns a page of products newest first plus the total count.
func (u *ProductUseCase) List(ctx context.Context, page, limit int) ([]model.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	return u.products.List(ctx, (page-1)*limit, limit)
}

// hostImages uploads all images concurrently through the bounded pool.
// Identical bytes seen within the cache TTL reuse the previous hosted URL.
func (u *ProductUseCase) hostImages(ctx context.Context, images []ImageFile) ([]string, error) {
	urls := make([]string, len(images))
	errs := make([]error, len(images))

	var wg sync.WaitGroup
	for idx, img := range images {
		key := contentKey(img.Data)
		if cached, ok := u.cache.Get(key); ok {
			urls[idx] = cached
			continue
		}

		wg.Add(1)
		go func(idx int, img ImageFile, key string) {
			defer wg.Done()
			filename := fmt.Sprintf("product_%d_%d", time.Now().UnixMilli(), idx)
			url, err := u.uploader.Upload(ctx, img.Data, filename)
			if err != nil {
				errs[idx] = err
				return
			}
			u.cache.Put(key, url)
			urls[idx] = url
		}(idx, img, key)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return urls, nil
}

func contentKey(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
