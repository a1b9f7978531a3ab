package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/darkahs/storefront/internal/domain/errors"
	"github.com/darkahs/storefront/internal/server/http/dto"
	"github.com/darkahs/storefront/internal/usecase"
)

// imageFormFields are the multipart field names the admin panel uploads.
var imageFormFields = []string{"image1", "image2", "image3", "image4"}

// ProductHandler manages the catalog endpoints.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// Add handles POST /api/product/add. The payload is multipart form data with
// the product fields plus up to four image files.
func (h *ProductHandler) Add(c *gin.Context) {
	in, err := productInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: err.Error()})
		return
	}
	images, err := imagesFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: err.Error()})
		return
	}

	product, err := h.facade.AddProduct(c.Request.Context(), in, images)
	if err != nil {
		h.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductItemResponse{Success: true, Message: "Product added", Product: dto.NewProductResponse(product)})
}

// Update handles POST /api/product/update.
func (h *ProductHandler) Update(c *gin.Context) {
	id := c.PostForm("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "product id is required"})
		return
	}
	in, err := productInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: err.Error()})
		return
	}
	images, err := imagesFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: err.Error()})
		return
	}

	product, err := h.facade.UpdateProduct(c.Request.Context(), id, in, images)
	if err != nil {
		h.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductItemResponse{Success: true, Message: "Product updated", Product: dto.NewProductResponse(product)})
}

// Remove handles POST /api/product/remove.
func (h *ProductHandler) Remove(c *gin.Context) {
	var req dto.SingleProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "product id is required"})
		return
	}

	product, err := h.facade.RemoveProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		h.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductItemResponse{Success: true, Message: "Product removed", Product: dto.NewProductResponse(product)})
}

// List handles GET /api/product/list.
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	products, total, err := h.facade.Products(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Response{Success: false, Message: "Error fetching products"})
		return
	}

	response := dto.ProductListResponse{Success: true, Products: make([]dto.ProductResponse, 0, len(products)), Total: total, Page: page, Limit: limit}
	for i := range products {
		response.Products = append(response.Products, dto.NewProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Single handles POST /api/product/single.
func (h *ProductHandler) Single(c *gin.Context) {
	var req dto.SingleProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "product id is required"})
		return
	}

	product, err := h.facade.Product(c.Request.Context(), req.ProductID)
	if err != nil {
		h.respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductItemResponse{Success: true, Product: dto.NewProductResponse(product)})
}

func (h *ProductHandler) respondProductError(c *gin.Context, err error) {
	var validation *usecase.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: validation.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Response{Success: false, Message: "Product not found"})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.Response{Success: false, Message: "Product with this name already exists"})
	default:
		c.JSON(http.StatusInternalServerError, dto.Response{Success: false, Message: "Error processing product"})
	}
}

func productInputFromForm(c *gin.Context) (usecase.ProductInput, error) {
	in := usecase.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		SubCategory: c.PostForm("subCategory"),
		Bestseller:  c.PostForm("bestseller") == "true",
	}

	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("price must be a number")
		}
		in.Price = price
	}

	// Sizes arrive as a JSON array string, e.g. ["S","M","L"].
	if raw := c.PostForm("sizes"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Sizes); err != nil {
			return in, fmt.Errorf("sizes must be a JSON array of size names")
		}
	}
	return in, nil
}

func imagesFromForm(c *gin.Context) ([]usecase.ImageFile, error) {
	var images []usecase.ImageFile
	for _, field := range imageFormFields {
		header, err := c.FormFile(field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
				continue
			}
			return nil, fmt.Errorf("reading %s failed", field)
		}
		img, err := readImage(header)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func readImage(header *multipart.FileHeader) (usecase.ImageFile, error) {
	file, err := header.Open()
	if err != nil {
		return usecase.ImageFile{}, fmt.Errorf("opening %s failed", header.Filename)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return usecase.ImageFile{}, fmt.Errorf("reading %s failed", header.Filename)
	}
	return usecase.ImageFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
