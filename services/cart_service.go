package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
)

// PopulatedCartItem is a cart line joined with its product snippet.
// Lines whose product has vanished or been deactivated are dropped
// from the view but kept in storage until the next write.
type PopulatedCartItem struct {
	ProductID primitive.ObjectID `json:"productId"`
	Name      string             `json:"name"`
	Brand     string             `json:"brand"`
	Image     string             `json:"image"`
	Price     float64            `json:"price"`
	Stock     int                `json:"stock"`
	Quantity  int                `json:"quantity"`
	AddedAt   time.Time          `json:"addedAt"`
}

// CartView is the cart as returned to clients.
type CartView struct {
	Items     []PopulatedCartItem `json:"items"`
	ItemCount int                 `json:"itemCount"`
	Subtotal  float64             `json:"subtotal"`
}

// SyncCartItem is one line of a client-side cart being merged on login.
type SyncCartItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

// CartService manages per-user shopping carts.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService creates a CartService.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the user's cart populated with current product data.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*CartView, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

// Add puts quantity units of a product into the cart, summing with any
// existing line for the same product.
func (s *CartService) Add(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, apperrors.BadRequest("Quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, apperrors.NotFound("Product not found")
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC(),
		})
	}

	if err := s.carts.ReplaceItems(ctx, userID, cart.Items); err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

// Update sets the quantity of an existing cart line. A quantity of
// zero or less removes the line.
func (s *CartService) Update(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*CartView, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NotFound("Item not found in cart")
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	if err := s.carts.ReplaceItems(ctx, userID, cart.Items); err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

// Remove deletes a cart line.
func (s *CartService) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*CartView, error) {
	return s.Update(ctx, userID, productID, 0)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.carts.ReplaceItems(ctx, userID, []models.CartItem{})
}

// Sync merges a client-side guest cart into the stored cart on login.
// Per product the larger of the two quantities wins; unknown or
// inactive products are skipped silently.
func (s *CartService) Sync(ctx context.Context, userID primitive.ObjectID, items []SyncCartItem) (*CartView, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil || item.Quantity < 1 {
			continue
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil || !product.IsActive {
			continue
		}

		found := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				if item.Quantity > cart.Items[i].Quantity {
					cart.Items[i].Quantity = item.Quantity
				}
				found = true
				break
			}
		}
		if !found {
			cart.Items = append(cart.Items, models.CartItem{
				ProductID: productID,
				Quantity:  item.Quantity,
				AddedAt:   time.Now().UTC(),
			})
		}
	}

	if err := s.carts.ReplaceItems(ctx, userID, cart.Items); err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

func (s *CartService) populate(ctx context.Context, cart *models.Cart) (*CartView, error) {
	view := &CartView{Items: []PopulatedCartItem{}}
	if len(cart.Items) == 0 {
		return view, nil
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			continue
		}
		view.Items = append(view.Items, PopulatedCartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Brand:     product.Brand,
			Image:     product.FirstImage(),
			Price:     product.Price,
			Stock:     product.Stock,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		})
		view.ItemCount += item.Quantity
		view.Subtotal += product.Price * float64(item.Quantity)
	}
	return view, nil
}
